// Package messages holds the stable, user-facing response strings. Every
// success and failure path answers with one of these, never with raw error
// text.
package messages

// Auth
const (
	AuthSuccessLogin          = "Login berhasil"
	AuthFailInvalidCredential = "Email atau password salah"
	AuthFailUnauthorized      = "Sesi tidak valid, silakan login kembali"
)

// PKL
const (
	PKLSuccessList          = "List PKL berhasil didapatkan"
	PKLSuccessDetail        = "Detail PKL berhasil didapatkan"
	PKLSuccessTimeline      = "Timeline PKL berhasil didapatkan"
	PKLSuccessGetCreateData = "Data pembuatan PKL berhasil didapatkan"
	PKLSuccessCreate        = "PKL berhasil dibuat"
	PKLSuccessUpdate        = "PKL berhasil diperbarui"
	PKLSuccessUpdateStatus  = "Status PKL berhasil diperbarui"
	PKLSuccessFinalize      = "Dokumen finalisasi PKL berhasil dikirim"

	PKLNotFound = "PKL tidak ditemukan"

	PKLFailCreateNotMahasiswa = "Hanya mahasiswa yang dapat membuat PKL"
	PKLFailUpdateNotMahasiswa = "Hanya mahasiswa yang dapat memperbarui PKL"
	PKLFailStatusNotVerifier  = "Hanya koordinator atau admin yang dapat mengubah status PKL"

	PKLFailCreateMissingDocuments   = "Dokumen diterima, mentor, dan pimpinan wajib diunggah"
	PKLFailUpdateIncorrectStatus    = "PKL hanya dapat diajukan ulang saat berstatus 'Pengajuan Ditolak' atau 'Verifikasi Gagal'"
	PKLFailInvalidTransition        = "Perubahan status PKL tidak valid"
	PKLFailStartIncorrectStatus     = "Finalisasi hanya dapat dimulai saat PKL berstatus 'Diterima'"
	PKLFailFinalizeIncorrectStatus  = "Finalisasi hanya dapat diproses saat PKL berstatus 'Mulai Finalisasi' atau 'Finalisasi Ditolak'"
	PKLFailFinalizeMissingDocuments = "Dokumen selesai, laporan, dan penilaian wajib tersedia untuk finalisasi"

	PKLFailConflict = "Status PKL telah berubah, silakan muat ulang data"

	PKLFailCreateGeneric   = "Gagal membuat PKL"
	PKLFailUpdateGeneric   = "Gagal memperbarui PKL"
	PKLFailFinalizeGeneric = "Gagal memproses finalisasi PKL"

	// Timeline descriptions written on behalf of the student.
	PKLTimelineCreated           = "PKL dibuat"
	PKLTimelineResubmitted       = "PKL diajukan ulang"
	PKLTimelineStartFinalization = "Finalisasi PKL dimulai"
	PKLTimelineFinalized         = "Dokumen finalisasi PKL dikirim"
)

// Jurnal
const (
	JurnalSuccessList         = "List jurnal berhasil didapatkan"
	JurnalSuccessDetail       = "Detail jurnal berhasil didapatkan"
	JurnalSuccessTimeline     = "Timeline jurnal berhasil didapatkan"
	JurnalSuccessCreate       = "Jurnal berhasil dibuat"
	JurnalSuccessUpdate       = "Jurnal berhasil diperbarui"
	JurnalSuccessUpdateStatus = "Status jurnal berhasil diperbarui"

	JurnalNotFound = "Jurnal tidak ditemukan"

	JurnalFailCreateNotMahasiswa = "Hanya mahasiswa yang dapat membuat jurnal"
	JurnalFailUpdateNotMahasiswa = "Hanya mahasiswa yang dapat memperbarui jurnal"
	JurnalFailStatusNotVerifier  = "Hanya koordinator atau admin yang dapat mengubah status jurnal"

	JurnalFailCreatePKLNotDiterima  = "PKL harus berstatus 'Diterima'"
	JurnalFailCreateNoAttachment    = "Jurnal harus memiliki minimal satu lampiran"
	JurnalFailUpdateIncorrectStatus = "Hanya jurnal berstatus 'Ditolak' yang dapat diperbarui"
	JurnalFailInvalidTransition     = "Hanya jurnal berstatus 'Diproses' yang dapat diubah menjadi 'Ditolak' atau 'Diterima'"

	JurnalFailConflict = "Status jurnal telah berubah, silakan muat ulang data"

	JurnalFailCreateGeneric = "Gagal membuat jurnal"
	JurnalFailUpdateGeneric = "Gagal memperbarui jurnal"

	// Timeline descriptions written on behalf of the student.
	JurnalTimelineCreated = "Jurnal dibuat"
	JurnalTimelineUpdated = "Jurnal diperbarui"
)

// File
const (
	FileNotFound       = "File tidak ditemukan"
	FileFailSave       = "Gagal menyimpan file"
	FileFailDelete     = "Gagal menghapus file"
	FileFailRead       = "Gagal membaca file"
	FileInvalidPayload = "File tidak valid"
)

// Generic repository fallbacks.
const (
	DataNotFound     = "Data tidak ditemukan"
	DataSomeNotFound = "Satu atau lebih data tidak ditemukan"
)
