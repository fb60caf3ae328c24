package models

import (
	"time"

	"github.com/google/uuid"
)

// PKLStatus is the closed set of internship workflow states. The string
// values are the wire and storage format.
type PKLStatus string

const (
	PKLMenungguPersetujuan PKLStatus = "Menunggu Persetujuan"
	PKLPengajuanDitolak    PKLStatus = "Pengajuan Ditolak"
	PKLMenungguVerifikasi  PKLStatus = "Menunggu Verifikasi"
	PKLVerifikasiGagal     PKLStatus = "Verifikasi Gagal"
	PKLDitolak             PKLStatus = "Ditolak"
	PKLDiterima            PKLStatus = "Diterima"
	PKLMulaiFinalisasi     PKLStatus = "Mulai Finalisasi"
	PKLProsesFinalisasi    PKLStatus = "Proses Finalisasi"
	PKLFinalisasiDitolak   PKLStatus = "Finalisasi Ditolak"
	PKLGagal               PKLStatus = "Gagal"
	PKLSelesai             PKLStatus = "Selesai"
)

// PKLStatuses lists every workflow state.
var PKLStatuses = []PKLStatus{
	PKLMenungguPersetujuan,
	PKLPengajuanDitolak,
	PKLMenungguVerifikasi,
	PKLVerifikasiGagal,
	PKLDitolak,
	PKLDiterima,
	PKLMulaiFinalisasi,
	PKLProsesFinalisasi,
	PKLFinalisasiDitolak,
	PKLGagal,
	PKLSelesai,
}

// Valid reports whether s is a known PKL status.
func (s PKLStatus) Valid() bool {
	for _, known := range PKLStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// pklVerifierTransitions is the transition table for koordinator/admin
// status changes, keyed by source status. Menunggu Persetujuan and Mulai
// Finalisasi never appear as targets: those are student/system-only moves.
var pklVerifierTransitions = map[PKLStatus][]PKLStatus{
	PKLMenungguPersetujuan: {PKLPengajuanDitolak, PKLMenungguVerifikasi},
	PKLMenungguVerifikasi:  {PKLVerifikasiGagal, PKLDitolak, PKLGagal, PKLDiterima},
	PKLMulaiFinalisasi:     {PKLFinalisasiDitolak, PKLGagal, PKLSelesai},
	PKLProsesFinalisasi:    {PKLFinalisasiDitolak, PKLGagal, PKLSelesai},
}

// CanVerifierTransition reports whether a koordinator or admin may move a
// PKL from one status to another.
func CanVerifierTransition(from, to PKLStatus) bool {
	for _, target := range pklVerifierTransitions[from] {
		if to == target {
			return true
		}
	}
	return false
}

// VerifierTargets returns the allowed koordinator/admin targets for a
// source status. The returned slice is shared; callers must not mutate it.
func VerifierTargets(from PKLStatus) []PKLStatus {
	return pklVerifierTransitions[from]
}

// CanResubmit reports whether the owning student may resubmit the PKL,
// sending it back to Menunggu Persetujuan.
func CanResubmit(from PKLStatus) bool {
	return from == PKLPengajuanDitolak || from == PKLVerifikasiGagal
}

// CanStartFinalization reports whether the owning student may move the PKL
// to Mulai Finalisasi.
func CanStartFinalization(from PKLStatus) bool {
	return from == PKLDiterima
}

// CanFinalize reports whether the owning student may submit finalization
// documents, moving the PKL to Proses Finalisasi.
func CanFinalize(from PKLStatus) bool {
	return from == PKLMulaiFinalisasi || from == PKLFinalisasiDitolak
}

// PKL is an internship placement record. Fakultas and prodi are snapshots
// captured from the student at submission time, not resolved dynamically.
type PKL struct {
	ID            uuid.UUID `db:"id" json:"id"`
	MahasiswaID   uuid.UUID `db:"mahasiswa_id" json:"mahasiswaId"`
	KoordinatorID uuid.UUID `db:"koordinator_id" json:"koordinatorId"`
	FakultasID    uuid.UUID `db:"fakultas_id" json:"fakultasId"`
	ProdiID       uuid.UUID `db:"prodi_id" json:"prodiId"`

	NamaInstansi   string    `db:"nama_instansi" json:"namaInstansi"`
	TanggalMulai   time.Time `db:"tanggal_mulai" json:"tanggalMulai"`
	TanggalSelesai time.Time `db:"tanggal_selesai" json:"tanggalSelesai"`

	Status             PKLStatus  `db:"status" json:"status"`
	ApprovedAt         *time.Time `db:"approved_at" json:"approvedAt"`
	RejectedAt         *time.Time `db:"rejected_at" json:"rejectedAt"`
	RejectedAtSemester *int       `db:"rejected_at_semester" json:"rejectedAtSemester"`
	FinishedAt         *time.Time `db:"finished_at" json:"finishedAt"`

	// Submission documents, required at creation.
	DokumenDiterima string `db:"dokumen_diterima" json:"dokumenDiterima"`
	DokumenMentor   string `db:"dokumen_mentor" json:"dokumenMentor"`
	DokumenPimpinan string `db:"dokumen_pimpinan" json:"dokumenPimpinan"`

	// Finalization documents, populated during finalization only.
	DokumenSelesai   *string `db:"dokumen_selesai" json:"dokumenSelesai"`
	DokumenLaporan   *string `db:"dokumen_laporan" json:"dokumenLaporan"`
	DokumenPenilaian *string `db:"dokumen_penilaian" json:"dokumenPenilaian"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
