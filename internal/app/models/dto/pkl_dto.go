package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
)

// PKLCreateRequest is the multipart form body of a PKL submission. The
// three mandatory documents travel beside it as file parts.
type PKLCreateRequest struct {
	KoordinatorID  uuid.UUID `form:"koordinatorId" binding:"required"`
	NamaInstansi   string    `form:"namaInstansi" binding:"required"`
	TanggalMulai   time.Time `form:"tanggalMulai" time_format:"2006-01-02" binding:"required"`
	TanggalSelesai time.Time `form:"tanggalSelesai" time_format:"2006-01-02" binding:"required"`
}

// PKLCreateFiles carries the submission documents. All three are required
// on create; on resubmission each slot is optional and replaces the stored
// document when present.
type PKLCreateFiles struct {
	DokumenDiterima *FileUpload
	DokumenMentor   *FileUpload
	DokumenPimpinan *FileUpload
}

// PKLUpdateRequest is the resubmission body.
type PKLUpdateRequest struct {
	NamaInstansi   string    `form:"namaInstansi" binding:"required"`
	TanggalMulai   time.Time `form:"tanggalMulai" time_format:"2006-01-02" binding:"required"`
	TanggalSelesai time.Time `form:"tanggalSelesai" time_format:"2006-01-02" binding:"required"`
}

// PKLUpdateStatusRequest is a koordinator/admin verification decision.
type PKLUpdateStatusRequest struct {
	Status    models.PKLStatus `json:"status" binding:"required"`
	Deskripsi string           `json:"deskripsi"`
}

// PKLFinalizeFiles carries the finalization documents. Each slot may be
// omitted when a previously stored document exists.
type PKLFinalizeFiles struct {
	DokumenSelesai   *FileUpload
	DokumenLaporan   *FileUpload
	DokumenPenilaian *FileUpload
}

// PKLListQuery is the PKL listing filter. Date filters are [min,max] epoch
// millisecond pairs; the max bound is end-of-day inclusive. Absent filters
// match everything.
type PKLListQuery struct {
	ListQuery

	Status         []string    `form:"status"`
	Fakultas       []uuid.UUID `form:"fakultas"`
	Koordinator    []uuid.UUID `form:"koordinator"`
	Kaprodi        []uuid.UUID `form:"kaprodi"`
	Mahasiswa      []uuid.UUID `form:"mahasiswa"`
	CreatedAt      []int64     `form:"createdAt"`
	FinishedAt     []int64     `form:"finishedAt"`
	TanggalMulai   []int64     `form:"tanggalMulai"`
	TanggalSelesai []int64     `form:"tanggalSelesai"`
	TotalJurnal    []int64     `form:"totalJurnal"`
}

// MahasiswaRef is the student slice of a PKL read model.
type MahasiswaRef struct {
	ID          uuid.UUID `json:"id"`
	NamaLengkap string    `json:"namaLengkap"`
	NIM         string    `json:"nim"`
	Semester    int       `json:"semester"`
}

// DosenRef is the lecturer slice of a PKL read model.
type DosenRef struct {
	ID          uuid.UUID `json:"id"`
	NamaLengkap string    `json:"namaLengkap"`
	NomorInduk  string    `json:"nomorInduk"`
}

// FakultasRef is the faculty slice of a PKL read model.
type FakultasRef struct {
	ID      uuid.UUID `json:"id"`
	Nama    string    `json:"nama"`
	Initial string    `json:"initial"`
}

// ProgramStudiRef is the study-program slice of a PKL read model.
type ProgramStudiRef struct {
	ID      uuid.UUID `json:"id"`
	Nama    string    `json:"nama"`
	Kaprodi DosenRef  `json:"kaprodi"`
}

// PKLListItem is one row of the PKL listing. Document paths are projected
// out of the list view; only the detail view exposes them.
type PKLListItem struct {
	ID                 uuid.UUID        `json:"id"`
	NamaInstansi       string           `json:"namaInstansi"`
	TanggalMulai       time.Time        `json:"tanggalMulai"`
	TanggalSelesai     time.Time        `json:"tanggalSelesai"`
	Status             models.PKLStatus `json:"status"`
	ApprovedAt         *time.Time       `json:"approvedAt"`
	RejectedAt         *time.Time       `json:"rejectedAt"`
	RejectedAtSemester *int             `json:"rejectedAtSemester"`
	FinishedAt         *time.Time       `json:"finishedAt"`
	TotalJurnal        int64            `json:"totalJurnal"`
	Mahasiswa          MahasiswaRef     `json:"mahasiswa"`
	Koordinator        DosenRef         `json:"koordinator"`
	Fakultas           FakultasRef      `json:"fakultas"`
	ProgramStudi       ProgramStudiRef  `json:"programStudi"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// PKLDetail is the full PKL read model.
type PKLDetail struct {
	PKLListItem

	DokumenDiterima  string  `json:"dokumenDiterima"`
	DokumenMentor    string  `json:"dokumenMentor"`
	DokumenPimpinan  string  `json:"dokumenPimpinan"`
	DokumenSelesai   *string `json:"dokumenSelesai"`
	DokumenLaporan   *string `json:"dokumenLaporan"`
	DokumenPenilaian *string `json:"dokumenPenilaian"`
}

// TimelineActor is the user attached to a timeline entry.
type TimelineActor struct {
	ID          uuid.UUID       `json:"id"`
	NamaLengkap string          `json:"namaLengkap"`
	Type        models.UserType `json:"type"`
}

// PKLTimelineItem is one audit-trail row. User is nil for system entries.
type PKLTimelineItem struct {
	ID        uuid.UUID        `json:"id"`
	Status    models.PKLStatus `json:"status"`
	Deskripsi string           `json:"deskripsi"`
	User      *TimelineActor   `json:"user"`
	CreatedAt time.Time        `json:"createdAt"`
}

// PKLCreateOption is a label/value pair for the submission form.
type PKLCreateOption struct {
	Value uuid.UUID `json:"value"`
	Label string    `json:"label"`
}

// PKLCreateData backs the PKL submission form: the student's own snapshot
// plus the selectable coordinators.
type PKLCreateData struct {
	Mahasiswa    MahasiswaRef      `json:"mahasiswa"`
	Fakultas     FakultasRef       `json:"fakultas"`
	ProgramStudi ProgramStudiRef   `json:"programStudi"`
	Koordinator  []PKLCreateOption `json:"koordinator"`
}
