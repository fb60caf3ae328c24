package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
)

// JurnalCreateRequest is the multipart form body of a journal submission.
// At least one attachment file must travel with it.
type JurnalCreateRequest struct {
	Konten         string    `form:"konten" binding:"required"`
	TanggalMulai   time.Time `form:"tanggalMulai" time_format:"2006-01-02" binding:"required"`
	TanggalSelesai time.Time `form:"tanggalSelesai" time_format:"2006-01-02" binding:"required"`
}

// JurnalUpdateRequest is the resubmission body. Attachments are optional;
// when none are supplied the stored list is preserved.
type JurnalUpdateRequest struct {
	Konten         string    `form:"konten" binding:"required"`
	TanggalMulai   time.Time `form:"tanggalMulai" time_format:"2006-01-02" binding:"required"`
	TanggalSelesai time.Time `form:"tanggalSelesai" time_format:"2006-01-02" binding:"required"`
}

// JurnalUpdateStatusRequest is a koordinator/admin review decision.
type JurnalUpdateStatusRequest struct {
	Status    models.JurnalStatus `json:"status" binding:"required"`
	Deskripsi string              `json:"deskripsi"`
}

// JurnalListQuery filters the journal listing of one PKL.
type JurnalListQuery struct {
	ListQuery

	Status         []string `form:"status"`
	TanggalMulai   []int64  `form:"tanggalMulai"`
	TanggalSelesai []int64  `form:"tanggalSelesai"`
	CreatedAt      []int64  `form:"createdAt"`
	UpdatedAt      []int64  `form:"updatedAt"`
}

// JurnalItem is the journal read model, used by both list and detail.
type JurnalItem struct {
	ID             uuid.UUID           `json:"id"`
	Status         models.JurnalStatus `json:"status"`
	Konten         string              `json:"konten"`
	Attachments    []string            `json:"attachments"`
	TanggalMulai   time.Time           `json:"tanggalMulai"`
	TanggalSelesai time.Time           `json:"tanggalSelesai"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// JurnalTimelineItem is one journal audit-trail row.
type JurnalTimelineItem struct {
	ID        uuid.UUID           `json:"id"`
	Status    models.JurnalStatus `json:"status"`
	Deskripsi string              `json:"deskripsi"`
	User      *TimelineActor      `json:"user"`
	CreatedAt time.Time           `json:"createdAt"`
}
