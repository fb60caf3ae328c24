package models

import (
	"time"

	"github.com/google/uuid"
)

// JurnalStatus is the closed set of journal review states.
type JurnalStatus string

const (
	JurnalDiproses JurnalStatus = "Diproses"
	JurnalDitolak  JurnalStatus = "Ditolak"
	JurnalDiterima JurnalStatus = "Diterima"
)

// JurnalStatuses lists every journal state.
var JurnalStatuses = []JurnalStatus{JurnalDiproses, JurnalDitolak, JurnalDiterima}

// Valid reports whether s is a known journal status.
func (s JurnalStatus) Valid() bool {
	switch s {
	case JurnalDiproses, JurnalDitolak, JurnalDiterima:
		return true
	}
	return false
}

// CanReview reports whether a koordinator or admin may move a journal from
// one status to another. Only Diproses journals transition; both terminal
// states are dead ends, and Diproses is never a review target.
func CanReview(from, to JurnalStatus) bool {
	return from == JurnalDiproses && (to == JurnalDitolak || to == JurnalDiterima)
}

// Jurnal is a periodic activity report filed against an accepted PKL.
type Jurnal struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	PKLID          uuid.UUID    `db:"pkl_id" json:"pklId"`
	Status         JurnalStatus `db:"status" json:"status"`
	Konten         string       `db:"konten" json:"konten"`
	Attachments    []string     `db:"attachments" json:"attachments"`
	TanggalMulai   time.Time    `db:"tanggal_mulai" json:"tanggalMulai"`
	TanggalSelesai time.Time    `db:"tanggal_selesai" json:"tanggalSelesai"`
	CreatedAt      time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updatedAt"`
}
