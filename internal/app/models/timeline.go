package models

import (
	"time"

	"github.com/google/uuid"
)

// PKLTimeline is an append-only audit record of a PKL status change.
// UserID is nil for system-originated changes.
type PKLTimeline struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PKLID     uuid.UUID  `db:"pkl_id" json:"pklId"`
	UserID    *uuid.UUID `db:"user_id" json:"userId"`
	Status    PKLStatus  `db:"status" json:"status"`
	Deskripsi string     `db:"deskripsi" json:"deskripsi"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}

// JurnalTimeline mirrors PKLTimeline for journals. The actor is never nil:
// the system does not mutate journal status.
type JurnalTimeline struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	JurnalID  uuid.UUID    `db:"jurnal_id" json:"jurnalId"`
	UserID    uuid.UUID    `db:"user_id" json:"userId"`
	Status    JurnalStatus `db:"status" json:"status"`
	Deskripsi string       `db:"deskripsi" json:"deskripsi"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
}
