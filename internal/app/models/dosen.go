package models

import (
	"time"

	"github.com/google/uuid"
)

// Dosen is a lecturer profile linked 1:1 to a User. A dosen assigned to a
// PKL acts as its koordinator.
type Dosen struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"userId"`
	NomorInduk string    `db:"nomor_induk" json:"nomorInduk"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}
