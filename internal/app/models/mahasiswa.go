package models

import (
	"time"

	"github.com/google/uuid"
)

// Mahasiswa is a student profile linked 1:1 to a User.
type Mahasiswa struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"userId"`
	FakultasID uuid.UUID `db:"fakultas_id" json:"fakultasId"`
	ProdiID    uuid.UUID `db:"prodi_id" json:"prodiId"`
	NIM        string    `db:"nim" json:"nim"`
	Semester   int       `db:"semester" json:"semester"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}
