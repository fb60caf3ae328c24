package models

import (
	"time"

	"github.com/google/uuid"
)

// Fakultas is a faculty.
type Fakultas struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Nama      string    `db:"nama" json:"nama"`
	Initial   string    `db:"initial" json:"initial"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ProgramStudi is a study program within a faculty, headed by a dosen
// (kaprodi).
type ProgramStudi struct {
	ID         uuid.UUID `db:"id" json:"id"`
	FakultasID uuid.UUID `db:"fakultas_id" json:"fakultasId"`
	KaprodiID  uuid.UUID `db:"kaprodi_id" json:"kaprodiId"`
	Nama       string    `db:"nama" json:"nama"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}
