// Package repositories contains the PostgreSQL data access layer. Every
// status mutation and its timeline append run in a single transaction, so
// the audit trail never drifts from the record it describes.
package repositories

import (
	"github.com/yudha/sipkl/internal/db"
)

// Repositories bundles every repository for dependency wiring.
type Repositories struct {
	User         *UserRepository
	Mahasiswa    *MahasiswaRepository
	Dosen        *DosenRepository
	Fakultas     *FakultasRepository
	ProgramStudi *ProgramStudiRepository
	PKL          *PKLRepository
	Jurnal       *JurnalRepository
}

// NewRepositories creates all repositories over one shared pool.
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(database),
		Mahasiswa:    NewMahasiswaRepository(database),
		Dosen:        NewDosenRepository(database),
		Fakultas:     NewFakultasRepository(database),
		ProgramStudi: NewProgramStudiRepository(database),
		PKL:          NewPKLRepository(database),
		Jurnal:       NewJurnalRepository(database),
	}
}
