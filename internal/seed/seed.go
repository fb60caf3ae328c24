// Package seed populates an empty database with a minimal working data
// set for local development: one admin, one faculty with a study program,
// two lecturers and one student.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yudha/sipkl/internal/config"
	"github.com/yudha/sipkl/internal/db"
	"github.com/yudha/sipkl/internal/pkg/auth"
	"github.com/yudha/sipkl/internal/pkg/logger"
)

// Run seeds the database when seeding is enabled and no user exists yet.
func Run(ctx context.Context, database *db.PostgresDB, cfg *config.Config) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	var count int
	if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		logger.Debug().Msg("database already has users, skipping seed")
		return nil
	}

	password, err := auth.HashPassword(cfg.Seed.DefaultPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		insertUser := func(email, userType, nama string) (uuid.UUID, error) {
			id := uuid.New()
			_, err := tx.Exec(ctx,
				`INSERT INTO users (id, email, password, type, nama_lengkap) VALUES ($1, $2, $3, $4, $5)`,
				id, email, password, userType, nama)
			return id, err
		}

		if _, err := insertUser("admin@sipkl.app", "Admin", "Administrator"); err != nil {
			return err
		}

		fakultasID := uuid.New()
		if _, err := tx.Exec(ctx,
			`INSERT INTO fakultas (id, nama, initial) VALUES ($1, $2, $3)`,
			fakultasID, "Fakultas Teknik", "FT"); err != nil {
			return err
		}

		kaprodiUser, err := insertUser("kaprodi@sipkl.app", "Dosen", "Dr. Rina Wijaya")
		if err != nil {
			return err
		}
		kaprodiID := uuid.New()
		if _, err := tx.Exec(ctx,
			`INSERT INTO dosen (id, user_id, nomor_induk) VALUES ($1, $2, $3)`,
			kaprodiID, kaprodiUser, "0011223344"); err != nil {
			return err
		}

		koordinatorUser, err := insertUser("koordinator@sipkl.app", "Dosen", "Dr. Andi Pratama")
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO dosen (id, user_id, nomor_induk) VALUES ($1, $2, $3)`,
			uuid.New(), koordinatorUser, "0055667788"); err != nil {
			return err
		}

		prodiID := uuid.New()
		if _, err := tx.Exec(ctx,
			`INSERT INTO program_studi (id, fakultas_id, kaprodi_id, nama) VALUES ($1, $2, $3, $4)`,
			prodiID, fakultasID, kaprodiID, "Teknik Informatika"); err != nil {
			return err
		}

		mahasiswaUser, err := insertUser("mahasiswa@sipkl.app", "Mahasiswa", "Budi Santoso")
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO mahasiswa (id, user_id, fakultas_id, prodi_id, nim, semester) VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), mahasiswaUser, fakultasID, prodiID, "2110001", 5); err != nil {
			return err
		}

		logger.Info().Msg("seed data inserted")
		return nil
	})
}
