package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/db"
)

// ProgramStudiRepository handles database operations for study programs.
type ProgramStudiRepository struct {
	db *db.PostgresDB
}

// NewProgramStudiRepository creates a new ProgramStudiRepository.
func NewProgramStudiRepository(database *db.PostgresDB) *ProgramStudiRepository {
	return &ProgramStudiRepository{db: database}
}

// GetByID returns the study program with the given id.
func (r *ProgramStudiRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramStudi, error) {
	sql, args, err := squirrel.Select("id", "fakultas_id", "kaprodi_id", "nama", "created_at", "updated_at").
		From("program_studi").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ps models.ProgramStudi
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&ps.ID, &ps.FakultasID, &ps.KaprodiID, &ps.Nama, &ps.CreatedAt, &ps.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

// GetRef returns the read-model slice of a study program with its kaprodi
// resolved to a display name.
func (r *ProgramStudiRepository) GetRef(ctx context.Context, id uuid.UUID) (*dto.ProgramStudiRef, error) {
	sql, args, err := squirrel.Select("ps.id", "ps.nama", "d.id", "u.nama_lengkap", "d.nomor_induk").
		From("program_studi ps").
		Join("dosen d ON ps.kaprodi_id = d.id").
		Join("users u ON d.user_id = u.id").
		Where(squirrel.Eq{"ps.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ref dto.ProgramStudiRef
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&ref.ID, &ref.Nama, &ref.Kaprodi.ID, &ref.Kaprodi.NamaLengkap, &ref.Kaprodi.NomorInduk,
	)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
