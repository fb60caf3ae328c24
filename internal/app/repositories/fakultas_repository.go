package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/db"
)

// FakultasRepository handles database operations for faculties.
type FakultasRepository struct {
	db *db.PostgresDB
}

// NewFakultasRepository creates a new FakultasRepository.
func NewFakultasRepository(database *db.PostgresDB) *FakultasRepository {
	return &FakultasRepository{db: database}
}

// GetByID returns the faculty with the given id.
func (r *FakultasRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Fakultas, error) {
	sql, args, err := squirrel.Select("id", "nama", "initial", "created_at", "updated_at").
		From("fakultas").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var f models.Fakultas
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&f.ID, &f.Nama, &f.Initial, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
