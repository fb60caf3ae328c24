package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/db"
)

// DosenRepository handles database operations for lecturer profiles.
type DosenRepository struct {
	db *db.PostgresDB
}

// NewDosenRepository creates a new DosenRepository.
func NewDosenRepository(database *db.PostgresDB) *DosenRepository {
	return &DosenRepository{db: database}
}

func selectDosenQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "user_id", "nomor_induk", "created_at", "updated_at",
	).From("dosen").PlaceholderFormat(squirrel.Dollar)
}

func (r *DosenRepository) scanDosen(ctx context.Context, builder squirrel.SelectBuilder) (*models.Dosen, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var d models.Dosen
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&d.ID, &d.UserID, &d.NomorInduk, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID returns the lecturer profile with the given id.
func (r *DosenRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dosen, error) {
	return r.scanDosen(ctx, selectDosenQuery().Where(squirrel.Eq{"id": id}))
}

// GetByUserID returns the lecturer profile owned by the given account.
func (r *DosenRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Dosen, error) {
	return r.scanDosen(ctx, selectDosenQuery().Where(squirrel.Eq{"user_id": userID}))
}

// ListOptions returns every lecturer as a value/label pair for the
// submission form, ordered by display name.
func (r *DosenRepository) ListOptions(ctx context.Context) ([]dto.PKLCreateOption, error) {
	sql, args, err := squirrel.Select("d.id", "u.nama_lengkap").
		From("dosen d").
		Join("users u ON d.user_id = u.id").
		OrderBy("u.nama_lengkap ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := make([]dto.PKLCreateOption, 0)
	for rows.Next() {
		var option dto.PKLCreateOption
		if err := rows.Scan(&option.Value, &option.Label); err != nil {
			return nil, err
		}
		options = append(options, option)
	}
	return options, rows.Err()
}
