package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/db"
)

// MahasiswaRepository handles database operations for student profiles.
type MahasiswaRepository struct {
	db *db.PostgresDB
}

// NewMahasiswaRepository creates a new MahasiswaRepository.
func NewMahasiswaRepository(database *db.PostgresDB) *MahasiswaRepository {
	return &MahasiswaRepository{db: database}
}

func selectMahasiswaQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "user_id", "fakultas_id", "prodi_id", "nim", "semester",
		"created_at", "updated_at",
	).From("mahasiswa").PlaceholderFormat(squirrel.Dollar)
}

func (r *MahasiswaRepository) scanMahasiswa(ctx context.Context, builder squirrel.SelectBuilder) (*models.Mahasiswa, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var m models.Mahasiswa
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&m.ID, &m.UserID, &m.FakultasID, &m.ProdiID, &m.NIM, &m.Semester,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID returns the student profile with the given id.
func (r *MahasiswaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Mahasiswa, error) {
	return r.scanMahasiswa(ctx, selectMahasiswaQuery().Where(squirrel.Eq{"id": id}))
}

// GetByUserID returns the student profile owned by the given account.
func (r *MahasiswaRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Mahasiswa, error) {
	return r.scanMahasiswa(ctx, selectMahasiswaQuery().Where(squirrel.Eq{"user_id": userID}))
}

// GetRef returns the read-model slice of a student, joined with the account
// for the display name.
func (r *MahasiswaRepository) GetRef(ctx context.Context, id uuid.UUID) (*dto.MahasiswaRef, error) {
	sql, args, err := squirrel.Select("m.id", "u.nama_lengkap", "m.nim", "m.semester").
		From("mahasiswa m").
		Join("users u ON m.user_id = u.id").
		Where(squirrel.Eq{"m.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ref dto.MahasiswaRef
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&ref.ID, &ref.NamaLengkap, &ref.NIM, &ref.Semester)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
