package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/db"
)

// UserRepository handles database operations for accounts.
type UserRepository struct {
	db *db.PostgresDB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{db: database}
}

func selectUserQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "email", "password", "type", "nama_lengkap", "nomor_handphone",
		"created_at", "updated_at",
	).From("users").PlaceholderFormat(squirrel.Dollar)
}

func (r *UserRepository) scanUser(ctx context.Context, builder squirrel.SelectBuilder) (*models.User, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.Type, &user.NamaLengkap,
		&user.NomorHandphone, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns the account with the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(ctx, selectUserQuery().Where(squirrel.Eq{"email": email}))
}

// GetByID returns the account with the given id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.scanUser(ctx, selectUserQuery().Where(squirrel.Eq{"id": id}))
}
