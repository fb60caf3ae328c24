package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/app/query"
	"github.com/yudha/sipkl/internal/db"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
)

var jurnalSortFields = map[string]string{
	"createdAt":      "j.created_at",
	"updatedAt":      "j.updated_at",
	"tanggalMulai":   "j.tanggal_mulai",
	"tanggalSelesai": "j.tanggal_selesai",
	"status":         "j.status",
}

// JurnalRepository handles database operations for journals.
type JurnalRepository struct {
	db *db.PostgresDB
}

// NewJurnalRepository creates a new JurnalRepository.
func NewJurnalRepository(database *db.PostgresDB) *JurnalRepository {
	return &JurnalRepository{db: database}
}

// List returns one page of a PKL's journals plus the pre-pagination total.
func (r *JurnalRepository) List(ctx context.Context, pklID uuid.UUID, q dto.JurnalListQuery) ([]dto.JurnalItem, int64, error) {
	sel := squirrel.Select(
		"j.id", "j.status", "j.konten", "j.attachments",
		"j.tanggal_mulai", "j.tanggal_selesai", "j.created_at", "j.updated_at",
	).From("jurnal j")
	count := squirrel.Select("COUNT(*)").From("jurnal j")

	builder := query.NewBuilder(sel, count).
		Equals("j.pkl_id", pklID).
		In("j.status", q.Status).
		DateRange("j.tanggal_mulai", q.TanggalMulai).
		DateRange("j.tanggal_selesai", q.TanggalSelesai).
		DateRange("j.created_at", q.CreatedAt).
		DateRange("j.updated_at", q.UpdatedAt).
		Search(q.Search, "j.konten").
		SortFields(jurnalSortFields, "j.updated_at DESC").
		Paginate(q.Page, q.Limit, q.SortBy, q.SortOrder)

	countSQL, countArgs, err := builder.ToCountSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql, args, err := builder.ToSelectSQL()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]dto.JurnalItem, 0)
	for rows.Next() {
		var item dto.JurnalItem
		if err := rows.Scan(
			&item.ID, &item.Status, &item.Konten, &item.Attachments,
			&item.TanggalMulai, &item.TanggalSelesai, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

// GetByID returns the raw journal record.
func (r *JurnalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Jurnal, error) {
	sql, args, err := squirrel.Select(
		"id", "pkl_id", "status", "konten", "attachments",
		"tanggal_mulai", "tanggal_selesai", "created_at", "updated_at",
	).From("jurnal").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var j models.Jurnal
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&j.ID, &j.PKLID, &j.Status, &j.Konten, &j.Attachments,
		&j.TanggalMulai, &j.TanggalSelesai, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func insertJurnalTimeline(ctx context.Context, tx pgx.Tx, entry *models.JurnalTimeline) error {
	sql, args, err := squirrel.Insert("jurnal_timeline").
		Columns("id", "jurnal_id", "user_id", "status", "deskripsi", "created_at").
		Values(entry.ID, entry.JurnalID, entry.UserID, entry.Status, entry.Deskripsi, entry.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

// Create inserts a new journal together with its first timeline entry.
func (r *JurnalRepository) Create(ctx context.Context, jurnal *models.Jurnal, entry *models.JurnalTimeline) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Insert("jurnal").
			Columns(
				"id", "pkl_id", "status", "konten", "attachments",
				"tanggal_mulai", "tanggal_selesai", "created_at", "updated_at",
			).
			Values(
				jurnal.ID, jurnal.PKLID, jurnal.Status, jurnal.Konten, jurnal.Attachments,
				jurnal.TanggalMulai, jurnal.TanggalSelesai, jurnal.CreatedAt, jurnal.UpdatedAt,
			).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
		return insertJurnalTimeline(ctx, tx, entry)
	})
}

// Resubmit rewrites the journal content and sends it back to Diproses,
// provided its status is still expected. Returns apperrors.ErrConflict
// when the precondition no longer holds.
func (r *JurnalRepository) Resubmit(ctx context.Context, jurnal *models.Jurnal, expected models.JurnalStatus, entry *models.JurnalTimeline) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Update("jurnal").
			Set("konten", jurnal.Konten).
			Set("attachments", jurnal.Attachments).
			Set("tanggal_mulai", jurnal.TanggalMulai).
			Set("tanggal_selesai", jurnal.TanggalSelesai).
			Set("status", models.JurnalDiproses).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": jurnal.ID, "status": expected}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrConflict
		}
		return insertJurnalTimeline(ctx, tx, entry)
	})
}

// UpdateStatus applies a compare-and-set review decision and appends its
// timeline entry. Returns apperrors.ErrConflict when the stored status no
// longer matches expected.
func (r *JurnalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next models.JurnalStatus, entry *models.JurnalTimeline) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Update("jurnal").
			Set("status", next).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": id, "status": expected}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrConflict
		}
		return insertJurnalTimeline(ctx, tx, entry)
	})
}

// ListTimeline returns one page of a journal's audit trail, newest first.
func (r *JurnalRepository) ListTimeline(ctx context.Context, jurnalID uuid.UUID, q dto.ListQuery) ([]dto.JurnalTimelineItem, int64, error) {
	sel := squirrel.Select(
		"t.id", "t.status", "t.deskripsi", "t.created_at",
		"u.id", "u.nama_lengkap", "u.type",
	).From("jurnal_timeline t").
		Join("users u ON t.user_id = u.id")
	count := squirrel.Select("COUNT(*)").From("jurnal_timeline t")

	builder := query.NewBuilder(sel, count).
		Equals("t.jurnal_id", jurnalID).
		SortFields(map[string]string{"createdAt": "t.created_at"}, "t.created_at DESC").
		Paginate(q.Page, q.Limit, q.SortBy, q.SortOrder)

	countSQL, countArgs, err := builder.ToCountSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql, args, err := builder.ToSelectSQL()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]dto.JurnalTimelineItem, 0)
	for rows.Next() {
		var item dto.JurnalTimelineItem
		var actor dto.TimelineActor
		if err := rows.Scan(&item.ID, &item.Status, &item.Deskripsi, &item.CreatedAt, &actor.ID, &actor.NamaLengkap, &actor.Type); err != nil {
			return nil, 0, err
		}
		item.User = &actor
		items = append(items, item)
	}
	return items, total, rows.Err()
}
