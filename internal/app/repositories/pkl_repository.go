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

// pklTotalJurnalExpr counts the journals of the row's PKL. It appears both
// as a projected column and, verbatim, in the totalJurnal range filter.
const pklTotalJurnalExpr = "(SELECT COUNT(*) FROM jurnal j WHERE j.pkl_id = p.id)"

// pklSearchColumns are the columns the free-text search matches against.
var pklSearchColumns = []string{"um.nama_lengkap", "m.nim", "p.nama_instansi", "uk.nama_lengkap"}

// pklSortFields maps API sort names to ORDER BY targets.
var pklSortFields = map[string]string{
	"createdAt":      "p.created_at",
	"updatedAt":      "p.updated_at",
	"namaInstansi":   "p.nama_instansi",
	"tanggalMulai":   "p.tanggal_mulai",
	"tanggalSelesai": "p.tanggal_selesai",
	"status":         "p.status",
	"totalJurnal":    "total_jurnal",
}

// PKLScope restricts a listing to the rows the caller is a party to. A nil
// field means no restriction on that axis; admins use an empty scope.
type PKLScope struct {
	MahasiswaID *uuid.UUID
	DosenID     *uuid.UUID
}

// PKLStatusUpdate is a compare-and-set status change. The update only
// lands when the stored status still equals Expected; otherwise the row
// was changed concurrently and the caller gets apperrors.ErrConflict.
type PKLStatusUpdate struct {
	ID       uuid.UUID
	Expected models.PKLStatus
	New      models.PKLStatus

	// Side-effect stamps, applied only when non-nil.
	ApprovedAt         *time.Time
	RejectedAt         *time.Time
	RejectedAtSemester *int
	FinishedAt         *time.Time
}

// PKLRepository handles database operations for internship records.
type PKLRepository struct {
	db *db.PostgresDB
}

// NewPKLRepository creates a new PKLRepository.
func NewPKLRepository(database *db.PostgresDB) *PKLRepository {
	return &PKLRepository{db: database}
}

// pklReadModelQuery is the joined projection behind the list and detail
// read models. withDocuments additionally projects the document paths,
// which only the detail view exposes.
func pklReadModelQuery(withDocuments bool) squirrel.SelectBuilder {
	columns := []string{
		"p.id", "p.nama_instansi", "p.tanggal_mulai", "p.tanggal_selesai",
		"p.status", "p.approved_at", "p.rejected_at", "p.rejected_at_semester",
		"p.finished_at", "p.created_at", "p.updated_at",
		"m.id", "um.nama_lengkap", "m.nim", "m.semester",
		"k.id", "uk.nama_lengkap", "k.nomor_induk",
		"f.id", "f.nama", "f.initial",
		"ps.id", "ps.nama", "kp.id", "ukp.nama_lengkap", "kp.nomor_induk",
		pklTotalJurnalExpr + " AS total_jurnal",
	}
	if withDocuments {
		columns = append(columns,
			"p.dokumen_diterima", "p.dokumen_mentor", "p.dokumen_pimpinan",
			"p.dokumen_selesai", "p.dokumen_laporan", "p.dokumen_penilaian",
		)
	}
	return squirrel.Select(columns...).From("pkl p").
		Join("mahasiswa m ON p.mahasiswa_id = m.id").
		Join("users um ON m.user_id = um.id").
		Join("dosen k ON p.koordinator_id = k.id").
		Join("users uk ON k.user_id = uk.id").
		Join("fakultas f ON p.fakultas_id = f.id").
		Join("program_studi ps ON p.prodi_id = ps.id").
		Join("dosen kp ON ps.kaprodi_id = kp.id").
		Join("users ukp ON kp.user_id = ukp.id")
}

func pklCountQuery() squirrel.SelectBuilder {
	return squirrel.Select("COUNT(*)").From("pkl p").
		Join("mahasiswa m ON p.mahasiswa_id = m.id").
		Join("users um ON m.user_id = um.id").
		Join("dosen k ON p.koordinator_id = k.id").
		Join("users uk ON k.user_id = uk.id").
		Join("program_studi ps ON p.prodi_id = ps.id")
}

func scanPKLListItem(rows pgx.Rows, item *dto.PKLListItem) error {
	return rows.Scan(
		&item.ID, &item.NamaInstansi, &item.TanggalMulai, &item.TanggalSelesai,
		&item.Status, &item.ApprovedAt, &item.RejectedAt, &item.RejectedAtSemester,
		&item.FinishedAt, &item.CreatedAt, &item.UpdatedAt,
		&item.Mahasiswa.ID, &item.Mahasiswa.NamaLengkap, &item.Mahasiswa.NIM, &item.Mahasiswa.Semester,
		&item.Koordinator.ID, &item.Koordinator.NamaLengkap, &item.Koordinator.NomorInduk,
		&item.Fakultas.ID, &item.Fakultas.Nama, &item.Fakultas.Initial,
		&item.ProgramStudi.ID, &item.ProgramStudi.Nama,
		&item.ProgramStudi.Kaprodi.ID, &item.ProgramStudi.Kaprodi.NamaLengkap, &item.ProgramStudi.Kaprodi.NomorInduk,
		&item.TotalJurnal,
	)
}

// List returns one page of the PKL read model plus the pre-pagination
// total, scoped to the caller and narrowed by the supplied filters.
func (r *PKLRepository) List(ctx context.Context, scope PKLScope, q dto.PKLListQuery) ([]dto.PKLListItem, int64, error) {
	builder := query.NewBuilder(pklReadModelQuery(false), pklCountQuery()).
		In("p.status", q.Status).
		InIDs("p.fakultas_id", q.Fakultas).
		InIDs("p.koordinator_id", q.Koordinator).
		InIDs("ps.kaprodi_id", q.Kaprodi).
		InIDs("p.mahasiswa_id", q.Mahasiswa).
		DateRange("p.created_at", q.CreatedAt).
		DateRange("p.finished_at", q.FinishedAt).
		DateRange("p.tanggal_mulai", q.TanggalMulai).
		DateRange("p.tanggal_selesai", q.TanggalSelesai).
		IntRange(pklTotalJurnalExpr, q.TotalJurnal).
		Search(q.Search, pklSearchColumns...).
		SortFields(pklSortFields, "p.updated_at DESC").
		Paginate(q.Page, q.Limit, q.SortBy, q.SortOrder)

	if scope.MahasiswaID != nil {
		builder.Equals("p.mahasiswa_id", *scope.MahasiswaID)
	}
	if scope.DosenID != nil {
		builder.Where("(p.koordinator_id = ? OR ps.kaprodi_id = ?)", *scope.DosenID, *scope.DosenID)
	}

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

	items := make([]dto.PKLListItem, 0)
	for rows.Next() {
		var item dto.PKLListItem
		if err := scanPKLListItem(rows, &item); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

// GetDetail returns the full read model of one PKL.
func (r *PKLRepository) GetDetail(ctx context.Context, id uuid.UUID) (*dto.PKLDetail, error) {
	sql, args, err := pklReadModelQuery(true).
		Where(squirrel.Eq{"p.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var d dto.PKLDetail
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&d.ID, &d.NamaInstansi, &d.TanggalMulai, &d.TanggalSelesai,
		&d.Status, &d.ApprovedAt, &d.RejectedAt, &d.RejectedAtSemester,
		&d.FinishedAt, &d.CreatedAt, &d.UpdatedAt,
		&d.Mahasiswa.ID, &d.Mahasiswa.NamaLengkap, &d.Mahasiswa.NIM, &d.Mahasiswa.Semester,
		&d.Koordinator.ID, &d.Koordinator.NamaLengkap, &d.Koordinator.NomorInduk,
		&d.Fakultas.ID, &d.Fakultas.Nama, &d.Fakultas.Initial,
		&d.ProgramStudi.ID, &d.ProgramStudi.Nama,
		&d.ProgramStudi.Kaprodi.ID, &d.ProgramStudi.Kaprodi.NamaLengkap, &d.ProgramStudi.Kaprodi.NomorInduk,
		&d.TotalJurnal,
		&d.DokumenDiterima, &d.DokumenMentor, &d.DokumenPimpinan,
		&d.DokumenSelesai, &d.DokumenLaporan, &d.DokumenPenilaian,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID returns the raw PKL record.
func (r *PKLRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PKL, error) {
	sql, args, err := squirrel.Select(
		"id", "mahasiswa_id", "koordinator_id", "fakultas_id", "prodi_id",
		"nama_instansi", "tanggal_mulai", "tanggal_selesai",
		"status", "approved_at", "rejected_at", "rejected_at_semester", "finished_at",
		"dokumen_diterima", "dokumen_mentor", "dokumen_pimpinan",
		"dokumen_selesai", "dokumen_laporan", "dokumen_penilaian",
		"created_at", "updated_at",
	).From("pkl").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p models.PKL
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.MahasiswaID, &p.KoordinatorID, &p.FakultasID, &p.ProdiID,
		&p.NamaInstansi, &p.TanggalMulai, &p.TanggalSelesai,
		&p.Status, &p.ApprovedAt, &p.RejectedAt, &p.RejectedAtSemester, &p.FinishedAt,
		&p.DokumenDiterima, &p.DokumenMentor, &p.DokumenPimpinan,
		&p.DokumenSelesai, &p.DokumenLaporan, &p.DokumenPenilaian,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetLatestStatusByMahasiswa returns the status of the student's most
// recent PKL, or nil when the student has none.
func (r *PKLRepository) GetLatestStatusByMahasiswa(ctx context.Context, mahasiswaID uuid.UUID) (*models.PKLStatus, error) {
	sql, args, err := squirrel.Select("status").
		From("pkl").
		Where(squirrel.Eq{"mahasiswa_id": mahasiswaID}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var status models.PKLStatus
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&status)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func insertPKLTimeline(ctx context.Context, tx pgx.Tx, entry *models.PKLTimeline) error {
	sql, args, err := squirrel.Insert("pkl_timeline").
		Columns("id", "pkl_id", "user_id", "status", "deskripsi", "created_at").
		Values(entry.ID, entry.PKLID, entry.UserID, entry.Status, entry.Deskripsi, entry.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

// Create inserts a new PKL together with its first timeline entry.
func (r *PKLRepository) Create(ctx context.Context, pkl *models.PKL, entry *models.PKLTimeline) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Insert("pkl").
			Columns(
				"id", "mahasiswa_id", "koordinator_id", "fakultas_id", "prodi_id",
				"nama_instansi", "tanggal_mulai", "tanggal_selesai", "status",
				"dokumen_diterima", "dokumen_mentor", "dokumen_pimpinan",
				"created_at", "updated_at",
			).
			Values(
				pkl.ID, pkl.MahasiswaID, pkl.KoordinatorID, pkl.FakultasID, pkl.ProdiID,
				pkl.NamaInstansi, pkl.TanggalMulai, pkl.TanggalSelesai, pkl.Status,
				pkl.DokumenDiterima, pkl.DokumenMentor, pkl.DokumenPimpinan,
				pkl.CreatedAt, pkl.UpdatedAt,
			).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
		return insertPKLTimeline(ctx, tx, entry)
	})
}

// Resubmit rewrites the submission fields and sends the PKL back to
// Menunggu Persetujuan, provided its status is still one of expected.
// Returns apperrors.ErrConflict when the precondition no longer holds.
func (r *PKLRepository) Resubmit(ctx context.Context, pkl *models.PKL, expected []models.PKLStatus, entry *models.PKLTimeline) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Update("pkl").
			Set("nama_instansi", pkl.NamaInstansi).
			Set("tanggal_mulai", pkl.TanggalMulai).
			Set("tanggal_selesai", pkl.TanggalSelesai).
			Set("dokumen_diterima", pkl.DokumenDiterima).
			Set("dokumen_mentor", pkl.DokumenMentor).
			Set("dokumen_pimpinan", pkl.DokumenPimpinan).
			Set("status", models.PKLMenungguPersetujuan).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": pkl.ID, "status": expected}).
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
		return insertPKLTimeline(ctx, tx, entry)
	})
}

// UpdateStatus applies a compare-and-set status change and appends its
// timeline entry. Returns apperrors.ErrConflict when the stored status no
// longer matches upd.Expected.
func (r *PKLRepository) UpdateStatus(ctx context.Context, upd PKLStatusUpdate, entry *models.PKLTimeline) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		builder := squirrel.Update("pkl").
			Set("status", upd.New).
			Set("updated_at", time.Now())
		if upd.ApprovedAt != nil {
			builder = builder.Set("approved_at", *upd.ApprovedAt)
		}
		if upd.RejectedAt != nil {
			builder = builder.Set("rejected_at", *upd.RejectedAt)
		}
		if upd.RejectedAtSemester != nil {
			builder = builder.Set("rejected_at_semester", *upd.RejectedAtSemester)
		}
		if upd.FinishedAt != nil {
			builder = builder.Set("finished_at", *upd.FinishedAt)
		}

		sql, args, err := builder.
			Where(squirrel.Eq{"id": upd.ID, "status": upd.Expected}).
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
		return insertPKLTimeline(ctx, tx, entry)
	})
}

// Finalize stores the finalization documents and moves the PKL to Proses
// Finalisasi, provided its status is still one of expected. Returns
// apperrors.ErrConflict when the precondition no longer holds.
func (r *PKLRepository) Finalize(ctx context.Context, id uuid.UUID, selesai, laporan, penilaian string, expected []models.PKLStatus, entry *models.PKLTimeline) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Update("pkl").
			Set("dokumen_selesai", selesai).
			Set("dokumen_laporan", laporan).
			Set("dokumen_penilaian", penilaian).
			Set("status", models.PKLProsesFinalisasi).
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
		return insertPKLTimeline(ctx, tx, entry)
	})
}

// ListTimeline returns one page of a PKL's audit trail, newest first. The
// actor join is a LEFT JOIN: system entries have no user.
func (r *PKLRepository) ListTimeline(ctx context.Context, pklID uuid.UUID, q dto.ListQuery) ([]dto.PKLTimelineItem, int64, error) {
	sel := squirrel.Select(
		"t.id", "t.status", "t.deskripsi", "t.created_at",
		"u.id", "u.nama_lengkap", "u.type",
	).From("pkl_timeline t").
		LeftJoin("users u ON t.user_id = u.id")
	count := squirrel.Select("COUNT(*)").From("pkl_timeline t")

	builder := query.NewBuilder(sel, count).
		Equals("t.pkl_id", pklID).
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

	items := make([]dto.PKLTimelineItem, 0)
	for rows.Next() {
		var item dto.PKLTimelineItem
		var userID *uuid.UUID
		var userName *string
		var userType *models.UserType
		if err := rows.Scan(&item.ID, &item.Status, &item.Deskripsi, &item.CreatedAt, &userID, &userName, &userType); err != nil {
			return nil, 0, err
		}
		if userID != nil {
			item.User = &dto.TimelineActor{ID: *userID, NamaLengkap: *userName, Type: *userType}
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}
