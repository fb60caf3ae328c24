// Package services implements the workflow rules: role gating, status
// machines, compare-and-set mutations and blob lifecycle. Services talk to
// storage through the narrow store interfaces below, which the concrete
// repositories satisfy.
package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/app/repositories"
	"github.com/yudha/sipkl/internal/pkg/auth"
	"github.com/yudha/sipkl/internal/pkg/filestorage"
)

// UserStore reads accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// MahasiswaStore reads student profiles.
type MahasiswaStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Mahasiswa, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Mahasiswa, error)
	GetRef(ctx context.Context, id uuid.UUID) (*dto.MahasiswaRef, error)
}

// DosenStore reads lecturer profiles.
type DosenStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dosen, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Dosen, error)
	ListOptions(ctx context.Context) ([]dto.PKLCreateOption, error)
}

// FakultasStore reads faculties.
type FakultasStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Fakultas, error)
}

// ProgramStudiStore reads study programs.
type ProgramStudiStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramStudi, error)
	GetRef(ctx context.Context, id uuid.UUID) (*dto.ProgramStudiRef, error)
}

// PKLStore reads and mutates internship records. Mutations append their
// timeline entry in the same transaction; the compare-and-set ones report
// apperrors.ErrConflict on a stale precondition.
type PKLStore interface {
	List(ctx context.Context, scope repositories.PKLScope, q dto.PKLListQuery) ([]dto.PKLListItem, int64, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*dto.PKLDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PKL, error)
	GetLatestStatusByMahasiswa(ctx context.Context, mahasiswaID uuid.UUID) (*models.PKLStatus, error)
	Create(ctx context.Context, pkl *models.PKL, entry *models.PKLTimeline) error
	Resubmit(ctx context.Context, pkl *models.PKL, expected []models.PKLStatus, entry *models.PKLTimeline) error
	UpdateStatus(ctx context.Context, upd repositories.PKLStatusUpdate, entry *models.PKLTimeline) error
	Finalize(ctx context.Context, id uuid.UUID, selesai, laporan, penilaian string, expected []models.PKLStatus, entry *models.PKLTimeline) error
	ListTimeline(ctx context.Context, pklID uuid.UUID, q dto.ListQuery) ([]dto.PKLTimelineItem, int64, error)
}

// JurnalStore reads and mutates journals.
type JurnalStore interface {
	List(ctx context.Context, pklID uuid.UUID, q dto.JurnalListQuery) ([]dto.JurnalItem, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Jurnal, error)
	Create(ctx context.Context, jurnal *models.Jurnal, entry *models.JurnalTimeline) error
	Resubmit(ctx context.Context, jurnal *models.Jurnal, expected models.JurnalStatus, entry *models.JurnalTimeline) error
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next models.JurnalStatus, entry *models.JurnalTimeline) error
	ListTimeline(ctx context.Context, jurnalID uuid.UUID, q dto.ListQuery) ([]dto.JurnalTimelineItem, int64, error)
}

// Services bundles every service for dependency wiring.
type Services struct {
	Auth   AuthService
	PKL    PKLService
	Jurnal JurnalService
}

// NewServices creates all services over the repositories, token signer and
// blob store.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.Store) *Services {
	return &Services{
		Auth:   NewAuthService(repos.User, repos.Mahasiswa, repos.Dosen, repos.PKL, jwtService),
		PKL:    NewPKLService(repos.PKL, repos.Mahasiswa, repos.Dosen, repos.Fakultas, repos.ProgramStudi, storage),
		Jurnal: NewJurnalService(repos.Jurnal, repos.PKL, repos.ProgramStudi, storage),
	}
}
