package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	appauth "github.com/yudha/sipkl/internal/app/auth"
	"github.com/yudha/sipkl/internal/app/messages"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
	"github.com/yudha/sipkl/internal/pkg/dberrors"
	"github.com/yudha/sipkl/internal/pkg/filestorage"
	"github.com/yudha/sipkl/internal/pkg/logger"
)

// JurnalService implements the journal workflow. Journals always belong
// to a PKL; every operation authorizes against the parent record.
type JurnalService interface {
	List(ctx context.Context, ident appauth.Identity, pklID uuid.UUID, q dto.JurnalListQuery) (*dto.Paginated[dto.JurnalItem], error)
	GetDetail(ctx context.Context, ident appauth.Identity, id uuid.UUID) (*dto.JurnalItem, error)
	ListTimeline(ctx context.Context, ident appauth.Identity, id uuid.UUID, q dto.ListQuery) (*dto.Paginated[dto.JurnalTimelineItem], error)
	Create(ctx context.Context, ident appauth.Identity, pklID uuid.UUID, req dto.JurnalCreateRequest, attachments []dto.FileUpload) (*dto.JurnalItem, error)
	Update(ctx context.Context, ident appauth.Identity, id uuid.UUID, req dto.JurnalUpdateRequest, attachments []dto.FileUpload) (*dto.JurnalItem, error)
	UpdateStatus(ctx context.Context, ident appauth.Identity, id uuid.UUID, req dto.JurnalUpdateStatusRequest) error
}

type jurnalServiceImpl struct {
	jurnal  JurnalStore
	pkl     PKLStore
	prodi   ProgramStudiStore
	storage filestorage.Store
}

// NewJurnalService creates a new JurnalService.
func NewJurnalService(jurnal JurnalStore, pkl PKLStore, prodi ProgramStudiStore, storage filestorage.Store) JurnalService {
	return &jurnalServiceImpl{jurnal: jurnal, pkl: pkl, prodi: prodi, storage: storage}
}

// jurnalAttachmentName builds the blob name of the i-th attachment,
// "{jurnalId}_attachment_{i}{ext}".
func jurnalAttachmentName(id uuid.UUID, i int, filename string) string {
	return fmt.Sprintf("%s_attachment_%d%s", id, i, strings.ToLower(filepath.Ext(filename)))
}

func jurnalItem(j *models.Jurnal) *dto.JurnalItem {
	attachments := j.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return &dto.JurnalItem{
		ID:             j.ID,
		Status:         j.Status,
		Konten:         j.Konten,
		Attachments:    attachments,
		TanggalMulai:   j.TanggalMulai,
		TanggalSelesai: j.TanggalSelesai,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func (s *jurnalServiceImpl) cleanupBlobs(names []string) {
	if len(names) == 0 {
		return
	}
	if _, err := s.storage.Delete(filestorage.FolderJurnal, names...); err != nil {
		logger.Warn().Err(err).Strs("names", names).Msg("failed to clean up blobs")
	}
}

// resolveForRead loads a journal the caller may see, by way of its parent
// PKL. Callers who are not a party to the PKL get not-found.
func (s *jurnalServiceImpl) resolveForRead(ctx context.Context, ident appauth.Identity, id uuid.UUID) (*models.Jurnal, error) {
	jurnal, err := s.jurnal.GetByID(ctx, id)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound(messages.JurnalNotFound)
		}
		return nil, apperrors.NewInternal(messages.JurnalNotFound, err)
	}
	if _, err := resolvePKLForRead(ctx, s.pkl, s.prodi, ident, jurnal.PKLID); err != nil {
		return nil, apperrors.NewNotFound(messages.JurnalNotFound)
	}
	return jurnal, nil
}

// List returns one page of a PKL's journals.
func (s *jurnalServiceImpl) List(ctx context.Context, ident appauth.Identity, pklID uuid.UUID, q dto.JurnalListQuery) (*dto.Paginated[dto.JurnalItem], error) {
	if _, err := resolvePKLForRead(ctx, s.pkl, s.prodi, ident, pklID); err != nil {
		return nil, err
	}
	items, total, err := s.jurnal.List(ctx, pklID, q)
	if err != nil {
		return nil, apperrors.NewInternal(messages.DataNotFound, err)
	}
	return dto.NewPaginated(total, items), nil
}

// GetDetail returns one journal.
func (s *jurnalServiceImpl) GetDetail(ctx context.Context, ident appauth.Identity, id uuid.UUID) (*dto.JurnalItem, error) {
	jurnal, err := s.resolveForRead(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	return jurnalItem(jurnal), nil
}

// ListTimeline returns one page of a journal's audit trail.
func (s *jurnalServiceImpl) ListTimeline(ctx context.Context, ident appauth.Identity, id uuid.UUID, q dto.ListQuery) (*dto.Paginated[dto.JurnalTimelineItem], error) {
	if _, err := s.resolveForRead(ctx, ident, id); err != nil {
		return nil, err
	}
	items, total, err := s.jurnal.ListTimeline(ctx, id, q)
	if err != nil {
		return nil, apperrors.NewInternal(messages.DataNotFound, err)
	}
	return dto.NewPaginated(total, items), nil
}

// Create files a journal against an accepted PKL. The attachments are
// stored first; if the insert then fails, they are deleted again.
func (s *jurnalServiceImpl) Create(ctx context.Context, ident appauth.Identity, pklID uuid.UUID, req dto.JurnalCreateRequest, attachments []dto.FileUpload) (*dto.JurnalItem, error) {
	if !ident.IsMahasiswa() {
		return nil, apperrors.NewForbidden(messages.JurnalFailCreateNotMahasiswa)
	}

	pkl, err := resolvePKLForWrite(ctx, s.pkl, ident, pklID)
	if err != nil {
		return nil, err
	}
	if pkl.Status != models.PKLDiterima {
		return nil, apperrors.NewBadRequest(messages.JurnalFailCreatePKLNotDiterima)
	}
	if len(attachments) == 0 {
		return nil, apperrors.NewBadRequest(messages.JurnalFailCreateNoAttachment)
	}

	id := uuid.New()
	var saved []string
	paths := make([]string, 0, len(attachments))
	for i, upload := range attachments {
		name := jurnalAttachmentName(id, i, upload.Filename)
		stored, err := s.storage.Save(filestorage.FolderJurnal, name, upload.Data)
		if err != nil {
			s.cleanupBlobs(saved)
			return nil, apperrors.NewInternal(messages.JurnalFailCreateGeneric, err)
		}
		saved = append(saved, name)
		paths = append(paths, stored)
	}

	now := time.Now()
	jurnal := &models.Jurnal{
		ID:             id,
		PKLID:          pklID,
		Status:         models.JurnalDiproses,
		Konten:         req.Konten,
		Attachments:    paths,
		TanggalMulai:   req.TanggalMulai,
		TanggalSelesai: req.TanggalSelesai,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	entry := &models.JurnalTimeline{
		ID:        uuid.New(),
		JurnalID:  id,
		UserID:    ident.UserID,
		Status:    models.JurnalDiproses,
		Deskripsi: messages.JurnalTimelineCreated,
		CreatedAt: now,
	}
	if err := s.jurnal.Create(ctx, jurnal, entry); err != nil {
		s.cleanupBlobs(saved)
		return nil, apperrors.NewInternal(messages.JurnalFailCreateGeneric, err)
	}

	logger.Info().Str("jurnalId", id.String()).Str("pklId", pklID.String()).Msg("jurnal created")
	return jurnalItem(jurnal), nil
}

// Update resubmits a rejected journal, sending it back to Diproses. When
// new attachments are supplied they replace the stored set; the old blobs
// are removed after the record update commits.
func (s *jurnalServiceImpl) Update(ctx context.Context, ident appauth.Identity, id uuid.UUID, req dto.JurnalUpdateRequest, attachments []dto.FileUpload) (*dto.JurnalItem, error) {
	if !ident.IsMahasiswa() {
		return nil, apperrors.NewForbidden(messages.JurnalFailUpdateNotMahasiswa)
	}

	jurnal, err := s.jurnal.GetByID(ctx, id)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound(messages.JurnalNotFound)
		}
		return nil, apperrors.NewInternal(messages.JurnalNotFound, err)
	}
	if _, err := resolvePKLForWrite(ctx, s.pkl, ident, jurnal.PKLID); err != nil {
		return nil, apperrors.NewNotFound(messages.JurnalNotFound)
	}
	if jurnal.Status != models.JurnalDitolak {
		return nil, apperrors.NewBadRequest(messages.JurnalFailUpdateIncorrectStatus)
	}

	updated := *jurnal
	updated.Konten = req.Konten
	updated.TanggalMulai = req.TanggalMulai
	updated.TanggalSelesai = req.TanggalSelesai

	var added, obsolete []string
	if len(attachments) > 0 {
		paths := make([]string, 0, len(attachments))
		for i, upload := range attachments {
			name := jurnalAttachmentName(id, i, upload.Filename)
			stored, err := s.storage.Save(filestorage.FolderJurnal, name, upload.Data)
			if err != nil {
				s.cleanupBlobs(added)
				return nil, apperrors.NewInternal(messages.JurnalFailUpdateGeneric, err)
			}
			added = append(added, name)
			paths = append(paths, stored)
		}
		for _, old := range jurnal.Attachments {
			kept := false
			for _, p := range paths {
				if p == old {
					kept = true
					break
				}
			}
			if !kept {
				obsolete = append(obsolete, path.Base(old))
			}
		}
		updated.Attachments = paths
	}

	entry := &models.JurnalTimeline{
		ID:        uuid.New(),
		JurnalID:  id,
		UserID:    ident.UserID,
		Status:    models.JurnalDiproses,
		Deskripsi: messages.JurnalTimelineUpdated,
		CreatedAt: time.Now(),
	}
	if err := s.jurnal.Resubmit(ctx, &updated, models.JurnalDitolak, entry); err != nil {
		s.cleanupBlobs(added)
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflict(messages.JurnalFailConflict)
		}
		return nil, apperrors.NewInternal(messages.JurnalFailUpdateGeneric, err)
	}

	s.cleanupBlobs(obsolete)
	updated.Status = models.JurnalDiproses
	return jurnalItem(&updated), nil
}

// UpdateStatus applies a review decision on a Diproses journal.
func (s *jurnalServiceImpl) UpdateStatus(ctx context.Context, ident appauth.Identity, id uuid.UUID, req dto.JurnalUpdateStatusRequest) error {
	if !ident.IsVerifier() {
		return apperrors.NewForbidden(messages.JurnalFailStatusNotVerifier)
	}
	if !req.Status.Valid() {
		return apperrors.NewBadRequest(messages.JurnalFailInvalidTransition)
	}

	jurnal, err := s.jurnal.GetByID(ctx, id)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.NewNotFound(messages.JurnalNotFound)
		}
		return apperrors.NewInternal(messages.JurnalNotFound, err)
	}

	pkl, err := s.pkl.GetByID(ctx, jurnal.PKLID)
	if err != nil {
		return apperrors.NewInternal(messages.JurnalNotFound, err)
	}
	if ident.IsDosen() && pkl.KoordinatorID != *ident.DosenID {
		return apperrors.NewNotFound(messages.JurnalNotFound)
	}
	if !models.CanReview(jurnal.Status, req.Status) {
		return apperrors.NewBadRequest(messages.JurnalFailInvalidTransition)
	}

	entry := &models.JurnalTimeline{
		ID:        uuid.New(),
		JurnalID:  id,
		UserID:    ident.UserID,
		Status:    req.Status,
		Deskripsi: req.Deskripsi,
		CreatedAt: time.Now(),
	}
	if err := s.jurnal.UpdateStatus(ctx, id, jurnal.Status, req.Status, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflict(messages.JurnalFailConflict)
		}
		return apperrors.NewInternal(messages.JurnalFailUpdateGeneric, err)
	}

	logger.Info().Str("jurnalId", id.String()).Str("from", string(jurnal.Status)).Str("to", string(req.Status)).Msg("jurnal status updated")
	return nil
}
