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
	"github.com/yudha/sipkl/internal/app/repositories"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
	"github.com/yudha/sipkl/internal/pkg/dberrors"
	"github.com/yudha/sipkl/internal/pkg/filestorage"
	"github.com/yudha/sipkl/internal/pkg/logger"
)

// PKLService implements the internship workflow.
type PKLService interface {
	List(ctx context.Context, ident appauth.Identity, q dto.PKLListQuery) (*dto.Paginated[dto.PKLListItem], error)
	GetDetail(ctx context.Context, ident appauth.Identity, id uuid.UUID) (*dto.PKLDetail, error)
	ListTimeline(ctx context.Context, ident appauth.Identity, id uuid.UUID, q dto.ListQuery) (*dto.Paginated[dto.PKLTimelineItem], error)
	GetCreateData(ctx context.Context, ident appauth.Identity) (*dto.PKLCreateData, error)
	Create(ctx context.Context, ident appauth.Identity, req dto.PKLCreateRequest, files dto.PKLCreateFiles) (*dto.PKLDetail, error)
	Update(ctx context.Context, ident appauth.Identity, id uuid.UUID, req dto.PKLUpdateRequest, files dto.PKLCreateFiles) (*dto.PKLDetail, error)
	UpdateStatus(ctx context.Context, ident appauth.Identity, id uuid.UUID, req dto.PKLUpdateStatusRequest) error
	StartFinalization(ctx context.Context, ident appauth.Identity, id uuid.UUID) error
	Finalize(ctx context.Context, ident appauth.Identity, id uuid.UUID, files dto.PKLFinalizeFiles) error
}

type pklServiceImpl struct {
	pkl       PKLStore
	mahasiswa MahasiswaStore
	dosen     DosenStore
	fakultas  FakultasStore
	prodi     ProgramStudiStore
	storage   filestorage.Store
}

// NewPKLService creates a new PKLService.
func NewPKLService(pkl PKLStore, mahasiswa MahasiswaStore, dosen DosenStore, fakultas FakultasStore, prodi ProgramStudiStore, storage filestorage.Store) PKLService {
	return &pklServiceImpl{
		pkl:       pkl,
		mahasiswa: mahasiswa,
		dosen:     dosen,
		fakultas:  fakultas,
		prodi:     prodi,
		storage:   storage,
	}
}

// pklDocumentName builds the deterministic blob name of a document slot,
// "{pklId}_dokumen_{slot}{ext}". Resubmitting the same file type lands on
// the same name, overwriting in place.
func pklDocumentName(id uuid.UUID, slot, filename string) string {
	return fmt.Sprintf("%s_dokumen_%s%s", id, slot, strings.ToLower(filepath.Ext(filename)))
}

// cleanupBlobs best-effort deletes blobs after a failed or superseded
// write. Failures are logged, never surfaced.
func (s *pklServiceImpl) cleanupBlobs(folder string, names []string) {
	if len(names) == 0 {
		return
	}
	if _, err := s.storage.Delete(folder, names...); err != nil {
		logger.Warn().Err(err).Strs("names", names).Msg("failed to clean up blobs")
	}
}

// List returns one page of the PKL read model, scoped to what the caller
// is a party to. Admins see everything, students their own records, and
// lecturers the records they coordinate or head the program of.
func (s *pklServiceImpl) List(ctx context.Context, ident appauth.Identity, q dto.PKLListQuery) (*dto.Paginated[dto.PKLListItem], error) {
	var scope repositories.PKLScope
	switch {
	case ident.IsAdmin():
	case ident.IsMahasiswa():
		scope.MahasiswaID = ident.MahasiswaID
	case ident.IsDosen():
		scope.DosenID = ident.DosenID
	default:
		return nil, apperrors.NewUnauthorized(messages.AuthFailUnauthorized)
	}

	items, total, err := s.pkl.List(ctx, scope, q)
	if err != nil {
		return nil, apperrors.NewInternal(messages.DataNotFound, err)
	}
	return dto.NewPaginated(total, items), nil
}

// GetDetail returns the full read model of one PKL the caller is a party
// to.
func (s *pklServiceImpl) GetDetail(ctx context.Context, ident appauth.Identity, id uuid.UUID) (*dto.PKLDetail, error) {
	if _, err := resolvePKLForRead(ctx, s.pkl, s.prodi, ident, id); err != nil {
		return nil, err
	}
	detail, err := s.pkl.GetDetail(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternal(messages.PKLNotFound, err)
	}
	return detail, nil
}

// ListTimeline returns one page of a PKL's audit trail.
func (s *pklServiceImpl) ListTimeline(ctx context.Context, ident appauth.Identity, id uuid.UUID, q dto.ListQuery) (*dto.Paginated[dto.PKLTimelineItem], error) {
	if _, err := resolvePKLForRead(ctx, s.pkl, s.prodi, ident, id); err != nil {
		return nil, err
	}
	items, total, err := s.pkl.ListTimeline(ctx, id, q)
	if err != nil {
		return nil, apperrors.NewInternal(messages.DataNotFound, err)
	}
	return dto.NewPaginated(total, items), nil
}

// GetCreateData returns the data backing the submission form: the
// student's own snapshot and the selectable coordinators.
func (s *pklServiceImpl) GetCreateData(ctx context.Context, ident appauth.Identity) (*dto.PKLCreateData, error) {
	if !ident.IsMahasiswa() {
		return nil, apperrors.NewForbidden(messages.PKLFailCreateNotMahasiswa)
	}

	m, err := s.mahasiswa.GetByID(ctx, *ident.MahasiswaID)
	if err != nil {
		return nil, apperrors.NewInternal(messages.DataNotFound, err)
	}
	ref, err := s.mahasiswa.GetRef(ctx, m.ID)
	if err != nil {
		return nil, apperrors.NewInternal(messages.DataNotFound, err)
	}
	fakultas, err := s.fakultas.GetByID(ctx, m.FakultasID)
	if err != nil {
		return nil, apperrors.NewInternal(messages.DataNotFound, err)
	}
	prodi, err := s.prodi.GetRef(ctx, m.ProdiID)
	if err != nil {
		return nil, apperrors.NewInternal(messages.DataNotFound, err)
	}
	options, err := s.dosen.ListOptions(ctx)
	if err != nil {
		return nil, apperrors.NewInternal(messages.DataNotFound, err)
	}

	return &dto.PKLCreateData{
		Mahasiswa:    *ref,
		Fakultas:     dto.FakultasRef{ID: fakultas.ID, Nama: fakultas.Nama, Initial: fakultas.Initial},
		ProgramStudi: *prodi,
		Koordinator:  options,
	}, nil
}

// Create submits a new PKL. The three documents are stored first under
// names derived from the pre-generated record id; if the insert then
// fails, the stored blobs are deleted again.
func (s *pklServiceImpl) Create(ctx context.Context, ident appauth.Identity, req dto.PKLCreateRequest, files dto.PKLCreateFiles) (*dto.PKLDetail, error) {
	if !ident.IsMahasiswa() {
		return nil, apperrors.NewForbidden(messages.PKLFailCreateNotMahasiswa)
	}
	if files.DokumenDiterima == nil || files.DokumenMentor == nil || files.DokumenPimpinan == nil {
		return nil, apperrors.NewBadRequest(messages.PKLFailCreateMissingDocuments)
	}

	m, err := s.mahasiswa.GetByID(ctx, *ident.MahasiswaID)
	if err != nil {
		return nil, apperrors.NewInternal(messages.PKLFailCreateGeneric, err)
	}
	if _, err := s.dosen.GetByID(ctx, req.KoordinatorID); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewBadRequest(messages.DataSomeNotFound)
		}
		return nil, apperrors.NewInternal(messages.PKLFailCreateGeneric, err)
	}

	id := uuid.New()
	var saved []string
	fail := func(err error) (*dto.PKLDetail, error) {
		s.cleanupBlobs(filestorage.FolderPKL, saved)
		return nil, apperrors.NewInternal(messages.PKLFailCreateGeneric, err)
	}
	savePart := func(slot string, upload *dto.FileUpload) (string, error) {
		name := pklDocumentName(id, slot, upload.Filename)
		stored, err := s.storage.Save(filestorage.FolderPKL, name, upload.Data)
		if err != nil {
			return "", err
		}
		saved = append(saved, name)
		return stored, nil
	}

	diterima, err := savePart("diterima", files.DokumenDiterima)
	if err != nil {
		return fail(err)
	}
	mentor, err := savePart("mentor", files.DokumenMentor)
	if err != nil {
		return fail(err)
	}
	pimpinan, err := savePart("pimpinan", files.DokumenPimpinan)
	if err != nil {
		return fail(err)
	}

	now := time.Now()
	pkl := &models.PKL{
		ID:              id,
		MahasiswaID:     m.ID,
		KoordinatorID:   req.KoordinatorID,
		FakultasID:      m.FakultasID,
		ProdiID:         m.ProdiID,
		NamaInstansi:    req.NamaInstansi,
		TanggalMulai:    req.TanggalMulai,
		TanggalSelesai:  req.TanggalSelesai,
		Status:          models.PKLMenungguPersetujuan,
		DokumenDiterima: diterima,
		DokumenMentor:   mentor,
		DokumenPimpinan: pimpinan,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	entry := &models.PKLTimeline{
		ID:        uuid.New(),
		PKLID:     id,
		UserID:    &ident.UserID,
		Status:    models.PKLMenungguPersetujuan,
		Deskripsi: messages.PKLTimelineCreated,
		CreatedAt: now,
	}
	if err := s.pkl.Create(ctx, pkl, entry); err != nil {
		return fail(err)
	}

	logger.Info().Str("pklId", id.String()).Str("mahasiswaId", m.ID.String()).Msg("pkl created")
	return s.GetDetail(ctx, ident, id)
}

// Update resubmits a rejected PKL, rewriting its submission fields and
// sending it back to Menunggu Persetujuan. Document slots are optional;
// a supplied file replaces the stored one.
func (s *pklServiceImpl) Update(ctx context.Context, ident appauth.Identity, id uuid.UUID, req dto.PKLUpdateRequest, files dto.PKLCreateFiles) (*dto.PKLDetail, error) {
	if !ident.IsMahasiswa() {
		return nil, apperrors.NewForbidden(messages.PKLFailUpdateNotMahasiswa)
	}

	pkl, err := resolvePKLForWrite(ctx, s.pkl, ident, id)
	if err != nil {
		return nil, err
	}
	if !models.CanResubmit(pkl.Status) {
		return nil, apperrors.NewBadRequest(messages.PKLFailUpdateIncorrectStatus)
	}

	updated := *pkl
	updated.NamaInstansi = req.NamaInstansi
	updated.TanggalMulai = req.TanggalMulai
	updated.TanggalSelesai = req.TanggalSelesai

	// A new file with the same extension overwrites the stored blob in
	// place; a different extension lands on a new name, and the old blob
	// is removed after the record update commits.
	var added, obsolete []string
	replaceSlot := func(slot string, upload *dto.FileUpload, field *string) error {
		if upload == nil {
			return nil
		}
		name := pklDocumentName(id, slot, upload.Filename)
		stored, err := s.storage.Save(filestorage.FolderPKL, name, upload.Data)
		if err != nil {
			return err
		}
		if stored != *field {
			added = append(added, name)
			obsolete = append(obsolete, path.Base(*field))
		}
		*field = stored
		return nil
	}

	if err := replaceSlot("diterima", files.DokumenDiterima, &updated.DokumenDiterima); err != nil {
		s.cleanupBlobs(filestorage.FolderPKL, added)
		return nil, apperrors.NewInternal(messages.PKLFailUpdateGeneric, err)
	}
	if err := replaceSlot("mentor", files.DokumenMentor, &updated.DokumenMentor); err != nil {
		s.cleanupBlobs(filestorage.FolderPKL, added)
		return nil, apperrors.NewInternal(messages.PKLFailUpdateGeneric, err)
	}
	if err := replaceSlot("pimpinan", files.DokumenPimpinan, &updated.DokumenPimpinan); err != nil {
		s.cleanupBlobs(filestorage.FolderPKL, added)
		return nil, apperrors.NewInternal(messages.PKLFailUpdateGeneric, err)
	}

	entry := &models.PKLTimeline{
		ID:        uuid.New(),
		PKLID:     id,
		UserID:    &ident.UserID,
		Status:    models.PKLMenungguPersetujuan,
		Deskripsi: messages.PKLTimelineResubmitted,
		CreatedAt: time.Now(),
	}
	expected := []models.PKLStatus{models.PKLPengajuanDitolak, models.PKLVerifikasiGagal}
	if err := s.pkl.Resubmit(ctx, &updated, expected, entry); err != nil {
		s.cleanupBlobs(filestorage.FolderPKL, added)
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflict(messages.PKLFailConflict)
		}
		return nil, apperrors.NewInternal(messages.PKLFailUpdateGeneric, err)
	}

	s.cleanupBlobs(filestorage.FolderPKL, obsolete)
	return s.GetDetail(ctx, ident, id)
}

// UpdateStatus applies a verification decision. The transition table keys
// on the status loaded here, and the store enforces it is still current
// when the update lands.
func (s *pklServiceImpl) UpdateStatus(ctx context.Context, ident appauth.Identity, id uuid.UUID, req dto.PKLUpdateStatusRequest) error {
	if !ident.IsVerifier() {
		return apperrors.NewForbidden(messages.PKLFailStatusNotVerifier)
	}
	if !req.Status.Valid() {
		return apperrors.NewBadRequest(messages.PKLFailInvalidTransition)
	}

	pkl, err := s.pkl.GetByID(ctx, id)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.NewNotFound(messages.PKLNotFound)
		}
		return apperrors.NewInternal(messages.PKLNotFound, err)
	}
	if ident.IsDosen() && pkl.KoordinatorID != *ident.DosenID {
		return apperrors.NewNotFound(messages.PKLNotFound)
	}
	if !models.CanVerifierTransition(pkl.Status, req.Status) {
		return apperrors.NewBadRequest(messages.PKLFailInvalidTransition)
	}

	now := time.Now()
	upd := repositories.PKLStatusUpdate{ID: id, Expected: pkl.Status, New: req.Status}
	switch req.Status {
	case models.PKLDiterima:
		upd.ApprovedAt = &now
	case models.PKLDitolak:
		m, err := s.mahasiswa.GetByID(ctx, pkl.MahasiswaID)
		if err != nil {
			return apperrors.NewInternal(messages.PKLFailUpdateGeneric, err)
		}
		upd.RejectedAt = &now
		upd.RejectedAtSemester = &m.Semester
	case models.PKLSelesai:
		upd.FinishedAt = &now
	}

	entry := &models.PKLTimeline{
		ID:        uuid.New(),
		PKLID:     id,
		UserID:    &ident.UserID,
		Status:    req.Status,
		Deskripsi: req.Deskripsi,
		CreatedAt: now,
	}
	if err := s.pkl.UpdateStatus(ctx, upd, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflict(messages.PKLFailConflict)
		}
		return apperrors.NewInternal(messages.PKLFailUpdateGeneric, err)
	}

	logger.Info().Str("pklId", id.String()).Str("from", string(pkl.Status)).Str("to", string(req.Status)).Msg("pkl status updated")
	return nil
}

// StartFinalization moves an accepted PKL into Mulai Finalisasi on the
// student's request.
func (s *pklServiceImpl) StartFinalization(ctx context.Context, ident appauth.Identity, id uuid.UUID) error {
	if !ident.IsMahasiswa() {
		return apperrors.NewForbidden(messages.PKLFailUpdateNotMahasiswa)
	}

	pkl, err := resolvePKLForWrite(ctx, s.pkl, ident, id)
	if err != nil {
		return err
	}
	if !models.CanStartFinalization(pkl.Status) {
		return apperrors.NewBadRequest(messages.PKLFailStartIncorrectStatus)
	}

	now := time.Now()
	upd := repositories.PKLStatusUpdate{ID: id, Expected: models.PKLDiterima, New: models.PKLMulaiFinalisasi}
	entry := &models.PKLTimeline{
		ID:        uuid.New(),
		PKLID:     id,
		UserID:    &ident.UserID,
		Status:    models.PKLMulaiFinalisasi,
		Deskripsi: messages.PKLTimelineStartFinalization,
		CreatedAt: now,
	}
	if err := s.pkl.UpdateStatus(ctx, upd, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflict(messages.PKLFailConflict)
		}
		return apperrors.NewInternal(messages.PKLFailUpdateGeneric, err)
	}
	return nil
}

// Finalize stores the finalization documents and moves the PKL to Proses
// Finalisasi. Each slot may reuse the previously stored document, so a
// student rejected at finalization only re-uploads what changed.
func (s *pklServiceImpl) Finalize(ctx context.Context, ident appauth.Identity, id uuid.UUID, files dto.PKLFinalizeFiles) error {
	if !ident.IsMahasiswa() {
		return apperrors.NewForbidden(messages.PKLFailUpdateNotMahasiswa)
	}

	pkl, err := resolvePKLForWrite(ctx, s.pkl, ident, id)
	if err != nil {
		return err
	}
	if !models.CanFinalize(pkl.Status) {
		return apperrors.NewBadRequest(messages.PKLFailFinalizeIncorrectStatus)
	}

	var added, obsolete []string
	resolveSlot := func(slot string, upload *dto.FileUpload, stored *string) (string, error) {
		if upload == nil {
			if stored == nil || *stored == "" {
				return "", apperrors.NewBadRequest(messages.PKLFailFinalizeMissingDocuments)
			}
			return *stored, nil
		}
		name := pklDocumentName(id, slot, upload.Filename)
		saved, err := s.storage.Save(filestorage.FolderPKL, name, upload.Data)
		if err != nil {
			return "", apperrors.NewInternal(messages.PKLFailFinalizeGeneric, err)
		}
		if stored != nil && *stored != "" && *stored != saved {
			added = append(added, name)
			obsolete = append(obsolete, path.Base(*stored))
		} else if stored == nil || *stored == "" {
			added = append(added, name)
		}
		return saved, nil
	}

	selesai, err := resolveSlot("selesai", files.DokumenSelesai, pkl.DokumenSelesai)
	if err != nil {
		s.cleanupBlobs(filestorage.FolderPKL, added)
		return err
	}
	laporan, err := resolveSlot("laporan", files.DokumenLaporan, pkl.DokumenLaporan)
	if err != nil {
		s.cleanupBlobs(filestorage.FolderPKL, added)
		return err
	}
	penilaian, err := resolveSlot("penilaian", files.DokumenPenilaian, pkl.DokumenPenilaian)
	if err != nil {
		s.cleanupBlobs(filestorage.FolderPKL, added)
		return err
	}

	entry := &models.PKLTimeline{
		ID:        uuid.New(),
		PKLID:     id,
		UserID:    &ident.UserID,
		Status:    models.PKLProsesFinalisasi,
		Deskripsi: messages.PKLTimelineFinalized,
		CreatedAt: time.Now(),
	}
	expected := []models.PKLStatus{models.PKLMulaiFinalisasi, models.PKLFinalisasiDitolak}
	if err := s.pkl.Finalize(ctx, id, selesai, laporan, penilaian, expected, entry); err != nil {
		s.cleanupBlobs(filestorage.FolderPKL, added)
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflict(messages.PKLFailConflict)
		}
		return apperrors.NewInternal(messages.PKLFailFinalizeGeneric, err)
	}

	s.cleanupBlobs(filestorage.FolderPKL, obsolete)
	return nil
}
