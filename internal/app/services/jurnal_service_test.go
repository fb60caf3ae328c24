package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appauth "github.com/yudha/sipkl/internal/app/auth"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
)

type jurnalFixture struct {
	svc     JurnalService
	jurnals *fakeJurnalStore
	pkls    *fakePKLStore
	storage *fakeStorage

	pkl *models.PKL

	student      appauth.Identity
	otherStudent appauth.Identity
	lecturer     appauth.Identity
	admin        appauth.Identity
}

func newJurnalFixture(pklStatus models.PKLStatus) *jurnalFixture {
	mahasiswaID := uuid.New()
	otherID := uuid.New()
	dosenID := uuid.New()

	pkl := &models.PKL{
		ID:            uuid.New(),
		MahasiswaID:   mahasiswaID,
		KoordinatorID: dosenID,
		ProdiID:       uuid.New(),
		Status:        pklStatus,
		CreatedAt:     time.Now(),
	}

	jurnals := newFakeJurnalStore()
	pkls := newFakePKLStore()
	pkls.records[pkl.ID] = pkl
	storage := newFakeStorage()

	return &jurnalFixture{
		svc:          NewJurnalService(jurnals, pkls, &fakeProgramStudiStore{}, storage),
		jurnals:      jurnals,
		pkls:         pkls,
		storage:      storage,
		pkl:          pkl,
		student:      appauth.Identity{UserID: uuid.New(), Type: models.UserMahasiswa, MahasiswaID: &mahasiswaID},
		otherStudent: appauth.Identity{UserID: uuid.New(), Type: models.UserMahasiswa, MahasiswaID: &otherID},
		lecturer:     appauth.Identity{UserID: uuid.New(), Type: models.UserDosen, DosenID: &dosenID},
		admin:        appauth.Identity{UserID: uuid.New(), Type: models.UserAdmin},
	}
}

func (fx *jurnalFixture) seed(status models.JurnalStatus) *models.Jurnal {
	jurnal := &models.Jurnal{
		ID:          uuid.New(),
		PKLID:       fx.pkl.ID,
		Status:      status,
		Konten:      "Minggu pertama",
		Attachments: []string{"/jurnal/a.pdf"},
		CreatedAt:   time.Now(),
	}
	fx.jurnals.records[jurnal.ID] = jurnal
	return jurnal
}

func jurnalRequest() dto.JurnalCreateRequest {
	return dto.JurnalCreateRequest{
		Konten:         "Kegiatan minggu ini",
		TanggalMulai:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		TanggalSelesai: time.Date(2024, 7, 7, 0, 0, 0, 0, time.UTC),
	}
}

func attachments(names ...string) []dto.FileUpload {
	uploads := make([]dto.FileUpload, 0, len(names))
	for _, name := range names {
		uploads = append(uploads, dto.FileUpload{Filename: name, Data: []byte("lampiran")})
	}
	return uploads
}

func TestJurnalCreateRequiresAcceptedPKL(t *testing.T) {
	for _, status := range models.PKLStatuses {
		if status == models.PKLDiterima {
			continue
		}
		fx := newJurnalFixture(status)
		_, err := fx.svc.Create(context.Background(), fx.student, fx.pkl.ID, jurnalRequest(), attachments("a.pdf"))
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Fatalf("pkl status %q: expected bad request, got %v", status, err)
		}
	}
}

func TestJurnalCreateRequiresAttachment(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)
	_, err := fx.svc.Create(context.Background(), fx.student, fx.pkl.ID, jurnalRequest(), nil)
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestJurnalCreateOnForeignPKLIsNotFound(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)
	_, err := fx.svc.Create(context.Background(), fx.otherStudent, fx.pkl.ID, jurnalRequest(), attachments("a.pdf"))
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestJurnalCreateStoresAttachmentsAndTimeline(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)

	item, err := fx.svc.Create(context.Background(), fx.student, fx.pkl.ID, jurnalRequest(), attachments("foto.jpg", "laporan.pdf"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Status != models.JurnalDiproses {
		t.Fatalf("new journal status = %q, want Diproses", item.Status)
	}
	if len(item.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %v", item.Attachments)
	}
	for _, path := range item.Attachments {
		if !fx.storage.Exists(path) {
			t.Fatalf("attachment path %q has no blob", path)
		}
	}
	if len(fx.jurnals.timeline) != 1 || fx.jurnals.timeline[0].Status != models.JurnalDiproses {
		t.Fatalf("expected one Diproses timeline entry, got %+v", fx.jurnals.timeline)
	}
}

func TestJurnalCreateDeletesBlobsWhenInsertFails(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)
	fx.jurnals.createErr = errors.New("insert failed")

	_, err := fx.svc.Create(context.Background(), fx.student, fx.pkl.ID, jurnalRequest(), attachments("a.pdf", "b.pdf"))
	if !errors.Is(err, apperrors.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(fx.storage.blobs) != 0 {
		t.Fatalf("expected compensating deletes, %d blobs remain", len(fx.storage.blobs))
	}
}

func TestJurnalUpdateOnlyFromDitolak(t *testing.T) {
	for _, status := range []models.JurnalStatus{models.JurnalDiproses, models.JurnalDiterima} {
		fx := newJurnalFixture(models.PKLDiterima)
		jurnal := fx.seed(status)
		_, err := fx.svc.Update(context.Background(), fx.student, jurnal.ID, dto.JurnalUpdateRequest{Konten: "Revisi"}, nil)
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Fatalf("status %q: expected bad request, got %v", status, err)
		}
	}
}

func TestJurnalUpdateResubmitsToDiproses(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)
	jurnal := fx.seed(models.JurnalDitolak)

	item, err := fx.svc.Update(context.Background(), fx.student, jurnal.ID, dto.JurnalUpdateRequest{Konten: "Revisi"}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if item.Status != models.JurnalDiproses {
		t.Fatalf("resubmitted journal status = %q, want Diproses", item.Status)
	}
	if got := fx.jurnals.records[jurnal.ID]; got.Konten != "Revisi" {
		t.Fatalf("konten not rewritten, got %q", got.Konten)
	}
	// No new attachments supplied, the stored list survives.
	if got := fx.jurnals.records[jurnal.ID]; len(got.Attachments) != 1 || got.Attachments[0] != "/jurnal/a.pdf" {
		t.Fatalf("stored attachments must be preserved, got %v", got.Attachments)
	}
}

func TestJurnalUpdateReplacesAttachments(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)
	jurnal := fx.seed(models.JurnalDitolak)
	fx.storage.blobs["/jurnal/a.pdf"] = []byte("lama")

	item, err := fx.svc.Update(context.Background(), fx.student, jurnal.ID, dto.JurnalUpdateRequest{Konten: "Revisi"}, attachments("baru.pdf"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(item.Attachments) != 1 {
		t.Fatalf("expected one attachment, got %v", item.Attachments)
	}
	if !fx.storage.Exists(item.Attachments[0]) {
		t.Fatalf("new attachment not stored")
	}
	if fx.storage.Exists("/jurnal/a.pdf") {
		t.Fatalf("replaced attachment must be deleted")
	}
}

func TestJurnalUpdateStatusRequiresVerifier(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)
	jurnal := fx.seed(models.JurnalDiproses)
	err := fx.svc.UpdateStatus(context.Background(), fx.student, jurnal.ID, dto.JurnalUpdateStatusRequest{Status: models.JurnalDiterima})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestJurnalReviewTransitions(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)

	jurnal := fx.seed(models.JurnalDiproses)
	if err := fx.svc.UpdateStatus(context.Background(), fx.lecturer, jurnal.ID, dto.JurnalUpdateStatusRequest{Status: models.JurnalDiterima, Deskripsi: "Bagus"}); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if fx.jurnals.records[jurnal.ID].Status != models.JurnalDiterima {
		t.Fatalf("status = %q, want Diterima", fx.jurnals.records[jurnal.ID].Status)
	}

	for _, status := range []models.JurnalStatus{models.JurnalDiterima, models.JurnalDitolak} {
		terminal := fx.seed(status)
		err := fx.svc.UpdateStatus(context.Background(), fx.lecturer, terminal.ID, dto.JurnalUpdateStatusRequest{Status: models.JurnalDiterima})
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Fatalf("terminal %q: expected bad request, got %v", status, err)
		}
	}

	diproses := fx.seed(models.JurnalDiproses)
	err := fx.svc.UpdateStatus(context.Background(), fx.lecturer, diproses.ID, dto.JurnalUpdateStatusRequest{Status: models.JurnalDiproses})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("Diproses is not a review target, got %v", err)
	}
}

func TestJurnalUpdateStatusByForeignDosenIsNotFound(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)
	jurnal := fx.seed(models.JurnalDiproses)
	foreignID := uuid.New()
	foreign := appauth.Identity{UserID: uuid.New(), Type: models.UserDosen, DosenID: &foreignID}
	err := fx.svc.UpdateStatus(context.Background(), foreign, jurnal.ID, dto.JurnalUpdateStatusRequest{Status: models.JurnalDiterima})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestJurnalListRequiresPartyOnParent(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)
	fx.seed(models.JurnalDiproses)

	_, err := fx.svc.List(context.Background(), fx.otherStudent, fx.pkl.ID, dto.JurnalListQuery{})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for non-party, got %v", err)
	}

	page, err := fx.svc.List(context.Background(), fx.admin, fx.pkl.ID, dto.JurnalListQuery{})
	if err != nil {
		t.Fatalf("List as admin: %v", err)
	}
	if page.TotalRecords != 1 {
		t.Fatalf("expected one journal, got %d", page.TotalRecords)
	}
}

func TestJurnalTimelineAccumulates(t *testing.T) {
	fx := newJurnalFixture(models.PKLDiterima)

	item, err := fx.svc.Create(context.Background(), fx.student, fx.pkl.ID, jurnalRequest(), attachments("a.pdf"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fx.svc.UpdateStatus(context.Background(), fx.lecturer, item.ID, dto.JurnalUpdateStatusRequest{Status: models.JurnalDitolak, Deskripsi: "Kurang detail"}); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := fx.svc.Update(context.Background(), fx.student, item.ID, dto.JurnalUpdateRequest{Konten: "Revisi"}, nil); err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	page, err := fx.svc.ListTimeline(context.Background(), fx.student, item.ID, dto.ListQuery{})
	if err != nil {
		t.Fatalf("ListTimeline: %v", err)
	}
	if page.TotalRecords != 3 {
		t.Fatalf("expected 3 timeline entries, got %d", page.TotalRecords)
	}
}
