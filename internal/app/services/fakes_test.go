package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/app/repositories"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
)

// In-memory stores backing the service tests. Mutations mimic the real
// repositories: compare-and-set preconditions, timeline appends in the
// same operation.

type fakeUserStore struct {
	users []*models.User
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeMahasiswaStore struct {
	mahasiswa []*models.Mahasiswa
	names     map[uuid.UUID]string
}

func (f *fakeMahasiswaStore) GetByID(_ context.Context, id uuid.UUID) (*models.Mahasiswa, error) {
	for _, m := range f.mahasiswa {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMahasiswaStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Mahasiswa, error) {
	for _, m := range f.mahasiswa {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMahasiswaStore) GetRef(ctx context.Context, id uuid.UUID) (*dto.MahasiswaRef, error) {
	m, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.MahasiswaRef{ID: m.ID, NamaLengkap: f.names[m.ID], NIM: m.NIM, Semester: m.Semester}, nil
}

type fakeDosenStore struct {
	dosen   []*models.Dosen
	options []dto.PKLCreateOption
}

func (f *fakeDosenStore) GetByID(_ context.Context, id uuid.UUID) (*models.Dosen, error) {
	for _, d := range f.dosen {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeDosenStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Dosen, error) {
	for _, d := range f.dosen {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeDosenStore) ListOptions(_ context.Context) ([]dto.PKLCreateOption, error) {
	return f.options, nil
}

type fakeFakultasStore struct {
	fakultas []*models.Fakultas
}

func (f *fakeFakultasStore) GetByID(_ context.Context, id uuid.UUID) (*models.Fakultas, error) {
	for _, x := range f.fakultas {
		if x.ID == id {
			return x, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeProgramStudiStore struct {
	prodi []*models.ProgramStudi
}

func (f *fakeProgramStudiStore) GetByID(_ context.Context, id uuid.UUID) (*models.ProgramStudi, error) {
	for _, ps := range f.prodi {
		if ps.ID == id {
			return ps, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProgramStudiStore) GetRef(ctx context.Context, id uuid.UUID) (*dto.ProgramStudiRef, error) {
	ps, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProgramStudiRef{ID: ps.ID, Nama: ps.Nama, Kaprodi: dto.DosenRef{ID: ps.KaprodiID}}, nil
}

type fakePKLStore struct {
	records  map[uuid.UUID]*models.PKL
	timeline []*models.PKLTimeline

	createErr error
}

func newFakePKLStore() *fakePKLStore {
	return &fakePKLStore{records: make(map[uuid.UUID]*models.PKL)}
}

func (f *fakePKLStore) List(_ context.Context, scope repositories.PKLScope, _ dto.PKLListQuery) ([]dto.PKLListItem, int64, error) {
	items := make([]dto.PKLListItem, 0)
	for _, p := range f.records {
		if scope.MahasiswaID != nil && p.MahasiswaID != *scope.MahasiswaID {
			continue
		}
		if scope.DosenID != nil && p.KoordinatorID != *scope.DosenID {
			continue
		}
		items = append(items, dto.PKLListItem{ID: p.ID, Status: p.Status})
	}
	return items, int64(len(items)), nil
}

func (f *fakePKLStore) GetDetail(_ context.Context, id uuid.UUID) (*dto.PKLDetail, error) {
	p, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	detail := &dto.PKLDetail{
		DokumenDiterima: p.DokumenDiterima,
		DokumenMentor:   p.DokumenMentor,
		DokumenPimpinan: p.DokumenPimpinan,
	}
	detail.PKLListItem = dto.PKLListItem{ID: p.ID, NamaInstansi: p.NamaInstansi, Status: p.Status}
	return detail, nil
}

func (f *fakePKLStore) GetByID(_ context.Context, id uuid.UUID) (*models.PKL, error) {
	p, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (f *fakePKLStore) GetLatestStatusByMahasiswa(_ context.Context, mahasiswaID uuid.UUID) (*models.PKLStatus, error) {
	var latest *models.PKL
	for _, p := range f.records {
		if p.MahasiswaID != mahasiswaID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, nil
	}
	status := latest.Status
	return &status, nil
}

func (f *fakePKLStore) Create(_ context.Context, pkl *models.PKL, entry *models.PKLTimeline) error {
	if f.createErr != nil {
		return f.createErr
	}
	clone := *pkl
	f.records[pkl.ID] = &clone
	f.timeline = append(f.timeline, entry)
	return nil
}

func (f *fakePKLStore) Resubmit(_ context.Context, pkl *models.PKL, expected []models.PKLStatus, entry *models.PKLTimeline) error {
	stored, ok := f.records[pkl.ID]
	if !ok {
		return apperrors.ErrConflict
	}
	match := false
	for _, status := range expected {
		if stored.Status == status {
			match = true
		}
	}
	if !match {
		return apperrors.ErrConflict
	}
	clone := *pkl
	clone.Status = models.PKLMenungguPersetujuan
	f.records[pkl.ID] = &clone
	f.timeline = append(f.timeline, entry)
	return nil
}

func (f *fakePKLStore) UpdateStatus(_ context.Context, upd repositories.PKLStatusUpdate, entry *models.PKLTimeline) error {
	stored, ok := f.records[upd.ID]
	if !ok || stored.Status != upd.Expected {
		return apperrors.ErrConflict
	}
	stored.Status = upd.New
	if upd.ApprovedAt != nil {
		stored.ApprovedAt = upd.ApprovedAt
	}
	if upd.RejectedAt != nil {
		stored.RejectedAt = upd.RejectedAt
	}
	if upd.RejectedAtSemester != nil {
		stored.RejectedAtSemester = upd.RejectedAtSemester
	}
	if upd.FinishedAt != nil {
		stored.FinishedAt = upd.FinishedAt
	}
	f.timeline = append(f.timeline, entry)
	return nil
}

func (f *fakePKLStore) Finalize(_ context.Context, id uuid.UUID, selesai, laporan, penilaian string, expected []models.PKLStatus, entry *models.PKLTimeline) error {
	stored, ok := f.records[id]
	if !ok {
		return apperrors.ErrConflict
	}
	match := false
	for _, status := range expected {
		if stored.Status == status {
			match = true
		}
	}
	if !match {
		return apperrors.ErrConflict
	}
	stored.DokumenSelesai = &selesai
	stored.DokumenLaporan = &laporan
	stored.DokumenPenilaian = &penilaian
	stored.Status = models.PKLProsesFinalisasi
	f.timeline = append(f.timeline, entry)
	return nil
}

func (f *fakePKLStore) ListTimeline(_ context.Context, pklID uuid.UUID, _ dto.ListQuery) ([]dto.PKLTimelineItem, int64, error) {
	items := make([]dto.PKLTimelineItem, 0)
	for _, entry := range f.timeline {
		if entry.PKLID != pklID {
			continue
		}
		items = append(items, dto.PKLTimelineItem{ID: entry.ID, Status: entry.Status, Deskripsi: entry.Deskripsi})
	}
	return items, int64(len(items)), nil
}

type fakeJurnalStore struct {
	records  map[uuid.UUID]*models.Jurnal
	timeline []*models.JurnalTimeline

	createErr error
}

func newFakeJurnalStore() *fakeJurnalStore {
	return &fakeJurnalStore{records: make(map[uuid.UUID]*models.Jurnal)}
}

func (f *fakeJurnalStore) List(_ context.Context, pklID uuid.UUID, _ dto.JurnalListQuery) ([]dto.JurnalItem, int64, error) {
	items := make([]dto.JurnalItem, 0)
	for _, j := range f.records {
		if j.PKLID == pklID {
			items = append(items, dto.JurnalItem{ID: j.ID, Status: j.Status})
		}
	}
	return items, int64(len(items)), nil
}

func (f *fakeJurnalStore) GetByID(_ context.Context, id uuid.UUID) (*models.Jurnal, error) {
	j, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *j
	return &clone, nil
}

func (f *fakeJurnalStore) Create(_ context.Context, jurnal *models.Jurnal, entry *models.JurnalTimeline) error {
	if f.createErr != nil {
		return f.createErr
	}
	clone := *jurnal
	f.records[jurnal.ID] = &clone
	f.timeline = append(f.timeline, entry)
	return nil
}

func (f *fakeJurnalStore) Resubmit(_ context.Context, jurnal *models.Jurnal, expected models.JurnalStatus, entry *models.JurnalTimeline) error {
	stored, ok := f.records[jurnal.ID]
	if !ok || stored.Status != expected {
		return apperrors.ErrConflict
	}
	clone := *jurnal
	clone.Status = models.JurnalDiproses
	f.records[jurnal.ID] = &clone
	f.timeline = append(f.timeline, entry)
	return nil
}

func (f *fakeJurnalStore) UpdateStatus(_ context.Context, id uuid.UUID, expected, next models.JurnalStatus, entry *models.JurnalTimeline) error {
	stored, ok := f.records[id]
	if !ok || stored.Status != expected {
		return apperrors.ErrConflict
	}
	stored.Status = next
	f.timeline = append(f.timeline, entry)
	return nil
}

func (f *fakeJurnalStore) ListTimeline(_ context.Context, jurnalID uuid.UUID, _ dto.ListQuery) ([]dto.JurnalTimelineItem, int64, error) {
	items := make([]dto.JurnalTimelineItem, 0)
	for _, entry := range f.timeline {
		if entry.JurnalID != jurnalID {
			continue
		}
		items = append(items, dto.JurnalTimelineItem{ID: entry.ID, Status: entry.Status, Deskripsi: entry.Deskripsi})
	}
	return items, int64(len(items)), nil
}

// fakeStorage is an in-memory blob store keyed by logical path.
type fakeStorage struct {
	blobs   map[string][]byte
	saveErr map[string]error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: make(map[string][]byte), saveErr: make(map[string]error)}
}

// failSavesContaining makes every Save whose name contains substr fail.
func (f *fakeStorage) failSavesContaining(substr string) {
	f.saveErr[substr] = errors.New("disk full")
}

func (f *fakeStorage) Save(folder, name string, data []byte) (string, error) {
	for substr, err := range f.saveErr {
		if strings.Contains(name, substr) {
			return "", err
		}
	}
	path := "/" + folder + "/" + name
	f.blobs[path] = data
	return path, nil
}

func (f *fakeStorage) Delete(folder string, names ...string) (int, error) {
	deleted := 0
	for _, name := range names {
		path := "/" + folder + "/" + name
		if _, ok := f.blobs[path]; ok {
			delete(f.blobs, path)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeStorage) Exists(path string) bool {
	_, ok := f.blobs[path]
	return ok
}
