package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
	"github.com/yudha/sipkl/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
}

func seedUser(t *testing.T, userType models.UserType) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &models.User{
		ID:          uuid.New(),
		Email:       "budi@kampus.ac.id",
		Password:    hash,
		Type:        userType,
		NamaLengkap: "Budi Santoso",
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	user := seedUser(t, models.UserAdmin)
	svc := NewAuthService(&fakeUserStore{users: []*models.User{user}}, &fakeMahasiswaStore{}, &fakeDosenStore{}, newFakePKLStore(), newTestJWTService())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "salah@kampus.ac.id", Password: "rahasia123"})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("unknown email: expected unauthorized, got %v", err)
	}

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "salah"})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("wrong password: expected unauthorized, got %v", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	user := seedUser(t, models.UserAdmin)
	jwtService := newTestJWTService()
	svc := NewAuthService(&fakeUserStore{users: []*models.User{user}}, &fakeMahasiswaStore{}, &fakeDosenStore{}, newFakePKLStore(), jwtService)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "rahasia123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected token metadata %+v", resp)
	}

	claims, err := jwtService.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Identity.Type != models.UserAdmin {
		t.Fatalf("unexpected claims %+v", claims.Identity)
	}
}

func TestLoginAttachesStudentProfileAndPKLStatus(t *testing.T) {
	user := seedUser(t, models.UserMahasiswa)
	mahasiswa := &models.Mahasiswa{ID: uuid.New(), UserID: user.ID, NIM: "2110001", Semester: 5}

	pkls := newFakePKLStore()
	pkls.records[uuid.New()] = &models.PKL{
		ID:          uuid.New(),
		MahasiswaID: mahasiswa.ID,
		Status:      models.PKLDiterima,
		CreatedAt:   time.Now(),
	}

	svc := NewAuthService(
		&fakeUserStore{users: []*models.User{user}},
		&fakeMahasiswaStore{mahasiswa: []*models.Mahasiswa{mahasiswa}},
		&fakeDosenStore{},
		pkls,
		newTestJWTService(),
	)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "rahasia123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.User.MahasiswaID == nil || *resp.User.MahasiswaID != mahasiswa.ID {
		t.Fatalf("mahasiswaId not attached: %+v", resp.User)
	}
	if resp.User.StatusPKL == nil || *resp.User.StatusPKL != models.PKLDiterima {
		t.Fatalf("statusPKL not attached: %+v", resp.User)
	}
}

func TestLoginStudentWithoutPKLHasNoStatus(t *testing.T) {
	user := seedUser(t, models.UserMahasiswa)
	mahasiswa := &models.Mahasiswa{ID: uuid.New(), UserID: user.ID}

	svc := NewAuthService(
		&fakeUserStore{users: []*models.User{user}},
		&fakeMahasiswaStore{mahasiswa: []*models.Mahasiswa{mahasiswa}},
		&fakeDosenStore{},
		newFakePKLStore(),
		newTestJWTService(),
	)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "rahasia123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.User.StatusPKL != nil {
		t.Fatalf("statusPKL should be absent, got %v", *resp.User.StatusPKL)
	}
}

func TestLoginAttachesLecturerProfile(t *testing.T) {
	user := seedUser(t, models.UserDosen)
	dosen := &models.Dosen{ID: uuid.New(), UserID: user.ID, NomorInduk: "0011223344"}

	svc := NewAuthService(
		&fakeUserStore{users: []*models.User{user}},
		&fakeMahasiswaStore{},
		&fakeDosenStore{dosen: []*models.Dosen{dosen}},
		newFakePKLStore(),
		newTestJWTService(),
	)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "rahasia123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.User.DosenID == nil || *resp.User.DosenID != dosen.ID {
		t.Fatalf("dosenId not attached: %+v", resp.User)
	}
}
