package services

import (
	"context"

	appauth "github.com/yudha/sipkl/internal/app/auth"
	"github.com/yudha/sipkl/internal/app/messages"
	"github.com/yudha/sipkl/internal/app/models"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
	"github.com/yudha/sipkl/internal/pkg/auth"
	"github.com/yudha/sipkl/internal/pkg/dberrors"
	"github.com/yudha/sipkl/internal/pkg/logger"
)

// AuthService authenticates accounts and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authServiceImpl struct {
	users      UserStore
	mahasiswa  MahasiswaStore
	dosen      DosenStore
	pkl        PKLStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, mahasiswa MahasiswaStore, dosen DosenStore, pkl PKLStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		users:      users,
		mahasiswa:  mahasiswa,
		dosen:      dosen,
		pkl:        pkl,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a token whose claims carry the
// linked profile id and, for students, their current PKL status.
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewUnauthorized(messages.AuthFailInvalidCredential)
		}
		return nil, apperrors.NewInternal(messages.AuthFailInvalidCredential, err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.NewUnauthorized(messages.AuthFailInvalidCredential)
	}

	identity := appauth.Identity{UserID: user.ID, Type: user.Type}

	switch user.Type {
	case models.UserMahasiswa:
		m, err := s.mahasiswa.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperrors.NewInternal(messages.AuthFailInvalidCredential, err)
		}
		identity.MahasiswaID = &m.ID

		status, err := s.pkl.GetLatestStatusByMahasiswa(ctx, m.ID)
		if err != nil {
			return nil, apperrors.NewInternal(messages.AuthFailInvalidCredential, err)
		}
		identity.StatusPKL = status

	case models.UserDosen:
		d, err := s.dosen.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperrors.NewInternal(messages.AuthFailInvalidCredential, err)
		}
		identity.DosenID = &d.ID
	}

	token, expiresIn, err := s.jwtService.GenerateToken(identity)
	if err != nil {
		return nil, apperrors.NewInternal(messages.AuthFailInvalidCredential, err)
	}

	logger.Info().Str("email", user.Email).Str("type", string(user.Type)).Msg("user logged in")

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User: dto.LoginUser{
			ID:          user.ID,
			Email:       user.Email,
			NamaLengkap: user.NamaLengkap,
			Type:        user.Type,
			MahasiswaID: identity.MahasiswaID,
			DosenID:     identity.DosenID,
			StatusPKL:   identity.StatusPKL,
		},
	}, nil
}
