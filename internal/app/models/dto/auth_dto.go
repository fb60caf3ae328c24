package dto

import (
	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
)

// LoginRequest is the credential body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser is the caller identity echoed back on login.
type LoginUser struct {
	ID          uuid.UUID         `json:"id"`
	Email       string            `json:"email"`
	NamaLengkap string            `json:"namaLengkap"`
	Type        models.UserType   `json:"type"`
	MahasiswaID *uuid.UUID        `json:"mahasiswaId,omitempty"`
	DosenID     *uuid.UUID        `json:"dosenId,omitempty"`
	StatusPKL   *models.PKLStatus `json:"statusPKL,omitempty"`
}

// LoginResponse carries the signed access token.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresIn   int       `json:"expiresIn"`
	User        LoginUser `json:"user"`
}
