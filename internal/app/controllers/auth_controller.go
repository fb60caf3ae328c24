package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yudha/sipkl/internal/app/messages"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/app/services"
	"github.com/yudha/sipkl/internal/middleware"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login verifies credentials and returns an access token.
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.AuthFailInvalidCredential))
		return
	}

	resp, err := ctl.authService.Login(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.AuthSuccessLogin, resp))
}
