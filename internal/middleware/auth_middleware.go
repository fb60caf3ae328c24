package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appauth "github.com/yudha/sipkl/internal/app/auth"
	"github.com/yudha/sipkl/internal/app/messages"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/pkg/auth"
)

// Authentication verifies the bearer token and stores the caller identity
// on the context for the handlers downstream.
func Authentication(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(appauth.ContextKey, claims.Identity)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
		Status:  http.StatusUnauthorized,
		Message: messages.AuthFailUnauthorized,
	})
}
