// Package auth carries the verified caller identity through a request.
package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yudha/sipkl/internal/app/models"
)

// ContextKey is the gin context key the auth middleware stores the
// Identity under.
const ContextKey = "identity"

// Identity is the compact token payload every workflow decision branches
// on. The linked profile ids are set according to Type; StatusPKL is the
// student's current PKL status at token issue time, when one exists.
type Identity struct {
	UserID      uuid.UUID         `json:"id"`
	Type        models.UserType   `json:"type"`
	MahasiswaID *uuid.UUID        `json:"mahasiswaId,omitempty"`
	DosenID     *uuid.UUID        `json:"dosenId,omitempty"`
	StatusPKL   *models.PKLStatus `json:"statusPKL,omitempty"`
}

// IsMahasiswa reports whether the caller is a student with a linked
// profile.
func (i Identity) IsMahasiswa() bool {
	return i.Type == models.UserMahasiswa && i.MahasiswaID != nil
}

// IsDosen reports whether the caller is a lecturer with a linked profile.
func (i Identity) IsDosen() bool {
	return i.Type == models.UserDosen && i.DosenID != nil
}

// IsAdmin reports whether the caller is an admin.
func (i Identity) IsAdmin() bool {
	return i.Type == models.UserAdmin
}

// IsVerifier reports whether the caller may apply verification decisions.
func (i Identity) IsVerifier() bool {
	return i.IsDosen() || i.IsAdmin()
}

// FromContext extracts the Identity placed by the auth middleware.
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}
