package models

import (
	"time"

	"github.com/google/uuid"
)

// UserType is the closed set of account roles.
type UserType string

const (
	UserMahasiswa UserType = "Mahasiswa"
	UserDosen     UserType = "Dosen"
	UserAdmin     UserType = "Admin"
)

// Valid reports whether t is a known role.
func (t UserType) Valid() bool {
	switch t {
	case UserMahasiswa, UserDosen, UserAdmin:
		return true
	}
	return false
}

// User is an account. It owns zero or one Mahasiswa or Dosen profile.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	Password       string    `db:"password" json:"-"`
	Type           UserType  `db:"type" json:"type"`
	NamaLengkap    string    `db:"nama_lengkap" json:"namaLengkap"`
	NomorHandphone string    `db:"nomor_handphone" json:"nomorHandphone"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
