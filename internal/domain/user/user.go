package user

import (
	"errors"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already in use")
)

type SignupRequest struct {
	Fullname string `json:"fullname" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// with pointers if optional, it will be nil; absent fields keep their stored value
type UpdateUserRequest struct {
	Fullname    *string `json:"fullname" binding:"omitempty,min=2,max=120"`
	Email       *string `json:"email" binding:"omitempty,email"`
	NewPassword *string `json:"newPassword" binding:"omitempty,min=6"`
	OldPassword string  `json:"oldPassword" binding:"required"`
}

// the lowercased form is the uniqueness/lookup key for emails
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
