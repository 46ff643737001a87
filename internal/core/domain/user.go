package domain

import (
	"fmt"
	"strings"
	"time"
)

// User models a registered account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"_id"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser builds a User from already-validated fields. The hash must be
// produced by the caller; a User never carries a plaintext secret.
func NewUser(userName, email, passwordHash, fullName string, now time.Time) (*User, error) {
	if strings.TrimSpace(userName) == "" || passwordHash == "" {
		return nil, fmt.Errorf("%w: userName and password are required", ErrInvalidInput)
	}
	return &User{
		UserName:     userName,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
