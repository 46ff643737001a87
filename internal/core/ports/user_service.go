package ports

import (
	"context"

	"github.com/piazza/piazza-api/internal/core/domain"
)

// ProfileInput carries the full profile used by both registration and update.
// There is no partial update: every field is required.
type ProfileInput struct {
	UserName string
	Email    string
	Password string
	FullName string
}

type UserService interface {
	Register(ctx context.Context, in ProfileInput) (*domain.User, error)
	Login(ctx context.Context, userName, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in ProfileInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
