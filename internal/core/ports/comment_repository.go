package ports

import (
	"context"

	"github.com/piazza/piazza-api/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	FindByPost(ctx context.Context, postID string) ([]*domain.Comment, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	// DeleteByPost removes every comment referencing postID and reports how many went.
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}
