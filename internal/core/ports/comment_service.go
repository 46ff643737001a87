package ports

import (
	"context"

	"github.com/piazza/piazza-api/internal/core/domain"
)

type CreateCommentInput struct {
	AuthorID       string
	PostID         string
	Content        string
	IdempotencyKey string
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	CreateComment(ctx context.Context, in CreateCommentInput) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string) ([]*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID, requesterID string) error
}
