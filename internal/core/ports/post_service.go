package ports

import (
	"context"
	"time"

	"github.com/piazza/piazza-api/internal/core/domain"
)

// CreatePostInput carries the data needed to publish a post.
type CreatePostInput struct {
	AuthorID       string
	Content        string
	Topic          string
	ValidUntil     string // optional expiry offset, e.g. "2h"
	IdempotencyKey string
}

// UpdatePostInput carries a post edit; nil fields are left untouched.
type UpdatePostInput struct {
	PostID      string
	RequesterID string
	Content     *string
	Topic       *string
	ValidUntil  *string
}

// ListPostsInput carries caller identity and raw listing filters. Filters
// other than Topic are ignored for anonymous callers.
type ListPostsInput struct {
	RequesterID string // empty = anonymous
	Topic       string
	CreatedFrom time.Time
	CreatedTo   time.Time
	ArchiveOnly bool
	ValidOnly   bool
	MaxInterest bool
}

// AuthorRef is the populated author of a post or comment.
type AuthorRef struct {
	ID       string
	FullName string
}

// CommentView is a populated comment inside a PostView.
type CommentView struct {
	ID        string
	Content   string
	CreatedAt time.Time
	Author    AuthorRef
}

// PostView is a post with its author and comments populated.
type PostView struct {
	ID         string
	Content    string
	Topic      string
	Author     AuthorRef
	Likes      int64
	Dislikes   int64
	Comments   []CommentView
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ValidUntil time.Time
}

// ListPostsResult is returned by ListPosts. When MaxInterest is set, Posts
// holds at most one element.
type ListPostsResult struct {
	Posts       []PostView
	MaxInterest bool
}

// PostService defines use-case operations for posts.
type PostService interface {
	CreatePost(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	GetPost(ctx context.Context, id string) (*PostView, error)
	ListPosts(ctx context.Context, in ListPostsInput) (*ListPostsResult, error)
	UpdatePost(ctx context.Context, in UpdatePostInput) (*PostView, error)
	DeletePost(ctx context.Context, id, requesterID string) error
	LikePost(ctx context.Context, id, requesterID string) (*domain.Post, error)
	DislikePost(ctx context.Context, id, requesterID string) (*domain.Post, error)
}
