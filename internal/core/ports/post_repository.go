package ports

import (
	"context"
	"time"

	"github.com/piazza/piazza-api/internal/core/domain"
)

// ExpiryConstraint selects posts by their validUntil relative to PostQuery.At.
type ExpiryConstraint int

const (
	ExpiryAny      ExpiryConstraint = iota
	ExpiryActive                    // validUntil >= At
	ExpiryArchived                  // validUntil <  At
)

// PostQuery is the store-neutral predicate produced by the visibility filter.
type PostQuery struct {
	Topic       string    // optional: exact topic match
	CreatedFrom time.Time // optional: createdAt >= CreatedFrom
	CreatedTo   time.Time // optional: createdAt <= CreatedTo
	Expiry      ExpiryConstraint
	At          time.Time // reference instant for Expiry
}

// VoteKind names the counter touched by a vote.
type VoteKind string

const (
	VoteLike    VoteKind = "likes"
	VoteDislike VoteKind = "dislikes"
)

// PostChanges holds the client-writable fields of a post; nil means unchanged.
type PostChanges struct {
	Content    *string
	Topic      *string
	ValidUntil *time.Time
	UpdatedAt  time.Time
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// Find returns matching posts in insertion order.
	Find(ctx context.Context, q PostQuery) ([]*domain.Post, error)
	Update(ctx context.Context, id string, changes PostChanges) (*domain.Post, error)
	// IncrementVote atomically bumps one counter and returns the updated post.
	IncrementVote(ctx context.Context, id string, kind VoteKind) (*domain.Post, error)
	AttachComment(ctx context.Context, postID, commentID string) error
	DetachComment(ctx context.Context, postID, commentID string) error
	Delete(ctx context.Context, id string) error
}
