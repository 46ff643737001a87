package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPostLifetime applies when a post is created without an expiry offset.
const DefaultPostLifetime = 30 * 24 * time.Hour

// Post is the core aggregate. Likes and Dislikes only ever increase; Comments
// holds comment IDs in insertion order.
type Post struct {
	ID         string    `json:"_id"`
	Content    string    `json:"content"`
	Topic      string    `json:"topic"`
	AuthorID   string    `json:"author"`
	Likes      int64     `json:"likes"`
	Dislikes   int64     `json:"dislikes"`
	Comments   []string  `json:"comments"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	ValidUntil time.Time `json:"validUntil"`
}

// NewPost builds a post owned by authorID. An empty offset yields the
// default 30-day lifetime; otherwise the offset is resolved against now.
func NewPost(authorID, content, topic, offset string, now time.Time) (*Post, error) {
	if authorID == "" {
		return nil, fmt.Errorf("%w: post needs an author", ErrInvalidInput)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}

	validUntil := now.Add(DefaultPostLifetime)
	if offset != "" {
		resolved, err := ResolveExpiry(offset, now)
		if err != nil {
			return nil, err
		}
		validUntil = resolved
	}

	return &Post{
		Content:    content,
		Topic:      topic,
		AuthorID:   authorID,
		Comments:   []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
		ValidUntil: validUntil,
	}, nil
}

// Interest is the ranking score used by the max-interest listing.
func (p *Post) Interest() int64 {
	return p.Likes + p.Dislikes
}

// ExpiredAt reports whether the post is no longer valid at t.
func (p *Post) ExpiredAt(t time.Time) bool {
	return p.ValidUntil.Before(t)
}

// IsAuthoredBy reports whether userID owns the post.
func (p *Post) IsAuthoredBy(userID string) bool {
	return userID != "" && p.AuthorID == userID
}
