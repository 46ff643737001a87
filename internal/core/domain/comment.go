package domain

import (
	"fmt"
	"strings"
	"time"
)

// Comment belongs to exactly one post and one author.
type Comment struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author"`
	PostID    string    `json:"post"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewComment(authorID, postID, content string, now time.Time) (*Comment, error) {
	if authorID == "" || postID == "" {
		return nil, fmt.Errorf("%w: comment needs an author and a post", ErrInvalidInput)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	return &Comment{
		Content:   content,
		AuthorID:  authorID,
		PostID:    postID,
		CreatedAt: now,
	}, nil
}
