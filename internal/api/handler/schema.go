package handler

import "time"

// --- Users ---

type profileRequest struct {
	UserName string `json:"userName" validate:"required,min=3,max=256"`
	Email    string `json:"email"    validate:"required,min=6,max=256,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
	FullName string `json:"fullName" validate:"required,min=3,max=256"`
}

type loginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"auth-token"`
}

type userResponse struct {
	ID        string    `json:"_id"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// --- Posts ---

type createPostRequest struct {
	Content    string `json:"content"    validate:"required"`
	Topic      string `json:"topic"      validate:"required"`
	ValidUntil string `json:"validUntil" validate:"omitempty,expiry"`
}

type updatePostRequest struct {
	Content    *string `json:"content"`
	Topic      *string `json:"topic"`
	ValidUntil *string `json:"validUntil" validate:"omitempty,expiry"`
}

type authorResponse struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
}

type postCommentResponse struct {
	ID        string         `json:"_id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	Author    authorResponse `json:"author"`
}

// postResponse is a post with its author and comments populated.
type postResponse struct {
	ID         string                `json:"_id"`
	Content    string                `json:"content"`
	Topic      string                `json:"topic"`
	Author     authorResponse        `json:"author"`
	Likes      int64                 `json:"likes"`
	Dislikes   int64                 `json:"dislikes"`
	Comments   []postCommentResponse `json:"comments"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
	ValidUntil time.Time             `json:"validUntil"`
}

// --- Comments ---

type createCommentRequest struct {
	Post    string `json:"post"    validate:"required"`
	Content string `json:"content" validate:"required"`
}
