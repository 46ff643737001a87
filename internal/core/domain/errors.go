package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("userName already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrPostExpired        = errors.New("post is no longer valid for interactions")
	ErrInvalidInput       = errors.New("invalid input")
)
