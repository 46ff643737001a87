package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/piazza/piazza-api/internal/api/middleware"
	"github.com/piazza/piazza-api/internal/core/domain"
	"github.com/piazza/piazza-api/internal/core/ports"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds an echo context for method/target with an optional JSON
// body and, when userID is set, an authenticated caller.
func newContext(e *echo.Echo, method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.UserIDKey, userID)
	}
	return c, rec
}

type stubUserService struct {
	registerFn func(ctx context.Context, in ports.ProfileInput) (*domain.User, error)
	loginFn    func(ctx context.Context, userName, password string) (string, *domain.User, error)
	getFn      func(ctx context.Context, id string) (*domain.User, error)
	updateFn   func(ctx context.Context, id string, in ports.ProfileInput) (*domain.User, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubUserService) Register(ctx context.Context, in ports.ProfileInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) Login(ctx context.Context, userName, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, userName, password)
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) UpdateUser(ctx context.Context, id string, in ports.ProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubPostService struct {
	createFn  func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error)
	getFn     func(ctx context.Context, id string) (*ports.PostView, error)
	listFn    func(ctx context.Context, in ports.ListPostsInput) (*ports.ListPostsResult, error)
	updateFn  func(ctx context.Context, in ports.UpdatePostInput) (*ports.PostView, error)
	deleteFn  func(ctx context.Context, id, requesterID string) error
	likeFn    func(ctx context.Context, id, requesterID string) (*domain.Post, error)
	dislikeFn func(ctx context.Context, id, requesterID string) (*domain.Post, error)
}

func (s *stubPostService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, in)
}

func (s *stubPostService) GetPost(ctx context.Context, id string) (*ports.PostView, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) ListPosts(ctx context.Context, in ports.ListPostsInput) (*ports.ListPostsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubPostService) UpdatePost(ctx context.Context, in ports.UpdatePostInput) (*ports.PostView, error) {
	return s.updateFn(ctx, in)
}

func (s *stubPostService) DeletePost(ctx context.Context, id, requesterID string) error {
	return s.deleteFn(ctx, id, requesterID)
}

func (s *stubPostService) LikePost(ctx context.Context, id, requesterID string) (*domain.Post, error) {
	return s.likeFn(ctx, id, requesterID)
}

func (s *stubPostService) DislikePost(ctx context.Context, id, requesterID string) (*domain.Post, error) {
	return s.dislikeFn(ctx, id, requesterID)
}

type stubCommentService struct {
	createFn func(ctx context.Context, in ports.CreateCommentInput) (*domain.Comment, error)
	listFn   func(ctx context.Context, postID string) ([]*domain.Comment, error)
	deleteFn func(ctx context.Context, commentID, requesterID string) error
}

func (s *stubCommentService) CreateComment(ctx context.Context, in ports.CreateCommentInput) (*domain.Comment, error) {
	return s.createFn(ctx, in)
}

func (s *stubCommentService) ListComments(ctx context.Context, postID string) ([]*domain.Comment, error) {
	return s.listFn(ctx, postID)
}

func (s *stubCommentService) DeleteComment(ctx context.Context, commentID, requesterID string) error {
	return s.deleteFn(ctx, commentID, requesterID)
}
