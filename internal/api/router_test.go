package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/piazza/piazza-api/internal/core/domain"
	"github.com/piazza/piazza-api/internal/core/ports"
)

const routerSecret = "router-secret"

type okMongo struct{}

func (okMongo) Ping(context.Context, *readpref.ReadPref) error { return nil }

type routerUsers struct{ ports.UserService }

func (routerUsers) UpdateUser(_ context.Context, id string, in ports.ProfileInput) (*domain.User, error) {
	return &domain.User{ID: id, UserName: in.UserName}, nil
}

type routerPosts struct{ ports.PostService }

func (routerPosts) GetPost(_ context.Context, id string) (*ports.PostView, error) {
	return nil, domain.ErrPostNotFound
}

func (routerPosts) LikePost(_ context.Context, id, requesterID string) (*domain.Post, error) {
	if requesterID == "author" {
		return nil, fmt.Errorf("%w: cannot like your own post", domain.ErrForbidden)
	}
	return &domain.Post{ID: id, Likes: 1, Comments: []string{}}, nil
}

func newTestRouter() *echo.Echo {
	return NewRouter(Deps{
		Users:       routerUsers{},
		Posts:       routerPosts{},
		TokenSecret: routerSecret,
		Logger:      zerolog.Nop(),
		Mongo:       okMongo{},
		Registry:    prometheus.NewRegistry(),
	})
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID}).SignedString([]byte(routerSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func serve(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("auth-token", token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error
}

func TestRouter_ProtectedRouteWithoutToken(t *testing.T) {
	e := newTestRouter()
	rec := serve(e, http.MethodPost, "/v1/post", `{"content":"x","topic":"y"}`, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "access denied" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_InvalidToken(t *testing.T) {
	e := newTestRouter()
	rec := serve(e, http.MethodPut, "/v1/post/p1/like", "", "not-a-jwt")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "invalid token" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_SelfLikeForbidden(t *testing.T) {
	e := newTestRouter()

	rec := serve(e, http.MethodPut, "/v1/post/p1/like", "", tokenFor(t, "author"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	rec = serve(e, http.MethodPut, "/v1/post/p1/like", "", tokenFor(t, "reader"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for another user, got %d", rec.Code)
	}
}

func TestRouter_UserUpdateIsSelfOnly(t *testing.T) {
	e := newTestRouter()
	body := `{"userName":"alice","email":"alice@example.com","password":"secret1","fullName":"Alice L"}`

	rec := serve(e, http.MethodPut, "/v1/user/u2", body, tokenFor(t, "u1"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another account, got %d", rec.Code)
	}

	rec = serve(e, http.MethodPut, "/v1/user/u1", body, tokenFor(t, "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for own account, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_NotFoundMapping(t *testing.T) {
	e := newTestRouter()
	rec := serve(e, http.MethodGet, "/v1/post/0123456789abcdef01234567", "", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "post not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	e := newTestRouter()

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		rec := serve(e, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
