package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/piazza/piazza-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "access denied"), http.StatusUnauthorized, "access denied"},
		{"invalid input", fmt.Errorf("%w: bad offset", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: bad offset"},
		{"conflict", domain.ErrUserExists, http.StatusBadRequest, "userName already taken"},
		{"expired", domain.ErrPostExpired, http.StatusBadRequest, "post is no longer valid for interactions"},
		{"forbidden", fmt.Errorf("%w: cannot like your own post", domain.ErrForbidden), http.StatusForbidden, "access forbidden: cannot like your own post"},
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound, "post not found"},
		{"comment not found", domain.ErrCommentNotFound, http.StatusNotFound, "comment not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"unexpected", errors.New("mongo exploded"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, resp.Error)
			}
		})
	}
}
