package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/piazza/piazza-api/internal/api/middleware"
)

// requesterID returns the id bound by the Auth middleware. A missing id
// means the route was registered without Auth, which is answered with 401.
func requesterID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.UserIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "access denied")
	}
	return id, nil
}

// optionalRequesterID returns the caller id, or "" for anonymous requests.
func optionalRequesterID(c echo.Context) string {
	id, _ := c.Get(middleware.UserIDKey).(string)
	return id
}

// badRequest wraps a bind or validation failure.
func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
