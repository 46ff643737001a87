package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SelfOnly allows the request only when the path parameter param names the
// authenticated user. It must run after Auth.
func SelfOnly(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(UserIDKey).(string)
			if userID == "" || userID != c.Param(param) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "you can only modify your own account"})
			}
			return next(c)
		}
	}
}
