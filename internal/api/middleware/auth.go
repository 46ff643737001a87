package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// TokenHeader carries the raw signed token; there is no bearer scheme.
	TokenHeader = "auth-token"
	// UserIDKey is the echo context key holding the authenticated user id.
	UserIDKey = "user_id"
)

// Auth rejects requests without a valid token and binds the caller's id.
func Auth(tokenSecret string) echo.MiddlewareFunc {
	return verify(tokenSecret, true)
}

// OptionalAuth lets anonymous requests through but still rejects a token
// that is present and invalid.
func OptionalAuth(tokenSecret string) echo.MiddlewareFunc {
	return verify(tokenSecret, false)
}

func verify(tokenSecret string, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TokenHeader)
			if raw == "" {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, "access denied")
				}
				return next(c)
			}

			userID, err := subject(raw, tokenSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

func subject(raw, tokenSecret string) (string, error) {
	tkn, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return []byte(tokenSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	sub, err := tkn.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sub, nil
}
