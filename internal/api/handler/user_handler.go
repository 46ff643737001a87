package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/piazza/piazza-api/internal/api/metrics"
	"github.com/piazza/piazza-api/internal/api/middleware"
	"github.com/piazza/piazza-api/internal/core/domain"
	"github.com/piazza/piazza-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/user/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	user, err := h.service.Register(c.Request().Context(), toProfileInput(req))
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a user and returns a signed token, both in the
// auth-token response header and in the body.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Header       200   {string}  auth-token  "Signed token"
// @Failure      400   {object}  map[string]string
// @Router       /v1/user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	token, _, err := h.service.Login(c.Request().Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid userName or password"})
		}
		return err
	}

	c.Response().Header().Set(middleware.TokenHeader, token)
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// Get returns a user profile without credentials.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update replaces the caller's own profile. Every field is required.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string          true  "User ID"
// @Param        body  body      profileRequest  true  "Full profile"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), toProfileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes the caller's own account.
//
// @Summary      Delete own account
// @Tags         users
// @Produce      plain
// @Security     TokenAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {string}  string  "User deleted successfully"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.String(http.StatusOK, "User deleted successfully")
}
