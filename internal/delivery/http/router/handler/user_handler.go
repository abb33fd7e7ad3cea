package handler

import (
	"log/slog"
	"net/http"

	"readreach/internal/delivery/http/response"
	"readreach/internal/domain/entity"
	"readreach/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

// Register handles first-sign-in account creation. Registering the same
// email twice returns the stored account untouched.
func (h *UserHandler) Register(c echo.Context) error {
	var input *usecase.RegisterUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.RegisterUser(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	if !out.Created {
		return response.Success(c, http.StatusOK, out.User, "User already registered")
	}

	return response.Success(c, http.StatusCreated, out.User, "User registered successfully")
}

// Get handles the caller's own account lookup. Absent email falls back to
// the authenticated caller.
func (h *UserHandler) Get(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		email = CurrentUserEmail(c)
	}

	user, err := h.uc.GetUser(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// List handles the admin account directory.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// ListByRole handles the admin role-filtered directory.
func (h *UserHandler) ListByRole(c echo.Context) error {
	users, err := h.uc.ListUsersByRole(c.Request().Context(), entity.Role(c.QueryParam("role")))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// updateRoleInput is the role-change payload.
type updateRoleInput struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// UpdateRole handles admin role changes.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var input *updateRoleInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.UpdateUserRole(c.Request().Context(), input.Email, entity.Role(input.Role)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Role updated successfully")
}
