package handler

import (
	"readreach/internal/delivery/http/middleware"

	"github.com/labstack/echo/v4"
)

// CurrentUserEmail returns the authenticated caller's email, or an empty
// string on public routes.
func CurrentUserEmail(c echo.Context) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.Email
	}

	return ""
}
