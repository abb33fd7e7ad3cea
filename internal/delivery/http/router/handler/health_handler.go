// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"readreach/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// Root answers the storefront's liveness probe on the bare path.
func Root(c echo.Context) error {
	return response.Success(c, http.StatusOK, nil, "Read Reach server is running")
}

// HealthCheck reports process health for load balancers and orchestration.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}
