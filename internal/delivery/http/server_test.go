package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	deliverycontext "readreach/internal/delivery/context"
	deliverymiddleware "readreach/internal/delivery/middleware"
	custommiddleware "readreach/internal/delivery/http/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingHandler counts every record it receives, regardless of level.
type countingHandler struct {
	records atomic.Int64
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *countingHandler) Handle(context.Context, slog.Record) error {
	h.records.Add(1)

	return nil
}

func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *countingHandler) WithGroup(string) slog.Handler { return h }

func TestNewEcho_SingleAccessLogPerRequest(t *testing.T) {
	counter := &countingHandler{}
	logger := slog.New(counter)

	e := newEcho(logger,
		deliverymiddleware.NewRequestIDMiddleware(logger),
		custommiddleware.NewErrorMiddleware(logger),
	)
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), counter.records.Load())
}

func TestNewEcho_PropagatesRequestID(t *testing.T) {
	counter := &countingHandler{}
	logger := slog.New(counter)

	e := newEcho(logger,
		deliverymiddleware.NewRequestIDMiddleware(logger),
		custommiddleware.NewErrorMiddleware(logger),
	)
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
}
