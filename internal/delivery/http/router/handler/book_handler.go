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

// latestBooksLimit caps the storefront's "new arrivals" strip.
const latestBooksLimit = 4

// BookHandler holds dependencies for catalog handlers.
type BookHandler struct {
	uc     usecase.BookUsecase
	logger *slog.Logger
}

// NewBookHandler is the constructor for BookHandler, injected by Fx.
func NewBookHandler(uc usecase.BookUsecase, logger *slog.Logger) *BookHandler {
	return &BookHandler{uc: uc, logger: logger}
}

// ListPublished handles the public catalog listing.
func (h *BookHandler) ListPublished(c echo.Context) error {
	books, err := h.uc.ListPublished(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, books, "")
}

// Latest handles the newest-arrivals listing.
func (h *BookHandler) Latest(c echo.Context) error {
	books, err := h.uc.ListLatest(c.Request().Context(), latestBooksLimit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, books, "")
}

// GetByID handles a single catalog entry lookup.
func (h *BookHandler) GetByID(c echo.Context) error {
	book, err := h.uc.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, book, "")
}

// ListAll handles the admin view of the full catalog.
func (h *BookHandler) ListAll(c echo.Context) error {
	books, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, books, "")
}

// ListByLibrarian handles a librarian's own-catalog listing. The route
// policy has already pinned the email parameter to the caller.
func (h *BookHandler) ListByLibrarian(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		email = CurrentUserEmail(c)
	}

	books, err := h.uc.ListByLibrarian(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, books, "")
}

// Add handles catalog entry creation.
func (h *BookHandler) Add(c echo.Context) error {
	var input *usecase.AddBookInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.uc.AddBook(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, book, "Book added successfully")
}

// Update handles catalog entry edits.
func (h *BookHandler) Update(c echo.Context) error {
	var input *usecase.UpdateBookInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}

	if err := h.uc.UpdateBook(c.Request().Context(), c.Param("bookId"), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Book updated successfully")
}

// publishStatusInput is the visibility-toggle payload.
type publishStatusInput struct {
	PublishedStatus string `json:"published_status" validate:"required"`
}

// UpdatePublishedStatus handles the draft/published visibility toggle.
func (h *BookHandler) UpdatePublishedStatus(c echo.Context) error {
	var input *publishStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.UpdatePublishedStatus(c.Request().Context(), c.Param("bookId"), entity.PublishedStatus(input.PublishedStatus))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Published status updated")
}

// Delete handles catalog entry deletion together with its orders.
func (h *BookHandler) Delete(c echo.Context) error {
	out, err := h.uc.DeleteBook(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, out, "Book deleted successfully")
}
