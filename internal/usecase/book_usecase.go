package usecase

import (
	"context"

	"readreach/internal/domain/entity"
)

// AddBookInput is the catalog-entry creation payload submitted by a
// librarian.
type AddBookInput struct {
	Name            string `json:"name" validate:"required"`
	AuthorName      string `json:"author_name" validate:"required"`
	Price           string `json:"price" validate:"required"`
	Image           string `json:"image"`
	Description     string `json:"description"`
	LibrarianName   string `json:"librarian_name"`
	LibrarianEmail  string `json:"librarian_email" validate:"required,email"`
	PublishedStatus string `json:"published_status"`
}

// UpdateBookInput carries the editable catalog fields. Empty fields are
// left untouched.
type UpdateBookInput struct {
	Name        string `json:"name"`
	AuthorName  string `json:"author_name"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// DeleteBookOutput reports what a cascade delete removed.
type DeleteBookOutput struct {
	DeletedOrders int64 `json:"deletedOrders"`
}

// BookUsecase defines the interface for catalog management use cases.
type BookUsecase interface {
	// ListPublished retrieves the publicly browsable catalog, meaning books
	// whose published status is published.
	ListPublished(ctx context.Context) ([]*entity.Book, error)

	// ListLatest retrieves the most recently added published books, newest
	// first, capped at limit.
	ListLatest(ctx context.Context, limit int64) ([]*entity.Book, error)

	// GetBook retrieves one catalog entry by its identifier.
	GetBook(ctx context.Context, id string) (*entity.Book, error)

	// ListAll retrieves the full catalog regardless of published status.
	ListAll(ctx context.Context) ([]*entity.Book, error)

	// ListByLibrarian retrieves the books managed by one librarian.
	ListByLibrarian(ctx context.Context, email string) ([]*entity.Book, error)

	// AddBook creates a catalog entry.
	AddBook(ctx context.Context, input *AddBookInput) (*entity.Book, error)

	// UpdateBook edits a catalog entry's fields.
	UpdateBook(ctx context.Context, id string, input *UpdateBookInput) error

	// UpdatePublishedStatus flips a book between draft and published.
	UpdatePublishedStatus(ctx context.Context, id string, status entity.PublishedStatus) error

	// DeleteBook removes a catalog entry together with every order that
	// references it.
	DeleteBook(ctx context.Context, id string) (*DeleteBookOutput, error)
}
