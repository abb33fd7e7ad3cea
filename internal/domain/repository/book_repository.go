package repository

import (
	"context"
	"errors"

	"readreach/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrBookNotFound is returned when a book lookup matches no document.
var ErrBookNotFound = errors.New("book not found")

// BookRepository defines the standard operations for catalog persistence.
type BookRepository interface {
	// FindByID retrieves a single book.
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Book, error)

	// FindPublished retrieves every book visible in the public catalog.
	FindPublished(ctx context.Context) ([]*entity.Book, error)

	// FindLatest retrieves the limit most recently added books.
	FindLatest(ctx context.Context, limit int64) ([]*entity.Book, error)

	// FindAll retrieves every book regardless of visibility.
	FindAll(ctx context.Context) ([]*entity.Book, error)

	// FindByLibrarian retrieves the books owned by a librarian.
	FindByLibrarian(ctx context.Context, librarianEmail string) ([]*entity.Book, error)

	// Create persists a new book.
	Create(ctx context.Context, book *entity.Book) error

	// Update replaces the mutable fields of an existing book.
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) error

	// UpdatePublishedStatus toggles catalog visibility.
	UpdatePublishedStatus(ctx context.Context, id primitive.ObjectID, status entity.PublishedStatus) error

	// Delete removes a book. The order cleanup that accompanies catalog
	// deletion is the lifecycle manager's concern, not the repository's.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
