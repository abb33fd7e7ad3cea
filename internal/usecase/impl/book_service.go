package impl

import (
	"context"
	"log/slog"
	"time"

	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/repository"
	"readreach/internal/errors"
	"readreach/internal/usecase"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bookService implements the BookUsecase interface.
type bookService struct {
	bookRepo  repository.BookRepository
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// NewBookService is the constructor for bookService.
func NewBookService(
	bookRepo repository.BookRepository,
	orderRepo repository.OrderRepository,
	logger *slog.Logger,
) usecase.BookUsecase {
	return &bookService{
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// parseObjectID turns a path parameter into an ObjectID, mapping malformed
// input to a 400 rather than a store error.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(domainerrors.ErrInvalidObjectID, "parse object id")
	}

	return oid, nil
}

// ListPublished retrieves the publicly browsable catalog.
func (srv *bookService) ListPublished(ctx context.Context) ([]*entity.Book, error) {
	books, err := srv.bookRepo.FindPublished(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list published books")
	}

	return books, nil
}

// ListLatest retrieves the newest published books, capped at limit.
func (srv *bookService) ListLatest(ctx context.Context, limit int64) ([]*entity.Book, error) {
	books, err := srv.bookRepo.FindLatest(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list latest books")
	}

	return books, nil
}

// GetBook retrieves one catalog entry.
func (srv *bookService) GetBook(ctx context.Context, id string) (*entity.Book, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	book, err := srv.bookRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, errors.Wrap(domainerrors.ErrBookNotFound, "get book")
		}

		return nil, errors.Wrap(err, "failed to find book")
	}

	return book, nil
}

// ListAll retrieves the full catalog regardless of visibility.
func (srv *bookService) ListAll(ctx context.Context) ([]*entity.Book, error) {
	books, err := srv.bookRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	return books, nil
}

// ListByLibrarian retrieves the catalog entries owned by one librarian.
func (srv *bookService) ListByLibrarian(ctx context.Context, email string) ([]*entity.Book, error) {
	books, err := srv.bookRepo.FindByLibrarian(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list librarian books")
	}

	return books, nil
}

// AddBook creates a catalog entry. Omitted published status defaults to a
// hidden draft so nothing leaks into the public catalog by accident.
func (srv *bookService) AddBook(ctx context.Context, input *usecase.AddBookInput) (*entity.Book, error) {
	status := entity.PublishedStatus(input.PublishedStatus)
	if input.PublishedStatus == "" {
		status = entity.PublishedStatusDraft
	}
	if !status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidPublishedStatus, "add book")
	}

	book := &entity.Book{
		Name:               input.Name,
		AuthorName:         input.AuthorName,
		Price:              input.Price,
		Image:              input.Image,
		Description:        input.Description,
		LibrarianEmail:     input.LibrarianEmail,
		LibrarianName:      input.LibrarianName,
		PublishedStatus:    status,
		AddedToLibraryDate: time.Now().UTC(),
	}

	if err := srv.bookRepo.Create(ctx, book); err != nil {
		return nil, errors.Wrap(err, "failed to create book")
	}

	srv.logger.Info("Added book to catalog", "book", book.Name, "librarian", book.LibrarianEmail)

	return book, nil
}

// UpdateBook edits a catalog entry's fields. Only non-empty input fields
// are written.
func (srv *bookService) UpdateBook(ctx context.Context, id string, input *usecase.UpdateBookInput) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	fields := map[string]any{}
	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.AuthorName != "" {
		fields["author_name"] = input.AuthorName
	}
	if input.Price != "" {
		fields["price"] = input.Price
	}
	if input.Image != "" {
		fields["image"] = input.Image
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if len(fields) == 0 {
		return nil
	}

	if err := srv.bookRepo.Update(ctx, oid, fields); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return errors.Wrap(domainerrors.ErrBookNotFound, "update book")
		}

		return errors.Wrap(err, "failed to update book")
	}

	return nil
}

// UpdatePublishedStatus flips a book's catalog visibility.
func (srv *bookService) UpdatePublishedStatus(ctx context.Context, id string, status entity.PublishedStatus) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	if !status.IsValid() {
		return errors.Wrap(domainerrors.ErrInvalidPublishedStatus, "update published status")
	}

	if err := srv.bookRepo.UpdatePublishedStatus(ctx, oid, status); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return errors.Wrap(domainerrors.ErrBookNotFound, "update published status")
		}

		return errors.Wrap(err, "failed to update published status")
	}

	srv.logger.Info("Updated published status", "bookId", id, "status", status)

	return nil
}

// DeleteBook removes a catalog entry and every order that references it.
// The order sweep runs after the book delete and is not atomic with it;
// a crash in between leaves orders pointing at a missing book, which the
// storefront tolerates.
func (srv *bookService) DeleteBook(ctx context.Context, id string) (*usecase.DeleteBookOutput, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	if err := srv.bookRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, errors.Wrap(domainerrors.ErrBookNotFound, "delete book")
		}

		return nil, errors.Wrap(err, "failed to delete book")
	}

	deleted, err := srv.orderRepo.DeleteByBookID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete orders for book")
	}

	srv.logger.Info("Deleted book with its orders", "bookId", id, "deletedOrders", deleted)

	return &usecase.DeleteBookOutput{DeletedOrders: deleted}, nil
}
