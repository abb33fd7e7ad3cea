package impl

import (
	"context"
	"testing"

	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/repository"
	mockRepo "readreach/internal/mocks/repository"
	"readreach/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newBookService(t *testing.T) (*mockRepo.MockBookRepository, *mockRepo.MockOrderRepository, usecase.BookUsecase) {
	mockBookRepo := mockRepo.NewMockBookRepository(t)
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	svc := NewBookService(mockBookRepo, mockOrderRepo, testLogger())

	return mockBookRepo, mockOrderRepo, svc
}

func TestBookService_AddBook_DefaultsToDraft(t *testing.T) {
	mockBookRepo, _, svc := newBookService(t)

	ctx := context.Background()

	mockBookRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Book")).
		Return(nil)

	book, err := svc.AddBook(ctx, &usecase.AddBookInput{
		Name:           "The Go Programming Language",
		AuthorName:     "Donovan and Kernighan",
		Price:          "19.99",
		LibrarianEmail: "librarian@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PublishedStatusDraft, book.PublishedStatus)
	assert.False(t, book.AddedToLibraryDate.IsZero())
}

func TestBookService_AddBook_InvalidStatus(t *testing.T) {
	mockBookRepo, _, svc := newBookService(t)

	_, err := svc.AddBook(context.Background(), &usecase.AddBookInput{
		Name:            "The Go Programming Language",
		AuthorName:      "Donovan and Kernighan",
		Price:           "19.99",
		LibrarianEmail:  "librarian@example.com",
		PublishedStatus: "visible",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPublishedStatus)
	mockBookRepo.AssertNotCalled(t, "Create")
}

func TestBookService_GetBook_MalformedID(t *testing.T) {
	_, _, svc := newBookService(t)

	_, err := svc.GetBook(context.Background(), "not-an-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidObjectID)
}

func TestBookService_GetBook_NotFound(t *testing.T) {
	mockBookRepo, _, svc := newBookService(t)

	ctx := context.Background()
	oid := primitive.NewObjectID()

	mockBookRepo.EXPECT().
		FindByID(ctx, oid).
		Return(nil, repository.ErrBookNotFound)

	_, err := svc.GetBook(ctx, oid.Hex())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrBookNotFound)
}

func TestBookService_UpdateBook_OnlyNonEmptyFields(t *testing.T) {
	mockBookRepo, _, svc := newBookService(t)

	ctx := context.Background()
	oid := primitive.NewObjectID()

	var fields map[string]any
	mockBookRepo.EXPECT().
		Update(ctx, oid, mock.AnythingOfType("map[string]interface {}")).
		Run(func(_ context.Context, _ primitive.ObjectID, f map[string]interface{}) {
			fields = f
		}).
		Return(nil)

	err := svc.UpdateBook(ctx, oid.Hex(), &usecase.UpdateBookInput{
		Price:       "24.99",
		Description: "Second edition",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"price": "24.99", "description": "Second edition"}, fields)
}

func TestBookService_UpdateBook_NoFieldsIsNoop(t *testing.T) {
	mockBookRepo, _, svc := newBookService(t)

	err := svc.UpdateBook(context.Background(), primitive.NewObjectID().Hex(), &usecase.UpdateBookInput{})
	require.NoError(t, err)
	mockBookRepo.AssertNotCalled(t, "Update")
}

func TestBookService_UpdatePublishedStatus_Invalid(t *testing.T) {
	mockBookRepo, _, svc := newBookService(t)

	err := svc.UpdatePublishedStatus(context.Background(), primitive.NewObjectID().Hex(), entity.PublishedStatus("hidden"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPublishedStatus)
	mockBookRepo.AssertNotCalled(t, "UpdatePublishedStatus")
}

func TestBookService_DeleteBook_CascadesOrders(t *testing.T) {
	mockBookRepo, mockOrderRepo, svc := newBookService(t)

	ctx := context.Background()
	oid := primitive.NewObjectID()

	mockBookRepo.EXPECT().
		Delete(ctx, oid).
		Return(nil)

	mockOrderRepo.EXPECT().
		DeleteByBookID(ctx, oid.Hex()).
		Return(int64(3), nil)

	out, err := svc.DeleteBook(ctx, oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.DeletedOrders)
}

func TestBookService_DeleteBook_NotFoundSkipsCascade(t *testing.T) {
	mockBookRepo, mockOrderRepo, svc := newBookService(t)

	ctx := context.Background()
	oid := primitive.NewObjectID()

	mockBookRepo.EXPECT().
		Delete(ctx, oid).
		Return(repository.ErrBookNotFound)

	_, err := svc.DeleteBook(ctx, oid.Hex())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrBookNotFound)
	mockOrderRepo.AssertNotCalled(t, "DeleteByBookID")
}
