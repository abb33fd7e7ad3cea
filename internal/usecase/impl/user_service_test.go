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
)

func TestUserService_RegisterUser_New(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo, testLogger())

	ctx := context.Background()

	stored := &entity.User{Email: "reader@example.com", Name: "Reader", Role: entity.RoleUser}
	mockUserRepo.EXPECT().
		FindOrCreate(ctx, mock.AnythingOfType("*entity.User")).
		Return(stored, true, nil)

	out, err := svc.RegisterUser(ctx, &usecase.RegisterUserInput{
		Email: "reader@example.com",
		Name:  "Reader",
	})
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, entity.RoleUser, out.User.Role)
}

func TestUserService_RegisterUser_ExistingKeepsElevatedRole(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo, testLogger())

	ctx := context.Background()

	stored := &entity.User{Email: "admin@example.com", Role: entity.RoleAdmin}
	mockUserRepo.EXPECT().
		FindOrCreate(ctx, mock.AnythingOfType("*entity.User")).
		Return(stored, false, nil)

	out, err := svc.RegisterUser(ctx, &usecase.RegisterUserInput{Email: "admin@example.com"})
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestUserService_RegisterUser_CandidateDefaultsToUserRole(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo, testLogger())

	ctx := context.Background()

	var candidate *entity.User
	mockUserRepo.EXPECT().
		FindOrCreate(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			candidate = user
		}).
		Return(&entity.User{Email: "reader@example.com", Role: entity.RoleUser}, true, nil)

	_, err := svc.RegisterUser(ctx, &usecase.RegisterUserInput{Email: "reader@example.com"})
	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, entity.RoleUser, candidate.Role)
	assert.False(t, candidate.CreatedAt.IsZero())
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo, testLogger())

	ctx := context.Background()

	mockUserRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := svc.GetUser(ctx, "ghost@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_ListUsersByRole_InvalidRole(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo, testLogger())

	_, err := svc.ListUsersByRole(context.Background(), entity.Role("superuser"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
	mockUserRepo.AssertNotCalled(t, "FindByRole")
}

func TestUserService_UpdateUserRole(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo, testLogger())

	ctx := context.Background()

	mockUserRepo.EXPECT().
		UpdateRole(ctx, "reader@example.com", entity.RoleLibrarian).
		Return(nil)

	err := svc.UpdateUserRole(ctx, "reader@example.com", entity.RoleLibrarian)
	require.NoError(t, err)
}

func TestUserService_UpdateUserRole_InvalidRole(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo, testLogger())

	err := svc.UpdateUserRole(context.Background(), "reader@example.com", entity.Role("root"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
	mockUserRepo.AssertNotCalled(t, "UpdateRole")
}

func TestUserService_UpdateUserRole_UnknownUser(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo, testLogger())

	ctx := context.Background()

	mockUserRepo.EXPECT().
		UpdateRole(ctx, "ghost@example.com", entity.RoleAdmin).
		Return(repository.ErrUserNotFound)

	err := svc.UpdateUserRole(ctx, "ghost@example.com", entity.RoleAdmin)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
