// Package impl contains the application-specific business rules implementations.
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
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	userRepo repository.UserRepository,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser stores an account for a first sign-in. Registering the same
// email again returns the stored record untouched; in particular an elevated
// role survives repeat registrations.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterUserOutput, error) {
	candidate := &entity.User{
		Email:     input.Email,
		Name:      input.Name,
		PhotoURL:  input.PhotoURL,
		Role:      entity.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	user, created, err := srv.userRepo.FindOrCreate(ctx, candidate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to register user")
	}

	if created {
		srv.logger.Info("Registered new account", "email", user.Email)
	}

	return &usecase.RegisterUserOutput{User: user, Created: created}, nil
}

// GetUser retrieves one account by email.
func (srv *userService) GetUser(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "get user")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// ListUsers retrieves every account.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// ListUsersByRole retrieves the accounts carrying one role.
func (srv *userService) ListUsersByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	if !role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidRole, "list users by role")
	}

	users, err := srv.userRepo.FindByRole(ctx, role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users by role")
	}

	return users, nil
}

// UpdateUserRole sets an account's role.
func (srv *userService) UpdateUserRole(ctx context.Context, email string, role entity.Role) error {
	if !role.IsValid() {
		return errors.Wrap(domainerrors.ErrInvalidRole, "update user role")
	}

	if err := srv.userRepo.UpdateRole(ctx, email, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "update user role")
		}

		return errors.Wrap(err, "failed to update user role")
	}

	srv.logger.Info("Updated account role", "email", email, "role", role)

	return nil
}
