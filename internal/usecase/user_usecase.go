// Package usecase defines the application's use case interfaces and their
// input/output DTOs. Implementations live in the impl subpackage.
package usecase

import (
	"context"

	"readreach/internal/domain/entity"
)

// RegisterUserInput is the payload of the first-sign-in registration call.
type RegisterUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// RegisterUserOutput carries the stored account and whether this call
// created it.
type RegisterUserOutput struct {
	User    *entity.User `json:"user"`
	Created bool         `json:"created"`
}

// UserUsecase defines the interface for account management use cases.
type UserUsecase interface {
	// RegisterUser stores an application account for a fresh identity. It is
	// a find-or-create: registering an email twice returns the existing
	// record and creates nothing.
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterUserOutput, error)

	// GetUser retrieves one account by email.
	GetUser(ctx context.Context, email string) (*entity.User, error)

	// ListUsers retrieves every account.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// ListUsersByRole retrieves the accounts carrying one role.
	ListUsersByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// UpdateUserRole sets an account's role. Admin-only at the route level.
	UpdateUserRole(ctx context.Context, email string, role entity.Role) error
}
