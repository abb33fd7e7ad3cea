// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"readreach/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete
// implementation.
type UserRepository interface {
	// FindByEmail retrieves a single user by their email address.
	// Returns ErrUserNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindOrCreate persists user if no account with its email exists yet and
	// returns the stored record either way. It must be safe under concurrent
	// first sign-ins: the email unique index resolves the race, a duplicate
	// insert is retried as a lookup.
	FindOrCreate(ctx context.Context, user *entity.User) (*entity.User, bool, error)

	// FindAll retrieves every user.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// FindByRole retrieves all users carrying the given role.
	FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// UpdateRole sets the role of the user identified by email.
	// Returns ErrUserNotFound when no account exists.
	UpdateRole(ctx context.Context, email string, role entity.Role) error
}
