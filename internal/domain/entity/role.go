// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the permission tier attached to an application user.
type Role string

const (
	// RoleUser indicates a regular purchaser account.
	RoleUser Role = "user"
	// RoleLibrarian indicates a librarian who owns catalog entries.
	RoleLibrarian Role = "librarian"
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleLibrarian, RoleAdmin:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
