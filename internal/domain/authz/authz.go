// Package authz is the access control decision point. Every protected route
// declares a Policy next to its registration; one generic middleware
// interprets them. No handler carries its own role logic.
package authz

import (
	"net/url"

	"readreach/internal/domain/entity"
	domainerrors "readreach/internal/domain/errors"
)

// OwnershipFunc checks that the resource scope a request asks for belongs
// to the calling user. It runs only after the role check has passed, so a
// role-based deny can never leak whether a resource exists.
type OwnershipFunc func(user *entity.User, query url.Values) bool

// Policy is the static access declaration for one operation.
type Policy struct {
	// Roles is the set of roles allowed to invoke the operation.
	Roles entity.Roles

	// Ownership optionally narrows the operation to the caller's own
	// records. Nil means the role check alone decides.
	Ownership OwnershipFunc
}

// Decide evaluates the policy for a resolved user. Role first, ownership
// second; both failures surface as the same forbidden error.
func Decide(user *entity.User, policy Policy, query url.Values) error {
	if !policy.Roles.Contains(user.Role) {
		return domainerrors.ErrForbidden.WrapMessage("role " + user.Role.String() + " is not permitted")
	}
	if policy.Ownership != nil && !policy.Ownership(user, query) {
		return domainerrors.ErrForbidden.WrapMessage("resource is outside the caller's scope")
	}

	return nil
}

// OwnEmailQuery passes when the email query parameter is absent or equals
// the caller's email. Scoped listings (a purchaser's orders and payments, a
// librarian's books) use it so one caller cannot read another's records by
// swapping the parameter.
func OwnEmailQuery(user *entity.User, query url.Values) bool {
	email := query.Get("email")

	return email == "" || email == user.Email
}
