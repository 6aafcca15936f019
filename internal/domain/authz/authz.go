// Package authz implements the authorization gate. Authorization is a pure
// function of the caller's persisted role, the required roles, and (for
// resource-scoped actions) the resource owner; there is no role hierarchy.
package authz

import (
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
)

// Identity is the resolved caller: the persisted User record matched to the
// bearer token subject. A nil Identity means the request is unauthenticated.
type Identity struct {
	UserID   string
	Role     entity.Role
	Verified bool
}

// RequireRole checks that the caller exists and holds one of the required
// roles. Admins do not bypass this check; list RoleAdmin explicitly where
// admins are allowed.
func RequireRole(id *Identity, roles ...entity.Role) error {
	if id == nil {
		return domainerrors.ErrUnauthenticated
	}
	if !entity.Roles(roles).Contains(id.Role) {
		return domainerrors.ErrForbiddenRole
	}

	return nil
}

// RequireVerified checks that the caller's campus email was verified.
func RequireVerified(id *Identity) error {
	if id == nil {
		return domainerrors.ErrUnauthenticated
	}
	if !id.Verified {
		return domainerrors.ErrUnverified
	}

	return nil
}

// RequireOwner checks that the caller owns the resource identified by
// ownerID. Admins bypass ownership. The error deliberately does not reveal
// whether the resource exists.
func RequireOwner(id *Identity, ownerID string) error {
	if id == nil {
		return domainerrors.ErrUnauthenticated
	}
	if id.Role == entity.RoleAdmin {
		return nil
	}
	if id.UserID != ownerID {
		return domainerrors.ErrForbiddenScope
	}

	return nil
}
