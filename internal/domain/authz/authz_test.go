package authz

import (
	"testing"

	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	customer := &Identity{UserID: "u1", Role: entity.RoleCustomer, Verified: true}
	admin := &Identity{UserID: "a1", Role: entity.RoleAdmin, Verified: true}

	assert.NoError(t, RequireRole(customer, entity.RoleCustomer))
	assert.NoError(t, RequireRole(customer, entity.RoleCustomer, entity.RoleShopOwner))

	err := RequireRole(customer, entity.RoleShopOwner)
	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)

	// Admins do not implicitly pass; RoleAdmin must be listed.
	err = RequireRole(admin, entity.RoleShopOwner)
	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
	assert.NoError(t, RequireRole(admin, entity.RoleShopOwner, entity.RoleAdmin))

	err = RequireRole(nil, entity.RoleCustomer)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestRequireVerified(t *testing.T) {
	assert.NoError(t, RequireVerified(&Identity{UserID: "u1", Verified: true}))

	err := RequireVerified(&Identity{UserID: "u1", Verified: false})
	assert.ErrorIs(t, err, domainerrors.ErrUnverified)

	err = RequireVerified(nil)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestRequireOwner(t *testing.T) {
	owner := &Identity{UserID: "u1", Role: entity.RoleCustomer}
	stranger := &Identity{UserID: "u2", Role: entity.RoleCustomer}
	admin := &Identity{UserID: "a1", Role: entity.RoleAdmin}

	assert.NoError(t, RequireOwner(owner, "u1"))
	assert.NoError(t, RequireOwner(admin, "u1"))

	err := RequireOwner(stranger, "u1")
	assert.ErrorIs(t, err, domainerrors.ErrForbiddenScope)

	err = RequireOwner(nil, "u1")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}
