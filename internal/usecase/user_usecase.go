// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	"campusmart/internal/domain/service"
)

// UserUsecase defines user-related business operations. This is the
// contract the delivery layer depends on.
type UserUsecase interface {
	// UpsertFromClaims finds or creates the User for a verified identity
	// assertion. Upserting the same identity twice yields the same User.
	UpsertFromClaims(ctx context.Context, claims *service.IdentityClaims) (*entity.User, error)

	// GetUser returns a user by identity UID.
	GetUser(ctx context.Context, id string) (*entity.User, error)

	// ResolveIdentity loads the persisted role and verification for a UID,
	// for use by the authorization gate. Returns nil when the UID has no
	// User record yet.
	ResolveIdentity(ctx context.Context, uid string) (*authz.Identity, error)
}
