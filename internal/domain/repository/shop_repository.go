package repository

import (
	"context"
	"errors"

	"campusmart/internal/domain/entity"
)

// ErrShopNotFound is returned when a shop is not found.
var ErrShopNotFound = errors.New("shop not found")

// ShopFilter narrows shop listings. Nil fields match everything.
type ShopFilter struct {
	Verified *bool
}

// ShopRepository defines the standard operations for shop persistence.
// At most one shop exists per owner; Create must fail with a conflict when
// the owner already has one.
type ShopRepository interface {
	// FindByID retrieves a single shop by its unique ID.
	FindByID(ctx context.Context, id string) (*entity.Shop, error)

	// FindByOwner retrieves the shop owned by the given user, if any.
	FindByOwner(ctx context.Context, ownerID string) (*entity.Shop, error)

	// List returns shops matching the filter, newest first.
	List(ctx context.Context, filter ShopFilter) ([]*entity.Shop, error)

	// Create persists a new shop entity to the storage.
	Create(ctx context.Context, shop *entity.Shop) error

	// Update modifies an existing shop entity in the storage.
	Update(ctx context.Context, shop *entity.Shop) error

	// CountVerified returns the number of verified shops.
	CountVerified(ctx context.Context) (int64, error)
}
