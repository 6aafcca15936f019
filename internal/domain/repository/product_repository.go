package repository

import (
	"context"
	"errors"

	"campusmart/internal/domain/entity"
)

// Product-related domain errors.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a guarded stock decrement would
	// drive stock negative. This includes the row disappearing mid-checkout.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductFilter narrows product listings. Zero-valued fields match everything.
type ProductFilter struct {
	ShopID   string
	Category entity.Category
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id string) (*entity.Product, error)

	// List returns products matching the filter, newest first. Free-text
	// search and the featured projection are applied by the catalog service
	// on top of this listing.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product entity in the storage.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id string) error

	// DecrementStock atomically subtracts qty from the product's stock,
	// guarded so stock never goes negative. Returns ErrInsufficientStock
	// when the guard rejects the write.
	DecrementStock(ctx context.Context, id string, qty int64) error

	// RestoreStock atomically adds qty back to the product's stock, used as
	// the compensating write when an order is cancelled.
	RestoreStock(ctx context.Context, id string, qty int64) error

	// UpdateRating overwrites the product's rating summary.
	UpdateRating(ctx context.Context, id string, avg float64, count int64) error
}
