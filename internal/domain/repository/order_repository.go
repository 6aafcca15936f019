package repository

import (
	"context"
	"errors"

	"campusmart/internal/domain/entity"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderStateChanged is returned when a guarded status write finds the
// order no longer in the expected state.
var ErrOrderStateChanged = errors.New("order state changed")

// OrderFilter narrows order listings. Zero-valued fields match everything.
type OrderFilter struct {
	UserID string
	ShopID string
	Status entity.OrderStatus
}

// OrderRepository defines the standard operations for order persistence.
// Orders are never deleted; status moves only through the lifecycle engine.
type OrderRepository interface {
	// FindByID retrieves a single order by its unique ID.
	FindByID(ctx context.Context, id string) (*entity.Order, error)

	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)

	// Create persists a new order entity to the storage.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus writes a new status for the order, guarded on the
	// expected current state. Returns ErrOrderStateChanged when the order
	// has moved on since it was read.
	UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) error

	// AttachPaymentScreenshot records the evidentiary payment artifact URL.
	AttachPaymentScreenshot(ctx context.Context, id string, url string) error

	// Count returns the total number of orders.
	Count(ctx context.Context) (int64, error)
}
