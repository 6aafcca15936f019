package usecase

import (
	"context"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	"campusmart/internal/domain/payment"
)

// CheckoutInput is a full checkout intent: the client cart plus one
// delivery address copied into every resulting order.
type CheckoutInput struct {
	Lines   []entity.CartLine      `json:"items" validate:"required"`
	Address entity.DeliveryAddress `json:"deliveryAddress" validate:"required"`
}

// CheckoutPartition is the result for one shop: the created order, its
// payment instrument, and human-readable payment instructions.
type CheckoutPartition struct {
	Order        *entity.Order      `json:"order"`
	ShopName     string             `json:"shopName"`
	Instrument   payment.Instrument `json:"payment"`
	Instructions []string           `json:"instructions"`
}

// CheckoutOutput is the full result of a split checkout.
type CheckoutOutput struct {
	Partitions []CheckoutPartition `json:"orders"`
	GrandTotal int64               `json:"grandTotal"` // Sum of all per-order totals, fees included.
}

// CheckoutUsecase is the entry point of the order-splitting pipeline.
type CheckoutUsecase interface {
	// Checkout re-prices the cart, partitions it by shop, mints one UPI
	// instrument per partition, and commits all orders and stock
	// decrements atomically. On any rejection nothing is written.
	Checkout(ctx context.Context, id *authz.Identity, input *CheckoutInput) (*CheckoutOutput, error)
}
