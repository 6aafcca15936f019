package usecase

import (
	"context"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
)

// UpdateOrderStatusInput drives the order state machine.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// AttachPaymentInput records the out-of-band payment evidence.
type AttachPaymentInput struct {
	ScreenshotURL string `json:"screenshotUrl" validate:"required,url"`
}

// OrderUsecase defines order lifecycle operations.
type OrderUsecase interface {
	// GetOrder returns an order visible to the caller (own order, own
	// shop's order, or admin).
	GetOrder(ctx context.Context, id *authz.Identity, orderID string) (*entity.Order, error)

	// ListOrders returns the role-scoped order listing: customers see their
	// own, shop-owners their shop's, admins all.
	ListOrders(ctx context.Context, id *authz.Identity, status entity.OrderStatus) ([]*entity.Order, error)

	// UpdateStatus advances the order state machine on behalf of the
	// caller. Cancellation restores stock where the lifecycle demands it.
	UpdateStatus(ctx context.Context, id *authz.Identity, orderID string, input *UpdateOrderStatusInput) (*entity.Order, error)

	// AttachPayment stores the payment screenshot URL on the order. It
	// never advances the state machine.
	AttachPayment(ctx context.Context, id *authz.Identity, orderID string, input *AttachPaymentInput) (*entity.Order, error)
}
