package service

import "context"

// Order event types published on the order stream.
const (
	EventOrderCreated           = "order.created"
	EventOrderStatusChanged     = "order.status_changed"
	EventShopVerificationChange = "shop.verification_changed"
)

// OrderEvent is emitted when an order is created or its status changes, and
// when an admin flips a shop's verified flag. Consumers (e.g. a future
// payment reconciler) observe the stream without touching the lifecycle
// engine.
type OrderEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing.
	Type      string `json:"type"`
	OrderID   string `json:"order_id,omitempty"`
	ShopID    string `json:"shop_id"`
	UserID    string `json:"user_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Total     int64  `json:"total,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message
// queue.
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async consumers.
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
