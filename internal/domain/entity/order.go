// Package entity contains the core business objects of the project.
package entity

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusAccepted   OrderStatus = "accepted"
	StatusInTransit  OrderStatus = "in_transit"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusProcessing, StatusAccepted, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave this state.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Actor identifies who is driving a status transition, after the ownership
// scope check has already passed.
type Actor string

const (
	// ActorShop is the owner of the order's shop.
	ActorShop Actor = "shop"
	// ActorCustomer is the customer who placed the order.
	ActorCustomer Actor = "customer"
	// ActorAdmin is a platform administrator.
	ActorAdmin Actor = "admin"
)

type transition struct {
	from OrderStatus
	to   OrderStatus
}

// transitions is the authoritative state machine: which actor may drive
// each (from, to) edge. Edges absent from the map do not exist.
var transitions = map[transition][]Actor{
	{StatusProcessing, StatusAccepted}:  {ActorShop, ActorAdmin},
	{StatusProcessing, StatusCancelled}: {ActorShop, ActorCustomer, ActorAdmin},
	{StatusAccepted, StatusInTransit}:   {ActorShop, ActorAdmin},
	{StatusAccepted, StatusCancelled}:   {ActorShop, ActorAdmin},
	{StatusInTransit, StatusDelivered}:  {ActorShop, ActorAdmin},
	{StatusInTransit, StatusCancelled}:  {ActorAdmin},
}

// CanTransition reports whether actor may move an order from one status to
// another. Both unknown edges and edges the actor may not drive are invalid;
// the caller surfaces either as an invalid-transition error.
func CanTransition(from, to OrderStatus, actor Actor) bool {
	allowed, ok := transitions[transition{from, to}]
	if !ok {
		return false
	}
	for _, a := range allowed {
		if a == actor {
			return true
		}
	}

	return false
}

// RestoresStock reports whether a transition must compensate product stock.
// Cancelling after the shop accepted means units were committed and must be
// returned; cancelling while still Processing... also releases units, since
// checkout reserves stock at commit time.
func RestoresStock(from, to OrderStatus) bool {
	return to == StatusCancelled &&
		(from == StatusProcessing || from == StatusAccepted || from == StatusInTransit)
}

// OrderItem is one purchased line inside an order. Items are immutable
// after the order is created; name and price are snapshots taken at
// checkout time, not references into the catalog.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"` // Unit price snapshot, smallest currency unit.
	Quantity  int64  `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// DeliveryAddress is a value object copied into each order at creation.
type DeliveryAddress struct {
	RecipientName  string `json:"recipientName"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	AddressLine1   string `json:"addressLine1"`
	AddressLine2   string `json:"addressLine2,omitempty"`
	CampusLocation string `json:"campusLocation"`
	PostalCode     string `json:"postalCode,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// Order is the unit of fulfillment and payment. Each order belongs to
// exactly one shop; a checkout that spans N shops produces N orders, each
// with its own UPI payment instrument and its own lifecycle.
type Order struct {
	ID                string
	UserID            string // Customer who placed the order.
	ShopID            string
	Items             []OrderItem
	Subtotal          int64 // Sum of item price * quantity.
	Tax               int64 // Reserved, currently always 0.
	DeliveryFee       int64 // Flat per-order fee, charged once per order, not per checkout.
	Total             int64 // Subtotal + Tax + DeliveryFee.
	Status            OrderStatus
	DeliveryAddress   DeliveryAddress
	PaymentScreenshot string // Evidentiary artifact URL; never drives the state machine.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
