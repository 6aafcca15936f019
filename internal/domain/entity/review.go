// Package entity contains the core business objects of the project.
package entity

import "time"

// Review is feedback from a customer on a product they received.
// One review per (user, order, product); a review may only be created once
// the referenced order is delivered and its items include the product.
type Review struct {
	ID        string
	ProductID string
	UserID    string
	OrderID   string
	Rating    int // 1..5 inclusive.
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingValid reports whether the rating is inside the allowed range.
func (r *Review) RatingValid() bool {
	return r.Rating >= 1 && r.Rating <= 5
}
