// Package entity contains the core business objects of the project.
package entity

import "time"

// Shop is a verified on-campus seller. At most one Shop exists per owner.
// A shop is listable to customers only once an administrator has flipped
// its Verified flag after off-platform due diligence.
type Shop struct {
	ID          string    // Opaque unique identifier.
	OwnerID     string    // User.ID of the owning shop-owner.
	Name        string    // Public shop name.
	Description string    // Optional blurb shown on the storefront.
	Address     string    // Physical pickup address on campus.
	UPIID       string    // Payee UPI handle of the form "name@psp"; receives payments.
	Verified    bool      // Set by admin only. Unverified shops cannot take orders.
	CreatedAt   time.Time // Timestamp of when this shop was created.
	UpdatedAt   time.Time // Timestamp of the last modification.
}
