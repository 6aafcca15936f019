// Package entity contains the core business objects of the project.
package entity

// CartLine is one line of a client-assembled cart. Carts live on the
// client and are never persisted server-side; every field except ProductID
// and Quantity is untrusted display data that checkout re-derives from the
// catalog before committing anything.
type CartLine struct {
	ProductID string `json:"productId"`
	ShopID    string `json:"shopId"`   // Denormalized for display.
	ShopName  string `json:"shopName"` // Denormalized for display.
	Title     string `json:"title"`
	Price     int64  `json:"price"` // Unit price the client saw; checkout rejects on mismatch.
	Quantity  int64  `json:"quantity"`
	Image     string `json:"image,omitempty"`
	Stock     int64  `json:"stock"` // Stock at time of add, display only.
}
