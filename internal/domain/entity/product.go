// Package entity contains the core business objects of the project.
package entity

import "time"

// Category enumerates the product categories shown in the catalog.
type Category string

const (
	CategoryBooks       Category = "books"
	CategoryElectronics Category = "electronics"
	CategoryStationery  Category = "stationery"
	CategoryFashion     Category = "fashion"
	CategorySports      Category = "sports"
	CategoryOther       Category = "other"
)

// IsValid checks if the Category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBooks, CategoryElectronics, CategoryStationery,
		CategoryFashion, CategorySports, CategoryOther:
		return true
	default:
		return false
	}
}

// Product is a catalog item offered by a single shop.
// Price is in the smallest currency unit. Stock never goes negative;
// checkout decrements it under a guard and cancellation restores it.
type Product struct {
	ID          string    // Opaque unique identifier.
	ShopID      string    // Owning shop.
	Title       string
	Description string
	Price       int64     // Smallest currency unit, >= 0.
	Stock       int64     // Units available, >= 0.
	Category    Category
	Tags        []string  // Unordered search tags.
	Images      []string  // Ordered image URLs.
	RatingAvg   float64   // Arithmetic mean of review ratings, 0 when ReviewCount is 0.
	ReviewCount int64     // Number of reviews referencing this product.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
