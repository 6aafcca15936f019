package usecase

import (
	"context"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
)

// --- Input DTOs ---

// CreateProductInput defines the data required to list a product.
type CreateProductInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price" validate:"gte=0"`
	Stock       int64    `json:"stock" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

// UpdateProductInput is the owner patch surface. Nil fields are untouched.
type UpdateProductInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *int64    `json:"price"`
	Stock       *int64    `json:"stock"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	Images      *[]string `json:"images"`
}

// ProductQuery filters the catalog listing.
type ProductQuery struct {
	ShopID   string
	Category string
	Search   string // Case-insensitive substring over title, description, tags.
	Featured bool   // Rating-weighted top-8 projection.
}

// CatalogUsecase defines product catalog operations.
type CatalogUsecase interface {
	// GetProduct returns a product by ID.
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)

	// ListProducts answers a filtered catalog query.
	ListProducts(ctx context.Context, query *ProductQuery) ([]*entity.Product, error)

	// CreateProduct lists a product under the caller's shop.
	CreateProduct(ctx context.Context, id *authz.Identity, input *CreateProductInput) (*entity.Product, error)

	// UpdateProduct patches a product owned by the caller's shop.
	UpdateProduct(ctx context.Context, id *authz.Identity, productID string, input *UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a product owned by the caller's shop. Refused
	// while any non-terminal order references it.
	DeleteProduct(ctx context.Context, id *authz.Identity, productID string) error
}
