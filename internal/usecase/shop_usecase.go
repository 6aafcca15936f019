package usecase

import (
	"context"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
)

// --- Input DTOs ---

// CreateShopInput defines the data required to open a shop.
type CreateShopInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Address     string `json:"address" validate:"required"`
	UPIID       string `json:"upiId" validate:"required"`
}

// UpdateShopInput is the admin-only patch surface. Nil fields are untouched.
type UpdateShopInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	UPIID       *string `json:"upiId"`
	Verified    *bool   `json:"verified"`
}

// ShopUsecase defines shop-related business operations.
type ShopUsecase interface {
	// CreateShop opens a shop for the caller and promotes them to
	// shop-owner. Fails with a conflict if the caller already owns one.
	CreateShop(ctx context.Context, id *authz.Identity, input *CreateShopInput) (*entity.Shop, error)

	// GetShop returns a shop by ID.
	GetShop(ctx context.Context, shopID string) (*entity.Shop, error)

	// GetOwnShop returns the caller's shop.
	GetOwnShop(ctx context.Context, id *authz.Identity) (*entity.Shop, error)

	// ListShops returns shops, optionally filtered by verified flag.
	ListShops(ctx context.Context, verified *bool) ([]*entity.Shop, error)

	// UpdateShop applies an admin patch, including the verified flag.
	UpdateShop(ctx context.Context, id *authz.Identity, shopID string, input *UpdateShopInput) (*entity.Shop, error)

	// ListPendingShops returns unverified shops awaiting review.
	ListPendingShops(ctx context.Context, id *authz.Identity) ([]*entity.Shop, error)
}
