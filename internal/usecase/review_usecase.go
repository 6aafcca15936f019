package usecase

import (
	"context"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
)

// CreateReviewInput defines the data required to post a review.
type CreateReviewInput struct {
	ProductID string `json:"productId" validate:"required"`
	OrderID   string `json:"orderId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// ReviewUsecase defines review operations and the rating feedback loop.
type ReviewUsecase interface {
	// ListForProduct returns all reviews of a product, newest first.
	ListForProduct(ctx context.Context, productID string) ([]*entity.Review, error)

	// Create posts a review. The caller must have a Delivered order
	// containing the product; the product's rating summary is recomputed
	// in the same transaction.
	Create(ctx context.Context, id *authz.Identity, input *CreateReviewInput) (*entity.Review, error)

	// Delete removes a review (admin only) and recomputes the summary.
	Delete(ctx context.Context, id *authz.Identity, reviewID string) error
}
