package repository

import (
	"context"
	"errors"

	"campusmart/internal/domain/entity"
)

// Review-related domain errors.
var (
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")

	// ErrDuplicateReview is returned when a (user, order, product) triple
	// already has a review.
	ErrDuplicateReview = errors.New("review already exists for this order item")
)

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// ListByProduct returns all reviews for a product, newest first.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error)

	// Create persists a new review. Returns ErrDuplicateReview when the
	// (user, order, product) uniqueness invariant would be broken.
	Create(ctx context.Context, review *entity.Review) error

	// Delete removes a review. Admin-only by contract.
	Delete(ctx context.Context, id string) error

	// FindByID retrieves a single review by its unique ID.
	FindByID(ctx context.Context, id string) (*entity.Review, error)
}
