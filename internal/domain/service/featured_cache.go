package service

import (
	"context"
	"time"

	"campusmart/internal/domain/entity"
)

// FeaturedCache is a short-TTL read cache for the featured-product
// projection, the one read-heavy query the platform serves. All other
// reads are uncached.
type FeaturedCache interface {
	// Get returns the cached projection, or (nil, false) on miss.
	Get(ctx context.Context) ([]*entity.Product, bool)

	// Set stores the projection for ttl.
	Set(ctx context.Context, products []*entity.Product, ttl time.Duration)
}
