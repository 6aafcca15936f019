package usecase

import (
	"context"

	"campusmart/internal/domain/authz"
)

// ShopStats aggregates a single shop's performance.
type ShopStats struct {
	TotalSales         int64   `json:"totalSales"`
	TotalOrders        int64   `json:"totalOrders"`
	TotalProducts      int64   `json:"totalProducts"`
	AverageRating      float64 `json:"averageRating"`
	WeeklyOrders       int64   `json:"weeklyOrders"`
	WeeklyRevenue      int64   `json:"weeklyRevenue"`
	WeeklyProductsSold int64   `json:"weeklyProductsSold"`
}

// AdminStats aggregates platform-wide counters.
type AdminStats struct {
	TotalUsers      int64 `json:"totalUsers"`
	ActiveShops     int64 `json:"activeShops"`
	TotalOrders     int64 `json:"totalOrders"`
	PlatformRevenue int64 `json:"platformRevenue"`
}

// StatsUsecase serves the dashboard aggregates.
type StatsUsecase interface {
	// ShopStats returns aggregates for the caller's shop.
	ShopStats(ctx context.Context, id *authz.Identity) (*ShopStats, error)

	// AdminStats returns platform-wide aggregates.
	AdminStats(ctx context.Context, id *authz.Identity) (*AdminStats, error)
}
