package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "campusmart/internal/delivery/context"
	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/repository"
	"campusmart/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// statsWindow is the rolling window for the weekly dashboard counters.
const statsWindow = 7 * 24 * time.Hour

// statsService implements the StatsUsecase interface. Aggregates are
// computed on read; dashboards tolerate that latency and nothing here
// needs to be transactional.
type statsService struct {
	userRepo    repository.UserRepository
	shopRepo    repository.ShopRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	logger      *slog.Logger
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	ShopRepo    repository.ShopRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Logger      *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	return &statsService{
		userRepo:    params.UserRepo,
		shopRepo:    params.ShopRepo,
		productRepo: params.ProductRepo,
		orderRepo:   params.OrderRepo,
		logger:      params.Logger,
	}
}

func (srv *statsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ShopStats returns aggregates for the caller's shop. Sales and revenue
// count delivered orders only; open and cancelled orders contribute to the
// order counters but never to money.
func (srv *statsService) ShopStats(ctx context.Context, id *authz.Identity) (*usecase.ShopStats, error) {
	if err := authz.RequireRole(id, entity.RoleShopOwner, entity.RoleAdmin); err != nil {
		return nil, err
	}

	shop, err := srv.shopRepo.FindByOwner(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("caller owns no shop")
		}

		return nil, errors.Wrap(err, "failed to find shop by owner")
	}

	orders, err := srv.orderRepo.List(ctx, repository.OrderFilter{ShopID: shop.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shop orders")
	}

	products, err := srv.productRepo.List(ctx, repository.ProductFilter{ShopID: shop.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shop products")
	}

	stats := &usecase.ShopStats{
		TotalOrders:   int64(len(orders)),
		TotalProducts: int64(len(products)),
	}

	weekAgo := time.Now().Add(-statsWindow)
	for _, order := range orders {
		delivered := order.Status == entity.StatusDelivered
		if delivered {
			stats.TotalSales += order.Total
		}
		if order.CreatedAt.After(weekAgo) {
			stats.WeeklyOrders++
			if delivered {
				stats.WeeklyRevenue += order.Total
				for _, item := range order.Items {
					stats.WeeklyProductsSold += item.Quantity
				}
			}
		}
	}

	var ratingSum float64
	var reviewCount int64
	for _, product := range products {
		ratingSum += product.RatingAvg * float64(product.ReviewCount)
		reviewCount += product.ReviewCount
	}
	if reviewCount > 0 {
		stats.AverageRating = ratingSum / float64(reviewCount)
	}

	return stats, nil
}

// AdminStats returns platform-wide aggregates.
func (srv *statsService) AdminStats(ctx context.Context, id *authz.Identity) (*usecase.AdminStats, error) {
	if err := authz.RequireRole(id, entity.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := srv.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	shops, err := srv.shopRepo.CountVerified(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count verified shops")
	}

	orders, err := srv.orderRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	delivered, err := srv.orderRepo.List(ctx, repository.OrderFilter{Status: entity.StatusDelivered})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list delivered orders")
	}

	var revenue int64
	for _, order := range delivered {
		revenue += order.Total
	}

	srv.log(ctx).Debug("Computed platform stats",
		slog.Int64("users", users),
		slog.Int64("orders", orders))

	return &usecase.AdminStats{
		TotalUsers:      users,
		ActiveShops:     shops,
		TotalOrders:     orders,
		PlatformRevenue: revenue,
	}, nil
}
