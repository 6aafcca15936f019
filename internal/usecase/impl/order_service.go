package impl

import (
	"context"
	"log/slog"

	deliverycontext "campusmart/internal/delivery/context"
	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/repository"
	"campusmart/internal/domain/service"
	"campusmart/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface. It is the only mover
// of order status and the only caller of compensating stock restores.
type orderService struct {
	orderRepo repository.OrderRepository
	shopRepo  repository.ShopRepository
	txManager repository.TransactionManager
	publisher service.EventPublisher
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	ShopRepo  repository.ShopRepository
	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo: params.OrderRepo,
		shopRepo:  params.ShopRepo,
		txManager: params.TxManager,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetOrder returns an order visible to the caller.
func (srv *orderService) GetOrder(ctx context.Context, id *authz.Identity, orderID string) (*entity.Order, error) {
	if id == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if _, err := srv.resolveActor(ctx, id, order); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders returns the role-scoped order listing: customers see their
// own orders, shop-owners their shop's, admins everything.
func (srv *orderService) ListOrders(ctx context.Context, id *authz.Identity, status entity.OrderStatus) ([]*entity.Order, error) {
	if id == nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	if status != "" && !status.IsValid() {
		return nil, domainerrors.ErrValidation.WrapMessage("unknown order status")
	}

	filter := repository.OrderFilter{Status: status}
	switch id.Role {
	case entity.RoleAdmin:
		// Unscoped.
	case entity.RoleShopOwner:
		shop, err := srv.shopRepo.FindByOwner(ctx, id.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrShopNotFound) {
				return []*entity.Order{}, nil
			}

			return nil, errors.Wrap(err, "failed to find shop by owner")
		}
		filter.ShopID = shop.ID
	default:
		filter.UserID = id.UserID
	}

	orders, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// UpdateStatus advances the order state machine on behalf of the caller.
// The scope check runs first, so a caller outside the order's scope learns
// nothing about which transitions exist. Cancellations that release
// committed stock restore it in the same transaction as the status write.
func (srv *orderService) UpdateStatus(ctx context.Context, id *authz.Identity, orderID string, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	if id == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	to := entity.OrderStatus(input.Status)
	if !to.IsValid() {
		return nil, domainerrors.ErrValidation.WrapMessage("unknown order status")
	}

	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	actor, err := srv.resolveActor(ctx, id, order)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if !entity.CanTransition(from, to, actor) {
		return nil, domainerrors.NewInvalidTransition(string(from), string(to))
	}

	err = srv.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		if err := txRepoFactory.NewOrderRepository().UpdateStatus(ctx, order.ID, from, to); err != nil {
			if errors.Is(err, repository.ErrOrderStateChanged) {
				return domainerrors.ErrConflict.WrapMessage("order was updated concurrently")
			}

			return errors.Wrap(err, "failed to update order status")
		}

		if entity.RestoresStock(from, to) {
			productRepo := txRepoFactory.NewProductRepository()
			for _, item := range order.Items {
				if err := productRepo.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
					return errors.Wrap(err, "failed to restore stock on cancellation")
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = to

	srv.log(ctx).Info("Order status changed",
		slog.String("orderID", order.ID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("actor", string(actor)))
	srv.publishStatusChanged(ctx, order)

	return order, nil
}

// AttachPayment stores the payment screenshot URL on the order. Payment
// evidence never advances the state machine; the shop confirms manually.
func (srv *orderService) AttachPayment(ctx context.Context, id *authz.Identity, orderID string, input *usecase.AttachPaymentInput) (*entity.Order, error) {
	if id == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireOwner(id, order.UserID); err != nil {
		return nil, err
	}

	if err := srv.orderRepo.AttachPaymentScreenshot(ctx, order.ID, input.ScreenshotURL); err != nil {
		return nil, errors.Wrap(err, "failed to attach payment screenshot")
	}
	order.PaymentScreenshot = input.ScreenshotURL

	srv.log(ctx).Info("Payment screenshot attached", slog.String("orderID", order.ID))

	return order, nil
}

func (srv *orderService) findOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// resolveActor maps the caller onto the order's scope: the customer who
// placed it, the owner of its shop, or an admin. Anyone else is out of
// scope regardless of role.
func (srv *orderService) resolveActor(ctx context.Context, id *authz.Identity, order *entity.Order) (entity.Actor, error) {
	if id.Role == entity.RoleAdmin {
		return entity.ActorAdmin, nil
	}
	if order.UserID == id.UserID {
		return entity.ActorCustomer, nil
	}

	shop, err := srv.shopRepo.FindByID(ctx, order.ShopID)
	if err != nil && !errors.Is(err, repository.ErrShopNotFound) {
		return "", errors.Wrap(err, "failed to find order shop")
	}
	if shop != nil && shop.OwnerID == id.UserID {
		return entity.ActorShop, nil
	}

	return "", domainerrors.ErrForbiddenScope
}

// publishStatusChanged emits the status change. Publishing is best-effort;
// the write has already committed.
func (srv *orderService) publishStatusChanged(ctx context.Context, order *entity.Order) {
	if srv.publisher == nil {
		return
	}

	event := &service.OrderEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      service.EventOrderStatusChanged,
		OrderID:   order.ID,
		ShopID:    order.ShopID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Total:     order.Total,
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order status event",
			slog.String("orderID", order.ID),
			slog.Any("error", err))
	}
}
