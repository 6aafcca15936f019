package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusmart/config"
	deliverycontext "campusmart/internal/delivery/context"
	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/payment"
	"campusmart/internal/domain/repository"
	"campusmart/internal/domain/service"
	"campusmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface. It is the only
// writer of orders and the only caller of guarded stock decrements.
type checkoutService struct {
	productRepo      repository.ProductRepository
	shopRepo         repository.ShopRepository
	txManager        repository.TransactionManager
	builder          *payment.Builder
	publisher        service.EventPublisher
	deliveryFee      int64
	maxCommitRetries int
	logger           *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	ShopRepo    repository.ShopRepository
	TxManager   repository.TransactionManager
	Builder     *payment.Builder
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	fee := int64(config.DefaultDeliveryFee)
	retries := config.DefaultMaxCommitRetries
	if params.Config != nil && params.Config.Checkout != nil {
		if params.Config.Checkout.DeliveryFee > 0 {
			fee = params.Config.Checkout.DeliveryFee
		}
		if params.Config.Checkout.MaxCommitRetries > 0 {
			retries = params.Config.Checkout.MaxCommitRetries
		}
	}

	return &checkoutService{
		productRepo:      params.ProductRepo,
		shopRepo:         params.ShopRepo,
		txManager:        params.TxManager,
		builder:          params.Builder,
		publisher:        params.Publisher,
		deliveryFee:      fee,
		maxCommitRetries: retries,
		logger:           params.Logger,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// plannedOrder is one shop partition with its authoritative pricing, built
// before anything is written.
type plannedOrder struct {
	order    *entity.Order
	shopName string
	payeeID  string
}

// Checkout runs the full split pipeline: re-price the cart against the
// catalog, partition by shop, mint one UPI instrument per partition, and
// commit every order and stock decrement in one transaction. Any rejection
// leaves the store untouched. A lost stock race replans and retries a
// bounded number of times before failing with a conflict.
func (srv *checkoutService) Checkout(ctx context.Context, id *authz.Identity, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	if id == nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	if input == nil || len(input.Lines) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	// Zero-quantity lines contribute nothing; a cart of nothing but them
	// is an empty cart, not malformed input.
	lines := make([]entity.CartLine, 0, len(input.Lines))
	for _, line := range input.Lines {
		if line.ProductID == "" || line.Quantity < 0 {
			return nil, domainerrors.ErrValidation.WrapMessage("cart lines need a product and a non-negative quantity")
		}
		if line.Quantity > 0 {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}
	input = &usecase.CheckoutInput{Lines: lines, Address: input.Address}

	var planned []plannedOrder
	var commitErr error
	for attempt := 0; attempt < srv.maxCommitRetries; attempt++ {
		var err error
		planned, err = srv.plan(ctx, id, input)
		if err != nil {
			return nil, err
		}

		commitErr = srv.commit(ctx, planned)
		if commitErr == nil {
			break
		}

		var stale *domainerrors.StaleCartError
		if !errors.As(commitErr, &stale) {
			return nil, commitErr
		}

		srv.log(ctx).Info("Checkout lost a stock race, replanning",
			slog.Int("attempt", attempt+1),
			slog.String("productID", stale.ProductID))
	}
	if commitErr != nil {
		return nil, domainerrors.ErrConflict.WrapMessage("checkout could not commit after repeated stock races")
	}

	output := &usecase.CheckoutOutput{
		Partitions: make([]usecase.CheckoutPartition, 0, len(planned)),
	}
	for _, p := range planned {
		instrument := srv.builder.Build(p.payeeID, p.shopName, p.order.Total, p.order.ID)
		output.Partitions = append(output.Partitions, usecase.CheckoutPartition{
			Order:        p.order,
			ShopName:     p.shopName,
			Instrument:   instrument,
			Instructions: srv.instructions(p.shopName, p.order),
		})
		output.GrandTotal += p.order.Total

		srv.publishCreated(ctx, p.order)
	}

	srv.log(ctx).Info("Checkout committed",
		slog.String("userID", id.UserID),
		slog.Int("orders", len(planned)),
		slog.Int64("grandTotal", output.GrandTotal))

	return output, nil
}

// plan re-prices every line against the catalog and partitions the cart by
// shop, preserving the order shops first appear in the cart. Client-sent
// prices must match the catalog exactly; any divergence rejects the whole
// checkout naming the first offending product.
func (srv *checkoutService) plan(ctx context.Context, id *authz.Identity, input *usecase.CheckoutInput) ([]plannedOrder, error) {
	type partition struct {
		shop  *entity.Shop
		items []entity.OrderItem
	}

	shopOrder := make([]string, 0, len(input.Lines))
	partitions := make(map[string]*partition, len(input.Lines))

	for _, line := range input.Lines {
		product, err := srv.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrNotFound.WrapMessage("cart references an unknown product")
			}

			return nil, errors.Wrap(err, "failed to load cart product")
		}

		if product.Price != line.Price {
			return nil, domainerrors.NewStaleCart(product.ID, domainerrors.StaleCausePrice)
		}
		if product.Stock < line.Quantity {
			return nil, domainerrors.NewStaleCart(product.ID, domainerrors.StaleCauseStock)
		}

		part, ok := partitions[product.ShopID]
		if !ok {
			shop, err := srv.shopRepo.FindByID(ctx, product.ShopID)
			if err != nil {
				if errors.Is(err, repository.ErrShopNotFound) {
					return nil, domainerrors.ErrShopUnavailable
				}

				return nil, errors.Wrap(err, "failed to load cart shop")
			}
			if !shop.Verified {
				return nil, domainerrors.ErrShopUnavailable
			}

			part = &partition{shop: shop}
			partitions[product.ShopID] = part
			shopOrder = append(shopOrder, product.ShopID)
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		part.items = append(part.items, entity.OrderItem{
			ProductID: product.ID,
			Name:      product.Title,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Image:     image,
		})
	}

	now := time.Now()
	planned := make([]plannedOrder, 0, len(shopOrder))
	for _, shopID := range shopOrder {
		part := partitions[shopID]

		var subtotal int64
		for _, item := range part.items {
			subtotal += item.Price * item.Quantity
		}

		order := &entity.Order{
			ID:              uuid.NewString(),
			UserID:          id.UserID,
			ShopID:          shopID,
			Items:           part.items,
			Subtotal:        subtotal,
			Tax:             0,
			DeliveryFee:     srv.deliveryFee,
			Total:           subtotal + srv.deliveryFee,
			Status:          entity.StatusProcessing,
			DeliveryAddress: input.Address,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		planned = append(planned, plannedOrder{
			order:    order,
			shopName: part.shop.Name,
			payeeID:  part.shop.UPIID,
		})
	}

	return planned, nil
}

// commit writes every planned order and decrements every stock line inside
// one transaction. A failed stock guard rolls the whole checkout back and
// surfaces as a stale cart so the caller can replan.
func (srv *checkoutService) commit(ctx context.Context, planned []plannedOrder) error {
	return srv.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		productRepo := txRepoFactory.NewProductRepository()
		orderRepo := txRepoFactory.NewOrderRepository()

		for _, p := range planned {
			for _, item := range p.order.Items {
				if err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					if errors.Is(err, repository.ErrInsufficientStock) {
						return domainerrors.NewStaleCart(item.ProductID, domainerrors.StaleCauseStock)
					}

					return errors.Wrap(err, "failed to decrement stock")
				}
			}

			if err := orderRepo.Create(ctx, p.order); err != nil {
				return errors.Wrap(err, "failed to create order")
			}
		}

		return nil
	})
}

// instructions renders the human-readable payment steps for one partition.
func (srv *checkoutService) instructions(shopName string, order *entity.Order) []string {
	return []string{
		fmt.Sprintf("Pay %s to %s using any UPI app, by scanning the QR code or opening the payment link.", formatRupees(order.Total), shopName),
		fmt.Sprintf("The total includes a %s delivery fee for this order.", formatRupees(order.DeliveryFee)),
		"After paying, upload your payment screenshot so the shop can confirm your order.",
	}
}

// publishCreated emits the order-created event. Publishing is best-effort;
// the order has already committed.
func (srv *checkoutService) publishCreated(ctx context.Context, order *entity.Order) {
	if srv.publisher == nil {
		return
	}

	event := &service.OrderEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      service.EventOrderCreated,
		OrderID:   order.ID,
		ShopID:    order.ShopID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Total:     order.Total,
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order created event",
			slog.String("orderID", order.ID),
			slog.Any("error", err))
	}
}

// formatRupees renders an amount in the smallest currency unit for display.
func formatRupees(amount int64) string {
	if amount < 0 {
		amount = 0
	}

	return fmt.Sprintf("₹%d", amount)
}
