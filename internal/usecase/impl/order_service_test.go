package impl

import (
	"context"
	"testing"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/repository"
	mockRepo "campusmart/internal/mocks/repository"
	mockSvc "campusmart/internal/mocks/service"
	"campusmart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderFixtures holds all test dependencies for order service tests.
type orderFixtures struct {
	service   usecase.OrderUsecase
	orderRepo *mockRepo.MockOrderRepository
	shopRepo  *mockRepo.MockShopRepository
	txManager *mockRepo.MockTransactionManager
	publisher *mockSvc.MockEventPublisher
}

func createTestOrderService(t *testing.T) orderFixtures {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	shopRepo := mockRepo.NewMockShopRepository(t)
	txManager := mockRepo.NewMockTransactionManager(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	service := NewOrderService(OrderServiceParams{
		OrderRepo: orderRepo,
		ShopRepo:  shopRepo,
		TxManager: txManager,
		Publisher: publisher,
		Logger:    newDiscardLogger(),
	})

	return orderFixtures{
		service:   service,
		orderRepo: orderRepo,
		shopRepo:  shopRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

func testOrder(status entity.OrderStatus) *entity.Order {
	return &entity.Order{
		ID:     "order-1",
		UserID: "cust-1",
		ShopID: "shop-1",
		Items: []entity.OrderItem{
			{ProductID: "prod-1", Name: "Pen", Price: 40, Quantity: 2},
		},
		Subtotal:    80,
		DeliveryFee: 50,
		Total:       130,
		Status:      status,
	}
}

func shopOwnerIdentity() *authz.Identity {
	return &authz.Identity{UserID: "owner-1", Role: entity.RoleShopOwner, Verified: true}
}

func TestOrderService_GetOrder_CustomerSeesOwn(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	order := testOrder(entity.StatusProcessing)

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(order, nil)

	got, err := fx.service.GetOrder(ctx, customerIdentity(), "order-1")

	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestOrderService_GetOrder_StrangerIsOutOfScope(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	order := testOrder(entity.StatusProcessing)

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(order, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "owner-1"}, nil)

	stranger := &authz.Identity{UserID: "someone-else", Role: entity.RoleCustomer, Verified: true}
	_, err := fx.service.GetOrder(ctx, stranger, "order-1")

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenScope)
}

func TestOrderService_ListOrders_ScopesByRole(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	fx.orderRepo.EXPECT().
		List(ctx, repository.OrderFilter{UserID: "cust-1"}).
		Return([]*entity.Order{testOrder(entity.StatusProcessing)}, nil)

	orders, err := fx.service.ListOrders(ctx, customerIdentity(), "")

	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_ListOrders_ShopOwnerScopedToShop(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	fx.shopRepo.EXPECT().FindByOwner(ctx, "owner-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "owner-1"}, nil)
	fx.orderRepo.EXPECT().
		List(ctx, repository.OrderFilter{ShopID: "shop-1", Status: entity.StatusProcessing}).
		Return([]*entity.Order{}, nil)

	orders, err := fx.service.ListOrders(ctx, shopOwnerIdentity(), entity.StatusProcessing)

	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_ListOrders_OwnerWithoutShopSeesNothing(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	fx.shopRepo.EXPECT().FindByOwner(ctx, "owner-1").
		Return(nil, repository.ErrShopNotFound)

	orders, err := fx.service.ListOrders(ctx, shopOwnerIdentity(), "")

	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_ListOrders_UnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.ListOrders(context.Background(), customerIdentity(), entity.OrderStatus("shipped"))

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidation.ErrorCode(), appErr.ErrorCode())
}

func TestOrderService_UpdateStatus_ShopAccepts(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	order := testOrder(entity.StatusProcessing)

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(order, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "owner-1"}, nil)

	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txOrderRepo.EXPECT().UpdateStatus(ctx, "order-1", entity.StatusProcessing, entity.StatusAccepted).Return(nil)
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewOrderRepository().Return(txOrderRepo)

			return fn(factory)
		})
	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	got, err := fx.service.UpdateStatus(ctx, shopOwnerIdentity(), "order-1",
		&usecase.UpdateOrderStatusInput{Status: string(entity.StatusAccepted)})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, got.Status)
}

func TestOrderService_UpdateStatus_CustomerCannotAccept(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(testOrder(entity.StatusProcessing), nil)

	_, err := fx.service.UpdateStatus(ctx, customerIdentity(), "order-1",
		&usecase.UpdateOrderStatusInput{Status: string(entity.StatusAccepted)})

	var invalid *domainerrors.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, string(entity.StatusProcessing), invalid.From)
	assert.Equal(t, string(entity.StatusAccepted), invalid.To)
}

func TestOrderService_UpdateStatus_ScopeCheckedBeforeTransition(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	order := testOrder(entity.StatusDelivered)

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(order, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "owner-1"}, nil)

	// An out-of-scope caller gets a scope error even for an edge that does
	// not exist, so they learn nothing about the order's state.
	stranger := &authz.Identity{UserID: "someone-else", Role: entity.RoleCustomer, Verified: true}
	_, err := fx.service.UpdateStatus(ctx, stranger, "order-1",
		&usecase.UpdateOrderStatusInput{Status: string(entity.StatusCancelled)})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenScope)
}

func TestOrderService_UpdateStatus_CancelRestoresStock(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	order := testOrder(entity.StatusAccepted)

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(order, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "owner-1"}, nil)

	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	txOrderRepo.EXPECT().UpdateStatus(ctx, "order-1", entity.StatusAccepted, entity.StatusCancelled).Return(nil)
	txProductRepo.EXPECT().RestoreStock(ctx, "prod-1", int64(2)).Return(nil)
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewOrderRepository().Return(txOrderRepo)
			factory.EXPECT().NewProductRepository().Return(txProductRepo)

			return fn(factory)
		})
	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	got, err := fx.service.UpdateStatus(ctx, shopOwnerIdentity(), "order-1",
		&usecase.UpdateOrderStatusInput{Status: string(entity.StatusCancelled)})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, got.Status)
}

func TestOrderService_UpdateStatus_DeliverDoesNotTouchStock(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	order := testOrder(entity.StatusInTransit)

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(order, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "owner-1"}, nil)

	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txOrderRepo.EXPECT().UpdateStatus(ctx, "order-1", entity.StatusInTransit, entity.StatusDelivered).Return(nil)
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewOrderRepository().Return(txOrderRepo)

			return fn(factory)
		})
	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	_, err := fx.service.UpdateStatus(ctx, shopOwnerIdentity(), "order-1",
		&usecase.UpdateOrderStatusInput{Status: string(entity.StatusDelivered)})

	require.NoError(t, err)
}

func TestOrderService_UpdateStatus_LostRaceIsConflict(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	order := testOrder(entity.StatusAccepted)

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(order, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "owner-1"}, nil)

	// Another transition committed between the read and the guarded write;
	// the stock restore must not run and the caller sees a conflict.
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txOrderRepo.EXPECT().UpdateStatus(ctx, "order-1", entity.StatusAccepted, entity.StatusCancelled).
		Return(repository.ErrOrderStateChanged)
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewOrderRepository().Return(txOrderRepo)

			return fn(factory)
		})

	_, err := fx.service.UpdateStatus(ctx, shopOwnerIdentity(), "order-1",
		&usecase.UpdateOrderStatusInput{Status: string(entity.StatusCancelled)})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrConflict.ErrorCode(), appErr.ErrorCode())
}

func TestOrderService_AttachPayment_OwnerOnly(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	order := testOrder(entity.StatusProcessing)

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(order, nil)
	fx.orderRepo.EXPECT().
		AttachPaymentScreenshot(ctx, "order-1", "https://cdn.example.edu/shots/order-1.png").
		Return(nil)

	got, err := fx.service.AttachPayment(ctx, customerIdentity(), "order-1",
		&usecase.AttachPaymentInput{ScreenshotURL: "https://cdn.example.edu/shots/order-1.png"})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.edu/shots/order-1.png", got.PaymentScreenshot)
	// Payment evidence never advances the lifecycle.
	assert.Equal(t, entity.StatusProcessing, got.Status)
}

func TestOrderService_AttachPayment_StrangerForbidden(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(testOrder(entity.StatusProcessing), nil)

	stranger := &authz.Identity{UserID: "someone-else", Role: entity.RoleCustomer, Verified: true}
	_, err := fx.service.AttachPayment(ctx, stranger, "order-1",
		&usecase.AttachPaymentInput{ScreenshotURL: "https://cdn.example.edu/x.png"})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenScope)
}
