package impl

import (
	"context"
	"testing"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/payment"
	"campusmart/internal/domain/repository"
	mockRepo "campusmart/internal/mocks/repository"
	mockSvc "campusmart/internal/mocks/service"
	"campusmart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// checkoutFixtures holds all test dependencies for checkout tests.
type checkoutFixtures struct {
	service     usecase.CheckoutUsecase
	productRepo *mockRepo.MockProductRepository
	shopRepo    *mockRepo.MockShopRepository
	txManager   *mockRepo.MockTransactionManager
	publisher   *mockSvc.MockEventPublisher
}

func createTestCheckoutService(t *testing.T) checkoutFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	shopRepo := mockRepo.NewMockShopRepository(t)
	txManager := mockRepo.NewMockTransactionManager(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	service := NewCheckoutService(CheckoutServiceParams{
		ProductRepo: productRepo,
		ShopRepo:    shopRepo,
		TxManager:   txManager,
		Builder:     payment.NewBuilder(""),
		Publisher:   publisher,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	return checkoutFixtures{
		service:     service,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

func customerIdentity() *authz.Identity {
	return &authz.Identity{UserID: "cust-1", Role: entity.RoleCustomer, Verified: true}
}

func verifiedShop(id, owner, name, upi string) *entity.Shop {
	return &entity.Shop{ID: id, OwnerID: owner, Name: name, UPIID: upi, Verified: true}
}

// expectCommit lets the transaction body run against the given tx-bound repos.
func expectCommit(t *testing.T, fx checkoutFixtures, productRepo *mockRepo.MockProductRepository, orderRepo *mockRepo.MockOrderRepository) {
	t.Helper()

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewProductRepository().Return(productRepo)
			factory.EXPECT().NewOrderRepository().Return(orderRepo)

			return fn(factory)
		})
}

func TestCheckoutService_Checkout_SplitsByShop(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	bookshop := verifiedShop("shop-books", "owner-1", "Campus Books", "books@upi")
	cafe := verifiedShop("shop-cafe", "owner-2", "Chai Point", "cafe@upi")

	fx.productRepo.EXPECT().FindByID(ctx, "prod-pen").
		Return(&entity.Product{ID: "prod-pen", ShopID: "shop-books", Title: "Pen", Price: 40, Stock: 10}, nil)
	fx.productRepo.EXPECT().FindByID(ctx, "prod-chai").
		Return(&entity.Product{ID: "prod-chai", ShopID: "shop-cafe", Title: "Chai", Price: 20, Stock: 5}, nil)
	fx.productRepo.EXPECT().FindByID(ctx, "prod-notebook").
		Return(&entity.Product{ID: "prod-notebook", ShopID: "shop-books", Title: "Notebook", Price: 60, Stock: 3}, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-books").Return(bookshop, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-cafe").Return(cafe, nil)

	txProductRepo := mockRepo.NewMockProductRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txProductRepo.EXPECT().DecrementStock(ctx, "prod-pen", int64(2)).Return(nil)
	txProductRepo.EXPECT().DecrementStock(ctx, "prod-chai", int64(1)).Return(nil)
	txProductRepo.EXPECT().DecrementStock(ctx, "prod-notebook", int64(1)).Return(nil)
	txOrderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil).Times(2)
	expectCommit(t, fx, txProductRepo, txOrderRepo)

	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil).Times(2)

	output, err := fx.service.Checkout(ctx, customerIdentity(), &usecase.CheckoutInput{
		Lines: []entity.CartLine{
			{ProductID: "prod-pen", Price: 40, Quantity: 2},
			{ProductID: "prod-chai", Price: 20, Quantity: 1},
			{ProductID: "prod-notebook", Price: 60, Quantity: 1},
		},
	})

	require.NoError(t, err)
	require.Len(t, output.Partitions, 2)

	// Partitions preserve the order shops first appear in the cart.
	books := output.Partitions[0]
	assert.Equal(t, "Campus Books", books.ShopName)
	assert.Equal(t, int64(140), books.Order.Subtotal)
	assert.Equal(t, int64(50), books.Order.DeliveryFee)
	assert.Equal(t, int64(190), books.Order.Total)
	assert.Equal(t, entity.StatusProcessing, books.Order.Status)
	assert.Len(t, books.Order.Items, 2)

	chai := output.Partitions[1]
	assert.Equal(t, "Chai Point", chai.ShopName)
	assert.Equal(t, int64(20), chai.Order.Subtotal)
	assert.Equal(t, int64(70), chai.Order.Total)

	// Each partition carries its own instrument referencing its order.
	assert.Equal(t, "books@upi", books.Instrument.PayeeID)
	assert.Equal(t, books.Order.Total, books.Instrument.Amount)
	assert.Contains(t, books.Instrument.UPIURL, "&tn="+books.Order.ID)
	assert.Contains(t, books.Instrument.UPIURL, "&am=190&")
	assert.NotEmpty(t, books.Instructions)

	assert.Equal(t, int64(260), output.GrandTotal)
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestCheckoutService(t)

	_, err := fx.service.Checkout(context.Background(), customerIdentity(), &usecase.CheckoutInput{})

	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestCheckoutService_Checkout_Unauthenticated(t *testing.T) {
	fx := createTestCheckoutService(t)

	_, err := fx.service.Checkout(context.Background(), nil, &usecase.CheckoutInput{
		Lines: []entity.CartLine{{ProductID: "p", Price: 1, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestCheckoutService_Checkout_ZeroQuantityLineIsEmptyCart(t *testing.T) {
	fx := createTestCheckoutService(t)

	_, err := fx.service.Checkout(context.Background(), customerIdentity(), &usecase.CheckoutInput{
		Lines: []entity.CartLine{{ProductID: "p", Price: 1, Quantity: 0}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestCheckoutService_Checkout_NegativeQuantity(t *testing.T) {
	fx := createTestCheckoutService(t)

	_, err := fx.service.Checkout(context.Background(), customerIdentity(), &usecase.CheckoutInput{
		Lines: []entity.CartLine{{ProductID: "p", Price: 1, Quantity: -1}},
	})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidation.ErrorCode(), appErr.ErrorCode())
}

func TestCheckoutService_Checkout_StalePrice(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, "prod-pen").
		Return(&entity.Product{ID: "prod-pen", ShopID: "shop-1", Title: "Pen", Price: 45, Stock: 10}, nil)

	_, err := fx.service.Checkout(ctx, customerIdentity(), &usecase.CheckoutInput{
		Lines: []entity.CartLine{{ProductID: "prod-pen", Price: 40, Quantity: 1}},
	})

	var stale *domainerrors.StaleCartError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, "prod-pen", stale.ProductID)
	assert.Equal(t, domainerrors.StaleCausePrice, stale.Cause)
}

func TestCheckoutService_Checkout_StaleStock(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, "prod-pen").
		Return(&entity.Product{ID: "prod-pen", ShopID: "shop-1", Title: "Pen", Price: 40, Stock: 1}, nil)

	_, err := fx.service.Checkout(ctx, customerIdentity(), &usecase.CheckoutInput{
		Lines: []entity.CartLine{{ProductID: "prod-pen", Price: 40, Quantity: 3}},
	})

	var stale *domainerrors.StaleCartError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, domainerrors.StaleCauseStock, stale.Cause)
}

func TestCheckoutService_Checkout_UnknownProduct(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, "ghost").
		Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.Checkout(ctx, customerIdentity(), &usecase.CheckoutInput{
		Lines: []entity.CartLine{{ProductID: "ghost", Price: 40, Quantity: 1}},
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestCheckoutService_Checkout_UnverifiedShop(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, "prod-pen").
		Return(&entity.Product{ID: "prod-pen", ShopID: "shop-1", Title: "Pen", Price: 40, Stock: 10}, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(&entity.Shop{ID: "shop-1", Name: "Unvetted", Verified: false}, nil)

	_, err := fx.service.Checkout(ctx, customerIdentity(), &usecase.CheckoutInput{
		Lines: []entity.CartLine{{ProductID: "prod-pen", Price: 40, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrShopUnavailable)
}

func TestCheckoutService_Checkout_ReplansAfterLostStockRace(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	shop := verifiedShop("shop-1", "owner-1", "Campus Books", "books@upi")
	fx.productRepo.EXPECT().FindByID(ctx, "prod-pen").
		Return(&entity.Product{ID: "prod-pen", ShopID: "shop-1", Title: "Pen", Price: 40, Stock: 10}, nil).Times(2)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").Return(shop, nil).Times(2)

	// First commit loses the guard, second succeeds.
	calls := 0
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			calls++
			txProductRepo := mockRepo.NewMockProductRepository(t)
			txOrderRepo := mockRepo.NewMockOrderRepository(t)
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewProductRepository().Return(txProductRepo)
			factory.EXPECT().NewOrderRepository().Return(txOrderRepo)

			if calls == 1 {
				txProductRepo.EXPECT().DecrementStock(ctx, "prod-pen", int64(1)).
					Return(repository.ErrInsufficientStock)
			} else {
				txProductRepo.EXPECT().DecrementStock(ctx, "prod-pen", int64(1)).Return(nil)
				txOrderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
			}

			return fn(factory)
		}).Times(2)

	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	output, err := fx.service.Checkout(ctx, customerIdentity(), &usecase.CheckoutInput{
		Lines: []entity.CartLine{{ProductID: "prod-pen", Price: 40, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, output.Partitions, 1)
}

func TestCheckoutService_Checkout_RetryExhaustionIsConflict(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	shop := verifiedShop("shop-1", "owner-1", "Campus Books", "books@upi")
	fx.productRepo.EXPECT().FindByID(ctx, "prod-pen").
		Return(&entity.Product{ID: "prod-pen", ShopID: "shop-1", Title: "Pen", Price: 40, Stock: 10}, nil).Times(3)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").Return(shop, nil).Times(3)

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			txProductRepo := mockRepo.NewMockProductRepository(t)
			txOrderRepo := mockRepo.NewMockOrderRepository(t)
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewProductRepository().Return(txProductRepo)
			factory.EXPECT().NewOrderRepository().Return(txOrderRepo)
			txProductRepo.EXPECT().DecrementStock(ctx, "prod-pen", int64(1)).
				Return(repository.ErrInsufficientStock)

			return fn(factory)
		}).Times(3)

	_, err := fx.service.Checkout(ctx, customerIdentity(), &usecase.CheckoutInput{
		Lines: []entity.CartLine{{ProductID: "prod-pen", Price: 40, Quantity: 1}},
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrConflict.ErrorCode(), appErr.ErrorCode())
}
