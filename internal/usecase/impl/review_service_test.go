package impl

import (
	"context"
	"testing"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/repository"
	mockRepo "campusmart/internal/mocks/repository"
	"campusmart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reviewFixtures holds all test dependencies for review service tests.
type reviewFixtures struct {
	service     usecase.ReviewUsecase
	reviewRepo  *mockRepo.MockReviewRepository
	orderRepo   *mockRepo.MockOrderRepository
	productRepo *mockRepo.MockProductRepository
	txManager   *mockRepo.MockTransactionManager
}

func createTestReviewService(t *testing.T) reviewFixtures {
	reviewRepo := mockRepo.NewMockReviewRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	txManager := mockRepo.NewMockTransactionManager(t)

	service := NewReviewService(ReviewServiceParams{
		ReviewRepo:  reviewRepo,
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		TxManager:   txManager,
		Logger:      newDiscardLogger(),
	})

	return reviewFixtures{
		service:     service,
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		txManager:   txManager,
	}
}

func deliveredOrder() *entity.Order {
	return &entity.Order{
		ID:     "order-1",
		UserID: "cust-1",
		ShopID: "shop-1",
		Items: []entity.OrderItem{
			{ProductID: "prod-1", Name: "Pen", Price: 40, Quantity: 1},
		},
		Status: entity.StatusDelivered,
	}
}

func TestReviewService_Create_RecomputesRatingInTx(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(deliveredOrder(), nil)

	txReviewRepo := mockRepo.NewMockReviewRepository(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	txReviewRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Review")).Return(nil)
	txReviewRepo.EXPECT().ListByProduct(ctx, "prod-1").Return([]*entity.Review{
		{ProductID: "prod-1", Rating: 5},
		{ProductID: "prod-1", Rating: 4},
	}, nil)
	txProductRepo.EXPECT().UpdateRating(ctx, "prod-1", 4.5, int64(2)).Return(nil)

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewReviewRepository().Return(txReviewRepo)
			factory.EXPECT().NewProductRepository().Return(txProductRepo)

			return fn(factory)
		})

	review, err := fx.service.Create(ctx, customerIdentity(), &usecase.CreateReviewInput{
		ProductID: "prod-1",
		OrderID:   "order-1",
		Rating:    5,
		Comment:   "writes well",
	})

	require.NoError(t, err)
	assert.Equal(t, "cust-1", review.UserID)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_Create_RatingOutOfRange(t *testing.T) {
	fx := createTestReviewService(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := fx.service.Create(context.Background(), customerIdentity(), &usecase.CreateReviewInput{
			ProductID: "prod-1",
			OrderID:   "order-1",
			Rating:    rating,
		})

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrValidation.ErrorCode(), appErr.ErrorCode())
	}
}

func TestReviewService_Create_OrderNotDelivered(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	order := deliveredOrder()
	order.Status = entity.StatusInTransit
	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(order, nil)

	_, err := fx.service.Create(ctx, customerIdentity(), &usecase.CreateReviewInput{
		ProductID: "prod-1",
		OrderID:   "order-1",
		Rating:    4,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenScope)
}

func TestReviewService_Create_ProductNotInOrder(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(deliveredOrder(), nil)

	_, err := fx.service.Create(ctx, customerIdentity(), &usecase.CreateReviewInput{
		ProductID: "prod-other",
		OrderID:   "order-1",
		Rating:    4,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenScope)
}

func TestReviewService_Create_NotOrderOwner(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(deliveredOrder(), nil)

	stranger := &authz.Identity{UserID: "someone-else", Role: entity.RoleCustomer, Verified: true}
	_, err := fx.service.Create(ctx, stranger, &usecase.CreateReviewInput{
		ProductID: "prod-1",
		OrderID:   "order-1",
		Rating:    4,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenScope)
}

func TestReviewService_Create_DuplicateIsConflict(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	fx.orderRepo.EXPECT().FindByID(ctx, "order-1").Return(deliveredOrder(), nil)

	txReviewRepo := mockRepo.NewMockReviewRepository(t)
	txReviewRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Review")).
		Return(repository.ErrDuplicateReview)

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewReviewRepository().Return(txReviewRepo)

			return fn(factory)
		})

	_, err := fx.service.Create(ctx, customerIdentity(), &usecase.CreateReviewInput{
		ProductID: "prod-1",
		OrderID:   "order-1",
		Rating:    4,
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrConflict.ErrorCode(), appErr.ErrorCode())
}

func TestReviewService_Delete_AdminOnly(t *testing.T) {
	fx := createTestReviewService(t)

	err := fx.service.Delete(context.Background(), customerIdentity(), "rev-1")

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestReviewService_Delete_RecomputesRating(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()

	fx.reviewRepo.EXPECT().FindByID(ctx, "rev-1").
		Return(&entity.Review{ID: "rev-1", ProductID: "prod-1", Rating: 1}, nil)

	txReviewRepo := mockRepo.NewMockReviewRepository(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	txReviewRepo.EXPECT().Delete(ctx, "rev-1").Return(nil)
	txReviewRepo.EXPECT().ListByProduct(ctx, "prod-1").Return([]*entity.Review{}, nil)
	txProductRepo.EXPECT().UpdateRating(ctx, "prod-1", 0.0, int64(0)).Return(nil)

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewReviewRepository().Return(txReviewRepo)
			factory.EXPECT().NewProductRepository().Return(txProductRepo)

			return fn(factory)
		})

	admin := &authz.Identity{UserID: "admin-1", Role: entity.RoleAdmin, Verified: true}
	err := fx.service.Delete(ctx, admin, "rev-1")

	require.NoError(t, err)
}
