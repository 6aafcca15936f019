package impl

import (
	"context"
	"testing"
	"time"

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

// catalogFixtures holds all test dependencies for catalog service tests.
type catalogFixtures struct {
	service       usecase.CatalogUsecase
	productRepo   *mockRepo.MockProductRepository
	shopRepo      *mockRepo.MockShopRepository
	orderRepo     *mockRepo.MockOrderRepository
	featuredCache *mockSvc.MockFeaturedCache
}

func createTestCatalogService(t *testing.T) catalogFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	shopRepo := mockRepo.NewMockShopRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	featuredCache := mockSvc.NewMockFeaturedCache(t)

	service := NewCatalogService(CatalogServiceParams{
		ProductRepo:   productRepo,
		ShopRepo:      shopRepo,
		OrderRepo:     orderRepo,
		FeaturedCache: featuredCache,
		Config:        newTestConfig(),
		Logger:        newDiscardLogger(),
	})

	return catalogFixtures{
		service:       service,
		productRepo:   productRepo,
		shopRepo:      shopRepo,
		orderRepo:     orderRepo,
		featuredCache: featuredCache,
	}
}

func TestCatalogService_ListProducts_SearchMatchesTitleAndTags(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().List(ctx, repository.ProductFilter{}).Return([]*entity.Product{
		{ID: "p1", Title: "Blue Gel Pen"},
		{ID: "p2", Title: "Notebook", Tags: []string{"pen-friendly", "ruled"}},
		{ID: "p3", Title: "Charger", Description: "USB-C"},
	}, nil)

	products, err := fx.service.ListProducts(ctx, &usecase.ProductQuery{Search: "PEN"})

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
}

func TestCatalogService_ListProducts_UnknownCategory(t *testing.T) {
	fx := createTestCatalogService(t)

	_, err := fx.service.ListProducts(context.Background(), &usecase.ProductQuery{Category: "vehicles"})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidation.ErrorCode(), appErr.ErrorCode())
}

func TestCatalogService_ListProducts_FeaturedProjection(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	catalog := []*entity.Product{
		{ID: "unreviewed", RatingAvg: 0, ReviewCount: 0},
		{ID: "good-few", RatingAvg: 4.5, ReviewCount: 2},
		{ID: "good-many", RatingAvg: 4.5, ReviewCount: 9},
		{ID: "best", RatingAvg: 5, ReviewCount: 1},
		{ID: "tied-old", RatingAvg: 4.0, ReviewCount: 3, CreatedAt: older},
		{ID: "tied-new", RatingAvg: 4.0, ReviewCount: 3, CreatedAt: newer},
	}

	fx.featuredCache.EXPECT().Get(ctx).Return(nil, false)
	fx.productRepo.EXPECT().List(ctx, repository.ProductFilter{}).Return(catalog, nil)
	fx.featuredCache.EXPECT().Set(ctx, mock.AnythingOfType("[]*entity.Product"), mock.AnythingOfType("time.Duration")).Return()

	products, err := fx.service.ListProducts(ctx, &usecase.ProductQuery{Featured: true})

	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "best", products[0].ID)
	assert.Equal(t, "good-many", products[1].ID)
	assert.Equal(t, "good-few", products[2].ID)
	assert.Equal(t, "tied-new", products[3].ID)
	assert.Equal(t, "tied-old", products[4].ID)
}

func TestCatalogService_ListProducts_FeaturedCacheHitSkipsRepo(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	cached := []*entity.Product{{ID: "cached", RatingAvg: 5, ReviewCount: 3}}
	fx.featuredCache.EXPECT().Get(ctx).Return(cached, true)

	products, err := fx.service.ListProducts(ctx, &usecase.ProductQuery{Featured: true})

	require.NoError(t, err)
	assert.Equal(t, cached, products)
}

func TestCatalogService_CreateProduct_NeedsAShop(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.shopRepo.EXPECT().FindByOwner(ctx, "owner-1").Return(nil, repository.ErrShopNotFound)

	_, err := fx.service.CreateProduct(ctx, shopOwnerIdentity(), &usecase.CreateProductInput{
		Title:    "Pen",
		Price:    40,
		Stock:    10,
		Category: string(entity.CategoryStationery),
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestCatalogService_CreateProduct_CustomerForbidden(t *testing.T) {
	fx := createTestCatalogService(t)

	_, err := fx.service.CreateProduct(context.Background(), customerIdentity(), &usecase.CreateProductInput{
		Title:    "Pen",
		Category: string(entity.CategoryStationery),
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestCatalogService_CreateProduct_ListsUnderOwnShop(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.shopRepo.EXPECT().FindByOwner(ctx, "owner-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "owner-1", Verified: true}, nil)
	fx.productRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	product, err := fx.service.CreateProduct(ctx, shopOwnerIdentity(), &usecase.CreateProductInput{
		Title:    "Pen",
		Price:    40,
		Stock:    10,
		Category: string(entity.CategoryStationery),
	})

	require.NoError(t, err)
	assert.Equal(t, "shop-1", product.ShopID)
	assert.NotEmpty(t, product.ID)
	assert.Zero(t, product.ReviewCount)
}

func TestCatalogService_UpdateProduct_StrangerOutOfScope(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, "prod-1").
		Return(&entity.Product{ID: "prod-1", ShopID: "shop-1"}, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "someone-else"}, nil)

	title := "New Title"
	_, err := fx.service.UpdateProduct(ctx, shopOwnerIdentity(), "prod-1",
		&usecase.UpdateProductInput{Title: &title})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenScope)
}

func TestCatalogService_DeleteProduct_RefusedWhileOrderOpen(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, "prod-1").
		Return(&entity.Product{ID: "prod-1", ShopID: "shop-1"}, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "owner-1"}, nil)
	fx.orderRepo.EXPECT().List(ctx, repository.OrderFilter{ShopID: "shop-1"}).
		Return([]*entity.Order{
			{ID: "done", Status: entity.StatusDelivered, Items: []entity.OrderItem{{ProductID: "prod-1"}}},
			{ID: "open", Status: entity.StatusAccepted, Items: []entity.OrderItem{{ProductID: "prod-1"}}},
		}, nil)

	err := fx.service.DeleteProduct(ctx, shopOwnerIdentity(), "prod-1")

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrConflict.ErrorCode(), appErr.ErrorCode())
}

func TestCatalogService_DeleteProduct_TerminalOrdersDoNotBlock(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, "prod-1").
		Return(&entity.Product{ID: "prod-1", ShopID: "shop-1"}, nil)
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(&entity.Shop{ID: "shop-1", OwnerID: "owner-1"}, nil)
	fx.orderRepo.EXPECT().List(ctx, repository.OrderFilter{ShopID: "shop-1"}).
		Return([]*entity.Order{
			{ID: "done", Status: entity.StatusDelivered, Items: []entity.OrderItem{{ProductID: "prod-1"}}},
			{ID: "gone", Status: entity.StatusCancelled, Items: []entity.OrderItem{{ProductID: "prod-1"}}},
		}, nil)
	fx.productRepo.EXPECT().Delete(ctx, "prod-1").Return(nil)

	err := fx.service.DeleteProduct(ctx, shopOwnerIdentity(), "prod-1")

	require.NoError(t, err)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, "ghost").Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.GetProduct(ctx, "ghost")

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrNotFound.ErrorCode(), appErr.ErrorCode())
}
