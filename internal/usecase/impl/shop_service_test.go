package impl

import (
	"context"
	"testing"

	"campusmart/internal/domain/authz"
	"campusmart/internal/domain/entity"
	domainerrors "campusmart/internal/domain/errors"
	"campusmart/internal/domain/repository"
	mockRepo "campusmart/internal/mocks/repository"
	mockService "campusmart/internal/mocks/service"
	"campusmart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type shopFixtures struct {
	service   usecase.ShopUsecase
	shopRepo  *mockRepo.MockShopRepository
	userRepo  *mockRepo.MockUserRepository
	txManager *mockRepo.MockTransactionManager
	publisher *mockService.MockEventPublisher
}

func createTestShopService(t *testing.T) shopFixtures {
	shopRepo := mockRepo.NewMockShopRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	txManager := mockRepo.NewMockTransactionManager(t)
	publisher := mockService.NewMockEventPublisher(t)

	service := NewShopService(ShopServiceParams{
		ShopRepo:  shopRepo,
		UserRepo:  userRepo,
		TxManager: txManager,
		Publisher: publisher,
		Logger:    newDiscardLogger(),
	})

	return shopFixtures{
		service:   service,
		shopRepo:  shopRepo,
		userRepo:  userRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

func TestCreateShop_PromotesCustomerToShopOwner(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	fx.shopRepo.EXPECT().FindByOwner(ctx, "cust-1").Return(nil, repository.ErrShopNotFound)

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			txShopRepo := mockRepo.NewMockShopRepository(t)
			txShopRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Shop")).Return(nil)

			txUserRepo := mockRepo.NewMockUserRepository(t)
			txUserRepo.EXPECT().FindByID(ctx, "cust-1").
				Return(&entity.User{ID: "cust-1", Role: entity.RoleCustomer, Verified: true}, nil)
			txUserRepo.EXPECT().
				Update(ctx, mock.MatchedBy(func(user *entity.User) bool {
					return user.Role == entity.RoleShopOwner
				})).
				Return(nil)

			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewShopRepository().Return(txShopRepo)
			factory.EXPECT().NewUserRepository().Return(txUserRepo)

			return fn(factory)
		})

	shop, err := fx.service.CreateShop(ctx, customerIdentity(), &usecase.CreateShopInput{
		Name:    "Campus Books",
		Address: "Block C",
		UPIID:   "books@bank",
	})

	assert.NoError(t, err)
	assert.Equal(t, "cust-1", shop.OwnerID)
	assert.False(t, shop.Verified, "new shops start unverified")
	assert.NotEmpty(t, shop.ID)
}

func TestCreateShop_DoesNotDemoteExistingRole(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	fx.shopRepo.EXPECT().FindByOwner(ctx, "owner-1").Return(nil, repository.ErrShopNotFound)

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			txShopRepo := mockRepo.NewMockShopRepository(t)
			txShopRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Shop")).Return(nil)

			// Already a shop owner by role but lost their shop record; no
			// Update call expected.
			txUserRepo := mockRepo.NewMockUserRepository(t)
			txUserRepo.EXPECT().FindByID(ctx, "owner-1").
				Return(&entity.User{ID: "owner-1", Role: entity.RoleShopOwner, Verified: true}, nil)

			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewShopRepository().Return(txShopRepo)
			factory.EXPECT().NewUserRepository().Return(txUserRepo)

			return fn(factory)
		})

	_, err := fx.service.CreateShop(ctx,
		&authz.Identity{UserID: "owner-1", Role: entity.RoleShopOwner, Verified: true},
		&usecase.CreateShopInput{Name: "Chai Point", Address: "Gate 2", UPIID: "chai@bank"})

	assert.NoError(t, err)
}

func TestCreateShop_RejectsSecondShop(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	fx.shopRepo.EXPECT().FindByOwner(ctx, "cust-1").
		Return(verifiedShop("shop-1", "cust-1", "Campus Books", "books@bank"), nil)

	_, err := fx.service.CreateShop(ctx, customerIdentity(), &usecase.CreateShopInput{
		Name:    "Second Shop",
		Address: "Block D",
		UPIID:   "second@bank",
	})

	var appErr domainerrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrConflict.ErrorCode(), appErr.ErrorCode())
}

func TestCreateShop_RequiresVerifiedCaller(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	_, err := fx.service.CreateShop(ctx,
		&authz.Identity{UserID: "cust-2", Role: entity.RoleCustomer, Verified: false},
		&usecase.CreateShopInput{Name: "Shadow Shop", Address: "Nowhere", UPIID: "x@bank"})

	assert.ErrorIs(t, err, domainerrors.ErrUnverified)
}

func TestUpdateShop_AdminEditsMetadata(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(verifiedShop("shop-1", "owner-1", "Campus Books", "books@bank"), nil)
	fx.shopRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(shop *entity.Shop) bool {
			return shop.Name == "Campus Books & More" && shop.UPIID == "books@bank"
		})).
		Return(nil)

	name := "Campus Books & More"
	admin := &authz.Identity{UserID: "admin-1", Role: entity.RoleAdmin, Verified: true}
	shop, err := fx.service.UpdateShop(ctx, admin, "shop-1",
		&usecase.UpdateShopInput{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "Campus Books & More", shop.Name)
}

func TestUpdateShop_OwnerCannotPatchOwnShop(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	name := "Renamed"
	_, err := fx.service.UpdateShop(ctx, shopOwnerIdentity(), "shop-1",
		&usecase.UpdateShopInput{Name: &name})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestUpdateShop_AdminVerificationPublishesEvent(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	pending := &entity.Shop{ID: "shop-1", OwnerID: "owner-1", Name: "Campus Books", UPIID: "books@bank", Verified: false}
	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").Return(pending, nil)
	fx.shopRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(shop *entity.Shop) bool { return shop.Verified })).
		Return(nil)
	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	verified := true
	admin := &authz.Identity{UserID: "admin-1", Role: entity.RoleAdmin, Verified: true}
	shop, err := fx.service.UpdateShop(ctx, admin, "shop-1",
		&usecase.UpdateShopInput{Verified: &verified})

	assert.NoError(t, err)
	assert.True(t, shop.Verified)
}

func TestUpdateShop_NoEventWhenVerifiedUnchanged(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	fx.shopRepo.EXPECT().FindByID(ctx, "shop-1").
		Return(verifiedShop("shop-1", "owner-1", "Campus Books", "books@bank"), nil)
	fx.shopRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Shop")).Return(nil)

	verified := true
	admin := &authz.Identity{UserID: "admin-1", Role: entity.RoleAdmin, Verified: true}
	_, err := fx.service.UpdateShop(ctx, admin, "shop-1",
		&usecase.UpdateShopInput{Verified: &verified})

	assert.NoError(t, err)
}

func TestUpdateShop_CustomerForbidden(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	name := "Hijacked"
	_, err := fx.service.UpdateShop(ctx, customerIdentity(), "shop-1",
		&usecase.UpdateShopInput{Name: &name})

	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)
}

func TestListPendingShops_AdminOnly(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	_, err := fx.service.ListPendingShops(ctx, customerIdentity())
	assert.ErrorIs(t, err, domainerrors.ErrForbiddenRole)

	fx.shopRepo.EXPECT().
		List(ctx, mock.MatchedBy(func(filter repository.ShopFilter) bool {
			return filter.Verified != nil && !*filter.Verified
		})).
		Return([]*entity.Shop{{ID: "shop-9", Verified: false}}, nil)

	admin := &authz.Identity{UserID: "admin-1", Role: entity.RoleAdmin, Verified: true}
	shops, err := fx.service.ListPendingShops(ctx, admin)

	assert.NoError(t, err)
	assert.Len(t, shops, 1)
}

func TestGetOwnShop_NotFound(t *testing.T) {
	ctx := context.Background()
	fx := createTestShopService(t)

	fx.shopRepo.EXPECT().FindByOwner(ctx, "owner-1").Return(nil, repository.ErrShopNotFound)

	_, err := fx.service.GetOwnShop(ctx, shopOwnerIdentity())

	var appErr domainerrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrNotFound.ErrorCode(), appErr.ErrorCode())
}
