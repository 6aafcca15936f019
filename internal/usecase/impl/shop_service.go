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
	"campusmart/internal/domain/service"
	"campusmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// shopService implements the ShopUsecase interface.
type shopService struct {
	shopRepo  repository.ShopRepository
	userRepo  repository.UserRepository
	txManager repository.TransactionManager
	publisher service.EventPublisher
	logger    *slog.Logger
}

// ShopServiceParams holds dependencies for ShopService, injected by Fx.
type ShopServiceParams struct {
	fx.In

	ShopRepo  repository.ShopRepository
	UserRepo  repository.UserRepository
	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewShopService is the constructor for shopService.
func NewShopService(params ShopServiceParams) usecase.ShopUsecase {
	return &shopService{
		shopRepo:  params.ShopRepo,
		userRepo:  params.UserRepo,
		txManager: params.TxManager,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *shopService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateShop opens a shop for the caller and promotes them to shop-owner.
// The shop starts unverified and stays off the storefront until an admin
// flips the flag. The shop insert and the role promotion commit together.
func (srv *shopService) CreateShop(ctx context.Context, id *authz.Identity, input *usecase.CreateShopInput) (*entity.Shop, error) {
	if err := authz.RequireRole(id, entity.RoleCustomer, entity.RoleShopOwner, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := authz.RequireVerified(id); err != nil {
		return nil, err
	}

	existing, err := srv.shopRepo.FindByOwner(ctx, id.UserID)
	if err != nil && !errors.Is(err, repository.ErrShopNotFound) {
		return nil, errors.Wrap(err, "failed to check for existing shop")
	}
	if existing != nil {
		return nil, domainerrors.ErrConflict.WrapMessage("caller already owns a shop")
	}

	now := time.Now()
	shop := &entity.Shop{
		ID:          uuid.NewString(),
		OwnerID:     id.UserID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		UPIID:       input.UPIID,
		Verified:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = srv.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		if err := txRepoFactory.NewShopRepository().Create(ctx, shop); err != nil {
			return errors.Wrap(err, "failed to create shop")
		}

		userRepo := txRepoFactory.NewUserRepository()
		user, err := userRepo.FindByID(ctx, id.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load owner for promotion")
		}
		if user.Role == entity.RoleCustomer {
			user.Role = entity.RoleShopOwner
			if err := userRepo.Update(ctx, user); err != nil {
				return errors.Wrap(err, "failed to promote owner role")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Shop created, pending verification",
		slog.String("shopID", shop.ID),
		slog.String("ownerID", shop.OwnerID))

	return shop, nil
}

// GetShop returns a shop by ID.
func (srv *shopService) GetShop(ctx context.Context, shopID string) (*entity.Shop, error) {
	shop, err := srv.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("shop not found")
		}

		return nil, errors.Wrap(err, "failed to find shop")
	}

	return shop, nil
}

// GetOwnShop returns the caller's shop.
func (srv *shopService) GetOwnShop(ctx context.Context, id *authz.Identity) (*entity.Shop, error) {
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

	return shop, nil
}

// ListShops returns shops, optionally filtered by verified flag.
func (srv *shopService) ListShops(ctx context.Context, verified *bool) ([]*entity.Shop, error) {
	shops, err := srv.shopRepo.List(ctx, repository.ShopFilter{Verified: verified})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shops")
	}

	return shops, nil
}

// UpdateShop applies an admin patch to a shop: metadata edits and the
// verified flag. Owners go through shop creation for their details and
// wait on an admin for everything after.
func (srv *shopService) UpdateShop(ctx context.Context, id *authz.Identity, shopID string, input *usecase.UpdateShopInput) (*entity.Shop, error) {
	if err := authz.RequireRole(id, entity.RoleAdmin); err != nil {
		return nil, err
	}

	shop, err := srv.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("shop not found")
		}

		return nil, errors.Wrap(err, "failed to find shop")
	}

	if input.Name != nil {
		shop.Name = *input.Name
	}
	if input.Description != nil {
		shop.Description = *input.Description
	}
	if input.Address != nil {
		shop.Address = *input.Address
	}
	if input.UPIID != nil {
		shop.UPIID = *input.UPIID
	}

	verificationChanged := input.Verified != nil && shop.Verified != *input.Verified
	if input.Verified != nil {
		shop.Verified = *input.Verified
	}
	shop.UpdatedAt = time.Now()

	if err := srv.shopRepo.Update(ctx, shop); err != nil {
		return nil, errors.Wrap(err, "failed to update shop")
	}

	if verificationChanged {
		srv.log(ctx).Info("Shop verification changed",
			slog.String("shopID", shop.ID),
			slog.Bool("verified", shop.Verified))
		srv.publishVerificationEvent(ctx, shop)
	}

	return shop, nil
}

// ListPendingShops returns unverified shops awaiting review.
func (srv *shopService) ListPendingShops(ctx context.Context, id *authz.Identity) ([]*entity.Shop, error) {
	if err := authz.RequireRole(id, entity.RoleAdmin); err != nil {
		return nil, err
	}

	pending := false
	shops, err := srv.shopRepo.List(ctx, repository.ShopFilter{Verified: &pending})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending shops")
	}

	return shops, nil
}

// publishVerificationEvent emits the verification change. Publishing is
// best-effort; the write has already committed.
func (srv *shopService) publishVerificationEvent(ctx context.Context, shop *entity.Shop) {
	if srv.publisher == nil {
		return
	}

	event := &service.OrderEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      service.EventShopVerificationChange,
		ShopID:    shop.ID,
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish shop verification event",
			slog.String("shopID", shop.ID),
			slog.Any("error", err))
	}
}
