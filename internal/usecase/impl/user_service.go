// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"campusmart/config"
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

// userService implements the UserUsecase interface.
type userService struct {
	userRepo    repository.UserRepository
	emailSuffix string
	logger      *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	suffix := config.DefaultEmailSuffix
	if params.Config != nil && params.Config.Campus != nil && params.Config.Campus.EmailSuffix != "" {
		suffix = params.Config.Campus.EmailSuffix
	}

	return &userService{
		userRepo:    params.UserRepo,
		emailSuffix: suffix,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpsertFromClaims finds or creates the User record for a verified identity
// assertion. The operation is idempotent: the same UID always resolves to
// the same User, and an existing record is returned untouched.
func (srv *userService) UpsertFromClaims(ctx context.Context, claims *service.IdentityClaims) (*entity.User, error) {
	if claims == nil || claims.UID == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	existing, err := srv.userRepo.FindByID(ctx, claims.UID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to look up user for upsert")
	}

	user := &entity.User{
		ID:       claims.UID,
		Name:     claims.Name,
		Email:    claims.Email,
		Role:     entity.RoleCustomer,
		Verified: entity.EmailMatchesCampus(claims.Email, srv.emailSuffix),
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user from identity claims")
	}

	srv.log(ctx).Info("Created user from identity assertion",
		slog.String("userID", user.ID),
		slog.Bool("verified", user.Verified))

	return user, nil
}

// GetUser returns a user by identity UID.
func (srv *userService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// ResolveIdentity loads the persisted role and verification for a UID.
func (srv *userService) ResolveIdentity(ctx context.Context, uid string) (*authz.Identity, error) {
	user, err := srv.userRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to resolve identity")
	}

	return &authz.Identity{
		UserID:   user.ID,
		Role:     user.Role,
		Verified: user.Verified,
	}, nil
}
