package impl

import (
	"context"
	"testing"

	"campusmart/internal/domain/entity"
	"campusmart/internal/domain/repository"
	"campusmart/internal/domain/service"
	mockRepo "campusmart/internal/mocks/repository"
	"campusmart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestUserService(t *testing.T) (usecase.UserUsecase, *mockRepo.MockUserRepository) {
	userRepo := mockRepo.NewMockUserRepository(t)

	svc := NewUserService(UserServiceParams{
		UserRepo: userRepo,
		Config:   newTestConfig(),
		Logger:   newDiscardLogger(),
	})

	return svc, userRepo
}

func TestUserService_UpsertFromClaims_CreatesVerifiedCampusUser(t *testing.T) {
	svc, userRepo := createTestUserService(t)
	ctx := context.Background()

	userRepo.EXPECT().FindByID(ctx, "uid-1").Return(nil, repository.ErrUserNotFound)
	userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "uid-1", user.ID)
			assert.Equal(t, entity.RoleCustomer, user.Role)
			assert.True(t, user.Verified)
		}).
		Return(nil)

	user, err := svc.UpsertFromClaims(ctx, &service.IdentityClaims{
		UID:   "uid-1",
		Email: "ada@test.edu",
		Name:  "Ada",
	})

	require.NoError(t, err)
	assert.True(t, user.Verified)
	assert.Equal(t, entity.RoleCustomer, user.Role)
}

func TestUserService_UpsertFromClaims_OffCampusEmailUnverified(t *testing.T) {
	svc, userRepo := createTestUserService(t)
	ctx := context.Background()

	userRepo.EXPECT().FindByID(ctx, "uid-2").Return(nil, repository.ErrUserNotFound)
	userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := svc.UpsertFromClaims(ctx, &service.IdentityClaims{
		UID:   "uid-2",
		Email: "ada@gmail.com",
	})

	require.NoError(t, err)
	assert.False(t, user.Verified)
}

func TestUserService_UpsertFromClaims_Idempotent(t *testing.T) {
	svc, userRepo := createTestUserService(t)
	ctx := context.Background()

	existing := &entity.User{ID: "uid-1", Role: entity.RoleShopOwner, Verified: true}
	userRepo.EXPECT().FindByID(ctx, "uid-1").Return(existing, nil)

	// A repeat sync returns the stored record untouched; in particular the
	// promoted role survives.
	user, err := svc.UpsertFromClaims(ctx, &service.IdentityClaims{UID: "uid-1", Email: "ada@test.edu"})

	require.NoError(t, err)
	assert.Same(t, existing, user)
	assert.Equal(t, entity.RoleShopOwner, user.Role)
}

func TestUserService_ResolveIdentity_UnknownUIDIsNil(t *testing.T) {
	svc, userRepo := createTestUserService(t)
	ctx := context.Background()

	userRepo.EXPECT().FindByID(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	id, err := svc.ResolveIdentity(ctx, "ghost")

	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestUserService_ResolveIdentity_LoadsPersistedRole(t *testing.T) {
	svc, userRepo := createTestUserService(t)
	ctx := context.Background()

	userRepo.EXPECT().FindByID(ctx, "uid-1").
		Return(&entity.User{ID: "uid-1", Role: entity.RoleAdmin, Verified: true}, nil)

	id, err := svc.ResolveIdentity(ctx, "uid-1")

	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, entity.RoleAdmin, id.Role)
	assert.True(t, id.Verified)
}
