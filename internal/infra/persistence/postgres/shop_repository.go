package postgres

import (
	"context"

	"campusmart/internal/domain/entity"
	"campusmart/internal/domain/repository"
	"campusmart/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// shopRepository implements the domain's ShopRepository interface using GORM.
type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository is the constructor for shopRepository.
func NewShopRepository(db *gorm.DB) repository.ShopRepository {
	return &shopRepository{db: db}
}

// FindByID retrieves a single shop by its unique ID.
func (repo *shopRepository) FindByID(ctx context.Context, id string) (*entity.Shop, error) {
	var shopM model.ShopModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&shopM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopNotFound
		}

		return nil, errors.Wrap(err, "failed to find shop by id")
	}

	return toShopDomain(&shopM), nil
}

// FindByOwner retrieves the shop owned by the given user, if any.
func (repo *shopRepository) FindByOwner(ctx context.Context, ownerID string) (*entity.Shop, error) {
	var shopM model.ShopModel
	err := repo.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&shopM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopNotFound
		}

		return nil, errors.Wrap(err, "failed to find shop by owner")
	}

	return toShopDomain(&shopM), nil
}

// List returns shops matching the filter, newest first.
func (repo *shopRepository) List(ctx context.Context, filter repository.ShopFilter) ([]*entity.Shop, error) {
	query := repo.db.WithContext(ctx).Model(&model.ShopModel{}).Order("created_at DESC")
	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}

	var shopMs []model.ShopModel
	if err := query.Find(&shopMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list shops")
	}

	shops := make([]*entity.Shop, 0, len(shopMs))
	for i := range shopMs {
		shops = append(shops, toShopDomain(&shopMs[i]))
	}

	return shops, nil
}

// Create persists a new shop entity. The unique index on owner_id turns a
// second shop for the same owner into a duplicate-key error.
func (repo *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	shopM := toShopModel(shop)
	if err := repo.db.WithContext(ctx).Create(shopM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(err, "owner already has a shop")
		}

		return errors.Wrap(err, "failed to create shop")
	}

	return nil
}

// Update modifies an existing shop entity in the database.
func (repo *shopRepository) Update(ctx context.Context, shop *entity.Shop) error {
	shopM := toShopModel(shop)
	result := repo.db.WithContext(ctx).Model(&model.ShopModel{}).
		Where("id = ?", shop.ID).
		Updates(map[string]any{
			"name":        shopM.Name,
			"description": shopM.Description,
			"address":     shopM.Address,
			"upi_id":      shopM.UPIID,
			"verified":    shopM.Verified,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update shop")
	}
	if result.RowsAffected == 0 {
		return repository.ErrShopNotFound
	}

	return nil
}

// CountVerified returns the number of verified shops.
func (repo *shopRepository) CountVerified(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.ShopModel{}).
		Where("verified = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count verified shops")
	}

	return count, nil
}

// toShopDomain maps the persistence model back to a pure domain entity.
func toShopDomain(shopM *model.ShopModel) *entity.Shop {
	return &entity.Shop{
		ID:          shopM.ID,
		OwnerID:     shopM.OwnerID,
		Name:        shopM.Name,
		Description: shopM.Description,
		Address:     shopM.Address,
		UPIID:       shopM.UPIID,
		Verified:    shopM.Verified,
		CreatedAt:   shopM.CreatedAt,
		UpdatedAt:   shopM.UpdatedAt,
	}
}

// toShopModel maps a pure domain entity to a GORM persistence model.
func toShopModel(shop *entity.Shop) *model.ShopModel {
	return &model.ShopModel{
		ID:          shop.ID,
		OwnerID:     shop.OwnerID,
		Name:        shop.Name,
		Description: shop.Description,
		Address:     shop.Address,
		UPIID:       shop.UPIID,
		Verified:    shop.Verified,
		CreatedAt:   shop.CreatedAt,
		UpdatedAt:   shop.UpdatedAt,
	}
}
