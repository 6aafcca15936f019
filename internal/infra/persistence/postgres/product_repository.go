package postgres

import (
	"context"
	"encoding/json"

	"campusmart/internal/domain/entity"
	"campusmart/internal/domain/repository"
	"campusmart/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// productRepository implements the domain's ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM)
}

// List returns products matching the filter, newest first.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Order("created_at DESC")
	if filter.ShopID != "" {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}

	var productMs []model.ProductModel
	if err := query.Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		product, err := toProductDomain(&productMs[i])
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// Create persists a new product entity to the database.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM, err := toProductModel(product)
	if err != nil {
		return err
	}
	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return errors.Wrap(err, "product violates price or stock constraints")
		}

		return errors.Wrap(err, "failed to create product")
	}

	return nil
}

// Update modifies an existing product entity in the database. The rating
// summary is written only through UpdateRating.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM, err := toProductModel(product)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"title":       productM.Title,
			"description": productM.Description,
			"price":       productM.Price,
			"stock":       productM.Stock,
			"category":    productM.Category,
			"tags":        productM.Tags,
			"images":      productM.Images,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product.
func (repo *productRepository) Delete(ctx context.Context, id string) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DecrementStock atomically subtracts qty under a stock guard. The WHERE
// clause is the serialization point for concurrent checkouts: only rows
// with enough stock match, so a losing checkout affects zero rows.
func (repo *productRepository) DecrementStock(ctx context.Context, id string, qty int64) error {
	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to decrement stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInsufficientStock
	}

	return nil
}

// RestoreStock atomically adds qty back, the compensating write for a
// cancelled order.
func (repo *productRepository) RestoreStock(ctx context.Context, id string, qty int64) error {
	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to restore stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// UpdateRating overwrites the product's rating summary.
func (repo *productRepository) UpdateRating(ctx context.Context, id string, avg float64, count int64) error {
	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating_avg":   avg,
			"review_count": count,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update rating summary")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// toProductDomain maps the persistence model back to a pure domain entity.
func toProductDomain(productM *model.ProductModel) (*entity.Product, error) {
	var tags []string
	if len(productM.Tags) > 0 {
		if err := json.Unmarshal(productM.Tags, &tags); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal product tags")
		}
	}

	var images []string
	if len(productM.Images) > 0 {
		if err := json.Unmarshal(productM.Images, &images); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal product images")
		}
	}

	return &entity.Product{
		ID:          productM.ID,
		ShopID:      productM.ShopID,
		Title:       productM.Title,
		Description: productM.Description,
		Price:       productM.Price,
		Stock:       productM.Stock,
		Category:    entity.Category(productM.Category),
		Tags:        tags,
		Images:      images,
		RatingAvg:   productM.RatingAvg,
		ReviewCount: productM.ReviewCount,
		CreatedAt:   productM.CreatedAt,
		UpdatedAt:   productM.UpdatedAt,
	}, nil
}

// toProductModel maps a pure domain entity to a GORM persistence model.
func toProductModel(product *entity.Product) (*model.ProductModel, error) {
	tags, err := marshalJSONField(product.Tags)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal product tags")
	}

	images, err := marshalJSONField(product.Images)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal product images")
	}

	return &model.ProductModel{
		ID:          product.ID,
		ShopID:      product.ShopID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    string(product.Category),
		Tags:        tags,
		Images:      images,
		RatingAvg:   product.RatingAvg,
		ReviewCount: product.ReviewCount,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}, nil
}

// marshalJSONField encodes a slice for a JSONB column, writing an empty
// array rather than NULL for nil slices.
func marshalJSONField[T any](value []T) (datatypes.JSON, error) {
	if value == nil {
		value = []T{}
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	return datatypes.JSON(raw), nil
}
