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

// orderRepository implements the domain's OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM)
}

// List returns orders matching the filter, newest first.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Order("created_at DESC")
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ShopID != "" {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var orderMs []model.OrderModel
	if err := query.Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		order, err := toOrderDomain(&orderMs[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// Create persists a new order entity to the database.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM, err := toOrderModel(order)
	if err != nil {
		return err
	}
	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return errors.Wrap(err, "failed to create order")
	}

	return nil
}

// UpdateStatus writes a new status for the order. The from-state guard
// makes concurrent transitions on the same order lose cleanly instead of
// overwriting each other.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check order existence")
		}
		if count == 0 {
			return repository.ErrOrderNotFound
		}

		return repository.ErrOrderStateChanged
	}

	return nil
}

// AttachPaymentScreenshot records the evidentiary payment artifact URL.
func (repo *orderRepository) AttachPaymentScreenshot(ctx context.Context, id string, url string) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("payment_screenshot", url)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to attach payment screenshot")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Count returns the total number of orders.
func (repo *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

// toOrderDomain maps the persistence model back to a pure domain entity.
func toOrderDomain(orderM *model.OrderModel) (*entity.Order, error) {
	var items []entity.OrderItem
	if err := json.Unmarshal(orderM.Items, &items); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal order items")
	}

	var address entity.DeliveryAddress
	if err := json.Unmarshal(orderM.DeliveryAddress, &address); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal delivery address")
	}

	return &entity.Order{
		ID:                orderM.ID,
		UserID:            orderM.UserID,
		ShopID:            orderM.ShopID,
		Items:             items,
		Subtotal:          orderM.Subtotal,
		Tax:               orderM.Tax,
		DeliveryFee:       orderM.DeliveryFee,
		Total:             orderM.Total,
		Status:            entity.OrderStatus(orderM.Status),
		DeliveryAddress:   address,
		PaymentScreenshot: orderM.PaymentScreenshot,
		CreatedAt:         orderM.CreatedAt,
		UpdatedAt:         orderM.UpdatedAt,
	}, nil
}

// toOrderModel maps a pure domain entity to a GORM persistence model.
func toOrderModel(order *entity.Order) (*model.OrderModel, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal order items")
	}

	address, err := json.Marshal(order.DeliveryAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal delivery address")
	}

	return &model.OrderModel{
		ID:                order.ID,
		UserID:            order.UserID,
		ShopID:            order.ShopID,
		Items:             datatypes.JSON(items),
		Subtotal:          order.Subtotal,
		Tax:               order.Tax,
		DeliveryFee:       order.DeliveryFee,
		Total:             order.Total,
		Status:            string(order.Status),
		DeliveryAddress:   datatypes.JSON(address),
		PaymentScreenshot: order.PaymentScreenshot,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}, nil
}
