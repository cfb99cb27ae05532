package repository

import (
	"food_ordering/internal/models"

	"gorm.io/gorm"
)

const orderItemBatchSize = 100

type OrderItemRepository interface {
	CreateBatch(items []models.OrderItem) error
	GetByOrderID(orderID uint) ([]models.OrderItem, error)
	Count() (int64, error)
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

// CreateBatch inserts all lines in batched multi-row INSERTs.
func (r *orderItemRepository) CreateBatch(items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&items, orderItemBatchSize).Error
}

func (r *orderItemRepository) GetByOrderID(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, err
}

func (r *orderItemRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).Count(&count).Error
	return count, err
}
