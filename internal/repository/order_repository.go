package repository

import (
	"food_ordering/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetForCustomer(id, customerID uint) (*models.Order, error)
	GetByCustomer(customerID uint) ([]models.Order, error)
	Count() (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create writes only the order row; line items go through OrderItemRepository.
func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Omit(clause.Associations).Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items", orderByID).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetForCustomer(id, customerID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items", orderByID).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items", orderByID).
		Where("customer_id = ?", customerID).
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Count(&count).Error
	return count, err
}
