package repository

import (
	"food_ordering/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	GetByCustomer(customerID uint) (*models.Cart, error)
	GetByCustomerForUpdate(customerID uint) (*models.Cart, error)
	GetOrCreate(customerID uint) (*models.Cart, error)
	GetOrCreateForUpdate(customerID uint) (*models.Cart, error)
	SaveItem(item *models.CartItem) error
	GetItemForCustomer(itemID, customerID uint) (*models.CartItem, error)
	UpdateItemQuantity(item *models.CartItem, quantity int) error
	DeleteItem(id uint) error
	ClearItems(cartID uint) error
	Delete(cartID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetByCustomer(customerID uint) (*models.Cart, error) {
	return r.find(r.db, customerID)
}

// GetByCustomerForUpdate locks the cart row; callers must be inside a transaction.
func (r *cartRepository) GetByCustomerForUpdate(customerID uint) (*models.Cart, error) {
	return r.find(r.db.Clauses(clause.Locking{Strength: "UPDATE"}), customerID)
}

func (r *cartRepository) GetOrCreate(customerID uint) (*models.Cart, error) {
	if err := r.ensure(customerID); err != nil {
		return nil, err
	}
	return r.GetByCustomer(customerID)
}

func (r *cartRepository) GetOrCreateForUpdate(customerID uint) (*models.Cart, error) {
	if err := r.ensure(customerID); err != nil {
		return nil, err
	}
	return r.GetByCustomerForUpdate(customerID)
}

// ensure inserts an empty cart unless one exists; a concurrent insert for the
// same customer hits the unique index and is ignored.
func (r *cartRepository) ensure(customerID uint) error {
	var count int64
	if err := r.db.Model(&models.Cart{}).Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cart := models.Cart{CustomerID: customerID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cart).Error
}

func (r *cartRepository) find(db *gorm.DB, customerID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("customer_id = ?", customerID).First(&cart).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.Preload("MenuItem", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	}).Where("cart_id = ?", cart.ID).Order("id").Find(&cart.Items).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// SaveItem inserts a new line or writes the quantity of an existing one.
func (r *cartRepository) SaveItem(item *models.CartItem) error {
	if item.ID == 0 {
		return r.db.Omit("MenuItem").Create(item).Error
	}
	return r.db.Model(item).Update("quantity", item.Quantity).Error
}

// GetItemForCustomer resolves a line only through the customer's own cart.
func (r *cartRepository) GetItemForCustomer(itemID, customerID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE customer_id = ?)", itemID, customerID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) UpdateItemQuantity(item *models.CartItem, quantity int) error {
	if err := r.db.Model(item).Update("quantity", quantity).Error; err != nil {
		return err
	}
	item.Quantity = quantity
	return nil
}

func (r *cartRepository) DeleteItem(id uint) error {
	res := r.db.Delete(&models.CartItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// Delete removes the cart and its lines.
func (r *cartRepository) Delete(cartID uint) error {
	if err := r.ClearItems(cartID); err != nil {
		return err
	}
	res := r.db.Delete(&models.Cart{}, cartID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
