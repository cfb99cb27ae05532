package repository

import (
	"food_ordering/internal/models"

	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(item *models.MenuItem) error
	GetByID(id uint) (*models.MenuItem, error)
	GetOwned(id, ownerID uint) (*models.MenuItem, error)
	GetByRestaurant(restaurantID uint) ([]models.MenuItem, error)
	Updates(item *models.MenuItem, fields map[string]interface{}) error
	Delete(id uint) error
	DeleteByRestaurant(restaurantID uint) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetOwned follows menu -> restaurant -> owner in a single query.
func (r *menuRepository) GetOwned(id, ownerID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.
		Where("id = ? AND restaurant_id IN (SELECT id FROM restaurants WHERE owner_id = ? AND deleted_at IS NULL)", id, ownerID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetByRestaurant(restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Where("restaurant_id = ?", restaurantID).Order("id").Find(&items).Error
	return items, err
}

func (r *menuRepository) Updates(item *models.MenuItem, fields map[string]interface{}) error {
	return r.db.Model(item).Updates(fields).Error
}

func (r *menuRepository) Delete(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}

func (r *menuRepository) DeleteByRestaurant(restaurantID uint) error {
	return r.db.Where("restaurant_id = ?", restaurantID).Delete(&models.MenuItem{}).Error
}
