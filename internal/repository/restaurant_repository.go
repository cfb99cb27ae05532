package repository

import (
	"food_ordering/internal/models"

	"gorm.io/gorm"
)

type RestaurantRepository interface {
	Create(restaurant *models.Restaurant) error
	GetByID(id uint) (*models.Restaurant, error)
	GetOwned(id, ownerID uint) (*models.Restaurant, error)
	GetByOwner(ownerID uint) ([]models.Restaurant, error)
	ExistsForOwner(ownerID uint) (bool, error)
	Updates(restaurant *models.Restaurant, fields map[string]interface{}) error
	Delete(id uint) error
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

func (r *restaurantRepository) GetByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.First(&restaurant, id).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetOwned matches on id and owner together, so a foreign restaurant looks
// exactly like a missing one.
func (r *restaurantRepository) GetOwned(id, ownerID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.Preload("Menu", orderByID).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetByOwner(ownerID uint) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.Preload("Menu", orderByID).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *restaurantRepository) ExistsForOwner(ownerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Restaurant{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count > 0, err
}

func (r *restaurantRepository) Updates(restaurant *models.Restaurant, fields map[string]interface{}) error {
	return r.db.Model(restaurant).Updates(fields).Error
}

func (r *restaurantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Restaurant{}, id).Error
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
