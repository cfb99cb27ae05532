package testutil

import (
	"testing"

	"food_ordering/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func CreateUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Email:     email,
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "User",
		Role:      string(role),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func CreateRestaurant(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		OwnerID:     ownerID,
		Name:        name,
		Address:     "1 Main St",
		PhoneNumber: "0123456789",
	}
	if err := db.Create(restaurant).Error; err != nil {
		t.Fatalf("failed to create restaurant %s: %v", name, err)
	}
	return restaurant
}

func CreateMenuItem(t *testing.T, db *gorm.DB, restaurantID uint, name, price string) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
		IsAvailable:  true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create menu item %s: %v", name, err)
	}
	return item
}
