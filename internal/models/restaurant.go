package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Restaurant struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	OwnerID     uint           `json:"owner_id" gorm:"not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Address     string         `json:"address"`
	PhoneNumber string         `json:"phone_number"`
	Menu        []MenuItem     `json:"menu" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type MenuItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	RestaurantID uint            `json:"restaurant_id" gorm:"not null;index"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	IsAvailable  bool            `json:"is_available" gorm:"not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`
}
