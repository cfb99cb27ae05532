package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"not null;index"`
	MenuItemID uint            `json:"menu_item" gorm:"not null;index"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"` // unit price at order time
	CreatedAt  time.Time       `json:"created_at"`
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
