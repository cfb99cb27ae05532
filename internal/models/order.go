package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	CustomerID  uint            `json:"customer_id" gorm:"not null;index"`
	Status      string          `json:"status" gorm:"not null;default:'PENDING'"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Items       []OrderItem     `json:"order_items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// ItemsTotal sums the frozen line prices; for a placed order it equals TotalAmount.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	return total
}

// NewOrderFromCart snapshots the cart lines at their recorded unit prices.
// OrderID on the lines is filled in once the order row exists.
func NewOrderFromCart(cart *Cart) *Order {
	order := &Order{
		CustomerID:  cart.CustomerID,
		Status:      string(OrderPending),
		TotalAmount: cart.TotalPrice(),
		Items:       make([]OrderItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}
	return order
}
