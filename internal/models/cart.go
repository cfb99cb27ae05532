package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	CustomerID uint       `json:"customer_id" gorm:"uniqueIndex;not null"`
	Items      []CartItem `json:"cart_items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `json:"added_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	CartID     uint            `json:"cart" gorm:"not null;uniqueIndex:idx_cart_menu_item"`
	MenuItemID uint            `json:"menu_item" gorm:"not null;uniqueIndex:idx_cart_menu_item"`
	MenuItem   *MenuItem       `json:"menu_item_detail,omitempty"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"` // unit price when first added
	AddedAt    time.Time       `json:"added_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Subtotal is the unit price times the quantity.
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalPrice is recomputed from the current line items on every call.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// MaxItemQuantity caps a single cart line.
const MaxItemQuantity = 1000

// QuantityOf is the quantity already in the cart for the menu item.
func (c *Cart) QuantityOf(menuItemID uint) int {
	for i := range c.Items {
		if c.Items[i].MenuItemID == menuItemID {
			return c.Items[i].Quantity
		}
	}
	return 0
}

// AddOrIncrementItem merges quantity into the existing line for the menu item,
// or appends a new line priced at the menu item's current price. The returned
// pointer refers into c.Items; a new line has a zero ID until persisted.
func (c *Cart) AddOrIncrementItem(menu *MenuItem, quantity int) *CartItem {
	for i := range c.Items {
		if c.Items[i].MenuItemID == menu.ID {
			c.Items[i].Quantity += quantity
			return &c.Items[i]
		}
	}
	c.Items = append(c.Items, CartItem{
		CartID:     c.ID,
		MenuItemID: menu.ID,
		Quantity:   quantity,
		Price:      menu.Price,
	})
	return &c.Items[len(c.Items)-1]
}
