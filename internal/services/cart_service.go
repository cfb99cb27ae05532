package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"gorm.io/gorm"
)

type CartService interface {
	GetCart(ctx context.Context, customerID uint) (*models.Cart, error)
	AddItem(ctx context.Context, customerID, menuItemID uint, quantity *int) (*models.CartItem, error)
	// UpdateItemQuantity sets the quantity of a line. Zero removes the line
	// and returns a nil item.
	UpdateItemQuantity(ctx context.Context, customerID, itemID uint, quantity *int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, customerID, itemID uint) error
	ClearCart(ctx context.Context, customerID uint) error
}

type cartService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartService(db *gorm.DB, log *logger.Logger) CartService {
	return &cartService{db: db, log: log}
}

func (s *cartService) GetCart(ctx context.Context, customerID uint) (*models.Cart, error) {
	cart, err := repository.NewCartRepository(s.db.WithContext(ctx)).GetOrCreate(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, customerID, menuItemID uint, quantity *int) (*models.CartItem, error) {
	qty := 1
	if quantity != nil {
		qty = *quantity
	}
	if menuItemID == 0 {
		return nil, invalid("menu", "this field is required")
	}
	if qty <= 0 {
		return nil, invalid("quantity", "ensure this value is greater than or equal to 1")
	}
	if qty > models.MaxItemQuantity {
		return nil, quantityTooLarge()
	}

	var line *models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		menu, err := repository.NewMenuRepository(tx).GetByID(menuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("menu", fmt.Sprintf("invalid pk \"%d\" - object does not exist", menuItemID))
			}
			return fmt.Errorf("failed to load menu item: %w", err)
		}
		if !menu.IsAvailable {
			return invalid("menu", "this menu item is currently unavailable")
		}

		carts := repository.NewCartRepository(tx)
		cart, err := carts.GetOrCreateForUpdate(customerID)
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}

		if cart.QuantityOf(menu.ID) > models.MaxItemQuantity-qty {
			return quantityTooLarge()
		}

		line = cart.AddOrIncrementItem(menu, qty)
		if err := carts.SaveItem(line); err != nil {
			return fmt.Errorf("failed to save cart item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("cart_item_added", logger.RequestID(ctx), "item added to cart",
		slog.Uint64("customer_id", uint64(customerID)),
		slog.Uint64("menu_item_id", uint64(menuItemID)),
		slog.Int("quantity", line.Quantity),
	)
	return line, nil
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, customerID, itemID uint, quantity *int) (*models.CartItem, error) {
	if quantity == nil {
		return nil, invalid("quantity", "this field is required")
	}
	if *quantity < 0 {
		return nil, invalid("quantity", "invalid quantity")
	}
	if *quantity > models.MaxItemQuantity {
		return nil, quantityTooLarge()
	}

	carts := repository.NewCartRepository(s.db.WithContext(ctx))
	item, err := carts.GetItemForCustomer(itemID, customerID)
	if err != nil {
		return nil, lookupError(err, "cart item")
	}

	if *quantity == 0 {
		if err := carts.DeleteItem(item.ID); err != nil {
			return nil, lookupError(err, "cart item")
		}
		return nil, nil
	}

	if err := carts.UpdateItemQuantity(item, *quantity); err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, itemID uint) error {
	carts := repository.NewCartRepository(s.db.WithContext(ctx))
	item, err := carts.GetItemForCustomer(itemID, customerID)
	if err != nil {
		return lookupError(err, "cart item")
	}
	if err := carts.DeleteItem(item.ID); err != nil {
		return lookupError(err, "cart item")
	}
	return nil
}

func quantityTooLarge() error {
	return invalid("quantity", fmt.Sprintf("ensure this value is less than or equal to %d", models.MaxItemQuantity))
}

// ClearCart empties the cart but keeps the cart itself.
func (s *cartService) ClearCart(ctx context.Context, customerID uint) error {
	carts := repository.NewCartRepository(s.db.WithContext(ctx))
	cart, err := carts.GetOrCreate(customerID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	if err := carts.ClearItems(cart.ID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
