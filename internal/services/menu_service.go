package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItemInput struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	IsAvailable *bool
}

type MenuItemUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	IsAvailable *bool
}

// PublicMenuItem is what customers see when browsing a restaurant.
type PublicMenuItem struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
}

type MenuService interface {
	CreateMenuItem(ctx context.Context, ownerID, restaurantID uint, input MenuItemInput) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, ownerID, itemID uint, input MenuItemUpdate) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, ownerID, itemID uint) error
	ListPublicMenu(ctx context.Context, restaurantID uint) ([]PublicMenuItem, error)
}

type menuService struct {
	db    *gorm.DB
	cache menuCache
	log   *logger.Logger
}

func NewMenuService(db *gorm.DB, cache MenuCache, cacheTTL time.Duration, log *logger.Logger) MenuService {
	return &menuService{db: db, cache: menuCache{store: cache, ttl: cacheTTL, log: log}, log: log}
}

func (s *menuService) CreateMenuItem(ctx context.Context, ownerID, restaurantID uint, input MenuItemInput) (*models.MenuItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name", "this field is required")
	}
	if input.Price == nil {
		return nil, invalid("price", "this field is required")
	}
	if err := validatePrice(*input.Price); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	restaurant, err := repository.NewRestaurantRepository(db).GetOwned(restaurantID, ownerID)
	if err != nil {
		return nil, lookupError(err, "restaurant")
	}

	item := &models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         name,
		Description:  input.Description,
		Price:        input.Price.Round(2),
		IsAvailable:  true,
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := repository.NewMenuRepository(db).Create(item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	s.cache.invalidate(ctx, restaurant.ID)

	s.log.Info("menu_item_created", logger.RequestID(ctx), "menu item created",
		slog.Uint64("menu_item_id", uint64(item.ID)),
		slog.Uint64("restaurant_id", uint64(restaurant.ID)),
	)
	return item, nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, ownerID, itemID uint, input MenuItemUpdate) (*models.MenuItem, error) {
	fields := map[string]interface{}{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalid("name", "this field may not be blank")
		}
		fields["name"] = name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
		fields["price"] = input.Price.Round(2)
	}
	if input.IsAvailable != nil {
		fields["is_available"] = *input.IsAvailable
	}

	menus := repository.NewMenuRepository(s.db.WithContext(ctx))
	item, err := menus.GetOwned(itemID, ownerID)
	if err != nil {
		return nil, lookupError(err, "menu item")
	}
	if len(fields) == 0 {
		return item, nil
	}

	if err := menus.Updates(item, fields); err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	s.cache.invalidate(ctx, item.RestaurantID)

	item, err = menus.GetOwned(itemID, ownerID)
	if err != nil {
		return nil, lookupError(err, "menu item")
	}
	return item, nil
}

func (s *menuService) DeleteMenuItem(ctx context.Context, ownerID, itemID uint) error {
	menus := repository.NewMenuRepository(s.db.WithContext(ctx))
	item, err := menus.GetOwned(itemID, ownerID)
	if err != nil {
		return lookupError(err, "menu item")
	}
	if err := menus.Delete(item.ID); err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	s.cache.invalidate(ctx, item.RestaurantID)
	return nil
}

// ListPublicMenu answers from the cache when possible; a missing restaurant
// or a restaurant without menu items is reported as not found.
func (s *menuService) ListPublicMenu(ctx context.Context, restaurantID uint) ([]PublicMenuItem, error) {
	var cached []PublicMenuItem
	if s.cache.get(ctx, restaurantID, &cached) && len(cached) > 0 {
		return cached, nil
	}

	db := s.db.WithContext(ctx)
	if _, err := repository.NewRestaurantRepository(db).GetByID(restaurantID); err != nil {
		return nil, lookupError(err, "restaurant")
	}

	items, err := repository.NewMenuRepository(db).GetByRestaurant(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	if len(items) == 0 {
		return nil, notFound("menu")
	}

	out := make([]PublicMenuItem, 0, len(items))
	for _, item := range items {
		out = append(out, PublicMenuItem{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			IsAvailable: item.IsAvailable,
		})
	}
	s.cache.set(ctx, restaurantID, out)
	return out, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return invalid("price", "ensure this value is greater than or equal to 0")
	}
	if price.GreaterThanOrEqual(decimal.New(1, 8)) {
		return invalid("price", "ensure that there are no more than 10 digits in total")
	}
	return nil
}
