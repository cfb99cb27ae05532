package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"gorm.io/gorm"
)

type RestaurantInput struct {
	Name        string
	Description string
	Address     string
	PhoneNumber string
}

// RestaurantUpdate holds a partial update; nil fields are left untouched.
type RestaurantUpdate struct {
	Name        *string
	Description *string
	Address     *string
	PhoneNumber *string
}

type RestaurantService interface {
	ListOwned(ctx context.Context, ownerID uint) ([]models.Restaurant, error)
	CreateRestaurant(ctx context.Context, ownerID uint, input RestaurantInput) (*models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, ownerID, restaurantID uint, input RestaurantUpdate) (*models.Restaurant, error)
	DeleteRestaurant(ctx context.Context, ownerID, restaurantID uint) error
}

type restaurantService struct {
	db    *gorm.DB
	cache menuCache
	log   *logger.Logger
}

func NewRestaurantService(db *gorm.DB, cache MenuCache, log *logger.Logger) RestaurantService {
	return &restaurantService{db: db, cache: menuCache{store: cache, log: log}, log: log}
}

func (s *restaurantService) ListOwned(ctx context.Context, ownerID uint) ([]models.Restaurant, error) {
	restaurants, err := repository.NewRestaurantRepository(s.db.WithContext(ctx)).GetByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, nil
}

// CreateRestaurant holds a lock on the owner row while checking for an
// existing restaurant, so two concurrent creates cannot both pass the check.
func (s *restaurantService) CreateRestaurant(ctx context.Context, ownerID uint, input RestaurantInput) (*models.Restaurant, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, invalid("name", "this field is required")
	}
	if err := validatePhone("phone_number", input.PhoneNumber); err != nil {
		return nil, err
	}

	restaurant := &models.Restaurant{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := repository.NewUserRepository(tx).GetByIDForUpdate(ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnauthorized
			}
			return fmt.Errorf("failed to load owner: %w", err)
		}
		if !owner.HasRole(models.RoleOwner) {
			return ErrOwnerRequired
		}

		restaurants := repository.NewRestaurantRepository(tx)
		exists, err := restaurants.ExistsForOwner(ownerID)
		if err != nil {
			return fmt.Errorf("failed to check existing restaurant: %w", err)
		}
		if exists {
			return ErrRestaurantExists
		}
		if err := restaurants.Create(restaurant); err != nil {
			return fmt.Errorf("failed to create restaurant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("restaurant_created", logger.RequestID(ctx), "restaurant created",
		slog.Uint64("restaurant_id", uint64(restaurant.ID)),
		slog.Uint64("owner_id", uint64(ownerID)),
	)
	return restaurant, nil
}

func (s *restaurantService) UpdateRestaurant(ctx context.Context, ownerID, restaurantID uint, input RestaurantUpdate) (*models.Restaurant, error) {
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
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if input.PhoneNumber != nil {
		if err := validatePhone("phone_number", *input.PhoneNumber); err != nil {
			return nil, err
		}
		fields["phone_number"] = strings.TrimSpace(*input.PhoneNumber)
	}

	restaurants := repository.NewRestaurantRepository(s.db.WithContext(ctx))
	restaurant, err := restaurants.GetOwned(restaurantID, ownerID)
	if err != nil {
		return nil, lookupError(err, "restaurant")
	}
	if len(fields) == 0 {
		return restaurant, nil
	}

	if err := restaurants.Updates(restaurant, fields); err != nil {
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	s.cache.invalidate(ctx, restaurant.ID)

	restaurant, err = restaurants.GetOwned(restaurantID, ownerID)
	if err != nil {
		return nil, lookupError(err, "restaurant")
	}
	return restaurant, nil
}

// DeleteRestaurant soft-deletes the restaurant together with its menu.
func (s *restaurantService) DeleteRestaurant(ctx context.Context, ownerID, restaurantID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		restaurants := repository.NewRestaurantRepository(tx)
		restaurant, err := restaurants.GetOwned(restaurantID, ownerID)
		if err != nil {
			return lookupError(err, "restaurant")
		}
		if err := repository.NewMenuRepository(tx).DeleteByRestaurant(restaurant.ID); err != nil {
			return fmt.Errorf("failed to delete menu: %w", err)
		}
		if err := restaurants.Delete(restaurant.ID); err != nil {
			return fmt.Errorf("failed to delete restaurant: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.invalidate(ctx, restaurantID)
	s.log.Info("restaurant_deleted", logger.RequestID(ctx), "restaurant deleted",
		slog.Uint64("restaurant_id", uint64(restaurantID)),
	)
	return nil
}

func validatePhone(field, phone string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) > 20 {
		return invalid(field, "ensure this field has no more than 20 characters")
	}
	return nil
}
