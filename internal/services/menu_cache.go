package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"food_ordering/internal/logger"
	"food_ordering/internal/redis"
)

// MenuCache is the temp-data part of the Redis client.
type MenuCache interface {
	SetTempData(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetTempData(ctx context.Context, key string, dest interface{}) error
	DeleteTempData(ctx context.Context, key string) error
}

// menuCache never fails a request: cache errors are logged and treated as misses.
type menuCache struct {
	store MenuCache
	ttl   time.Duration
	log   *logger.Logger
}

func menuCacheKey(restaurantID uint) string {
	return fmt.Sprintf("menu:%d", restaurantID)
}

func (m menuCache) get(ctx context.Context, restaurantID uint, dest interface{}) bool {
	if m.store == nil || m.ttl <= 0 {
		return false
	}
	err := m.store.GetTempData(ctx, menuCacheKey(restaurantID), dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, redis.ErrNotFound) {
		m.log.Warn("menu_cache_read_failed", logger.RequestID(ctx), err.Error(),
			slog.Uint64("restaurant_id", uint64(restaurantID)),
		)
	}
	return false
}

func (m menuCache) set(ctx context.Context, restaurantID uint, value interface{}) {
	if m.store == nil || m.ttl <= 0 {
		return
	}
	if err := m.store.SetTempData(ctx, menuCacheKey(restaurantID), value, m.ttl); err != nil {
		m.log.Warn("menu_cache_write_failed", logger.RequestID(ctx), err.Error(),
			slog.Uint64("restaurant_id", uint64(restaurantID)),
		)
	}
}

func (m menuCache) invalidate(ctx context.Context, restaurantID uint) {
	if m.store == nil {
		return
	}
	if err := m.store.DeleteTempData(ctx, menuCacheKey(restaurantID)); err != nil {
		m.log.Warn("menu_cache_invalidate_failed", logger.RequestID(ctx), err.Error(),
			slog.Uint64("restaurant_id", uint64(restaurantID)),
		)
	}
}
