package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrNotFound = errors.New("redis: key not found")

type Client struct {
	rdb *redis.Client
}

type SessionData struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NewClient wraps an already configured go-redis client.
func NewClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Session management
func (c *Client) SetSession(ctx context.Context, sessionID string, data *SessionData, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, sessionKey(sessionID), jsonData, ttl).Err()
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	val, err := c.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

// Temporary data management
func (c *Client) SetTempData(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal temp data: %w", err)
	}

	return c.rdb.Set(ctx, tempKey(key), jsonData, ttl).Err()
}

func (c *Client) GetTempData(ctx context.Context, key string, dest interface{}) error {
	val, err := c.rdb.Get(ctx, tempKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get temp data: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) DeleteTempData(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, tempKey(key)).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func sessionKey(id string) string { return "session:" + id }

func tempKey(key string) string { return "temp:" + key }
