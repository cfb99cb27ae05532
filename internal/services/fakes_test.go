package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"
	"food_ordering/internal/redis"
)

func testLogger() *logger.Logger {
	return logger.New("test", io.Discard)
}

// fakeRedis implements SessionStore and MenuCache in memory. TTLs are ignored.
type fakeRedis struct {
	mu       sync.Mutex
	sessions map[string]redis.SessionData
	temp     map[string][]byte
	deletes  []string
	failGet  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		sessions: map[string]redis.SessionData{},
		temp:     map[string][]byte{},
	}
}

func (f *fakeRedis) SetSession(ctx context.Context, id string, data *redis.SessionData, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id] = *data
	return nil
}

func (f *fakeRedis) GetSession(ctx context.Context, id string) (*redis.SessionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.sessions[id]
	if !ok {
		return nil, redis.ErrNotFound
	}
	return &data, nil
}

func (f *fakeRedis) DeleteSession(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeRedis) SetTempData(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.temp[key] = body
	return nil
}

func (f *fakeRedis) GetTempData(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return errors.New("connection refused")
	}
	body, ok := f.temp[key]
	if !ok {
		return redis.ErrNotFound
	}
	return json.Unmarshal(body, dest)
}

func (f *fakeRedis) DeleteTempData(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.temp, key)
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeRedis) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.temp[key]
	return ok
}

type sentEmail struct {
	to, subject, text string
}

type fakeMailer struct {
	enabled bool
	err     error
	sent    []sentEmail
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) SendTextEmail(ctx context.Context, to, subject, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, text: text})
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	orders []uint
}

func (p *fakePublisher) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, order.ID)
	return p.err
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }
