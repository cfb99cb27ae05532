package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"
	"food_ordering/internal/redis"
	"food_ordering/internal/services"
	"food_ordering/internal/testutil"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryRedis struct {
	mu       sync.Mutex
	sessions map[string]redis.SessionData
	temp     map[string][]byte
}

func (m *memoryRedis) SetSession(ctx context.Context, id string, data *redis.SessionData, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = *data
	return nil
}

func (m *memoryRedis) GetSession(ctx context.Context, id string) (*redis.SessionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.sessions[id]
	if !ok {
		return nil, redis.ErrNotFound
	}
	return &data, nil
}

func (m *memoryRedis) DeleteSession(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memoryRedis) SetTempData(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.temp[key] = body
	return nil
}

func (m *memoryRedis) GetTempData(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.temp[key]
	if !ok {
		return redis.ErrNotFound
	}
	return json.Unmarshal(body, dest)
}

func (m *memoryRedis) DeleteTempData(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.temp, key)
	return nil
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	log := logger.New("test", io.Discard)
	store := &memoryRedis{sessions: map[string]redis.SessionData{}, temp: map[string][]byte{}}

	authService := services.NewAuthService(db, store, services.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour}, log)
	userService := services.NewUserService(db, services.NewNotificationService(nil, log), log)

	router := gin.New()
	RegisterRoutes(router, Handlers{
		User:       NewUserHandler(userService, authService, log),
		Restaurant: NewRestaurantHandler(services.NewRestaurantService(db, store, log), services.NewMenuService(db, store, time.Minute, log), log),
		Cart:       NewCartHandler(services.NewCartService(db, log), log),
		Order:      NewOrderHandler(services.NewOrderService(db, nil, log), log),
		Health: NewHealthHandler(map[string]Pinger{
			"database": PingFunc(func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}),
		}),
	}, authService, log)

	return &testServer{t: t, db: db, router: router}
}

type envelope struct {
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
	Status bool            `json:"status"`
	Errors []fieldError    `json:"errors"`
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			if err != nil {
				s.t.Fatalf("marshal body: %v", err)
			}
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) decode(w *httptest.ResponseRecorder, dest interface{}) {
	s.t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		s.t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func (s *testServer) expect(w *httptest.ResponseRecorder, status int) envelope {
	s.t.Helper()
	if w.Code != status {
		s.t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
	var env envelope
	if w.Body.Len() > 0 {
		s.decode(w, &env)
	}
	return env
}

// register creates an account through the API and logs it in.
func (s *testServer) register(kind, email string) string {
	s.t.Helper()
	s.expect(s.do(http.MethodPost, "/register/"+kind+"/", "", gin.H{
		"email":      email,
		"password":   "s3cret-pass",
		"first_name": "Test",
		"last_name":  "User",
	}), http.StatusCreated)
	return s.login(email)
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	env := s.expect(s.do(http.MethodPost, "/auth/login/", "", gin.H{
		"email":    email,
		"password": "s3cret-pass",
	}), http.StatusOK)
	var data struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Access == "" {
		s.t.Fatalf("login returned no token: %s", env.Data)
	}
	return data.Access
}

func (s *testServer) makeAdmin(email string) {
	s.t.Helper()
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Update("is_admin", true).Error; err != nil {
		s.t.Fatalf("make admin: %v", err)
	}
}

func (s *testServer) userID(email string) uint {
	s.t.Helper()
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		s.t.Fatalf("load user %s: %v", email, err)
	}
	return user.ID
}
