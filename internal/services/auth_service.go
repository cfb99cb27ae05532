package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"
	"food_ordering/internal/redis"
	"food_ordering/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionStore keeps the server side of a login; deleting the session
// revokes the token even before it expires.
type SessionStore interface {
	SetSession(ctx context.Context, sessionID string, data *redis.SessionData, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type AuthConfig struct {
	Secret     string
	TokenTTL   time.Duration
	SessionTTL time.Duration
}

type LoginResult struct {
	Token     string       `json:"access"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	db       *gorm.DB
	sessions SessionStore
	cfg      AuthConfig
	log      *logger.Logger
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, sessions SessionStore, cfg AuthConfig, log *logger.Logger) AuthService {
	if cfg.SessionTTL <= 0 || cfg.SessionTTL > cfg.TokenTTL {
		cfg.SessionTTL = cfg.TokenTTL
	}
	return &authService{db: db, sessions: sessions, cfg: cfg, log: log, now: time.Now}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := repository.NewUserRepository(s.db.WithContext(ctx)).GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	sessionID := uuid.NewString()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := tokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	session := &redis.SessionData{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		IsAdmin:   user.IsAdmin,
		CreatedAt: now,
	}
	if err := s.sessions.SetSession(ctx, sessionID, session, s.cfg.SessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.log.Info("user_logged_in", logger.RequestID(ctx), "session created",
		slog.Uint64("user_id", uint64(user.ID)),
	)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if err := s.sessions.DeleteSession(ctx, claims.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to the current user row, so role
// changes take effect without a new login.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetSession(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	user, err := repository.NewUserRepository(s.db.WithContext(ctx)).GetByID(session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive || strconv.FormatUint(uint64(user.ID), 10) != claims.Subject {
		return nil, ErrUnauthorized
	}
	return user, nil
}

func (s *authService) parse(token string) (*tokenClaims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || claims.ID == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
