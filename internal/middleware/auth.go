package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"
	"food_ordering/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"
	roleKey   = "role"
	userKey   = "user"
	tokenKey  = "token"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Auth requires a valid bearer token and stores the caller on the context.
func Auth(auth Authenticator, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			abort(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				abort(c, http.StatusUnauthorized, "Given token not valid for any token type")
				return
			}
			log.Error("authenticate_failed", logger.RequestID(c.Request.Context()), "failed to authenticate request", err)
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(userIDKey, user.ID)
		c.Set(roleKey, user.Role)
		c.Set(userKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireRoles must run after Auth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(roleKey)
		for _, r := range roles {
			if role == string(r) {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "You do not have permission to perform this action.")
	}
}

// RequireAdmin must run after Auth. It rejects before the handler reads the body.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := CurrentUser(c); user == nil || !user.IsAdmin {
			abort(c, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(userIDKey)
	id, _ := v.(uint)
	return id
}

func CurrentUser(c *gin.Context) *models.User {
	v, _ := c.Get(userKey)
	user, _ := v.(*models.User)
	return user
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"msg": msg, "status": false})
}
