package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := gin.H{}
	healthy := true
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			components[name] = err.Error()
			healthy = false
			continue
		}
		components[name] = "ok"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "components": components})
}
