// controllers/health_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PingFunc checks that the backing store is reachable
type PingFunc func(ctx context.Context) error

// HealthController serves the liveness endpoints
type HealthController struct {
	ping    PingFunc
	timeout time.Duration
}

// NewHealthController creates a health controller. ping may be nil for
// stores that are always available.
func NewHealthController(ping PingFunc, timeout time.Duration) *HealthController {
	return &HealthController{ping: ping, timeout: timeout}
}

// Root answers the plain liveness string
func (hc *HealthController) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Hello ITAM!")
}

// Health reports whether the store answers a ping
func (hc *HealthController) Health(c echo.Context) error {
	if hc.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), hc.timeout)
		defer cancel()

		if err := hc.ping(ctx); err != nil {
			zap.S().Errorw("health check failed", "error", err)
			return respond(c, http.StatusServiceUnavailable, "Store unavailable", nil)
		}
	}
	return respond(c, http.StatusOK, "Server is healthy", map[string]string{"status": "ok"})
}
