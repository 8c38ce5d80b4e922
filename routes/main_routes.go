package routes

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/itam_backend/controllers"
	"github.com/HSouheill/itam_backend/metrics"
	"github.com/HSouheill/itam_backend/middleware"
)

// APIPrefix is the base path of every JSON endpoint
const APIPrefix = "/api/v1"

// Handlers bundles the controllers and guards the routes are built from
type Handlers struct {
	Tokens       *middleware.TokenManager
	Admins       middleware.AdminChecker
	AdminTimeout time.Duration

	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Assets   *controllers.AssetController
	Requests *controllers.RequestController
	Stats    *controllers.StatsController
	Payments *controllers.PaymentController
	Feed     *controllers.FeedController
	Health   *controllers.HealthController
}

func (h *Handlers) requireAuth() echo.MiddlewareFunc {
	return h.Tokens.RequireAuth()
}

func (h *Handlers) requireAdmin() echo.MiddlewareFunc {
	return middleware.RequireAdmin(h.Admins, h.AdminTimeout)
}

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(e *echo.Echo, h *Handlers) {
	e.Match([]string{"GET", "HEAD"}, "/", h.Health.Root)
	e.Match([]string{"GET", "HEAD"}, "/health", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group(APIPrefix)
	RegisterAuthRoutes(api, h)
	RegisterUserRoutes(api, h)
	RegisterAssetRoutes(api, h)
	RegisterRequestRoutes(api, h)
	RegisterStatsRoutes(api, h)
	RegisterPaymentRoutes(api, h)
}
