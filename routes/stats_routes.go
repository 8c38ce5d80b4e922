package routes

import (
	"github.com/labstack/echo/v4"
)

// RegisterStatsRoutes sets up the public dashboard routes
func RegisterStatsRoutes(api *echo.Group, h *Handlers) {
	api.GET("/user/homeStats/:email", h.Stats.UserHomeStats)
	api.GET("/admin/homeStatus/:company", h.Stats.AdminHomeStatus)
}
