package routes

import (
	"github.com/labstack/echo/v4"
)

// RegisterAuthRoutes sets up the session cookie routes
func RegisterAuthRoutes(api *echo.Group, h *Handlers) {
	api.POST("/create-token", h.Auth.CreateToken)
	api.GET("/clear-token", h.Auth.ClearToken)
}
