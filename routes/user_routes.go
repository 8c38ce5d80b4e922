package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/itam_backend/middleware"
)

// RegisterUserRoutes sets up user and team management routes
func RegisterUserRoutes(api *echo.Group, h *Handlers) {
	auth := h.requireAuth()

	api.GET("/users", h.Users.GetUsers, auth)
	api.POST("/users", h.Users.RegisterUser)
	api.GET("/users/admin/:email", h.Users.GetAdminStatus)
	api.PATCH("/users/admin/:email", h.Users.UpdatePackage, auth, middleware.RequireSelf("email"))
	api.PATCH("/updateProfile/:email", h.Users.UpdateProfile, auth, middleware.RequireSelf("email"))

	// Team management
	api.PUT("/admin/addToTeam/:id", h.Users.AddToTeam, auth, h.requireAdmin())
	api.PUT("/admin/removeFromTeam/:id", h.Users.RemoveFromTeam, auth, h.requireAdmin())
}
