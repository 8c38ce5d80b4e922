package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/itam_backend/middleware"
)

// RegisterRequestRoutes sets up the request lifecycle routes and the live feed
func RegisterRequestRoutes(api *echo.Group, h *Handlers) {
	auth := h.requireAuth()

	// Member routes
	api.POST("/user/makeAssetRequest", h.Requests.MakeAssetRequest, auth)
	api.POST("/user/makeCustomRequest", h.Requests.MakeCustomRequest, auth)
	api.PATCH("/user/updateCustomRequest/:email", h.Requests.UpdateCustomRequest, auth, middleware.RequireSelf("email"))

	// Admin routes
	admin := h.requireAdmin()
	api.GET("/admin/allRequest/:company", h.Requests.ListRequests, auth, admin)
	api.PUT("/admin/approveRequest/:name", h.Requests.ApproveRequest, auth, admin)
	api.PUT("/admin/rejectRequest/:name", h.Requests.RejectRequest, auth, admin)
	api.GET("/admin/allCustomRequest/:company", h.Requests.ListCustomRequests, auth, admin)
	api.PUT("/admin/approveCustomRequest/:name", h.Requests.ApproveCustomRequest, auth, admin)
	api.PUT("/admin/rejectCustomRequest/:name", h.Requests.RejectCustomRequest, auth, admin)
	api.GET("/admin/feed/:company", h.Feed.Feed, auth, admin)
}
