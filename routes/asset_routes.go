package routes

import (
	"github.com/labstack/echo/v4"
)

// RegisterAssetRoutes sets up the asset catalog routes
func RegisterAssetRoutes(api *echo.Group, h *Handlers) {
	auth := h.requireAuth()
	admin := h.requireAdmin()

	api.GET("/allAssets/:company", h.Assets.ListAssets, auth)
	api.GET("/admin/allAssets/:id", h.Assets.GetAsset, auth)
	api.GET("/admin/assetLabel/:id", h.Assets.AssetLabel, auth)
	api.GET("/admin/lowStock/:company", h.Assets.LowStock, auth)
	api.GET("/admin/topRequested/:company", h.Assets.TopRequested, auth)

	api.POST("/admin/addAnAsset", h.Assets.AddAsset, auth, admin)
	api.PATCH("/admin/updateAnAsset/:id", h.Assets.UpdateAsset, auth, admin)
	api.DELETE("/admin/deleteAsset/:id", h.Assets.DeleteAsset, auth, admin)
}
