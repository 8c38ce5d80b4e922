// controllers/asset_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/HSouheill/itam_backend/middleware"
	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/services"
	"github.com/HSouheill/itam_backend/utils"
)

// AssetController serves the asset catalog
type AssetController struct {
	assets  *services.AssetService
	timeout time.Duration
}

// NewAssetController creates a new asset controller
func NewAssetController(assets *services.AssetService, timeout time.Duration) *AssetController {
	return &AssetController{assets: assets, timeout: timeout}
}

// ListAssets lists the assets of a company, optionally searched by ?name=
func (ac *AssetController) ListAssets(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), ac.timeout)
	defer cancel()

	assets, err := ac.assets.ListAssets(ctx, c.Param("company"), c.QueryParam("name"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Assets retrieved successfully", assets)
}

// GetAsset returns one asset
func (ac *AssetController) GetAsset(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), ac.timeout)
	defer cancel()

	asset, err := ac.assets.GetAsset(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Asset retrieved successfully", asset)
}

// AssetLabel returns the PNG QR label of an asset
func (ac *AssetController) AssetLabel(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), ac.timeout)
	defer cancel()

	png, err := ac.assets.AssetLabel(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set("Content-Disposition", "inline; filename=asset-"+c.Param("id")+".png")
	return c.Blob(http.StatusOK, "image/png", png)
}

// AddAsset creates an asset in the admin's company
func (ac *AssetController) AddAsset(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), ac.timeout)
	defer cancel()

	var in models.AssetInput
	if err := utils.BindAndValidate(c, &in); err != nil {
		return badRequest(c, err)
	}
	if !scopeCompany(&in.Company, middleware.AdminCompany(c)) {
		return respondError(c, services.ErrForbidden)
	}

	asset, err := ac.assets.AddAsset(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Asset added successfully", models.InsertResult{InsertedID: asset.ID})
}

// UpdateAsset patches the allow-listed asset fields
func (ac *AssetController) UpdateAsset(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), ac.timeout)
	defer cancel()

	var patch models.AssetUpdate
	if err := utils.BindStrict(c, &patch); err != nil {
		return badRequest(c, err)
	}

	result, err := ac.assets.UpdateAsset(ctx, middleware.AdminCompany(c), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Asset updated successfully", result)
}

// DeleteAsset removes an asset
func (ac *AssetController) DeleteAsset(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), ac.timeout)
	defer cancel()

	result, err := ac.assets.DeleteAsset(ctx, middleware.AdminCompany(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Asset deleted successfully", result)
}

// LowStock lists the company assets running out
func (ac *AssetController) LowStock(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), ac.timeout)
	defer cancel()

	assets, err := ac.assets.LowStock(ctx, c.Param("company"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Low stock assets retrieved successfully", assets)
}

// TopRequested ranks the company assets by request count, ?limit= defaults to 4
func (ac *AssetController) TopRequested(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), ac.timeout)
	defer cancel()

	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := cast.ToInt64E(raw)
		if err != nil || n <= 0 {
			return respond(c, http.StatusBadRequest, "limit must be a positive integer", nil)
		}
		limit = n
	}

	assets, err := ac.assets.TopRequested(ctx, c.Param("company"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Top requested assets retrieved successfully", assets)
}
