// controllers/stats_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/itam_backend/services"
)

// StatsController serves the dashboard composites
type StatsController struct {
	stats   *services.StatsService
	timeout time.Duration
}

func NewStatsController(stats *services.StatsService, timeout time.Duration) *StatsController {
	return &StatsController{stats: stats, timeout: timeout}
}

// UserHomeStats returns the member dashboard
func (sc *StatsController) UserHomeStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), sc.timeout)
	defer cancel()

	stats, err := sc.stats.UserHomeStats(ctx, c.Param("email"), c.QueryParam("company"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "User stats retrieved successfully", stats)
}

// AdminHomeStatus returns the admin dashboard of a company
func (sc *StatsController) AdminHomeStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), sc.timeout)
	defer cancel()

	stats, err := sc.stats.AdminHomeStats(ctx, c.Param("company"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Admin stats retrieved successfully", stats)
}
