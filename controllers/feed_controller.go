// controllers/feed_controller.go
package controllers

import (
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/itam_backend/middleware"
	"github.com/HSouheill/itam_backend/websocket"
)

// FeedController streams request events of a company over websocket
type FeedController struct {
	hub *websocket.Hub
}

func NewFeedController(hub *websocket.Hub) *FeedController {
	return &FeedController{hub: hub}
}

// Feed upgrades the connection and subscribes it to the company feed
func (fc *FeedController) Feed(c echo.Context) error {
	email := ""
	if claims := middleware.GetClaims(c); claims != nil {
		email = claims.Email
	}
	return websocket.HandleFeed(c, fc.hub, c.Param("company"), email)
}
