package routes

import (
	"github.com/labstack/echo/v4"
)

// RegisterPaymentRoutes sets up card payment and payment log routes
func RegisterPaymentRoutes(api *echo.Group, h *Handlers) {
	auth := h.requireAuth()

	api.POST("/create-payment-intent", h.Payments.CreatePaymentIntent, auth)
	api.POST("/payments", h.Payments.RecordPayment, auth)
	api.GET("/payments", h.Payments.ListPayments, auth)
}
