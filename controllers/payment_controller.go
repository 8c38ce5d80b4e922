// controllers/payment_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/itam_backend/middleware"
	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/services"
	"github.com/HSouheill/itam_backend/utils"
)

// PaymentController handles card payments for packages
type PaymentController struct {
	payments *services.PaymentService
	timeout  time.Duration
}

// NewPaymentController creates a new payment controller
func NewPaymentController(payments *services.PaymentService, timeout time.Duration) *PaymentController {
	return &PaymentController{payments: payments, timeout: timeout}
}

// CreatePaymentIntent starts a card payment for the given price in dollars.
// The service applies its own provider timeout.
func (pc *PaymentController) CreatePaymentIntent(c echo.Context) error {
	var req models.PaymentIntentRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		return badRequest(c, err)
	}

	intent, err := pc.payments.CreatePaymentIntent(c.Request().Context(), req.Price)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Payment intent created successfully", intent)
}

// RecordPayment appends a completed payment to the log
func (pc *PaymentController) RecordPayment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pc.timeout)
	defer cancel()

	var in models.PaymentInput
	if err := utils.BindAndValidate(c, &in); err != nil {
		return badRequest(c, err)
	}

	payment, err := pc.payments.RecordPayment(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Payment recorded successfully", models.InsertResult{InsertedID: payment.ID})
}

// ListPayments returns the payment history of the caller
func (pc *PaymentController) ListPayments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pc.timeout)
	defer cancel()

	claims := middleware.GetClaims(c)
	if claims == nil {
		return respondError(c, services.ErrUnauthenticated)
	}

	payments, err := pc.payments.ListPayments(ctx, claims.Email)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Payments retrieved successfully", payments)
}
