// controllers/response.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/services"
)

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, models.Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

func badRequest(c echo.Context, err error) error {
	return respond(c, http.StatusBadRequest, err.Error(), nil)
}

// respondError maps service errors to the response envelope. Unexpected
// errors are logged and hidden behind a generic message.
func respondError(c echo.Context, err error) error {
	var verr *services.ValidationError
	var perr *services.PaymentProviderError

	switch {
	case errors.As(err, &verr):
		return respond(c, http.StatusBadRequest, verr.Message, nil)
	case errors.Is(err, services.ErrUnauthenticated):
		return respond(c, http.StatusUnauthorized, "Unauthorized", nil)
	case errors.Is(err, services.ErrForbidden):
		return respond(c, http.StatusForbidden, "forbidden access", nil)
	case errors.Is(err, services.ErrNotFound):
		return respond(c, http.StatusNotFound, err.Error(), nil)
	case services.IsConflict(err):
		return respond(c, http.StatusConflict, err.Error(), nil)
	case errors.As(err, &perr):
		return respond(c, http.StatusBadGateway, "Payment provider error", nil)
	}

	zap.S().Errorw("request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"error", err)
	return respond(c, http.StatusInternalServerError, "Internal server error", nil)
}

// scopeCompany defaults an empty body company to the admin's company and
// reports false when the body names another one
func scopeCompany(bodyCompany *string, adminCompany string) bool {
	if *bodyCompany == "" {
		*bodyCompany = adminCompany
	}
	return *bodyCompany == adminCompany
}
