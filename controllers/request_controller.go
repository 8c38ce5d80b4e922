// controllers/request_controller.go
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

// RequestController handles asset and custom requests
type RequestController struct {
	requests *services.RequestService
	timeout  time.Duration
}

// NewRequestController creates a new request controller
func NewRequestController(requests *services.RequestService, timeout time.Duration) *RequestController {
	return &RequestController{requests: requests, timeout: timeout}
}

// ListRequests lists the requests of a company, optionally searched by ?search=
func (rc *RequestController) ListRequests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), rc.timeout)
	defer cancel()

	requests, err := rc.requests.ListRequests(ctx, c.Param("company"), c.QueryParam("search"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Requests retrieved successfully", requests)
}

// ApproveRequest approves the oldest pending request with the given name
// and takes one unit out of stock
func (rc *RequestController) ApproveRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), rc.timeout)
	defer cancel()

	approval, err := rc.requests.ApproveRequest(ctx, c.Param("name"), middleware.AdminCompany(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Request approved successfully", approval)
}

// RejectRequest rejects the oldest pending request with the given name
func (rc *RequestController) RejectRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), rc.timeout)
	defer cancel()

	request, err := rc.requests.RejectRequest(ctx, c.Param("name"), middleware.AdminCompany(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Request rejected successfully", request)
}

// ListCustomRequests lists the custom requests of a company
func (rc *RequestController) ListCustomRequests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), rc.timeout)
	defer cancel()

	requests, err := rc.requests.ListCustomRequests(ctx, c.Param("company"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Custom requests retrieved successfully", requests)
}

// ApproveCustomRequest adds the body as a new asset and approves the custom request
func (rc *RequestController) ApproveCustomRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), rc.timeout)
	defer cancel()

	var in models.AssetInput
	if err := utils.BindAndValidate(c, &in); err != nil {
		return badRequest(c, err)
	}
	company := middleware.AdminCompany(c)
	if !scopeCompany(&in.Company, company) {
		return respondError(c, services.ErrForbidden)
	}

	approval, err := rc.requests.ApproveCustomRequest(ctx, c.Param("name"), company, in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Custom request approved successfully", approval)
}

// RejectCustomRequest rejects a pending custom request
func (rc *RequestController) RejectCustomRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), rc.timeout)
	defer cancel()

	request, err := rc.requests.RejectCustomRequest(ctx, c.Param("name"), middleware.AdminCompany(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Custom request rejected successfully", request)
}

// MakeAssetRequest files a request for a catalog asset in the caller's name
func (rc *RequestController) MakeAssetRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), rc.timeout)
	defer cancel()

	var in models.RequestInput
	if err := utils.Bind(c, &in); err != nil {
		return badRequest(c, err)
	}
	if claims := middleware.GetClaims(c); claims != nil {
		in.RequesterEmail = claims.Email
	}
	if err := c.Validate(&in); err != nil {
		return badRequest(c, err)
	}

	request, err := rc.requests.CreateRequest(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Request created successfully", models.InsertResult{InsertedID: request.ID})
}

// MakeCustomRequest files a request for an asset outside the catalog in the caller's name
func (rc *RequestController) MakeCustomRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), rc.timeout)
	defer cancel()

	var in models.CustomRequestInput
	if err := utils.Bind(c, &in); err != nil {
		return badRequest(c, err)
	}
	if claims := middleware.GetClaims(c); claims != nil {
		in.RequesterEmail = claims.Email
	}
	if err := c.Validate(&in); err != nil {
		return badRequest(c, err)
	}

	request, err := rc.requests.CreateCustomRequest(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Custom request created successfully", models.InsertResult{InsertedID: request.ID})
}

// UpdateCustomRequest patches the custom request identified by requester and ?date=
func (rc *RequestController) UpdateCustomRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), rc.timeout)
	defer cancel()

	var patch models.CustomRequestUpdate
	if err := utils.BindStrict(c, &patch); err != nil {
		return badRequest(c, err)
	}

	result, err := rc.requests.UpdateCustomRequest(ctx, c.Param("email"), c.QueryParam("date"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Custom request updated successfully", result)
}
