// controllers/user_controller.go
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

// UserController contains user management logic
type UserController struct {
	identity *services.IdentityService
	timeout  time.Duration
}

// NewUserController creates a new user controller
func NewUserController(identity *services.IdentityService, timeout time.Duration) *UserController {
	return &UserController{identity: identity, timeout: timeout}
}

// GetUsers lists all users
func (uc *UserController) GetUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), uc.timeout)
	defer cancel()

	users, err := uc.identity.ListUsers(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Users retrieved successfully", users)
}

// RegisterUser creates the user unless the email is already known
func (uc *UserController) RegisterUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), uc.timeout)
	defer cancel()

	var req models.RegisterUserRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		return badRequest(c, err)
	}

	result, created, err := uc.identity.RegisterUser(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	if !created {
		return respond(c, http.StatusOK, "user already exists", result)
	}
	return respond(c, http.StatusCreated, "User created successfully", result)
}

// GetAdminStatus reports whether the user is an admin
func (uc *UserController) GetAdminStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), uc.timeout)
	defer cancel()

	status, err := uc.identity.AdminStatus(ctx, c.Param("email"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Admin status retrieved successfully", status)
}

// UpdatePackage sets the subscription package of the caller
func (uc *UserController) UpdatePackage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), uc.timeout)
	defer cancel()

	var pkg models.Package
	if err := utils.BindStrict(c, &pkg); err != nil {
		return badRequest(c, err)
	}

	result, err := uc.identity.UpdatePackage(ctx, c.Param("email"), pkg)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Package updated successfully", result)
}

// UpdateProfile patches name, photo and date of birth
func (uc *UserController) UpdateProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), uc.timeout)
	defer cancel()

	var patch models.ProfileUpdate
	if err := utils.BindStrict(c, &patch); err != nil {
		return badRequest(c, err)
	}

	result, err := uc.identity.UpdateProfile(ctx, c.Param("email"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Profile updated successfully", result)
}

// AddToTeam sets team fields on a member
func (uc *UserController) AddToTeam(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), uc.timeout)
	defer cancel()

	var patch models.TeamUpdate
	if err := utils.BindStrict(c, &patch); err != nil {
		return badRequest(c, err)
	}

	result, err := uc.identity.AddToTeam(ctx, middleware.AdminCompany(c), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Member added to team", result)
}

// RemoveFromTeam unsets the team fields named by the body keys
func (uc *UserController) RemoveFromTeam(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), uc.timeout)
	defer cancel()

	fields, err := utils.BindKeys(c)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := uc.identity.RemoveFromTeam(ctx, middleware.AdminCompany(c), c.Param("id"), fields)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Member removed from team", result)
}
