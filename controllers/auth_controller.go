// controllers/auth_controller.go
package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/HSouheill/itam_backend/middleware"
	"github.com/HSouheill/itam_backend/services"
	"github.com/HSouheill/itam_backend/utils"
)

// CreateTokenRequest is the body of POST /create-token. idToken is required
// when a Firebase project is configured and its verified email wins.
type CreateTokenRequest struct {
	Email   string `json:"email" validate:"omitempty,email"`
	IDToken string `json:"idToken" validate:"omitempty,max=4096"`
}

// AuthController issues and clears the session cookie
type AuthController struct {
	tokens     *middleware.TokenManager
	identity   *services.IdentityService
	verifier   services.IdentityVerifier
	production bool
	timeout    time.Duration
}

// NewAuthController creates a new auth controller. verifier may be nil.
func NewAuthController(tokens *middleware.TokenManager, identity *services.IdentityService,
	verifier services.IdentityVerifier, production bool, timeout time.Duration) *AuthController {
	return &AuthController{
		tokens:     tokens,
		identity:   identity,
		verifier:   verifier,
		production: production,
		timeout:    timeout,
	}
}

func (ac *AuthController) tokenCookie(value string, maxAge int) *http.Cookie {
	cookie := new(http.Cookie)
	cookie.Name = middleware.TokenCookie
	cookie.Value = value
	cookie.Path = "/"
	cookie.MaxAge = maxAge
	cookie.HttpOnly = true
	if maxAge > 0 {
		cookie.Expires = time.Now().Add(time.Duration(maxAge) * time.Second)
	} else {
		cookie.Expires = time.Unix(0, 0)
	}
	if ac.production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteStrictMode
	}
	return cookie
}

// CreateToken signs a session token for the caller and sets it as cookie
func (ac *AuthController) CreateToken(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), ac.timeout)
	defer cancel()

	var req CreateTokenRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		return badRequest(c, err)
	}

	email := strings.TrimSpace(req.Email)
	if ac.verifier != nil {
		if req.IDToken == "" {
			return respond(c, http.StatusBadRequest, "idToken is required", nil)
		}
		verified, err := ac.verifier.VerifyEmail(ctx, req.IDToken)
		if err != nil {
			zap.S().Infow("identity token rejected", "error", err)
			return respondError(c, services.ErrUnauthenticated)
		}
		email = verified
	}
	if email == "" {
		return respond(c, http.StatusBadRequest, "email is required", nil)
	}

	status, err := ac.identity.AdminStatus(ctx, email)
	if err != nil {
		return respondError(c, err)
	}
	role := ""
	if status.User != nil {
		role = status.User.Role
	}

	token, _, err := ac.tokens.GenerateJWT(email, role)
	if err != nil {
		return respondError(c, err)
	}

	c.SetCookie(ac.tokenCookie(token, int(ac.tokens.TTL().Seconds())))
	return respond(c, http.StatusOK, "Token created successfully", map[string]bool{"success": true})
}

// ClearToken expires the cookie and revokes the token it carried
func (ac *AuthController) ClearToken(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), ac.timeout)
	defer cancel()

	if claims := ac.tokens.OptionalClaims(c); claims != nil {
		if err := ac.tokens.Revoke(ctx, claims); err != nil {
			zap.S().Warnw("failed to revoke token", "email", claims.Email, "error", err)
		}
	}

	c.SetCookie(ac.tokenCookie("", -1))
	return respond(c, http.StatusOK, "Token cleared successfully", map[string]bool{"success": true})
}
