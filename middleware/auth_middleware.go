// middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/HSouheill/itam_backend/models"
)

// AdminChecker resolves the stored role and company of a user
type AdminChecker interface {
	AdminStatus(ctx context.Context, email string) (*models.AdminStatus, error)
}

// CompanyKey holds the company of the admin set by RequireAdmin
const CompanyKey = "company"

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, models.Response{
		Status:  http.StatusForbidden,
		Message: "forbidden access",
	})
}

// RequireSelf allows the request only when the authenticated email equals
// the named path parameter. Must run after RequireAuth.
func RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return unauthorized(c)
			}
			if !strings.EqualFold(claims.Email, c.Param(param)) {
				zap.S().Infow("identity mismatch", "path", c.Path(), "email", claims.Email)
				return forbidden(c)
			}
			return next(c)
		}
	}
}

// RequireAdmin allows the request only when the authenticated user is
// stored with the admin role and a company. A :company path parameter or
// ?company= query that names another company is rejected. Must run after
// RequireAuth.
func RequireAdmin(checker AdminChecker, timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return unauthorized(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			status, err := checker.AdminStatus(ctx, claims.Email)
			if err != nil {
				zap.S().Errorw("admin check failed", "email", claims.Email, "error", err)
				return c.JSON(http.StatusInternalServerError, models.Response{
					Status:  http.StatusInternalServerError,
					Message: "Internal server error",
				})
			}
			if !status.Admin || status.User == nil || status.User.Company == "" {
				return forbidden(c)
			}

			company := status.User.Company
			for _, requested := range []string{c.Param("company"), c.QueryParam("company")} {
				if requested != "" && requested != company {
					zap.S().Infow("cross company access denied", "path", c.Path(), "email", claims.Email, "company", requested)
					return forbidden(c)
				}
			}

			c.Set(CompanyKey, company)
			return next(c)
		}
	}
}

// AdminCompany returns the company stored by RequireAdmin, or ""
func AdminCompany(c echo.Context) string {
	company, _ := c.Get(CompanyKey).(string)
	return company
}
