// middleware/jwt_middleware.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories"
)

// TokenCookie is the name of the session cookie
const TokenCookie = "token"

// Context keys set by RequireAuth
const (
	ClaimsKey = "claims"
	EmailKey  = "email"
)

// JwtCustomClaims for JWT token. The standard Id field carries the token id
// used for revocation.
type JwtCustomClaims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.StandardClaims
}

// TokenManager issues, verifies and revokes session tokens
type TokenManager struct {
	secret    []byte
	ttl       time.Duration
	blacklist repositories.TokenBlacklist
}

// NewTokenManager creates a token manager. blacklist may be nil, which
// disables revocation.
func NewTokenManager(secret string, ttl time.Duration, blacklist repositories.TokenBlacklist) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, blacklist: blacklist}
}

// TTL is the lifetime of issued tokens
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// GenerateJWT signs a new token for the given subject
func (m *TokenManager) GenerateJWT(email, role string) (string, *JwtCustomClaims, error) {
	now := time.Now()
	claims := &JwtCustomClaims{
		Email: email,
		Role:  role,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   email,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

// ParseToken verifies signature, algorithm and expiry
func (m *TokenManager) ParseToken(tokenString string) (*JwtCustomClaims, error) {
	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Email == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Revoke blacklists the token until it would have expired anyway
func (m *TokenManager) Revoke(ctx context.Context, claims *JwtCustomClaims) error {
	if m.blacklist == nil || claims == nil || claims.Id == "" {
		return nil
	}
	return m.blacklist.Revoke(ctx, claims.Id, time.Unix(claims.ExpiresAt, 0))
}

func (m *TokenManager) isRevoked(ctx context.Context, claims *JwtCustomClaims) bool {
	if m.blacklist == nil || claims.Id == "" {
		return false
	}
	revoked, err := m.blacklist.IsRevoked(ctx, claims.Id)
	if err != nil {
		// revocation store outage must not lock every user out
		zap.S().Warnw("token revocation check failed", "error", err)
		return false
	}
	return revoked
}

// ExtractToken reads the session cookie, falling back to a Bearer header
func ExtractToken(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, models.Response{
		Status:  http.StatusUnauthorized,
		Message: "Unauthorized",
	})
}

// RequireAuth rejects the request with 401 unless it carries a valid,
// unrevoked token. The next handler never runs on failure.
func (m *TokenManager) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := ExtractToken(c)
			if tokenString == "" {
				return unauthorized(c)
			}

			claims, err := m.ParseToken(tokenString)
			if err != nil {
				zap.S().Debugw("JWT middleware error", "path", c.Path(), "error", err)
				return unauthorized(c)
			}
			if m.isRevoked(c.Request().Context(), claims) {
				return unauthorized(c)
			}

			c.Set(ClaimsKey, claims)
			c.Set(EmailKey, claims.Email)
			return next(c)
		}
	}
}

// GetClaims returns the claims stored by RequireAuth, or nil
func GetClaims(c echo.Context) *JwtCustomClaims {
	claims, _ := c.Get(ClaimsKey).(*JwtCustomClaims)
	return claims
}

// OptionalClaims verifies the token of a request that may or may not carry one
func (m *TokenManager) OptionalClaims(c echo.Context) *JwtCustomClaims {
	tokenString := ExtractToken(c)
	if tokenString == "" {
		return nil
	}
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return nil
	}
	return claims
}
