package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories/memstore"
)

const testSecret = "test-secret"

func protectedServer(m *TokenManager, mws ...echo.MiddlewareFunc) (*echo.Echo, *int) {
	e := echo.New()
	calls := 0
	chain := append([]echo.MiddlewareFunc{m.RequireAuth()}, mws...)
	e.PATCH("/users/admin/:email", func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, GetClaims(c).Email)
	}, chain...)
	return e, &calls
}

func do(e *echo.Echo, path string, setup func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, path, nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func withCookie(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	}
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, nil)
	e, calls := protectedServer(m)

	rec := do(e, "/users/admin/a@acme.com", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, *calls)
}

func TestRequireAuthAcceptsCookieAndBearer(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, nil)
	e, calls := protectedServer(m)
	token, _, err := m.GenerateJWT("a@acme.com", "admin")
	require.NoError(t, err)

	rec := do(e, "/users/admin/a@acme.com", withCookie(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@acme.com", rec.Body.String())

	rec = do(e, "/users/admin/a@acme.com", func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, *calls)
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, nil)
	e, calls := protectedServer(m)

	other := NewTokenManager("another-secret", time.Hour, nil)
	forged, _, err := other.GenerateJWT("a@acme.com", "")
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &JwtCustomClaims{
		Email:          "a@acme.com",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	})
	expiredToken, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &JwtCustomClaims{Email: "a@acme.com"})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"forged":  forged,
		"expired": expiredToken,
		"none":    noneToken,
		"garbage": "not.a.jwt",
	} {
		rec := do(e, "/users/admin/a@acme.com", withCookie(token))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
	assert.Equal(t, 0, *calls)
}

func TestRevokedTokenIsRejected(t *testing.T) {
	store := memstore.New()
	m := NewTokenManager(testSecret, time.Hour, store.Blacklist())
	e, calls := protectedServer(m)

	token, claims, err := m.GenerateJWT("a@acme.com", "")
	require.NoError(t, err)
	require.NoError(t, m.Revoke(context.Background(), claims))

	rec := do(e, "/users/admin/a@acme.com", withCookie(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, *calls)
}

func TestRequireSelf(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, nil)
	e, calls := protectedServer(m, RequireSelf("email"))
	token, _, err := m.GenerateJWT("a@acme.com", "")
	require.NoError(t, err)

	rec := do(e, "/users/admin/b@acme.com", withCookie(token))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, "/users/admin/A@acme.com", withCookie(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)
}

type stubChecker struct {
	users map[string]*models.User
	err   error
}

func (s stubChecker) AdminStatus(ctx context.Context, email string) (*models.AdminStatus, error) {
	if s.err != nil {
		return nil, s.err
	}
	user := s.users[email]
	return &models.AdminStatus{Admin: user.IsAdmin(), User: user}, nil
}

var acmeChecker = stubChecker{users: map[string]*models.User{
	"boss@acme.com":  {Email: "boss@acme.com", Role: models.RoleAdmin, Company: "acme"},
	"dev@acme.com":   {Email: "dev@acme.com", Role: models.RoleMember, Company: "acme"},
	"boss@other.com": {Email: "boss@other.com", Role: models.RoleAdmin, Company: "other"},
	"lone@admin.com": {Email: "lone@admin.com", Role: models.RoleAdmin},
}}

func TestRequireAdmin(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, nil)
	e, calls := protectedServer(m, RequireAdmin(acmeChecker, time.Second))

	member, _, err := m.GenerateJWT("dev@acme.com", "")
	require.NoError(t, err)
	boss, _, err := m.GenerateJWT("boss@acme.com", "admin")
	require.NoError(t, err)
	lone, _, err := m.GenerateJWT("lone@admin.com", "admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(e, "/users/admin/x", withCookie(member)).Code)
	assert.Equal(t, http.StatusForbidden, do(e, "/users/admin/x", withCookie(lone)).Code)
	assert.Equal(t, http.StatusOK, do(e, "/users/admin/x", withCookie(boss)).Code)
	assert.Equal(t, 1, *calls)

	failing, calls := protectedServer(m, RequireAdmin(stubChecker{err: errors.New("db down")}, time.Second))
	assert.Equal(t, http.StatusInternalServerError, do(failing, "/users/admin/x", withCookie(boss)).Code)
	assert.Equal(t, 0, *calls)
}

func TestRequireAdminStaysInOwnCompany(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, nil)
	e := echo.New()
	var seen []string
	handler := func(c echo.Context) error {
		seen = append(seen, AdminCompany(c))
		return c.NoContent(http.StatusOK)
	}
	guards := []echo.MiddlewareFunc{m.RequireAuth(), RequireAdmin(acmeChecker, time.Second)}
	e.GET("/admin/allRequest/:company", handler, guards...)
	e.PUT("/admin/approveRequest/:name", handler, guards...)

	other, _, err := m.GenerateJWT("boss@other.com", "admin")
	require.NoError(t, err)
	boss, _, err := m.GenerateJWT("boss@acme.com", "admin")
	require.NoError(t, err)

	call := func(method, path, token string) int {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusForbidden, call(http.MethodGet, "/admin/allRequest/acme", other))
	assert.Equal(t, http.StatusForbidden, call(http.MethodPut, "/admin/approveRequest/Laptop?company=acme", other))
	assert.Empty(t, seen)

	assert.Equal(t, http.StatusOK, call(http.MethodGet, "/admin/allRequest/acme", boss))
	assert.Equal(t, http.StatusOK, call(http.MethodPut, "/admin/approveRequest/Laptop", other))
	assert.Equal(t, []string{"acme", "other"}, seen)
}
