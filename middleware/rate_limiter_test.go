package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.SetEndpointLimit("/api/v1/create-token", rate.Every(time.Hour), 2)

	e := echo.New()
	e.POST("/api/v1/create-token", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, limiter.RateLimit())
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, limiter.RateLimit())

	codes := []int{}
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/create-token", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCleanupRemovesExpiredBlocks(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.blockedIPs["1.2.3.4"] = time.Now().Add(-time.Minute)
	limiter.blockedIPs["5.6.7.8"] = time.Now().Add(time.Minute)

	limiter.cleanupBlockedIPs(time.Now())

	assert.NotContains(t, limiter.blockedIPs, "1.2.3.4")
	assert.Contains(t, limiter.blockedIPs, "5.6.7.8")
}
