package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMiddlewareCountsByRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/v1/allAssets/:company", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	before := counterValue(t, httpRequests.WithLabelValues(http.MethodGet, "/api/v1/allAssets/:company", "200"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/allAssets/Acme", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	after := counterValue(t, httpRequests.WithLabelValues(http.MethodGet, "/api/v1/allAssets/:company", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordTransition(t *testing.T) {
	before := counterValue(t, transitions.WithLabelValues("request", "approved"))
	RecordTransition("request", "approved")
	assert.Equal(t, before+1, counterValue(t, transitions.WithLabelValues("request", "approved")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordPaymentIntent(true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "itam_payments_intents_total")
}
