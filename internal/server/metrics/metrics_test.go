package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

func scrape(t *testing.T, r http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestDomainCounters(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.DiagnosticInterpreted(models.StatusHigh)
	m.DiagnosticInterpreted(models.StatusHigh)
	m.SafetyAlertRaised("Brucellosis")
	m.GVACalculated()
	m.RationCalculated(models.SpeciesCattle)

	body := scrape(t, m.Handler())
	assert.Contains(t, body, `slc_diagnostics_interpreted_total{status="high"} 2`)
	assert.Contains(t, body, `slc_safety_alerts_total{disease="Brucellosis"} 1`)
	assert.Contains(t, body, "slc_gva_calculations_total 1")
	assert.Contains(t, body, `slc_ration_calculations_total{species="cattle"} 1`)
}

func TestMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, err := New()
	require.NoError(t, err)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/animals/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/animals/a1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	body := scrape(t, m.Handler())
	assert.Contains(t, body, `slc_http_requests_total{method="GET",route="/animals/:id",status="204"} 1`)
	assert.Contains(t, body, `slc_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}
