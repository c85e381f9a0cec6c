package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/megamounds/sitetrack-api/internal/metrics"
)

func TestMetrics_OneSeriesPerRoute(t *testing.T) {
	app := drift.New()
	app.Use(Metrics())
	app.Get("/api/v1/projects/:id/snapshot", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, nil)
	})

	before := testutil.CollectAndCount(metrics.HTTPRequestDuration)
	for _, id := range []string{"6f1c2d4e-8a7b-4c3d-9e2f-1a0b9c8d7e6f", "0b7e3a52-1c44-4f0e-a9d1-5e2b8c7f6a90"} {
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+id+"/snapshot", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, before+1, testutil.CollectAndCount(metrics.HTTPRequestDuration))
}
