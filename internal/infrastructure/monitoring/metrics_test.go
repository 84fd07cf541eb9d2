package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstancesDoNotCollide(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordPlan("full", 4)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.PlansTotal.WithLabelValues("full")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.PlansTotal.WithLabelValues("full")))
}

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/items/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/items/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestAdvisorMetrics(t *testing.T) {
	m := NewMetrics()

	NewTimer(m, "insights").Stop("success")
	m.RecordAdvisorFallback("schedule", "breaker_open")
	m.RecordAdvisorCache(true)
	m.RecordAdvisorCache(false)
	m.RecordAdvisorCache(false)
	m.SetBreakerState("advisor", 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdvisorCalls.WithLabelValues("insights", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdvisorFallbacks.WithLabelValues("schedule", "breaker_open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdvisorCache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AdvisorCache.WithLabelValues("miss")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("advisor")))
}

func TestTimerWithoutMetrics(t *testing.T) {
	assert.NotPanics(t, func() { NewTimer(nil, "insights").Stop("success") })
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordPlan("blueprint", 6, 6)
	m.RecordExport("svg")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `planner_plans_total{kind="blueprint"} 1`)
	assert.Contains(t, string(body), `planner_rooms_per_floor_count 2`)
	assert.Contains(t, string(body), `planner_exports_total{format="svg"} 1`)
	assert.Contains(t, string(body), "planner_uptime_seconds")
	assert.Contains(t, string(body), "go_goroutines")
}
