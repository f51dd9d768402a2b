package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerMetrics(t *testing.T) {
	m := NewServerMetrics("test", prometheus.NewRegistry())

	m.Requests.WithLabelValues("GET", "/api/v1/products/selling", "200").Inc()
	m.Requests.WithLabelValues("GET", "/api/v1/products/selling", "200").Inc()
	m.LatencyMS.WithLabelValues("GET", "/api/v1/products/selling").Observe(12)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cafe_test_http_requests_total{method="GET",route="/api/v1/products/selling",status="200"} 2`)
	assert.Contains(t, string(body), "cafe_test_http_request_duration_ms")
}
