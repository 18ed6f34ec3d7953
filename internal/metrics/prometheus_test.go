package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.IncQuotes("predict", 1)
	m.IncQuotes("simulate", 5)
	m.IncQuotes("simulate", 5)
	m.IncQuoteErrors("explain", "invalid_features")
	m.IncFareFallback("Delhi_Mumbai", "First")
	m.IncFareFallback("Delhi_Mumbai", "First")

	assert.Equal(t, int64(1), m.QuotesTotal("predict"))
	assert.Equal(t, int64(10), m.QuotesTotal("simulate"))
	assert.Equal(t, int64(1), m.QuoteErrors("explain", "invalid_features"))
	assert.Equal(t, int64(2), m.FareFallbacks("Delhi_Mumbai", "First"))
	assert.Zero(t, m.QuotesTotal("search"))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncQuotes("predict", 3)
	m.IncFareFallback("Goa_Pune", "Economy")
	m.SetCircuitBreakerState("predictor", 1)
	m.SetQuoteLatency("predict", 1500*time.Microsecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `airfare_quotes_total{operation="predict"} 3`)
	assert.Contains(t, body, `airfare_fare_fallbacks_total{class="Economy",route="Goa_Pune"} 1`)
	assert.Contains(t, body, `airfare_circuit_breaker_state{name="predictor"} 1`)
	assert.Contains(t, body, `airfare_quote_latency_ms{operation="predict"} 1.5`)
	assert.Contains(t, body, "airfare_rate_limited_total 0")
}
