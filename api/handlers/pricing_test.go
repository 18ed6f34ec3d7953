package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/airfare-pricer/api/middleware"
	"github.com/OldStager01/airfare-pricer/internal/events"
	"github.com/OldStager01/airfare-pricer/internal/faretable"
	"github.com/OldStager01/airfare-pricer/internal/metrics"
	"github.com/OldStager01/airfare-pricer/internal/normalize"
	"github.com/OldStager01/airfare-pricer/internal/predictor"
	"github.com/OldStager01/airfare-pricer/internal/pricing"
	"github.com/OldStager01/airfare-pricer/internal/resilience"
	"github.com/OldStager01/airfare-pricer/internal/search"
	"github.com/OldStager01/airfare-pricer/internal/simulation"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	metrics *metrics.Metrics
	bus     *events.EventBus
}

func newTestServer(t *testing.T, p predictor.Predictor) *testServer {
	t.Helper()

	m := metrics.New()
	bus := events.NewEventBus(32)
	t.Cleanup(bus.Close)

	engine := pricing.NewEngine(faretable.NewDefault(), p, pricing.WithMetrics(m))
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	h := NewPricingHandler(PricingHandlerConfig{
		Engine:     engine,
		Runner:     simulation.NewRunner(engine, simulation.Config{}),
		Search:     search.New(engine, search.DefaultConfig(), rand.New(rand.NewSource(7))),
		Normalizer: normalize.New(func() time.Time { return now }),
		Publisher:  events.NewPublisher(bus),
		Metrics:    m,
	})
	health := NewHealthHandler(p)

	r := gin.New()
	r.Use(middleware.TraceID())
	r.GET("/", health.Root)
	r.GET("/health", health.Health)
	r.POST("/predict", h.Predict)
	r.POST("/simulate", h.Simulate)
	r.POST("/simulate/seats", h.SimulateSeats)
	r.POST("/simulate/demand", h.SimulateDemand)
	r.POST("/explain", h.Explain)
	r.POST("/search", h.Search)

	return &testServer{router: r, metrics: m, bus: bus}
}

func (s *testServer) post(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TraceIDHeader, "trace-1")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func flightBody() map[string]interface{} {
	return map[string]interface{}{
		"airline":        "IndiGo",
		"route":          "Delhi_Mumbai",
		"departure_time": "Morning",
		"arrival_time":   "Afternoon",
		"class_":         "Economy",
		"days_left":      10,
		"duration":       2.1,
		"stops":          0,
		"seats_left":     10,
		"demand_index":   1.0,
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, predictor.Static(1))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"backend working, model loaded"}`, w.Body.String())
}

func TestPredict(t *testing.T) {
	tests := []struct {
		name     string
		class    string
		route    string
		baseFare float64
	}{
		{"table hit", "Economy", "Delhi_Mumbai", 5000},
		{"business", "Business", "Delhi_Bangalore", 14000},
		{"unknown class falls back", "First", "Delhi_Mumbai", 5000},
		{"unknown route falls back", "Economy", "Pune_Goa", 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, predictor.Static(1.1))
			body := flightBody()
			body["class_"] = tt.class
			body["route"] = tt.route

			w := s.post(t, "/predict", body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			resp := decode[PredictResponse](t, w)
			assert.Equal(t, tt.route, resp.Route)
			assert.Equal(t, tt.class, resp.Class)
			assert.Equal(t, tt.baseFare, resp.BaseFare)
			assert.Equal(t, 1.1, resp.PriceMultiplier)
			// No seat or demand factor even though seats_left=10.
			assert.InDelta(t, tt.baseFare*1.1, resp.FinalPrice, 0.005)
		})
	}
}

func TestPredict_PublishesQuote(t *testing.T) {
	s := newTestServer(t, predictor.Static(1.2))
	ch := s.bus.Subscribe(models.EventTypeQuoteComputed)

	w := s.post(t, "/predict", flightBody())
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case ev := <-ch:
		assert.Equal(t, "Delhi_Mumbai", ev.Route)
		assert.Equal(t, "trace-1", ev.TraceID)
		quote, ok := ev.Data.(*models.QuoteEvent)
		require.True(t, ok)
		assert.Equal(t, models.OperationPredict, quote.Operation)
	case <-time.After(time.Second):
		t.Fatal("no quote event published")
	}

	assert.Equal(t, int64(1), s.metrics.QuotesTotal("predict"))
}

func TestPredict_RequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
		status int
	}{
		{"missing airline", func(b map[string]interface{}) { delete(b, "airline") }, http.StatusBadRequest},
		{"bad route", func(b map[string]interface{}) { b["route"] = "DelhiMumbai" }, http.StatusBadRequest},
		{"zero days left", func(b map[string]interface{}) { b["days_left"] = 0 }, http.StatusBadRequest},
		{"negative seats", func(b map[string]interface{}) { b["seats_left"] = -1 }, http.StatusBadRequest},
		{"hour out of range", func(b map[string]interface{}) { b["departure_hour"] = 24 }, http.StatusBadRequest},
		{"missing bucket", func(b map[string]interface{}) { delete(b, "arrival_time") }, http.StatusBadRequest},
		{"malformed date", func(b map[string]interface{}) { b["travel_date"] = "01/02/2025" }, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, predictor.Static(1))
			body := flightBody()
			tt.mutate(body)

			w := s.post(t, "/predict", body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestPredict_NormalizesHoursAndDate(t *testing.T) {
	var seen models.FlightFeatures
	p := predictor.Func(func(_ context.Context, f models.FlightFeatures) (float64, error) {
		seen = f
		return 1, nil
	})
	s := newTestServer(t, p)

	body := flightBody()
	body["departure_hour"] = 5
	body["arrival_hour"] = 18
	body["travel_date"] = "2025-01-08"

	w := s.post(t, "/predict", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, models.BucketEarlyMorning, seen.DepartureTime)
	assert.Equal(t, models.BucketEvening, seen.ArrivalTime)
	assert.Equal(t, 1, seen.DaysLeft, "past dates clamp to 1")
}

func TestPredict_PredictorErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid features", fmt.Errorf("%w: unknown airline", predictor.ErrInvalidFeatures), http.StatusUnprocessableEntity},
		{"circuit open", resilience.ErrCircuitOpen, http.StatusServiceUnavailable},
		{"model failure", predictor.ErrPredictionFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := predictor.Func(func(context.Context, models.FlightFeatures) (float64, error) {
				return 0, tt.err
			})
			s := newTestServer(t, p)

			for _, path := range []string{"/predict", "/simulate", "/simulate/seats", "/simulate/demand"} {
				w := s.post(t, path, flightBody())
				assert.Equal(t, tt.status, w.Code, path)
				assert.NotContains(t, w.Body.String(), "final_price", path)
			}
		})
	}
}

func TestSimulate(t *testing.T) {
	s := newTestServer(t, predictor.Static(1.1))

	w := s.post(t, "/simulate", flightBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[SimulateResponse](t, w)
	assert.Equal(t, "Delhi_Mumbai", resp.Route)
	require.Len(t, resp.Simulation, 5)

	days := make([]int, len(resp.Simulation))
	for i, p := range resp.Simulation {
		days[i] = p.DaysLeft
		assert.InDelta(t, 5500, p.Price, 0.005)
	}
	assert.Equal(t, []int{30, 14, 7, 3, 1}, days)
}

func TestSimulateSeats(t *testing.T) {
	s := newTestServer(t, predictor.Static(1))

	w := s.post(t, "/simulate/seats", flightBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[SeatSimulationResponse](t, w)
	require.Len(t, resp.SeatPressureSimulation, 5)

	wantSeats := []int{150, 100, 50, 20, 5}
	wantFactor := []float64{1.0, 1.0, 1.05, 1.10, 1.20}
	for i, p := range resp.SeatPressureSimulation {
		assert.Equal(t, wantSeats[i], p.SeatsLeft)
		assert.Equal(t, wantFactor[i], p.SeatFactor)
		assert.InDelta(t, 5000*wantFactor[i], p.FinalPrice, 0.005)
	}
}

func TestSimulateDemand(t *testing.T) {
	s := newTestServer(t, predictor.Static(1))

	w := s.post(t, "/simulate/demand", flightBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[DemandSimulationResponse](t, w)
	require.Len(t, resp.DemandSimulation, 5)

	wantDemand := []float64{0.7, 0.9, 1.0, 1.2, 1.4}
	wantFactor := []float64{1.0, 1.0, 1.05, 1.15, 1.25}
	for i, p := range resp.DemandSimulation {
		assert.Equal(t, wantDemand[i], p.DemandIndex)
		assert.Equal(t, wantFactor[i], p.DemandFactor)
		assert.InDelta(t, 5000*wantFactor[i], p.FinalPrice, 0.005)
	}
}

func TestExplain(t *testing.T) {
	s := newTestServer(t, predictor.Static(1.1))

	w := s.post(t, "/explain", flightBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[ExplainResponse](t, w)
	assert.Equal(t, 5000.0, resp.BaseFare)
	assert.Equal(t, 1.1, resp.MLMultiplier)
	assert.Equal(t, 1.20, resp.SeatFactor)
	assert.Equal(t, 1.05, resp.DemandFactor)
	assert.InDelta(t, 5000*1.1*1.2*1.05, resp.FinalPrice, 0.005)
	assert.Equal(t, pricing.ExplanationNotes, resp.Explanation)
}

func TestExplain_Failure(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid features", predictor.ErrInvalidFeatures, http.StatusUnprocessableEntity, "invalid_features"},
		{"unavailable", resilience.ErrCircuitOpen, http.StatusServiceUnavailable, "predictor_unavailable"},
		{"failed", predictor.ErrPredictionFailed, http.StatusInternalServerError, "prediction_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := predictor.Func(func(context.Context, models.FlightFeatures) (float64, error) {
				return 0, tt.err
			})
			s := newTestServer(t, p)

			w := s.post(t, "/explain", flightBody())
			assert.Equal(t, tt.status, w.Code)

			resp := decode[ErrorResponse](t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.err.Error(), resp.Error)
			assert.Equal(t, int64(1), s.metrics.QuoteErrors("explain", tt.code))
		})
	}
}

func TestSearch(t *testing.T) {
	s := newTestServer(t, predictor.Static(1))

	w := s.post(t, "/search", map[string]string{
		"source":       "Delhi",
		"destination":  "Mumbai",
		"flight_class": "Economy",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[SearchResponse](t, w)
	assert.Equal(t, "Delhi_Mumbai", resp.Route)
	assert.Equal(t, "Economy", resp.Class)
	require.Len(t, resp.Flights, 5)

	for i, f := range resp.Flights {
		assert.Equal(t, "Non-stop", f.Stops)
		assert.Equal(t, "2h 6m", f.Duration)
		assert.GreaterOrEqual(t, f.SeatsLeft, 3)
		assert.LessOrEqual(t, f.SeatsLeft, 60)
		assert.Regexp(t, `^\d{2}:00$`, f.DepartureTime)
		if i > 0 {
			assert.LessOrEqual(t, resp.Flights[i-1].Price, f.Price)
		}
	}
}

func TestSearch_BadRequest(t *testing.T) {
	s := newTestServer(t, predictor.Static(1))

	w := s.post(t, "/search", map[string]string{"source": "Delhi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.post(t, "/search", map[string]string{
		"source":       "Del_hi",
		"destination":  "Mumbai",
		"flight_class": "Economy",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, predictor.Static(1))

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "static", resp.Model)
	assert.Equal(t, "loaded", resp.Checks["predictor"])
}

func TestHealth_FailingCheck(t *testing.T) {
	h := NewHealthHandler(predictor.Static(1))
	h.AddCheck("redis", func(context.Context) error { return fmt.Errorf("connection refused") })

	r := gin.New()
	r.GET("/health/ready", h.Ready)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
