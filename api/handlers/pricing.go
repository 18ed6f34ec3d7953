package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/airfare-pricer/api/middleware"
	"github.com/OldStager01/airfare-pricer/internal/events"
	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/metrics"
	"github.com/OldStager01/airfare-pricer/internal/normalize"
	"github.com/OldStager01/airfare-pricer/internal/pricing"
	"github.com/OldStager01/airfare-pricer/internal/search"
	"github.com/OldStager01/airfare-pricer/internal/simulation"
	"github.com/OldStager01/airfare-pricer/pkg/models"
	"github.com/OldStager01/airfare-pricer/pkg/validation"
)

const requestTimeout = 10 * time.Second

type PricingHandler struct {
	engine     *pricing.Engine
	runner     *simulation.Runner
	search     *search.Synthesizer
	normalizer *normalize.Normalizer
	publisher  *events.Publisher
	metrics    *metrics.Metrics
}

type PricingHandlerConfig struct {
	Engine     *pricing.Engine
	Runner     *simulation.Runner
	Search     *search.Synthesizer
	Normalizer *normalize.Normalizer
	Publisher  *events.Publisher
	Metrics    *metrics.Metrics
}

func NewPricingHandler(cfg PricingHandlerConfig) *PricingHandler {
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalize.New(nil)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Get()
	}
	return &PricingHandler{
		engine:     cfg.Engine,
		runner:     cfg.Runner,
		search:     cfg.Search,
		normalizer: cfg.Normalizer,
		publisher:  cfg.Publisher,
		metrics:    cfg.Metrics,
	}
}

// Predict godoc
// @Summary Point price estimate
// @Description Prices the flight with the model multiplier only
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body FlightRequest true "Flight features"
// @Success 200 {object} PredictResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /predict [post]
func (h *PricingHandler) Predict(c *gin.Context) {
	const op = models.OperationPredict

	f, ok := h.bindFeatures(c, op)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	start := time.Now()
	result, err := h.engine.Price(ctx, f, pricing.PolicyFor(op))
	if err != nil {
		h.fail(c, op, f.Route, f.Class, err)
		return
	}
	h.observe(op, start, 1)
	h.events(c).QuoteComputed(op, result)

	c.JSON(http.StatusOK, PredictResponse{
		Route:           f.Route,
		Class:           f.Class,
		BaseFare:        result.BaseFare,
		PriceMultiplier: result.RoundedMultiplier(),
		FinalPrice:      result.RoundedPrice(),
	})
}

// Simulate godoc
// @Summary Days-to-departure sweep
// @Description Re-prices the flight for 30, 14, 7, 3 and 1 days before departure
// @Tags Simulation
// @Accept json
// @Produce json
// @Param request body FlightRequest true "Flight features"
// @Success 200 {object} SimulateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /simulate [post]
func (h *PricingHandler) Simulate(c *gin.Context) {
	points, f, ok := h.sweep(c, simulation.DaysLeftSweep)
	if !ok {
		return
	}

	out := make([]DaysLeftPoint, len(points))
	for i, p := range points {
		out[i] = DaysLeftPoint{
			DaysLeft: p.Result.Features.DaysLeft,
			Price:    p.Result.RoundedPrice(),
		}
	}

	c.JSON(http.StatusOK, SimulateResponse{Route: f.Route, Class: f.Class, Simulation: out})
}

// SimulateSeats godoc
// @Summary Seat pressure sweep
// @Description Re-prices the flight for 150, 100, 50, 20 and 5 seats left with the seat factor applied
// @Tags Simulation
// @Accept json
// @Produce json
// @Param request body FlightRequest true "Flight features"
// @Success 200 {object} SeatSimulationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /simulate/seats [post]
func (h *PricingHandler) SimulateSeats(c *gin.Context) {
	points, f, ok := h.sweep(c, simulation.SeatsSweep)
	if !ok {
		return
	}

	out := make([]SeatPoint, len(points))
	for i, p := range points {
		out[i] = SeatPoint{
			SeatsLeft:    p.Result.Features.SeatsLeft,
			MLMultiplier: p.Result.RoundedMultiplier(),
			SeatFactor:   p.Result.SeatFactor,
			FinalPrice:   p.Result.RoundedPrice(),
		}
	}

	c.JSON(http.StatusOK, SeatSimulationResponse{Route: f.Route, Class: f.Class, SeatPressureSimulation: out})
}

// SimulateDemand godoc
// @Summary Demand shock sweep
// @Description Re-prices the flight for demand index 0.7, 0.9, 1.0, 1.2 and 1.4 with the demand factor applied
// @Tags Simulation
// @Accept json
// @Produce json
// @Param request body FlightRequest true "Flight features"
// @Success 200 {object} DemandSimulationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /simulate/demand [post]
func (h *PricingHandler) SimulateDemand(c *gin.Context) {
	points, f, ok := h.sweep(c, simulation.DemandSweep)
	if !ok {
		return
	}

	out := make([]DemandPoint, len(points))
	for i, p := range points {
		out[i] = DemandPoint{
			DemandIndex:  p.Result.Features.DemandIndex,
			MLMultiplier: p.Result.RoundedMultiplier(),
			DemandFactor: p.Result.DemandFactor,
			FinalPrice:   p.Result.RoundedPrice(),
		}
	}

	c.JSON(http.StatusOK, DemandSimulationResponse{Route: f.Route, Class: f.Class, DemandSimulation: out})
}

// Explain godoc
// @Summary Explained price breakdown
// @Description Prices the flight with both rule factors and returns each component
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body FlightRequest true "Flight features"
// @Success 200 {object} ExplainResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "invalid_features"
// @Failure 500 {object} ErrorResponse "prediction_failed"
// @Failure 503 {object} ErrorResponse "predictor_unavailable"
// @Router /explain [post]
func (h *PricingHandler) Explain(c *gin.Context) {
	const op = models.OperationExplain

	f, ok := h.bindFeatures(c, op)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	start := time.Now()
	exp := h.engine.Explain(ctx, f)
	if !exp.OK() {
		h.metrics.IncQuoteErrors(string(op), string(exp.Failure.Code))
		h.events(c).QuoteFailed(op, f.Route, f.Class, errors.New(exp.Failure.Message))
		c.JSON(statusForCode(exp.Failure.Code), ErrorResponse{
			Error: exp.Failure.Message,
			Code:  string(exp.Failure.Code),
		})
		return
	}
	h.observe(op, start, 1)
	h.events(c).QuoteComputed(op, exp.Result)

	r := exp.Result
	c.JSON(http.StatusOK, ExplainResponse{
		BaseFare:     r.BaseFare,
		MLMultiplier: r.RoundedMultiplier(),
		SeatFactor:   r.SeatFactor,
		DemandFactor: r.DemandFactor,
		FinalPrice:   r.RoundedPrice(),
		Explanation:  exp.Notes,
	})
}

// Search godoc
// @Summary Synthetic flight search
// @Description Prices five synthesized flights for the route, cheapest first
// @Tags Search
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search query"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /search [post]
func (h *PricingHandler) Search(c *gin.Context) {
	const op = models.OperationSearch

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, op, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.badRequest(c, op, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	route := models.RouteFor(req.Source, req.Destination)

	start := time.Now()
	flights, err := h.search.Search(ctx, req.Source, req.Destination, req.FlightClass)
	if err != nil {
		h.fail(c, op, route, req.FlightClass, err)
		return
	}
	h.observe(op, start, len(flights))
	h.events(c).SearchCompleted(route, req.FlightClass, flights)

	cfg := h.search.Config()
	out := make([]FlightResponse, len(flights))
	for i, fl := range flights {
		out[i] = FlightResponse{
			Airline:       fl.Airline,
			DepartureTime: search.FormatHour(fl.DepartureHour),
			ArrivalTime:   search.FormatHour(fl.ArrivalHour),
			Duration:      search.FormatDuration(cfg.Duration),
			Stops:         search.FormatStops(cfg.Stops),
			SeatsLeft:     fl.SeatsLeft,
			Price:         fl.Pricing.RoundedPrice(),
		}
	}

	c.JSON(http.StatusOK, SearchResponse{Route: route, Class: req.FlightClass, Flights: out})
}

func (h *PricingHandler) sweep(c *gin.Context, sw simulation.Sweep) ([]simulation.Point, models.FlightFeatures, bool) {
	f, ok := h.bindFeatures(c, sw.Operation)
	if !ok {
		return nil, f, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	start := time.Now()
	points, err := h.runner.Run(ctx, f, sw)
	if err != nil {
		h.fail(c, sw.Operation, f.Route, f.Class, err)
		return nil, f, false
	}
	h.observe(sw.Operation, start, len(points))

	results := make([]*models.PricingResult, len(points))
	for i, p := range points {
		results[i] = p.Result
	}
	h.events(c).SweepComputed(sw.Operation, results)

	return points, f, true
}

func (h *PricingHandler) bindFeatures(c *gin.Context, op models.Operation) (models.FlightFeatures, bool) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, op, err)
		return models.FlightFeatures{}, false
	}

	f, err := req.Features(h.normalizer)
	if err != nil {
		if errors.Is(err, normalize.ErrInvalidDate) {
			h.metrics.IncQuoteErrors(string(op), "invalid_date")
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return f, false
		}
		h.badRequest(c, op, err)
		return f, false
	}
	return f, true
}

func (h *PricingHandler) badRequest(c *gin.Context, op models.Operation, err error) {
	h.metrics.IncQuoteErrors(string(op), "bad_request")
	msg := err.Error()
	if !errors.Is(err, validation.ErrInvalidInput) {
		msg = "invalid request body: " + msg
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// fail surfaces a pricing error. No partial result is ever written.
func (h *PricingHandler) fail(c *gin.Context, op models.Operation, route, class string, err error) {
	code := pricing.Classify(err)
	h.metrics.IncQuoteErrors(string(op), string(code))
	h.events(c).QuoteFailed(op, route, class, err)

	logger.WithRouteCtx(c.Request.Context(), route, class).
		WithField("operation", op).
		Errorf("Pricing failed: %v", err)

	c.JSON(statusForCode(code), ErrorResponse{Error: err.Error()})
}

func (h *PricingHandler) observe(op models.Operation, start time.Time, n int) {
	h.metrics.IncQuotes(string(op), n)
	h.metrics.SetQuoteLatency(string(op), time.Since(start))
}

func (h *PricingHandler) events(c *gin.Context) *events.Publisher {
	return h.publisher.WithTraceID(middleware.GetTraceID(c))
}

func statusForCode(code pricing.ErrorCode) int {
	switch code {
	case pricing.CodeInvalidFeatures:
		return http.StatusUnprocessableEntity
	case pricing.CodePredictorUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
