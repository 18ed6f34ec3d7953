package pricing

import (
	"context"

	"github.com/OldStager01/airfare-pricer/internal/adjustment"
	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/metrics"
	"github.com/OldStager01/airfare-pricer/internal/predictor"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

// FareLookup resolves a base fare, reporting whether the key was present.
// Misses still return a usable fare.
type FareLookup interface {
	Resolve(route, class string) (float64, bool)
}

// Engine composes base fare, model multiplier and rule factors into a price.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	fares     FareLookup
	predictor predictor.Predictor
	metrics   *metrics.Metrics
}

type Option func(*Engine)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func NewEngine(fares FareLookup, p predictor.Predictor, opts ...Option) *Engine {
	e := &Engine{
		fares:     fares,
		predictor: p,
		metrics:   metrics.Get(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Price prices one feature record under policy. Predictor errors are returned
// unchanged; no partial result is produced.
func (e *Engine) Price(ctx context.Context, f models.FlightFeatures, policy Policy) (*models.PricingResult, error) {
	multiplier, err := e.predictor.Predict(ctx, f)
	if err != nil {
		logger.WithRouteCtx(ctx, f.Route, f.Class).Warnf("Predictor failed: %v", err)
		return nil, err
	}

	baseFare, found := e.fares.Resolve(f.Route, f.Class)
	if !found {
		logger.WithRouteCtx(ctx, f.Route, f.Class).Debugf("No base fare, using fallback %.2f", baseFare)
		if e.metrics != nil {
			e.metrics.IncFareFallback(f.Route, f.Class)
		}
	}

	result := &models.PricingResult{
		Features:     f,
		BaseFare:     baseFare,
		FareFallback: !found,
		MLMultiplier: multiplier,
		SeatFactor:   adjustment.NoAdjustment,
		DemandFactor: adjustment.NoAdjustment,
	}

	if policy.Has(FactorSeat) {
		result.SeatFactor = adjustment.SeatPressure(f.SeatsLeft)
		result.SeatApplied = true
	}
	if policy.Has(FactorDemand) {
		result.DemandFactor = adjustment.DemandPressure(f.DemandIndex)
		result.DemandApplied = true
	}

	result.FinalPrice = baseFare * multiplier * result.SeatFactor * result.DemandFactor

	return result, nil
}

func (e *Engine) Predictor() predictor.Predictor {
	return e.predictor
}
