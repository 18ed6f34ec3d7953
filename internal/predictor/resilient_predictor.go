package predictor

import (
	"context"
	"errors"
	"time"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/resilience"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

// ResilientPredictor guards a remote predictor with a circuit breaker.
// Calls are never retried: a failed quote is reported to the caller as is.
type ResilientPredictor struct {
	predictor      Predictor
	circuitBreaker *resilience.CircuitBreaker
}

type ResilientPredictorConfig struct {
	Predictor     Predictor
	MaxFailures   int
	Timeout       time.Duration
	HalfOpenMax   int
	OnStateChange func(name string, from, to resilience.State)
}

func NewResilientPredictor(cfg ResilientPredictorConfig) *ResilientPredictor {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:          "predictor",
		MaxFailures:   cfg.MaxFailures,
		Timeout:       cfg.Timeout,
		HalfOpenMax:   cfg.HalfOpenMax,
		IsFailure:     countsAsFailure,
		OnStateChange: cfg.OnStateChange,
	})

	return &ResilientPredictor{
		predictor:      cfg.Predictor,
		circuitBreaker: cb,
	}
}

// countsAsFailure ignores errors caused by the caller rather than the model.
func countsAsFailure(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrInvalidFeatures), errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}

func (p *ResilientPredictor) Predict(ctx context.Context, features models.FlightFeatures) (float64, error) {
	var multiplier float64

	err := p.circuitBreaker.Execute(func() error {
		var err error
		multiplier, err = p.predictor.Predict(ctx, features)
		return err
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			logger.WithRouteCtx(ctx, features.Route, features.Class).Warn("Predictor circuit open, rejecting quote")
		}
		return 0, err
	}

	return multiplier, nil
}

func (p *ResilientPredictor) Name() string {
	return p.predictor.Name()
}

func (p *ResilientPredictor) HealthCheck(ctx context.Context) error {
	if hc, ok := p.predictor.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (p *ResilientPredictor) CircuitState() resilience.State {
	return p.circuitBreaker.State()
}

func (p *ResilientPredictor) ResetCircuit() {
	p.circuitBreaker.Reset()
}
