// Package predictor provides the demand multiplier model the pricing engine
// scales base fares with.
package predictor

import (
	"context"
	"errors"

	"github.com/OldStager01/airfare-pricer/pkg/models"
)

var (
	ErrPredictionFailed = errors.New("fare prediction failed")
	ErrInvalidFeatures  = errors.New("invalid feature record")
	ErrInvalidResponse  = errors.New("invalid response from model server")
	ErrTimeout          = errors.New("prediction timeout")
	ErrModelNotLoaded   = errors.New("fare model not loaded")
)

// Predictor maps a feature record to a price multiplier. Implementations must
// be deterministic and safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, features models.FlightFeatures) (float64, error)

	// Name identifies the model for health and logging output.
	Name() string
}

// HealthChecker is implemented by predictors backed by a remote peer.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Func adapts a plain function into a Predictor.
type Func func(ctx context.Context, features models.FlightFeatures) (float64, error)

func (f Func) Predict(ctx context.Context, features models.FlightFeatures) (float64, error) {
	return f(ctx, features)
}

func (f Func) Name() string {
	return "func"
}

// Static always returns the same multiplier.
type Static float64

func (s Static) Predict(ctx context.Context, features models.FlightFeatures) (float64, error) {
	return float64(s), nil
}

func (s Static) Name() string {
	return "static"
}
