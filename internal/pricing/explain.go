package pricing

import (
	"context"
	"errors"

	"github.com/OldStager01/airfare-pricer/internal/predictor"
	"github.com/OldStager01/airfare-pricer/internal/resilience"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

type ErrorCode string

const (
	CodeInvalidFeatures      ErrorCode = "invalid_features"
	CodePredictorUnavailable ErrorCode = "predictor_unavailable"
	CodePredictionFailed     ErrorCode = "prediction_failed"
)

// ExplanationNotes are returned with every successful explanation, in order.
var ExplanationNotes = []string{
	"Base fare determined by route and class",
	"ML model estimates demand pressure",
	"Seat scarcity rule increases price as seats reduce",
	"Demand surge rule amplifies high demand situations",
}

type Failure struct {
	Code    ErrorCode
	Message string
}

// Explanation is either a priced breakdown or a Failure, never both.
type Explanation struct {
	Result  *models.PricingResult
	Notes   []string
	Failure *Failure
}

func (e Explanation) OK() bool {
	return e.Failure == nil
}

// Explain prices f with both rule factors. Unlike Price it does not return an
// error: predictor failures become a Failure variant.
func (e *Engine) Explain(ctx context.Context, f models.FlightFeatures) Explanation {
	result, err := e.Price(ctx, f, PolicyExplain)
	if err != nil {
		return Explanation{
			Failure: &Failure{Code: Classify(err), Message: err.Error()},
		}
	}

	notes := make([]string, len(ExplanationNotes))
	copy(notes, ExplanationNotes)

	return Explanation{Result: result, Notes: notes}
}

// Classify maps a pricing error onto a stable error code.
func Classify(err error) ErrorCode {
	switch {
	case errors.Is(err, predictor.ErrInvalidFeatures):
		return CodeInvalidFeatures
	case errors.Is(err, resilience.ErrCircuitOpen),
		errors.Is(err, predictor.ErrTimeout),
		errors.Is(err, predictor.ErrModelNotLoaded),
		errors.Is(err, context.DeadlineExceeded):
		return CodePredictorUnavailable
	default:
		return CodePredictionFailed
	}
}
