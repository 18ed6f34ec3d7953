package predictor

import (
	"fmt"
	"time"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/resilience"
)

const (
	TypeLinear = "linear"
	TypeHTTP   = "http"
	TypeStatic = "static"
)

// Options selects and configures a predictor implementation.
type Options struct {
	Type             string
	ModelPath        string
	Endpoint         string
	Timeout          time.Duration
	StaticMultiplier float64

	CircuitBreakerEnabled bool
	MaxFailures           int
	ResetTimeout          time.Duration
	HalfOpenMax           int
	OnStateChange         func(name string, from, to resilience.State)
}

// New builds the predictor described by opts. A linear model that cannot be
// loaded is an error: the service must not start without a model.
func New(opts Options) (Predictor, error) {
	switch opts.Type {
	case TypeLinear, "":
		model, err := LoadLinearModel(opts.ModelPath)
		if err != nil {
			return nil, err
		}
		logger.WithField("model", model.Name()).Infof("Loaded fare model from %s", opts.ModelPath)
		return model, nil

	case TypeHTTP:
		if opts.Endpoint == "" {
			return nil, fmt.Errorf("%w: http predictor requires an endpoint", ErrModelNotLoaded)
		}
		var p Predictor = NewHTTPPredictor(HTTPPredictorConfig{
			Endpoint: opts.Endpoint,
			Timeout:  opts.Timeout,
		})
		if opts.CircuitBreakerEnabled {
			p = NewResilientPredictor(ResilientPredictorConfig{
				Predictor:     p,
				MaxFailures:   opts.MaxFailures,
				Timeout:       opts.ResetTimeout,
				HalfOpenMax:   opts.HalfOpenMax,
				OnStateChange: opts.OnStateChange,
			})
		}
		logger.WithField("endpoint", opts.Endpoint).Info("Using remote fare model")
		return p, nil

	case TypeStatic:
		return Static(opts.StaticMultiplier), nil

	default:
		return nil, fmt.Errorf("unknown predictor type: %s", opts.Type)
	}
}
