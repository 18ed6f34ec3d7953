// Package simulation re-prices a flight along one dimension while holding the
// rest of the feature record fixed.
package simulation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/pricing"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

type Field string

const (
	FieldDaysLeft    Field = "days_left"
	FieldSeatsLeft   Field = "seats_left"
	FieldDemandIndex Field = "demand_index"
)

// Sweep is one what-if series: the field that varies, the values it takes in
// output order, and the factor set each point is priced with.
type Sweep struct {
	Operation models.Operation
	Field     Field
	Values    []float64
	Policy    pricing.Policy
}

var (
	// Fares inflate as departure approaches.
	DaysLeftSweep = Sweep{
		Operation: models.OperationSimulate,
		Field:     FieldDaysLeft,
		Values:    []float64{30, 14, 7, 3, 1},
		Policy:    pricing.PolicyDaysSweep,
	}
	SeatsSweep = Sweep{
		Operation: models.OperationSimulateSeats,
		Field:     FieldSeatsLeft,
		Values:    []float64{150, 100, 50, 20, 5},
		Policy:    pricing.PolicySeatSweep,
	}
	DemandSweep = Sweep{
		Operation: models.OperationSimulateDemand,
		Field:     FieldDemandIndex,
		Values:    []float64{0.7, 0.9, 1.0, 1.2, 1.4},
		Policy:    pricing.PolicyDemandSweep,
	}
)

// Pricer is the subset of pricing.Engine the runner needs.
type Pricer interface {
	Price(ctx context.Context, f models.FlightFeatures, policy pricing.Policy) (*models.PricingResult, error)
}

type Point struct {
	Value  float64
	Result *models.PricingResult
}

type Config struct {
	// Parallel evaluates the points of a sweep concurrently. Output order is
	// unaffected.
	Parallel bool
}

type Runner struct {
	pricer   Pricer
	parallel bool
}

func NewRunner(p Pricer, cfg Config) *Runner {
	return &Runner{
		pricer:   p,
		parallel: cfg.Parallel,
	}
}

// Run prices base once per sweep value. Either every point is returned, in
// sweep order, or the first error is.
func (r *Runner) Run(ctx context.Context, base models.FlightFeatures, sweep Sweep) ([]Point, error) {
	points := make([]Point, len(sweep.Values))

	priceAt := func(ctx context.Context, i int) error {
		v := sweep.Values[i]
		f, err := apply(base, sweep.Field, v)
		if err != nil {
			return err
		}
		result, err := r.pricer.Price(ctx, f, sweep.Policy)
		if err != nil {
			return err
		}
		points[i] = Point{Value: v, Result: result}
		return nil
	}

	if r.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range sweep.Values {
			i := i
			g.Go(func() error { return priceAt(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range sweep.Values {
			if err := priceAt(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	logger.WithRouteCtx(ctx, base.Route, base.Class).Debugf("Simulated %s over %d points", sweep.Field, len(points))

	return points, nil
}

func (r *Runner) DaysLeft(ctx context.Context, base models.FlightFeatures) ([]Point, error) {
	return r.Run(ctx, base, DaysLeftSweep)
}

func (r *Runner) SeatsLeft(ctx context.Context, base models.FlightFeatures) ([]Point, error) {
	return r.Run(ctx, base, SeatsSweep)
}

func (r *Runner) DemandIndex(ctx context.Context, base models.FlightFeatures) ([]Point, error) {
	return r.Run(ctx, base, DemandSweep)
}

func apply(f models.FlightFeatures, field Field, v float64) (models.FlightFeatures, error) {
	switch field {
	case FieldDaysLeft:
		return f.WithDaysLeft(int(v)), nil
	case FieldSeatsLeft:
		return f.WithSeatsLeft(int(v)), nil
	case FieldDemandIndex:
		return f.WithDemandIndex(v), nil
	default:
		return f, fmt.Errorf("unsupported sweep field: %s", field)
	}
}
