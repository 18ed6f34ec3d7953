// Package search synthesizes and prices a roster of candidate flights for a
// route.
package search

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/normalize"
	"github.com/OldStager01/airfare-pricer/internal/pricing"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

// Template is one scheduled departure offered for every route.
type Template struct {
	Airline       string
	DepartureHour int
	ArrivalHour   int
}

var DefaultTemplates = []Template{
	{Airline: "IndiGo", DepartureHour: 6, ArrivalHour: 8},
	{Airline: "Vistara", DepartureHour: 9, ArrivalHour: 11},
	{Airline: "Air India", DepartureHour: 13, ArrivalHour: 15},
	{Airline: "IndiGo", DepartureHour: 18, ArrivalHour: 20},
	{Airline: "Akasa", DepartureHour: 22, ArrivalHour: 0},
}

// RandSource supplies the occupancy and demand draws. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
	Float64() float64
}

type Config struct {
	Templates []Template
	DaysLeft  int
	Duration  float64
	Stops     int
	SeatsMin  int
	SeatsMax  int
	DemandMin float64
	DemandMax float64
	Parallel  bool
}

func DefaultConfig() Config {
	return Config{
		Templates: DefaultTemplates,
		DaysLeft:  10,
		Duration:  2.1,
		Stops:     0,
		SeatsMin:  3,
		SeatsMax:  60,
		DemandMin: 0.9,
		DemandMax: 1.4,
	}
}

type Pricer interface {
	Price(ctx context.Context, f models.FlightFeatures, policy pricing.Policy) (*models.PricingResult, error)
}

type Synthesizer struct {
	pricer Pricer
	config Config

	mu  sync.Mutex
	rng RandSource
}

// New returns a synthesizer drawing from rng. A nil rng is replaced by a
// time-seeded generator.
func New(p Pricer, cfg Config, rng RandSource) *Synthesizer {
	if len(cfg.Templates) == 0 {
		cfg.Templates = DefaultTemplates
	}
	if cfg.SeatsMax < cfg.SeatsMin {
		cfg.SeatsMax = cfg.SeatsMin
	}
	if cfg.DemandMax < cfg.DemandMin {
		cfg.DemandMax = cfg.DemandMin
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Synthesizer{
		pricer: p,
		config: cfg,
		rng:    rng,
	}
}

type draw struct {
	seats  int
	demand float64
}

// draws takes every random value for one search under a single lock so a
// seeded source yields the same roster regardless of pricing concurrency.
func (s *Synthesizer) draws(n int) []draw {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]draw, n)
	for i := range out {
		out[i].seats = s.config.SeatsMin + s.rng.Intn(s.config.SeatsMax-s.config.SeatsMin+1)
		out[i].demand = s.config.DemandMin + s.rng.Float64()*(s.config.DemandMax-s.config.DemandMin)
	}
	return out
}

// Search prices every template for the route and returns the candidates
// ordered by displayed price, cheapest first. Ties keep template order.
func (s *Synthesizer) Search(ctx context.Context, source, destination, class string) ([]models.CandidateFlight, error) {
	route := models.RouteFor(source, destination)
	templates := s.config.Templates
	draws := s.draws(len(templates))
	flights := make([]models.CandidateFlight, len(templates))

	priceAt := func(ctx context.Context, i int) error {
		tpl := templates[i]
		f := models.FlightFeatures{
			Airline:       tpl.Airline,
			Route:         route,
			DepartureTime: normalize.TimeBucket(tpl.DepartureHour),
			ArrivalTime:   normalize.TimeBucket(tpl.ArrivalHour),
			Class:         class,
			DaysLeft:      s.config.DaysLeft,
			Duration:      s.config.Duration,
			Stops:         s.config.Stops,
			SeatsLeft:     draws[i].seats,
			DemandIndex:   draws[i].demand,
		}

		result, err := s.pricer.Price(ctx, f, pricing.PolicySearch)
		if err != nil {
			return err
		}

		flights[i] = models.CandidateFlight{
			Airline:       tpl.Airline,
			DepartureHour: tpl.DepartureHour,
			ArrivalHour:   tpl.ArrivalHour,
			SeatsLeft:     draws[i].seats,
			DemandIndex:   draws[i].demand,
			Pricing:       result,
		}
		return nil
	}

	if s.config.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range templates {
			i := i
			g.Go(func() error { return priceAt(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range templates {
			if err := priceAt(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Pricing.RoundedPrice() < flights[j].Pricing.RoundedPrice()
	})

	logger.WithRouteCtx(ctx, route, class).Debugf("Synthesized %d candidate flights", len(flights))

	return flights, nil
}

func (s *Synthesizer) Config() Config {
	return s.config
}
