package config

import (
	"github.com/OldStager01/airfare-pricer/internal/events"
	"github.com/OldStager01/airfare-pricer/internal/faretable"
	"github.com/OldStager01/airfare-pricer/internal/predictor"
	"github.com/OldStager01/airfare-pricer/internal/search"
	"github.com/OldStager01/airfare-pricer/pkg/database"
)

func (d DatabaseConfig) ToDBConfig() database.Config {
	return database.Config{
		Host:            d.Host,
		Port:            d.Port,
		Name:            d.Name,
		User:            d.User,
		Password:        d.Password,
		MaxConnections:  d.MaxConnections,
		SSLMode:         d.SSLMode,
		ConnMaxLifetime: d.ConnMaxLifetime,
		ConnMaxIdleTime: d.ConnMaxIdleTime,
		PingTimeout:     d.PingTimeout,
	}
}

// FareEntries returns the built-in table with configured overrides applied.
func (p PricingConfig) FareEntries() []faretable.Entry {
	entries := make([]faretable.Entry, 0, len(faretable.DefaultEntries)+len(p.Fares))
	entries = append(entries, faretable.DefaultEntries...)
	for _, f := range p.Fares {
		entries = append(entries, faretable.Entry{Route: f.Route, Class: f.Class, Fare: f.Fare})
	}
	return entries
}

func (p PredictorConfig) ToOptions() predictor.Options {
	return predictor.Options{
		Type:                  p.Type,
		ModelPath:             p.ModelPath,
		Endpoint:              p.Endpoint,
		Timeout:               p.Timeout,
		StaticMultiplier:      p.StaticMultiplier,
		CircuitBreakerEnabled: p.CircuitBreaker.Enabled,
		MaxFailures:           p.CircuitBreaker.MaxFailures,
		ResetTimeout:          p.CircuitBreaker.Timeout,
		HalfOpenMax:           p.CircuitBreaker.HalfOpenMax,
	}
}

func (s SearchConfig) ToSearchConfig() search.Config {
	cfg := search.Config{
		DaysLeft:  s.DaysLeft,
		Duration:  s.DurationHours,
		Stops:     s.Stops,
		SeatsMin:  s.SeatsMin,
		SeatsMax:  s.SeatsMax,
		DemandMin: s.DemandMin,
		DemandMax: s.DemandMax,
		Parallel:  s.Parallel,
	}
	for _, t := range s.Templates {
		cfg.Templates = append(cfg.Templates, search.Template{
			Airline:       t.Airline,
			DepartureHour: t.DepartureHour,
			ArrivalHour:   t.ArrivalHour,
		})
	}
	return cfg
}

func (k KafkaConfig) ToSinkConfig() events.KafkaSinkConfig {
	return events.KafkaSinkConfig{
		Brokers:      k.Brokers,
		Topic:        k.Topic,
		WriteTimeout: k.WriteTimeout,
	}
}
