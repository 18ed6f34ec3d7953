package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	// App validation
	if c.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}

	validModes := map[string]bool{"development": true, "production": true, "test": true}
	if !validModes[c.App.Mode] {
		errs = append(errs, fmt.Errorf("app.mode must be one of: development, production, test"))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.App.LogLevel] {
		errs = append(errs, fmt.Errorf("app.log_level must be one of: debug, info, warn, error"))
	}

	// API validation
	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, errors.New("api.port must be between 1 and 65535"))
	}
	if c.API.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("api.max_body_bytes must not be negative"))
	}

	// Pricing validation
	if c.Pricing.FallbackFare <= 0 {
		errs = append(errs, errors.New("pricing.fallback_fare must be positive"))
	}
	switch c.Pricing.FareSource {
	case "static":
	case "postgres":
		errs = append(errs, c.validateDatabase()...)
	default:
		errs = append(errs, errors.New("pricing.fare_source must be one of: static, postgres"))
	}
	for i, f := range c.Pricing.Fares {
		if f.Route == "" || f.Class == "" {
			errs = append(errs, fmt.Errorf("pricing.fares[%d] requires route and class", i))
		}
		if f.Fare <= 0 {
			errs = append(errs, fmt.Errorf("pricing.fares[%d].fare must be positive", i))
		}
	}

	// Predictor validation
	switch c.Predictor.Type {
	case "linear":
		if c.Predictor.ModelPath == "" {
			errs = append(errs, errors.New("predictor.model_path is required for the linear predictor"))
		}
	case "http":
		if c.Predictor.Endpoint == "" {
			errs = append(errs, errors.New("predictor.endpoint is required for the http predictor"))
		}
		if c.Predictor.Timeout <= 0 {
			errs = append(errs, errors.New("predictor.timeout must be positive"))
		}
	case "static":
	default:
		errs = append(errs, errors.New("predictor.type must be one of: linear, http, static"))
	}

	// Search validation
	if c.Search.DaysLeft < 1 {
		errs = append(errs, errors.New("search.days_left must be at least 1"))
	}
	if c.Search.DurationHours < 0 {
		errs = append(errs, errors.New("search.duration_hours must not be negative"))
	}
	if c.Search.Stops < 0 {
		errs = append(errs, errors.New("search.stops must not be negative"))
	}
	if c.Search.SeatsMin < 0 {
		errs = append(errs, errors.New("search.seats_min must not be negative"))
	}
	if c.Search.SeatsMax < c.Search.SeatsMin {
		errs = append(errs, errors.New("search.seats_max must be >= seats_min"))
	}
	if c.Search.DemandMax < c.Search.DemandMin {
		errs = append(errs, errors.New("search.demand_max must be >= demand_min"))
	}
	for i, tpl := range c.Search.Templates {
		if tpl.Airline == "" {
			errs = append(errs, fmt.Errorf("search.templates[%d].airline is required", i))
		}
		if tpl.DepartureHour < 0 || tpl.DepartureHour > 23 || tpl.ArrivalHour < 0 || tpl.ArrivalHour > 23 {
			errs = append(errs, fmt.Errorf("search.templates[%d] hours must be between 0 and 23", i))
		}
	}

	// Rate limit validation
	if c.RateLimit.Enabled {
		switch c.RateLimit.Backend {
		case "memory":
		case "redis":
			if c.Redis.Addr == "" {
				errs = append(errs, errors.New("redis.addr is required for the redis rate limit backend"))
			}
		default:
			errs = append(errs, errors.New("rate_limit.backend must be one of: memory, redis"))
		}
		if c.RateLimit.Capacity <= 0 {
			errs = append(errs, errors.New("rate_limit.capacity must be positive"))
		}
		if c.RateLimit.RefillTokens <= 0 || c.RateLimit.RefillInterval <= 0 {
			errs = append(errs, errors.New("rate_limit refill_tokens and refill_interval must be positive"))
		}
	}

	// Kafka validation
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("kafka.brokers is required when kafka is enabled"))
		}
		if c.Kafka.Topic == "" {
			errs = append(errs, errors.New("kafka.topic is required when kafka is enabled"))
		}
	}

	if c.Prometheus.Enabled && (c.Prometheus.Port <= 0 || c.Prometheus.Port > 65535) {
		errs = append(errs, errors.New("prometheus.port must be between 1 and 65535"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

func (c *Config) validateDatabase() []error {
	var errs []error
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, errors.New("database.port must be between 1 and 65535"))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if c.Database.MaxConnections <= 0 {
		errs = append(errs, errors.New("database.max_connections must be positive"))
	}
	return errs
}
