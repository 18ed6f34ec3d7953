package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/airfare-pricer")
	}

	v.SetEnvPrefix("AIRFARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: defaults and env vars only
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "airfare-pricer")
	v.SetDefault("app.mode", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.shutdown_timeout", "15s")

	// API defaults
	v.SetDefault("api.port", 8000)
	v.SetDefault("api.read_timeout", "15s")
	v.SetDefault("api.write_timeout", "15s")
	v.SetDefault("api.idle_timeout", "60s")
	v.SetDefault("api.max_body_bytes", 1<<20)
	v.SetDefault("api.cors.allowed_origins", []string{"http://localhost:5173", "https://*.vercel.app", "*"})
	v.SetDefault("api.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("api.cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "X-Trace-ID"})
	v.SetDefault("api.cors.exposed_headers", []string{"X-Trace-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"})
	v.SetDefault("api.cors.allow_credentials", true)

	// Pricing defaults
	v.SetDefault("pricing.fallback_fare", 5000.0)
	v.SetDefault("pricing.fare_source", "static")

	// Predictor defaults
	v.SetDefault("predictor.type", "linear")
	v.SetDefault("predictor.model_path", "models/fare_model.yaml")
	v.SetDefault("predictor.endpoint", "http://localhost:9000")
	v.SetDefault("predictor.timeout", "2s")
	v.SetDefault("predictor.static_multiplier", 1.0)
	v.SetDefault("predictor.circuit_breaker.enabled", true)
	v.SetDefault("predictor.circuit_breaker.max_failures", 5)
	v.SetDefault("predictor.circuit_breaker.timeout", "30s")
	v.SetDefault("predictor.circuit_breaker.half_open_max", 3)

	// Search defaults
	v.SetDefault("search.days_left", 10)
	v.SetDefault("search.duration_hours", 2.1)
	v.SetDefault("search.stops", 0)
	v.SetDefault("search.seats_min", 3)
	v.SetDefault("search.seats_max", 60)
	v.SetDefault("search.demand_min", 0.9)
	v.SetDefault("search.demand_max", 1.4)
	v.SetDefault("search.seed", 0)
	v.SetDefault("search.parallel", false)

	v.SetDefault("simulation.parallel", false)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "airfare")
	v.SetDefault("database.user", "admin")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.migration_timeout", "60s")

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "2s")

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.backend", "memory")
	v.SetDefault("rate_limit.capacity", 60)
	v.SetDefault("rate_limit.refill_tokens", 1)
	v.SetDefault("rate_limit.refill_interval", "1s")
	v.SetDefault("rate_limit.ttl", "10m")
	v.SetDefault("rate_limit.prefix", "airfare:rl")
	v.SetDefault("rate_limit.key_strategy", "ip")

	// Kafka defaults
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "airfare.quotes")
	v.SetDefault("kafka.write_timeout", "5s")

	// WebSocket defaults
	v.SetDefault("websocket.enabled", true)
	v.SetDefault("websocket.max_connections", 1000)
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.write_timeout", "10s")
	v.SetDefault("websocket.pong_timeout", "60s")
	v.SetDefault("websocket.max_message_size", 512)

	// Prometheus defaults
	v.SetDefault("prometheus.enabled", false)
	v.SetDefault("prometheus.port", 9090)

	v.SetDefault("events.buffer_size", 256)
}
