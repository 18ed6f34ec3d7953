package config

import (
	"fmt"
	"time"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	API        APIConfig        `mapstructure:"api"`
	Pricing    PricingConfig    `mapstructure:"pricing"`
	Predictor  PredictorConfig  `mapstructure:"predictor"`
	Search     SearchConfig     `mapstructure:"search"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	WebSocket  WebSocketConfig  `mapstructure:"websocket"`
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Events     EventsConfig     `mapstructure:"events"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Mode            string        `mapstructure:"mode"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type APIConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	CORS         CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// PricingConfig controls where base fares come from. FareSource "static"
// uses the built-in table plus Fares overrides; "postgres" additionally loads
// the base_fares table at startup.
type PricingConfig struct {
	FallbackFare float64      `mapstructure:"fallback_fare"`
	FareSource   string       `mapstructure:"fare_source"`
	Fares        []FareConfig `mapstructure:"fares"`
}

type FareConfig struct {
	Route string  `mapstructure:"route"`
	Class string  `mapstructure:"class"`
	Fare  float64 `mapstructure:"fare"`
}

type PredictorConfig struct {
	Type             string               `mapstructure:"type"`
	ModelPath        string               `mapstructure:"model_path"`
	Endpoint         string               `mapstructure:"endpoint"`
	Timeout          time.Duration        `mapstructure:"timeout"`
	StaticMultiplier float64              `mapstructure:"static_multiplier"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures int           `mapstructure:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout"`
	HalfOpenMax int           `mapstructure:"half_open_max"`
}

type SearchConfig struct {
	DaysLeft      int              `mapstructure:"days_left"`
	DurationHours float64          `mapstructure:"duration_hours"`
	Stops         int              `mapstructure:"stops"`
	SeatsMin      int              `mapstructure:"seats_min"`
	SeatsMax      int              `mapstructure:"seats_max"`
	DemandMin     float64          `mapstructure:"demand_min"`
	DemandMax     float64          `mapstructure:"demand_max"`
	Seed          int64            `mapstructure:"seed"`
	Parallel      bool             `mapstructure:"parallel"`
	Templates     []TemplateConfig `mapstructure:"templates"`
}

type TemplateConfig struct {
	Airline       string `mapstructure:"airline"`
	DepartureHour int    `mapstructure:"departure_hour"`
	ArrivalHour   int    `mapstructure:"arrival_hour"`
}

type SimulationConfig struct {
	Parallel bool `mapstructure:"parallel"`
}

type DatabaseConfig struct {
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	Name             string        `mapstructure:"name"`
	User             string        `mapstructure:"user"`
	Password         string        `mapstructure:"password"`
	MaxConnections   int           `mapstructure:"max_connections"`
	SSLMode          string        `mapstructure:"ssl_mode"`
	ConnMaxLifetime  time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime  time.Duration `mapstructure:"conn_max_idle_time"`
	PingTimeout      time.Duration `mapstructure:"ping_timeout"`
	MigrationTimeout time.Duration `mapstructure:"migration_timeout"`
}

func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, sslMode,
	)
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	PoolSize    int           `mapstructure:"pool_size"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// RateLimitConfig describes a token bucket per client key: Capacity tokens,
// refilled by RefillTokens every RefillInterval.
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Backend        string        `mapstructure:"backend"`
	Capacity       int           `mapstructure:"capacity"`
	RefillTokens   int           `mapstructure:"refill_tokens"`
	RefillInterval time.Duration `mapstructure:"refill_interval"`
	TTL            time.Duration `mapstructure:"ttl"`
	Prefix         string        `mapstructure:"prefix"`
	KeyStrategy    string        `mapstructure:"key_strategy"`
}

type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type WebSocketConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxConnections  int           `mapstructure:"max_connections"`
	PingInterval    time.Duration `mapstructure:"ping_interval"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PongTimeout     time.Duration `mapstructure:"pong_timeout"`
	MaxMessageSize  int64         `mapstructure:"max_message_size"`
	ReadBufferSize  int           `mapstructure:"read_buffer_size"`
	WriteBufferSize int           `mapstructure:"write_buffer_size"`
	BroadcastBuffer int           `mapstructure:"broadcast_buffer"`
	ClientBuffer    int           `mapstructure:"client_buffer"`
}

type PrometheusConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type EventsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}
