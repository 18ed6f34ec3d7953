// @title Airfare Pricer API
// @version 1.0
// @description Dynamic airfare pricing: point estimates, explained breakdowns, sensitivity sweeps and synthetic search.
// @host localhost:8000
// @BasePath /
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/OldStager01/airfare-pricer/api"
	"github.com/OldStager01/airfare-pricer/api/handlers"
	"github.com/OldStager01/airfare-pricer/api/middleware"
	"github.com/OldStager01/airfare-pricer/internal/events"
	"github.com/OldStager01/airfare-pricer/internal/faretable"
	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/metrics"
	"github.com/OldStager01/airfare-pricer/internal/normalize"
	"github.com/OldStager01/airfare-pricer/internal/predictor"
	"github.com/OldStager01/airfare-pricer/internal/pricing"
	"github.com/OldStager01/airfare-pricer/internal/resilience"
	"github.com/OldStager01/airfare-pricer/internal/search"
	"github.com/OldStager01/airfare-pricer/internal/simulation"
	"github.com/OldStager01/airfare-pricer/pkg/config"
	"github.com/OldStager01/airfare-pricer/pkg/database"
	"github.com/OldStager01/airfare-pricer/pkg/database/queries"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	migrate := flag.Bool("migrate", false, "create and seed the base_fares table, then exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Mode)
	logger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Mode)

	if *migrate {
		return runMigrations(cfg)
	}

	fares, err := loadFares(cfg)
	if err != nil {
		return err
	}
	logger.Infof("Fare table ready: %d entries, fallback %.2f", fares.Len(), fares.Fallback())

	bus := events.NewEventBus(cfg.Events.BufferSize)
	defer bus.Close()
	publisher := events.NewPublisher(bus)

	// The predictor is the one required resource; failing to load it is fatal.
	opts := cfg.Predictor.ToOptions()
	opts.OnStateChange = func(name string, from, to resilience.State) {
		logger.Warnf("Circuit %s: %s -> %s", name, from, to)
		metrics.Get().SetCircuitBreakerState(name, int(to))
		publisher.CircuitChanged(name, from, to)
	}
	model, err := predictor.New(opts)
	if err != nil {
		return fmt.Errorf("failed to load predictor: %w", err)
	}
	logger.Infof("Predictor loaded: %s (%s)", model.Name(), cfg.Predictor.Type)

	engine := pricing.NewEngine(fares, model)
	runner := simulation.NewRunner(engine, simulation.Config{Parallel: cfg.Simulation.Parallel})

	var rng search.RandSource
	if cfg.Search.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Search.Seed))
	}
	synth := search.New(engine, cfg.Search.ToSearchConfig(), rng)

	var sinks []events.Sink
	if cfg.Kafka.Enabled {
		sinks = append(sinks, events.NewKafkaSink(cfg.Kafka.ToSinkConfig()))
		logger.Infof("Publishing quote events to kafka topic %s", cfg.Kafka.Topic)
	}
	dispatcher := events.NewDispatcher(bus.SubscribeAll(), sinks...)
	dispatcher.Start()
	defer dispatcher.Stop()

	deps := api.Dependencies{
		Pricing: handlers.PricingHandlerConfig{
			Engine:     engine,
			Runner:     runner,
			Search:     synth,
			Normalizer: normalize.New(nil),
			Publisher:  publisher,
		},
		Predictor: model,
		Checks:    make(map[string]handlers.CheckFunc),
	}
	if cfg.WebSocket.Enabled {
		deps.Events = bus.SubscribeAll()
	}

	if cfg.RateLimit.Enabled {
		limiter, closeLimiter, err := newLimiter(cfg, deps.Checks)
		if err != nil {
			return err
		}
		defer closeLimiter()
		deps.Limiter = limiter
	}

	if cfg.Prometheus.Enabled {
		metrics.StartServer(cfg.Prometheus.Port)
	}

	server := api.NewServer(cfg, deps)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Infof("API server listening on port %d", cfg.API.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdownChan:
		logger.Infof("Received signal %v, shutting down", sig)
	}

	timeout := cfg.App.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// loadFares builds the read-only fare table. The postgres source is read once
// here; later edits to base_fares need a restart.
func loadFares(cfg *config.Config) (*faretable.Table, error) {
	entries := cfg.Pricing.FareEntries()

	if cfg.Pricing.FareSource != "postgres" {
		return faretable.New(entries, cfg.Pricing.FallbackFare), nil
	}

	db, err := database.New(cfg.Database.ToDBConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	exists, err := db.TableExists(ctx, "base_fares")
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("base_fares table missing, run with -migrate first")
	}

	table, err := faretable.Load(ctx, queries.NewFareRepository(db.DB), entries, cfg.Pricing.FallbackFare)
	if err != nil {
		return nil, fmt.Errorf("failed to load fares: %w", err)
	}
	return table, nil
}

func runMigrations(cfg *config.Config) error {
	db, err := database.New(cfg.Database.ToDBConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connection established")

	timeout := cfg.Database.MigrationTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Running database migrations")
	if err := database.NewMigrator(db).Run(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Migrations completed successfully")
	return nil
}

func newLimiter(cfg *config.Config, checks map[string]handlers.CheckFunc) (middleware.Limiter, func(), error) {
	rl := cfg.RateLimit
	bucket := middleware.BucketConfig{
		Capacity:       rl.Capacity,
		RefillTokens:   rl.RefillTokens,
		RefillInterval: rl.RefillInterval,
		TTL:            rl.TTL,
	}

	if rl.Backend != "redis" {
		logger.Info("Rate limiting with in-memory buckets")
		return middleware.NewMemoryLimiter(bucket), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: cfg.Redis.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// Requests fail open while redis is unreachable.
		logger.Warnf("Redis at %s unreachable: %v", cfg.Redis.Addr, err)
	} else {
		logger.Infof("Rate limiting with redis at %s", cfg.Redis.Addr)
	}

	checks["redis"] = func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}

	return middleware.NewRedisLimiter(client, bucket), func() { client.Close() }, nil
}
