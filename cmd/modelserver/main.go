package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/modelserver"
	"github.com/OldStager01/airfare-pricer/internal/predictor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	port := flag.Int("port", 9000, "model server port")
	modelPath := flag.String("model", "models/fare_model.yaml", "path to the linear model artifact")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger.Setup(*logLevel, "development")
	logger.Info("Starting fare model server")

	model, err := predictor.LoadLinearModel(*modelPath)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	logger.Infof("Serving model %s", model.Name())

	srv := modelserver.New(modelserver.Config{Port: *port}, model)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start model server: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down model server")
	return srv.Stop()
}
