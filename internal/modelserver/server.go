// Package modelserver exposes a fare model over HTTP so the pricer can run
// with a remote predictor.
package modelserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/predictor"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	config     Config
	model      predictor.Predictor
	router     *gin.Engine
	httpServer *http.Server
	startedAt  time.Time
}

func New(cfg Config, model predictor.Predictor) *Server {
	if cfg.Port == 0 {
		cfg.Port = 9000
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	s := &Server{
		config:    cfg,
		model:     model,
		router:    gin.New(),
		startedAt: time.Now(),
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.health)
	s.router.GET("/model", s.describe)
	s.router.POST("/predict", s.predict)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	logger.Infof("Model server listening on %s", addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Model server error: %v", err)
		}
	}()

	return nil
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"model":  s.model.Name(),
		"uptime": time.Since(s.startedAt).Round(time.Second).String(),
	})
}

func (s *Server) describe(c *gin.Context) {
	body := gin.H{"name": s.model.Name()}
	if lm, ok := s.model.(*predictor.LinearModel); ok {
		a := lm.Artifact()
		body["version"] = a.Version
		body["intercept"] = a.Intercept
		body["numeric"] = a.Numeric
		body["categorical"] = a.Categorical
		body["strict"] = a.Strict
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) predict(c *gin.Context) {
	var features models.FlightFeatures
	if err := c.ShouldBindJSON(&features); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	multiplier, err := s.model.Predict(c.Request.Context(), features)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, predictor.ErrInvalidFeatures) {
			status = http.StatusUnprocessableEntity
		}
		logger.WithRoute(features.Route, features.Class).Warnf("Prediction rejected: %v", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, predictor.PredictResponse{
		Multiplier: multiplier,
		Model:      s.model.Name(),
	})
}
