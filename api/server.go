package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/OldStager01/airfare-pricer/api/handlers"
	"github.com/OldStager01/airfare-pricer/api/middleware"
	"github.com/OldStager01/airfare-pricer/api/websocket"
	_ "github.com/OldStager01/airfare-pricer/docs"
	"github.com/OldStager01/airfare-pricer/internal/metrics"
	"github.com/OldStager01/airfare-pricer/internal/predictor"
	"github.com/OldStager01/airfare-pricer/pkg/config"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

// Dependencies are the process-wide collaborators the HTTP layer serves.
type Dependencies struct {
	Pricing   handlers.PricingHandlerConfig
	Predictor predictor.Predictor

	// Limiter is optional; nil disables rate limiting.
	Limiter middleware.Limiter

	// Events feeds the websocket bridge; nil leaves /ws without a feed.
	Events <-chan *models.Event

	Checks map[string]handlers.CheckFunc
}

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	deps       Dependencies
	wsHub      *websocket.Hub
	wsBridge   *websocket.EventBridge
}

func NewServer(cfg *config.Config, deps Dependencies) *Server {
	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.App.Mode == "test" {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s := &Server{
		router: gin.New(),
		config: cfg,
		deps:   deps,
	}

	if cfg.WebSocket.Enabled {
		s.wsHub = websocket.NewHub(&cfg.WebSocket)
		go s.wsHub.Run()

		if deps.Events != nil {
			s.wsBridge = websocket.NewEventBridge(s.wsHub, deps.Events)
			s.wsBridge.Start()
		}
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	cors := s.config.API.CORS

	s.router.Use(gin.Recovery())
	s.router.Use(middleware.TraceID())
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cors.AllowedOrigins,
		AllowMethods:     cors.AllowedMethods,
		AllowHeaders:     cors.AllowedHeaders,
		ExposeHeaders:    cors.ExposedHeaders,
		AllowCredentials: cors.AllowCredentials,
	}))
	s.router.Use(middleware.RequestSizeLimit(s.config.API.MaxBodyBytes))
}

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.deps.Predictor)
	for name, check := range s.deps.Checks {
		healthHandler.AddCheck(name, check)
	}
	pricingHandler := handlers.NewPricingHandler(s.deps.Pricing)

	// Public routes
	s.router.GET("/", healthHandler.Root)
	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/ready", healthHandler.Ready)
	s.router.GET("/health/live", healthHandler.Live)
	s.router.GET("/metrics", gin.WrapH(metrics.Get().Handler()))
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if s.wsHub != nil {
		s.router.GET("/ws", websocket.ServeWebSocket(s.wsHub))
	}

	// Pricing routes
	priced := s.router.Group("/")
	if s.deps.Limiter != nil {
		rl := s.config.RateLimit
		priced.Use(middleware.RateLimit(s.deps.Limiter, middleware.RateLimitOptions{
			Prefix:      rl.Prefix,
			KeyStrategy: rl.KeyStrategy,
		}))
	}
	{
		priced.POST("/search", pricingHandler.Search)
		priced.POST("/predict", pricingHandler.Predict)
		priced.POST("/explain", pricingHandler.Explain)
		priced.POST("/simulate", pricingHandler.Simulate)
		priced.POST("/simulate/seats", pricingHandler.SimulateSeats)
		priced.POST("/simulate/demand", pricingHandler.SimulateDemand)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.API.Port)

	idle := s.config.API.IdleTimeout
	if idle <= 0 {
		idle = 60 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.API.ReadTimeout,
		WriteTimeout: s.config.API.WriteTimeout,
		IdleTimeout:  idle,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.wsBridge != nil {
		s.wsBridge.Stop()
	}
	if s.wsHub != nil {
		s.wsHub.Stop()
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}
