package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/airfare-pricer/internal/predictor"
	"github.com/OldStager01/airfare-pricer/internal/resilience"
)

// CheckFunc reports the health of one dependency.
type CheckFunc func(ctx context.Context) error

type HealthHandler struct {
	predictor predictor.Predictor
	checks    map[string]CheckFunc
}

func NewHealthHandler(p predictor.Predictor) *HealthHandler {
	return &HealthHandler{
		predictor: p,
		checks:    make(map[string]CheckFunc),
	}
}

// AddCheck registers an extra readiness dependency, e.g. the rate limit store.
func (h *HealthHandler) AddCheck(name string, fn CheckFunc) {
	h.checks[name] = fn
}

type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Model     string            `json:"model,omitempty" example:"fare-linear@1.0.0"`
	Timestamp string            `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Root godoc
// @Summary Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "backend working, model loaded"})
}

// Health godoc
// @Summary Health check
// @Description Reports predictor and dependency health
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks, healthy := h.runChecks(ctx)

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Model:     h.predictor.Name(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// Ready godoc
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, healthy := h.runChecks(ctx); !healthy {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "not ready",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Live godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

type circuitReporter interface {
	CircuitState() resilience.State
}

func (h *HealthHandler) runChecks(ctx context.Context) (map[string]string, bool) {
	checks := make(map[string]string)
	healthy := true

	if hc, ok := h.predictor.(predictor.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			checks["predictor"] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			checks["predictor"] = "healthy"
		}
	} else {
		checks["predictor"] = "loaded"
	}

	if cr, ok := h.predictor.(circuitReporter); ok {
		state := cr.CircuitState()
		checks["predictor_circuit"] = state.String()
		if state == resilience.StateOpen {
			healthy = false
		}
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			checks[name] = "healthy"
		}
	}

	return checks, healthy
}
