package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

// HTTPPredictor calls a remote model server that exposes POST /predict.
type HTTPPredictor struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

type HTTPPredictorConfig struct {
	Endpoint string
	Timeout  time.Duration
}

func NewHTTPPredictor(cfg HTTPPredictorConfig) *HTTPPredictor {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}

	return &HTTPPredictor{
		client: &http.Client{
			Timeout: timeout,
		},
		endpoint: cfg.Endpoint,
		timeout:  timeout,
	}
}

// PredictResponse is the body returned by the model server.
type PredictResponse struct {
	Multiplier float64 `json:"multiplier"`
	Model      string  `json:"model,omitempty"`
}

func (p *HTTPPredictor) Predict(ctx context.Context, features models.FlightFeatures) (float64, error) {
	payload, err := json.Marshal(features)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFeatures, err)
	}

	url := fmt.Sprintf("%s/predict", p.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrPredictionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if traceID := logger.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	logger.WithRouteCtx(ctx, features.Route, features.Class).Debugf("Requesting multiplier from %s", url)

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
			return 0, ErrTimeout
		}
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("%w: model server rejected record: %s", ErrInvalidFeatures, bytes.TrimSpace(msg))
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("%w: unexpected status code %d", ErrPredictionFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read response body: %v", ErrPredictionFailed, err)
	}

	var out PredictResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if math.IsNaN(out.Multiplier) || math.IsInf(out.Multiplier, 0) {
		return 0, fmt.Errorf("%w: multiplier is not finite", ErrInvalidResponse)
	}

	return out.Multiplier, nil
}

func (p *HTTPPredictor) Name() string {
	return "http:" + p.endpoint
}

func (p *HTTPPredictor) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", p.endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

func (p *HTTPPredictor) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
