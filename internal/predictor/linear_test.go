package predictor

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/airfare-pricer/pkg/models"
)

const testArtifact = `
name: test-model
version: "1"
intercept: 1.0
strict: %s
numeric:
  days_left: -0.01
  demand_index: 0.5
categorical:
  class:
    Economy: 0.0
    Business: 0.2
`

func newTestModel(t *testing.T, strict bool) *LinearModel {
	t.Helper()
	flag := "false"
	if strict {
		flag = "true"
	}
	m, err := ParseLinearModel([]byte(fmt.Sprintf(testArtifact, flag)))
	require.NoError(t, err)
	return m
}

func testFeatures() models.FlightFeatures {
	return models.FlightFeatures{
		Airline:       "IndiGo",
		Route:         "Delhi_Mumbai",
		DepartureTime: models.BucketMorning,
		ArrivalTime:   models.BucketMorning,
		Class:         "Business",
		DaysLeft:      10,
		Duration:      2.1,
		SeatsLeft:     40,
		DemandIndex:   1.2,
	}
}

func TestLinearModel_Predict(t *testing.T) {
	m := newTestModel(t, false)

	got, err := m.Predict(context.Background(), testFeatures())
	require.NoError(t, err)

	// 1.0 - 0.01*10 + 0.5*1.2 + 0.2
	assert.InDelta(t, 1.7, got, 1e-9)
	assert.Equal(t, "test-model@1", m.Name())
}

func TestLinearModel_Deterministic(t *testing.T) {
	m := newTestModel(t, false)
	f := testFeatures()

	first, err := m.Predict(context.Background(), f)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		again, err := m.Predict(context.Background(), f)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLinearModel_UnknownCategory(t *testing.T) {
	f := testFeatures()
	f.Class = "First"

	t.Run("lenient model ignores unseen level", func(t *testing.T) {
		got, err := newTestModel(t, false).Predict(context.Background(), f)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, got, 1e-9)
	})

	t.Run("strict model rejects unseen level", func(t *testing.T) {
		_, err := newTestModel(t, true).Predict(context.Background(), f)
		assert.ErrorIs(t, err, ErrInvalidFeatures)
	})
}

func TestLinearModel_NonFiniteFeature(t *testing.T) {
	f := testFeatures()
	f.DemandIndex = math.NaN()

	_, err := newTestModel(t, false).Predict(context.Background(), f)
	assert.ErrorIs(t, err, ErrInvalidFeatures)
}

func TestLinearModel_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestModel(t, false).Predict(ctx, testFeatures())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLinearModel_RejectsUnknownFeatures(t *testing.T) {
	tests := []struct {
		name     string
		artifact LinearArtifact
	}{
		{
			name:     "numeric",
			artifact: LinearArtifact{Numeric: map[string]float64{"altitude": 1}},
		},
		{
			name:     "categorical",
			artifact: LinearArtifact{Categorical: map[string]map[string]float64{"meal": {"veg": 1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLinearModel(tt.artifact)
			assert.ErrorIs(t, err, ErrModelNotLoaded)
		})
	}
}

func TestLoadLinearModel(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLinearModel(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, ErrModelNotLoaded)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := LoadLinearModel("")
		assert.ErrorIs(t, err, ErrModelNotLoaded)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("numeric: [1, 2"), 0o644))
		_, err := LoadLinearModel(path)
		assert.ErrorIs(t, err, ErrModelNotLoaded)
	})

	t.Run("bundled model", func(t *testing.T) {
		m, err := LoadLinearModel(filepath.Join("..", "..", "models", "fare_model.yaml"))
		require.NoError(t, err)

		got, err := m.Predict(context.Background(), testFeatures())
		require.NoError(t, err)
		assert.Greater(t, got, 0.5)
		assert.Less(t, got, 2.0)
	})
}
