package predictor

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/OldStager01/airfare-pricer/pkg/models"
)

var numericFeatures = map[string]func(models.FlightFeatures) float64{
	"days_left":    func(f models.FlightFeatures) float64 { return float64(f.DaysLeft) },
	"duration":     func(f models.FlightFeatures) float64 { return f.Duration },
	"stops":        func(f models.FlightFeatures) float64 { return float64(f.Stops) },
	"seats_left":   func(f models.FlightFeatures) float64 { return float64(f.SeatsLeft) },
	"demand_index": func(f models.FlightFeatures) float64 { return f.DemandIndex },
}

var categoricalFeatures = map[string]func(models.FlightFeatures) string{
	"airline":        func(f models.FlightFeatures) string { return f.Airline },
	"route":          func(f models.FlightFeatures) string { return f.Route },
	"departure_time": func(f models.FlightFeatures) string { return string(f.DepartureTime) },
	"arrival_time":   func(f models.FlightFeatures) string { return string(f.ArrivalTime) },
	"class":          func(f models.FlightFeatures) string { return f.Class },
}

// LinearArtifact is the on-disk form of a trained linear regression:
// an intercept, one coefficient per numeric feature and one-hot weights per
// categorical level.
type LinearArtifact struct {
	Name        string                        `yaml:"name"`
	Version     string                        `yaml:"version"`
	Intercept   float64                       `yaml:"intercept"`
	Strict      bool                          `yaml:"strict"`
	Numeric     map[string]float64            `yaml:"numeric"`
	Categorical map[string]map[string]float64 `yaml:"categorical"`
}

// LinearModel evaluates a LinearArtifact. It is immutable after loading.
type LinearModel struct {
	artifact    LinearArtifact
	numeric     []string
	categorical []string
}

func LoadLinearModel(path string) (*LinearModel, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: model path is empty", ErrModelNotLoaded)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelNotLoaded, err)
	}

	return ParseLinearModel(data)
}

func ParseLinearModel(data []byte) (*LinearModel, error) {
	var artifact LinearArtifact
	if err := yaml.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: failed to parse model artifact: %v", ErrModelNotLoaded, err)
	}
	return NewLinearModel(artifact)
}

func NewLinearModel(artifact LinearArtifact) (*LinearModel, error) {
	numeric := make([]string, 0, len(artifact.Numeric))
	for name := range artifact.Numeric {
		if _, ok := numericFeatures[name]; !ok {
			return nil, fmt.Errorf("%w: unknown numeric feature %q", ErrModelNotLoaded, name)
		}
		numeric = append(numeric, name)
	}
	sort.Strings(numeric)

	categorical := make([]string, 0, len(artifact.Categorical))
	for name := range artifact.Categorical {
		if _, ok := categoricalFeatures[name]; !ok {
			return nil, fmt.Errorf("%w: unknown categorical feature %q", ErrModelNotLoaded, name)
		}
		categorical = append(categorical, name)
	}
	sort.Strings(categorical)

	if artifact.Name == "" {
		artifact.Name = "linear"
	}

	return &LinearModel{artifact: artifact, numeric: numeric, categorical: categorical}, nil
}

func (m *LinearModel) Predict(ctx context.Context, features models.FlightFeatures) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	total := m.artifact.Intercept

	for _, name := range m.numeric {
		v := numericFeatures[name](features)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %s is not a finite number", ErrInvalidFeatures, name)
		}
		total += m.artifact.Numeric[name] * v
	}

	// Fixed summation order keeps results bit-identical across calls.
	for _, name := range m.categorical {
		level := categoricalFeatures[name](features)
		weight, ok := m.artifact.Categorical[name][level]
		if !ok && m.artifact.Strict {
			return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidFeatures, name, level)
		}
		total += weight
	}

	return total, nil
}

func (m *LinearModel) Name() string {
	if m.artifact.Version == "" {
		return m.artifact.Name
	}
	return m.artifact.Name + "@" + m.artifact.Version
}

func (m *LinearModel) Artifact() LinearArtifact {
	return m.artifact
}
