package faretable

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	rows []Entry
	err  error
}

func (s stubSource) LoadFares(ctx context.Context) ([]Entry, error) {
	return s.rows, s.err
}

func TestTable_Lookup(t *testing.T) {
	table := NewDefault()

	tests := []struct {
		name     string
		route    string
		class    string
		expected float64
		found    bool
	}{
		{"economy hit", "Delhi_Mumbai", "Economy", 5000, true},
		{"business hit", "Delhi_Mumbai", "Business", 12000, true},
		{"other route", "Delhi_Bangalore", "Business", 14000, true},
		{"unknown class falls back", "Delhi_Mumbai", "First", 5000, false},
		{"unknown route falls back", "Chennai_Kolkata", "Economy", 5000, false},
		{"reversed route is not matched", "Mumbai_Delhi", "Economy", 5000, false},
		{"case sensitive", "delhi_mumbai", "economy", 5000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.Lookup(tt.route, tt.class))

			fare, found := table.Resolve(tt.route, tt.class)
			assert.Equal(t, tt.expected, fare)
			assert.Equal(t, tt.found, found)
		})
	}
}

func TestNew_DefaultsFallback(t *testing.T) {
	table := New(nil, 0)

	assert.Equal(t, DefaultFallbackFare, table.Fallback())
	assert.Equal(t, DefaultFallbackFare, table.Lookup("X_Y", "Economy"))
}

func TestLoad_OverlaysSource(t *testing.T) {
	src := stubSource{rows: []Entry{
		{Route: "Delhi_Mumbai", Class: "Economy", Fare: 5200},
		{Route: "Chennai_Kolkata", Class: "Economy", Fare: 4800},
	}}

	table, err := Load(context.Background(), src, DefaultEntries, 7000)

	require.NoError(t, err)
	assert.Equal(t, 5200.0, table.Lookup("Delhi_Mumbai", "Economy"))
	assert.Equal(t, 4800.0, table.Lookup("Chennai_Kolkata", "Economy"))
	assert.Equal(t, 12000.0, table.Lookup("Delhi_Mumbai", "Business"))
	assert.Equal(t, 7000.0, table.Lookup("Chennai_Kolkata", "Business"))
}

func TestLoad_SourceError(t *testing.T) {
	_, err := Load(context.Background(), stubSource{err: errors.New("db down")}, DefaultEntries, 0)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
