// Package faretable resolves the static base fare for a route and cabin class.
package faretable

import (
	"context"
	"fmt"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

const DefaultFallbackFare = 5000.0

// Entry is one base fare row.
type Entry struct {
	Route string
	Class string
	Fare  float64
}

// DefaultEntries is the built-in fare table.
var DefaultEntries = []Entry{
	{Route: "Delhi_Mumbai", Class: "Economy", Fare: 5000},
	{Route: "Delhi_Mumbai", Class: "Business", Fare: 12000},
	{Route: "Mumbai_Bangalore", Class: "Economy", Fare: 4500},
	{Route: "Mumbai_Bangalore", Class: "Business", Fare: 11000},
	{Route: "Delhi_Bangalore", Class: "Economy", Fare: 6000},
	{Route: "Delhi_Bangalore", Class: "Business", Fare: 14000},
}

// Table is populated once and never mutated afterwards, so it is safe for
// concurrent readers without locking.
type Table struct {
	fares    map[models.FareKey]float64
	fallback float64
}

func New(entries []Entry, fallback float64) *Table {
	if fallback <= 0 {
		fallback = DefaultFallbackFare
	}

	fares := make(map[models.FareKey]float64, len(entries))
	for _, e := range entries {
		fares[models.FareKey{Route: e.Route, Class: e.Class}] = e.Fare
	}

	return &Table{fares: fares, fallback: fallback}
}

// NewDefault builds the built-in table with the standard fallback.
func NewDefault() *Table {
	return New(DefaultEntries, DefaultFallbackFare)
}

// Lookup never fails: unknown keys resolve to the fallback fare.
func (t *Table) Lookup(route, class string) float64 {
	fare, _ := t.Resolve(route, class)
	return fare
}

// Resolve is Lookup that also reports whether the key was present.
func (t *Table) Resolve(route, class string) (float64, bool) {
	if fare, ok := t.fares[models.FareKey{Route: route, Class: class}]; ok {
		return fare, true
	}
	return t.fallback, false
}

func (t *Table) Fallback() float64 {
	return t.fallback
}

func (t *Table) Len() int {
	return len(t.fares)
}

// Source supplies fare rows at startup.
type Source interface {
	LoadFares(ctx context.Context) ([]Entry, error)
}

// Load builds a table from base entries overlaid with rows from src.
func Load(ctx context.Context, src Source, base []Entry, fallback float64) (*Table, error) {
	entries := append([]Entry(nil), base...)

	if src != nil {
		rows, err := src.LoadFares(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load fares: %w", err)
		}
		entries = append(entries, rows...)
	}

	table := New(entries, fallback)
	logger.Infof("Fare table loaded with %d entries (fallback %.2f)", table.Len(), table.Fallback())
	return table, nil
}
