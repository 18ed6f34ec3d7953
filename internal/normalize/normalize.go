// Package normalize derives predictor inputs from raw request fields.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/OldStager01/airfare-pricer/pkg/models"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid travel date")

// TimeBucket maps an hour of day onto its day-part label. Hours outside 0-23
// follow the same thresholds.
func TimeBucket(hour int) models.TimeBucket {
	switch {
	case hour < 6:
		return models.BucketEarlyMorning
	case hour < 12:
		return models.BucketMorning
	case hour < 18:
		return models.BucketAfternoon
	default:
		return models.BucketEvening
	}
}

// DaysToDeparture returns the whole days between now and midnight of the
// travel date, floored and clamped to a minimum of 1. The date is interpreted
// in now's location.
func DaysToDeparture(date string, now time.Time) (int, error) {
	travel, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDate, date, err)
	}
	return ClampDays(travel.Sub(now)), nil
}

// ClampDays floors a duration to whole days and never returns less than 1.
func ClampDays(d time.Duration) int {
	days := int(math.Floor(d.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Normalizer binds the date conversion to a clock so handlers and tests can
// share the same rules.
type Normalizer struct {
	now func() time.Time
}

func New(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

func (n *Normalizer) TimeBucket(hour int) models.TimeBucket {
	return TimeBucket(hour)
}

func (n *Normalizer) DaysToDeparture(date string) (int, error) {
	return DaysToDeparture(date, n.now())
}
