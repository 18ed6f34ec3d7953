// Package adjustment holds the rule-based price amplifiers applied on top of
// the model multiplier.
package adjustment

const (
	NoAdjustment = 1.00

	seatCritical = 1.20
	seatLow      = 1.10
	seatModerate = 1.05

	demandExtreme  = 1.25
	demandHigh     = 1.15
	demandModerate = 1.05
)

// SeatPressure amplifies the price as remaining seats fall below fixed
// thresholds. Boundary values belong to the scarcer tier.
func SeatPressure(seatsLeft int) float64 {
	switch {
	case seatsLeft <= 10:
		return seatCritical
	case seatsLeft <= 20:
		return seatLow
	case seatsLeft <= 50:
		return seatModerate
	default:
		return NoAdjustment
	}
}

// DemandPressure amplifies the price as the demand index rises. Lower bounds
// are inclusive.
func DemandPressure(demandIndex float64) float64 {
	switch {
	case demandIndex >= 1.4:
		return demandExtreme
	case demandIndex >= 1.2:
		return demandHigh
	case demandIndex >= 1.0:
		return demandModerate
	default:
		return NoAdjustment
	}
}
