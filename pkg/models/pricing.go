package models

type Operation string

const (
	OperationPredict        Operation = "predict"
	OperationSimulate       Operation = "simulate"
	OperationSimulateSeats  Operation = "simulate_seats"
	OperationSimulateDemand Operation = "simulate_demand"
	OperationExplain        Operation = "explain"
	OperationSearch         Operation = "search"
)

// PricingResult is the breakdown of one priced flight. Factors that were not
// part of the pricing policy are reported as 1.0 so that
// FinalPrice == BaseFare * MLMultiplier * SeatFactor * DemandFactor always holds.
type PricingResult struct {
	Features      FlightFeatures `json:"-"`
	BaseFare      float64        `json:"base_fare"`
	FareFallback  bool           `json:"-"`
	MLMultiplier  float64        `json:"ml_multiplier"`
	SeatFactor    float64        `json:"seat_factor"`
	DemandFactor  float64        `json:"demand_factor"`
	SeatApplied   bool           `json:"-"`
	DemandApplied bool           `json:"-"`
	FinalPrice    float64        `json:"final_price"`
}

func (r *PricingResult) RoundedPrice() float64 {
	return Round(r.FinalPrice, 2)
}

func (r *PricingResult) RoundedMultiplier() float64 {
	return Round(r.MLMultiplier, 3)
}

// CandidateFlight is one synthesized search result.
type CandidateFlight struct {
	Airline       string
	DepartureHour int
	ArrivalHour   int
	SeatsLeft     int
	DemandIndex   float64
	Pricing       *PricingResult
}
