package handlers

import (
	"fmt"

	"github.com/OldStager01/airfare-pricer/internal/normalize"
	"github.com/OldStager01/airfare-pricer/pkg/models"
	"github.com/OldStager01/airfare-pricer/pkg/validation"
)

// FlightRequest is the body shared by predict, simulate and explain.
// departure_hour/arrival_hour take precedence over the bucket names and
// travel_date over days_left.
type FlightRequest struct {
	Airline       string  `json:"airline" binding:"required" example:"IndiGo"`
	Route         string  `json:"route" binding:"required" example:"Delhi_Mumbai"`
	DepartureTime string  `json:"departure_time" example:"Morning"`
	ArrivalTime   string  `json:"arrival_time" example:"Afternoon"`
	DepartureHour *int    `json:"departure_hour,omitempty" example:"9"`
	ArrivalHour   *int    `json:"arrival_hour,omitempty" example:"11"`
	Class         string  `json:"class_" binding:"required" example:"Economy"`
	DaysLeft      int     `json:"days_left" example:"10"`
	TravelDate    string  `json:"travel_date,omitempty" example:"2025-03-01"`
	Duration      float64 `json:"duration" binding:"min=0" example:"2.1"`
	Stops         int     `json:"stops" binding:"min=0" example:"0"`
	SeatsLeft     int     `json:"seats_left" binding:"min=0" example:"40"`
	DemandIndex   float64 `json:"demand_index" example:"1.1"`
}

// Features validates the request and builds the predictor record. Validation
// failures wrap validation.ErrInvalidInput, bad dates normalize.ErrInvalidDate.
func (r *FlightRequest) Features(n *normalize.Normalizer) (models.FlightFeatures, error) {
	f := models.FlightFeatures{
		Airline:     validation.SanitizeString(r.Airline),
		Route:       validation.SanitizeString(r.Route),
		Class:       validation.SanitizeString(r.Class),
		DaysLeft:    r.DaysLeft,
		Duration:    r.Duration,
		Stops:       r.Stops,
		SeatsLeft:   r.SeatsLeft,
		DemandIndex: r.DemandIndex,
	}

	if err := validation.ValidateLabel("airline", f.Airline); err != nil {
		return f, err
	}
	if err := validation.ValidateRoute(f.Route); err != nil {
		return f, err
	}
	if err := validation.ValidateLabel("class_", f.Class); err != nil {
		return f, err
	}

	dep, err := bucketFor("departure", r.DepartureTime, r.DepartureHour, n)
	if err != nil {
		return f, err
	}
	arr, err := bucketFor("arrival", r.ArrivalTime, r.ArrivalHour, n)
	if err != nil {
		return f, err
	}
	f.DepartureTime, f.ArrivalTime = dep, arr

	if r.TravelDate != "" {
		days, err := n.DaysToDeparture(r.TravelDate)
		if err != nil {
			return f, err
		}
		f.DaysLeft = days
	} else if f.DaysLeft < 1 {
		return f, fmt.Errorf("%w: days_left must be at least 1", validation.ErrInvalidInput)
	}

	return f, nil
}

func bucketFor(field, name string, hour *int, n *normalize.Normalizer) (models.TimeBucket, error) {
	if hour != nil {
		if err := validation.ValidateHour(field+"_hour", *hour); err != nil {
			return "", err
		}
		return n.TimeBucket(*hour), nil
	}

	b := models.TimeBucket(validation.SanitizeString(name))
	if b == "" {
		return "", fmt.Errorf("%w: %s_time or %s_hour is required", validation.ErrInvalidInput, field, field)
	}
	return b, nil
}

type SearchRequest struct {
	Source      string `json:"source" binding:"required" example:"Delhi"`
	Destination string `json:"destination" binding:"required" example:"Mumbai"`
	FlightClass string `json:"flight_class" binding:"required" example:"Economy"`
}

func (r *SearchRequest) Validate() error {
	r.Source = validation.SanitizeString(r.Source)
	r.Destination = validation.SanitizeString(r.Destination)
	r.FlightClass = validation.SanitizeString(r.FlightClass)

	if err := validation.ValidateCity(r.Source); err != nil {
		return err
	}
	if err := validation.ValidateCity(r.Destination); err != nil {
		return err
	}
	return validation.ValidateLabel("flight_class", r.FlightClass)
}

type ErrorResponse struct {
	Error string `json:"error" example:"invalid feature record"`
	Code  string `json:"code,omitempty" example:"invalid_features"`
}

type PredictResponse struct {
	Route           string  `json:"route" example:"Delhi_Mumbai"`
	Class           string  `json:"class" example:"Economy"`
	BaseFare        float64 `json:"base_fare" example:"5000"`
	PriceMultiplier float64 `json:"price_multiplier" example:"1.042"`
	FinalPrice      float64 `json:"final_price" example:"5210.5"`
}

type DaysLeftPoint struct {
	DaysLeft int     `json:"days_left" example:"30"`
	Price    float64 `json:"price" example:"4980.12"`
}

type SimulateResponse struct {
	Route      string          `json:"route"`
	Class      string          `json:"class"`
	Simulation []DaysLeftPoint `json:"simulation"`
}

type SeatPoint struct {
	SeatsLeft    int     `json:"seats_left" example:"20"`
	MLMultiplier float64 `json:"ml_multiplier" example:"1.042"`
	SeatFactor   float64 `json:"seat_factor" example:"1.1"`
	FinalPrice   float64 `json:"final_price" example:"5731.55"`
}

type SeatSimulationResponse struct {
	Route                  string      `json:"route"`
	Class                  string      `json:"class"`
	SeatPressureSimulation []SeatPoint `json:"seat_pressure_simulation"`
}

type DemandPoint struct {
	DemandIndex  float64 `json:"demand_index" example:"1.2"`
	MLMultiplier float64 `json:"ml_multiplier" example:"1.042"`
	DemandFactor float64 `json:"demand_factor" example:"1.15"`
	FinalPrice   float64 `json:"final_price" example:"5992.08"`
}

type DemandSimulationResponse struct {
	Route            string        `json:"route"`
	Class            string        `json:"class"`
	DemandSimulation []DemandPoint `json:"demand_simulation"`
}

type ExplainResponse struct {
	BaseFare     float64  `json:"base_fare" example:"5000"`
	MLMultiplier float64  `json:"ml_multiplier" example:"1.042"`
	SeatFactor   float64  `json:"seat_factor" example:"1.2"`
	DemandFactor float64  `json:"demand_factor" example:"1.05"`
	FinalPrice   float64  `json:"final_price" example:"6564.6"`
	Explanation  []string `json:"explanation"`
}

type FlightResponse struct {
	Airline       string  `json:"airline" example:"IndiGo"`
	DepartureTime string  `json:"departure_time" example:"06:00"`
	ArrivalTime   string  `json:"arrival_time" example:"08:00"`
	Duration      string  `json:"duration" example:"2h 6m"`
	Stops         string  `json:"stops" example:"Non-stop"`
	SeatsLeft     int     `json:"seats_left" example:"12"`
	Price         float64 `json:"price" example:"6120.4"`
}

type SearchResponse struct {
	Route   string           `json:"route" example:"Delhi_Mumbai"`
	Class   string           `json:"class" example:"Economy"`
	Flights []FlightResponse `json:"flights"`
}
