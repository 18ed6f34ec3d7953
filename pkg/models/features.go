package models

import "fmt"

type TimeBucket string

const (
	BucketEarlyMorning TimeBucket = "Early_Morning"
	BucketMorning      TimeBucket = "Morning"
	BucketAfternoon    TimeBucket = "Afternoon"
	BucketEvening      TimeBucket = "Evening"
)

func (b TimeBucket) Valid() bool {
	switch b {
	case BucketEarlyMorning, BucketMorning, BucketAfternoon, BucketEvening:
		return true
	default:
		return false
	}
}

// FlightFeatures is the record handed to the fare predictor. It is passed by
// value; sweeps derive new records through the With* helpers.
type FlightFeatures struct {
	Airline       string     `json:"airline"`
	Route         string     `json:"route"`
	DepartureTime TimeBucket `json:"departure_time"`
	ArrivalTime   TimeBucket `json:"arrival_time"`
	Class         string     `json:"class"`
	DaysLeft      int        `json:"days_left"`
	Duration      float64    `json:"duration"`
	Stops         int        `json:"stops"`
	SeatsLeft     int        `json:"seats_left"`
	DemandIndex   float64    `json:"demand_index"`
}

func (f FlightFeatures) WithDaysLeft(days int) FlightFeatures {
	f.DaysLeft = days
	return f
}

func (f FlightFeatures) WithSeatsLeft(seats int) FlightFeatures {
	f.SeatsLeft = seats
	return f
}

func (f FlightFeatures) WithDemandIndex(demand float64) FlightFeatures {
	f.DemandIndex = demand
	return f
}

// FareKey identifies a base fare entry.
func (f FlightFeatures) FareKey() FareKey {
	return FareKey{Route: f.Route, Class: f.Class}
}

type FareKey struct {
	Route string `json:"route" yaml:"route" mapstructure:"route"`
	Class string `json:"class" yaml:"class" mapstructure:"class"`
}

func (k FareKey) String() string {
	return fmt.Sprintf("%s/%s", k.Route, k.Class)
}

// RouteFor builds the ORIGIN_DEST route identifier.
func RouteFor(source, destination string) string {
	return source + "_" + destination
}
