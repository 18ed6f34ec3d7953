package models

import "time"

type EventType string

const (
	EventTypeQuoteComputed    EventType = "quote_computed"
	EventTypeQuoteFailed      EventType = "quote_failed"
	EventTypeSearchCompleted  EventType = "search_completed"
	EventTypePredictorCircuit EventType = "predictor_circuit"
)

type EventSeverity string

const (
	SeverityInfo     EventSeverity = "info"
	SeverityWarning  EventSeverity = "warning"
	SeverityCritical EventSeverity = "critical"
)

// Event represents an internal system event
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Severity  EventSeverity `json:"severity"`
	Route     string        `json:"route,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Message   string        `json:"message"`
	Data      interface{}   `json:"data,omitempty"`
	TraceID   string        `json:"trace_id,omitempty"`
}

func NewEvent(eventType EventType, route, message string) *Event {
	return &Event{
		ID:        NewUUID(),
		Type:      eventType,
		Severity:  SeverityInfo,
		Route:     route,
		Timestamp: time.Now(),
		Message:   message,
	}
}

func (e *Event) WithSeverity(severity EventSeverity) *Event {
	e.Severity = severity
	return e
}

func (e *Event) WithData(data interface{}) *Event {
	e.Data = data
	return e
}

func (e *Event) WithTraceID(traceID string) *Event {
	e.TraceID = traceID
	return e
}

// QuoteEvent is the payload carried by quote_computed events.
type QuoteEvent struct {
	Operation    Operation `json:"operation"`
	Route        string    `json:"route"`
	Class        string    `json:"class"`
	Airline      string    `json:"airline,omitempty"`
	BaseFare     float64   `json:"base_fare"`
	MLMultiplier float64   `json:"ml_multiplier"`
	FinalPrice   float64   `json:"final_price"`
	Count        int       `json:"count,omitempty"`
}
