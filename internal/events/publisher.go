package events

import (
	"github.com/OldStager01/airfare-pricer/internal/resilience"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

type Publisher struct {
	bus     *EventBus
	traceID string
}

func NewPublisher(bus *EventBus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) WithTraceID(traceID string) *Publisher {
	if p == nil {
		return nil
	}
	return &Publisher{
		bus:     p.bus,
		traceID: traceID,
	}
}

func (p *Publisher) publish(event *models.Event) {
	if p == nil || p.bus == nil {
		return
	}
	if p.traceID != "" {
		event.TraceID = p.traceID
	}
	p.bus.Publish(event)
}

func (p *Publisher) QuoteComputed(op models.Operation, result *models.PricingResult) {
	f := result.Features
	msg := "Quote computed: " + string(op)
	event := models.NewEvent(models.EventTypeQuoteComputed, f.Route, msg).
		WithData(&models.QuoteEvent{
			Operation:    op,
			Route:        f.Route,
			Class:        f.Class,
			Airline:      f.Airline,
			BaseFare:     result.BaseFare,
			MLMultiplier: result.RoundedMultiplier(),
			FinalPrice:   result.RoundedPrice(),
		})
	if result.FareFallback {
		event.WithSeverity(models.SeverityWarning)
	}
	p.publish(event)
}

// SweepComputed publishes one event per sweep carrying the last point, which
// is the extreme of the series.
func (p *Publisher) SweepComputed(op models.Operation, results []*models.PricingResult) {
	if len(results) == 0 {
		return
	}
	last := results[len(results)-1]
	f := last.Features
	event := models.NewEvent(models.EventTypeQuoteComputed, f.Route, "Sweep computed: "+string(op)).
		WithData(&models.QuoteEvent{
			Operation:    op,
			Route:        f.Route,
			Class:        f.Class,
			Airline:      f.Airline,
			BaseFare:     last.BaseFare,
			MLMultiplier: last.RoundedMultiplier(),
			FinalPrice:   last.RoundedPrice(),
			Count:        len(results),
		})
	p.publish(event)
}

func (p *Publisher) SearchCompleted(route, class string, flights []models.CandidateFlight) {
	quote := &models.QuoteEvent{
		Operation: models.OperationSearch,
		Route:     route,
		Class:     class,
		Count:     len(flights),
	}
	if len(flights) > 0 && flights[0].Pricing != nil {
		cheapest := flights[0]
		quote.Airline = cheapest.Airline
		quote.BaseFare = cheapest.Pricing.BaseFare
		quote.MLMultiplier = cheapest.Pricing.RoundedMultiplier()
		quote.FinalPrice = cheapest.Pricing.RoundedPrice()
	}

	event := models.NewEvent(models.EventTypeSearchCompleted, route, "Search completed").
		WithData(quote)
	p.publish(event)
}

func (p *Publisher) QuoteFailed(op models.Operation, route, class string, err error) {
	event := models.NewEvent(models.EventTypeQuoteFailed, route, "Quote failed: "+string(op)).
		WithSeverity(models.SeverityWarning).
		WithData(map[string]interface{}{
			"operation": op,
			"class":     class,
			"error":     err.Error(),
		})
	p.publish(event)
}

func (p *Publisher) CircuitChanged(name string, from, to resilience.State) {
	severity := models.SeverityInfo
	if to == resilience.StateOpen {
		severity = models.SeverityCritical
	}

	event := models.NewEvent(models.EventTypePredictorCircuit, "", "Circuit "+name+" "+from.String()+" -> "+to.String()).
		WithSeverity(severity).
		WithData(map[string]interface{}{
			"name": name,
			"from": from.String(),
			"to":   to.String(),
		})
	p.publish(event)
}
