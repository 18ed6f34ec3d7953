package events

import (
	"context"
	"sync"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

// Sink receives every event the dispatcher consumes.
type Sink interface {
	Write(ctx context.Context, event *models.Event) error
	Close() error
}

// Dispatcher drains a bus subscription, logs each event and forwards it to
// the configured sinks. Sink errors are logged and never stop the loop.
type Dispatcher struct {
	eventChan <-chan *models.Event
	sinks     []Sink
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewDispatcher(eventChan <-chan *models.Event, sinks ...Sink) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		eventChan: eventChan,
		sinks:     sinks,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop halts the loop and closes every sink.
func (d *Dispatcher) Stop() {
	d.cancel()
	d.wg.Wait()

	for _, s := range d.sinks {
		if err := s.Close(); err != nil {
			logger.Errorf("Failed to close event sink: %v", err)
		}
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case event, ok := <-d.eventChan:
			if !ok {
				return
			}
			d.processEvent(event)
		}
	}
}

func (d *Dispatcher) processEvent(event *models.Event) {
	entry := logger.WithFields(map[string]interface{}{
		"event_type": event.Type,
		"route":      event.Route,
		"severity":   event.Severity,
		"trace_id":   event.TraceID,
	})

	switch event.Severity {
	case models.SeverityCritical:
		entry.Error(event.Message)
	case models.SeverityWarning:
		entry.Warn(event.Message)
	default:
		entry.Debug(event.Message)
	}

	for _, s := range d.sinks {
		if err := s.Write(d.ctx, event); err != nil {
			logger.Errorf("Failed to forward event %s: %v", event.ID, err)
		}
	}
}
