package websocket

import (
	"context"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

// EventBridge forwards bus events to websocket clients.
type EventBridge struct {
	hub        *Hub
	eventsChan <-chan *models.Event
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewEventBridge(hub *Hub, eventsChan <-chan *models.Event) *EventBridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventBridge{
		hub:        hub,
		eventsChan: eventsChan,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (b *EventBridge) Start() {
	go b.run()
	logger.Info("WebSocket event bridge started")
}

func (b *EventBridge) Stop() {
	b.cancel()
	logger.Info("WebSocket event bridge stopped")
}

func (b *EventBridge) run() {
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.eventsChan:
			if !ok {
				logger.Info("Event channel closed, stopping bridge")
				return
			}
			b.forwardEvent(event)
		}
	}
}

func (b *EventBridge) forwardEvent(event *models.Event) {
	msg := toMessage(event)
	if msg == nil {
		return
	}
	// Circuit events carry no route and reach every client.
	b.hub.BroadcastToRoute(event.Route, msg.JSON())
}

func toMessage(event *models.Event) *OutgoingMessage {
	msgType := mapEventType(event.Type)
	if msgType == "" {
		return nil
	}

	return &OutgoingMessage{
		Type:      msgType,
		Route:     event.Route,
		Timestamp: event.Timestamp,
		Severity:  string(event.Severity),
		Message:   event.Message,
		TraceID:   event.TraceID,
		Data:      event.Data,
	}
}

func mapEventType(eventType models.EventType) MessageType {
	switch eventType {
	case models.EventTypeQuoteComputed:
		return MessageTypeQuote
	case models.EventTypeQuoteFailed:
		return MessageTypeQuoteFailed
	case models.EventTypeSearchCompleted:
		return MessageTypeSearch
	case models.EventTypePredictorCircuit:
		return MessageTypeCircuit
	default:
		return ""
	}
}
