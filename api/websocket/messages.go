package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	MessageTypeQuote        MessageType = "quote"
	MessageTypeQuoteFailed  MessageType = "quote_failed"
	MessageTypeSearch       MessageType = "search"
	MessageTypeCircuit      MessageType = "predictor_circuit"
	MessageTypeSubscription MessageType = "subscription_update"
)

type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	Route     string      `json:"route,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Severity  string      `json:"severity,omitempty"`
	Message   string      `json:"message,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func NewMessage(msgType MessageType, route string, data interface{}) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      msgType,
		Route:     route,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func (m *OutgoingMessage) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}

type SubscriptionData struct {
	Action string `json:"action"`
}
