package websocket

import (
	"sync"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/metrics"
	"github.com/OldStager01/airfare-pricer/pkg/config"
)

type routedMessage struct {
	route   string
	payload []byte
}

// Hub fans quote messages out to connected clients. A client with no route
// subscription receives every route.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan routedMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	settings   *Settings
}

func NewHub(cfg *config.WebSocketConfig) *Hub {
	settings := NewSettings(cfg)

	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan routedMessage, settings.BroadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		settings:   settings,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			metrics.Get().SetWSClients(0)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			metrics.Get().SetWSClients(n)
			logger.Infof("WebSocket client connected (total: %d)", n)

		case client := <-h.unregister:
			h.remove(client)
			logger.Infof("WebSocket client disconnected (total: %d)", h.ClientCount())

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// Stop disconnects every client and ends Run.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) deliver(msg routedMessage) {
	var slow []*Client
	sent := 0

	h.mu.RLock()
	for client := range h.clients {
		if !client.wants(msg.route) {
			continue
		}
		select {
		case client.send <- msg.payload:
			sent++
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		logger.Warn("WebSocket client too slow, disconnecting")
		h.remove(client)
	}
	metrics.Get().IncWSMessages(sent)
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	metrics.Get().SetWSClients(n)
}

// BroadcastToRoute queues a message for clients following route, or every
// client when route is empty.
func (h *Hub) BroadcastToRoute(route string, message []byte) {
	select {
	case h.broadcast <- routedMessage{route: route, payload: message}:
	default:
		logger.Warn("Broadcast channel full, dropping message")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Full() bool {
	return h.ClientCount() >= h.settings.MaxConnections
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
