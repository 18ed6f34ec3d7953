package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/airfare-pricer/pkg/config"
	"github.com/OldStager01/airfare-pricer/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub(&config.WebSocketConfig{MaxConnections: 10})
	go hub.Run()
	t.Cleanup(hub.Stop)

	r := gin.New()
	r.GET("/ws", ServeWebSocket(hub))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *gorilla.Conn {
	t.Helper()
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *gorilla.Conn) OutgoingMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg OutgoingMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestNewSettings_Defaults(t *testing.T) {
	s := NewSettings(nil)
	assert.Equal(t, defaultPongWait, s.PongWait)
	assert.Equal(t, (defaultPongWait*9)/10, s.PingPeriod)

	s = NewSettings(&config.WebSocketConfig{PongTimeout: 10 * time.Second, PingInterval: 20 * time.Second})
	assert.Equal(t, 9*time.Second, s.PingPeriod, "ping interval beyond pong deadline is ignored")
}

func TestHub_RouteSubscription(t *testing.T) {
	hub, url := startHub(t)

	all := dial(t, url)
	delhi := dial(t, url+"?route=Delhi_Mumbai")

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	bridge := make(chan *models.Event, 2)
	b := NewEventBridge(hub, bridge)
	b.Start()
	defer b.Stop()

	bridge <- models.NewEvent(models.EventTypeQuoteComputed, "Mumbai_Bangalore", "Quote computed: predict")
	bridge <- models.NewEvent(models.EventTypeQuoteComputed, "Delhi_Mumbai", "Quote computed: explain")

	first := readMessage(t, all)
	assert.Equal(t, MessageTypeQuote, first.Type)
	assert.Equal(t, "Mumbai_Bangalore", first.Route)
	assert.Equal(t, "Delhi_Mumbai", readMessage(t, all).Route)

	// The subscribed client never sees Mumbai_Bangalore.
	got := readMessage(t, delhi)
	assert.Equal(t, "Delhi_Mumbai", got.Route)
	assert.Equal(t, "Quote computed: explain", got.Message)
}

func TestClient_SubscribeMessage(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(IncomingMessage{Type: "subscribe", Route: "Delhi_Bangalore"}))
	ack := readMessage(t, conn)
	assert.Equal(t, MessageTypeSubscription, ack.Type)
	assert.Equal(t, "Delhi_Bangalore", ack.Route)

	require.NoError(t, conn.WriteJSON(IncomingMessage{Type: "subscribe", Route: "nonsense"}))
	ack = readMessage(t, conn)
	data, ok := ack.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "rejected", data["action"])
}

func TestMapEventType(t *testing.T) {
	assert.Equal(t, MessageTypeQuote, mapEventType(models.EventTypeQuoteComputed))
	assert.Equal(t, MessageTypeCircuit, mapEventType(models.EventTypePredictorCircuit))
	assert.Equal(t, MessageType(""), mapEventType(models.EventType("unknown")))
}
