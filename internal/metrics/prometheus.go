package metrics

import (
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/OldStager01/airfare-pricer/internal/logger"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	quotesTotal    map[string]int64            // operation -> count
	quoteErrors    map[string]map[string]int64 // operation -> reason -> count
	fareFallbacks  map[string]int64            // route|class -> count
	rateLimited    int64
	wsMessagesSent int64
	eventsDropped  int64

	// Gauges
	circuitBreakerState map[string]int // 0=closed, 1=open, 2=half-open
	wsClients           int

	// Histograms (simplified - just track last values)
	quoteLatency map[string]time.Duration
}

var (
	instance *Metrics
	once     sync.Once
)

func Get() *Metrics {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New returns an empty registry. Production code uses Get.
func New() *Metrics {
	return &Metrics{
		quotesTotal:         make(map[string]int64),
		quoteErrors:         make(map[string]map[string]int64),
		fareFallbacks:       make(map[string]int64),
		circuitBreakerState: make(map[string]int),
		quoteLatency:        make(map[string]time.Duration),
	}
}

func (m *Metrics) IncQuotes(operation string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotesTotal[operation] += int64(n)
}

func (m *Metrics) IncQuoteErrors(operation, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quoteErrors[operation] == nil {
		m.quoteErrors[operation] = make(map[string]int64)
	}
	m.quoteErrors[operation][reason]++
}

func (m *Metrics) IncFareFallback(route, class string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fareFallbacks[route+"|"+class]++
}

func (m *Metrics) IncRateLimited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimited++
}

func (m *Metrics) IncWSMessages(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wsMessagesSent += int64(n)
}

func (m *Metrics) IncEventsDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsDropped++
}

func (m *Metrics) SetWSClients(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wsClients = n
}

func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.circuitBreakerState[name] = state
}

func (m *Metrics) SetQuoteLatency(operation string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quoteLatency[operation] = d
}

func (m *Metrics) QuotesTotal(operation string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quotesTotal[operation]
}

func (m *Metrics) QuoteErrors(operation, reason string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quoteErrors[operation][reason]
}

func (m *Metrics) FareFallbacks(route, class string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fareFallbacks[route+"|"+class]
}

func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		m.WriteTo(w)
	})
}

// WriteTo renders every series in Prometheus text exposition format.
func (m *Metrics) WriteTo(w io.Writer) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, op := range sortedKeys(m.quotesTotal) {
		writeMetric(w, "airfare_quotes_total", map[string]string{"operation": op}, float64(m.quotesTotal[op]))
	}

	for _, op := range sortedKeys(m.quoteErrors) {
		for _, reason := range sortedKeys(m.quoteErrors[op]) {
			writeMetric(w, "airfare_quote_errors_total", map[string]string{"operation": op, "reason": reason}, float64(m.quoteErrors[op][reason]))
		}
	}

	for _, key := range sortedKeys(m.fareFallbacks) {
		route, class, _ := strings.Cut(key, "|")
		writeMetric(w, "airfare_fare_fallbacks_total", map[string]string{"route": route, "class": class}, float64(m.fareFallbacks[key]))
	}

	writeMetric(w, "airfare_rate_limited_total", nil, float64(m.rateLimited))
	writeMetric(w, "airfare_ws_messages_sent_total", nil, float64(m.wsMessagesSent))
	writeMetric(w, "airfare_events_dropped_total", nil, float64(m.eventsDropped))
	writeMetric(w, "airfare_ws_clients", nil, float64(m.wsClients))

	for _, name := range sortedKeys(m.circuitBreakerState) {
		writeMetric(w, "airfare_circuit_breaker_state", map[string]string{"name": name}, float64(m.circuitBreakerState[name]))
	}

	for _, op := range sortedKeys(m.quoteLatency) {
		writeMetric(w, "airfare_quote_latency_ms", map[string]string{"operation": op}, float64(m.quoteLatency[op].Microseconds())/1000)
	}
}

func writeMetric(w io.Writer, name string, labels map[string]string, value float64) {
	labelStr := ""
	if len(labels) > 0 {
		parts := make([]string, 0, len(labels))
		for _, k := range sortedKeys(labels) {
			parts = append(parts, k+`="`+labels[k]+`"`)
		}
		labelStr = "{" + strings.Join(parts, ",") + "}"
	}
	_, _ = io.WriteString(w, name+labelStr+" "+strconv.FormatFloat(value, 'f', -1, 64)+"\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func StartServer(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Get().Handler())

	addr := ":" + strconv.Itoa(port)
	logger.Infof("Prometheus metrics server listening on %s", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Errorf("Prometheus server error: %v", err)
		}
	}()
}
