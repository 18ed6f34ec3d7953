package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func TestMemoryLimiter_Bucket(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewMemoryLimiter(BucketConfig{Capacity: 2, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute})
	l.now = clock.now
	ctx := context.Background()

	d, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(1), d.Remaining)

	d, _ = l.Allow(ctx, "k")
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(0), d.Remaining)

	clock.t = clock.t.Add(400 * time.Millisecond)
	d, _ = l.Allow(ctx, "k")
	assert.False(t, d.Allowed)
	assert.Equal(t, 600*time.Millisecond, d.RetryAfter)

	// Other keys have their own bucket.
	d, _ = l.Allow(ctx, "other")
	assert.True(t, d.Allowed)

	clock.t = clock.t.Add(600 * time.Millisecond)
	d, _ = l.Allow(ctx, "k")
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(0), d.Remaining)
}

func TestMemoryLimiter_RefillCapped(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewMemoryLimiter(BucketConfig{Capacity: 3, RefillTokens: 5, RefillInterval: time.Second, TTL: time.Hour})
	l.now = clock.now

	for i := 0; i < 3; i++ {
		d, _ := l.Allow(context.Background(), "k")
		require.True(t, d.Allowed)
	}

	clock.t = clock.t.Add(10 * time.Second)
	d, _ := l.Allow(context.Background(), "k")
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(2), d.Remaining)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (Decision, error) {
	return Decision{}, errors.New("redis down")
}

func (failingLimiter) Limit() int { return 1 }

func newLimitedRouter(l Limiter) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(l, RateLimitOptions{KeyStrategy: "ip"}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRateLimit_Middleware(t *testing.T) {
	r := newLimitedRouter(NewMemoryLimiter(BucketConfig{Capacity: 1, RefillInterval: time.Hour}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r := newLimitedRouter(failingLimiter{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateKey(t *testing.T) {
	tests := []struct {
		strategy string
		want     string
	}{
		{"ip", "rl:ip:192.0.2.1"},
		{"ip_route", "rl:ip:192.0.2.1:route:GET /ping"},
		{"route", "rl:route:GET /ping"},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			var got string
			r := gin.New()
			r.GET("/ping", func(c *gin.Context) {
				got = rateKey(RateLimitOptions{Prefix: "rl", KeyStrategy: tt.strategy}, c)
			})
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			r.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCORS_Origins(t *testing.T) {
	r := gin.New()
	r.Use(CORS(CORSConfig{AllowOrigins: []string{"http://localhost:5173", "https://*.vercel.app"}}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		origin string
		allow  bool
	}{
		{"http://localhost:5173", true},
		{"https://airfare.vercel.app", true},
		{"https://evil.example.com", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", tt.origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if tt.allow {
			assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"), tt.origin)
		} else {
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), tt.origin)
		}
	}
}

func TestTraceID_Propagates(t *testing.T) {
	r := gin.New()
	r.Use(TraceID())
	var seen string
	r.GET("/x", func(c *gin.Context) { seen = GetTraceID(c) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(TraceIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(TraceIDHeader))
}
