package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/OldStager01/airfare-pricer/internal/logger"
	"github.com/OldStager01/airfare-pricer/internal/metrics"
)

// Decision is the outcome of one token bucket check.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Limit() int
}

// BucketConfig is a token bucket of Capacity tokens refilled by RefillTokens
// every RefillInterval. Idle buckets expire after TTL.
type BucketConfig struct {
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

func (b BucketConfig) withDefaults() BucketConfig {
	if b.Capacity <= 0 {
		b.Capacity = 60
	}
	if b.RefillTokens <= 0 {
		b.RefillTokens = 1
	}
	if b.RefillInterval <= 0 {
		b.RefillInterval = time.Second
	}
	if b.TTL <= 0 {
		b.TTL = 10 * time.Minute
	}
	return b
}

type bucket struct {
	tokens     int64
	lastRefill time.Time
}

// MemoryLimiter keeps buckets in process. Limits are per replica.
type MemoryLimiter struct {
	cfg     BucketConfig
	buckets map[string]*bucket
	mu      sync.Mutex
	now     func() time.Time
	lastGC  time.Time
}

func NewMemoryLimiter(cfg BucketConfig) *MemoryLimiter {
	return &MemoryLimiter{
		cfg:     cfg.withDefaults(),
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.collect(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: int64(l.cfg.Capacity), lastRefill: now}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.lastRefill); elapsed >= l.cfg.RefillInterval {
		intervals := int64(elapsed / l.cfg.RefillInterval)
		b.tokens = min(int64(l.cfg.Capacity), b.tokens+intervals*int64(l.cfg.RefillTokens))
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * l.cfg.RefillInterval)
	}

	if b.tokens > 0 {
		b.tokens--
		return Decision{Allowed: true, Remaining: b.tokens}, nil
	}

	retry := l.cfg.RefillInterval - now.Sub(b.lastRefill)
	if retry < 0 {
		retry = 0
	}
	return Decision{Allowed: false, Remaining: 0, RetryAfter: retry}, nil
}

func (l *MemoryLimiter) Limit() int {
	return l.cfg.Capacity
}

// collect drops idle buckets at most once per TTL.
func (l *MemoryLimiter) collect(now time.Time) {
	if now.Sub(l.lastGC) < l.cfg.TTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastRefill) > l.cfg.TTL {
			delete(l.buckets, key)
		}
	}
	l.lastGC = now
}

var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
    tokens = math.min(capacity, tokens + (intervals * refill_tokens))
    last_refill = last_refill + (intervals * interval_ms)
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RedisLimiter shares buckets across replicas through a Lua script.
type RedisLimiter struct {
	client redis.Scripter
	cfg    BucketConfig
	now    func() time.Time
}

func NewRedisLimiter(client redis.Scripter, cfg BucketConfig) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		cfg:    cfg.withDefaults(),
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	args := []interface{}{
		l.now().UnixMilli(),
		l.cfg.Capacity,
		l.cfg.RefillTokens,
		l.cfg.RefillInterval.Milliseconds(),
		int64(math.Ceil(l.cfg.TTL.Seconds())),
	}

	vals, err := tokenBucketScript.Run(ctx, l.client, []string{key}, args...).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(vals) != 3 {
		return Decision{}, fmt.Errorf("rate limit script returned %d values", len(vals))
	}

	return Decision{
		Allowed:    vals[0] == 1,
		Remaining:  vals[1],
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

func (l *RedisLimiter) Limit() int {
	return l.cfg.Capacity
}

type RateLimitOptions struct {
	Prefix      string
	KeyStrategy string // ip | ip_route | route
}

// RateLimit rejects requests whose bucket is empty with 429. Limiter errors
// fail open: the request proceeds and the error is logged.
func RateLimit(limiter Limiter, opts RateLimitOptions) gin.HandlerFunc {
	if opts.Prefix == "" {
		opts.Prefix = "airfare:rl"
	}

	return func(c *gin.Context) {
		key := rateKey(opts, c)

		d, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.WarnCtxf(c.Request.Context(), "Rate limiter unavailable for %s: %v", key, err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))

		if !d.Allowed {
			secs := int(math.Ceil(d.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(secs))
			metrics.Get().IncRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": secs,
			})
			return
		}

		c.Next()
	}
}

func rateKey(opts RateLimitOptions, c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	route := c.Request.Method + " " + c.FullPath()

	parts := []string{opts.Prefix}
	switch strings.ToLower(opts.KeyStrategy) {
	case "route":
		parts = append(parts, "route", route)
	case "ip_route":
		parts = append(parts, "ip", ip, "route", route)
	default:
		parts = append(parts, "ip", ip)
	}
	return strings.Join(parts, ":")
}
