package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"dwellio/pkg/logger"

	"github.com/jellydator/ttlcache/v3"
)

// ClientExtractor derives the rate-limit key from a request. The default
// keys on the client IP.
type ClientExtractor func(r *http.Request) string

// ClientRateLimiter is a fixed-window per-client limiter. Window buckets
// live in a TTL cache so idle clients cost nothing after one window.
type ClientRateLimiter struct {
	buckets   *ttlcache.Cache[string, *windowBucket]
	limit     int
	window    time.Duration
	extractor ClientExtractor
	log       *logger.Logger
}

type windowBucket struct {
	mu    sync.Mutex
	count int
}

func NewClientRateLimiter(limit int, window time.Duration, extractor ClientExtractor, log *logger.Logger) *ClientRateLimiter {
	buckets := ttlcache.New[string, *windowBucket](
		ttlcache.WithTTL[string, *windowBucket](window),
		ttlcache.WithDisableTouchOnHit[string, *windowBucket](),
	)
	go buckets.Start()

	return &ClientRateLimiter{
		buckets:   buckets,
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
	}
}

func (rl *ClientRateLimiter) Stop() {
	rl.buckets.Stop()
}

func (rl *ClientRateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	item := rl.buckets.Get(key)
	if item == nil {
		item = rl.buckets.Set(key, &windowBucket{}, ttlcache.DefaultTTL)
	}

	bucket := item.Value()
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	if bucket.count >= rl.limit {
		return false
	}
	bucket.count++
	return true
}

func DefaultClientExtractor(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func RateLimit(limiter *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limiter.extractor(r)

			if !limiter.Allow(key) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestID(r.Context()),
					"client", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
