package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
)

// RateLimiter ограничивает частоту запросов одного пользователя (token bucket на пользователя)
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*limiterEntry
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
	logger   Logger
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создает ограничитель: rps запросов в секунду с запасом burst
func NewRateLimiter(rps float64, burst int, logger Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[int64]*limiterEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		logger:   logger,
	}
}

// Middleware применяется после Auth: ключом служит ID пользователя
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if !l.allow(userID, time.Now()) {
			l.logger.Warn("RateLimit: user=%d exceeded %v req/s on %s %s", userID, l.rps, r.Method, r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(l.retryAfterSeconds()))
			handlers.RespondTooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(userID int64, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.limiters[userID]
	if !exists {
		l.evictIdle(now)
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[userID] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// evictIdle удаляет ограничители пользователей, не делавших запросов дольше idleTTL
func (l *RateLimiter) evictIdle(now time.Time) {
	for id, e := range l.limiters {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.limiters, id)
		}
	}
}

func (l *RateLimiter) retryAfterSeconds() int {
	if l.rps <= 0 {
		return 1
	}
	secs := int(1 / float64(l.rps))
	if secs < 1 {
		return 1
	}
	return secs
}
