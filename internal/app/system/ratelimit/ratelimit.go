// internal/app/system/ratelimit/ratelimit.go

// Package ratelimit provides a redis-backed fixed-window limiter for
// the registration endpoint. When no redis address is configured the
// middleware is a pass-through, so the limiter never becomes a hard
// dependency for local development or tests.
package ratelimit

import (
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter enforces per-caller request budgets over one-minute windows.
type Limiter struct {
	client    *redis.Client
	perMinute int
	log       *zap.Logger
}

// New connects to redis at addr. An empty addr disables limiting.
func New(addr string, perMinute int, logger *zap.Logger) *Limiter {
	if addr == "" || perMinute <= 0 {
		return &Limiter{log: logger}
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	return &Limiter{client: client, perMinute: perMinute, log: logger}
}

// Close releases the redis connection.
func (l *Limiter) Close() error {
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}

// Middleware limits requests per principal-or-IP. Redis being down
// fails open: a registration burst is preferable to an outage caused by
// the limiter itself.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	if l.client == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "rl:" + callerKey(r) + ":" + time.Now().UTC().Format("200601021504")
		count, err := l.client.Incr(r.Context(), key).Result()
		if err != nil {
			l.log.Warn("rate limiter unavailable", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			l.client.Expire(r.Context(), key, time.Minute)
		}
		if count > int64(l.perMinute) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message":"rate limit exceeded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func callerKey(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		return authz
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
