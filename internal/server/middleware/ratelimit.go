package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/fulmenhq/gofulmen/errors"
	"github.com/tomasen/realip"
	"golang.org/x/time/rate"

	"github.com/callpace/callpace/internal/config"
)

// RateLimit throttles inbound requests per client IP using a token
// bucket. Stale clients are evicted by a background sweep so the map
// does not grow without bound.
func RateLimit(cfg config.LimiterConfig) func(http.Handler) http.Handler {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	if cfg.Enabled {
		go func() {
			for {
				time.Sleep(time.Minute)

				mu.Lock()
				for ip, c := range clients {
					if time.Since(c.lastSeen) > 3*time.Minute {
						delete(clients, ip)
					}
				}
				mu.Unlock()
			}
		}()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			ip := realip.FromRequest(r)

			mu.Lock()
			c, found := clients[ip]
			if !found {
				c = &client{limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)}
				clients[ip] = c
			}
			c.lastSeen = time.Now()
			allowed := c.limiter.Allow()
			mu.Unlock()

			if !allowed {
				// Built here directly; the errors package depends on this one.
				envelope := errors.NewErrorEnvelope("RATE_LIMITED", "rate limit exceeded").
					WithCorrelationID(GetRequestID(r.Context()))
				writeErrorResponse(w, envelope, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
