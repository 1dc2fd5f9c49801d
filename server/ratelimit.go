package server

import (
	"sync"
	"time"

	cn "github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/pkg"
	pkgHTTP "github.com/LerianStudio/lib-device-license-go/pkg/net/http"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// addressLimiter keeps one token bucket per client address.
type addressLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	entries map[string]*limiterEntry
	lastGC  time.Time
}

func newAddressLimiter(rps float64, burst int) *addressLimiter {
	if burst < 1 {
		burst = 1
	}

	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}

	return &addressLimiter{
		rps:     limit,
		burst:   burst,
		entries: make(map[string]*limiterEntry),
	}
}

func (l *addressLimiter) allow(addr string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > limiterIdleTTL {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(l.entries, k)
			}
		}

		l.lastGC = now
	}

	e, ok := l.entries[addr]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.entries[addr] = e
	}

	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}

// RateLimit rejects callers that exceed the configured per-address rate with 429.
func (s *Server) RateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.limiter.allow(c.IP(), time.Now()) {
			s.logger.Warnf("Rate limit exceeded for %s on %s", c.IP(), c.Path())
			return pkgHTTP.WithError(c, pkg.ValidateBusinessError(cn.ErrRateLimited, ""))
		}

		return c.Next()
	}
}
