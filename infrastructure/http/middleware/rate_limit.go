package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/infrastructure/http/response"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type RateLimitMiddleware struct {
	rateLimitService inbound.RateLimitService
	logger           logger.Logger
}

func NewRateLimitMiddleware(rateLimitService inbound.RateLimitService, logger logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		logger:           logger,
	}
}

// RateLimit throttles by client IP. Login attempts get a tighter budget than
// the rest of the API; the per-account budget lives in the login use case.
func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rateLimitService == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		clientIP := getClientIP(r)

		var key string
		var limit int
		var window time.Duration
		if strings.Contains(r.URL.Path, "/login") {
			key = fmt.Sprintf("login:ip:%s", clientIP)
			limit = 10
			window = 15 * time.Minute
		} else {
			key = fmt.Sprintf("general:ip:%s", clientIP)
			limit = 100
			window = time.Minute
		}

		blocked, err := m.rateLimitService.IsBlocked(ctx, key)
		if err != nil {
			m.logger.Error(ctx, "rate limit block check failed", err, map[string]interface{}{"key": key})
			next.ServeHTTP(w, r)
			return
		}
		if blocked {
			response.Error(w, http.StatusTooManyRequests, "Trop de requêtes, veuillez réessayer plus tard")
			return
		}

		allowed, err := m.rateLimitService.CheckLimit(ctx, key, limit, window)
		if err != nil {
			m.logger.Error(ctx, "rate limit check failed", err, map[string]interface{}{"key": key})
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			m.logger.Warn(ctx, "ip rate limit exceeded", map[string]interface{}{
				"ip":   clientIP,
				"path": r.URL.Path,
			})
			response.Error(w, http.StatusTooManyRequests, "Trop de requêtes, veuillez réessayer plus tard")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func getClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
