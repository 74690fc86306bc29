package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
)

// Middleware rejects requests over the caller's budget with a 429. A failing
// limiter backend fails open: the request proceeds and the error is logged.
func Middleware(log *slog.Logger, limiter Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				log.Warn("rate limiter unavailable; allowing request", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller by IP; chi's RealIP middleware has already
// resolved forwarded addresses by the time this runs.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
