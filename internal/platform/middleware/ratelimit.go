package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"nachweis/internal/platform/ratelimit"
	"nachweis/pkg/requestcontext"
)

// RateLimit throttles requests per caller. Authenticated requests are keyed by
// actor, anonymous ones by client IP. Limiter failures fail open: a broken
// limiter backend must not take the compliance API down with it.
func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()

			key := "actor:" + requestcontext.ActorID(ctx)
			if key == "actor:" {
				key = "ip:" + clientIP(r)
			}

			result, err := limiter.Allow(ctx, key)
			if err != nil {
				logger.WarnContext(ctx, "rate limit check failed",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}
			if !result.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate_limited","error_description":"Too many requests"}`))
				return
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
