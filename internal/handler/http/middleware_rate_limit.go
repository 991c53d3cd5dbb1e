package http

import (
	"net"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/utils"
)

// withRateLimit allows at most rateLimit.Requests requests per caller in
// every fixed window of rateLimit.Window. Callers are identified by remote
// IP, so the middleware runs in front of auth and rejected floods never
// reach identity resolution.
//
// The middleware is a no-op without a rate counter. When the counter fails
// the request is let through.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.rateCounter == nil || h.rateLimit.Requests <= 0 || h.rateLimit.Window <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)
		key := rateLimitKey(r)

		hits, err := h.rateCounter.Hit(r.Context(), key, h.rateLimit.Window)
		if err != nil {
			log.Err(err).Str("key", key).Msg("rate counter failed, request allowed")
			next.ServeHTTP(w, r)
			return
		}

		if hits > int64(h.rateLimit.Requests) {
			log.Warn().Str("key", key).Int64("hits", hits).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(int(h.rateLimit.Window.Seconds()+0.5)))
			utils.WriteError(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func rateLimitKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
