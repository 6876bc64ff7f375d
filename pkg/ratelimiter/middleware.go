package ratelimiter

import (
	"net"
	"net/http"
	"strconv"
	"time"
)

// KeyFunc picks the bucket key for a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// RemoteIP keys requests by the host part of RemoteAddr. Put it behind a
// middleware that resolves proxy headers, such as chi's RealIP.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware limits requests with l. Denied requests are answered by
// onLimit, or with a plain 429 when onLimit is nil. Limiter errors let the
// request through.
func Middleware(l Limiter, keyFunc KeyFunc, onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	if onLimit == nil {
		onLimit = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := l.Allow(r.Context(), key)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				secs := int(res.RetryAfter(time.Now()).Round(time.Second) / time.Second)
				h.Set("Retry-After", strconv.Itoa(max(secs, 1)))
				onLimit(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
