package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// routing queries are cpu-bound; 20 rps with small bursts keeps a single
// instance responsive under load tests.
var limiter = rate.NewLimiter(rate.Limit(20), 40)

func Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
