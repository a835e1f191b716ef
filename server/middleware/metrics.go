package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/meetverdict/observability"
)

// Metrics records request count and duration per method, path and status.
// A nil metrics set makes this a pass-through.
func Metrics(m *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			m.RecordRequest(r.Context(), r.Method, r.URL.Path, sw.status, time.Since(start))
		})
	}
}
