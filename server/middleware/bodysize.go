package middleware

import (
	"net/http"

	"github.com/dustin/go-humanize"
)

const defaultMaxBodySize = 10 * 1024 * 1024 // 10MB

// BodySizeLimit returns middleware that restricts the request body to the given
// size string (e.g. "10MB", "512KiB"). An unparseable size falls back to 10MB.
func BodySizeLimit(maxSize string) Middleware {
	size := parseSize(maxSize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}

func parseSize(s string) int64 {
	n, err := humanize.ParseBytes(s)
	if err != nil || n == 0 {
		return defaultMaxBodySize
	}
	return int64(n)
}
