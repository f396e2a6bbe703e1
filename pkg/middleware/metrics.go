// Package middleware wraps the observability server's handlers.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/metrics"
)

// Metrics records the count and latency of every request served by next.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			path := routeLabel(r.URL.Path)
			m.HTTPRequestsTotal.WithLabelValues(path, strconv.Itoa(sw.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			slog.Debug("http request", "method", r.Method, "path", r.URL.Path, "status", sw.status)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	sw.wroteHeader = true
	return sw.ResponseWriter.Write(b)
}

// routeLabel keeps label cardinality bounded to the served routes.
func routeLabel(path string) string {
	switch path {
	case "/metrics", "/healthz", "/":
		return path
	default:
		return "other"
	}
}
