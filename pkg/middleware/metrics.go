// Package middleware instruments the HTTP endpoints of the watch process.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/metrics"
)

// Instrument records the status code and latency of every request served by
// next under the given path label. The label is fixed per route so request
// paths never reach the metric labels.
func Instrument(m *metrics.Metrics, path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		m.HTTPRequestsTotal.WithLabelValues(path, strconv.Itoa(sw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	})
}

// statusWriter captures the response status code.
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
