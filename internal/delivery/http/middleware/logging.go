package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// sidPrefixLen is how much of the session id is logged for correlation.
const sidPrefixLen = 8

// statusRecorder captures the status code and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

func (w *statusRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// LoggingMiddleware writes one access log line per request. 5xx responses log
// at error level and 4xx at warn. Bodies and tokens are never logged; the
// session id is shortened to a prefix.
func LoggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Int64("bytes", rec.bytes),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		// The mux records the matched pattern on the request it was given.
		if r.Pattern != "" {
			attrs = append(attrs, slog.String("route", r.Pattern))
		}
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			attrs = append(attrs, slog.String("sid", shorten(c.Value)))
		}
		logger.LogAttrs(r.Context(), levelFor(rec.status), "request", attrs...)
	})
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func shorten(sid string) string {
	if len(sid) <= sidPrefixLen {
		return sid
	}
	return sid[:sidPrefixLen]
}
