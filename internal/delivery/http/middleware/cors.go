package middleware

import (
	"net/http"
	"strings"
)

var preflightHeaders = map[string]string{
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Accept",
	"Access-Control-Max-Age":       "86400",
}

// CORS lets the listed origins call the API with credentials, so a front end
// hosted elsewhere still sends the session cookies. Every OPTIONS request is
// answered with 204; only allowed origins get the preflight headers.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := originSet(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; !ok {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if r.Method == http.MethodOptions {
			allowOrigin(w.Header(), origin)
			for k, v := range preflightHeaders {
				w.Header().Set(k, v)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(&corsWriter{ResponseWriter: w, origin: origin}, r)
	})
}

func originSet(origins []string) map[string]struct{} {
	set := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o = strings.TrimSuffix(strings.TrimSpace(o), "/"); o != "" {
			set[o] = struct{}{}
		}
	}
	return set
}

func allowOrigin(h http.Header, origin string) {
	if h.Get("Access-Control-Allow-Origin") != "" {
		return
	}
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Add("Vary", "Origin")
}

// corsWriter sets the origin headers just before the response is committed,
// so handlers that replace headers cannot drop them.
type corsWriter struct {
	http.ResponseWriter
	origin string
}

func (w *corsWriter) WriteHeader(code int) {
	allowOrigin(w.Header(), w.origin)
	w.ResponseWriter.WriteHeader(code)
}

func (w *corsWriter) Write(b []byte) (int, error) {
	allowOrigin(w.Header(), w.origin)
	return w.ResponseWriter.Write(b)
}

func (w *corsWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
