package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORS([]string{" https://app.example.com/ ", ""}, next)

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantMethods string
	}{
		{"allowed request", http.MethodGet, "https://app.example.com", http.StatusTeapot, "https://app.example.com", ""},
		{"allowed preflight", http.MethodOptions, "https://app.example.com", http.StatusNoContent, "https://app.example.com", "GET, POST, OPTIONS"},
		{"foreign origin", http.MethodPost, "https://evil.example.com", http.StatusTeapot, "", ""},
		{"foreign preflight", http.MethodOptions, "https://evil.example.com", http.StatusNoContent, "", ""},
		{"same origin", http.MethodGet, "", http.StatusTeapot, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/user/dashboard", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantMethods, rr.Header().Get("Access-Control-Allow-Methods"))
			if tt.wantOrigin != "" {
				assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
				assert.Equal(t, []string{"Origin"}, rr.Header().Values("Vary"))
			}
		})
	}
}
