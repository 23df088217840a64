package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/eventhub/eventhub/internal/app"
)

// Cookie names of the browser binding.
const (
	SessionCookie = "eventhub_sid"
	TokenCookie   = "eventhub_token"
)

type contextKey string

const clientKey contextKey = "client"

// ClientStore resolves the server-side client of a browser.
type ClientStore interface {
	Get(id string) (*app.Client, bool)
	Create(accessToken string) *app.Client
}

// WithClientContext returns a context carrying c. Used by WithClient and tests.
func WithClientContext(ctx context.Context, c *app.Client) context.Context {
	return context.WithValue(ctx, clientKey, c)
}

// ClientFromContext returns the client bound to the request, if any.
func ClientFromContext(ctx context.Context) (*app.Client, bool) {
	c, ok := ctx.Value(clientKey).(*app.Client)
	return c, ok
}

// Cookies writes the browser cookies.
type Cookies struct {
	Secure bool
}

// SetSession binds the browser to the client id.
func (c Cookies) SetSession(w http.ResponseWriter, id string) {
	http.SetCookie(w, c.cookie(SessionCookie, id, time.Time{}))
}

// SetToken persists the access token until expiresAt.
func (c Cookies) SetToken(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, c.cookie(TokenCookie, token, expiresAt))
}

// ClearToken removes the access token cookie.
func (c Cookies) ClearToken(w http.ResponseWriter) {
	ck := c.cookie(TokenCookie, "", time.Unix(0, 0))
	ck.MaxAge = -1
	http.SetCookie(w, ck)
}

func (c Cookies) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// WithClient binds every request to the client of its browser. A browser
// without a live client gets a new one, restored from its token cookie.
// Requests of one client run one at a time.
func WithClient(clients ClientStore, cookies Cookies, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var client *app.Client
		if ck, err := r.Cookie(SessionCookie); err == nil {
			client, _ = clients.Get(ck.Value)
		}
		if client == nil {
			var token string
			if ck, err := r.Cookie(TokenCookie); err == nil {
				token = ck.Value
			}
			client = clients.Create(token)
			cookies.SetSession(w, client.ID)
		}

		client.Lock()
		defer client.Unlock()
		next.ServeHTTP(w, r.WithContext(WithClientContext(r.Context(), client)))
	})
}
