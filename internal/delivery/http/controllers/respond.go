package controllers

import (
	"log/slog"
	"net/http"

	"github.com/eventhub/eventhub/internal/app"
	"github.com/eventhub/eventhub/internal/delivery/http/helpers"
	"github.com/eventhub/eventhub/internal/delivery/http/middleware"
)

// clientOf returns the client bound to r. It writes a 500 when the client middleware did not run.
func clientOf(w http.ResponseWriter, r *http.Request) (*app.Client, bool) {
	c, ok := middleware.ClientFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "no client bound to request")
	}
	return c, ok
}

// respond writes data together with the toasts queued on c.
func respond(w http.ResponseWriter, c *app.Client, status int, data any) {
	helpers.WriteJSONSuccess(w, status, data, c.Notifications()...)
}

// fail writes err together with the toasts queued on c. Server-side failures are logged.
func fail(logger *slog.Logger, w http.ResponseWriter, r *http.Request, c *app.Client, err error) {
	status, _ := helpers.StatusForError(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteDomainError(w, err, c.Notifications()...)
}

// navigate sends the client to the route its last flow navigated to, or to fallback.
func navigate(w http.ResponseWriter, r *http.Request, c *app.Client, fallback string) {
	route, ok := c.TakeRedirect()
	if !ok {
		route = fallback
	}
	helpers.Redirect(w, r, route)
}
