package middleware

import (
	"log/slog"
	"net/http"

	h "github.com/eventhub/eventhub/internal/delivery/http/helpers"
	"github.com/eventhub/eventhub/internal/gate"
)

// RequireAccess returns a wrapper that resolves the role gate of the request's
// client before calling next. Denied page loads (GET) are redirected with 303;
// denied API calls get 401 or 403.
func RequireAccess(access gate.Access, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			client, ok := ClientFromContext(r.Context())
			if !ok {
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "no client bound to request")
				return
			}
			if access == gate.Public {
				next(w, r)
				return
			}

			d, err := client.Gate.Resolve(r.Context(), access.RequiresAdmin())
			if err != nil {
				logger.WarnContext(r.Context(), "gate not resolved", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeUninitialized, "session still loading")
				return
			}
			if d.Allowed() {
				next(w, r)
				return
			}

			if r.Method == http.MethodGet {
				h.Redirect(w, r, d.Redirect)
				return
			}
			notes := client.Notifications()
			if d.State == gate.StateDeniedUnauthenticated {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "user not authenticated", notes...)
				return
			}
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "admin role required", notes...)
		}
	}
}
