package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/eventhub/eventhub/internal/delivery/http/controllers"
	h "github.com/eventhub/eventhub/internal/delivery/http/helpers"
	"github.com/eventhub/eventhub/internal/delivery/http/middleware"
	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/gate"
	"github.com/eventhub/eventhub/internal/metrics"
)

// HealthChecker reports whether the remote store answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterConfig holds the collaborators of the router.
type RouterConfig struct {
	Clients     middleware.ClientStore
	Health      HealthChecker
	Cookies     middleware.Cookies
	CORSOrigins []string
	Logger      *slog.Logger
}

// HealthStatus is the data of GET /healthz.
type HealthStatus struct {
	Status string `json:"status"`
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	authController := controllers.NewAuthController(logger, cfg.Cookies)
	userController := controllers.NewUserController(logger)
	adminController := controllers.NewAdminController(logger)
	eventController := controllers.NewEventController(logger)

	mux := http.NewServeMux()

	// page binds a route to the browser's client behind the role gate.
	page := func(pattern string, access gate.Access, fn http.HandlerFunc) {
		guarded := middleware.RequireAccess(access, logger)(fn)
		mux.Handle(pattern, middleware.WithClient(cfg.Clients, cfg.Cookies, guarded))
	}

	page("GET /{$}", gate.Public, eventController.Landing)
	page("GET "+domain.RouteLogin, gate.Public, authController.LoginPage)

	// Auth
	page("POST /auth/signup", gate.Public, authController.SignUp)
	page("POST /auth/login", gate.Public, authController.Login)
	page("POST /auth/logout", gate.Public, authController.Logout)

	// User
	page("GET "+domain.RouteUserDashboard, gate.Authenticated, userController.Dashboard)
	page("GET "+domain.RouteCreateEvent, gate.Authenticated, userController.CreateEventForm)
	page("POST "+domain.RouteCreateEvent, gate.Authenticated, userController.CreateEvent)
	page("GET "+domain.RouteUpcomingEvents, gate.Authenticated, userController.UpcomingEvents)
	page("POST "+domain.RouteUpcomingEvents+"/{eventID}/join", gate.Authenticated, userController.JoinEvent)

	// Admin
	page("GET "+domain.RouteAdminDashboard, gate.Admin, adminController.Dashboard)
	page("GET "+domain.RoutePendingEvents, gate.Admin, adminController.PendingEvents)
	page("POST "+domain.RoutePendingEvents+"/{eventID}/approve", gate.Admin, adminController.ApproveEvent)
	page("POST "+domain.RoutePendingEvents+"/{eventID}/reject", gate.Admin, adminController.RejectEvent)
	page("GET "+domain.RouteAllEvents, gate.Admin, adminController.AllEvents)

	// Events
	page("GET /events/{eventID}", gate.Authenticated, eventController.GetEventByID)

	// Operations
	mux.HandleFunc("GET /healthz", healthz(cfg.Health))
	mux.Handle("GET /metrics", metrics.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "no route for "+r.Method+" "+r.URL.Path)
	})

	var handler http.Handler = metrics.HTTPMiddleware(mux)
	handler = middleware.CORS(cfg.CORSOrigins, handler)
	return middleware.LoggingMiddleware(logger, handler)
}

// healthz godoc
// @Summary Liveness and backend status
// @Description status is "ok", or "degraded" when no backend is configured.
// @Tags operations
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "error.code: remote_failure"
// @Router /healthz [get]
func healthz(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := checker.Ping(r.Context())
		switch {
		case err == nil:
			h.WriteJSONSuccess(w, http.StatusOK, HealthStatus{Status: "ok"})
		case errors.Is(err, domain.ErrUninitialized):
			h.WriteJSONSuccess(w, http.StatusOK, HealthStatus{Status: "degraded"})
		default:
			h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeRemoteFailure, err.Error())
		}
	}
}
