package domain

// Route surface of the application.
const (
	RouteRoot           = "/"
	RouteLogin          = "/login"
	RouteUserDashboard  = "/user/dashboard"
	RouteCreateEvent    = "/user/create-event"
	RouteUpcomingEvents = "/user/upcoming-events"
	RouteAdminDashboard = "/admin/dashboard"
	RoutePendingEvents  = "/admin/pending-events"
	RouteAllEvents      = "/admin/all-events"
)

// LandingRoute returns the dashboard an identity lands on after sign-in.
func LandingRoute(identity *Identity) string {
	if identity.IsAdmin() {
		return RouteAdminDashboard
	}
	return RouteUserDashboard
}
