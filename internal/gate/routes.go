package gate

import "github.com/eventhub/eventhub/internal/domain"

// Access is the protection level of a route.
type Access int

const (
	Public Access = iota
	Authenticated
	Admin
)

// RequiresAdmin reports whether only admins may reach the route.
func (a Access) RequiresAdmin() bool { return a == Admin }

var routes = map[string]Access{
	domain.RouteRoot:           Public,
	domain.RouteLogin:          Public,
	domain.RouteUserDashboard:  Authenticated,
	domain.RouteCreateEvent:    Authenticated,
	domain.RouteUpcomingEvents: Authenticated,
	domain.RouteAdminDashboard: Admin,
	domain.RoutePendingEvents:  Admin,
	domain.RouteAllEvents:      Admin,
}

// Lookup returns the access level of route. ok is false for unknown routes.
func Lookup(route string) (access Access, ok bool) {
	access, ok = routes[route]
	return access, ok
}
