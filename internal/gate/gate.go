// Package gate decides which routes the identity of one client may reach.
package gate

import (
	"context"
	"time"

	"github.com/eventhub/eventhub/internal/domain"
)

// State is the outcome of evaluating a protected route.
type State string

const (
	StateChecking               State = "checking"
	StateDeniedUnauthenticated  State = "denied-unauthenticated"
	StateDeniedInsufficientRole State = "denied-insufficient-role"
	StateAllowed                State = "allowed"
)

// Decision is a gate state plus the route the client is sent to when denied.
type Decision struct {
	State    State
	Redirect string
}

// Allowed reports whether the route may be rendered.
func (d Decision) Allowed() bool { return d.State == StateAllowed }

// SessionState is the part of the session store the gate reads.
type SessionState interface {
	Identity() *domain.Identity
	Loading() bool
	Ready() <-chan struct{}
}

// Gate evaluates route access for one client.
type Gate struct {
	session      SessionState
	pollInterval time.Duration
}

func New(session SessionState) *Gate {
	return &Gate{session: session, pollInterval: 10 * time.Millisecond}
}

// Evaluate returns the decision for the current session state. While the
// session is loading the decision is StateChecking.
func (g *Gate) Evaluate(requireAdmin bool) Decision {
	if g.session.Loading() {
		return Decision{State: StateChecking}
	}
	identity := g.session.Identity()
	if identity == nil {
		return Decision{State: StateDeniedUnauthenticated, Redirect: domain.RouteLogin}
	}
	if requireAdmin && !identity.IsAdmin() {
		return Decision{State: StateDeniedInsufficientRole, Redirect: domain.RouteUserDashboard}
	}
	return Decision{State: StateAllowed}
}

// Resolve waits until the session has finished loading and returns the
// settled decision. It never returns StateChecking unless ctx ends first.
func (g *Gate) Resolve(ctx context.Context, requireAdmin bool) (Decision, error) {
	select {
	case <-g.session.Ready():
	case <-ctx.Done():
		return Decision{State: StateChecking}, ctx.Err()
	}

	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()
	for {
		d := g.Evaluate(requireAdmin)
		if d.State != StateChecking {
			return d, nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return d, ctx.Err()
		}
	}
}

// Landing resolves the route "/" sends the client to.
func (g *Gate) Landing(ctx context.Context) (string, error) {
	d, err := g.Resolve(ctx, false)
	if err != nil {
		return "", err
	}
	if !d.Allowed() {
		return domain.RouteLogin, nil
	}
	return domain.LandingRoute(g.session.Identity()), nil
}
