package domain

import "context"

// AuthEvent names a transition on the auth-state change feed.
type AuthEvent string

const (
	AuthEventSignedIn  AuthEvent = "SIGNED_IN"
	AuthEventSignedOut AuthEvent = "SIGNED_OUT"
)

// AuthStateListener is called with every auth-state transition. session is nil after sign-out.
type AuthStateListener func(event AuthEvent, session *Session)

// Subscription is a handle on an auth-state change registration.
type Subscription interface {
	Unsubscribe()
}

// AuthClient is the client-side view of the remote auth API: it holds the
// current session of one client and publishes its changes.
type AuthClient interface {
	GetSession(ctx context.Context) (*Session, error)
	OnAuthStateChange(listener AuthStateListener) Subscription
	SignUp(ctx context.Context, email, password string) error
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
}

// AuthProvider is the backend side of the auth API.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) (*User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	// Session resolves an access token back into a session. It returns
	// ErrInvalidCredentials for expired or forged tokens.
	Session(ctx context.Context, accessToken string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// IdentitySource exposes the identity of the current client, nil when signed out.
type IdentitySource interface {
	Identity() *Identity
}

// Initializer is implemented by dependencies that report whether they are still starting up.
type Initializer interface {
	Initializing() bool
}
