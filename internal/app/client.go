// Package app holds the server-side state of each browser: its session
// store, query cache, event hooks and role gate, and the registry that owns
// those clients.
package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eventhub/eventhub/internal/adapters/auth"
	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/gate"
	"github.com/eventhub/eventhub/internal/querycache"
	"github.com/eventhub/eventhub/internal/services"
	"github.com/eventhub/eventhub/internal/session"
)

// Remote is the shared remote store every client talks to.
type Remote interface {
	domain.Initializer
	EventStore() domain.EventStore
	ParticipantStore() domain.ParticipantStore
	IdentityDirectory() domain.IdentityDirectory
	AuthProvider() domain.AuthProvider
}

// Deps are the process-wide collaborators of a client.
type Deps struct {
	Remote       Remote
	EmailService domain.EmailService
	Logger       *slog.Logger
}

// Client is the state of one browser.
type Client struct {
	ID      string
	Auth    *auth.Client
	Session *session.Store
	Cache   *querycache.Cache
	Service domain.EventService
	Events  *services.EventHooks
	Gate    *gate.Gate

	flash  *FlashNotifier
	nav    *Navigator
	logger *slog.Logger

	// mu serializes the requests of one browser.
	mu       sync.Mutex
	lastSeen atomic.Int64

	mountMu sync.Mutex
	mounted []*querycache.Observer
}

// NewClient builds the client id and restores its session from accessToken.
// Call Start to initialize the session store.
func NewClient(ctx context.Context, id, accessToken string, deps Deps) *Client {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("client_id", id)

	c := &Client{
		ID:     id,
		flash:  &FlashNotifier{},
		nav:    &Navigator{},
		logger: logger,
	}
	c.Auth = auth.NewClient(deps.Remote.AuthProvider(), accessToken, logger)
	c.Session = session.New(c.Auth, c.flash, c.nav, logger, session.WithDependency(deps.Remote))
	c.Cache = querycache.New(ctx, logger)
	c.Service = services.NewEventService(
		deps.Remote.EventStore(),
		deps.Remote.ParticipantStore(),
		deps.Remote.IdentityDirectory(),
		c.Session,
		deps.EmailService,
		logger,
	)
	c.Events = services.NewEventHooks(c.Service, c.Cache, c.flash)
	c.Gate = gate.New(c.Session)

	c.Session.OnChange(func(*domain.Identity) {
		c.Cache.Invalidate(services.KeyUserJoinedEvents)
	})
	c.touch(time.Now())
	return c
}

// Start initializes the session store. Failures are logged by the store and
// leave the client signed out.
func (c *Client) Start(ctx context.Context) {
	_ = c.Session.Initialize(ctx)
}

// Lock serializes a request against the other requests of the same browser.
func (c *Client) Lock()   { c.mu.Lock() }
func (c *Client) Unlock() { c.mu.Unlock() }

// Notifications drains the queued toasts.
func (c *Client) Notifications() []domain.Notification { return c.flash.Drain() }

// TakeRedirect returns the route a flow navigated to, if any.
func (c *Client) TakeRedirect() (string, bool) { return c.nav.Take() }

// Navigate queues a redirect for the current request.
func (c *Client) Navigate(route string) { c.nav.Navigate(route) }

// AccessToken returns the token to persist for the browser, empty when signed out.
func (c *Client) AccessToken() string { return c.Auth.AccessToken() }

func (c *Client) touch(now time.Time) { c.lastSeen.Store(now.UnixNano()) }

func (c *Client) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, c.lastSeen.Load()))
}

// mount replaces the observers of the previously rendered page with observers.
func (c *Client) mount(observers ...*querycache.Observer) {
	c.mountMu.Lock()
	prev := c.mounted
	c.mounted = observers
	c.mountMu.Unlock()
	for _, o := range prev {
		o.Unmount()
	}
}

// Close releases the client: page observers are unmounted and the session
// store leaves the auth feed.
func (c *Client) Close() {
	c.mount()
	c.Session.Close()
}
