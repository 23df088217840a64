package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/eventhub/eventhub/internal/domain"
)

// Client is the auth client of one browser. It keeps the current session in
// memory, restores it from a previously issued access token and publishes
// every sign-in and sign-out to its subscribers.
type Client struct {
	provider domain.AuthProvider
	logger   *slog.Logger
	now      func() time.Time

	mu        sync.Mutex
	session   *domain.Session
	restore   string
	listeners map[uint64]domain.AuthStateListener
	nextID    uint64
}

// NewClient returns a Client backed by provider. accessToken, if not empty,
// is resolved into the initial session on the first GetSession call.
func NewClient(provider domain.AuthProvider, accessToken string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		provider:  provider,
		logger:    logger,
		now:       time.Now,
		restore:   accessToken,
		listeners: make(map[uint64]domain.AuthStateListener),
	}
}

// GetSession returns the current session, nil when signed out. An expired or
// invalid restored token reads as signed out.
func (c *Client) GetSession(ctx context.Context) (*domain.Session, error) {
	c.mu.Lock()
	sess, token := c.session, c.restore
	c.mu.Unlock()

	if sess != nil {
		if c.now().Before(sess.ExpiresAt) {
			return sess, nil
		}
		c.clear(sess)
		return nil, nil
	}
	if token == "" {
		return nil, nil
	}

	restored, err := c.provider.Session(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.logger.Debug("discarding invalid access token", "err", err)
			c.mu.Lock()
			if c.restore == token {
				c.restore = ""
			}
			c.mu.Unlock()
			return nil, nil
		}
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.restore != token || c.session != nil {
		// A sign-in or sign-out happened while the token was resolved.
		return c.session, nil
	}
	c.restore = ""
	c.session = restored
	return restored, nil
}

// OnAuthStateChange registers listener for every later sign-in and sign-out.
func (c *Client) OnAuthStateChange(listener domain.AuthStateListener) domain.Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	return &subscription{client: c, id: id}
}

func (c *Client) SignUp(ctx context.Context, email, password string) error {
	_, err := c.provider.SignUp(ctx, email, password)
	return err
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	sess, err := c.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.session = sess
	c.restore = ""
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	for _, l := range listeners {
		l(domain.AuthEventSignedIn, sess)
	}
	return sess, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := c.restore
	if c.session != nil {
		token = c.session.AccessToken
	}
	c.mu.Unlock()

	if err := c.provider.SignOut(ctx, token); err != nil {
		return err
	}

	c.mu.Lock()
	c.session = nil
	c.restore = ""
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	for _, l := range listeners {
		l(domain.AuthEventSignedOut, nil)
	}
	return nil
}

// AccessToken returns the token of the current session, empty when signed out.
func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return c.restore
	}
	return c.session.AccessToken
}

// clear drops an expired session and publishes the sign-out.
func (c *Client) clear(expired *domain.Session) {
	c.mu.Lock()
	if c.session != expired {
		c.mu.Unlock()
		return
	}
	c.session = nil
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	for _, l := range listeners {
		l(domain.AuthEventSignedOut, nil)
	}
}

// snapshotListeners copies the listener set. c.mu must be held.
func (c *Client) snapshotListeners() []domain.AuthStateListener {
	out := make([]domain.AuthStateListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		out = append(out, l)
	}
	return out
}

type subscription struct {
	client *Client
	id     uint64
	once   sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.client.mu.Lock()
		delete(s.client.listeners, s.id)
		s.client.mu.Unlock()
	})
}
