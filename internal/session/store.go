// Package session holds the authenticated identity of one client and the
// sign-up, sign-in and sign-out flows that change it.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/eventhub/eventhub/internal/domain"
)

// ChangeListener is called after the identity of the store changed. identity is nil after sign-out.
type ChangeListener func(identity *domain.Identity)

// Option configures a Store.
type Option func(*Store)

// WithDependency makes the store report loading while dep is still initializing.
func WithDependency(dep domain.Initializer) Option {
	return func(s *Store) {
		s.deps = append(s.deps, dep)
	}
}

// Store is the source of truth for the identity of one client.
type Store struct {
	auth      domain.AuthClient
	notifier  domain.Notifier
	navigator domain.Navigator
	logger    *slog.Logger
	deps      []domain.Initializer

	mu        sync.RWMutex
	session   *domain.Session
	loading   bool
	version   uint64
	sub       domain.Subscription
	listeners []ChangeListener

	initOnce sync.Once
	initErr  error
	ready    chan struct{}
}

// New returns a Store in loading state. Call Initialize before relying on its identity.
func New(auth domain.AuthClient, notifier domain.Notifier, navigator domain.Navigator, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		auth:      auth,
		notifier:  notifier,
		navigator: navigator,
		logger:    logger,
		loading:   true,
		ready:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize subscribes to the auth-state feed and then reads the current
// session once. A transition delivered by the feed while the read is in
// flight takes precedence over the value read. Only the first call does work.
func (s *Store) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.initialize(ctx)
	})
	return s.initErr
}

func (s *Store) initialize(ctx context.Context) error {
	defer close(s.ready)

	s.mu.RLock()
	seen := s.version
	s.mu.RUnlock()

	sub := s.auth.OnAuthStateChange(s.handleAuthChange)
	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	sess, err := s.auth.GetSession(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.logger.Error("error getting auth session", "err", err)
		return fmt.Errorf("get session: %w", err)
	}

	s.mu.Lock()
	s.loading = false
	if s.version != seen {
		s.mu.Unlock()
		s.logger.Debug("discarding session read superseded by auth-state change")
		return nil
	}
	changed, listeners := s.replaceLocked(sess)
	s.mu.Unlock()
	s.notifyListeners(changed, listeners, identityOf(sess))
	return nil
}

func (s *Store) handleAuthChange(event domain.AuthEvent, sess *domain.Session) {
	s.logger.Debug("auth state changed", "event", event)
	if event == domain.AuthEventSignedOut {
		sess = nil
	}
	s.setSession(sess)
}

// setSession replaces the current session and notifies listeners when the identity changed.
func (s *Store) setSession(sess *domain.Session) {
	s.mu.Lock()
	changed, listeners := s.replaceLocked(sess)
	s.mu.Unlock()
	s.notifyListeners(changed, listeners, identityOf(sess))
}

// replaceLocked swaps the session and reports whether the identity changed. s.mu must be held.
func (s *Store) replaceLocked(sess *domain.Session) (bool, []ChangeListener) {
	prev := identityOf(s.session)
	s.session = sess
	s.version++
	if sameIdentity(prev, identityOf(sess)) {
		return false, nil
	}
	return true, append([]ChangeListener(nil), s.listeners...)
}

func (s *Store) notifyListeners(changed bool, listeners []ChangeListener, identity *domain.Identity) {
	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(identity)
	}
}

// SignUp registers a new account.
func (s *Store) SignUp(ctx context.Context, email, password string) error {
	if err := s.auth.SignUp(ctx, email, password); err != nil {
		s.notifier.Error("Sign-up failed", err.Error())
		return err
	}
	s.notifier.Success("Sign-up successful!", "You can now log in with your new account.")
	return nil
}

// SignIn authenticates with email and password and navigates to the landing
// route of the returned identity.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	sess, err := s.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		s.notifier.Error("Login failed", err.Error())
		return err
	}
	s.setSession(sess)
	s.navigator.Navigate(domain.LandingRoute(identityOf(sess)))
	s.notifier.Success("Logged in successfully!", "")
	return nil
}

// SignOut ends the remote session and navigates to the login route.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.auth.SignOut(ctx); err != nil {
		s.notifier.Error("Sign-out failed", err.Error())
		return err
	}
	s.setSession(nil)
	s.navigator.Navigate(domain.RouteLogin)
	s.notifier.Success("Logged out successfully", "")
	return nil
}

// Identity returns the current identity, nil when signed out.
func (s *Store) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return identityOf(s.session)
}

// Session returns the current session, nil when signed out.
func (s *Store) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Loading reports whether the store or one of its dependencies is still initializing.
func (s *Store) Loading() bool {
	s.mu.RLock()
	loading := s.loading
	s.mu.RUnlock()
	if loading {
		return true
	}
	for _, dep := range s.deps {
		if dep.Initializing() {
			return true
		}
	}
	return false
}

// Ready is closed once Initialize has finished, successfully or not.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// OnChange registers fn to be called after every identity change.
func (s *Store) OnChange(fn ChangeListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Close unsubscribes from the auth-state feed.
func (s *Store) Close() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

func identityOf(sess *domain.Session) *domain.Identity {
	if sess == nil {
		return nil
	}
	return sess.Identity
}

func sameIdentity(a, b *domain.Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
