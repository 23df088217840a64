// Package backend opens the remote store named by the configured endpoint and
// exposes its data ports and auth API. Without an endpoint or key it is a
// degraded backend whose every call returns domain.ErrUninitialized.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/eventhub/eventhub/internal/adapters/auth"
	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/repository/postgres"
	"github.com/eventhub/eventhub/internal/repository/sqlite"
	"github.com/eventhub/eventhub/internal/services"
)

// Driver names the store implementation behind a Backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverNone     Driver = "none"
)

// Config describes how to reach the remote store.
type Config struct {
	URL         string
	Key         string
	TokenExpiry time.Duration
	AdminEmails []string
	BcryptCost  int
}

// Backend bundles the remote store ports shared by every client.
type Backend struct {
	Events       domain.EventStore
	Participants domain.ParticipantStore
	Directory    domain.IdentityDirectory
	Auth         domain.AuthProvider

	driver Driver
	db     *sql.DB
	ready  atomic.Bool
}

// Degraded returns a backend whose every call fails with domain.ErrUninitialized.
func Degraded() *Backend {
	b := &Backend{
		Events:       unavailableEvents{},
		Participants: unavailableParticipants{},
		Directory:    unavailableDirectory{},
		Auth:         unavailableAuth{},
		driver:       DriverNone,
	}
	b.ready.Store(true)
	return b
}

// Open connects to cfg.URL and applies the store migrations. A missing URL or
// key yields the degraded backend and no error.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.URL) == "" || strings.TrimSpace(cfg.Key) == "" {
		logger.Warn("backend url or key missing, running without a backend")
		return Degraded(), nil
	}

	driver, target, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	db, err := OpenDB(ctx, driver, target)
	if err != nil {
		return nil, err
	}

	b := &Backend{driver: driver, db: db}
	switch driver {
	case DriverPostgres:
		users, roles := postgres.NewUserRepository(db), postgres.NewRoleRepository(db)
		b.Events = postgres.NewEventRepository(db)
		b.Participants = postgres.NewParticipantRepository(db)
		b.Directory = postgres.NewIdentityDirectory(db)
		b.Auth = newAuthProvider(cfg, users, roles, logger)
	case DriverSQLite:
		users, roles := sqlite.NewUserRepository(db), sqlite.NewRoleRepository(db)
		b.Events = sqlite.NewEventRepository(db)
		b.Participants = sqlite.NewParticipantRepository(db)
		b.Directory = sqlite.NewIdentityDirectory(db)
		b.Auth = newAuthProvider(cfg, users, roles, logger)
	}
	b.ready.Store(true)
	logger.Info("backend ready", "driver", driver)
	return b, nil
}

func newAuthProvider(cfg Config, users domain.UserRepository, roles domain.RoleRepository, logger *slog.Logger) domain.AuthProvider {
	expiry := cfg.TokenExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return services.NewAuthService(
		users,
		roles,
		auth.NewBcryptHasher(cfg.BcryptCost),
		auth.NewJWTIssuer(cfg.Key),
		auth.NewJWTVerifier(cfg.Key),
		expiry,
		cfg.AdminEmails,
		logger,
	)
}

// ParseURL splits a backend endpoint into its driver and the driver-specific
// target: the DSN itself for postgres, the file path (or :memory:) for sqlite.
func ParseURL(raw string) (Driver, string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return DriverPostgres, raw, nil
	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("backend url %q: missing sqlite path", raw)
		}
		return DriverSQLite, path, nil
	}
	return "", "", fmt.Errorf("backend url %q: unsupported scheme", raw)
}

// OpenDB opens the database behind driver and applies its migrations.
func OpenDB(ctx context.Context, driver Driver, target string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
		db, err := postgres.Open(ctx, target)
		if err != nil {
			return nil, err
		}
		if err := postgres.MigrateUp(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	case DriverSQLite:
		return sqlite.Open(target)
	}
	return nil, fmt.Errorf("unsupported backend driver %q", driver)
}

// Driver reports which store the backend talks to.
func (b *Backend) Driver() Driver { return b.driver }

// Available reports whether the backend has a store behind it.
func (b *Backend) Available() bool { return b.driver != DriverNone }

// Initializing reports whether the backend is still connecting.
func (b *Backend) Initializing() bool { return !b.ready.Load() }

// Ping checks the store connection. The degraded backend reports ErrUninitialized.
func (b *Backend) Ping(ctx context.Context) error {
	if b.db == nil {
		return domain.ErrUninitialized
	}
	return b.db.PingContext(ctx)
}

func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *Backend) EventStore() domain.EventStore { return b.Events }

func (b *Backend) ParticipantStore() domain.ParticipantStore { return b.Participants }

func (b *Backend) IdentityDirectory() domain.IdentityDirectory { return b.Directory }

func (b *Backend) AuthProvider() domain.AuthProvider { return b.Auth }
