package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub/eventhub/internal/metrics"
)

// Factory builds the client with the given id, restoring accessToken.
type Factory func(ctx context.Context, id, accessToken string) *Client

// Registry owns the live clients and evicts the idle ones.
type Registry struct {
	ctx     context.Context
	factory Factory
	idle    time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	clients map[string]*Client
}

// NewRegistry returns a Registry whose clients live under ctx and are evicted
// after idle without requests.
func NewRegistry(ctx context.Context, factory Factory, idle time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		ctx:     ctx,
		factory: factory,
		idle:    idle,
		logger:  logger,
		now:     time.Now,
		clients: make(map[string]*Client),
	}
}

// NewFactory returns the Factory that builds clients over deps and starts
// their session initialization in the background.
func NewFactory(deps Deps) Factory {
	return func(ctx context.Context, id, accessToken string) *Client {
		c := NewClient(ctx, id, accessToken, deps)
		go c.Start(ctx)
		return c
	}
}

// Get returns the live client id and marks it as used.
func (r *Registry) Get(id string) (*Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if ok {
		c.touch(r.now())
	}
	return c, ok
}

// Create builds and registers a client under a fresh id.
func (r *Registry) Create(accessToken string) *Client {
	id := uuid.NewString()
	c := r.factory(r.ctx, id, accessToken)
	c.touch(r.now())

	r.mu.Lock()
	r.clients[id] = c
	n := len(r.clients)
	r.mu.Unlock()

	metrics.ClientsActive.Set(float64(n))
	r.logger.Debug("client created", "client_id", id)
	return c
}

// Remove drops the client id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	c, ok := r.clients[id]
	delete(r.clients, id)
	n := len(r.clients)
	r.mu.Unlock()

	if ok {
		c.Close()
		metrics.ClientsActive.Set(float64(n))
	}
}

// Len returns the number of live clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Sweep evicts every client idle for longer than the idle timeout and returns how many it evicted.
func (r *Registry) Sweep() int {
	now := r.now()
	var evicted []*Client

	r.mu.Lock()
	for id, c := range r.clients {
		if c.idleSince(now) > r.idle {
			evicted = append(evicted, c)
			delete(r.clients, id)
		}
	}
	n := len(r.clients)
	r.mu.Unlock()

	for _, c := range evicted {
		c.Close()
	}
	if len(evicted) > 0 {
		metrics.ClientsActive.Set(float64(n))
		r.logger.Debug("evicted idle clients", "count", len(evicted))
	}
	return len(evicted)
}

// Run sweeps idle clients every interval until ctx is done, then closes all clients.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-ctx.Done():
			r.closeAll()
			return
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	clients := r.clients
	r.clients = make(map[string]*Client)
	r.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
	metrics.ClientsActive.Set(0)
}
