package discovery

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/roach88/vsgen/internal/paths"
)

type result struct {
	installations []Installation
	err           error
}

// Cache holds the outcome of one background discovery.
//
// Start launches discovery at most once. Ready, Current, Lookup and
// Installations never block and are safe for concurrent use.
type Cache struct {
	discoverer Discoverer
	preferred  string
	logger     *slog.Logger

	once   sync.Once
	done   chan struct{}
	result atomic.Pointer[result]
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithPreferredPath selects the installation Current returns.
func WithPreferredPath(path string) CacheOption {
	return func(c *Cache) {
		c.preferred = path
	}
}

// WithCacheLogger sets the logger.
func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = l
	}
}

// NewCache creates an unstarted cache over d.
func NewCache(d Discoverer, opts ...CacheOption) *Cache {
	c := &Cache{
		discoverer: d,
		logger:     slog.Default(),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start runs discovery in a background goroutine. Later calls do nothing.
func (c *Cache) Start(ctx context.Context) {
	c.once.Do(func() {
		go func() {
			defer close(c.done)
			found, err := c.discoverer.Discover(ctx)
			if err != nil {
				c.logger.Warn("installation discovery failed", "error", err)
			} else {
				c.logger.Debug("installation discovery finished", "count", len(found))
			}
			c.result.Store(&result{installations: found, err: err})
		}()
	})
}

// Ready reports whether discovery has finished.
func (c *Cache) Ready() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Wait blocks until discovery finishes or ctx is done.
// Only the CLI and tests should wait; the engine polls Ready.
func (c *Cache) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the discovery error, if any.
func (c *Cache) Err() error {
	if r := c.result.Load(); r != nil {
		return r.err
	}
	return nil
}

// Installations returns the discovered installations, or nil before Ready.
func (c *Cache) Installations() []Installation {
	r := c.result.Load()
	if r == nil {
		return nil
	}
	return append([]Installation(nil), r.installations...)
}

// Lookup finds the installation at path. Paths compare case-insensitively.
func (c *Cache) Lookup(path string) (Installation, bool) {
	r := c.result.Load()
	if r == nil || strings.TrimSpace(path) == "" {
		return Installation{}, false
	}
	key := paths.FoldKey(path)
	for _, inst := range r.installations {
		if paths.FoldKey(inst.Path) == key {
			return inst, true
		}
	}
	return Installation{}, false
}

// Current returns the preferred installation, falling back to the first
// one discovered. ok is false before Ready or when nothing was found.
func (c *Cache) Current() (Installation, bool) {
	if c.preferred != "" {
		if inst, ok := c.Lookup(c.preferred); ok {
			return inst, true
		}
	}
	r := c.result.Load()
	if r == nil || len(r.installations) == 0 {
		return Installation{}, false
	}
	return r.installations[0], true
}
