package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// DefaultTTL is how long a fetched catalog snapshot stays valid.
const DefaultTTL = 5 * time.Minute

// ErrSourceUnavailable means no product source is configured and no valid
// cached snapshot exists. Callers may retry after backoff.
var ErrSourceUnavailable = errors.New("no product source configured and no valid cached catalog")

// Mirror is the durable cache layer behind the in-memory snapshot. It is an
// optimization: both Load and Store are best-effort from the cache's point
// of view.
type Mirror interface {
	Load(ctx context.Context) (products []Product, expiresAt time.Time, err error)
	Store(ctx context.Context, products []Product, expiresAt time.Time) error
}

// Cache serves the product catalog with layered resolution:
// local override, in-memory snapshot, durable mirror, then remote fetch.
// Concurrent callers during a cold or expired cache share a single in-flight
// fetch instead of issuing duplicate remote calls.
//
// A Cache is an explicitly constructed component; create one per process (or
// one per test) rather than sharing a package-level instance.
type Cache struct {
	source  Source
	mirror  Mirror
	local   []Product
	ttl     time.Duration
	nowFunc func() time.Time

	mu        sync.Mutex
	products  []Product
	expiresAt time.Time
	inflight  *fetch
}

// fetch is the shared in-flight handle awaited by coalesced callers.
type fetch struct {
	done     chan struct{}
	products []Product
	err      error
}

// NewCache builds a Cache over the given source and optional durable mirror.
// A non-positive ttl falls back to DefaultTTL. source and mirror may be nil.
func NewCache(source Source, mirror Mirror, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source:  source,
		mirror:  mirror,
		local:   LocalProducts,
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

// GetProducts returns the current catalog snapshot.
func (c *Cache) GetProducts(ctx context.Context) ([]Product, error) {
	if len(c.local) > 0 {
		return c.local, nil
	}

	now := c.nowFunc()

	c.mu.Lock()
	if c.products != nil && now.Before(c.expiresAt) {
		products := c.products
		c.mu.Unlock()
		return products, nil
	}
	if f := c.inflight; f != nil {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.products, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	// Cold or expired and nobody fetching: claim the in-flight slot before
	// releasing the lock so later callers coalesce onto this fetch.
	f := &fetch{done: make(chan struct{})}
	c.inflight = f
	c.mu.Unlock()

	products, expiresAt, err := c.resolve(ctx, now)

	c.mu.Lock()
	if err == nil {
		c.products = products
		c.expiresAt = expiresAt
	}
	c.inflight = nil
	c.mu.Unlock()

	f.products, f.err = products, err
	close(f.done)

	return products, err
}

// GetProductByID returns the product with the given id, or nil if the
// catalog has no such product. There is no separate network path; it is a
// linear scan over GetProducts.
func (c *Cache) GetProductByID(ctx context.Context, id string) (*Product, error) {
	products, err := c.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, nil
}

// resolve consults the durable mirror, then the remote source. On a remote
// success the snapshot is written back to the mirror; mirror failures in
// either direction are swallowed.
func (c *Cache) resolve(ctx context.Context, now time.Time) ([]Product, time.Time, error) {
	if c.mirror != nil {
		products, expiresAt, err := c.mirror.Load(ctx)
		if err != nil {
			log.Printf("[catalog] durable cache read failed: %v", err)
		} else if len(products) > 0 && now.Before(expiresAt) {
			return products, expiresAt, nil
		}
	}

	if c.source == nil {
		return nil, time.Time{}, ErrSourceUnavailable
	}

	products, err := c.source.FetchProducts(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("fetch products: %w", err)
	}

	expiresAt := now.Add(c.ttl)
	if c.mirror != nil {
		if err := c.mirror.Store(ctx, products, expiresAt); err != nil {
			log.Printf("[catalog] durable cache write failed: %v", err)
		}
	}
	return products, expiresAt, nil
}
