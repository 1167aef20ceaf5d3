package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// JWKSCache is a KeySetProvider backed by a jwk.Cache that refreshes the remote key set
// in the background. Forced refreshes are throttled to one per minRefreshInterval.
type JWKSCache struct {
	cache              *jwk.Cache
	url                string
	minRefreshInterval time.Duration

	mu          sync.Mutex
	lastRefresh time.Time
	now         func() time.Time
}

// NewJWKSCache registers url in a new jwk.Cache. The cache's background refresh stops
// when ctx is cancelled. Keys are fetched lazily on first use.
func NewJWKSCache(
	ctx context.Context,
	url string,
	minRefreshInterval time.Duration,
	httpClient *http.Client,
) (*JWKSCache, error) {
	if url == "" {
		return nil, fmt.Errorf("jwks url is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	cache := jwk.NewCache(ctx)
	if err := cache.Register(
		url,
		jwk.WithMinRefreshInterval(minRefreshInterval),
		jwk.WithHTTPClient(httpClient),
	); err != nil {
		return nil, fmt.Errorf("failed to register jwks url: %w", err)
	}

	return &JWKSCache{
		cache:              cache,
		url:                url,
		minRefreshInterval: minRefreshInterval,
		now:                time.Now,
	}, nil
}

// KeySet returns the cached key set, fetching it on first use. The first fetch counts
// as a refresh for throttling purposes.
func (c *JWKSCache) KeySet(ctx context.Context) (jwk.Set, error) {
	set, err := c.cache.Get(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jwks from %s: %w", c.url, err)
	}

	c.mu.Lock()
	if c.lastRefresh.IsZero() {
		c.lastRefresh = c.now()
	}
	c.mu.Unlock()

	return set, nil
}

// Refresh forces a fetch of the key set unless one happened within minRefreshInterval,
// in which case the cached set is returned.
func (c *JWKSCache) Refresh(ctx context.Context) (jwk.Set, error) {
	c.mu.Lock()
	now := c.now()
	if !c.lastRefresh.IsZero() && now.Sub(c.lastRefresh) < c.minRefreshInterval {
		c.mu.Unlock()
		return c.KeySet(ctx)
	}
	c.lastRefresh = now
	c.mu.Unlock()

	set, err := c.cache.Refresh(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh jwks from %s: %w", c.url, err)
	}
	return set, nil
}
