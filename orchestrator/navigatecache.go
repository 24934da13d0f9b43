package orchestrator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coredb-io/clustercheck/cache"
	"github.com/coredb-io/clustercheck/transport"
)

// cachingSchemeCache wraps a transport.SchemeCacheClient with a short-TTL
// memoization layer shared across every self-check request the process
// serves, so concurrent or back-to-back requests hitting the same hot
// database path don't each re-issue a navigate RPC. Built directly on
// cache.Cache's get-or-call-and-store shape with cache.Keyer supplying
// the per-RPC key; domain-keyed results still change (placement moves),
// so the TTL is short rather than the static-config snapshot's
// bootstrap-once lifetime.
type cachingSchemeCache struct {
	inner transport.SchemeCacheClient
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

func (c *cachingSchemeCache) Navigate(ctx context.Context, path string) (transport.NavigateResult, error) {
	return c.navigate(ctx, "navigate", path, func() (transport.NavigateResult, error) {
		return c.inner.Navigate(ctx, path)
	})
}

func (c *cachingSchemeCache) NavigateByID(ctx context.Context, pathID uint64) (transport.NavigateResult, error) {
	return c.navigate(ctx, "navigate_by_id", pathID, func() (transport.NavigateResult, error) {
		return c.inner.NavigateByID(ctx, pathID)
	})
}

func (c *cachingSchemeCache) navigate(ctx context.Context, op string, key any, call func() (transport.NavigateResult, error)) (transport.NavigateResult, error) {
	cacheKey, keyErr := c.keyer.Key(op, key)
	if keyErr == nil {
		if raw, ok := c.cache.Get(ctx, cacheKey); ok {
			var result transport.NavigateResult
			if json.Unmarshal(raw, &result) == nil {
				return result, nil
			}
		}
	}

	result, err := call()
	if err != nil {
		return result, err
	}

	if keyErr == nil {
		if encoded, merr := json.Marshal(result); merr == nil {
			_ = c.cache.Set(ctx, cacheKey, encoded, c.ttl)
		}
	}
	return result, nil
}

// WithNavigateCache wraps the orchestrator's scheme-cache client with a
// c-backed, ttl-bounded navigate memoization layer. Pass a process-wide
// cache.Cache so the memoization is shared across every request, not
// reconstructed per Orchestrator.
func WithNavigateCache(c cache.Cache, ttl time.Duration) Option {
	return func(o *Orchestrator) {
		if o.clients.SchemeCache == nil {
			return
		}
		o.clients.SchemeCache = &cachingSchemeCache{
			inner: o.clients.SchemeCache,
			cache: c,
			keyer: cache.NewDefaultKeyer(),
			ttl:   ttl,
		}
	}
}
