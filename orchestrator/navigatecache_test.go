package orchestrator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coredb-io/clustercheck/cache"
)

func TestWithNavigateCacheDedupsRepeatedPath(t *testing.T) {
	sc := &fakeSchemeCache{}
	o := New(Clients{SchemeCache: sc}, testMiddleware(), WithNavigateCache(cache.NewMemoryCache(cache.DefaultPolicy()), time.Minute))

	for i := 0; i < 3; i++ {
		out := o.Run(context.Background(), FanOutRequest{NavigatePaths: []string{"/Root/db1"}})
		for r := range out {
			if r.Err != nil {
				t.Fatalf("unexpected error: %v", r.Err)
			}
		}
	}

	if calls := atomic.LoadInt32(&sc.navigateCalls); calls != 1 {
		t.Fatalf("navigateCalls = %d, want 1 (repeated paths should hit the cache)", calls)
	}
}

func TestWithNavigateCacheStillCallsThroughForDistinctPaths(t *testing.T) {
	sc := &fakeSchemeCache{}
	o := New(Clients{SchemeCache: sc}, testMiddleware(), WithNavigateCache(cache.NewMemoryCache(cache.DefaultPolicy()), time.Minute))

	out := o.Run(context.Background(), FanOutRequest{NavigatePaths: []string{"/Root/db1", "/Root/db2"}})
	for r := range out {
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
	}

	if calls := atomic.LoadInt32(&sc.navigateCalls); calls != 2 {
		t.Fatalf("navigateCalls = %d, want 2 (distinct paths)", calls)
	}
}

func TestWithNavigateCacheNoopWhenNoSchemeCacheClient(t *testing.T) {
	o := New(Clients{}, testMiddleware(), WithNavigateCache(cache.NewMemoryCache(cache.DefaultPolicy()), time.Minute))
	if o.clients.SchemeCache != nil {
		t.Fatalf("clients.SchemeCache = %v, want nil to stay nil", o.clients.SchemeCache)
	}
}
