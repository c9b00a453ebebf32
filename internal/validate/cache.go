// Package validate checks repository names referenced by tool calls
// against the set of repositories the Gitblit backend actually knows,
// and suggests corrections for near-misses.
package validate

import (
	"context"
	"sync"
	"time"
)

// refreshPageSize is how many repositories are fetched per page during a
// cache refresh.
const refreshPageSize = 100

// PageFetcher returns one page of repository names starting at offset.
// limitHit reports whether more pages remain beyond offset+limit. It
// isolates the cache's pagination loop from the backend wire format.
type PageFetcher func(ctx context.Context, limit, offset int) (names []string, limitHit bool, err error)

// RepoCache holds a time-bounded snapshot of all repository names known to
// the backend. It is created empty and populated on first use; once the
// snapshot is older than the TTL the next read refetches it synchronously.
//
// Concurrent reads racing on an expired snapshot may each trigger their
// own refresh. That is wasteful but harmless: every refresh converges to
// the same backend truth and replaces the snapshot wholesale.
type RepoCache struct {
	fetchPage PageFetcher
	ttl       time.Duration
	now       func() time.Time

	mu          sync.Mutex
	names       []string
	lastRefresh time.Time
}

// NewRepoCache creates an empty cache that fetches pages via fetchPage and
// considers its snapshot stale after ttl.
func NewRepoCache(fetchPage PageFetcher, ttl time.Duration) *RepoCache {
	return &RepoCache{
		fetchPage: fetchPage,
		ttl:       ttl,
		now:       time.Now,
	}
}

// RepoNames returns the cached repository names, refreshing first when the
// snapshot has expired. A failed refresh leaves the previous snapshot
// intact but still fails the current call: the existence check must not
// run against data known to be unverifiable.
func (c *RepoCache) RepoNames(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.now().Sub(c.lastRefresh) > c.ttl {
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
	}
	return c.names, nil
}

// refresh fetches every page of repository names and replaces the snapshot.
// Caller must hold c.mu.
func (c *RepoCache) refresh(ctx context.Context) error {
	var all []string
	offset := 0

	for {
		names, limitHit, err := c.fetchPage(ctx, refreshPageSize, offset)
		if err != nil {
			return err
		}
		all = append(all, names...)

		if !limitHit {
			break
		}
		offset += refreshPageSize
	}

	c.names = all
	c.lastRefresh = c.now()
	return nil
}
