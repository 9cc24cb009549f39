// Package cache remembers which user ids have been confirmed to exist so the
// auth middleware can skip a database round trip on every request.
package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// UserCache is a bounded set of known user ids.
type UserCache struct {
	store *ristretto.Cache[string, struct{}]
	ttl   time.Duration
}

// NewUserCache creates a cache whose entries expire after ttl.
// A ttl of zero keeps entries until they are evicted.
func NewUserCache(ttl time.Duration) (*UserCache, error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, struct{}]{
		NumCounters: 100000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}
	return &UserCache{store: store, ttl: ttl}, nil
}

// Known reports whether userID was previously remembered.
func (c *UserCache) Known(userID string) bool {
	_, ok := c.store.Get(userID)
	return ok
}

// Remember marks userID as existing. Ristretto applies writes
// asynchronously, so a following Known may still miss.
func (c *UserCache) Remember(userID string) {
	c.store.SetWithTTL(userID, struct{}{}, 1, c.ttl)
}

// Wait blocks until pending writes are visible.
func (c *UserCache) Wait() {
	c.store.Wait()
}

// Close stops the cache's background goroutines.
func (c *UserCache) Close() {
	c.store.Close()
}
