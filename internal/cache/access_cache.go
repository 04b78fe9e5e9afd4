package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// AccessCache memoizes access-check results per email. Entries expire after
// the TTL or are evicted least-recently-used once the size bound is hit.
// It is process-local: a revoked subscription can look active for up to one
// TTL on each replica, an accepted staleness bound rather than a bug.
type AccessCache struct {
	lru *expirable.LRU[string, bool]
}

func NewAccessCache(size int, ttl time.Duration) *AccessCache {
	if size <= 0 {
		size = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AccessCache{
		lru: expirable.NewLRU[string, bool](size, nil, ttl),
	}
}

// Get returns the cached access result and whether a fresh entry exists.
func (c *AccessCache) Get(email string) (bool, bool) {
	return c.lru.Get(email)
}

func (c *AccessCache) Set(email string, hasAccess bool) {
	c.lru.Add(email, hasAccess)
}

// Invalidate drops the entry after an out-of-band mutation (role change,
// claims reset, payment webhook) so the next check hits the store.
func (c *AccessCache) Invalidate(email string) {
	c.lru.Remove(email)
}

func (c *AccessCache) Len() int {
	return c.lru.Len()
}
