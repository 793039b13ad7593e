package gamma

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
)

type tokenEntry struct {
	principal user.Principal
	expiresAt time.Time
}

// tokenCache remembers verified bearer tokens by hash so that every
// authenticated request does not cost an identity-provider round trip.
type tokenCache struct {
	mu         sync.RWMutex
	entries    map[string]tokenEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newTokenCache(ttl time.Duration, maxEntries int, now func() time.Time) *tokenCache {
	return &tokenCache{
		entries:    make(map[string]tokenEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        now,
	}
}

func (c *tokenCache) Get(key string) (user.Principal, bool) {
	if c.ttl <= 0 {
		return user.Principal{}, false
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return user.Principal{}, false
	}
	if !entry.expiresAt.After(c.now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return user.Principal{}, false
	}

	return entry.principal, true
}

func (c *tokenCache) Set(key string, principal user.Principal) {
	if c.ttl <= 0 {
		return
	}

	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		for k, e := range c.entries {
			if !e.expiresAt.After(now) {
				delete(c.entries, k)
			}
		}
		// Still full: drop an arbitrary entry.
		for k := range c.entries {
			if len(c.entries) < c.maxEntries {
				break
			}
			delete(c.entries, k)
		}
	}

	c.entries[key] = tokenEntry{principal: principal, expiresAt: now.Add(c.ttl)}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
