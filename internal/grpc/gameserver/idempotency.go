package gameserver

import (
	"sync"
	"time"

	gameengine "github.com/mitchelldurbincs/minesweeper/internal/game"
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
)

const (
	idempotencyTTL      = 24 * time.Hour
	idempotencyMaxCache = 1000
)

// actionOutcome is what an applied action produced
type actionOutcome struct {
	action   core.Action
	result   gameengine.Result
	snapshot gameengine.Snapshot
}

// idempotencyEntry stores a cached outcome with timestamp
type idempotencyEntry struct {
	outcome   actionOutcome
	createdAt time.Time
}

// IdempotencyManager caches action outcomes per key for one game
type IdempotencyManager struct {
	cache map[string]*idempotencyEntry
	mu    sync.RWMutex
	now   func() time.Time
}

// NewIdempotencyManager creates a new idempotency manager
func NewIdempotencyManager() *IdempotencyManager {
	return &IdempotencyManager{
		cache: make(map[string]*idempotencyEntry),
		now:   time.Now,
	}
}

// Check returns the cached outcome for key, if it exists and has not expired
func (im *IdempotencyManager) Check(key string) (actionOutcome, bool) {
	if key == "" {
		return actionOutcome{}, false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	entry, exists := im.cache[key]
	if !exists || im.now().Sub(entry.createdAt) > idempotencyTTL {
		return actionOutcome{}, false
	}
	return entry.outcome, true
}

// Store caches an outcome under key. Empty keys are ignored.
func (im *IdempotencyManager) Store(key string, outcome actionOutcome) {
	if key == "" {
		return
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	im.cache[key] = &idempotencyEntry{
		outcome:   outcome,
		createdAt: im.now(),
	}

	// Clean up old entries if cache is getting large
	if len(im.cache) > idempotencyMaxCache {
		im.cleanupOldEntriesLocked()
	}
}

// Len returns the number of cached entries
func (im *IdempotencyManager) Len() int {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return len(im.cache)
}

// cleanupOldEntriesLocked removes expired entries from the cache
// Must be called with mu held
func (im *IdempotencyManager) cleanupOldEntriesLocked() {
	cutoff := im.now().Add(-idempotencyTTL)
	for key, entry := range im.cache {
		if entry.createdAt.Before(cutoff) {
			delete(im.cache, key)
		}
	}
}
