package geodata

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

const (
	// DefaultMaxEntries caps the in-memory store before LRU eviction kicks in
	DefaultMaxEntries = 50

	// DefaultTTL is the maximum residency of an entry regardless of access
	DefaultTTL = 30 * time.Minute

	// DefaultSweepInterval is how often the cleanup sweep runs
	DefaultSweepInterval = 10 * time.Minute
)

// Key builds the canonical cache key for one frame's metadata
func Key(domainID, productID, timestamp string) string {
	return fmt.Sprintf("%s_%s_%s", domainID, productID, timestamp)
}

type storeEntry struct {
	frame      *FrameMetadata
	insertedAt time.Time
	lastAccess time.Time
}

// Store is a bounded, time-expiring in-memory cache of frame metadata.
// Entries are evicted three ways: LRU once the size cap is exceeded, a
// periodic sweep removing entries older than the TTL (by insert time, not
// access time), and explicit Clear. The store owns its cleanup timer; start
// and stop it through the lifecycle methods rather than sharing ambient
// global state.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]*storeEntry
	maxEntries int
	ttl        time.Duration
	sweepEvery time.Duration
	stopSweep  chan struct{}

	// now is time.Now outside of tests
	now func() time.Time
}

// NewStore creates a store with the given size cap and expiry settings.
// Non-positive arguments fall back to the defaults.
func NewStore(maxEntries int, ttl, sweepEvery time.Duration) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if sweepEvery <= 0 {
		sweepEvery = DefaultSweepInterval
	}
	return &Store{
		entries:    make(map[string]*storeEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
		sweepEvery: sweepEvery,
		now:        time.Now,
	}
}

// Get retrieves cached metadata and marks the entry as recently used
func (s *Store) Get(key string) *FrameMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[key]
	if !exists {
		return nil
	}
	entry.lastAccess = s.now()
	return entry.frame
}

// Put stores metadata under a key, evicting least-recently-accessed entries
// if the size cap is exceeded.
func (s *Store) Put(key string, frame *FrameMetadata) {
	if frame == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[key] = &storeEntry{frame: frame, insertedAt: now, lastAccess: now}
	s.evictLocked()
}

// evictLocked removes entries with the smallest lastAccess until the size
// constraint holds. Caller must hold the write lock.
func (s *Store) evictLocked() {
	if len(s.entries) <= s.maxEntries {
		return
	}

	type sortEntry struct {
		key        string
		lastAccess time.Time
	}
	entries := make([]sortEntry, 0, len(s.entries))
	for key, e := range s.entries {
		entries = append(entries, sortEntry{key: key, lastAccess: e.lastAccess})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].lastAccess.Before(entries[j].lastAccess)
	})

	for _, e := range entries {
		if len(s.entries) <= s.maxEntries {
			break
		}
		delete(s.entries, e.key)
	}
}

// Size returns the number of cached entries
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes all cached entries
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*storeEntry)
}

// StartCleanup launches the periodic TTL sweep. Calling it while a sweep is
// already running is a no-op.
func (s *Store) StartCleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopSweep != nil {
		return
	}
	stop := make(chan struct{})
	s.stopSweep = stop

	go func() {
		ticker := time.NewTicker(s.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-stop:
				return
			}
		}
	}()
	log.Printf("Geodata cache cleanup started (sweep every %s, TTL %s)", s.sweepEvery, s.ttl)
}

// StopCleanup halts the periodic sweep. Safe to call when not running.
func (s *Store) StopCleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopSweep == nil {
		return
	}
	close(s.stopSweep)
	s.stopSweep = nil
}

// sweep removes entries whose insert time is older than the TTL, regardless
// of how recently they were accessed, then re-applies the LRU size cap.
func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for key, entry := range s.entries {
		if entry.insertedAt.Before(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}
	s.evictLocked()

	if removed > 0 {
		log.Printf("Geodata cache sweep removed %d expired entries (%d remain)", removed, len(s.entries))
	}
}
