package geodata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DiskCache persists normalized frame metadata across app restarts so a
// relaunch can display annotations without refetching. It sits between the
// in-memory store and the network: best effort only, every failure is a
// cache miss.
type DiskCache struct {
	baseDir string
	ttl     time.Duration
	mu      sync.Mutex
}

// NewDiskCache creates a disk cache rooted at baseDir. Entries older than
// ttl are treated as misses and removed on access.
func NewDiskCache(baseDir string, ttl time.Duration) (*DiskCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create geodata cache directory: %w", err)
	}
	return &DiskCache{baseDir: baseDir, ttl: ttl}, nil
}

// filePath hashes the key to avoid filesystem naming limits
// Structure: {baseDir}/{hash[:2]}/{hash}.json
func (c *DiskCache) filePath(key string) string {
	hash := sha256.Sum256([]byte(key))
	hashStr := hex.EncodeToString(hash[:])
	return filepath.Join(c.baseDir, hashStr[:2], hashStr+".json")
}

// Get returns the persisted metadata for a key, or nil on any miss or error
func (c *DiskCache) Get(key string) *FrameMetadata {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.filePath(key)
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		os.Remove(path) // Best effort cleanup
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var frame FrameMetadata
	if err := json.Unmarshal(data, &frame); err != nil {
		os.Remove(path)
		return nil
	}
	return &frame
}

// Put persists metadata for a key. Fallback frames are not persisted; they
// are synthesized cheaply and a later launch should retry the real fetch.
func (c *DiskCache) Put(key string, frame *FrameMetadata) error {
	if frame == nil || frame.IsFallback {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.filePath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache subdirectory: %w", err)
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to marshal frame metadata: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// Clear removes all persisted entries
func (c *DiskCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		os.RemoveAll(filepath.Join(c.baseDir, entry.Name()))
	}
	return nil
}
