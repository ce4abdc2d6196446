// Package fingerprint caches values derived from files and recomputes them only
// when the file's content digest changes.
package fingerprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/crypto/blake2b"

	"github.com/mmcdole/steamrun/internal/domain"
)

// Store persists computed results between runs. Keys are file paths.
type Store interface {
	Load(key string) (digest, payload []byte, ok bool)
	Save(key string, digest, payload []byte) error
}

// Deleter is implemented by stores that can drop a single entry. The cache uses
// it to forget files that no longer exist.
type Deleter interface {
	Delete(key string)
}

type entry[T any] struct {
	digest [blake2b.Size256]byte
	value  T
}

// Stats counts cache activity since construction or the last Reset.
type Stats struct {
	Hits     int64 // served from memory
	Restores int64 // served from the persistent store
	Computes int64 // compute was called
}

// Cache holds one slot per file path. Each slot keeps the digest of the bytes
// the value was computed from.
type Cache[T any] struct {
	name   string
	store  Store
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]entry[T]

	hits     atomic.Int64
	restores atomic.Int64
	computes atomic.Int64
}

// New creates a cache. name prefixes keys in store, which may be nil.
func New[T any](name string, store Store, logger *slog.Logger) *Cache[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache[T]{
		name:    name,
		store:   store,
		logger:  logger,
		entries: make(map[string]entry[T]),
	}
}

// GetOrCompute reads path and returns the cached value if the content is
// unchanged. Otherwise compute runs on the new bytes and its result replaces the
// slot. A failing compute leaves the previous slot in place.
func (c *Cache[T]) GetOrCompute(path string, compute func([]byte) (T, error)) (T, error) {
	var zero T

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.forget(path)
		}
		return zero, fmt.Errorf("%w: %w", domain.ErrFileUnavailable, err)
	}
	digest := blake2b.Sum256(data)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok && e.digest == digest {
		c.hits.Add(1)
		return e.value, nil
	}

	if v, ok := c.restore(path, digest); ok {
		c.restores.Add(1)
		c.entries[path] = entry[T]{digest: digest, value: v}
		return v, nil
	}

	c.computes.Add(1)
	c.logger.Debug("fingerprint changed, recomputing", "cache", c.name, "file", filepath.Base(path))

	v, err := compute(data)
	if err != nil {
		return zero, err
	}
	c.entries[path] = entry[T]{digest: digest, value: v}
	c.persist(path, digest, v)
	return v, nil
}

// forget drops the slot for a file that is gone, in memory and in the store.
func (c *Cache[T]) forget(path string) {
	c.mu.Lock()
	_, had := c.entries[path]
	delete(c.entries, path)
	c.mu.Unlock()

	if d, ok := c.store.(Deleter); ok {
		d.Delete(c.key(path))
	}
	if had {
		c.logger.Debug("file removed, dropping cache entry", "cache", c.name, "file", path)
	}
}

func (c *Cache[T]) key(path string) string {
	return c.name + ":" + path
}

func (c *Cache[T]) restore(path string, digest [blake2b.Size256]byte) (T, bool) {
	var v T
	if c.store == nil {
		return v, false
	}
	stored, payload, ok := c.store.Load(c.key(path))
	if !ok || !bytes.Equal(stored, digest[:]) {
		return v, false
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		c.logger.Warn("discarding unreadable cache entry", "cache", c.name, "file", path, "error", err)
		return v, false
	}
	return v, true
}

func (c *Cache[T]) persist(path string, digest [blake2b.Size256]byte, v T) {
	if c.store == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("failed to encode cache entry", "cache", c.name, "file", path, "error", err)
		return
	}
	if err := c.store.Save(c.key(path), digest[:], payload); err != nil {
		c.logger.Warn("failed to persist cache entry", "cache", c.name, "file", path, "error", err)
	}
}

// Stats returns a snapshot of the counters.
func (c *Cache[T]) Stats() Stats {
	return Stats{
		Hits:     c.hits.Load(),
		Restores: c.restores.Load(),
		Computes: c.computes.Load(),
	}
}

// Reset drops every in-memory slot and zeroes the counters. The persistent store
// is left alone.
func (c *Cache[T]) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]entry[T])
	c.mu.Unlock()

	c.hits.Store(0)
	c.restores.Store(0)
	c.computes.Store(0)
}
