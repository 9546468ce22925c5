// Package cache implements the persistent-disk-cache discipline shared by
// the Index Client and the Parse Cache: a mutex-guarded in-memory map,
// atomic write-then-rename persistence, and a corrupt-file-resets-to-empty
// load path. It is generic over the stored value type so both caches can
// share one implementation.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// schemaVersion is bumped whenever the on-disk envelope shape changes.
const schemaVersion = 1

// envelope is the on-disk wrapper: a version tag plus the entries map.
type envelope[V any] struct {
	Version int          `json:"version"`
	Entries map[string]V `json:"entries"`
}

// Validator is called once per loaded entry; an entry that fails
// validation is dropped silently rather than failing the whole load.
type Validator[V any] func(V) bool

// DiskCache is a thread-safe, JSON-backed persistent cache of key -> V.
type DiskCache[V any] struct {
	mu        sync.Mutex
	path      string
	entries   map[string]V
	validate  Validator[V]
	dirty     bool
}

// New creates a cache bound to path. It does not load from disk; call
// Load explicitly so callers can distinguish "fresh cache" from "load
// failed and was reset" if they care to log it.
func New[V any](path string, validate Validator[V]) *DiskCache[V] {
	if validate == nil {
		validate = func(V) bool { return true }
	}
	return &DiskCache[V]{
		path:     path,
		entries:  make(map[string]V),
		validate: validate,
	}
}

// Load reads the cache file. A missing file, a parse failure, or a schema
// mismatch all result in an empty cache rather than an error — cache
// corruption is never fatal.
func (c *DiskCache[V]) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]V)

	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}

	var env envelope[V]
	if err := json.Unmarshal(data, &env); err != nil {
		return
	}
	if env.Version != schemaVersion {
		return
	}

	for k, v := range env.Entries {
		if c.validate(v) {
			c.entries[k] = v
		}
	}
}

// Get returns the cached value and true if present.
func (c *DiskCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put inserts or overwrites key's value and marks the cache dirty.
func (c *DiskCache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.dirty = true
}

// Len reports the number of entries currently held in memory.
func (c *DiskCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Save persists the cache atomically (write to a temp file, then rename)
// with owner-only permissions on POSIX, but only if Put has been called
// since the last Save or Discard. Callers should invoke Save exactly
// once, at process exit.
func (c *DiskCache[V]) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	env := envelope[V]{Version: schemaVersion, Entries: c.entries}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".cache-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		return err
	}

	c.dirty = false
	return nil
}

// Discard clears the dirty flag without persisting — used on cooperative
// cancellation, so a cancelled run never persists partial data.
func (c *DiskCache[V]) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
}
