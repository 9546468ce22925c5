// # internal/parser/cache.go
package parser

import (
	"fmt"

	"pypm/internal/cache"
	"pypm/internal/model"
	"pypm/internal/observability"
)

// Cache is the Parse Cache: fingerprint -> ParseResult, backed by the
// shared disk-cache engine. The key is the full (path, size, mtime)
// triple — no content hashing.
type Cache struct {
	disk *cache.DiskCache[model.ParseResult]
}

func NewCache(path string) *Cache {
	return &Cache{disk: cache.New[model.ParseResult](path, func(model.ParseResult) bool { return true })}
}

func (c *Cache) Load()       { c.disk.Load() }
func (c *Cache) Save() error { return c.disk.Save() }
func (c *Cache) Discard()    { c.disk.Discard() }
func (c *Cache) Len() int    { return c.disk.Len() }

func (c *Cache) Get(fp model.FileFingerprint) (model.ParseResult, bool) {
	result, hit := c.disk.Get(fingerprintKey(fp))
	if hit {
		observability.ParseCacheHitsTotal.Inc()
	}
	return result, hit
}

func (c *Cache) Put(fp model.FileFingerprint, result model.ParseResult) {
	c.disk.Put(fingerprintKey(fp), result)
}

func fingerprintKey(fp model.FileFingerprint) string {
	return fmt.Sprintf("%s|%d|%d", fp.Path, fp.SizeBytes, fp.ModTimeNanos)
}
