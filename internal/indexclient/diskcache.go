// # internal/indexclient/diskcache.go
package indexclient

import (
	"time"

	"pypm/internal/cache"
	"pypm/internal/model"
)

// cacheStore wraps the generic disk cache with the TTL and validation
// discipline Index Client entries need: every entry is a model.CacheEntry
// whose Exists flag records "known present" or "known absent", with the
// TTL chosen by that verdict.
type cacheStore struct {
	disk *cache.DiskCache[model.CacheEntry]
}

func newCacheStore(path string) *cacheStore {
	return &cacheStore{
		disk: cache.New[model.CacheEntry](path, validCacheEntry),
	}
}

func validCacheEntry(e model.CacheEntry) bool {
	return e.Key != "" && e.FetchedAt > 0
}

func (s *cacheStore) Load() { s.disk.Load() }

func (s *cacheStore) Save() error { return s.disk.Save() }

func (s *cacheStore) Discard() { s.disk.Discard() }

func (s *cacheStore) lookup(name string, nowUnix int64) (model.CacheEntry, bool) {
	entry, ok := s.disk.Get(name)
	if !ok {
		return model.CacheEntry{}, false
	}
	if entry.Expired(nowUnix) {
		return model.CacheEntry{}, false
	}
	return entry, true
}

func (s *cacheStore) record(name string, exists bool, nowUnix int64, existingTTL, absentTTL time.Duration) {
	ttl := absentTTL
	if exists {
		ttl = existingTTL
	}
	s.disk.Put(name, model.CacheEntry{
		Key:        name,
		Exists:     exists,
		FetchedAt:  nowUnix,
		TTLSeconds: int64(ttl.Seconds()),
	})
}
