// Package cache memoizes cleaned schedule tables by source identity.
package cache

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"loadboard/domain/core"
	"loadboard/domain/schedule"
	"loadboard/internal"
	"loadboard/internal/errors"

	"golang.org/x/sync/singleflight"
)

// DefaultMaxEntries bounds how many cleaned tables are kept.
const DefaultMaxEntries = 8

// SourceKey identifies the content of a schedule source.
type SourceKey string

// FileKey derives a key from the absolute path, modification time and size,
// so an edited file gets a new key.
func FileKey(path string) (SourceKey, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.NoData(path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NoData(path, core.NewSourceAbsentError(abs))
		}
		return "", errors.NoData(path, err)
	}
	return SourceKey("file:" + core.ComputeFingerprint(abs, info.ModTime().UnixNano(), info.Size()).String()), nil
}

// BlobKey derives a key from the SHA-256 of uploaded bytes.
func BlobKey(data []byte) SourceKey {
	return SourceKey("blob:" + core.NewHash(data).String())
}

// Short abbreviates the hash part of the key for logs.
func (k SourceKey) Short() string {
	kind, hash, ok := strings.Cut(string(k), ":")
	if !ok {
		return string(k)
	}
	return kind + ":" + core.Hash(hash).Short()
}

// Loader reads and cleans a source. It is only called on a cache miss.
type Loader func() (*schedule.Table, error)

type entry struct {
	table    *schedule.Table
	loadedAt time.Time
	seq      uint64
}

// Stats are cache counters for the health endpoint.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// TableCache holds cleaned tables. Cached tables are shared and must be
// treated as read-only.
type TableCache struct {
	mu         sync.RWMutex
	entries    map[SourceKey]*entry
	maxEntries int
	seq        uint64
	group      singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache holding at most maxEntries tables; the oldest load is
// evicted first. maxEntries <= 0 uses DefaultMaxEntries.
func New(maxEntries int) *TableCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &TableCache{
		entries:    make(map[SourceKey]*entry),
		maxEntries: maxEntries,
	}
}

// Get returns a cached table without loading.
func (c *TableCache) Get(key SourceKey) (*schedule.Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.table, true
}

// Load returns the cached table for key or runs loader once. Concurrent
// misses on the same key share a single loader call. Failures are not cached.
func (c *TableCache) Load(key SourceKey, loader Loader) (*schedule.Table, error) {
	if table, ok := c.Get(key); ok {
		c.hits.Add(1)
		internal.DefaultLogger.Trace("[TableCache] hit %s", key.Short())
		return table, nil
	}

	// loaded is only set for the caller whose closure ran the loader;
	// callers that shared its result count as hits.
	loaded := false
	v, err, _ := c.group.Do(string(key), func() (interface{}, error) {
		// Another caller may have stored it between Get and Do.
		if table, ok := c.Get(key); ok {
			return table, nil
		}
		loaded = true
		c.misses.Add(1)
		startTime := time.Now()
		table, err := loader()
		if err != nil {
			return nil, err
		}
		c.store(key, table)
		log.Printf("[TableCache] cached %s (%d records) in %.2fms", key.Short(), table.Len(), float64(time.Since(startTime).Nanoseconds())/1e6)
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	if !loaded {
		c.hits.Add(1)
	}
	return v.(*schedule.Table), nil
}

func (c *TableCache) store(key SourceKey, table *schedule.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		var oldestKey SourceKey
		var oldest uint64
		for k, e := range c.entries {
			if oldestKey == "" || e.seq < oldest {
				oldestKey, oldest = k, e.seq
			}
		}
		delete(c.entries, oldestKey)
		log.Printf("[TableCache] evicted %s", oldestKey.Short())
	}
	c.seq++
	c.entries[key] = &entry{table: table, loadedAt: time.Now(), seq: c.seq}
}

// Put stores a table that was already cleaned under another key.
func (c *TableCache) Put(key SourceKey, table *schedule.Table) {
	c.store(key, table)
}

// Invalidate drops one key.
func (c *TableCache) Invalidate(key SourceKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		log.Printf("[TableCache] invalidated %s", key.Short())
	}
}

// Stats returns a snapshot of the counters.
func (c *TableCache) Stats() Stats {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()
	return Stats{Entries: n, Hits: c.hits.Load(), Misses: c.misses.Load()}
}
