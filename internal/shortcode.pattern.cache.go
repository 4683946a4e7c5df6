package internal

import (
	"sync"

	"go.uber.org/zap"
)

// PatternCache keeps compiled patterns keyed by the fingerprint of their
// ordered name list, evicting the least recently used entry when full.
type PatternCache struct {
	mu        sync.Mutex
	entries   map[string]*Pattern
	evictList []string // LRU order, most recent last
	maxSize   int
	stats     PatternCacheStats
	logger    *zap.Logger
}

// PatternCacheStats tracks cache usage.
type PatternCacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
}

// NewPatternCache creates a cache holding at most maxSize patterns.
// A non-positive size uses DefaultPatternCacheSize.
func NewPatternCache(maxSize int, logger *zap.Logger) *PatternCache {
	if maxSize <= 0 {
		maxSize = DefaultPatternCacheSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatternCache{
		entries:   make(map[string]*Pattern),
		evictList: make([]string, 0, maxSize),
		maxSize:   maxSize,
		logger:    logger,
	}
}

// Get returns the pattern for names, building and caching it on a miss.
func (c *PatternCache) Get(names []string) *Pattern {
	key := Fingerprint(names)

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.entries[key]; ok {
		c.stats.Hits++
		c.touch(key)
		c.logger.Debug(LogMsgPatternCacheHit, zap.String(LogFieldFingerprint, key))
		return p
	}

	c.stats.Misses++
	p := BuildPattern(names)
	c.logger.Debug(LogMsgPatternBuilt,
		zap.String(LogFieldFingerprint, key),
		zap.Int(LogFieldCount, len(p.names)))

	if len(c.entries) >= c.maxSize && len(c.evictList) > 0 {
		oldest := c.evictList[0]
		c.evictList = c.evictList[1:]
		delete(c.entries, oldest)
		c.stats.Evictions++
		c.logger.Debug(LogMsgPatternCacheEvict, zap.String(LogFieldFingerprint, oldest))
	}
	c.entries[key] = p
	c.evictList = append(c.evictList, key)
	return p
}

// Len returns the number of cached patterns
func (c *PatternCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a copy of the cache statistics
func (c *PatternCache) Stats() PatternCacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := c.stats
	stats.Entries = len(c.entries)
	return stats
}

// Clear removes all cached patterns
func (c *PatternCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Pattern)
	c.evictList = c.evictList[:0]
}

// touch moves key to the most recently used end. Caller holds the lock.
func (c *PatternCache) touch(key string) {
	for i, k := range c.evictList {
		if k == key {
			c.evictList = append(c.evictList[:i], c.evictList[i+1:]...)
			break
		}
	}
	c.evictList = append(c.evictList, key)
}
