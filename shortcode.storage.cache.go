package shortcode

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CachedStorage wraps any DefinitionStorage with an in-memory read cache.
// Get results, including "not found", are cached with a TTL; writes through
// the wrapper invalidate the affected name.
type CachedStorage struct {
	storage DefinitionStorage
	config  CacheConfig
	logger  *zap.Logger

	mu     sync.Mutex
	cache  map[string]*cacheEntry
	closed bool
}

// CacheConfig configures the caching behavior.
type CacheConfig struct {
	// TTL is how long cached entries remain valid.
	// Default: 5 minutes.
	TTL time.Duration

	// MaxEntries is the maximum number of cached definitions.
	// When exceeded, the least recently accessed entry is evicted.
	// Default: 1000.
	MaxEntries int

	// NegativeCacheTTL is how long to cache "not found" results.
	// Set to 0 to disable negative caching.
	// Default: 30 seconds.
	NegativeCacheTTL time.Duration

	// Logger receives hit, miss and eviction events at debug level.
	Logger *zap.Logger
}

// DefaultCacheConfig returns the default caching configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:              DefaultCacheTTL,
		MaxEntries:       DefaultCacheMaxEntries,
		NegativeCacheTTL: DefaultNegativeCacheTTL,
	}
}

type cacheEntry struct {
	definition *Definition
	notFound   bool
	cachedAt   time.Time
	accessedAt time.Time
	key        string
}

// NewCachedStorage wraps a storage with caching.
func NewCachedStorage(storage DefinitionStorage, config CacheConfig) *CachedStorage {
	if config.TTL == 0 {
		config.TTL = DefaultCacheTTL
	}
	if config.MaxEntries == 0 {
		config.MaxEntries = DefaultCacheMaxEntries
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CachedStorage{
		storage: storage,
		config:  config,
		logger:  logger,
		cache:   make(map[string]*cacheEntry),
	}
}

// Get retrieves a definition, using cache when available.
func (s *CachedStorage) Get(ctx context.Context, name string) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, NewStorageClosedError()
	}

	entry, ok := s.cache[name]
	if ok && s.isValid(entry) {
		entry.accessedAt = time.Now()
		s.mu.Unlock()

		s.logger.Debug(LogMsgDefinitionCacheHit, zap.String(LogFieldDefinition, name))
		if entry.notFound {
			return nil, NewDefinitionNotFoundError(name)
		}
		return entry.definition.Clone(), nil
	}
	s.mu.Unlock()

	s.logger.Debug(LogMsgDefinitionCacheMiss, zap.String(LogFieldDefinition, name))
	def, err := s.storage.Get(ctx, name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	if err != nil {
		if IsDefinitionNotFound(err) && s.config.NegativeCacheTTL > 0 {
			s.addEntry(name, nil, true)
		}
		return nil, err
	}

	s.addEntry(name, def.Clone(), false)
	return def, nil
}

// Save stores a definition and invalidates its cache entry.
func (s *CachedStorage) Save(ctx context.Context, def *Definition) error {
	if err := s.storage.Save(ctx, def); err != nil {
		return err
	}

	s.mu.Lock()
	s.invalidateName(def.Name)
	s.mu.Unlock()
	return nil
}

// Delete removes a definition and invalidates its cache entry.
func (s *CachedStorage) Delete(ctx context.Context, name string) error {
	if err := s.storage.Delete(ctx, name); err != nil {
		return err
	}

	s.mu.Lock()
	s.invalidateName(name)
	s.mu.Unlock()
	return nil
}

// List returns all definitions (bypasses cache).
func (s *CachedStorage) List(ctx context.Context) ([]*Definition, error) {
	return s.storage.List(ctx)
}

// Exists checks if a definition exists (may use cache).
func (s *CachedStorage) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, NewStorageClosedError()
	}

	entry, ok := s.cache[name]
	if ok && s.isValid(entry) {
		s.mu.Unlock()
		return !entry.notFound, nil
	}
	s.mu.Unlock()

	return s.storage.Exists(ctx, name)
}

// Close closes the cache and underlying storage.
func (s *CachedStorage) Close() error {
	s.mu.Lock()
	s.closed = true
	s.cache = nil
	s.mu.Unlock()

	return s.storage.Close()
}

// Invalidate removes a definition from the cache.
func (s *CachedStorage) Invalidate(name string) {
	s.mu.Lock()
	s.invalidateName(name)
	s.mu.Unlock()
}

// InvalidateAll clears the entire cache.
func (s *CachedStorage) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string]*cacheEntry)
	s.mu.Unlock()
}

// Stats returns cache statistics.
func (s *CachedStorage) Stats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var validCount, negativeCount int
	for _, entry := range s.cache {
		if !s.isValid(entry) {
			continue
		}
		if entry.notFound {
			negativeCount++
		} else {
			validCount++
		}
	}

	return CacheStats{
		Entries:         len(s.cache),
		ValidEntries:    validCount,
		NegativeEntries: negativeCount,
	}
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Entries         int
	ValidEntries    int
	NegativeEntries int
}

func (s *CachedStorage) isValid(entry *cacheEntry) bool {
	ttl := s.config.TTL
	if entry.notFound {
		ttl = s.config.NegativeCacheTTL
	}
	return time.Since(entry.cachedAt) < ttl
}

// addEntry adds an entry to the cache, evicting if necessary.
// Caller must hold the lock.
func (s *CachedStorage) addEntry(name string, def *Definition, notFound bool) {
	if _, ok := s.cache[name]; !ok && len(s.cache) >= s.config.MaxEntries {
		s.evictOldest()
	}

	now := time.Now()
	s.cache[name] = &cacheEntry{
		definition: def,
		notFound:   notFound,
		cachedAt:   now,
		accessedAt: now,
		key:        name,
	}
}

// Caller must hold the lock.
func (s *CachedStorage) invalidateName(name string) {
	if s.cache != nil {
		delete(s.cache, name)
	}
}

// evictOldest removes the least recently accessed entry.
// Caller must hold the lock.
func (s *CachedStorage) evictOldest() {
	var oldest *cacheEntry
	for _, entry := range s.cache {
		if oldest == nil || entry.accessedAt.Before(oldest.accessedAt) {
			oldest = entry
		}
	}

	if oldest != nil {
		s.logger.Debug(LogMsgDefinitionCacheEvict, zap.String(LogFieldDefinition, oldest.key))
		delete(s.cache, oldest.key)
	}
}
