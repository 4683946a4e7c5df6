package internal

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Registry maps shortcode names to values in registration order.
// It is safe for concurrent use: writers take an exclusive lock, readers work
// on an immutable Snapshot that is rebuilt after every change.
type Registry[V any] struct {
	names    []string
	values   map[string]V
	snapshot *Snapshot[V]
	patterns *PatternCache
	mu       sync.RWMutex
	logger   *zap.Logger
}

// Snapshot is a consistent, read-only view of a registry together with the
// pattern compiled from its names.
type Snapshot[V any] struct {
	names   []string
	values  map[string]V
	Pattern *Pattern
}

// NewRegistry creates an empty registry. Patterns are looked up in cache; a
// nil cache gets a private one.
func NewRegistry[V any](cache *PatternCache, logger *zap.Logger) *Registry[V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewPatternCache(DefaultPatternCacheSize, logger)
	}
	logger.Debug(LogMsgRegistryCreated)
	return &Registry[V]{
		values:   make(map[string]V),
		patterns: cache,
		logger:   logger,
	}
}

// Register stores value under name. An existing entry is replaced in place
// and keeps its position; replaced reports whether that happened.
func (r *Registry[V]) Register(name string, value V) (replaced bool, err error) {
	if name == StringValueEmpty {
		return false, NewRegistryError(ErrMsgEmptyName, StringValueEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, replaced = r.values[name]; !replaced {
		r.names = append(r.names, name)
	}
	r.values[name] = value
	r.snapshot = nil

	if replaced {
		r.logger.Debug(LogMsgShortcodeReplaced, zap.String(LogFieldName, name))
	} else {
		r.logger.Debug(LogMsgShortcodeRegistered, zap.String(LogFieldName, name))
	}
	return replaced, nil
}

// Unregister removes name. Returns false if it was not registered.
func (r *Registry[V]) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[name]; !ok {
		return false
	}
	delete(r.values, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i:i], r.names[i+1:]...)
			break
		}
	}
	r.snapshot = nil
	r.logger.Debug(LogMsgShortcodeRemoved, zap.String(LogFieldName, name))
	return true
}

// Destroy removes every entry.
func (r *Registry[V]) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.names = nil
	r.values = make(map[string]V)
	r.snapshot = nil
	r.logger.Debug(LogMsgRegistryDestroyed)
}

// Get retrieves the value registered under name.
func (r *Registry[V]) Get(name string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[name]
	return v, ok
}

// Has checks if name is registered.
func (r *Registry[V]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.values[name]
	return ok
}

// Names returns the registered names in registration order.
func (r *Registry[V]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.names...)
}

// Values returns a copy of all entries.
func (r *Registry[V]) Values() map[string]V {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]V, len(r.values))
	for k, v := range r.values {
		result[k] = v
	}
	return result
}

// Count returns the number of entries.
func (r *Registry[V]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.names)
}

// Snapshot returns the current read-only view. The same snapshot is shared
// until the next change.
func (r *Registry[V]) Snapshot() *Snapshot[V] {
	r.mu.RLock()
	snap := r.snapshot
	r.mu.RUnlock()
	if snap != nil {
		return snap
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snapshot != nil {
		return r.snapshot
	}

	snap = &Snapshot[V]{
		names:  append([]string(nil), r.names...),
		values: make(map[string]V, len(r.values)),
	}
	for k, v := range r.values {
		snap.values[k] = v
	}
	if len(snap.names) > 0 {
		snap.Pattern = r.patterns.Get(snap.names)
	}
	r.snapshot = snap
	r.logger.Debug(LogMsgSnapshotBuilt, zap.Int(LogFieldCount, len(snap.names)))
	return snap
}

// Get retrieves the value registered under name at snapshot time.
func (s *Snapshot[V]) Get(name string) (V, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has checks if name was registered at snapshot time.
func (s *Snapshot[V]) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Names returns the snapshot's names in registration order.
func (s *Snapshot[V]) Names() []string {
	return append([]string(nil), s.names...)
}

// Count returns the number of entries in the snapshot.
func (s *Snapshot[V]) Count() int {
	return len(s.names)
}

// RegistryError represents a registry operation error
type RegistryError struct {
	Message string
	Name    string
}

// NewRegistryError creates a new registry error
func NewRegistryError(message, name string) *RegistryError {
	return &RegistryError{
		Message: message,
		Name:    name,
	}
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.Name != StringValueEmpty {
		return fmt.Sprintf(ErrFmtNameMessage, e.Message, e.Name)
	}
	return e.Message
}

// Registry error message constants
const (
	ErrMsgEmptyName = "shortcode name cannot be empty"
)
