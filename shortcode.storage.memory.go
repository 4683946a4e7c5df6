package shortcode

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of DefinitionStorage.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStorage struct {
	mu          sync.RWMutex
	definitions map[string]*Definition
	closed      bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage instance.
// The connection string is ignored for memory storage.
func (d *MemoryStorageDriver) Open(connectionString string) (DefinitionStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory definition storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		definitions: make(map[string]*Definition),
	}
}

// Get retrieves a definition by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	def, ok := s.definitions[name]
	if !ok {
		return nil, NewDefinitionNotFoundError(name)
	}
	return def.Clone(), nil
}

// Save stores a definition, replacing one with the same name.
func (s *MemoryStorage) Save(ctx context.Context, def *Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := def.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	stampDefinition(def, s.definitions[def.Name], time.Now())
	s.definitions[def.Name] = def.Clone()
	return nil
}

// Delete removes a definition by name.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.definitions[name]; !ok {
		return NewDefinitionNotFoundError(name)
	}
	delete(s.definitions, name)
	return nil
}

// List returns all definitions ordered by name.
func (s *MemoryStorage) List(ctx context.Context) ([]*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	results := make([]*Definition, 0, len(s.definitions))
	for _, def := range s.definitions {
		results = append(results, def.Clone())
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// Exists checks if a definition exists.
func (s *MemoryStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	_, ok := s.definitions[name]
	return ok, nil
}

// Close marks the storage as closed.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.definitions = nil
	return nil
}
