package shortcode

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FilesystemStorage stores each definition as a YAML file named after the
// shortcode.
//
// Directory structure:
//
//	<root>/
//	  a.yaml
//	  gallery.yaml
//	  ...
type FilesystemStorage struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a new FilesystemStorage instance.
// The connection string is the root directory path.
func (d *FilesystemStorageDriver) Open(connectionString string) (DefinitionStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// NewFilesystemStorage creates a new filesystem-based definition storage.
// The root directory will be created if it doesn't exist.
func NewFilesystemStorage(root string) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}

	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{
			Message: ErrMsgCreateStorageDir,
			Name:    root,
			Cause:   err,
		}
	}

	return &FilesystemStorage{
		root: root,
	}, nil
}

// Root returns the storage directory.
func (s *FilesystemStorage) Root() string {
	return s.root
}

// Get retrieves a definition by name.
func (s *FilesystemStorage) Get(ctx context.Context, name string) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateDefinitionNameForFilesystem(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	return s.load(name)
}

// Save writes a definition, replacing one with the same name.
func (s *FilesystemStorage) Save(ctx context.Context, def *Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := def.Validate(); err != nil {
		return err
	}
	if err := validateDefinitionNameForFilesystem(def.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	existing, err := s.load(def.Name)
	if err != nil && !IsDefinitionNotFound(err) {
		return err
	}

	stored := def.Clone()
	stampDefinition(stored, existing, time.Now())

	data, err := yaml.Marshal(stored)
	if err != nil {
		return &StorageError{Message: ErrMsgEncodeDefinition, Name: def.Name, Cause: err}
	}

	// Write to a temp file first so readers never see a partial file
	filename := s.path(def.Name)
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, FilesystemFilePermissions); err != nil {
		return &StorageError{Message: ErrMsgWriteDefinitionFile, Name: tmp, Cause: err}
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Message: ErrMsgWriteDefinitionFile, Name: filename, Cause: err}
	}

	def.ID = stored.ID
	def.CreatedAt = stored.CreatedAt
	def.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes a definition by name.
func (s *FilesystemStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateDefinitionNameForFilesystem(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewDefinitionNotFoundError(name)
		}
		return &StorageError{Message: ErrMsgDeleteDefinitionFile, Name: name, Cause: err}
	}
	return nil
}

// List returns all definitions ordered by name. Files that cannot be decoded
// are skipped.
func (s *FilesystemStorage) List(ctx context.Context) ([]*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgReadStorageDir, Name: s.root, Cause: err}
	}

	results := make([]*Definition, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FilesystemFileSuffix) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), FilesystemFileSuffix)
		def, err := s.load(name)
		if err != nil {
			continue
		}
		results = append(results, def)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// Exists checks if a definition exists.
func (s *FilesystemStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validateDefinitionNameForFilesystem(name); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	_, err := os.Stat(s.path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &StorageError{Message: ErrMsgReadDefinitionFile, Name: name, Cause: err}
}

// Close marks the storage as closed.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func (s *FilesystemStorage) path(name string) string {
	return filepath.Join(s.root, name+FilesystemFileSuffix)
}

// load reads a definition from disk (no locking).
func (s *FilesystemStorage) load(name string) (*Definition, error) {
	filename := s.path(name)
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewDefinitionNotFoundError(name)
		}
		return nil, &StorageError{Message: ErrMsgReadDefinitionFile, Name: filename, Cause: err}
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, &StorageError{Message: ErrMsgDecodeDefinition, Name: filename, Cause: err}
	}
	if def.Name == "" {
		def.Name = name
	}
	return &def, nil
}

// Filesystem error message constants
const (
	ErrMsgPathTraversalDetected = "path traversal detected in definition name"
)

// validateDefinitionNameForFilesystem validates a definition name for filesystem safety.
// Prevents path traversal attacks and invalid filesystem characters.
func validateDefinitionNameForFilesystem(name string) error {
	if name == "" {
		return &StorageError{Message: ErrMsgInvalidDefinitionName}
	}
	if strings.Contains(name, "..") {
		return &StorageError{Message: ErrMsgPathTraversalDetected, Name: name}
	}
	if strings.ContainsAny(name, "/\\:*?\"<>|") {
		return &StorageError{Message: ErrMsgInvalidDefinitionName, Name: name}
	}
	return nil
}
