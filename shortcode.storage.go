package shortcode

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/itsatony/go-cuserr"
)

// DefinitionStorage is the interface for pluggable definition backends.
// Implementations must be safe for concurrent use.
//
// The interface follows patterns from database/sql for familiarity:
// - Context for cancellation and timeouts
// - Explicit error returns
// - Close for resource cleanup
type DefinitionStorage interface {
	// Get retrieves a definition by name.
	// Returns a not-found error if the definition doesn't exist.
	Get(ctx context.Context, name string) (*Definition, error)

	// Save inserts or replaces the definition with def.Name. The ID and
	// CreatedAt of an existing definition are kept; ID, CreatedAt and
	// UpdatedAt are written back to def.
	Save(ctx context.Context, def *Definition) error

	// Delete removes a definition by name.
	// Returns a not-found error if the definition doesn't exist.
	Delete(ctx context.Context, name string) error

	// List returns all definitions ordered by name.
	List(ctx context.Context) ([]*Definition, error)

	// Exists checks if a definition with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// Close releases any resources held by the storage.
	// After Close, the storage should not be used.
	Close() error
}

// StorageDriver is a factory for creating storage instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a new storage instance with the given connection string.
	// The format of the connection string is driver-specific.
	Open(connectionString string) (DefinitionStorage, error)
}

// Storage driver registry
var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// This is typically called from a driver's init() function.
// Panics if a driver with the same name is already registered.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage connection using the named driver.
// The connection string format is driver-specific.
//
// Example:
//
//	storage, err := shortcode.OpenStorage("memory", "")
//	storage, err := shortcode.OpenStorage("filesystem", "/path/to/shortcodes")
func OpenStorage(driverName, connectionString string) (DefinitionStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}

	return driver.Open(connectionString)
}

// ListStorageDrivers returns the names of all registered storage drivers, sorted.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// stampDefinition assigns the storage-managed fields of def. existing is the
// stored definition with the same name, if any.
func stampDefinition(def, existing *Definition, now time.Time) {
	if existing != nil {
		def.ID = existing.ID
		def.CreatedAt = existing.CreatedAt
	} else {
		if def.ID == "" {
			def.ID = uuid.NewString()
		}
		def.CreatedAt = now
	}
	def.UpdatedAt = now
}

// Storage error message constants
const (
	ErrMsgNilStorageDriver        = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgStorageDriverNotFound   = "storage driver not found"
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgDefinitionNotFound      = "definition not found"
	ErrMsgInvalidDefinitionName   = "invalid definition name"
	ErrMsgInvalidStorageRoot      = "storage root directory cannot be empty"
	ErrMsgCreateStorageDir        = "failed to create storage directory"
	ErrMsgReadStorageDir          = "failed to read storage directory"
	ErrMsgReadDefinitionFile      = "failed to read definition file"
	ErrMsgWriteDefinitionFile     = "failed to write definition file"
	ErrMsgDeleteDefinitionFile    = "failed to delete definition file"
	ErrMsgDecodeDefinition        = "failed to decode definition"
	ErrMsgEncodeDefinition        = "failed to encode definition"
	ErrMsgNilStorage              = "storage cannot be nil"

	ErrMsgPostgresEmptyConnString  = "PostgreSQL connection string cannot be empty"
	ErrMsgPostgresConnectionFailed = "failed to connect to PostgreSQL"
	ErrMsgPostgresQueryFailed      = "PostgreSQL query failed"
	ErrMsgPostgresMigrationFailed  = "PostgreSQL migration failed"
	ErrMsgPostgresAlreadyClosed    = "PostgreSQL storage already closed"
	ErrMsgPostgresMarshalFailed    = "failed to marshal data for PostgreSQL"
	ErrMsgPostgresUnmarshalFailed  = "failed to unmarshal PostgreSQL data"
)

// NewStorageDriverNotFoundError creates an error for missing storage driver.
func NewStorageDriverNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgStorageDriverNotFound,
		Name:    name,
	}
}

// ErrDefinitionNotFound is matched by errors.Is for every missing definition.
var ErrDefinitionNotFound = errors.New(ErrMsgDefinitionNotFound)

// NewDefinitionNotFoundError creates an error for a definition missing from storage.
func NewDefinitionNotFoundError(name string) error {
	return cuserr.WrapStdError(ErrDefinitionNotFound, ErrCodeStorage, ErrMsgDefinitionNotFound).
		WithMetadata(MetaKeyDefinition, name)
}

// NewStorageClosedError creates an error for operations on closed storage.
func NewStorageClosedError() error {
	return &StorageError{
		Message: ErrMsgStorageClosed,
	}
}

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg += ": " + e.Name
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Code returns the error code shared by all storage errors.
func (e *StorageError) Code() string {
	return ErrCodeStorage
}

// IsDefinitionNotFound reports whether err means a definition does not exist.
func IsDefinitionNotFound(err error) bool {
	return errors.Is(err, ErrDefinitionNotFound)
}
