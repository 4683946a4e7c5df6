package shortcode

import "time"

// ErrorStrategy defines how to handle a shortcode that fails to render
type ErrorStrategy int

const (
	// ErrorStrategyThrow stops compilation and returns the error
	ErrorStrategyThrow ErrorStrategy = iota
	// ErrorStrategyDefault replaces the shortcode with its "default" attribute
	ErrorStrategyDefault
	// ErrorStrategyRemove removes the shortcode entirely from output
	ErrorStrategyRemove
	// ErrorStrategyKeepRaw keeps the original shortcode text in output
	ErrorStrategyKeepRaw
	// ErrorStrategyLog logs the error and continues with empty string
	ErrorStrategyLog
)

// ErrorStrategyNotSet is a sentinel value indicating no strategy override
const ErrorStrategyNotSet ErrorStrategy = -1

// Error strategy string values for attribute and config parsing
const (
	ErrorStrategyNameThrow   = "throw"
	ErrorStrategyNameDefault = "default"
	ErrorStrategyNameRemove  = "remove"
	ErrorStrategyNameKeepRaw = "keepraw"
	ErrorStrategyNameLog     = "log"
)

// String returns the string representation of the error strategy
func (s ErrorStrategy) String() string {
	switch s {
	case ErrorStrategyThrow:
		return ErrorStrategyNameThrow
	case ErrorStrategyDefault:
		return ErrorStrategyNameDefault
	case ErrorStrategyRemove:
		return ErrorStrategyNameRemove
	case ErrorStrategyKeepRaw:
		return ErrorStrategyNameKeepRaw
	case ErrorStrategyLog:
		return ErrorStrategyNameLog
	default:
		return ErrorStrategyNameThrow
	}
}

// ParseErrorStrategy parses a string into an ErrorStrategy.
// Returns ErrorStrategyThrow for unknown values.
func ParseErrorStrategy(s string) ErrorStrategy {
	switch s {
	case ErrorStrategyNameDefault:
		return ErrorStrategyDefault
	case ErrorStrategyNameRemove:
		return ErrorStrategyRemove
	case ErrorStrategyNameKeepRaw:
		return ErrorStrategyKeepRaw
	case ErrorStrategyNameLog:
		return ErrorStrategyLog
	default:
		return ErrorStrategyThrow
	}
}

// IsValidErrorStrategy checks if a string is a valid error strategy name.
func IsValidErrorStrategy(s string) bool {
	switch s {
	case ErrorStrategyNameThrow, ErrorStrategyNameDefault,
		ErrorStrategyNameRemove, ErrorStrategyNameKeepRaw, ErrorStrategyNameLog:
		return true
	default:
		return false
	}
}

// Attribute names with a meaning to the engine itself
const (
	AttrDefault = "default"
	AttrOnError = "onerror"
)

// Handler reference syntax
const (
	RefMethodSeparator = "@"
	DefaultMethodName  = "Register"
)

// Default configuration values
const (
	DefaultMaxDepth         = 100
	DefaultPatternCacheSize = 64
)

// Definition storage cache defaults
const (
	DefaultCacheTTL         = 5 * time.Minute
	DefaultCacheMaxEntries  = 1000
	DefaultNegativeCacheTTL = 30 * time.Second
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// Filesystem storage constants
const (
	FilesystemDirPermissions  = 0755
	FilesystemFilePermissions = 0644
	FilesystemFileSuffix      = ".yaml"
)

// PostgreSQL storage driver configuration defaults
const (
	PostgresTablePrefix            = "shortcode_"
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyShortcode    = "shortcode"
	MetaKeyLine         = "line"
	MetaKeyColumn       = "column"
	MetaKeyOffset       = "offset"
	MetaKeyReference    = "reference"
	MetaKeyMethod       = "method"
	MetaKeyType         = "type"
	MetaKeyCurrentDepth = "current_depth"
	MetaKeyMaxDepth     = "max_depth"
	MetaKeyPath         = "path"
	MetaKeyStrategy     = "strategy"
	MetaKeyDefinition   = "definition"
)

// Log messages
const (
	LogMsgEngineCreated         = "shortcode engine created"
	LogMsgCompileStart          = "compiling text"
	LogMsgCompileComplete       = "compile complete"
	LogMsgHandlerResolved       = "handler resolved"
	LogMsgRenderFailed          = "shortcode render failed"
	LogMsgStrategyApplied       = "error strategy applied"
	LogMsgDefinitionRegistered  = "definition registered"
	LogMsgDefinitionsLoaded     = "definitions loaded from storage"
	LogMsgConfigLoaded          = "configuration loaded"
	LogMsgStorageOpened         = "definition storage opened"
	LogMsgMigrationApplied      = "storage migration applied"
	LogMsgDefinitionCacheHit    = "definition cache hit"
	LogMsgDefinitionCacheMiss   = "definition cache miss"
	LogMsgDefinitionCacheEvict  = "definition cache eviction"
)

// Log field names
const (
	LogFieldShortcode  = "shortcode"
	LogFieldReference  = "reference"
	LogFieldStrategy   = "strategy"
	LogFieldDepth      = "depth"
	LogFieldCount      = "count"
	LogFieldLength     = "length"
	LogFieldDriver     = "driver"
	LogFieldPath       = "path"
	LogFieldVersion    = "version"
	LogFieldDefinition = "definition"
)
