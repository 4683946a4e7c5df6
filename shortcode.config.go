package shortcode

import (
	"context"
	"os"

	"github.com/itsatony/go-cuserr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of an engine.
//
//	error_strategy: keepraw
//	max_depth: 10
//	storage:
//	  driver: filesystem
//	  dsn: ./shortcodes
//	definitions:
//	  - name: a
//	    template: '<a href="{{ .Attr "href" "#" }}">{{ .Inner }}</a>'
type Config struct {
	ErrorStrategy    string         `yaml:"error_strategy,omitempty"`
	MaxDepth         *int           `yaml:"max_depth,omitempty"`
	PatternCacheSize int            `yaml:"pattern_cache_size,omitempty"`
	Storage          *StorageConfig `yaml:"storage,omitempty"`
	Definitions      []*Definition  `yaml:"definitions,omitempty"`

	path string
}

// StorageConfig selects a definition storage driver.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn,omitempty"`

	// Cache wraps the storage in a CachedStorage with default settings.
	Cache bool `yaml:"cache,omitempty"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigReadFailed, path, err)
	}
	cfg, err := parseConfig(data, path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes and validates YAML config data.
func ParseConfig(data []byte) (*Config, error) {
	return parseConfig(data, "")
}

func parseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, NewConfigError(ErrMsgConfigParseFailed, path, err)
	}
	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the strategy, depth and definitions.
func (c *Config) Validate() error {
	if c.ErrorStrategy != "" && !IsValidErrorStrategy(c.ErrorStrategy) {
		return cuserr.NewValidationError(ErrCodeConfig, ErrMsgConfigInvalidStrategy).
			WithMetadata(MetaKeyStrategy, c.ErrorStrategy).
			WithMetadata(MetaKeyPath, c.path)
	}
	if c.MaxDepth != nil && *c.MaxDepth < 0 {
		return NewConfigError(ErrMsgConfigNegativeDepth, c.path, nil)
	}
	for _, def := range c.Definitions {
		if err := def.Validate(); err != nil {
			return NewConfigError(ErrMsgConfigParseFailed, c.path, err)
		}
	}
	return nil
}

// Options converts the engine settings of the config into options.
func (c *Config) Options() []Option {
	var opts []Option
	if c.ErrorStrategy != "" {
		opts = append(opts, WithErrorStrategy(ParseErrorStrategy(c.ErrorStrategy)))
	}
	if c.MaxDepth != nil {
		opts = append(opts, WithMaxDepth(*c.MaxDepth))
	}
	if c.PatternCacheSize > 0 {
		opts = append(opts, WithPatternCacheSize(c.PatternCacheSize))
	}
	return opts
}

// OpenStorage opens the configured storage, or returns nil when none is set.
func (c *Config) OpenStorage(logger *zap.Logger) (DefinitionStorage, error) {
	if c.Storage == nil || c.Storage.Driver == "" {
		return nil, nil
	}
	storage, err := OpenStorage(c.Storage.Driver, c.Storage.DSN)
	if err != nil {
		return nil, err
	}
	if c.Storage.Cache {
		cacheConfig := DefaultCacheConfig()
		cacheConfig.Logger = logger
		storage = NewCachedStorage(storage, cacheConfig)
	}
	return storage, nil
}

// NewFromConfig builds an engine from cfg. Options passed here are applied
// after the config's own settings. Inline definitions are registered first,
// then definitions from the configured storage, which is closed afterwards.
func NewFromConfig(ctx context.Context, cfg *Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := New(append(cfg.Options(), opts...)...)
	if err != nil {
		return nil, err
	}

	for _, def := range cfg.Definitions {
		if err := engine.RegisterDefinition(def); err != nil {
			return nil, err
		}
	}

	storage, err := cfg.OpenStorage(engine.logger)
	if err != nil {
		return nil, err
	}
	if storage != nil {
		defer storage.Close()
		engine.logger.Debug(LogMsgStorageOpened, zap.String(LogFieldDriver, cfg.Storage.Driver))
		if _, err := engine.LoadDefinitions(ctx, storage); err != nil {
			return nil, err
		}
	}

	engine.logger.Info(LogMsgConfigLoaded,
		zap.String(LogFieldPath, cfg.path),
		zap.Int(LogFieldCount, engine.Count()),
	)
	return engine, nil
}
