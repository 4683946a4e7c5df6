package shortcode

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	errorStrategy    ErrorStrategy
	maxDepth         int
	patternCacheSize int
	container        Container
	resolver         Resolver
	logger           *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		errorStrategy:    ErrorStrategyThrow,
		maxDepth:         DefaultMaxDepth,
		patternCacheSize: DefaultPatternCacheSize,
		logger:           nil,
	}
}

// WithErrorStrategy sets the error handling strategy.
// Default: ErrorStrategyThrow
func WithErrorStrategy(strategy ErrorStrategy) Option {
	return func(c *engineConfig) {
		c.errorStrategy = strategy
	}
}

// WithMaxDepth sets the maximum depth of nested Compile calls made by handlers.
// Use 0 for unlimited depth.
// Default: 100
func WithMaxDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxDepth = depth
	}
}

// WithPatternCacheSize sets how many compiled name patterns are kept.
// Default: 64
func WithPatternCacheSize(size int) Option {
	return func(c *engineConfig) {
		c.patternCacheSize = size
	}
}

// WithContainer sets the container used to make referenced handler types.
// Ignored when WithResolver is also given.
func WithContainer(container Container) Option {
	return func(c *engineConfig) {
		c.container = container
	}
}

// WithResolver replaces the default ContainerResolver.
func WithResolver(resolver Resolver) Option {
	return func(c *engineConfig) {
		c.resolver = resolver
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
