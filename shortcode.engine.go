package shortcode

import (
	"context"

	"github.com/itsatony/go-shortcode/internal"
	"go.uber.org/zap"
)

// Engine is the main entry point: it holds the registered shortcodes and
// compiles, strips and inspects text against them.
// All methods are safe for concurrent use.
type Engine struct {
	registry *internal.Registry[Callback]
	patterns *internal.PatternCache
	config   *engineConfig
	resolver Resolver
	logger   *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	if config.maxDepth < 0 {
		return nil, NewConfigError(ErrMsgConfigNegativeDepth, "", nil)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	resolver := config.resolver
	if resolver == nil {
		resolver = NewContainerResolver(config.container)
	}

	patterns := internal.NewPatternCache(config.patternCacheSize, logger)
	e := &Engine{
		registry: internal.NewRegistry[Callback](patterns, logger),
		patterns: patterns,
		config:   config,
		resolver: resolver,
		logger:   logger,
	}
	logger.Debug(LogMsgEngineCreated,
		zap.Stringer(LogFieldStrategy, config.errorStrategy),
		zap.Int(LogFieldDepth, config.maxDepth))
	return e, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Register adds or replaces the handler for name. A replaced name keeps its
// original registration order.
func (e *Engine) Register(name string, h Handler) error {
	if h == nil {
		return NewNilHandlerError(name)
	}
	return e.RegisterCallback(name, Inline(h))
}

// RegisterFunc registers a plain function as the handler for name.
func (e *Engine) RegisterFunc(name string, fn HandlerFunc) error {
	if fn == nil {
		return NewNilHandlerError(name)
	}
	return e.RegisterCallback(name, Inline(fn))
}

// RegisterRef registers a handler reference ("Type@Method" or a bare
// container name) for name. The reference is resolved when a shortcode is
// rendered, not here.
func (e *Engine) RegisterRef(name, ref string) error {
	if ref == "" {
		return NewEmptyReferenceError(name)
	}
	return e.RegisterCallback(name, Ref(ref))
}

// RegisterCallback registers any kind of callback for name.
func (e *Engine) RegisterCallback(name string, cb Callback) error {
	if name == "" {
		return NewEmptyNameError()
	}
	if cb.IsZero() {
		return NewNilHandlerError(name)
	}
	if _, err := e.registry.Register(name, cb); err != nil {
		return NewEmptyNameError()
	}
	return nil
}

// MustRegister registers a handler and panics on error.
func (e *Engine) MustRegister(name string, h Handler) {
	if err := e.Register(name, h); err != nil {
		panic(err)
	}
}

// MustRegisterFunc registers a function and panics on error.
func (e *Engine) MustRegisterFunc(name string, fn HandlerFunc) {
	if err := e.RegisterFunc(name, fn); err != nil {
		panic(err)
	}
}

// MustRegisterRef registers a reference and panics on error.
func (e *Engine) MustRegisterRef(name, ref string) {
	if err := e.RegisterRef(name, ref); err != nil {
		panic(err)
	}
}

// Unregister removes name. Unknown names are ignored.
func (e *Engine) Unregister(name string) *Engine {
	e.registry.Unregister(name)
	return e
}

// Destroy removes every registered shortcode.
func (e *Engine) Destroy() *Engine {
	e.registry.Destroy()
	return e
}

// All returns the registered names in registration order.
func (e *Engine) All() []string {
	return e.registry.Names()
}

// Callbacks returns a copy of the name to callback mapping.
func (e *Engine) Callbacks() map[string]Callback {
	return e.registry.Values()
}

// Callback returns the callback registered under name.
func (e *Engine) Callback(name string) (Callback, bool) {
	return e.registry.Get(name)
}

// Exists checks if name is registered.
func (e *Engine) Exists(name string) bool {
	return e.registry.Has(name)
}

// Count returns the number of registered shortcodes.
func (e *Engine) Count() int {
	return e.registry.Count()
}

// MaxDepth returns the configured maximum nesting depth.
func (e *Engine) MaxDepth() int {
	return e.config.maxDepth
}

// PatternCacheStats tracks reuse of compiled name patterns.
type PatternCacheStats = internal.PatternCacheStats

// PatternCacheStats returns usage statistics of the compiled pattern cache.
func (e *Engine) PatternCacheStats() PatternCacheStats {
	return e.patterns.Stats()
}

// Contains reports whether text holds a recognized shortcode named name.
// Escaped occurrences count; unregistered names never match.
func (e *Engine) Contains(text, name string) bool {
	snap := e.registry.Snapshot()
	if !snap.Has(name) {
		return false
	}
	return internal.Contains(text, snap.Pattern, name)
}

// Compile replaces every registered shortcode in text with its handler
// output. Escaped shortcodes ("[[tag]]") lose one bracket layer. Handlers
// may compile their content with the ctx they receive; nesting is bounded by
// WithMaxDepth.
func (e *Engine) Compile(ctx context.Context, text string) (string, error) {
	depth := DepthFromContext(ctx) + 1
	if e.config.maxDepth > 0 && depth > e.config.maxDepth {
		return "", NewDepthExceededError(depth, e.config.maxDepth)
	}

	snap := e.registry.Snapshot()
	if snap.Pattern.IsEmpty() {
		return text, nil
	}

	e.logger.Debug(LogMsgCompileStart,
		zap.Int(LogFieldLength, len(text)),
		zap.Int(LogFieldDepth, depth))

	ctx = withDepth(ctx, depth)
	result, err := internal.Transform(text, snap.Pattern, func(m internal.Match) (string, error) {
		return e.render(ctx, snap, m)
	})
	if err != nil {
		return "", err
	}

	e.logger.Debug(LogMsgCompileComplete,
		zap.Int(LogFieldLength, len(result)),
		zap.Int(LogFieldDepth, depth))
	return result, nil
}

// Parse is an alias for Compile.
func (e *Engine) Parse(ctx context.Context, text string) (string, error) {
	return e.Compile(ctx, text)
}

// MustCompile compiles text and panics on error.
func (e *Engine) MustCompile(ctx context.Context, text string) string {
	result, err := e.Compile(ctx, text)
	if err != nil {
		panic(err)
	}
	return result
}

// Strip removes every registered shortcode from text, content included.
func (e *Engine) Strip(text string) string {
	return internal.Strip(text, e.registry.Snapshot().Pattern)
}

// Unwrap removes the tags of every registered shortcode and keeps their
// content.
func (e *Engine) Unwrap(text string) string {
	return internal.Unwrap(text, e.registry.Snapshot().Pattern)
}

// Find returns the registered, non-escaped shortcodes in text without
// rendering them.
func (e *Engine) Find(text string) []Shortcode {
	var found []Shortcode
	e.registry.Snapshot().Pattern.Each(text, func(m internal.Match) bool {
		if !m.IsEscaped() {
			found = append(found, *newShortcode(m))
		}
		return true
	})
	return found
}

// render produces the output of one match.
func (e *Engine) render(ctx context.Context, snap *internal.Snapshot[Callback], m internal.Match) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sc := newShortcode(m)
	cb, _ := snap.Get(m.Name)

	h, err := e.resolver.Resolve(ctx, cb)
	if err != nil {
		return e.handleError(sc, NewResolveError(sc.Name, cb.String(), sc.Position, err))
	}
	e.logger.Debug(LogMsgHandlerResolved,
		zap.String(LogFieldShortcode, sc.Name),
		zap.String(LogFieldReference, cb.String()))

	output, err := h.Render(ctx, sc)
	if err != nil {
		return e.handleError(sc, NewRenderError(sc.Name, sc.Position, err))
	}
	return output, nil
}

type depthKey struct{}

// DepthFromContext returns how many Compile calls enclose ctx.
func DepthFromContext(ctx context.Context) int {
	if depth, ok := ctx.Value(depthKey{}).(int); ok {
		return depth
	}
	return 0
}

func withDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, depthKey{}, depth)
}
