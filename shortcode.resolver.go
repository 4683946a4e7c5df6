package shortcode

import (
	"context"
	"reflect"
	"sync"

	"github.com/itsatony/go-cuserr"
)

// Container makes the values that handler references point to.
type Container interface {
	Make(name string) (any, error)
}

// Factory builds a fresh container value on every Make.
type Factory func() (any, error)

// MapContainer is a Container backed by factories and shared instances.
// It is safe for concurrent use.
type MapContainer struct {
	mu        sync.RWMutex
	factories map[string]Factory
	instances map[string]any
}

// NewMapContainer creates an empty container.
func NewMapContainer() *MapContainer {
	return &MapContainer{
		factories: make(map[string]Factory),
		instances: make(map[string]any),
	}
}

// Bind registers a factory under name, replacing any instance with that name.
func (c *MapContainer) Bind(name string, factory Factory) error {
	if factory == nil {
		return cuserr.NewValidationError(ErrCodeResolve, ErrMsgNilFactory).
			WithMetadata(MetaKeyType, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.instances, name)
	c.factories[name] = factory
	return nil
}

// Instance registers a shared value under name, replacing any factory.
func (c *MapContainer) Instance(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.factories, name)
	c.instances[name] = value
}

// Has checks if name can be made.
func (c *MapContainer) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.instances[name]; ok {
		return true
	}
	_, ok := c.factories[name]
	return ok
}

// Make returns the shared instance or a value from the factory.
func (c *MapContainer) Make(name string) (any, error) {
	c.mu.RLock()
	instance, isInstance := c.instances[name]
	factory, isFactory := c.factories[name]
	c.mu.RUnlock()

	switch {
	case isInstance:
		return instance, nil
	case isFactory:
		// Called outside the lock so factories may use the container
		v, err := factory()
		if err != nil {
			return nil, NewFactoryError(name, err)
		}
		return v, nil
	default:
		return nil, NewTypeNotBoundError(name)
	}
}

// Resolver turns a Callback into a Handler.
type Resolver interface {
	Resolve(ctx context.Context, cb Callback) (Handler, error)
}

// ContainerResolver resolves references through a Container. Inline
// callbacks need no container.
type ContainerResolver struct {
	container Container
}

// NewContainerResolver creates a resolver over container, which may be nil
// when only inline callbacks are used.
func NewContainerResolver(container Container) *ContainerResolver {
	return &ContainerResolver{container: container}
}

// Resolve implements Resolver.
func (r *ContainerResolver) Resolve(ctx context.Context, cb Callback) (Handler, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch cb.Kind() {
	case CallbackInline:
		if cb.Handler() == nil {
			return nil, cuserr.NewValidationError(ErrCodeResolve, ErrMsgNilCallback)
		}
		return cb.Handler(), nil

	case CallbackMethod:
		v, err := r.make(cb.TypeName())
		if err != nil {
			return nil, err
		}
		return methodHandler(v, cb.TypeName(), cb.MethodName())

	case CallbackStatic:
		v, err := r.make(cb.TypeName())
		if err != nil {
			return nil, err
		}
		if h, ok := asHandler(v); ok {
			return h, nil
		}
		return methodHandler(v, cb.TypeName(), DefaultMethodName)

	default:
		return nil, cuserr.NewValidationError(ErrCodeResolve, ErrMsgUnknownCallback)
	}
}

func (r *ContainerResolver) make(name string) (any, error) {
	if r.container == nil {
		return nil, cuserr.NewValidationError(ErrCodeResolve, ErrMsgNoContainer).
			WithMetadata(MetaKeyType, name)
	}
	v, err := r.container.Make(name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, cuserr.NewValidationError(ErrCodeResolve, ErrMsgNilContainerValue).
			WithMetadata(MetaKeyType, name)
	}
	return v, nil
}

// Signatures a referenced function or method may have
var (
	ctxHandlerType    = reflect.TypeOf(HandlerFunc(nil))
	errHandlerType    = reflect.TypeOf((func(*Shortcode) (string, error))(nil))
	simpleHandlerType = reflect.TypeOf(SimpleFunc(nil))
)

// asHandler adapts v when it is invocable as a handler.
func asHandler(v any) (Handler, bool) {
	switch h := v.(type) {
	case Handler:
		return h, true
	case func(context.Context, *Shortcode) (string, error):
		return HandlerFunc(h), true
	case func(*Shortcode) (string, error):
		return errFunc(h), true
	case func(*Shortcode) string:
		return SimpleFunc(h), true
	}
	return funcHandler(reflect.ValueOf(v))
}

// funcHandler adapts a function value of a named type with one of the
// handler signatures.
func funcHandler(fn reflect.Value) (Handler, bool) {
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, false
	}
	t := fn.Type()
	switch {
	case t.ConvertibleTo(ctxHandlerType):
		return fn.Convert(ctxHandlerType).Interface().(HandlerFunc), true
	case t.ConvertibleTo(errHandlerType):
		return errFunc(fn.Convert(errHandlerType).Interface().(func(*Shortcode) (string, error))), true
	case t.ConvertibleTo(simpleHandlerType):
		return fn.Convert(simpleHandlerType).Interface().(SimpleFunc), true
	}
	return nil, false
}

// methodHandler looks up an exported method on v and adapts it.
func methodHandler(v any, typeName, method string) (Handler, error) {
	rv := reflect.ValueOf(v)
	m := rv.MethodByName(method)
	if !m.IsValid() && rv.Kind() != reflect.Pointer {
		// Pointer receiver methods need an addressable copy
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		m = ptr.MethodByName(method)
	}
	if !m.IsValid() {
		return nil, NewMethodNotFoundError(typeName, method)
	}
	h, ok := funcHandler(m)
	if !ok {
		return nil, NewInvalidSignatureError(typeName + RefMethodSeparator + method)
	}
	return h, nil
}

// errFunc adapts a context-free fallible function.
type errFunc func(sc *Shortcode) (string, error)

func (f errFunc) Render(_ context.Context, sc *Shortcode) (string, error) {
	return f(sc)
}
