package shortcode

import "strings"

// CallbackKind tells how a Callback reaches its handler
type CallbackKind int

const (
	// CallbackInline holds the Handler itself
	CallbackInline CallbackKind = iota
	// CallbackMethod names a container type and one of its methods ("Type@Method")
	CallbackMethod
	// CallbackStatic names a container entry that is invocable itself or
	// exposes the default method
	CallbackStatic
)

// Callback kind names
const (
	CallbackKindNameInline = "inline"
	CallbackKindNameMethod = "method"
	CallbackKindNameStatic = "static"
)

// String returns the string representation of the kind
func (k CallbackKind) String() string {
	switch k {
	case CallbackMethod:
		return CallbackKindNameMethod
	case CallbackStatic:
		return CallbackKindNameStatic
	default:
		return CallbackKindNameInline
	}
}

// Callback is what a shortcode name is registered with. Only inline callbacks
// carry a handler; the other kinds are resolved at render time.
type Callback struct {
	kind     CallbackKind
	handler  Handler
	typeName string
	method   string
}

// Inline wraps a ready handler.
func Inline(h Handler) Callback {
	return Callback{kind: CallbackInline, handler: h}
}

// Method references method on the value the container makes for typeName.
// An empty method means DefaultMethodName.
func Method(typeName, method string) Callback {
	if method == "" {
		method = DefaultMethodName
	}
	return Callback{kind: CallbackMethod, typeName: typeName, method: method}
}

// Static references a container entry by name.
func Static(ref string) Callback {
	return Callback{kind: CallbackStatic, typeName: ref}
}

// Ref parses a handler reference: "Type@Method" gives a Method callback
// ("Type@" defaults the method), anything else a Static one.
func Ref(ref string) Callback {
	if typeName, method, ok := strings.Cut(ref, RefMethodSeparator); ok {
		return Method(typeName, method)
	}
	return Static(ref)
}

// Kind returns the callback kind.
func (c Callback) Kind() CallbackKind { return c.kind }

// Handler returns the inline handler, nil for references.
func (c Callback) Handler() Handler { return c.handler }

// TypeName returns the referenced container entry.
func (c Callback) TypeName() string { return c.typeName }

// MethodName returns the referenced method, empty unless kind is CallbackMethod.
func (c Callback) MethodName() string { return c.method }

// IsZero reports whether the callback can never resolve.
func (c Callback) IsZero() bool {
	if c.kind == CallbackInline {
		return c.handler == nil
	}
	return c.typeName == "" && c.method == ""
}

// String returns the reference in "Type@Method" form, the bare name for
// static callbacks and "inline" for handlers.
func (c Callback) String() string {
	switch c.kind {
	case CallbackMethod:
		return c.typeName + RefMethodSeparator + c.method
	case CallbackStatic:
		return c.typeName
	default:
		return CallbackKindNameInline
	}
}
