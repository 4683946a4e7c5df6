package shortcode

import (
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Registry errors
	ErrMsgEmptyName      = "shortcode name cannot be empty"
	ErrMsgNilHandler     = "shortcode handler cannot be nil"
	ErrMsgEmptyReference = "handler reference cannot be empty"
	ErrMsgNilCallback    = "callback has no handler"

	// Resolution errors
	ErrMsgResolveFailed     = "handler resolution failed"
	ErrMsgTypeNotBound      = "type not bound in container"
	ErrMsgMethodNotFound    = "method not found on resolved value"
	ErrMsgInvalidSignature  = "value does not have a handler signature"
	ErrMsgNoContainer       = "no container configured"
	ErrMsgFactoryFailed     = "container factory failed"
	ErrMsgUnknownCallback   = "unknown callback kind"
	ErrMsgNilFactory        = "container factory cannot be nil"
	ErrMsgNilContainerValue = "container returned nil"

	// Render errors
	ErrMsgRenderFailed  = "shortcode render failed"
	ErrMsgDepthExceeded = "maximum nesting depth exceeded"

	// Definition errors
	ErrMsgNilDefinition       = "definition cannot be nil"
	ErrMsgEmptyTemplate       = "definition template cannot be empty"
	ErrMsgTemplateParseFailed = "definition template parsing failed"
	ErrMsgTemplateExecFailed  = "definition template execution failed"

	// Config errors
	ErrMsgConfigReadFailed      = "failed to read config file"
	ErrMsgConfigParseFailed     = "failed to parse config"
	ErrMsgConfigInvalidStrategy = "invalid error strategy in config"
	ErrMsgConfigNegativeDepth   = "max_depth cannot be negative"
)

// Error code constants for categorization
const (
	ErrCodeRegistry = "SHORTCODE_REGISTRY"
	ErrCodeResolve  = "SHORTCODE_RESOLVE"
	ErrCodeRender   = "SHORTCODE_RENDER"
	ErrCodeConfig   = "SHORTCODE_CONFIG"
	ErrCodeStorage  = "SHORTCODE_STORAGE"
)

// NewEmptyNameError creates an error for registering an empty name
func NewEmptyNameError() error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgEmptyName)
}

// NewNilHandlerError creates an error for registering a nil handler
func NewNilHandlerError(name string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNilHandler).
		WithMetadata(MetaKeyShortcode, name)
}

// NewEmptyReferenceError creates an error for an empty handler reference
func NewEmptyReferenceError(name string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgEmptyReference).
		WithMetadata(MetaKeyShortcode, name)
}

// NewTypeNotBoundError creates an error for a reference the container cannot make
func NewTypeNotBoundError(typeName string) error {
	return cuserr.NewNotFoundError(MetaKeyType, ErrMsgTypeNotBound).
		WithMetadata(MetaKeyType, typeName)
}

// NewFactoryError wraps a failing container factory
func NewFactoryError(typeName string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeResolve, ErrMsgFactoryFailed).
		WithMetadata(MetaKeyType, typeName)
}

// NewMethodNotFoundError creates an error for a method missing on a resolved value
func NewMethodNotFoundError(typeName, method string) error {
	return cuserr.NewNotFoundError(MetaKeyMethod, ErrMsgMethodNotFound).
		WithMetadata(MetaKeyType, typeName).
		WithMetadata(MetaKeyMethod, method)
}

// NewInvalidSignatureError creates an error for a value that cannot act as a handler
func NewInvalidSignatureError(reference string) error {
	return cuserr.NewValidationError(ErrCodeResolve, ErrMsgInvalidSignature).
		WithMetadata(MetaKeyReference, reference)
}

// NewResolveError wraps any resolution failure with the shortcode context
func NewResolveError(name, reference string, pos Position, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeResolve, ErrMsgResolveFailed).
		WithMetadata(MetaKeyShortcode, name).
		WithMetadata(MetaKeyReference, reference).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column))
}

// NewRenderError creates a render error with shortcode context
func NewRenderError(name string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgRenderFailed)
	} else {
		err = cuserr.NewInternalError(ErrCodeRender, nil)
	}
	return err.
		WithMetadata(MetaKeyShortcode, name).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewDepthExceededError creates an error for runaway nested compilation
func NewDepthExceededError(depth, maxDepth int) error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgDepthExceeded).
		WithMetadata(MetaKeyCurrentDepth, strconv.Itoa(depth)).
		WithMetadata(MetaKeyMaxDepth, strconv.Itoa(maxDepth))
}

// NewNilDefinitionError creates an error for a nil definition
func NewNilDefinitionError() error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNilDefinition)
}

// NewEmptyTemplateError creates an error for a definition without template
func NewEmptyTemplateError(name string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgEmptyTemplate).
		WithMetadata(MetaKeyDefinition, name)
}

// NewTemplateParseError wraps a definition template parse failure
func NewTemplateParseError(name string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRegistry, ErrMsgTemplateParseFailed).
		WithMetadata(MetaKeyDefinition, name)
}

// NewTemplateExecError wraps a definition template execution failure
func NewTemplateExecError(name string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgTemplateExecFailed).
		WithMetadata(MetaKeyDefinition, name)
}

// NewConfigError creates a config error, wrapping cause when present
func NewConfigError(msg, path string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	if path != "" {
		err = err.WithMetadata(MetaKeyPath, path)
	}
	return err
}
