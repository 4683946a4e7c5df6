package shortcode

import (
	"errors"
	"strconv"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRenderError tests render error creation with position context
func TestNewRenderError(t *testing.T) {
	t.Run("with cause error", func(t *testing.T) {
		pos := Position{Line: 5, Column: 10, Offset: 50}
		causeErr := errors.New("handler failed")
		err := NewRenderError("gallery", pos, causeErr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgRenderFailed)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))

		name, ok := customErr.GetMetadata(MetaKeyShortcode)
		assert.True(t, ok)
		assert.Equal(t, "gallery", name)

		line, ok := customErr.GetMetadata(MetaKeyLine)
		assert.True(t, ok)
		assert.Equal(t, strconv.Itoa(pos.Line), line)

		column, ok := customErr.GetMetadata(MetaKeyColumn)
		assert.True(t, ok)
		assert.Equal(t, strconv.Itoa(pos.Column), column)

		offset, ok := customErr.GetMetadata(MetaKeyOffset)
		assert.True(t, ok)
		assert.Equal(t, strconv.Itoa(pos.Offset), offset)

		assert.True(t, errors.Is(err, causeErr))
	})

	t.Run("without cause error", func(t *testing.T) {
		err := NewRenderError("gallery", Position{Line: 1, Column: 1}, nil)
		require.Error(t, err)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))

		line, ok := customErr.GetMetadata(MetaKeyLine)
		assert.True(t, ok)
		assert.Equal(t, "1", line)
	})
}

func TestNewResolveError(t *testing.T) {
	causeErr := NewTypeNotBoundError("HTML")
	err := NewResolveError("div", "HTML@Div", Position{Line: 2, Column: 4}, causeErr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgResolveFailed)
	assert.True(t, errors.Is(err, causeErr))

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))

	ref, ok := customErr.GetMetadata(MetaKeyReference)
	assert.True(t, ok)
	assert.Equal(t, "HTML@Div", ref)

	column, ok := customErr.GetMetadata(MetaKeyColumn)
	assert.True(t, ok)
	assert.Equal(t, "4", column)
}

func TestNewDepthExceededError(t *testing.T) {
	err := NewDepthExceededError(11, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgDepthExceeded)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))

	current, ok := customErr.GetMetadata(MetaKeyCurrentDepth)
	assert.True(t, ok)
	assert.Equal(t, "11", current)

	maxDepth, ok := customErr.GetMetadata(MetaKeyMaxDepth)
	assert.True(t, ok)
	assert.Equal(t, "10", maxDepth)
}

func TestRegistrationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"empty name", NewEmptyNameError(), ErrMsgEmptyName},
		{"nil handler", NewNilHandlerError("a"), ErrMsgNilHandler},
		{"empty reference", NewEmptyReferenceError("a"), ErrMsgEmptyReference},
		{"invalid signature", NewInvalidSignatureError("HTML@Wrong"), ErrMsgInvalidSignature},
		{"nil definition", NewNilDefinitionError(), ErrMsgNilDefinition},
		{"empty template", NewEmptyTemplateError("a"), ErrMsgEmptyTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Contains(t, tt.err.Error(), tt.msg)

			var customErr *cuserr.CustomError
			assert.True(t, errors.As(tt.err, &customErr))
		})
	}
}

func TestNewConfigError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := NewConfigError(ErrMsgConfigReadFailed, "/etc/shortcode.yaml", cause)

		assert.True(t, errors.Is(err, cause))
		path, ok := metadataInChain(err, MetaKeyPath)
		assert.True(t, ok)
		assert.Equal(t, "/etc/shortcode.yaml", path)
	})

	t.Run("without path", func(t *testing.T) {
		err := NewConfigError(ErrMsgConfigNegativeDepth, "", nil)
		require.Error(t, err)
		_, ok := metadataInChain(err, MetaKeyPath)
		assert.False(t, ok)
	})
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Message: ErrMsgWriteDefinitionFile, Name: "a.yaml", Cause: cause}

	assert.Equal(t, ErrMsgWriteDefinitionFile+": a.yaml: disk full", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrCodeStorage, err.Code())

	assert.Equal(t, ErrMsgStorageClosed, NewStorageClosedError().Error())
	assert.True(t, IsDefinitionNotFound(NewDefinitionNotFoundError("a")))
	assert.False(t, IsDefinitionNotFound(err))
}
