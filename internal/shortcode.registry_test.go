package internal

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry[int](nil, nil)

	replaced, err := r.Register("a", 1)
	require.NoError(t, err)
	assert.False(t, replaced)

	_, err = r.Register("b", 2)
	require.NoError(t, err)
	_, err = r.Register("c", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, r.Names())
	assert.Equal(t, 3, r.Count())

	v, ok := r.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.True(t, r.Has("c"))
	assert.False(t, r.Has("d"))
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry[string](nil, nil)
	_, _ = r.Register("a", "1")
	_, _ = r.Register("b", "2")

	replaced, err := r.Register("a", "new")
	require.NoError(t, err)
	assert.True(t, replaced)

	assert.Equal(t, []string{"a", "b"}, r.Names())
	v, _ := r.Get("a")
	assert.Equal(t, "new", v)
}

func TestRegistry_EmptyName(t *testing.T) {
	r := NewRegistry[int](nil, nil)

	_, err := r.Register("", 1)
	require.Error(t, err)

	var regErr *RegistryError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, ErrMsgEmptyName, regErr.Message)
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry[int](nil, nil)
	_, _ = r.Register("a", 1)
	_, _ = r.Register("b", 2)
	_, _ = r.Register("c", 3)

	assert.True(t, r.Unregister("b"))
	assert.False(t, r.Unregister("b"))
	assert.False(t, r.Unregister("missing"))
	assert.Equal(t, []string{"a", "c"}, r.Names())

	_, _ = r.Register("b", 4)
	assert.Equal(t, []string{"a", "c", "b"}, r.Names())
}

func TestRegistry_Destroy(t *testing.T) {
	r := NewRegistry[int](nil, nil)
	_, _ = r.Register("a", 1)
	_, _ = r.Register("b", 2)

	r.Destroy()
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.Names())
	assert.Empty(t, r.Values())
	assert.True(t, r.Snapshot().Pattern.IsEmpty())
}

func TestRegistry_NamesIsCopy(t *testing.T) {
	r := NewRegistry[int](nil, nil)
	_, _ = r.Register("a", 1)

	names := r.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"a"}, r.Names())

	values := r.Values()
	values["x"] = 9
	assert.False(t, r.Has("x"))
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry[int](nil, nil)

	empty := r.Snapshot()
	assert.Nil(t, empty.Pattern)
	assert.Equal(t, 0, empty.Count())

	_, _ = r.Register("a", 1)
	snap := r.Snapshot()
	require.NotNil(t, snap.Pattern)
	assert.Same(t, snap, r.Snapshot())
	assert.Equal(t, []string{"a"}, snap.Names())

	_, _ = r.Register("b", 2)
	next := r.Snapshot()
	assert.NotSame(t, snap, next)

	// Older snapshots are unaffected by later changes
	assert.Equal(t, 1, snap.Count())
	assert.False(t, snap.Has("b"))
	assert.True(t, next.Has("b"))
	v, ok := next.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestRegistry_SharedPatternCache(t *testing.T) {
	cache := NewPatternCache(4, nil)
	r1 := NewRegistry[int](cache, nil)
	r2 := NewRegistry[string](cache, nil)

	_, _ = r1.Register("x", 1)
	_, _ = r2.Register("x", "1")

	assert.Same(t, r1.Snapshot().Pattern, r2.Snapshot().Pattern)
	assert.Equal(t, 1, cache.Len())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry[int](nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Register(fmt.Sprintf("tag%d", i), i)
		}(i)
		go func() {
			defer wg.Done()
			snap := r.Snapshot()
			for _, name := range snap.Names() {
				assert.True(t, snap.Has(name))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, r.Count())
	assert.Len(t, r.Snapshot().Pattern.Names(), 20)
}
