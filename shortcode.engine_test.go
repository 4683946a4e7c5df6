package shortcode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anchorHandler wraps the content in a link using href, default "#".
func anchorHandler(sc *Shortcode) string {
	return `<a href="` + sc.Attr("href", "#") + `">` + sc.Content + `</a>`
}

// newNameContentEngine registers name, content and nc. nc compiles its
// content so nested shortcodes are expanded.
func newNameContentEngine(t *testing.T) *Engine {
	t.Helper()
	engine := MustNew()
	engine.MustRegister("name", SimpleFunc(func(sc *Shortcode) string {
		return sc.Name
	}))
	engine.MustRegister("content", SimpleFunc(func(sc *Shortcode) string {
		return sc.Content
	}))
	engine.MustRegisterFunc("nc", func(ctx context.Context, sc *Shortcode) (string, error) {
		inner, err := engine.Compile(ctx, sc.Content)
		if err != nil {
			return "", err
		}
		return sc.Name + ": " + inner, nil
	})
	return engine
}

// metadataInChain returns the first value stored under key by any
// cuserr error in the chain of err.
func metadataInChain(err error, key string) (string, bool) {
	for err != nil {
		var customErr *cuserr.CustomError
		if errors.As(err, &customErr) {
			if v, ok := customErr.GetMetadata(key); ok {
				return v, true
			}
		}
		err = errors.Unwrap(err)
	}
	return "", false
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		require.NotNil(t, engine)
		assert.Equal(t, 0, engine.Count())
		assert.Equal(t, DefaultMaxDepth, engine.MaxDepth())
	})

	t.Run("negative max depth", func(t *testing.T) {
		engine, err := New(WithMaxDepth(-1))
		require.Error(t, err)
		assert.Nil(t, engine)
	})

	t.Run("MustNew panics on error", func(t *testing.T) {
		assert.Panics(t, func() { MustNew(WithMaxDepth(-1)) })
	})
}

func TestEngine_Register(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		engine := MustNew()
		err := engine.Register("", SimpleFunc(anchorHandler))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEmptyName)
	})

	t.Run("nil handler", func(t *testing.T) {
		engine := MustNew()
		err := engine.Register("a", nil)
		require.Error(t, err)

		name, ok := metadataInChain(err, MetaKeyShortcode)
		assert.True(t, ok)
		assert.Equal(t, "a", name)
	})

	t.Run("nil func", func(t *testing.T) {
		engine := MustNew()
		assert.Error(t, engine.RegisterFunc("a", nil))
	})

	t.Run("empty reference", func(t *testing.T) {
		engine := MustNew()
		assert.Error(t, engine.RegisterRef("a", ""))
	})

	t.Run("zero callback", func(t *testing.T) {
		engine := MustNew()
		assert.Error(t, engine.RegisterCallback("a", Callback{}))
	})

	t.Run("must variants panic", func(t *testing.T) {
		engine := MustNew()
		assert.Panics(t, func() { engine.MustRegister("", SimpleFunc(anchorHandler)) })
		assert.Panics(t, func() { engine.MustRegisterFunc("a", nil) })
		assert.Panics(t, func() { engine.MustRegisterRef("a", "") })
	})

	t.Run("replacing keeps insertion order", func(t *testing.T) {
		engine := newNameContentEngine(t)
		engine.MustRegister("name", SimpleFunc(func(*Shortcode) string { return "replaced" }))

		assert.Equal(t, []string{"name", "content", "nc"}, engine.All())
		assert.Equal(t, "replaced", engine.MustCompile(context.Background(), "[name]"))
	})
}

func TestEngine_RegistryQueries(t *testing.T) {
	engine := newNameContentEngine(t)

	assert.Equal(t, 3, engine.Count())
	assert.Equal(t, []string{"name", "content", "nc"}, engine.All())

	assert.True(t, engine.Exists("name"))
	assert.True(t, engine.Exists("content"))
	assert.True(t, engine.Exists("nc"))
	assert.False(t, engine.Exists("invalid"))

	callbacks := engine.Callbacks()
	assert.Len(t, callbacks, 3)
	assert.Equal(t, CallbackInline, callbacks["nc"].Kind())

	cb, ok := engine.Callback("name")
	assert.True(t, ok)
	assert.NotNil(t, cb.Handler())

	_, ok = engine.Callback("invalid")
	assert.False(t, ok)
}

func TestEngine_UnregisterAndDestroy(t *testing.T) {
	ctx := context.Background()

	t.Run("unregister", func(t *testing.T) {
		out, err := newNameContentEngine(t).Unregister("name").Parse(ctx, "[name]")
		require.NoError(t, err)
		assert.Equal(t, "[name]", out)
	})

	t.Run("unregister absent name is a no-op", func(t *testing.T) {
		engine := newNameContentEngine(t)
		engine.Unregister("missing")
		assert.Equal(t, 3, engine.Count())
	})

	t.Run("destroy", func(t *testing.T) {
		engine := newNameContentEngine(t)
		out, err := engine.Destroy().Parse(ctx, "[name]")
		require.NoError(t, err)
		assert.Equal(t, "[name]", out)
		assert.Equal(t, 0, engine.Count())
		assert.Empty(t, engine.All())
	})
}

func TestEngine_Compile(t *testing.T) {
	ctx := context.Background()

	t.Run("anchor without href", func(t *testing.T) {
		engine := MustNew()
		engine.MustRegister("a", SimpleFunc(anchorHandler))

		out, err := engine.Compile(ctx, "[a]Click Me![/a]")
		require.NoError(t, err)
		assert.Equal(t, `<a href="#">Click Me!</a>`, out)
	})

	t.Run("anchor with href", func(t *testing.T) {
		engine := MustNew()
		engine.MustRegister("a", SimpleFunc(anchorHandler))

		out, err := engine.Compile(ctx, `[a href="www.google.com"]Go To Google[/a]`)
		require.NoError(t, err)
		assert.Equal(t, `<a href="www.google.com">Go To Google</a>`, out)
	})

	t.Run("parse table", func(t *testing.T) {
		tests := []struct {
			text     string
			expected string
		}{
			{"[name]", "name"},
			{"[content]", ""},
			{"[content]thunder[/content]", "thunder"},
			{"[content][name][/content]", "[name]"},
			{"[nc][name][/nc]", "nc: name"},
			{"before [name] after", "before name after"},
			{"[name][name]", "namename"},
		}

		engine := newNameContentEngine(t)
		for _, tt := range tests {
			t.Run(tt.text, func(t *testing.T) {
				out, err := engine.Parse(ctx, tt.text)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, out)
			})
		}
	})

	t.Run("echo round trip", func(t *testing.T) {
		engine := MustNew()
		engine.MustRegister("echo", SimpleFunc(func(sc *Shortcode) string { return sc.Content }))

		for _, x := range []string{"X", "", "multi\nline", "with [brackets]"} {
			out, err := engine.Compile(ctx, "[echo]"+x+"[/echo]")
			require.NoError(t, err)
			assert.Equal(t, x, out)
		}
	})

	t.Run("escaped shortcode is not rendered", func(t *testing.T) {
		calls := 0
		engine := MustNew()
		engine.MustRegister("name", SimpleFunc(func(*Shortcode) string {
			calls++
			return "rendered"
		}))

		out, err := engine.Compile(ctx, "[[name]]")
		require.NoError(t, err)
		assert.Equal(t, "[name]", out)
		assert.Equal(t, 0, calls)

		out, err = engine.Compile(ctx, "[[name]x[/name]]")
		require.NoError(t, err)
		assert.Equal(t, "[name]x[/name]", out)
		assert.Equal(t, 0, calls)
	})

	t.Run("self-closing with attributes", func(t *testing.T) {
		var got *Shortcode
		engine := MustNew()
		engine.MustRegister("img", SimpleFunc(func(sc *Shortcode) string {
			got = sc
			return "<img>"
		}))

		out, err := engine.Compile(ctx, `[img src="#"]`)
		require.NoError(t, err)
		assert.Equal(t, "<img>", out)

		require.NotNil(t, got)
		assert.Equal(t, map[string]string{"src": "#"}, got.Attributes.Map())
		assert.False(t, got.HasContent)
		assert.Empty(t, got.Content)
		assert.Equal(t, `[img src="#"]`, got.Raw)
	})

	t.Run("explicit self-closing never takes content", func(t *testing.T) {
		engine := MustNew()
		engine.MustRegister("img", SimpleFunc(func(sc *Shortcode) string {
			return fmt.Sprintf("<img self=%t content=%t>", sc.SelfClosing, sc.HasContent)
		}))

		out, err := engine.Compile(ctx, `[img /]text[/img]`)
		require.NoError(t, err)
		assert.Equal(t, "<img self=true content=false>text[/img]", out)
	})

	t.Run("unregistered names pass through", func(t *testing.T) {
		engine := MustNew()
		engine.MustRegister("a", SimpleFunc(anchorHandler))

		out, err := engine.Compile(ctx, "[name]x[/name]")
		require.NoError(t, err)
		assert.Equal(t, "[name]x[/name]", out)
	})

	t.Run("no names registered", func(t *testing.T) {
		engine := MustNew()
		out, err := engine.Compile(ctx, "[a]x[/a]")
		require.NoError(t, err)
		assert.Equal(t, "[a]x[/a]", out)
	})

	t.Run("positional attributes and position", func(t *testing.T) {
		var got *Shortcode
		engine := MustNew()
		engine.MustRegister("gallery", SimpleFunc(func(sc *Shortcode) string {
			got = sc
			return ""
		}))

		_, err := engine.Compile(ctx, "line one\n  [gallery 1 2 'three']")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []string{"1", "2", "three"}, got.Attributes.Positional())
		assert.Equal(t, 2, got.Position.Line)
		assert.Equal(t, 3, got.Position.Column)
	})

	t.Run("handler error is returned", func(t *testing.T) {
		cause := errors.New("boom")
		engine := MustNew()
		engine.MustRegisterFunc("fail", func(context.Context, *Shortcode) (string, error) {
			return "", cause
		})

		out, err := engine.Compile(ctx, "a\n[fail]")
		require.Error(t, err)
		assert.Empty(t, out)
		assert.True(t, errors.Is(err, cause))

		name, ok := metadataInChain(err, MetaKeyShortcode)
		assert.True(t, ok)
		assert.Equal(t, "fail", name)

		line, ok := metadataInChain(err, MetaKeyLine)
		assert.True(t, ok)
		assert.Equal(t, "2", line)
	})

	t.Run("canceled context", func(t *testing.T) {
		engine := MustNew(WithErrorStrategy(ErrorStrategyRemove))
		engine.MustRegister("a", SimpleFunc(anchorHandler))

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := engine.Compile(canceled, "[a]x[/a]")
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("MustCompile panics", func(t *testing.T) {
		engine := MustNew()
		engine.MustRegisterFunc("fail", func(context.Context, *Shortcode) (string, error) {
			return "", errors.New("boom")
		})
		assert.Panics(t, func() { engine.MustCompile(ctx, "[fail]") })
	})
}

func TestEngine_CompileDepth(t *testing.T) {
	ctx := context.Background()

	t.Run("nested compile sees depth", func(t *testing.T) {
		var depths []int
		engine := MustNew()
		engine.MustRegisterFunc("wrap", func(ctx context.Context, sc *Shortcode) (string, error) {
			depths = append(depths, DepthFromContext(ctx))
			inner, err := engine.Compile(ctx, sc.Content)
			return "(" + inner + ")", err
		})

		out, err := engine.Compile(ctx, "[wrap]a [wrap]b[/wrap][/wrap]")
		require.NoError(t, err)
		// The first close tag ends the outer match
		assert.Equal(t, "(a ()b)[/wrap]", out)
		assert.Equal(t, []int{1, 2}, depths)

		depths = nil
		out, err = engine.Compile(ctx, "[wrap][[wrap]][/wrap]")
		require.NoError(t, err)
		assert.Equal(t, "([wrap])", out)
	})

	t.Run("runaway recursion is bounded", func(t *testing.T) {
		engine := MustNew(WithMaxDepth(5))
		engine.MustRegisterFunc("loop", func(ctx context.Context, sc *Shortcode) (string, error) {
			return engine.Compile(ctx, "[loop]")
		})

		_, err := engine.Compile(ctx, "[loop]")
		require.Error(t, err)

		maxDepth, ok := metadataInChain(err, MetaKeyMaxDepth)
		assert.True(t, ok)
		assert.Equal(t, "5", maxDepth)
	})

	t.Run("depth is only checked when limited", func(t *testing.T) {
		engine := MustNew(WithMaxDepth(0))
		engine.MustRegisterFunc("count", func(ctx context.Context, sc *Shortcode) (string, error) {
			if DepthFromContext(ctx) >= 150 {
				return "done", nil
			}
			return engine.Compile(ctx, "[count]")
		})

		out, err := engine.Compile(ctx, "[count]")
		require.NoError(t, err)
		assert.Equal(t, "done", out)
	})

	t.Run("context without depth", func(t *testing.T) {
		assert.Equal(t, 0, DepthFromContext(ctx))
	})
}

func TestEngine_Strip(t *testing.T) {
	t.Run("removes content", func(t *testing.T) {
		engine := MustNew()
		engine.MustRegister("b", SimpleFunc(func(sc *Shortcode) string { return sc.Name }))

		assert.Equal(t, 1, engine.Count())
		assert.Equal(t, "This is a .", engine.Strip("This is a [b]example[/b]."))
	})

	t.Run("table", func(t *testing.T) {
		engine := newNameContentEngine(t)
		tests := []struct {
			text     string
			expected string
		}{
			{"[name]", ""},
			{"x [name]y", "x y"},
			{"x [name] a [content /] a [/name] y", "x  y"},
			{"[[name]]", "[name]"},
			{"[unknown]x[/unknown]", "[unknown]x[/unknown]"},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, engine.Strip(tt.text), tt.text)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		engine := newNameContentEngine(t)
		inputs := []string{
			"x [name] a [content /] a [/name] y",
			"[nc]a[/nc] [content]b[/content] [name /]",
			"plain text",
			"[content]a [name] b[/content] c",
		}
		for _, in := range inputs {
			once := engine.Strip(in)
			assert.Equal(t, once, engine.Strip(once), in)
		}
	})

	t.Run("no names registered", func(t *testing.T) {
		assert.Equal(t, "[a]x[/a]", MustNew().Strip("[a]x[/a]"))
	})
}

func TestEngine_Unwrap(t *testing.T) {
	engine := newNameContentEngine(t)

	assert.Equal(t, "", engine.Unwrap("[name]"))
	assert.Equal(t, "x y", engine.Unwrap("x [name]y"))
	assert.Equal(t, "x  a  a  y", engine.Unwrap("x [name] a [content /] a [/name] y"))
	assert.Equal(t, "keep", engine.Unwrap("[nc][content]keep[/content][/nc]"))
}

func TestEngine_Contains(t *testing.T) {
	engine := newNameContentEngine(t)

	assert.True(t, engine.Contains("[name]", "name"))
	assert.True(t, engine.Contains("text [nc]x[/nc]", "nc"))
	assert.True(t, engine.Contains("[[name]]", "name"))
	assert.False(t, engine.Contains("[x]", "name"))
	assert.False(t, engine.Contains("[name]", "x"))
	assert.False(t, engine.Contains("[names]", "name"))
	assert.False(t, MustNew().Contains("[name]", "name"))
}

func TestEngine_Find(t *testing.T) {
	engine := newNameContentEngine(t)

	found := engine.Find("[name a=1] [[content]] [nc]body[/nc]")
	require.Len(t, found, 2)

	assert.Equal(t, "name", found[0].Name)
	assert.Equal(t, "1", found[0].Attr("a", ""))
	assert.Equal(t, "[name a=1]", found[0].Raw)

	assert.Equal(t, "nc", found[1].Name)
	assert.True(t, found[1].HasContent)
	assert.Equal(t, "body", found[1].Content)
	assert.Equal(t, 23, found[1].Position.Offset)

	assert.Empty(t, engine.Find("no shortcodes here"))
}

func TestEngine_PatternCache(t *testing.T) {
	engine := newNameContentEngine(t)
	ctx := context.Background()

	_, err := engine.Compile(ctx, "[name]")
	require.NoError(t, err)
	_, err = engine.Compile(ctx, "[name]")
	require.NoError(t, err)

	stats := engine.PatternCacheStats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.Misses)

	engine.Unregister("nc")
	_, err = engine.Compile(ctx, "[name]")
	require.NoError(t, err)
	assert.Equal(t, 2, engine.PatternCacheStats().Entries)
}

func TestEngine_Concurrency(t *testing.T) {
	engine := newNameContentEngine(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			out, err := engine.Compile(ctx, "[content]x[/content]")
			if err != nil {
				errs <- err
				return
			}
			if out != "x" {
				errs <- fmt.Errorf("unexpected output %q", out)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("tmp%d", i)
			engine.MustRegister(name, SimpleFunc(func(*Shortcode) string { return "" }))
			engine.Unregister(name)
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	assert.Equal(t, 3, engine.Count())
}

func TestEngine_LargeInput(t *testing.T) {
	engine := newNameContentEngine(t)
	text := strings.Repeat("[name ", 10000) + strings.Repeat("[[", 10000)

	out, err := engine.Compile(context.Background(), text)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
