package shortcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinition_Validate(t *testing.T) {
	var nilDef *Definition
	assert.Error(t, nilDef.Validate())
	assert.Error(t, (&Definition{Template: "x"}).Validate())
	assert.Error(t, (&Definition{Name: "a", Template: "  "}).Validate())
	assert.NoError(t, (&Definition{Name: "a", Template: "x"}).Validate())
}

func TestDefinition_Clone(t *testing.T) {
	def := &Definition{
		Name:     "a",
		Template: "x",
		Defaults: map[string]string{"href": "#"},
		Tags:     []string{"html"},
	}
	clone := def.Clone()

	require.Equal(t, def, clone)
	clone.Defaults["href"] = "changed"
	clone.Tags[0] = "changed"
	assert.Equal(t, "#", def.Defaults["href"])
	assert.Equal(t, "html", def.Tags[0])

	var nilDef *Definition
	assert.Nil(t, nilDef.Clone())
}

func TestEngine_RegisterDefinition(t *testing.T) {
	ctx := context.Background()

	t.Run("anchor with defaults", func(t *testing.T) {
		engine := MustNew()
		require.NoError(t, engine.RegisterDefinition(&Definition{
			Name:     "a",
			Template: `<a href="{{ .Attr "href" "#" }}" target="{{ .Attr "target" "" }}">{{ .Content }}</a>`,
			Defaults: map[string]string{"Target": "_self"},
		}))

		out, err := engine.Compile(ctx, "[a]Click Me![/a]")
		require.NoError(t, err)
		assert.Equal(t, `<a href="#" target="_self">Click Me!</a>`, out)

		out, err = engine.Compile(ctx, `[a href="www.google.com" target=_blank]Go[/a]`)
		require.NoError(t, err)
		assert.Equal(t, `<a href="www.google.com" target="_blank">Go</a>`, out)
	})

	t.Run("positional arguments", func(t *testing.T) {
		engine := MustNew()
		require.NoError(t, engine.RegisterDefinition(&Definition{
			Name:     "gallery",
			Template: `{{ range .Args }}<img id="{{ . }}">{{ end }}|{{ .Arg 1 }}|{{ .Arg 9 }}`,
		}))

		out, err := engine.Compile(ctx, "[gallery 1 2 3]")
		require.NoError(t, err)
		assert.Equal(t, `<img id="1"><img id="2"><img id="3">|2|`, out)
	})

	t.Run("inner compiles nested shortcodes", func(t *testing.T) {
		engine := MustNew()
		require.NoError(t, engine.RegisterDefinition(&Definition{Name: "b", Template: "<b>{{ .Inner }}</b>"}))
		require.NoError(t, engine.RegisterDefinition(&Definition{Name: "p", Template: "<p>{{ .Inner }}</p>"}))

		out, err := engine.Compile(ctx, "[p]Hello [b]World[/b][/p]")
		require.NoError(t, err)
		assert.Equal(t, "<p>Hello <b>World</b></p>", out)
	})

	t.Run("view fields", func(t *testing.T) {
		engine := MustNew()
		require.NoError(t, engine.RegisterDefinition(&Definition{
			Name:     "info",
			Template: `{{ .Name }}:{{ .HasContent }}:{{ .SelfClosing }}:{{ index .Attrs "k" }}`,
		}))

		out, err := engine.Compile(ctx, "[info k=v /]")
		require.NoError(t, err)
		assert.Equal(t, "info:false:true:v", out)
	})

	t.Run("invalid template", func(t *testing.T) {
		engine := MustNew()
		err := engine.RegisterDefinition(&Definition{Name: "bad", Template: "{{ .Attr "})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgTemplateParseFailed)
		assert.False(t, engine.Exists("bad"))
	})

	t.Run("execution error uses the strategy", func(t *testing.T) {
		engine := MustNew(WithErrorStrategy(ErrorStrategyDefault))
		require.NoError(t, engine.RegisterDefinition(&Definition{Name: "bad", Template: "{{ .Missing }}"}))

		out, err := engine.Compile(ctx, `[bad default="fallback"]`)
		require.NoError(t, err)
		assert.Equal(t, "fallback", out)
	})

	t.Run("empty template", func(t *testing.T) {
		assert.Error(t, MustNew().RegisterDefinition(&Definition{Name: "a"}))
	})
}

func TestDefinition_Handler(t *testing.T) {
	def := &Definition{Name: "b", Template: "<b>{{ .Inner }}</b>"}
	h, err := def.Handler()
	require.NoError(t, err)

	engine := MustNew()
	engine.MustRegister("b", h)
	engine.MustRegister("i", SimpleFunc(func(sc *Shortcode) string { return "<i>" + sc.Content + "</i>" }))

	// Without an engine binding .Inner is the raw content
	out, err := engine.Compile(context.Background(), "[b][i]x[/i][/b]")
	require.NoError(t, err)
	assert.Equal(t, "<b>[i]x[/i]</b>", out)
}
