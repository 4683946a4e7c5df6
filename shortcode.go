// Package shortcode expands WordPress-style shortcodes in text.
//
// A shortcode is a bracketed tag whose output is produced by a registered
// handler:
//
//	[b]bold[/b]
//	[img src="cat.png" alt='a cat' /]
//	[gallery 1 2 3]
//
// # Basic Usage
//
// Create an engine, register handlers and compile text:
//
//	engine := shortcode.MustNew()
//	engine.MustRegisterFunc("b", func(ctx context.Context, sc *shortcode.Shortcode) (string, error) {
//	    return "<strong>" + sc.Content + "</strong>", nil
//	})
//	out, err := engine.Compile(ctx, "Hello [b]World[/b]")
//	// out: "Hello <strong>World</strong>"
//
// Names that are not registered are left untouched. Doubled brackets escape
// a tag: "[[b]]" compiles to "[b]" without calling the handler.
//
// # Attributes
//
// Attributes are named (key="value", key='value', key=value) or positional
// ("value", 'value', value). Keys are lowercased and values are unescaped
// with C-style backslash rules. A tag ending in "/]" never takes content.
//
// # Callbacks
//
// Handlers can be registered directly or by reference. References are
// resolved through a Container each time the shortcode is rendered:
//
//	container := shortcode.NewMapContainer()
//	container.Instance("HTML", &HTML{})
//	engine := shortcode.MustNew(shortcode.WithContainer(container))
//	engine.MustRegisterRef("div", "HTML@Div")   // method Div of HTML
//	engine.MustRegisterRef("bold", "Bold")      // Bold handler or Bold.Register
//
// # Nesting
//
// Compile does not recurse into content. A handler that wants nested
// shortcodes expanded calls Compile on its content with the context it
// received; the nesting depth is bounded by WithMaxDepth.
//
// # Error Handling
//
// Failures to resolve or render a shortcode are handled by an error strategy,
// set per engine with WithErrorStrategy or per tag with onerror="...":
//
//   - throw: abort and return the error (default)
//   - default: use the tag's default attribute
//   - remove: drop the tag
//   - keepraw: keep the original tag text
//   - log: log at warn level and drop the tag
//
// # Definitions and Storage
//
// A Definition is a shortcode declared as a Go text/template. Definitions are
// kept in a DefinitionStorage (memory, filesystem or postgres) and loaded
// with Engine.LoadDefinitions, or declared in a YAML config for NewFromConfig.
package shortcode
