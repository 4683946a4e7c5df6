package shortcode

import (
	"context"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"
)

// Definition is a declarative shortcode: its output is a Go text/template
// rendered with a DefinitionView of the occurrence.
//
//	name: a
//	template: '<a href="{{ .Attr "href" "#" }}">{{ .Inner }}</a>'
type Definition struct {
	// ID is assigned by storage backends on first save.
	ID string `yaml:"id,omitempty" json:"id,omitempty"`

	// Name is the shortcode name the definition is registered under.
	Name string `yaml:"name" json:"name"`

	// Template is the text/template body.
	Template string `yaml:"template" json:"template"`

	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Defaults fill in named attributes the tag does not set.
	Defaults map[string]string `yaml:"defaults,omitempty" json:"defaults,omitempty"`

	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`

	CreatedAt time.Time `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Validate checks the definition can be registered.
func (d *Definition) Validate() error {
	if d == nil {
		return NewNilDefinitionError()
	}
	if d.Name == "" {
		return NewEmptyNameError()
	}
	if strings.TrimSpace(d.Template) == "" {
		return NewEmptyTemplateError(d.Name)
	}
	return nil
}

// Clone returns a deep copy.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	c := *d
	c.Defaults = copyStringMap(d.Defaults)
	c.Tags = copyStringSlice(d.Tags)
	return &c
}

// Handler compiles the template into a standalone Handler. Its .Inner is the
// raw content.
func (d *Definition) Handler() (Handler, error) {
	return d.handler(nil)
}

func (d *Definition) handler(engine *Engine) (Handler, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := template.New(d.Name).Option("missingkey=zero").Parse(d.Template)
	if err != nil {
		return nil, NewTemplateParseError(d.Name, err)
	}
	return &definitionHandler{def: d.Clone(), tmpl: tmpl, engine: engine}, nil
}

// RegisterDefinition compiles def and registers it under def.Name. Inside
// the template, .Inner compiles the content with this engine.
func (e *Engine) RegisterDefinition(def *Definition) error {
	h, err := def.handler(e)
	if err != nil {
		return err
	}
	if err := e.Register(def.Name, h); err != nil {
		return err
	}
	e.logger.Debug(LogMsgDefinitionRegistered, zap.String(LogFieldDefinition, def.Name))
	return nil
}

type definitionHandler struct {
	def    *Definition
	tmpl   *template.Template
	engine *Engine
}

func (h *definitionHandler) Render(ctx context.Context, sc *Shortcode) (string, error) {
	view := newDefinitionView(ctx, sc, h.def.Defaults, h.engine)

	var sb strings.Builder
	if err := h.tmpl.Execute(&sb, view); err != nil {
		return "", NewTemplateExecError(h.def.Name, err)
	}
	return sb.String(), nil
}

// DefinitionView is the data a definition template is executed with.
type DefinitionView struct {
	Name        string
	Content     string
	HasContent  bool
	SelfClosing bool
	Attrs       map[string]string // Named attributes merged over the defaults
	Args        []string          // Positional attributes

	ctx    context.Context
	engine *Engine
}

func newDefinitionView(ctx context.Context, sc *Shortcode, defaults map[string]string, engine *Engine) *DefinitionView {
	attrs := make(map[string]string, len(defaults))
	for k, v := range defaults {
		attrs[strings.ToLower(k)] = v
	}
	for k, v := range sc.Attributes.Map() {
		attrs[k] = v
	}
	return &DefinitionView{
		Name:        sc.Name,
		Content:     sc.Content,
		HasContent:  sc.HasContent,
		SelfClosing: sc.SelfClosing,
		Attrs:       attrs,
		Args:        sc.Attributes.Positional(),
		ctx:         ctx,
		engine:      engine,
	}
}

// Attr returns the named attribute, its default, or fallback.
func (v *DefinitionView) Attr(key, fallback string) string {
	if value, ok := v.Attrs[strings.ToLower(key)]; ok {
		return value
	}
	return fallback
}

// Arg returns the positional attribute at i, or "".
func (v *DefinitionView) Arg(i int) string {
	if i < 0 || i >= len(v.Args) {
		return ""
	}
	return v.Args[i]
}

// Inner returns the content with nested shortcodes compiled, or the raw
// content when the definition is not bound to an engine.
func (v *DefinitionView) Inner() (string, error) {
	if v.engine == nil || !v.HasContent {
		return v.Content, nil
	}
	return v.engine.Compile(v.ctx, v.Content)
}

// copyStringMap creates a shallow copy of a string map.
func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	result := make(map[string]string, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// copyStringSlice creates a copy of a string slice.
func copyStringSlice(s []string) []string {
	if s == nil {
		return nil
	}
	result := make([]string, len(s))
	copy(result, s)
	return result
}
