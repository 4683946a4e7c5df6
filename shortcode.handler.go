package shortcode

import (
	"context"

	"github.com/itsatony/go-shortcode/internal"
)

// Position is a line/column location in the compiled text.
type Position = internal.Position

// Attributes holds the named and positional values of a shortcode tag.
// Named keys are lowercase.
type Attributes = internal.Attributes

// ParseAttributes tokenizes the raw attribute text of a tag, e.g.
// ` href="www.google.com" target=_blank nofollow`.
func ParseAttributes(raw string) Attributes {
	return internal.ParseAttributes(raw)
}

// NewAttributes builds Attributes from named and positional values.
func NewAttributes(named map[string]string, positional ...string) Attributes {
	return internal.NewAttributes(named, positional...)
}

// Shortcode is one occurrence handed to a Handler.
type Shortcode struct {
	Name        string
	Attributes  Attributes
	Content     string // Only meaningful when HasContent is true
	HasContent  bool
	SelfClosing bool
	Raw         string // Source text of the tag, escape brackets excluded
	Position    Position
}

// Attr returns the named attribute or fallback.
func (s *Shortcode) Attr(key, fallback string) string {
	return s.Attributes.GetDefault(key, fallback)
}

// newShortcode converts a scanner match into handler input.
func newShortcode(m internal.Match) *Shortcode {
	raw := m.Raw
	if m.EscapeOpen {
		raw = raw[1:]
	}
	if m.EscapeClose {
		raw = raw[:len(raw)-1]
	}
	return &Shortcode{
		Name:        m.Name,
		Attributes:  internal.ParseAttributes(m.RawAttrs),
		Content:     m.Content,
		HasContent:  m.HasContent,
		SelfClosing: m.SelfClosing,
		Raw:         raw,
		Position:    m.Position,
	}
}

// Handler renders a shortcode into its replacement text.
type Handler interface {
	Render(ctx context.Context, sc *Shortcode) (string, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, sc *Shortcode) (string, error)

// Render calls f(ctx, sc).
func (f HandlerFunc) Render(ctx context.Context, sc *Shortcode) (string, error) {
	return f(ctx, sc)
}

// SimpleFunc adapts a function that cannot fail to the Handler interface.
type SimpleFunc func(sc *Shortcode) string

// Render calls f(sc).
func (f SimpleFunc) Render(_ context.Context, sc *Shortcode) (string, error) {
	return f(sc), nil
}
