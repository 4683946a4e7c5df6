package internal

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Attributes holds the tokenized attribute text of a shortcode.
// Named values are keyed by lowercase name; positional values keep their
// order of occurrence. The zero value is an empty, usable set.
type Attributes struct {
	named      map[string]string
	positional []string
}

// NewAttributes creates attributes from named and positional values.
// Keys are lowercased.
func NewAttributes(named map[string]string, positional ...string) Attributes {
	a := Attributes{}
	for k, v := range named {
		a.set(k, v)
	}
	if len(positional) > 0 {
		a.positional = append([]string(nil), positional...)
	}
	return a
}

func (a *Attributes) set(key, value string) {
	if a.named == nil {
		a.named = make(map[string]string)
	}
	a.named[strings.ToLower(key)] = value
}

func (a *Attributes) add(value string) {
	a.positional = append(a.positional, value)
}

// Get retrieves a named value, returning ok=false if not found
func (a Attributes) Get(key string) (string, bool) {
	val, ok := a.named[key]
	return val, ok
}

// GetDefault retrieves a named value with a default fallback
func (a Attributes) GetDefault(key, defaultVal string) string {
	if val, ok := a.named[key]; ok {
		return val
	}
	return defaultVal
}

// Has checks if a named value exists
func (a Attributes) Has(key string) bool {
	_, ok := a.named[key]
	return ok
}

// Keys returns all attribute names in sorted order
func (a Attributes) Keys() []string {
	if len(a.named) == 0 {
		return nil
	}
	keys := make([]string, 0, len(a.named))
	for k := range a.named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the named values
func (a Attributes) Map() map[string]string {
	result := make(map[string]string, len(a.named))
	for k, v := range a.named {
		result[k] = v
	}
	return result
}

// Positional returns a copy of the unnamed values in order of occurrence
func (a Attributes) Positional() []string {
	if len(a.positional) == 0 {
		return nil
	}
	return append([]string(nil), a.positional...)
}

// At returns the positional value at index i
func (a Attributes) At(i int) (string, bool) {
	if i < 0 || i >= len(a.positional) {
		return "", false
	}
	return a.positional[i], true
}

// Len returns the number of named plus positional values
func (a Attributes) Len() int {
	return len(a.named) + len(a.positional)
}

// IsEmpty reports whether no values were captured
func (a Attributes) IsEmpty() bool {
	return a.Len() == 0
}

// String returns a string representation of the attributes
func (a Attributes) String() string {
	if a.IsEmpty() {
		return FmtEmptyBraces
	}
	pairs := make([]string, 0, a.Len())
	for _, k := range a.Keys() {
		pairs = append(pairs, k+FmtKeyValueSep+fmt.Sprintf("%q", a.named[k]))
	}
	for i, v := range a.positional {
		pairs = append(pairs, fmt.Sprintf("%d", i)+FmtKeyValueSep+fmt.Sprintf("%q", v))
	}
	return FmtOpenBrace + strings.Join(pairs, FmtCommaSep) + FmtCloseBrace
}

// ParseAttributes tokenizes the raw attribute text of a shortcode.
//
// Token forms, tried in order at each position, each followed by whitespace
// or the end of input:
//
//	name="value"   name='value'   name=value   "value"   value
//
// The first three give named values, the last two positional ones.
// All values are decoded with StripCSlashes.
func ParseAttributes(raw string) Attributes {
	text := normalizeSpaces(raw)

	// Every non-space byte starts some token (the bare form accepts any run),
	// so blank input is the only text that yields no values at all.
	var attrs Attributes
	for i := 0; i < len(text); {
		if isSpace(text[i]) {
			i++
			continue
		}
		i = scanAttribute(text, i, &attrs)
	}
	return attrs
}

// scanAttribute consumes one token starting at a non-space byte and returns
// the position after it.
func scanAttribute(text string, start int, attrs *Attributes) int {
	if name, value, next, ok := scanNamed(text, start); ok {
		attrs.set(name, StripCSlashes(value))
		return next
	}

	if text[start] == CharDoubleQuote {
		if value, next, ok := scanQuoted(text, start, CharDoubleQuote); ok {
			if value != StringValueEmpty {
				attrs.add(StripCSlashes(value))
			}
			return next
		}
	}

	end := start
	for end < len(text) && !isSpace(text[end]) {
		end++
	}
	attrs.add(StripCSlashes(text[start:end]))
	return skipOneSpace(text, end)
}

// scanNamed matches name="v", name='v' or name=v at start.
func scanNamed(text string, start int) (name, value string, next int, ok bool) {
	pos := start
	for pos < len(text) && isWordChar(text[pos]) {
		pos++
	}
	if pos == start {
		return "", "", start, false
	}
	name = text[start:pos]

	pos = skipSpaces(text, pos)
	if pos >= len(text) || text[pos] != CharEquals {
		return "", "", start, false
	}
	pos = skipSpaces(text, pos+1)
	if pos >= len(text) {
		return "", "", start, false
	}

	switch text[pos] {
	case CharDoubleQuote, CharSingleQuote:
		value, next, ok = scanQuoted(text, pos, text[pos])
		if !ok {
			return "", "", start, false
		}
		return name, value, next, true
	}

	end := pos
	for end < len(text) && !isSpace(text[end]) && !isQuote(text[end]) {
		end++
	}
	if end < len(text) && !isSpace(text[end]) {
		// A quote glued to the value
		return "", "", start, false
	}
	return name, text[pos:end], skipOneSpace(text, end), true
}

// scanQuoted matches a quoted value starting at the opening quote. The closing
// quote must be followed by whitespace or the end of input.
func scanQuoted(text string, open int, quote byte) (value string, next int, ok bool) {
	closeIdx := strings.IndexByte(text[open+1:], quote)
	if closeIdx < 0 {
		return "", open, false
	}
	closeIdx += open + 1
	if closeIdx+1 < len(text) && !isSpace(text[closeIdx+1]) {
		return "", open, false
	}
	return text[open+1 : closeIdx], skipOneSpace(text, closeIdx+1), true
}

// normalizeSpaces replaces runs of no-break and zero-width spaces with a
// single plain space.
func normalizeSpaces(s string) string {
	if !strings.ContainsRune(s, RuneNoBreakSpace) && !strings.ContainsRune(s, RuneZeroWidthSpace) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	inRun := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == RuneNoBreakSpace || r == RuneZeroWidthSpace {
			if !inRun {
				sb.WriteByte(CharSpace)
				inRun = true
			}
		} else {
			inRun = false
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	return sb.String()
}

// attrSpaceChars is the whitespace set used by the attribute grammar
const attrSpaceChars = " \t\n\v\f\r"

func isSpace(ch byte) bool {
	return strings.IndexByte(attrSpaceChars, ch) >= 0
}

func isQuote(ch byte) bool {
	return ch == CharDoubleQuote || ch == CharSingleQuote
}

// isWordChar reports whether ch is an ASCII letter, digit or underscore
func isWordChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == CharUnderscore
}

func skipSpaces(text string, pos int) int {
	for pos < len(text) && isSpace(text[pos]) {
		pos++
	}
	return pos
}

func skipOneSpace(text string, pos int) int {
	if pos < len(text) && isSpace(text[pos]) {
		return pos + 1
	}
	return pos
}
