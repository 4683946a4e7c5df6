package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Match is one recognized shortcode occurrence.
type Match struct {
	Start int // Offset of the opening '[' (the outer one when escaped)
	End   int // Offset just past the final ']'

	Name        string // Registered name, exactly as written
	RawAttrs    string // Unparsed text between the name and the tag close
	Content     string // Text between the open and the close tag
	HasContent  bool   // A matching close tag was found
	SelfClosing bool   // Tag ended with "/]"

	EscapeOpen  bool // A doubled '[' opened the match
	EscapeClose bool // A ']' directly followed the match

	Raw      string   // Source text of the whole span
	Position Position // Position of Start
}

// IsEscaped reports whether the match is an escaped shortcode ("[[tag]]")
func (m Match) IsEscaped() bool {
	return m.EscapeOpen && m.EscapeClose
}

// Unescaped returns the source with one bracket layer removed
func (m Match) Unescaped() string {
	if len(m.Raw) < 2 {
		return m.Raw
	}
	return m.Raw[1 : len(m.Raw)-1]
}

// Wrap surrounds output with the lone escape bracket the match consumed, if any
func (m Match) Wrap(output string) string {
	if !m.EscapeOpen && !m.EscapeClose {
		return output
	}
	var sb strings.Builder
	sb.Grow(len(output) + 2)
	if m.EscapeOpen {
		sb.WriteByte(CharOpenBracket)
	}
	sb.WriteString(output)
	if m.EscapeClose {
		sb.WriteByte(CharCloseBracket)
	}
	return sb.String()
}

// Pattern recognizes shortcodes for a fixed, ordered set of names.
// A Pattern is immutable and safe for concurrent use.
type Pattern struct {
	names       []string
	byFirst     map[byte][]string // names by first byte, registration order kept
	fingerprint string
}

// BuildPattern creates a pattern for the given names. Earlier names win when
// more than one name matches at the same position. Empty names are ignored.
func BuildPattern(names []string) *Pattern {
	p := &Pattern{
		names:       make([]string, 0, len(names)),
		byFirst:     make(map[byte][]string),
		fingerprint: Fingerprint(names),
	}
	for _, name := range names {
		if name == StringValueEmpty {
			continue
		}
		p.names = append(p.names, name)
		p.byFirst[name[0]] = append(p.byFirst[name[0]], name)
	}
	return p
}

// Fingerprint returns a stable hash of an ordered name list
func Fingerprint(names []string) string {
	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Names returns a copy of the names in match order
func (p *Pattern) Names() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.names...)
}

// Fingerprint returns the hash of the name list the pattern was built from
func (p *Pattern) Fingerprint() string {
	if p == nil {
		return Fingerprint(nil)
	}
	return p.fingerprint
}

// IsEmpty reports whether the pattern can never match
func (p *Pattern) IsEmpty() bool {
	return p == nil || len(p.names) == 0
}

// Each calls fn for every match in text, left to right. Scanning stops when
// fn returns false.
func (p *Pattern) Each(text string, fn func(Match) bool) {
	if p.IsEmpty() || len(text) == 0 {
		return
	}

	s := newScanner(p, text)
	for i := 0; i < len(text); {
		idx := strings.IndexByte(text[i:], CharOpenBracket)
		if idx < 0 {
			return
		}
		i += idx

		m, ok := s.matchAt(i)
		if !ok {
			i++
			continue
		}
		if !fn(m) {
			return
		}
		i = m.End
	}
}

// FindAll returns all matches in text
func (p *Pattern) FindAll(text string) []Match {
	var matches []Match
	p.Each(text, func(m Match) bool {
		matches = append(matches, m)
		return true
	})
	return matches
}

// indexMemo remembers the result of a forward search. Scan positions only
// move forward, so a found index stays valid until the scan passes it and a
// miss stays a miss for the rest of the text.
type indexMemo struct {
	from  int
	index int
}

func (m *indexMemo) valid(from int) bool {
	return m.from >= 0 && m.from <= from && (m.index < 0 || m.index >= from)
}

// scanner holds the per-call state of one scan.
type scanner struct {
	pattern   *Pattern
	text      string
	bracket   indexMemo
	closeTags map[string]*closeTagMemo
	positions *positionTracker
}

type closeTagMemo struct {
	tag string
	indexMemo
}

func newScanner(p *Pattern, text string) *scanner {
	return &scanner{
		pattern:   p,
		text:      text,
		bracket:   indexMemo{from: -1},
		closeTags: make(map[string]*closeTagMemo),
		positions: newPositionTracker(text),
	}
}

// matchAt tries to recognize a shortcode whose opening '[' is at start.
// A doubled bracket is tried as an escape first, then as plain text.
func (s *scanner) matchAt(start int) (Match, bool) {
	pos := start + 1
	if pos < len(s.text) && s.text[pos] == CharOpenBracket {
		if m, ok := s.matchName(start, pos+1, true); ok {
			return m, true
		}
	}
	return s.matchName(start, pos, false)
}

// matchName tries every registered name at pos, in registration order.
func (s *scanner) matchName(start, pos int, escapeOpen bool) (Match, bool) {
	if pos >= len(s.text) {
		return Match{}, false
	}
	for _, name := range s.pattern.byFirst[s.text[pos]] {
		if !strings.HasPrefix(s.text[pos:], name) {
			continue
		}
		nameEnd := pos + len(name)
		if nameEnd < len(s.text) && isNameChar(s.text[nameEnd]) {
			// "[named]" is not "[name]"
			continue
		}
		if m, ok := s.matchTail(start, name, nameEnd, escapeOpen); ok {
			return m, true
		}
	}
	return Match{}, false
}

// matchTail recognizes everything after the name: the inner tag text, the
// self-closing or open/close terminal, and a trailing escape bracket.
func (s *scanner) matchTail(start int, name string, nameEnd int, escapeOpen bool) (Match, bool) {
	closeIdx := s.findBracket(nameEnd)
	if closeIdx < 0 {
		return Match{}, false
	}

	m := Match{
		Start:      start,
		Name:       name,
		EscapeOpen: escapeOpen,
	}
	end := closeIdx + 1

	if closeIdx > nameEnd && s.text[closeIdx-1] == CharSlash {
		m.SelfClosing = true
		m.RawAttrs = s.text[nameEnd : closeIdx-1]
	} else {
		m.RawAttrs = s.text[nameEnd:closeIdx]
		tag, idx := s.findCloseTag(name, end)
		if idx >= 0 {
			m.Content = s.text[end:idx]
			m.HasContent = true
			end = idx + len(tag)
		}
	}

	if end < len(s.text) && s.text[end] == CharCloseBracket {
		m.EscapeClose = true
		end++
	}

	m.End = end
	m.Raw = s.text[start:end]
	m.Position = s.positions.at(start)
	return m, true
}

// findBracket returns the index of the first ']' at or after from, or -1.
func (s *scanner) findBracket(from int) int {
	if s.bracket.valid(from) {
		return s.bracket.index
	}
	idx := strings.IndexByte(s.text[from:], CharCloseBracket)
	if idx >= 0 {
		idx += from
	}
	s.bracket = indexMemo{from: from, index: idx}
	return idx
}

// findCloseTag returns the close tag for name and the index of its first
// occurrence at or after from, or -1.
func (s *scanner) findCloseTag(name string, from int) (string, int) {
	memo, ok := s.closeTags[name]
	if !ok {
		memo = &closeTagMemo{
			tag:       StrCloseTagOpen + name + StrCloseTagEnd,
			indexMemo: indexMemo{from: -1},
		}
		s.closeTags[name] = memo
	}
	if memo.valid(from) {
		return memo.tag, memo.index
	}
	idx := strings.Index(s.text[from:], memo.tag)
	if idx >= 0 {
		idx += from
	}
	memo.indexMemo = indexMemo{from: from, index: idx}
	return memo.tag, idx
}

// isNameChar reports whether ch may continue a shortcode name, which makes
// it a non-boundary after a registered name.
func isNameChar(ch byte) bool {
	return isWordChar(ch) || ch == CharHyphen
}
