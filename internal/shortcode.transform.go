package internal

import "strings"

// Action produces the replacement for a non-escaped match.
type Action func(m Match) (string, error)

// Transform replaces every match of p in text in one left-to-right pass.
//
// Escaped matches ("[[tag]]") lose one bracket layer and never reach action.
// For other matches the action output is spliced in, wrapped by a lone escape
// bracket if the match consumed one. The first action error aborts the pass.
func Transform(text string, p *Pattern, action Action) (string, error) {
	if p.IsEmpty() {
		return text, nil
	}

	var sb strings.Builder
	var actionErr error
	last := 0
	matched := false

	p.Each(text, func(m Match) bool {
		if !matched {
			sb.Grow(len(text))
			matched = true
		}
		sb.WriteString(text[last:m.Start])
		last = m.End

		if m.IsEscaped() {
			sb.WriteString(m.Unescaped())
			return true
		}

		output, err := action(m)
		if err != nil {
			actionErr = err
			return false
		}
		sb.WriteString(m.Wrap(output))
		return true
	})

	if actionErr != nil {
		return "", actionErr
	}
	if !matched {
		return text, nil
	}
	sb.WriteString(text[last:])
	return sb.String(), nil
}

// Strip removes every recognized shortcode, content included.
func Strip(text string, p *Pattern) string {
	// The action never fails
	out, _ := Transform(text, p, func(Match) (string, error) {
		return StringValueEmpty, nil
	})
	return out
}

// Unwrap removes the tags of every recognized shortcode and keeps their
// content, unwrapping the content as well.
func Unwrap(text string, p *Pattern) string {
	out, _ := Transform(text, p, func(m Match) (string, error) {
		if !m.HasContent {
			return StringValueEmpty, nil
		}
		return Unwrap(m.Content, p), nil
	})
	return out
}

// Contains reports whether text holds a recognized shortcode named name.
// Escaped occurrences count.
func Contains(text string, p *Pattern, name string) bool {
	found := false
	p.Each(text, func(m Match) bool {
		if m.Name == name {
			found = true
			return false
		}
		return true
	})
	return found
}
