package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCSlashes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no escapes", "plain text", "plain text"},
		{"newline", `a\nb`, "a\nb"},
		{"tab and carriage return", `\t\r`, "\t\r"},
		{"bell backspace formfeed vtab", `\a\b\f\v`, "\a\b\f\v"},
		{"backslash", `C:\\dir`, `C:\dir`},
		{"hex two digits", `\x41`, "A"},
		{"hex one digit", `\x4z`, "\x04z"},
		{"hex without digits", `\xZ`, "xZ"},
		{"octal three digits", `\101`, "A"},
		{"octal single zero", `a\0b`, "a\x00b"},
		{"octal stops after three digits", `\1234`, "S4"},
		{"octal wraps to byte", `\777`, "\xff"},
		{"unknown escape", `\q\"`, `q"`},
		{"trailing backslash kept", `abc\`, `abc\`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCSlashes(tt.input))
		})
	}
}
