package internal

import "strings"

// StripCSlashes decodes C-style backslash escapes.
//
// Recognized: \n \r \a \t \v \b \f \\, \xH and \xHH (hex), and one to three
// octal digits. Any other escaped byte stands for itself. A backslash at the
// very end of the input is kept as is. Octal values above 0377 wrap to a byte.
func StripCSlashes(s string) string {
	if strings.IndexByte(s, CharBackslash) < 0 {
		return s
	}

	out := make([]byte, 0, len(s))
	end := len(s)
	for i := 0; i < end; i++ {
		ch := s[i]
		if ch != CharBackslash || i+1 >= end {
			out = append(out, ch)
			continue
		}

		i++
		switch s[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 'a':
			out = append(out, '\a')
		case 't':
			out = append(out, '\t')
		case 'v':
			out = append(out, '\v')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case CharBackslash:
			out = append(out, CharBackslash)
		case 'x':
			if i+1 < end && isHexDigit(s[i+1]) {
				i++
				val := hexValue(s[i])
				if i+1 < end && isHexDigit(s[i+1]) {
					i++
					val = val<<4 | hexValue(s[i])
				}
				out = append(out, val)
				continue
			}
			// \x without digits: the x stands for itself
			out = append(out, s[i])
		default:
			var val int
			digits := 0
			for i < end && isOctalDigit(s[i]) && digits < 3 {
				val = val<<3 | int(s[i]-'0')
				i++
				digits++
			}
			if digits > 0 {
				out = append(out, byte(val))
				i--
			} else {
				out = append(out, s[i])
			}
		}
	}

	return string(out)
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func hexValue(ch byte) byte {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}

func isOctalDigit(ch byte) bool {
	return ch >= '0' && ch <= '7'
}
