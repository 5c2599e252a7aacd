package main

import (
	"strings"
	"unicode/utf8"
)

const esc = 0x1b

// sanitizeReply strips terminal escape sequences and control characters from
// server text before it is parsed or drawn. Newlines survive, tabs become a
// single space, carriage returns and invalid UTF-8 bytes are dropped.
func sanitizeReply(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		c := text[i]
		if c == esc {
			i = skipEscape(text, i)
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == utf8.RuneError && size == 1:
		case r == '\n':
			b.WriteByte('\n')
		case r == '\t':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
		default:
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

func skipEscape(text string, i int) int {
	if i+1 >= len(text) {
		return len(text)
	}
	switch text[i+1] {
	case '[':
		// CSI: parameter and intermediate bytes, then one final byte.
		end := i + 2
		for end < len(text) && (text[end] < 0x40 || text[end] > 0x7e) {
			end++
		}
		if end < len(text) {
			return end + 1
		}
		return len(text)
	case ']':
		// OSC: terminated by BEL or ST (ESC \).
		end := i + 2
		for end < len(text) {
			if text[end] == 0x07 {
				return end + 1
			}
			if text[end] == esc && end+1 < len(text) && text[end+1] == '\\' {
				return end + 2
			}
			end++
		}
		return len(text)
	default:
		return i + 2
	}
}
