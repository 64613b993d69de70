package report

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Sanitize re-encodes s as ISO-8859-1 for the PDF core fonts.
//
// Drop policy: every rune without an ISO-8859-1 code point (Tamil script, emoji,
// CJK, curly quotes) is removed; everything else is kept in order. The result is
// a byte string, not valid UTF-8 once it holds characters above U+007F.
// Sanitize never fails.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// SanitizeAll applies Sanitize to each element.
func SanitizeAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = Sanitize(s)
	}
	return out
}
