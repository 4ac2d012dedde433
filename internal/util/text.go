package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LowerAligned lower-cases s without changing byte offsets, so match
// positions found in the result index the original string. Runes whose
// lower-case form has a different encoded width are left as they are,
// and invalid bytes are copied through unchanged.
func LowerAligned(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		l := unicode.ToLower(r)
		if utf8.RuneLen(l) != size {
			b.WriteString(s[i : i+size])
		} else {
			b.WriteRune(l)
		}
		i += size
	}
	return b.String()
}
