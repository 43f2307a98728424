package pdf

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// maxSegmentRunes bounds every text segment before layout.
const maxSegmentRunes = 300

// replacementChar stands in for runes the core fonts cannot show.
const replacementChar = '?'

// narrow converts s to the single-byte Windows-1252 encoding used by the
// core PDF fonts. Unsupported runes become '?', then the result is cut to
// maxSegmentRunes characters.
func narrow(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	n := 0
	for _, r := range s {
		if n == maxSegmentRunes {
			break
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte(replacementChar)
		}
		n++
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}
