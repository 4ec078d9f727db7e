package normalize

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// CoerceUTF8 returns s as valid UTF-8. Byte sequences that are not valid
// UTF-8 are re-decoded as Latin-1, which accepts any byte sequence, so
// coercion always succeeds.
func CoerceUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		// Latin-1 decoding cannot fail, but degrade to replacement runes
		// rather than ever returning invalid UTF-8.
		return string([]rune(s))
	}
	return decoded
}
