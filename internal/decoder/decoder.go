// Package decoder turns the legacy single-byte payload written by the mine
// survey tool into Go text. The tool writes Windows-1251.
package decoder

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"mineview/internal/log"
)

// Charmap is the code table used for mine scheme files.
var Charmap = charmap.Windows1251

// Decode maps every byte to one code point. It never fails: bytes the
// table leaves unassigned come out as U+FFFD.
func Decode(b []byte) string {
	decoded, err := Charmap.NewDecoder().Bytes(b)
	if err != nil {
		// charmap decoders substitute instead of failing, keep the
		// byte-per-rune contract anyway
		log.Warn("decode error, falling back to per-byte table", "error", err)
		return decodeBytewise(b)
	}
	return string(decoded)
}

func decodeBytewise(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = Charmap.DecodeByte(c)
	}
	return string(runes)
}

// Encode converts text back to the legacy encoding. Text containing runes
// outside the table fails.
func Encode(s string) ([]byte, error) {
	return Charmap.NewEncoder().Bytes([]byte(s))
}

// Defined reports whether b has an assigned character in the table.
func Defined(b byte) bool {
	return Charmap.DecodeByte(b) != utf8.RuneError
}
