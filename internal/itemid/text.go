package itemid

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// narrowCharmap is the single-byte code page used for the narrow name
// strings stored in records.
var narrowCharmap = charmap.Windows1252

// wideEncoding encodes the names stored in the wide-name extension.
var wideEncoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// narrowReplacement stands in for characters the narrow code page cannot
// represent.
const narrowReplacement = '?'

// encodeNarrow converts s to NUL-free narrow bytes. Unrepresentable
// characters become '?'.
func encodeNarrow(s string) []byte {
	s = norm.NFC.String(s)
	out := make([]byte, 0, len(s))

	for _, r := range s {
		b, ok := narrowCharmap.EncodeRune(r)
		if !ok || b == 0 {
			b = narrowReplacement
		}

		out = append(out, b)
	}

	return out
}

// decodeNarrow converts narrow bytes to a Go string.
func decodeNarrow(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))

	for _, c := range b {
		sb.WriteRune(narrowCharmap.DecodeByte(c))
	}

	return sb.String()
}

// cstring returns the NUL-terminated byte string at the start of b. It
// reports false when no terminator exists within b.
func cstring(b []byte) ([]byte, bool) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return nil, false
	}

	return b[:i], true
}

// encodeWide converts s to UTF-16LE code units without a terminator.
func encodeWide(s string) []byte {
	out, err := wideEncoding.NewEncoder().Bytes([]byte(norm.NFC.String(s)))
	if err != nil {
		return nil
	}

	return out
}

// decodeWide returns the NUL-terminated UTF-16LE string at the start of b.
// It reports false when no terminator exists within b.
func decodeWide(b []byte) (string, bool) {
	end := -1

	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			end = i
			break
		}
	}

	if end < 0 {
		return "", false
	}

	out, err := wideEncoding.NewDecoder().Bytes(b[:end])
	if err != nil {
		return "", false
	}

	return string(out), true
}

// NarrowLossless reports whether s survives the narrow code page unchanged.
// Such names do not need the wide-name extension.
func NarrowLossless(s string) bool {
	return decodeNarrow(encodeNarrow(s)) == norm.NFC.String(s)
}
