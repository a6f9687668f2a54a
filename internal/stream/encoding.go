package stream

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// lookupEncoding resolves a charset label to an encoding, falling
// back to UTF-8 for unknown or empty labels.
func lookupEncoding(name string) encoding.Encoding {
	if name == "" {
		return unicode.UTF8
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return unicode.UTF8
	}
	return enc
}

// decodeText converts bytes in the given source encoding to a UTF-8
// string. Undecodable bytes degrade to replacement characters rather
// than failing; decoding is cosmetic, never fatal.
func decodeText(enc encoding.Encoding, b []byte) string {
	decoded, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// encodeText converts a UTF-8 string into the output encoding,
// replacing unsupported runes.
func encodeText(enc encoding.Encoding, s string) []byte {
	encoder := encoding.ReplaceUnsupported(enc.NewEncoder())
	encoded, err := encoder.Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return encoded
}
