// Package message provides a uniform read-only view over an HTTP
// request or response: synthesized header text, body bytes, declared
// encoding, and chunk/line iteration over the body.
package message

import (
	"mime"
	"strings"
)

// ChunkReader yields successive body chunks. io.EOF ends iteration.
type ChunkReader interface {
	Next() ([]byte, error)
}

// LineReader yields (line, terminator) pairs. io.EOF ends iteration.
type LineReader interface {
	NextLine() (line []byte, term []byte, err error)
}

// Message is the abstraction the output streams operate on. For
// responses, Body and the readers consume the same underlying socket
// data: use one or the other, never both.
type Message interface {
	// HeaderText renders the status/request line followed by one
	// header per line, CRLF-joined, with no trailing blank line.
	HeaderText() string
	// Body returns the complete body, empty (never nil) when absent.
	Body() ([]byte, error)
	// Encoding is the declared character encoding of the body.
	Encoding() string
	// ContentType is the raw Content-Type header value.
	ContentType() string
	BodyReader(chunkSize int) ChunkReader
	LineReader() LineReader
}

func charsetOf(contentType, fallback string) string {
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			if cs := params["charset"]; cs != "" {
				return strings.ToLower(cs)
			}
		}
	}
	return fallback
}
