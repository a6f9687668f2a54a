package stream

import (
	"bytes"

	"golang.org/x/text/encoding"

	"github.com/karthik-H/httpcat/internal/message"
)

// NewEncoded builds a line-oriented stream that re-encodes each body
// line from the message's source encoding into outputEncoding. A NUL
// byte in any line suppresses the rest of the body.
func NewEncoded(msg message.Message, settings Settings, outputEncoding string) *Stream {
	return newStream(&encodedSource{
		msg:    msg,
		lines:  lazyLines{msg: msg},
		srcEnc: lookupEncoding(msg.Encoding()),
		outEnc: lookupEncoding(outputEncoding),
	}, settings)
}

type encodedSource struct {
	msg    message.Message
	lines  lazyLines
	srcEnc encoding.Encoding
	outEnc encoding.Encoding
}

func (e *encodedSource) headerBytes() ([]byte, error) {
	return []byte(e.msg.HeaderText()), nil
}

func (e *encodedSource) nextBodyChunk() ([]byte, error) {
	line, term, err := e.lines.next()
	if err != nil {
		return nil, err
	}
	if bytes.IndexByte(line, 0) != -1 {
		return nil, errBinarySuppressed
	}
	out := encodeText(e.outEnc, decodeText(e.srcEnc, line))
	return append(out, term...), nil
}
