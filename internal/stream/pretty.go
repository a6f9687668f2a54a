package stream

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/karthik-H/httpcat/internal/message"
	"github.com/karthik-H/httpcat/internal/processing"
)

const bufferedChunkSize = 1024 * 10

// NewPretty builds a line-oriented stream that formats headers and
// runs each body line through the format+convert pipeline. It stays
// responsive on long-lived responses; the only buffering is the
// escape hatch taken when the first body chunk turns out to be binary
// and a converter claims the MIME type, in which case the whole
// remaining body is buffered, converted, and emitted as one chunk.
func NewPretty(msg message.Message, settings Settings, outputEncoding string,
	formatting *processing.Formatting, conversion *processing.Conversion) *Stream {
	return newStream(&prettySource{
		msg:        msg,
		lines:      lazyLines{msg: msg},
		srcEnc:     lookupEncoding(msg.Encoding()),
		outEnc:     lookupEncoding(outputEncoding),
		formatting: formatting,
		conversion: conversion,
		mime:       mimeOf(msg),
		first:      true,
	}, settings)
}

// NewBufferedPretty builds a stream that reads the entire body before
// any processing, then emits the converted and formatted result as a
// single chunk. Binary bodies with no converter produce no partial
// output at all. Suitable for ordinary, non-streaming responses.
func NewBufferedPretty(msg message.Message, settings Settings, outputEncoding string,
	formatting *processing.Formatting, conversion *processing.Conversion) *Stream {
	return newStream(&bufferedPrettySource{prettySource{
		msg:        msg,
		srcEnc:     lookupEncoding(msg.Encoding()),
		outEnc:     lookupEncoding(outputEncoding),
		formatting: formatting,
		conversion: conversion,
		mime:       mimeOf(msg),
	}}, settings)
}

// mimeOf strips Content-Type parameters down to type/subtype.
func mimeOf(msg message.Message) string {
	mime, _, _ := strings.Cut(msg.ContentType(), ";")
	return mime
}

type prettySource struct {
	msg        message.Message
	lines      lazyLines
	srcEnc     encoding.Encoding
	outEnc     encoding.Encoding
	formatting *processing.Formatting
	conversion *processing.Conversion
	mime       string
	first      bool
	done       bool
}

func (p *prettySource) headerBytes() ([]byte, error) {
	formatted := p.formatting.FormatHeaders(p.msg.HeaderText())
	return encodeText(p.outEnc, formatted), nil
}

func (p *prettySource) nextBodyChunk() ([]byte, error) {
	if p.done {
		return nil, io.EOF
	}
	line, term, err := p.lines.next()
	if err != nil {
		return nil, err
	}
	if bytes.IndexByte(line, 0) != -1 {
		if p.first {
			if converter := p.conversion.GetConverter(p.mime); converter != nil {
				return p.convertRemainder(converter, line, term)
			}
		}
		return nil, errBinarySuppressed
	}
	p.first = false
	return append(p.processText(decodeText(p.srcEnc, line)), term...), nil
}

// convertRemainder buffers the rest of the body starting with the
// line that tripped binary detection, converts it in one piece, and
// terminates the stream.
func (p *prettySource) convertRemainder(converter processing.Converter, line, term []byte) ([]byte, error) {
	var body bytes.Buffer
	body.Write(line)
	body.Write(term)
	for {
		line, term, err := p.lines.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		body.Write(line)
		body.Write(term)
	}
	newMime, text := converter.Convert(body.Bytes())
	p.mime = newMime
	p.done = true
	return p.processText(text), nil
}

func (p *prettySource) processText(text string) []byte {
	return encodeText(p.outEnc, p.formatting.FormatBody(text, p.mime))
}

type bufferedPrettySource struct {
	prettySource
}

func (b *bufferedPrettySource) nextBodyChunk() ([]byte, error) {
	// Read the whole body before prettifying it, but bail out
	// immediately on binary content with no converter.
	if b.done {
		return nil, io.EOF
	}
	b.done = true

	var converter processing.Converter
	var body bytes.Buffer
	chunks := b.msg.BodyReader(bufferedChunkSize)
	for {
		chunk, err := chunks.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if converter == nil && bytes.IndexByte(chunk, 0) != -1 {
			converter = b.conversion.GetConverter(b.mime)
			if converter == nil {
				return nil, errBinarySuppressed
			}
		}
		body.Write(chunk)
	}

	var text string
	if converter != nil {
		b.mime, text = converter.Convert(body.Bytes())
	} else {
		text = decodeText(b.srcEnc, body.Bytes())
	}
	return b.processText(text), nil
}
