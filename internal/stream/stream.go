// Package stream turns a message into an ordered sequence of output
// byte chunks under one of four fidelity/buffering policies: raw,
// encoded, pretty, and buffered pretty. Streams are single-use; a
// fresh one is built per request or response per invocation.
package stream

import (
	"errors"
	"io"

	"github.com/karthik-H/httpcat/internal/message"
)

// BinarySuppressedNotice replaces body output when binary content is
// detected and no converter can render it as text.
var BinarySuppressedNotice = []byte("\n" +
	"+-----------------------------------------+\n" +
	"| NOTE: binary data not shown in terminal |\n" +
	"+-----------------------------------------+")

// errBinarySuppressed is the in-package signal that a body turned out
// to be binary. It is expected control flow, consumed by the stream
// driver, and never escapes the package boundary.
var errBinarySuppressed = errors.New("binary data suppressed")

var headerSeparator = []byte("\r\n\r\n")

// Chunker yields ordered output chunks; io.EOF ends iteration.
type Chunker interface {
	Next() ([]byte, error)
}

// source is the capability each stream variant provides: header
// rendering and body chunk production. A body source reports
// errBinarySuppressed to hand control to the driver.
type source interface {
	headerBytes() ([]byte, error)
	nextBodyChunk() ([]byte, error)
}

// Settings is the per-stream configuration shared by all variants.
type Settings struct {
	WithHeaders bool
	WithBody    bool
	// OnBodyChunk is invoked for every emitted body chunk. Header,
	// separator, and notice chunks do not trigger it.
	OnBodyChunk func([]byte)
}

const (
	stateHeaders = iota
	stateSeparator
	stateBody
	stateNotice
	stateDone
)

// Stream drives one source through headers, separator, body, and the
// binary-suppression notice. Terminal after full consumption.
type Stream struct {
	src      source
	settings Settings
	state    int
}

func newStream(src source, settings Settings) *Stream {
	if !settings.WithHeaders && !settings.WithBody {
		panic("stream: at least one of headers or body must be enabled")
	}
	state := stateHeaders
	if !settings.WithHeaders {
		state = stateBody
	}
	return &Stream{src: src, settings: settings, state: state}
}

func (s *Stream) Next() ([]byte, error) {
	switch s.state {
	case stateHeaders:
		s.state = stateSeparator
		return s.src.headerBytes()

	case stateSeparator:
		if s.settings.WithBody {
			s.state = stateBody
		} else {
			s.state = stateDone
		}
		return headerSeparator, nil

	case stateBody:
		chunk, err := s.src.nextBodyChunk()
		switch {
		case err == nil:
			if s.settings.OnBodyChunk != nil {
				s.settings.OnBodyChunk(chunk)
			}
			return chunk, nil
		case errors.Is(err, errBinarySuppressed):
			if s.settings.WithHeaders {
				s.state = stateNotice
				return []byte("\n"), nil
			}
			s.state = stateDone
			return BinarySuppressedNotice, nil
		case errors.Is(err, io.EOF):
			s.state = stateDone
			return nil, io.EOF
		default:
			s.state = stateDone
			return nil, err
		}

	case stateNotice:
		s.state = stateDone
		return BinarySuppressedNotice, nil

	default:
		return nil, io.EOF
	}
}

// WriteTo drains one or more chunk sources into w, optionally
// flushing after every chunk for live streaming.
func WriteTo(w io.Writer, flush bool, parts ...Chunker) error {
	type flusher interface{ Flush() error }
	f, canFlush := w.(flusher)
	for _, part := range parts {
		for {
			chunk, err := part.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}
			if len(chunk) == 0 {
				continue
			}
			if _, err := w.Write(chunk); err != nil {
				return err
			}
			if flush && canFlush {
				if err := f.Flush(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// literal yields a fixed set of chunks, used for the separators the
// assembly inserts between sub-streams.
type literal struct {
	chunks [][]byte
	pos    int
}

func (l *literal) Next() ([]byte, error) {
	if l.pos >= len(l.chunks) {
		return nil, io.EOF
	}
	chunk := l.chunks[l.pos]
	l.pos++
	return chunk, nil
}

// lazyLines defers opening the message line reader until the first
// body chunk is requested.
type lazyLines struct {
	msg   message.Message
	lines message.LineReader
}

func (l *lazyLines) next() ([]byte, []byte, error) {
	if l.lines == nil {
		l.lines = l.msg.LineReader()
	}
	return l.lines.NextLine()
}
