package stream

import (
	"github.com/karthik-H/httpcat/internal/message"
)

// Raw stream chunk size presets: a large block for throughput and a
// one-byte size for strict line-by-line emission when live streaming
// is required.
const (
	RawChunkSize       = 1024 * 100
	RawChunkSizeByLine = 1
)

// NewRaw builds a stream that emits the message byte-for-byte with no
// decoding: UTF-8 header text, then the body chunks exactly as read.
func NewRaw(msg message.Message, settings Settings, chunkSize int) *Stream {
	return newStream(&rawSource{msg: msg, chunkSize: chunkSize}, settings)
}

type rawSource struct {
	msg       message.Message
	chunkSize int
	chunks    message.ChunkReader
}

func (r *rawSource) headerBytes() ([]byte, error) {
	return []byte(r.msg.HeaderText()), nil
}

func (r *rawSource) nextBodyChunk() ([]byte, error) {
	if r.chunks == nil {
		r.chunks = r.msg.BodyReader(r.chunkSize)
	}
	return r.chunks.Next()
}
