package stream

import (
	"github.com/karthik-H/httpcat/internal/message"
	"github.com/karthik-H/httpcat/internal/processing"
	"github.com/karthik-H/httpcat/internal/term"
)

// PrintOptions selects which parts of the exchange are emitted.
type PrintOptions struct {
	RequestHeaders  bool
	RequestBody     bool
	ResponseHeaders bool
	ResponseBody    bool
}

// BuildConfig selects the stream variant and its processing pipeline.
type BuildConfig struct {
	Print    PrintOptions
	Prettify bool
	// Stream requests line-buffered live output instead of the
	// default block/full buffering.
	Stream     bool
	Formatting *processing.Formatting
	Conversion *processing.Conversion
}

// Build assembles the ordered chunk sources for one request/response
// exchange: request sub-stream, a blank-line separator when a request
// body is followed by response output, response sub-stream, and a
// trailing blank line for interactive terminals only.
func Build(cfg BuildConfig, env *term.Environment, req, resp message.Message) []Chunker {
	wantReq := cfg.Print.RequestHeaders || cfg.Print.RequestBody
	wantResp := cfg.Print.ResponseHeaders || cfg.Print.ResponseBody

	var parts []Chunker
	if wantReq && req != nil {
		parts = append(parts, pick(cfg, env, req, Settings{
			WithHeaders: cfg.Print.RequestHeaders,
			WithBody:    cfg.Print.RequestBody,
		}))
	}
	if cfg.Print.RequestBody && wantResp {
		parts = append(parts, &literal{chunks: [][]byte{[]byte("\n\n")}})
	}
	if wantResp && resp != nil {
		parts = append(parts, pick(cfg, env, resp, Settings{
			WithHeaders: cfg.Print.ResponseHeaders,
			WithBody:    cfg.Print.ResponseBody,
		}))
	}
	if env.StdoutIsTTY && cfg.Print.ResponseBody {
		// Terminal readability only; never in piped output.
		parts = append(parts, &literal{chunks: [][]byte{[]byte("\n\n")}})
	}
	return parts
}

// pick applies the stream selection policy for one message.
func pick(cfg BuildConfig, env *term.Environment, msg message.Message, settings Settings) *Stream {
	switch {
	case !env.StdoutIsTTY && !cfg.Prettify:
		size := RawChunkSize
		if cfg.Stream {
			size = RawChunkSizeByLine
		}
		return NewRaw(msg, settings, size)
	case cfg.Prettify:
		formatting := cfg.Formatting
		if formatting == nil {
			formatting = processing.DefaultFormatting()
		}
		if cfg.Stream {
			return NewPretty(msg, settings, outputEncoding(env, msg), formatting, cfg.Conversion)
		}
		return NewBufferedPretty(msg, settings, outputEncoding(env, msg), formatting, cfg.Conversion)
	default:
		return NewEncoded(msg, settings, outputEncoding(env, msg))
	}
}

// outputEncoding picks the terminal's encoding for interactive
// output, otherwise preserves the message's own encoding.
func outputEncoding(env *term.Environment, msg message.Message) string {
	if env.StdoutIsTTY {
		return env.StdoutEncoding
	}
	return msg.Encoding()
}
