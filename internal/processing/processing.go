// Package processing holds the pluggable format-and-convert pipeline
// applied by the pretty output streams: an ordered chain of body and
// header formatters plus MIME-keyed converters that can turn binary
// payloads into something printable.
package processing

import "regexp"

var mimeRe = regexp.MustCompile(`^[^/]+/[^/]+$`)

func isValidMIME(mime string) bool {
	return mime != "" && mimeRe.MatchString(mime)
}

// Formatter is one link in the formatting chain. Implementations
// return their input unchanged for the transforms they do not care
// about, and for content they fail to parse.
type Formatter interface {
	Enabled() bool
	FormatHeaders(headers string) string
	FormatBody(body, mime string) string
}

// Formatting folds the enabled formatters in order.
type Formatting struct {
	formatters []Formatter
}

func NewFormatting(formatters ...Formatter) *Formatting {
	f := &Formatting{}
	for _, formatter := range formatters {
		if formatter.Enabled() {
			f.formatters = append(f.formatters, formatter)
		}
	}
	return f
}

// DefaultFormatting is the built-in chain: header sorting, JSON and
// XML reindentation.
func DefaultFormatting() *Formatting {
	return NewFormatting(
		&HeadersFormatter{},
		&JSONFormatter{},
		&XMLFormatter{},
	)
}

func (f *Formatting) FormatHeaders(headers string) string {
	for _, formatter := range f.formatters {
		headers = formatter.FormatHeaders(headers)
	}
	return headers
}

// FormatBody applies the chain only for syntactically valid
// type/subtype MIME values; anything else passes through untouched.
func (f *Formatting) FormatBody(content, mime string) string {
	if !isValidMIME(mime) {
		return content
	}
	for _, formatter := range f.formatters {
		content = formatter.FormatBody(content, mime)
	}
	return content
}

// Converter turns a binary body into a textual representation with a
// possibly different effective MIME type.
type Converter interface {
	Supports(mime string) bool
	Convert(body []byte) (newMime string, text string)
}

// Conversion is the statically assembled converter registry.
type Conversion struct {
	converters []Converter
}

func NewConversion(converters ...Converter) *Conversion {
	return &Conversion{converters: converters}
}

// GetConverter returns the first converter claiming the MIME type,
// or nil when the type is malformed or unclaimed.
func (c *Conversion) GetConverter(mime string) Converter {
	if c == nil || !isValidMIME(mime) {
		return nil
	}
	for _, converter := range c.converters {
		if converter.Supports(mime) {
			return converter
		}
	}
	return nil
}
