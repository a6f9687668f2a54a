package processing

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

const jsonIndent = "    "

// JSONFormatter reindents JSON bodies with sorted keys and 4-space
// indentation, leaving non-ASCII characters unescaped. Bodies that do
// not parse pass through unchanged.
type JSONFormatter struct{}

func (f *JSONFormatter) Enabled() bool { return true }

func (f *JSONFormatter) FormatHeaders(headers string) string { return headers }

func (f *JSONFormatter) FormatBody(body, mime string) string {
	if !strings.Contains(mime, "json") {
		return body
	}
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber() // keep numeric literals byte-exact across reformatting
	var obj any
	if err := dec.Decode(&obj); err != nil {
		return body
	}
	if _, err := dec.Token(); err != io.EOF {
		// Trailing garbage, not a JSON document.
		return body
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)
	if err := enc.Encode(obj); err != nil {
		return body
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
