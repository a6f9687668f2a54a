package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONFormatterReindents(t *testing.T) {
	f := &JSONFormatter{}
	got := f.FormatBody(`{"b":2,"a":1}`, "application/json")
	assert.Equal(t, "{\n    \"a\": 1,\n    \"b\": 2\n}", got)
}

func TestJSONFormatterIdempotent(t *testing.T) {
	f := &JSONFormatter{}
	once := f.FormatBody(`{"b":[1,2],"a":{"c":null}}`, "application/json")
	assert.Equal(t, once, f.FormatBody(once, "application/json"))
}

func TestJSONFormatterPreservesNumbersAndUnicode(t *testing.T) {
	f := &JSONFormatter{}
	got := f.FormatBody(`{"pi":3.141592653589793,"q":"<päx>"}`, "application/json")
	assert.Contains(t, got, "3.141592653589793")
	assert.Contains(t, got, `"<päx>"`)
}

func TestJSONFormatterPassThrough(t *testing.T) {
	f := &JSONFormatter{}
	assert.Equal(t, "not json", f.FormatBody("not json", "application/json"))
	assert.Equal(t, `{"a":1} trailing`, f.FormatBody(`{"a":1} trailing`, "application/json"))
	assert.Equal(t, `{"a":1}`, f.FormatBody(`{"a":1}`, "text/plain"))
}

func TestXMLFormatterReindents(t *testing.T) {
	f := &XMLFormatter{}
	got := f.FormatBody("<root><child>x</child></root>", "application/xml")
	assert.Equal(t, "<root>\n    <child>x</child>\n</root>", got)
}

func TestXMLFormatterIdempotent(t *testing.T) {
	f := &XMLFormatter{}
	body := `<?xml version="1.0"?><a attr="v"><b>text</b><c/></a>`
	once := f.FormatBody(body, "application/xml")
	assert.Equal(t, once, f.FormatBody(once, "application/xml"))
}

func TestXMLFormatterKeepsDeclarationAndDoctype(t *testing.T) {
	f := &XMLFormatter{}
	body := `<?xml version="1.0" encoding="UTF-8"?><a><b/></a>`
	got := f.FormatBody(body, "text/xml")
	assert.True(t, len(got) > 0)
	assert.Contains(t, got, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
}

func TestXMLFormatterPassThrough(t *testing.T) {
	f := &XMLFormatter{}
	assert.Equal(t, "<a><b></a>", f.FormatBody("<a><b></a>", "application/xml"))
	assert.Equal(t, "<a/>", f.FormatBody("<a/>", "application/json"))
}

func TestHeadersFormatterSortKeepsFirstLine(t *testing.T) {
	f := &HeadersFormatter{}
	in := "HTTP/1.1 200 OK\r\nZulu: 1\r\nAlpha: 2"
	assert.Equal(t, "HTTP/1.1 200 OK\r\nAlpha: 2\r\nZulu: 1", f.FormatHeaders(in))
}

func TestHeadersFormatterStableForDuplicates(t *testing.T) {
	f := &HeadersFormatter{}
	in := "HTTP/1.1 200 OK\r\nSet-Cookie: first\r\nAccept: x\r\nSet-Cookie: second"
	assert.Equal(t,
		"HTTP/1.1 200 OK\r\nAccept: x\r\nSet-Cookie: first\r\nSet-Cookie: second",
		f.FormatHeaders(in))
}

func TestFormattingMIMEGate(t *testing.T) {
	chain := DefaultFormatting()
	body := `{"b":2,"a":1}`

	assert.NotEqual(t, body, chain.FormatBody(body, "application/json"))
	// Malformed MIME values bypass the whole chain.
	assert.Equal(t, body, chain.FormatBody(body, "json"))
	assert.Equal(t, body, chain.FormatBody(body, ""))
}

func TestFormattingVendorJSON(t *testing.T) {
	chain := DefaultFormatting()
	got := chain.FormatBody(`{"a":1}`, "application/vnd.api+json")
	assert.Equal(t, "{\n    \"a\": 1\n}", got)
}

type nopConverter struct{ mime string }

func (c nopConverter) Supports(mime string) bool        { return mime == c.mime }
func (c nopConverter) Convert(body []byte) (string, string) { return "text/plain", string(body) }

func TestGetConverter(t *testing.T) {
	reg := NewConversion(nopConverter{mime: "application/x-custom"})

	assert.NotNil(t, reg.GetConverter("application/x-custom"))
	assert.Nil(t, reg.GetConverter("application/other"))
	assert.Nil(t, reg.GetConverter("garbage"))
	assert.Nil(t, NewConversion().GetConverter("application/x-custom"))
}
