package message

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResponse(header http.Header, body string) *http.Response {
	return &http.Response{
		Proto:  "HTTP/1.1",
		Status: "200 OK",
		Header: header,
		Body:   io.NopCloser(strings.NewReader(body)),
	}
}

func TestRequestHeaderText(t *testing.T) {
	req, err := http.NewRequest("GET", "http://example.org/resource?limit=5", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Trace", "abc")

	text := NewRequest(req, nil).HeaderText()
	lines := strings.Split(text, "\r\n")

	assert.Equal(t, "GET /resource?limit=5 HTTP/1.1", lines[0])
	assert.Contains(t, lines, "Host: example.org")
	assert.Contains(t, lines, "Accept: application/json")
	assert.Contains(t, lines, "X-Trace: abc")
	assert.False(t, strings.HasSuffix(text, "\r\n"))
}

func TestRequestHeaderTextEmptyPath(t *testing.T) {
	req, err := http.NewRequest("GET", "http://example.org", nil)
	require.NoError(t, err)

	text := NewRequest(req, nil).HeaderText()
	assert.True(t, strings.HasPrefix(text, "GET / HTTP/1.1"))
}

func TestRequestHeaderTextExplicitHostWins(t *testing.T) {
	req, err := http.NewRequest("GET", "http://example.org/x", nil)
	require.NoError(t, err)
	req.Header.Set("Host", "override.example")

	text := NewRequest(req, nil).HeaderText()
	assert.Contains(t, text, "Host: override.example")
	assert.NotContains(t, text, "Host: example.org")
}

func TestRequestBodyYieldedOnce(t *testing.T) {
	req, err := http.NewRequest("POST", "http://example.org/x", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	msg := NewRequest(req, []byte(`{"a":1}`))

	chunks := msg.BodyReader(16)
	chunk, err := chunks.Next()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(chunk))
	_, err = chunks.Next()
	assert.Equal(t, io.EOF, err)
}

func TestRequestBodyEmptyNotNil(t *testing.T) {
	req, err := http.NewRequest("GET", "http://example.org/x", nil)
	require.NoError(t, err)

	body, err := NewRequest(req, nil).Body()
	require.NoError(t, err)
	assert.NotNil(t, body)
	assert.Empty(t, body)
}

func TestResponseHeaderTextSortedNames(t *testing.T) {
	header := http.Header{}
	header.Set("Server", "unit")
	header.Set("Content-Type", "text/plain")
	header.Add("Set-Cookie", "a=1")
	header.Add("Set-Cookie", "b=2")

	text := NewResponse(newTestResponse(header, "")).HeaderText()
	lines := strings.Split(text, "\r\n")

	assert.Equal(t, "HTTP/1.1 200 OK", lines[0])
	assert.Equal(t, []string{
		"Content-Type: text/plain",
		"Server: unit",
		"Set-Cookie: a=1",
		"Set-Cookie: b=2",
	}, lines[1:])
}

func TestResponseBodyCached(t *testing.T) {
	msg := NewResponse(newTestResponse(http.Header{}, "payload"))

	first, err := msg.Body()
	require.NoError(t, err)
	second, err := msg.Body()
	require.NoError(t, err)

	assert.Equal(t, "payload", string(first))
	assert.Equal(t, "payload", string(second))
}

func TestResponseEncoding(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        string
	}{
		{"declared charset", "text/html; charset=ISO-8859-1", "iso-8859-1"},
		{"no charset", "text/html", "utf-8"},
		{"no content type", "", "utf-8"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			header := http.Header{}
			if tc.contentType != "" {
				header.Set("Content-Type", tc.contentType)
			}
			msg := NewResponse(newTestResponse(header, ""))
			assert.Equal(t, tc.want, msg.Encoding())
		})
	}
}

func TestResponseChunkReader(t *testing.T) {
	msg := NewResponse(newTestResponse(http.Header{}, "abcdefgh"))

	chunks := msg.BodyReader(3)
	var got []string
	for {
		chunk, err := chunks.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, string(chunk))
	}
	assert.Equal(t, "abcdefgh", strings.Join(got, ""))
}

func TestResponseLineReader(t *testing.T) {
	msg := NewResponse(newTestResponse(http.Header{}, "one\r\ntwo\nlast"))

	lines := msg.LineReader()

	line, term, err := lines.NextLine()
	require.NoError(t, err)
	assert.Equal(t, "one", string(line))
	assert.Equal(t, "\n", string(term))

	line, term, err = lines.NextLine()
	require.NoError(t, err)
	assert.Equal(t, "two", string(line))
	assert.Equal(t, "\n", string(term))

	// The final unterminated line still gets a terminator.
	line, term, err = lines.NextLine()
	require.NoError(t, err)
	assert.Equal(t, "last", string(line))
	assert.Equal(t, "\n", string(term))

	_, _, err = lines.NextLine()
	assert.Equal(t, io.EOF, err)
}

func TestResponseLineReaderEmptyBody(t *testing.T) {
	msg := NewResponse(newTestResponse(http.Header{}, ""))

	_, _, err := msg.LineReader().NextLine()
	assert.Equal(t, io.EOF, err)
}
