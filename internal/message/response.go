package message

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"sort"
	"strings"
)

// Response wraps *http.Response. The body is fetched from the wire on
// first Body() access and cached; BodyReader/LineReader iterate the
// live socket instead and are mutually exclusive with Body().
type Response struct {
	resp *http.Response
	body []byte
	read bool
}

func NewResponse(resp *http.Response) *Response {
	return &Response{resp: resp}
}

func (r *Response) HeaderText() string {
	lines := []string{r.resp.Proto + " " + r.resp.Status}
	names := make([]string, 0, len(r.resp.Header))
	for name := range r.resp.Header {
		names = append(names, name)
	}
	// net/http does not retain cross-name wire order, so names render
	// sorted; values within one name keep their receipt order.
	sort.Strings(names)
	for _, name := range names {
		for _, value := range r.resp.Header[name] {
			lines = append(lines, name+": "+value)
		}
	}
	return strings.Join(lines, "\r\n")
}

func (r *Response) Body() ([]byte, error) {
	if !r.read {
		data, err := io.ReadAll(r.resp.Body)
		if err != nil {
			return nil, err
		}
		r.body = data
		r.read = true
	}
	if r.body == nil {
		return []byte{}, nil
	}
	return r.body, nil
}

func (r *Response) Encoding() string {
	return charsetOf(r.ContentType(), "utf-8")
}

func (r *Response) ContentType() string {
	return r.resp.Header.Get("Content-Type")
}

func (r *Response) BodyReader(chunkSize int) ChunkReader {
	if chunkSize < 1 {
		chunkSize = 1
	}
	return &chunkReader{r: r.resp.Body, buf: make([]byte, chunkSize)}
}

func (r *Response) LineReader() LineReader {
	return &lineReader{br: bufio.NewReader(r.resp.Body)}
}

type chunkReader struct {
	r   io.Reader
	buf []byte
}

func (c *chunkReader) Next() ([]byte, error) {
	for {
		n, err := c.r.Read(c.buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, c.buf[:n])
			return chunk, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

var newline = []byte("\n")

// lineReader splits the body on LF, dropping any CR before it. Every
// line is paired with a "\n" terminator, including a final line that
// arrived without one; the streams are a display surface, not a byte
// preserving one (RawStream covers that).
type lineReader struct {
	br   *bufio.Reader
	done bool
}

func (l *lineReader) NextLine() ([]byte, []byte, error) {
	if l.done {
		return nil, nil, io.EOF
	}
	data, err := l.br.ReadBytes('\n')
	if len(data) == 0 {
		l.done = true
		if err == nil {
			err = io.EOF
		}
		return nil, nil, err
	}
	if err == io.EOF {
		l.done = true
	} else if err != nil {
		l.done = true
		return nil, nil, err
	}
	line := bytes.TrimSuffix(data, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line, newline, nil
}
