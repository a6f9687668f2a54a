package message

import (
	"io"
	"net/http"
	"sort"
	"strings"
)

// Request wraps an outgoing *http.Request plus its already
// materialized body. A request body is never a stream from the wire,
// so the readers yield it in one piece.
type Request struct {
	req  *http.Request
	body []byte
}

func NewRequest(req *http.Request, body []byte) *Request {
	return &Request{req: req, body: body}
}

func (r *Request) HeaderText() string {
	u := r.req.URL
	path := u.Path
	if path == "" {
		path = "/"
	}
	query := ""
	if u.RawQuery != "" {
		query = "?" + u.RawQuery
	}
	requestLine := r.req.Method + " " + path + query + " HTTP/1.1"

	headers := make(http.Header, len(r.req.Header))
	for name, values := range r.req.Header {
		headers[name] = values
	}
	if headers.Get("Host") == "" {
		host := r.req.Host
		if host == "" {
			host = u.Host
		}
		// Strip any userinfo from the authority.
		if at := strings.LastIndex(host, "@"); at != -1 {
			host = host[at+1:]
		}
		headers.Set("Host", host)
	}

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := []string{requestLine}
	for _, name := range names {
		for _, value := range headers[name] {
			lines = append(lines, name+": "+value)
		}
	}
	return strings.Join(lines, "\r\n")
}

func (r *Request) Body() ([]byte, error) {
	if r.body == nil {
		return []byte{}, nil
	}
	return r.body, nil
}

// Encoding is fixed: request bodies assembled by this tool are UTF-8.
func (r *Request) Encoding() string {
	return "utf-8"
}

func (r *Request) ContentType() string {
	return r.req.Header.Get("Content-Type")
}

func (r *Request) BodyReader(chunkSize int) ChunkReader {
	return &onceChunk{chunk: r.body}
}

func (r *Request) LineReader() LineReader {
	return &onceLine{line: r.body}
}

type onceChunk struct {
	chunk []byte
	done  bool
}

func (o *onceChunk) Next() ([]byte, error) {
	if o.done {
		return nil, io.EOF
	}
	o.done = true
	return o.chunk, nil
}

type onceLine struct {
	line []byte
	done bool
}

func (o *onceLine) NextLine() ([]byte, []byte, error) {
	if o.done {
		return nil, nil, io.EOF
	}
	o.done = true
	return o.line, []byte{}, nil
}
