package processing

import (
	"sort"
	"strings"
)

// HeadersFormatter sorts header lines by name, keeping the leading
// status/request line pinned. The sort is stable so multi-value
// headers keep their relative order.
type HeadersFormatter struct{}

func (f *HeadersFormatter) Enabled() bool { return true }

func (f *HeadersFormatter) FormatBody(body, mime string) string { return body }

func (f *HeadersFormatter) FormatHeaders(headers string) string {
	lines := strings.Split(headers, "\r\n")
	if len(lines) < 2 {
		return headers
	}
	rest := lines[1:]
	sort.SliceStable(rest, func(i, j int) bool {
		return headerName(rest[i]) < headerName(rest[j])
	})
	return strings.Join(append(lines[:1], rest...), "\r\n")
}

func headerName(line string) string {
	name, _, _ := strings.Cut(line, ":")
	return name
}
