package download

import (
	"fmt"
	"regexp"
	"strconv"
)

var contentRangeRe = regexp.MustCompile(`^bytes (\d+)-(\d+)/(\*|\d+)$`)

// ContentRangeError reports a missing, malformed, or mismatching
// Content-Range response header. It is fatal to the download attempt.
type ContentRangeError struct {
	Reason string
}

func (e *ContentRangeError) Error() string {
	return e.Reason
}

// ParseContentRange validates a Content-Range header against the
// resume offset this client requested and returns the effective total
// size (last byte position + 1).
func ParseContentRange(contentRange string, resumedFrom int64) (int64, error) {
	if contentRange == "" {
		return 0, &ContentRangeError{"Missing Content-Range"}
	}
	m := contentRangeRe.FindStringSubmatch(contentRange)
	if m == nil {
		return 0, &ContentRangeError{fmt.Sprintf("Invalid Content-Range format %q", contentRange)}
	}
	first, errFirst := strconv.ParseInt(m[1], 10, 64)
	last, errLast := strconv.ParseInt(m[2], 10, 64)
	if errFirst != nil || errLast != nil {
		return 0, &ContentRangeError{fmt.Sprintf("Invalid Content-Range format %q", contentRange)}
	}
	total := int64(-1)
	if m[3] != "*" {
		var err error
		if total, err = strconv.ParseInt(m[3], 10, 64); err != nil {
			return 0, &ContentRangeError{fmt.Sprintf("Invalid Content-Range format %q", contentRange)}
		}
	}

	// A range whose last-byte-pos precedes first-byte-pos, or is not
	// strictly less than the instance length, is invalid per RFC 7233
	// and must be rejected.
	if first > last || (total >= 0 && last >= total) {
		return 0, &ContentRangeError{fmt.Sprintf("Invalid Content-Range returned: %q", contentRange)}
	}

	if first != resumedFrom || (total >= 0 && last+1 != total) {
		return 0, &ContentRangeError{fmt.Sprintf(
			"Unexpected Content-Range returned (%q) for the requested Range (\"bytes=%d-\")",
			contentRange, resumedFrom)}
	}

	return last + 1, nil
}
