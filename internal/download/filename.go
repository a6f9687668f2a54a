package download

import (
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FilenameFromContentDisposition extracts and sanitizes a filename
// from a Content-Disposition header: basename only, leading dots and
// surrounding whitespace stripped. Returns "" when nothing usable
// remains.
func FilenameFromContentDisposition(contentDisposition string) string {
	_, params, err := mime.ParseMediaType(contentDisposition)
	if err != nil {
		return ""
	}
	filename := params["filename"]
	if filename == "" {
		return ""
	}
	filename = filepath.Base(filename)
	filename = strings.TrimLeft(filename, ".")
	filename = strings.TrimSpace(filename)
	switch filename {
	case "", "/", "\\", "..":
		return ""
	}
	return filename
}

// FilenameFromURL derives a filename from the URL path, falling back
// to "index" for an empty path and guessing an extension from the
// content type when the path carries none.
func FilenameFromURL(u *url.URL, contentType string) string {
	fn := strings.TrimRight(u.Path, "/")
	if fn != "" {
		fn = path.Base(fn)
	}
	if fn == "" {
		fn = "index"
	}
	if !strings.Contains(fn, ".") && contentType != "" {
		fn += guessExtension(contentType)
	}
	return fn
}

func guessExtension(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	ct = strings.TrimSpace(ct)
	var ext string
	if ct == "text/plain" {
		// The mime table would answer with something obscure here.
		ext = ".txt"
	} else if exts, err := mime.ExtensionsByType(ct); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	if ext == ".htm" {
		ext = ".html"
	}
	return ext
}

// GetUniqueFilename disambiguates filename against the filesystem by
// appending -1, -2, ... until an unused name is found.
func GetUniqueFilename(filename string, exists func(string) bool) string {
	if exists == nil {
		exists = fileExists
	}
	for attempt := 0; ; attempt++ {
		name := filename
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d", filename, attempt)
		}
		if !exists(name) {
			return name
		}
	}
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
