package processing

import (
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"strings"
)

var (
	declarationRe = regexp.MustCompile(`(?i)^<\?xml[^\n]+?\?>`)
	doctypeRe     = regexp.MustCompile(`(?i)^<!DOCTYPE[^\n]+?>`)
)

const xmlIndent = "    "

// XMLFormatter reindents well-formed XML bodies with 4-space
// indentation. The parser does not retain a leading declaration or
// DOCTYPE, so whichever was present is re-prepended verbatim.
// Malformed bodies pass through unchanged.
type XMLFormatter struct{}

func (f *XMLFormatter) Enabled() bool { return true }

func (f *XMLFormatter) FormatHeaders(headers string) string { return headers }

func (f *XMLFormatter) FormatBody(body, mime string) string {
	if !strings.Contains(mime, "xml") {
		return body
	}
	formatted, err := reindentXML(body)
	if err != nil {
		return body
	}
	if doctype := doctypeRe.FindString(body); doctype != "" {
		formatted = doctype + "\n" + formatted
	}
	if declaration := declarationRe.FindString(body); declaration != "" {
		formatted = declaration + "\n" + formatted
	}
	return formatted
}

func reindentXML(body string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(body))
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", xmlIndent)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.ProcInst, xml.Directive:
			// Declaration and DOCTYPE are restored from the original.
			continue
		case xml.CharData:
			trimmed := bytes.TrimSpace(t)
			if len(trimmed) == 0 {
				continue
			}
			if err := enc.EncodeToken(xml.CharData(trimmed)); err != nil {
				return "", err
			}
		default:
			if err := enc.EncodeToken(tok); err != nil {
				return "", err
			}
		}
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
