// Package frontmatter separates a YAML header from Markdown source and
// maps its fields to document metadata.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the source started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Metadata is the subset of frontmatter that maps onto core document
// properties.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
}

// IsZero reports whether no field was set.
func (m Metadata) IsZero() bool {
	return m.Title == "" && m.Author == "" && m.Subject == "" && len(m.Keywords) == 0
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the source does not start with a delimiter line, had is false and
// body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := newline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line has no trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			return content[start : len(content)-len("---")], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Extract splits content and maps the recognised fields: title, author
// (or authors), subject (or description) and keywords (or tags). Lists
// of authors are joined with ", "; a keywords string is split on commas.
func Extract(content []byte) (Metadata, []byte, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return Metadata{}, nil, err
	}
	if !had {
		return Metadata{}, body, nil
	}
	fields, err := ParseYAML(fm)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	m := Metadata{
		Title:    scalar(fields["title"]),
		Author:   strings.Join(list(first(fields, "author", "authors")), ", "),
		Subject:  scalar(first(fields, "subject", "description")),
		Keywords: list(first(fields, "keywords", "tags")),
	}
	if kw := first(fields, "keywords", "tags"); kw != nil {
		if s, ok := kw.(string); ok {
			m.Keywords = splitComma(s)
		}
	}
	return m, body, nil
}

func first(fields map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func list(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := scalar(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := scalar(t); s != "" {
			return []string{s}
		}
		return nil
	}
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
