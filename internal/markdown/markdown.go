// Package markdown turns Markdown source into a flat list of document
// blocks that can be written into a word-processing document.
package markdown

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Options controls how Markdown is parsed.
type Options struct {
	// GFM enables GitHub Flavored Markdown tables and strikethrough.
	GFM bool
}

// DefaultOptions enables GFM.
func DefaultOptions() Options { return Options{GFM: true} }

func newMarkdown(opts Options) goldmark.Markdown {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.Table, extension.Strikethrough)
	}
	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

// ParseBody parses a Markdown body into a Goldmark AST.
func ParseBody(body []byte, opts Options) gmast.Node {
	return newMarkdown(opts).Parser().Parse(text.NewReader(body))
}
