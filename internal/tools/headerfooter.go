package tools

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/foundation/normalization"
)

const pageNumberPlaceholder = "{pagenum}"

type headerFooterArgs struct {
	Filename  string   `json:"filename" arg:"required" desc:"Path to the document"`
	Text      string   `json:"text" arg:"required" desc:"Text; {pagenum} marks where the page number goes"`
	Alignment string   `json:"alignment" desc:"left, center or right"`
	Fields    []string `json:"fields" desc:"Dynamic fields to expand, e.g. [\"pagenum\"]"`
}

var alignments = normalization.NewNormalizer("alignment", map[string]docx.Alignment{
	"left":   docx.AlignLeft,
	"center": docx.AlignCenter,
	"right":  docx.AlignRight,
}, docx.AlignCenter)

func headerFooterTools(env *Env) []Tool {
	return []Tool{
		Define("insert_header", "Insert a header into every section, optionally with a page number.",
			headerFooterArgs{Alignment: "center"}, env.insertHeader),
		Define("insert_footer", "Insert a footer into every section, optionally with a page number.",
			headerFooterArgs{Alignment: "center"}, env.insertFooter),
	}
}

func (e *Env) insertHeader(_ context.Context, a headerFooterArgs) (string, error) {
	return e.edit(a.Filename, "Failed to insert header", func(d *docx.Document, path string) (string, error) {
		if err := setHeaderFooter(d, docx.KindHeader, a); err != nil {
			return "", err
		}
		return fmt.Sprintf("Header inserted into %s", path), nil
	}), nil
}

func (e *Env) insertFooter(_ context.Context, a headerFooterArgs) (string, error) {
	return e.edit(a.Filename, "Failed to insert footer", func(d *docx.Document, path string) (string, error) {
		if err := setHeaderFooter(d, docx.KindFooter, a); err != nil {
			return "", err
		}
		return fmt.Sprintf("Footer inserted into %s", path), nil
	}), nil
}

// setHeaderFooter replaces the first paragraph of every section's header or
// footer. With "pagenum" among the fields, each {pagenum} becomes a PAGE
// field.
func setHeaderFooter(d *docx.Document, kind docx.HeaderFooterKind, a headerFooterArgs) error {
	parts := []string{a.Text}
	pageNumbers := slices.Contains(a.Fields, "pagenum")
	if pageNumbers {
		parts = strings.Split(a.Text, pageNumberPlaceholder)
	}
	for _, s := range d.Sections() {
		hf, err := d.HeaderFooter(s, kind)
		if err != nil {
			return err
		}
		p := hf.FirstParagraph()
		p.Clear()
		p.SetAlignment(alignments.Normalize(a.Alignment))
		for i, part := range parts {
			if part != "" {
				p.AddRun(part)
			}
			if pageNumbers && i < len(parts)-1 {
				p.AddSimpleField("PAGE", "1")
			}
		}
	}
	return nil
}
