package tools

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
)

const (
	codeFont         = "Courier New"
	codeShading      = "D9D9D9"
	defaultCodeStyle = "CodeBlock"
)

type addCodeBlockArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
	CodeText string `json:"code_text" arg:"required" desc:"Code content; newlines start new lines"`
	Language string `json:"language" desc:"Language name (informational)"`
	Style    string `json:"style" desc:"Paragraph style for the code; created when missing"`
}

func codeTools(env *Env) []Tool {
	return []Tool{
		Define("add_code_block", "Insert a shaded, monospaced code block into a Word document.",
			addCodeBlockArgs{Style: defaultCodeStyle}, env.addCodeBlock),
	}
}

func (e *Env) addCodeBlock(_ context.Context, a addCodeBlockArgs) (string, error) {
	return e.edit(a.Filename, "Failed to add code block", func(d *docx.Document, path string) (string, error) {
		if err := addCodeBlock(d, a.CodeText, a.Style); err != nil {
			return "", err
		}
		return fmt.Sprintf("Code block added to %s", path), nil
	}), nil
}

// addCodeBlock appends a one-cell shaded table holding code in a
// monospaced font, creating the paragraph style when the document lacks it.
func addCodeBlock(d *docx.Document, code, style string) error {
	styles, err := d.Styles()
	if err != nil {
		return err
	}
	st, ok := styles.Find(style)
	if !ok {
		if st, err = styles.Add("paragraph", style, "Normal"); err != nil {
			return err
		}
		st.SetFont(codeFont)
	}
	t, err := d.AddTable(1, 1)
	if err != nil {
		return err
	}
	cell, err := t.Cell(0, 0)
	if err != nil {
		return err
	}
	cell.SetShading(codeShading)
	p := cell.SetText("")
	if err := d.SetParagraphStyle(p, st.ID()); err != nil {
		return err
	}
	if code != "" {
		p.AddRun(code).SetFont(codeFont)
	}
	return nil
}
