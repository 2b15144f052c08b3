package tools

import (
	"context"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
)

type captionArgs struct {
	Filename   string `json:"filename" arg:"required" desc:"Path to the document"`
	ObjectType string `json:"object_type" arg:"required" desc:"Figure or Table"`
	Text       string `json:"text" arg:"required" desc:"Caption description"`
	Style      string `json:"style" desc:"Caption paragraph style"`
}

func captionTools(env *Env) []Tool {
	return []Tool{
		Define("insert_caption", "Insert an auto-numbered caption for a figure or table.",
			captionArgs{Style: "Caption"}, env.insertCaption),
		Define("generate_list_of_figures", "Insert a List of Figures field built from figure captions.",
			tocArgs{HeadingStyle: "TOC Heading"}, env.listOfFigures),
		Define("generate_list_of_tables", "Insert a List of Tables field built from table captions.",
			tocArgs{HeadingStyle: "TOC Heading"}, env.listOfTables),
	}
}

// insertCaption numbers the caption after the paragraphs already starting
// with the object type.
func (e *Env) insertCaption(_ context.Context, a captionArgs) (string, error) {
	return e.edit(a.Filename, "Failed to insert caption", func(d *docx.Document, _ string) (string, error) {
		count := 0
		for _, p := range d.Paragraphs() {
			if strings.HasPrefix(p.Text(), a.ObjectType) {
				count++
			}
		}
		caption := fmt.Sprintf("%s %d: %s", a.ObjectType, count+1, a.Text)
		p := d.AddParagraph(caption)
		_ = d.SetParagraphStyle(p, a.Style)
		return fmt.Sprintf("Caption added: %s", caption), nil
	}), nil
}

func (e *Env) listOfFigures(_ context.Context, a tocArgs) (string, error) {
	return e.captionList(a, "Figures", "Figure")
}

func (e *Env) listOfTables(_ context.Context, a tocArgs) (string, error) {
	return e.captionList(a, "Tables", "Table")
}

func (e *Env) captionList(a tocArgs, plural, label string) (string, error) {
	title := "List of " + plural
	return e.edit(a.Filename, "Failed to insert "+title, func(d *docx.Document, path string) (string, error) {
		d.AddPageBreak()
		addFieldList(d, title, a.HeadingStyle, fmt.Sprintf(`TOC \h \z \c "%s"`, label))
		return fmt.Sprintf("%s placeholder inserted into %s", title, path), nil
	}), nil
}
