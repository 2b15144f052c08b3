package tools

import (
	"context"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/foundation/normalization"
)

type noteArgs struct {
	Filename       string `json:"filename" arg:"required" desc:"Path to the document"`
	ParagraphIndex int    `json:"paragraph_index" arg:"required" desc:"Paragraph that receives the reference mark"`
	Text           string `json:"footnote_text" arg:"required" desc:"Note text"`
}

type endnoteArgs struct {
	Filename       string `json:"filename" arg:"required" desc:"Path to the document"`
	ParagraphIndex int    `json:"paragraph_index" arg:"required" desc:"Paragraph that receives the reference mark"`
	Text           string `json:"endnote_text" arg:"required" desc:"Note text"`
}

type footnoteStyleArgs struct {
	Filename        string   `json:"filename" arg:"required" desc:"Path to the document"`
	NumberingFormat string   `json:"numbering_format" desc:"1, 2, 3 | i, ii, iii | I, II, III | a, b, c | A, B, C | symbols"`
	StartNumber     int      `json:"start_number" desc:"First footnote number"`
	FontName        string   `json:"font_name" desc:"Footnote text font"`
	FontSize        *float64 `json:"font_size" desc:"Footnote text size in points"`
}

func footnoteTools(env *Env) []Tool {
	return []Tool{
		Define("add_footnote_to_document", "Add a footnote to a specific paragraph.",
			noteArgs{}, env.addFootnote),
		Define("add_endnote_to_document", "Add an endnote to a specific paragraph.",
			endnoteArgs{}, env.addEndnote),
		Define("convert_footnotes_to_endnotes_in_document", "Convert all footnotes to endnotes.",
			filenameArgs{}, env.convertFootnotes),
		Define("customize_footnote_style", "Customize footnote numbering and text formatting.",
			footnoteStyleArgs{NumberingFormat: "1, 2, 3", StartNumber: 1}, env.customizeFootnoteStyle),
	}
}

func (e *Env) addFootnote(_ context.Context, a noteArgs) (string, error) {
	return e.addNote(docx.Footnote, a.Filename, a.ParagraphIndex, a.Text)
}

func (e *Env) addEndnote(_ context.Context, a endnoteArgs) (string, error) {
	return e.addNote(docx.Endnote, a.Filename, a.ParagraphIndex, a.Text)
}

func (e *Env) addNote(kind docx.NoteKind, filename string, index int, text string) (string, error) {
	label := strings.ToUpper(string(kind[:1])) + string(kind[1:])
	return e.edit(filename, "Failed to add "+string(kind), func(d *docx.Document, path string) (string, error) {
		p, err := d.Paragraph(index)
		if err != nil {
			return "", invalidParagraph(d)
		}
		if _, err := d.AddNote(kind, p, text); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s added to paragraph %d in %s", label, index, path), nil
	}), nil
}

func (e *Env) convertFootnotes(_ context.Context, a filenameArgs) (string, error) {
	return e.edit(a.Filename, "Failed to convert footnotes", func(d *docx.Document, path string) (string, error) {
		n, err := d.ConvertFootnotesToEndnotes()
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", abort{fmt.Sprintf("No footnotes found in %s", path)}
		}
		return fmt.Sprintf("Converted %d footnote(s) to endnotes in %s", n, path), nil
	}), nil
}

// noteFormats maps numbering samples onto w:numFmt values. Samples are
// case-sensitive since "i" and "I" differ.
var noteFormats = map[string]string{
	"1, 2, 3":    "decimal",
	"i, ii, iii": "lowerRoman",
	"I, II, III": "upperRoman",
	"a, b, c":    "lowerLetter",
	"A, B, C":    "upperLetter",
	"symbols":    "chicago",
}

var noteFormatNames = normalization.NewNormalizer("numbering format", map[string]string{
	"decimal":     "decimal",
	"lowerroman":  "lowerRoman",
	"upperroman":  "upperRoman",
	"lowerletter": "lowerLetter",
	"upperletter": "upperLetter",
	"chicago":     "chicago",
}, "decimal")

func noteNumFmt(raw string) (string, bool) {
	if v, ok := noteFormats[strings.TrimSpace(raw)]; ok {
		return v, true
	}
	if noteFormatNames.Known(raw) {
		return noteFormatNames.Normalize(raw), true
	}
	return "", false
}

func (e *Env) customizeFootnoteStyle(_ context.Context, a footnoteStyleArgs) (string, error) {
	return e.edit(a.Filename, "Failed to customize footnote style", func(d *docx.Document, path string) (string, error) {
		numFmt := ""
		if a.NumberingFormat != "" {
			v, ok := noteNumFmt(a.NumberingFormat)
			if !ok {
				return "", abort{fmt.Sprintf("Invalid numbering_format: %s", a.NumberingFormat)}
			}
			numFmt = v
		}
		d.SetNoteNumbering(docx.Footnote, numFmt, a.StartNumber)

		if a.FontName != "" || a.FontSize != nil {
			styles, err := d.Styles()
			if err != nil {
				return "", err
			}
			st, ok := styles.Ensure("footnote text")
			if !ok {
				return "", fmt.Errorf("%w: footnote text", docx.ErrStyleNotFound)
			}
			if a.FontName != "" {
				st.SetFont(a.FontName)
			}
			if a.FontSize != nil {
				st.SetFontSize(*a.FontSize)
			}
		}
		return fmt.Sprintf("Footnote style and numbering customized in %s", path), nil
	}), nil
}
