package tools

import (
	"context"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/foundation/normalization"
)

type createStyleArgs struct {
	Filename  string   `json:"filename" arg:"required" desc:"Path to the document"`
	StyleName string   `json:"style_name" arg:"required" desc:"Name of the new style"`
	Bold      *bool    `json:"bold" desc:"Bold text"`
	Italic    *bool    `json:"italic" desc:"Italic text"`
	FontSize  *float64 `json:"font_size" desc:"Font size in points"`
	FontName  string   `json:"font_name" desc:"Font family"`
	Color     string   `json:"color" desc:"Text color as RRGGBB"`
	BaseStyle string   `json:"base_style" desc:"Style to inherit from"`
}

type formatTextArgs struct {
	Filename       string   `json:"filename" arg:"required" desc:"Path to the document"`
	ParagraphIndex int      `json:"paragraph_index" arg:"required" desc:"Zero-based body paragraph index"`
	StartPos       int      `json:"start_pos" arg:"required" desc:"First character to format"`
	EndPos         int      `json:"end_pos" arg:"required" desc:"Character after the last one to format"`
	Bold           *bool    `json:"bold" desc:"Bold text"`
	Italic         *bool    `json:"italic" desc:"Italic text"`
	Underline      *bool    `json:"underline" desc:"Single underline"`
	Color          string   `json:"color" desc:"Text color as RRGGBB"`
	FontSize       *float64 `json:"font_size" desc:"Font size in points"`
	FontName       string   `json:"font_name" desc:"Font family"`
}

type formatTableArgs struct {
	Filename     string     `json:"filename" arg:"required" desc:"Path to the document"`
	TableIndex   int        `json:"table_index" arg:"required" desc:"Zero-based table index"`
	HasHeaderRow *bool      `json:"has_header_row" desc:"Mark the first row as a bold, repeating header"`
	BorderStyle  string     `json:"border_style" desc:"single, double, dashed, dotted, thick or none"`
	Shading      [][]string `json:"shading" desc:"Cell fill colors as RRGGBB, row by row; empty strings are skipped"`
}

func formatTools(env *Env) []Tool {
	return []Tool{
		Define("create_custom_style", "Create a custom paragraph style in a document.",
			createStyleArgs{}, env.createCustomStyle),
		Define("format_text", "Format a range of characters within a paragraph.",
			formatTextArgs{}, env.formatText),
		Define("format_table", "Format a table with borders, shading and a header row.",
			formatTableArgs{}, env.formatTable),
	}
}

func (e *Env) createCustomStyle(_ context.Context, a createStyleArgs) (string, error) {
	return e.edit(a.Filename, "Failed to create style", func(d *docx.Document, _ string) (string, error) {
		styles, err := d.Styles()
		if err != nil {
			return "", err
		}
		st, err := styles.Add("paragraph", a.StyleName, a.BaseStyle)
		if err != nil {
			return "", err
		}
		if a.Bold != nil {
			st.SetBold(*a.Bold)
		}
		if a.Italic != nil {
			st.SetItalic(*a.Italic)
		}
		if a.FontSize != nil {
			st.SetFontSize(*a.FontSize)
		}
		if a.FontName != "" {
			st.SetFont(a.FontName)
		}
		if a.Color != "" {
			st.SetColor(a.Color)
		}
		return fmt.Sprintf("Style '%s' created successfully.", a.StyleName), nil
	}), nil
}

func (e *Env) formatText(_ context.Context, a formatTextArgs) (string, error) {
	return e.edit(a.Filename, "Failed to format text", func(d *docx.Document, _ string) (string, error) {
		p, err := d.Paragraph(a.ParagraphIndex)
		if err != nil {
			return "", invalidParagraph(d)
		}
		text := []rune(p.Text())
		runs, err := p.RunsInRange(a.StartPos, a.EndPos)
		if err != nil {
			return "", abort{fmt.Sprintf("Invalid text positions. Paragraph has %d characters.", len(text))}
		}
		for _, r := range runs {
			if a.Bold != nil {
				r.SetBold(*a.Bold)
			}
			if a.Italic != nil {
				r.SetItalic(*a.Italic)
			}
			if a.Underline != nil {
				r.SetUnderline(*a.Underline)
			}
			if a.Color != "" {
				r.SetColor(a.Color)
			}
			if a.FontSize != nil {
				r.SetSize(*a.FontSize)
			}
			if a.FontName != "" {
				r.SetFont(a.FontName)
			}
		}
		return fmt.Sprintf("Text '%s' formatted successfully in paragraph %d.",
			string(text[a.StartPos:a.EndPos]), a.ParagraphIndex), nil
	}), nil
}

type border struct {
	val  string
	size int
}

var borderStyles = normalization.NewNormalizer("border style", map[string]border{
	"single": {"single", 4},
	"double": {"double", 4},
	"dashed": {"dashed", 4},
	"dotted": {"dotted", 4},
	"thick":  {"thick", 12},
	"none":   {"none", 0},
}, border{"single", 4})

func (e *Env) formatTable(_ context.Context, a formatTableArgs) (string, error) {
	return e.edit(a.Filename, "Failed to format table", func(d *docx.Document, _ string) (string, error) {
		t, err := d.Table(a.TableIndex)
		if err != nil {
			return "", invalidTable(d)
		}
		if a.BorderStyle != "" {
			b, err := borderStyles.Parse(a.BorderStyle)
			if err != nil {
				return "", abort{fmt.Sprintf("Invalid border_style: %s. Must be one of %s",
					a.BorderStyle, strings.Join(borderStyles.ValidKeys(), ", "))}
			}
			t.SetBorders(b.val, b.size)
		}
		if a.HasHeaderRow != nil {
			t.SetHeaderRow(*a.HasHeaderRow)
		}
		for r, row := range a.Shading {
			for c, fill := range row {
				if fill == "" {
					continue
				}
				if cell, err := t.Cell(r, c); err == nil {
					cell.SetShading(fill)
				}
			}
		}
		return fmt.Sprintf("Table at index %d formatted successfully.", a.TableIndex), nil
	}), nil
}
