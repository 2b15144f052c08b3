package tools

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/filegate"
	"git.home.luguber.info/inful/docxbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/docxbuilder/internal/markdown"
)

type addParagraphArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
	Text     string `json:"text" arg:"required" desc:"Paragraph text"`
	Style    string `json:"style" desc:"Paragraph style name"`
}

type addHeadingArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
	Text     string `json:"text" arg:"required" desc:"Heading text"`
	Level    int    `json:"level" desc:"Heading level (1-9, 0 for Title)"`
}

type addPictureArgs struct {
	Filename  string   `json:"filename" arg:"required" desc:"Path to the document"`
	ImagePath string   `json:"image_path" arg:"required" desc:"PNG, JPEG or GIF file to insert"`
	Width     *float64 `json:"width" desc:"Width in inches; the native size is kept when omitted"`
}

type addTableArgs struct {
	Filename string     `json:"filename" arg:"required" desc:"Path to the document"`
	Rows     int        `json:"rows" arg:"required" desc:"Number of rows"`
	Cols     int        `json:"cols" arg:"required" desc:"Number of columns"`
	Data     [][]string `json:"data" desc:"Cell text, row by row"`
}

type deleteParagraphArgs struct {
	Filename       string `json:"filename" arg:"required" desc:"Path to the document"`
	ParagraphIndex int    `json:"paragraph_index" arg:"required" desc:"Zero-based body paragraph index"`
}

type searchReplaceArgs struct {
	Filename    string `json:"filename" arg:"required" desc:"Path to the document"`
	FindText    string `json:"find_text" arg:"required" desc:"Text to find"`
	ReplaceText string `json:"replace_text" arg:"required" desc:"Replacement text"`
}

type addMarkdownArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
	Markdown string `json:"markdown" arg:"required" desc:"Markdown source to append"`
}

func contentTools(env *Env) []Tool {
	return []Tool{
		Define("add_paragraph", "Add a paragraph to a Word document.",
			addParagraphArgs{}, env.addParagraph),
		Define("add_heading", "Add a heading to a Word document.",
			addHeadingArgs{Level: 1}, env.addHeading),
		Define("add_picture", "Add an image to a Word document.",
			addPictureArgs{}, env.addPicture),
		Define("add_table", "Add a table to a Word document.",
			addTableArgs{}, env.addTable),
		Define("add_page_break", "Add a page break to the document.",
			filenameArgs{}, env.addPageBreak),
		Define("delete_paragraph", "Delete a paragraph from a document.",
			deleteParagraphArgs{}, env.deleteParagraph),
		Define("search_and_replace", "Search for text and replace all occurrences.",
			searchReplaceArgs{}, env.searchAndReplace),
		Define("add_markdown", "Append Markdown content (headings, paragraphs, lists, code, quotes, tables) to a document. YAML frontmatter title, author, subject and keywords update the document metadata.",
			addMarkdownArgs{}, env.addMarkdown),
	}
}

func (e *Env) addParagraph(_ context.Context, a addParagraphArgs) (string, error) {
	return e.edit(a.Filename, "Failed to add paragraph", func(d *docx.Document, path string) (string, error) {
		if a.Style == "" {
			d.AddParagraph(a.Text)
			return fmt.Sprintf("Paragraph added to %s", path), nil
		}
		_, err := d.AddStyledParagraph(a.Text, a.Style)
		if errors.Is(err, docx.ErrStyleNotFound) {
			d.AddParagraph(a.Text)
			return fmt.Sprintf("Style '%s' not found, paragraph added with default style to %s", a.Style, path), nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Paragraph added to %s", path), nil
	}), nil
}

func (e *Env) addHeading(_ context.Context, a addHeadingArgs) (string, error) {
	return e.edit(a.Filename, "Failed to add heading", func(d *docx.Document, path string) (string, error) {
		if _, err := d.AddHeading(a.Text, a.Level); err != nil {
			return "", err
		}
		return fmt.Sprintf("Heading '%s' (level %d) added to %s", a.Text, a.Level, path), nil
	}), nil
}

func (e *Env) addPicture(_ context.Context, a addPictureArgs) (string, error) {
	img := e.resolve(a.ImagePath)
	return e.edit(a.Filename, "Failed to add picture", func(d *docx.Document, path string) (string, error) {
		if !filegate.Exists(img) {
			return "", abort{fmt.Sprintf("Image file not found: %s", img)}
		}
		width := 0.0
		if a.Width != nil {
			width = *a.Width
		}
		if _, err := d.AddPicture(img, width); err != nil {
			return "", err
		}
		return fmt.Sprintf("Picture %s added to %s", img, path), nil
	}), nil
}

func (e *Env) addTable(_ context.Context, a addTableArgs) (string, error) {
	return e.edit(a.Filename, "Failed to add table", func(d *docx.Document, path string) (string, error) {
		t, err := d.AddTable(a.Rows, a.Cols)
		if err != nil {
			return "", err
		}
		if err := fillTable(t, a.Data); err != nil {
			return "", err
		}
		return fmt.Sprintf("Table (%dx%d) added to %s", a.Rows, a.Cols, path), nil
	}), nil
}

// fillTable writes data into t; values beyond the table bounds are dropped.
func fillTable(t *docx.Table, data [][]string) error {
	for r, row := range data {
		if r >= t.RowCount() {
			break
		}
		for c, text := range row {
			if c >= len(t.RowCells(r)) {
				break
			}
			cell, err := t.Cell(r, c)
			if err != nil {
				return err
			}
			cell.SetText(text)
		}
	}
	return nil
}

func (e *Env) addPageBreak(_ context.Context, a filenameArgs) (string, error) {
	return e.edit(a.Filename, "Failed to add page break", func(d *docx.Document, path string) (string, error) {
		d.AddPageBreak()
		return fmt.Sprintf("Page break added to %s.", path), nil
	}), nil
}

func (e *Env) deleteParagraph(_ context.Context, a deleteParagraphArgs) (string, error) {
	return e.edit(a.Filename, "Failed to delete paragraph", func(d *docx.Document, _ string) (string, error) {
		if err := d.DeleteParagraph(a.ParagraphIndex); err != nil {
			if errors.Is(err, docx.ErrIndexOutOfRange) {
				return "", invalidParagraph(d)
			}
			return "", err
		}
		return fmt.Sprintf("Paragraph at index %d deleted successfully.", a.ParagraphIndex), nil
	}), nil
}

func (e *Env) searchAndReplace(_ context.Context, a searchReplaceArgs) (string, error) {
	return e.edit(a.Filename, "Failed to search and replace", func(d *docx.Document, _ string) (string, error) {
		count := 0
		for _, p := range d.AllParagraphs() {
			count += p.Replace(a.FindText, a.ReplaceText)
		}
		if count == 0 {
			return "", abort{fmt.Sprintf("No occurrences of '%s' found.", a.FindText)}
		}
		return fmt.Sprintf("Replaced %d occurrence(s) of '%s' with '%s'.", count, a.FindText, a.ReplaceText), nil
	}), nil
}

const (
	listIndentInches = 0.25
	thematicBreak    = "* * *"
)

func (e *Env) addMarkdown(_ context.Context, a addMarkdownArgs) (string, error) {
	return e.edit(a.Filename, "Failed to add markdown", func(d *docx.Document, path string) (string, error) {
		meta, body, err := frontmatter.Extract([]byte(a.Markdown))
		if err != nil {
			return "", err
		}
		if !meta.IsZero() {
			if err := d.UpdateCoreProperties(metadataUpdate(meta)); err != nil {
				return "", err
			}
		}
		blocks := markdown.Blocks(body, markdown.DefaultOptions())
		for _, b := range blocks {
			if err := appendBlock(d, b); err != nil {
				return "", err
			}
		}
		return fmt.Sprintf("Markdown (%d blocks) added to %s", len(blocks), path), nil
	}), nil
}

// metadataUpdate keeps existing properties for fields the frontmatter
// leaves empty.
func metadataUpdate(m frontmatter.Metadata) docx.CorePropertiesUpdate {
	var u docx.CorePropertiesUpdate
	set := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}
	u.Title = set(m.Title)
	u.Author = set(m.Author)
	u.Subject = set(m.Subject)
	u.Keywords = set(strings.Join(m.Keywords, ", "))
	return u
}

func appendBlock(d *docx.Document, b markdown.Block) error {
	switch b.Kind {
	case markdown.BlockHeading:
		p, err := d.AddHeading("", b.Level)
		if err != nil {
			return err
		}
		return writeSpans(d, p, b.Spans)
	case markdown.BlockListItem:
		p, err := d.AddStyledParagraph("", "List Paragraph")
		if err != nil {
			return err
		}
		p.SetIndent(float64(b.Level+2) * listIndentInches)
		bullet := "• "
		if b.Ordered {
			bullet = strconv.Itoa(b.Number) + ". "
		}
		p.AddRun(bullet)
		return writeSpans(d, p, b.Spans)
	case markdown.BlockQuote:
		p, err := d.AddStyledParagraph("", "Quote")
		if err != nil {
			return err
		}
		return writeSpans(d, p, b.Spans)
	case markdown.BlockCode:
		return addCodeBlock(d, b.Code, defaultCodeStyle)
	case markdown.BlockThematicBreak:
		d.AddParagraph(thematicBreak).SetAlignment(docx.AlignCenter)
		return nil
	case markdown.BlockTable:
		if len(b.Rows) == 0 {
			return nil
		}
		cols := 0
		for _, row := range b.Rows {
			cols = max(cols, len(row))
		}
		if cols == 0 {
			return nil
		}
		t, err := d.AddTable(len(b.Rows), cols)
		if err != nil {
			return err
		}
		if err := fillTable(t, b.Rows); err != nil {
			return err
		}
		t.SetHeaderRow(true)
		return nil
	default:
		return writeSpans(d, d.AddParagraph(""), b.Spans)
	}
}

// writeSpans appends formatted runs; linked spans become hyperlinks.
func writeSpans(d *docx.Document, p *docx.Paragraph, spans []markdown.Span) error {
	for _, s := range spans {
		if s.URL != "" {
			if err := d.AddHyperlink(p, s.Text, s.URL, ""); err != nil {
				return err
			}
			continue
		}
		r := p.AddRun(s.Text)
		if s.Bold {
			r.SetBold(true)
		}
		if s.Italic {
			r.SetItalic(true)
		}
		if s.Code {
			r.SetFont(codeFont)
		}
	}
	return nil
}
