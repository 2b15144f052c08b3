package tools

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
)

const tocInstruction = `TOC \o "1-3" \h \z \u`

type tocArgs struct {
	Filename     string `json:"filename" arg:"required" desc:"Path to the document"`
	HeadingStyle string `json:"heading_style" desc:"Style for the list heading"`
}

type bookmarkArgs struct {
	Filename       string `json:"filename" arg:"required" desc:"Path to the document"`
	Name           string `json:"name" arg:"required" desc:"Bookmark name (letters, digits, underscores)"`
	ParagraphIndex *int   `json:"paragraph_index" desc:"Paragraph to bookmark"`
	Text           string `json:"text" desc:"Bookmark the first paragraph containing this text"`
}

type hyperlinkArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
	Text     string `json:"text" arg:"required" desc:"Link text"`
	URL      string `json:"url" desc:"External target"`
	Bookmark string `json:"bookmark" desc:"Internal bookmark target"`
}

func navigationTools(env *Env) []Tool {
	return []Tool{
		Define("insert_toc_placeholder", "Insert a table of contents field, filled in when the document is opened and fields are updated.",
			tocArgs{HeadingStyle: "TOC Heading"}, env.insertTOC),
		Define("bookmark", "Bookmark a paragraph, the last one unless an index or text is given.",
			bookmarkArgs{}, env.bookmark),
		Define("insert_hyperlink", "Append a paragraph holding a hyperlink to a URL or a bookmark.",
			hyperlinkArgs{}, env.insertHyperlink),
	}
}

func (e *Env) insertTOC(_ context.Context, a tocArgs) (string, error) {
	return e.edit(a.Filename, "Failed to insert TOC placeholder", func(d *docx.Document, path string) (string, error) {
		addFieldList(d, "Table of Contents", a.HeadingStyle, tocInstruction)
		return fmt.Sprintf("TOC placeholder inserted into %s", path), nil
	}), nil
}

// addFieldList appends a heading in style (when it resolves) followed by a
// paragraph holding a field with instr.
func addFieldList(d *docx.Document, heading, style, instr string) {
	h := d.AddParagraph(heading)
	_ = d.SetParagraphStyle(h, style)
	d.AddParagraph("").AddSimpleField(instr, "")
}

func (e *Env) bookmark(_ context.Context, a bookmarkArgs) (string, error) {
	return e.edit(a.Filename, "Failed to add bookmark", func(d *docx.Document, path string) (string, error) {
		ps := d.Paragraphs()
		var target *docx.Paragraph
		switch {
		case a.ParagraphIndex != nil:
			p, err := d.Paragraph(*a.ParagraphIndex)
			if err != nil {
				return "", invalidParagraph(d)
			}
			target = p
		case a.Text != "":
			for _, p := range ps {
				if strings.Contains(p.Text(), a.Text) {
					target = p
					break
				}
			}
			if target == nil {
				return "", abort{fmt.Sprintf("Text '%s' not found in %s", a.Text, path)}
			}
		default:
			if len(ps) == 0 {
				return "", abort{fmt.Sprintf("Document %s has no paragraphs to bookmark", path)}
			}
			target = ps[len(ps)-1]
		}
		if err := d.AddBookmark(target, a.Name); err != nil {
			return "", err
		}
		return fmt.Sprintf("Bookmark '%s' added to %s", a.Name, path), nil
	}), nil
}

func (e *Env) insertHyperlink(_ context.Context, a hyperlinkArgs) (string, error) {
	return e.edit(a.Filename, "Failed to insert hyperlink", func(d *docx.Document, path string) (string, error) {
		if (a.URL == "") == (a.Bookmark == "") {
			return "", abort{"Provide exactly one of url or bookmark"}
		}
		if a.Bookmark != "" && !slices.Contains(d.Bookmarks(), a.Bookmark) {
			return "", abort{fmt.Sprintf("Bookmark '%s' not found in %s", a.Bookmark, path)}
		}
		if err := d.AddHyperlink(d.AddParagraph(""), a.Text, a.URL, a.Bookmark); err != nil {
			return "", err
		}
		return fmt.Sprintf("Hyperlink '%s' added to %s", a.Text, path), nil
	}), nil
}
