package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
)

type newChapterArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
	Title    string `json:"title" arg:"required" desc:"Chapter title"`
	Style    string `json:"style" desc:"Style used for chapter headings"`
}

func chapterTools(env *Env) []Tool {
	return []Tool{
		Define("new_chapter", "Start a numbered chapter on a new page.",
			newChapterArgs{Style: "Heading 1"}, env.newChapter),
	}
}

// newChapter numbers the chapter by counting existing paragraphs in the
// chapter style whose text starts with "chapter".
func (e *Env) newChapter(_ context.Context, a newChapterArgs) (string, error) {
	return e.edit(a.Filename, "Failed to add new chapter", func(d *docx.Document, path string) (string, error) {
		count := 0
		for _, p := range d.Paragraphs() {
			if d.ParagraphStyleName(p) == a.Style && strings.HasPrefix(strings.ToLower(p.Text()), "chapter") {
				count++
			}
		}
		heading := fmt.Sprintf("Chapter %d: %s", count+1, a.Title)
		d.AddSection(docx.SectionNextPage)
		if err := addChapterHeading(d, heading, a.Style); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s added to %s", heading, path), nil
	}), nil
}

// addChapterHeading adds a heading at the level named by the style's last
// word, or a paragraph in that style when the style is not a heading.
func addChapterHeading(d *docx.Document, text, style string) error {
	fields := strings.Fields(style)
	if len(fields) > 0 {
		if level, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			if _, err := d.AddHeading(text, level); err == nil {
				return nil
			}
		}
	}
	_, err := d.AddStyledParagraph(text, style)
	return err
}
