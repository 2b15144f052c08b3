package tools

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/filegate"
)

type titlePageArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path of the document to create"`
	Title    string `json:"title" arg:"required" desc:"Main title"`
	Subtitle string `json:"subtitle" desc:"Subtitle"`
	Author   string `json:"author" desc:"Author name"`
	Date     string `json:"date" desc:"Date line"`
}

type copyrightArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
	Text     string `json:"text" arg:"required" desc:"Copyright or legal text"`
}

type frontMatterArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
	Section  string `json:"section" arg:"required" desc:"Section name, e.g. Preface"`
	Text     string `json:"text" arg:"required" desc:"Section text"`
}

func bookTools(env *Env) []Tool {
	return []Tool{
		Define("add_title_page", "Create a new document holding a centered title page.",
			titlePageArgs{}, env.addTitlePage),
		Define("add_copyright_page", "Append a centered copyright page.",
			copyrightArgs{}, env.addCopyrightPage),
		Define("add_front_matter", "Append a front matter section such as a preface or dedication.",
			frontMatterArgs{}, env.addFrontMatter),
	}
}

// addTitlePage always starts a fresh document, replacing any existing file.
func (e *Env) addTitlePage(_ context.Context, a titlePageArgs) (string, error) {
	path := e.docPath(a.Filename)
	if ok, reason := filegate.CheckWriteable(path); !ok {
		return fmt.Sprintf("Cannot write title page: %s", reason), nil
	}
	d, err := docx.New()
	if err != nil {
		return fmt.Sprintf("Failed to create title page: %v", err), nil
	}
	title := d.AddParagraph("")
	title.SetAlignment(docx.AlignCenter)
	title.AddRun(a.Title).SetBold(true)
	if a.Subtitle != "" {
		p := d.AddParagraph("")
		p.SetAlignment(docx.AlignCenter)
		p.AddRun(a.Subtitle).SetItalic(true)
	}
	for _, line := range []string{a.Author, a.Date} {
		if line != "" {
			d.AddParagraph(line).SetAlignment(docx.AlignCenter)
		}
	}
	if err := d.Save(path); err != nil {
		return fmt.Sprintf("Failed to create title page: %v", err), nil
	}
	return fmt.Sprintf("Title page created: %s", path), nil
}

func (e *Env) addCopyrightPage(_ context.Context, a copyrightArgs) (string, error) {
	return e.edit(a.Filename, "Failed to append copyright page", func(d *docx.Document, path string) (string, error) {
		d.AddPageBreak()
		d.AddParagraph(a.Text).SetAlignment(docx.AlignCenter)
		return fmt.Sprintf("Copyright page appended to %s", path), nil
	}), nil
}

func (e *Env) addFrontMatter(_ context.Context, a frontMatterArgs) (string, error) {
	return e.edit(a.Filename, "Failed to add front matter", func(d *docx.Document, path string) (string, error) {
		d.AddPageBreak()
		if _, err := d.AddHeading(a.Section, 1); err != nil {
			return "", err
		}
		d.AddParagraph(a.Text)
		return fmt.Sprintf("Front matter '%s' added to %s", a.Section, path), nil
	}), nil
}
