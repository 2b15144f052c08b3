package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/filegate"
)

type applyTemplateArgs struct {
	TemplatePath    string `json:"template_path" arg:"required" desc:"Template file (.docx or .dotx)"`
	DestinationPath string `json:"destination_path" desc:"New document path; defaults to <template>_copy.docx"`
}

type pageSizeArgs struct {
	Filename string             `json:"filename" arg:"required" desc:"Path to the document"`
	Width    float64            `json:"width" arg:"required" desc:"Page width in inches"`
	Height   float64            `json:"height" arg:"required" desc:"Page height in inches"`
	Margins  map[string]float64 `json:"margins" desc:"Margins in inches keyed by top, bottom, left, right, header, footer or gutter"`
}

type sectionBreakArgs struct {
	Filename  string `json:"filename" arg:"required" desc:"Path to the document"`
	BreakType string `json:"break_type" desc:"nextPage, evenPage or oddPage"`
}

var sectionBreaks = []docx.SectionStart{docx.SectionNextPage, docx.SectionEvenPage, docx.SectionOddPage}

func layoutTools(env *Env) []Tool {
	return []Tool{
		Define("apply_template", "Create a new document from a .docx or .dotx template.",
			applyTemplateArgs{}, env.applyTemplate),
		Define("set_page_size", "Set page size and optional margins, in inches, for all sections.",
			pageSizeArgs{}, env.setPageSize),
		Define("add_section_break", "Insert a section break.",
			sectionBreakArgs{BreakType: string(docx.SectionNextPage)}, env.addSectionBreak),
	}
}

func (e *Env) applyTemplate(_ context.Context, a applyTemplateArgs) (string, error) {
	src := e.resolve(a.TemplatePath)
	switch strings.ToLower(filepath.Ext(src)) {
	case ".docx", ".dotx":
	default:
		return fmt.Sprintf("Template must be .docx or .dotx: %s", src), nil
	}
	if !filegate.Exists(src) {
		return fmt.Sprintf("Template file not found: %s", src), nil
	}
	dst := ""
	if a.DestinationPath != "" {
		dst = e.docPath(a.DestinationPath)
	}
	ok, msg, created := filegate.CopyDocument(src, dst)
	if !ok {
		return fmt.Sprintf("Failed to apply template: %s", msg), nil
	}
	doc, err := docx.Open(created)
	if err != nil {
		return fmt.Sprintf("Failed to apply template: %v", err), nil
	}
	if doc.IsTemplate() {
		if err := doc.MarkAsDocument(); err != nil {
			return fmt.Sprintf("Failed to apply template: %v", err), nil
		}
		if err := doc.Save(created); err != nil {
			return fmt.Sprintf("Failed to apply template: %v", err), nil
		}
	}
	return msg, nil
}

func (e *Env) setPageSize(_ context.Context, a pageSizeArgs) (string, error) {
	return e.edit(a.Filename, "Failed to set page size", func(d *docx.Document, path string) (string, error) {
		names := make([]string, 0, len(a.Margins))
		for name := range a.Margins {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, s := range d.Sections() {
			if err := s.SetPageSize(a.Width, a.Height); err != nil {
				return "", err
			}
			for _, name := range names {
				if err := s.SetMargin(name, a.Margins[name]); err != nil {
					return "", err
				}
			}
		}
		return fmt.Sprintf("Page size set to %sx%s inches in %s", inches(a.Width), inches(a.Height), path), nil
	}), nil
}

func inches(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func (e *Env) addSectionBreak(_ context.Context, a sectionBreakArgs) (string, error) {
	return e.edit(a.Filename, "Failed to add section break", func(d *docx.Document, path string) (string, error) {
		start, ok := parseSectionBreak(a.BreakType)
		if !ok {
			quoted := make([]string, len(sectionBreaks))
			for i, b := range sectionBreaks {
				quoted[i] = "'" + string(b) + "'"
			}
			return "", abort{fmt.Sprintf("Invalid break_type: %s. Must be one of [%s]", a.BreakType, strings.Join(quoted, ", "))}
		}
		d.AddSection(start)
		return fmt.Sprintf("Section break (%s) added to %s", a.BreakType, path), nil
	}), nil
}

func parseSectionBreak(raw string) (docx.SectionStart, bool) {
	for _, b := range sectionBreaks {
		if string(b) == raw {
			return b, true
		}
	}
	return "", false
}
