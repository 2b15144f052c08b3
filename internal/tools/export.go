package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/export"
)

type toEPUBArgs struct {
	Filename       string         `json:"filename" arg:"required" desc:"Source .docx file"`
	OutputFilename string         `json:"output_filename" desc:"EPUB path; defaults to the document name with .epub"`
	Metadata       map[string]any `json:"metadata" desc:"Metadata fields passed to pandoc (title, author, ...)"`
	TOC            bool           `json:"toc" desc:"Include a table of contents"`
}

type toPDFArgs struct {
	Filename       string `json:"filename" arg:"required" desc:"Source .docx file"`
	OutputFilename string `json:"output_filename" desc:"PDF path; defaults to the document name with .pdf"`
	PDFEngine      string `json:"pdf_engine" desc:"Pandoc PDF engine, e.g. xelatex or pdflatex"`
}

type corePropertiesArgs struct {
	Filename string   `json:"filename" arg:"required" desc:"Path to the document"`
	Title    *string  `json:"title" desc:"Document title"`
	Author   *string  `json:"author" desc:"Document author"`
	Subject  *string  `json:"subject" desc:"Document subject"`
	Keywords []string `json:"keywords" desc:"Keywords, stored comma separated"`
}

func exportTools(env *Env) []Tool {
	return []Tool{
		Define("to_epub", "Convert a Word document to EPUB using Pandoc.",
			toEPUBArgs{TOC: env.TOC}, env.toEPUB),
		Define("to_pdf", "Convert a Word document to PDF using Pandoc and a PDF engine.",
			toPDFArgs{PDFEngine: env.bridge().PDFEngine()}, env.toPDF),
		Define("set_core_properties", "Set title, author, subject and keywords metadata.",
			corePropertiesArgs{}, env.setCoreProperties),
	}
}

func (e *Env) toEPUB(ctx context.Context, a toEPUBArgs) (string, error) {
	return e.bridge().Convert(ctx, export.Request{
		Source:   e.resolve(a.Filename),
		Output:   e.resolve(a.OutputFilename),
		Format:   export.FormatEPUB,
		TOC:      a.TOC,
		Metadata: metadataValues(a.Metadata),
	}), nil
}

// metadataValues renders each value as pandoc expects after "key=".
// Numbers use the shortest form, so 2024 stays "2024"; lists and objects
// are passed as JSON.
func metadataValues(m map[string]any) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		switch v := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = v
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(v)
		default:
			data, err := json.Marshal(v)
			if err != nil {
				out[k] = fmt.Sprint(v)
				continue
			}
			out[k] = string(data)
		}
	}
	return out
}

func (e *Env) toPDF(ctx context.Context, a toPDFArgs) (string, error) {
	return e.bridge().Convert(ctx, export.Request{
		Source:    e.resolve(a.Filename),
		Output:    e.resolve(a.OutputFilename),
		Format:    export.FormatPDF,
		PDFEngine: a.PDFEngine,
	}), nil
}

func (e *Env) setCoreProperties(_ context.Context, a corePropertiesArgs) (string, error) {
	return e.edit(a.Filename, "Failed to set core properties", func(d *docx.Document, path string) (string, error) {
		u := docx.CorePropertiesUpdate{Title: a.Title, Author: a.Author, Subject: a.Subject}
		if a.Keywords != nil {
			kw := strings.Join(a.Keywords, ", ")
			u.Keywords = &kw
		}
		if err := d.UpdateCoreProperties(u); err != nil {
			return "", err
		}
		return fmt.Sprintf("Metadata updated on %s", path), nil
	}), nil
}
