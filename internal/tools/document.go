package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/filegate"
)

type createDocumentArgs struct {
	Filename string  `json:"filename" arg:"required" desc:"Path of the document to create"`
	Title    *string `json:"title" desc:"Document title metadata"`
	Author   *string `json:"author" desc:"Document author metadata"`
}

type copyDocumentArgs struct {
	Source      string `json:"source_filename" arg:"required" desc:"Document to copy"`
	Destination string `json:"destination_filename" desc:"Target path; defaults to <name>_copy.docx"`
}

type filenameArgs struct {
	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
}

type listDocumentsArgs struct {
	Directory string `json:"directory" desc:"Directory to search"`
}

func documentTools(env *Env) []Tool {
	return []Tool{
		Define("create_document", "Create a new Word document with optional metadata.",
			createDocumentArgs{}, env.createDocument),
		Define("copy_document", "Create a copy of a Word document.",
			copyDocumentArgs{}, env.copyDocument),
		Define("get_document_info", "Get metadata and statistics of a Word document as JSON.",
			filenameArgs{}, env.documentInfo),
		Define("get_document_text", "Extract all text from a Word document, tables included.",
			filenameArgs{}, env.documentText),
		Define("get_document_outline", "Get the paragraph and table structure of a Word document as JSON.",
			filenameArgs{}, env.documentOutline),
		Define("list_available_documents", "List the Word documents in a directory.",
			listDocumentsArgs{Directory: "."}, env.listDocuments),
	}
}

func (e *Env) createDocument(_ context.Context, a createDocumentArgs) (string, error) {
	path := e.docPath(a.Filename)
	if ok, reason := filegate.CheckWriteable(path); !ok {
		return fmt.Sprintf("Cannot create document: %s", reason), nil
	}
	doc, err := docx.New()
	if err != nil {
		return fmt.Sprintf("Failed to create document: %v", err), nil
	}
	author := ""
	if a.Author != nil {
		author = *a.Author
	}
	if err := doc.UpdateCoreProperties(docx.CorePropertiesUpdate{Title: a.Title, Author: a.Author}); err != nil {
		return fmt.Sprintf("Failed to create document: %v", err), nil
	}
	if err := doc.StampCreated(author); err != nil {
		return fmt.Sprintf("Failed to create document: %v", err), nil
	}
	if err := doc.Save(path); err != nil {
		return fmt.Sprintf("Failed to create document: %v", err), nil
	}
	return fmt.Sprintf("Document %s created successfully", path), nil
}

func (e *Env) copyDocument(_ context.Context, a copyDocumentArgs) (string, error) {
	dst := a.Destination
	if dst != "" {
		dst = e.resolve(dst)
	}
	_, msg, _ := filegate.CopyDocument(e.docPath(a.Source), dst)
	return msg, nil
}

type documentInfo struct {
	docx.CoreProperties
	ParagraphCount int `json:"paragraph_count"`
	TableCount     int `json:"table_count"`
	SectionCount   int `json:"section_count"`
	WordCount      int `json:"word_count"`
	PictureCount   int `json:"picture_count"`
}

func (e *Env) documentInfo(_ context.Context, a filenameArgs) (string, error) {
	return e.read(a.Filename, "Failed to get document info", func(d *docx.Document, _ string) (string, error) {
		props, err := d.CoreProperties()
		if err != nil {
			return "", err
		}
		info := documentInfo{
			CoreProperties: props,
			ParagraphCount: len(d.Paragraphs()),
			TableCount:     len(d.Tables()),
			SectionCount:   len(d.Sections()),
			WordCount:      len(strings.Fields(d.Text())),
			PictureCount:   d.Pictures(),
		}
		return marshalIndent(info)
	}), nil
}

func (e *Env) documentText(_ context.Context, a filenameArgs) (string, error) {
	return e.read(a.Filename, "Failed to extract text", func(d *docx.Document, _ string) (string, error) {
		return d.Text(), nil
	}), nil
}

type outlineParagraph struct {
	Index int    `json:"index"`
	Style string `json:"style"`
	Text  string `json:"text"`
}

type outlineTable struct {
	Index   int        `json:"index"`
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Preview [][]string `json:"preview"`
}

type outline struct {
	Paragraphs []outlineParagraph `json:"paragraphs"`
	Tables     []outlineTable     `json:"tables"`
}

const (
	outlineTextChars   = 100
	outlinePreviewRows = 3
)

func (e *Env) documentOutline(_ context.Context, a filenameArgs) (string, error) {
	return e.read(a.Filename, "Failed to get document outline", func(d *docx.Document, _ string) (string, error) {
		o := outline{Paragraphs: []outlineParagraph{}, Tables: []outlineTable{}}
		for i, p := range d.Paragraphs() {
			text := []rune(p.Text())
			if len(text) > outlineTextChars {
				text = append(text[:outlineTextChars], []rune("...")...)
			}
			o.Paragraphs = append(o.Paragraphs, outlineParagraph{Index: i, Style: d.ParagraphStyleName(p), Text: string(text)})
		}
		for i, t := range d.Tables() {
			ot := outlineTable{Index: i, Rows: t.RowCount(), Columns: t.ColCount(), Preview: [][]string{}}
			for r := 0; r < t.RowCount() && r < outlinePreviewRows; r++ {
				var row []string
				for _, c := range t.RowCells(r) {
					row = append(row, c.Text())
				}
				ot.Preview = append(ot.Preview, row)
			}
			o.Tables = append(o.Tables, ot)
		}
		return marshalIndent(o)
	}), nil
}

func (e *Env) listDocuments(_ context.Context, a listDocumentsArgs) (string, error) {
	dir := e.resolve(a.Directory)
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Sprintf("Directory %s does not exist", dir), nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Sprintf("Failed to list documents: %v", err), nil
	}
	var lines []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), filegate.DocxExt) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s (%.2f KB)", entry.Name(), float64(fi.Size())/1024))
	}
	if len(lines) == 0 {
		return fmt.Sprintf("No Word documents found in %s", dir), nil
	}
	sort.Strings(lines)
	return fmt.Sprintf("Found %d Word documents in %s:\n%s", len(lines), dir, strings.Join(lines, "\n")), nil
}

// marshalIndent renders v as two-space indented JSON without HTML escaping.
func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
