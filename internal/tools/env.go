package tools

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/export"
	"git.home.luguber.info/inful/docxbuilder/internal/filegate"
	"git.home.luguber.info/inful/docxbuilder/internal/logfields"
)

// Env carries what operations need beyond their arguments.
type Env struct {
	// Root is the base directory for relative document paths.
	Root string
	// Export runs pandoc conversions.
	Export *export.Bridge
	// TOC is the default for the to_epub toc argument.
	TOC bool
}

// NewEnv returns an Env rooted at root with a default export bridge.
func NewEnv(root string) *Env {
	return &Env{Root: root, Export: export.New(), TOC: true}
}

// resolve anchors a relative path at Root.
func (e *Env) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || e.Root == "" || e.Root == "." {
		return p
	}
	return filepath.Join(e.Root, p)
}

func (e *Env) bridge() *export.Bridge {
	if e.Export == nil {
		e.Export = export.New()
	}
	return e.Export
}

// docPath resolves filename and coerces the .docx extension.
func (e *Env) docPath(filename string) string {
	return filegate.EnsureDocxExtension(e.resolve(filename))
}

// edit runs the mutation preconditions on filename, opens the document,
// applies fn and saves. Any failure after the preconditions is reported
// as "<failure>: <error>"; an abort from fn is reported verbatim.
func (e *Env) edit(filename, failure string, fn func(d *docx.Document, path string) (string, error)) string {
	path, msg := filegate.Precondition(e.resolve(filename))
	if msg != "" {
		return msg
	}
	doc, err := docx.Open(path)
	if err != nil {
		return fmt.Sprintf("%s: %v", failure, err)
	}
	status, err := fn(doc, path)
	if a, ok := err.(abort); ok {
		return a.msg
	}
	if err != nil {
		return fmt.Sprintf("%s: %v", failure, err)
	}
	if err := doc.Save(path); err != nil {
		return fmt.Sprintf("%s: %v", failure, err)
	}
	slog.Debug("document saved", logfields.Path(path))
	return status
}

// abort is returned from an edit or read callback to end the operation
// with msg as its status, without saving.
type abort struct{ msg string }

func (a abort) Error() string { return a.msg }

// read opens an existing document for inspection.
func (e *Env) read(filename, failure string, fn func(d *docx.Document, path string) (string, error)) string {
	path := e.docPath(filename)
	if !filegate.Exists(path) {
		return fmt.Sprintf("Document %s does not exist", path)
	}
	doc, err := docx.Open(path)
	if err != nil {
		return fmt.Sprintf("%s: %v", failure, err)
	}
	status, err := fn(doc, path)
	if a, ok := err.(abort); ok {
		return a.msg
	}
	if err != nil {
		return fmt.Sprintf("%s: %v", failure, err)
	}
	return status
}

func invalidParagraph(d *docx.Document) error {
	n := len(d.Paragraphs())
	return abort{fmt.Sprintf("Invalid paragraph index. Document has %d paragraphs (0-%d).", n, n-1)}
}

func invalidTable(d *docx.Document) error {
	n := len(d.Tables())
	return abort{fmt.Sprintf("Invalid table index. Document has %d tables (0-%d).", n, n-1)}
}
