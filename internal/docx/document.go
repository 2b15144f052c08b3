// Package docx reads, edits and writes WordprocessingML (.docx) packages.
//
// A Document is opened from a path, mutated in memory through the
// paragraph, table, section, style and note helpers, and saved back. Nothing
// is shared between Document values; the file on disk is the only state.
package docx

import (
	"errors"
	"fmt"
	"os"

	"github.com/beevik/etree"
)

var (
	// ErrStyleNotFound is returned when a style name cannot be resolved.
	ErrStyleNotFound = errors.New("style not found")
	// ErrIndexOutOfRange is returned for paragraph or table indexes past the end.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Document is an opened .docx package with its main part parsed.
type Document struct {
	pkg      *Package
	mainPart string
	xml      *etree.Document
}

// New builds an empty document with the built-in styles installed.
func New() (*Document, error) {
	pkg := newPackage()
	pkg.SetBytes(contentTypesPart, []byte(blankContentTypes))
	pkg.SetBytes("_rels/.rels", []byte(blankPackageRels))
	pkg.SetBytes("word/document.xml", []byte(blankDocument))
	pkg.SetBytes("word/_rels/document.xml.rels", []byte(blankDocumentRels))
	pkg.SetBytes("word/styles.xml", []byte(blankStyles()))
	pkg.SetBytes("word/settings.xml", []byte(blankSettings))
	pkg.SetBytes("docProps/core.xml", []byte(blankCoreProps))
	return fromPackage(pkg)
}

// Open reads the document stored at filename.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Read(data)
}

// Read parses a document from .docx bytes.
func Read(data []byte) (*Document, error) {
	pkg, err := ReadPackage(data)
	if err != nil {
		return nil, err
	}
	return fromPackage(pkg)
}

func fromPackage(pkg *Package) (*Document, error) {
	rel, ok := pkg.FindRelationship("", RelOfficeDocument)
	if !ok {
		return nil, errors.New("not a word document: no main document relationship")
	}
	main := ResolveTarget("", rel.Target)
	doc, err := pkg.XML(main)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if !isW(root, "document") {
		return nil, fmt.Errorf("unexpected root element %s in %s", root.FullTag(), main)
	}
	if wChild(root, "body") == nil {
		root.CreateElement("w:body")
	}
	return &Document{pkg: pkg, mainPart: main, xml: doc}, nil
}

// Save writes the document to filename.
func (d *Document) Save(filename string) error {
	return d.pkg.Save(filename)
}

// Package exposes the underlying OPC package.
func (d *Document) Package() *Package { return d.pkg }

// MainPart is the part name of the main document.
func (d *Document) MainPart() string { return d.mainPart }

// IsTemplate reports whether the main part is typed as a .dotx template.
func (d *Document) IsTemplate() bool {
	return d.pkg.ContentType(d.mainPart) == CTTemplate
}

// MarkAsDocument retypes a template main part as a regular document.
func (d *Document) MarkAsDocument() error {
	return d.pkg.SetOverride(d.mainPart, CTDocument)
}

func (d *Document) body() *etree.Element {
	return wChild(d.xml.Root(), "body")
}

// bodySectPr returns the trailing w:sectPr of the body, creating a letter
// sized one when the document has none.
func (d *Document) bodySectPr() *etree.Element {
	body := d.body()
	if s := wChild(body, "sectPr"); s != nil {
		return s
	}
	s := etree.NewElement("w:sectPr")
	pgSz := s.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", "12240")
	pgSz.CreateAttr("w:h", "15840")
	pgMar := s.CreateElement("w:pgMar")
	for _, kv := range [][2]string{{"top", "1440"}, {"right", "1440"}, {"bottom", "1440"}, {"left", "1440"}, {"header", "720"}, {"footer", "720"}, {"gutter", "0"}} {
		pgMar.CreateAttr("w:"+kv[0], kv[1])
	}
	body.AddChild(s)
	return s
}

// appendBlock adds a block-level element at the end of the body, ahead of
// the trailing section properties.
func (d *Document) appendBlock(el *etree.Element) {
	body := d.body()
	if s := wChild(body, "sectPr"); s != nil {
		body.InsertChildAt(s.Index(), el)
		return
	}
	body.AddChild(el)
}

// Paragraphs returns the body-level paragraphs in order.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, el := range wChildren(d.body(), "p") {
		out = append(out, &Paragraph{el: el})
	}
	return out
}

// AllParagraphs returns body paragraphs and paragraphs nested in tables,
// in document order.
func (d *Document) AllParagraphs() []*Paragraph {
	var out []*Paragraph
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			switch {
			case isW(c, "p"):
				out = append(out, &Paragraph{el: c})
			case isW(c, "tbl"), isW(c, "tr"), isW(c, "tc"), isW(c, "sdt"), isW(c, "sdtContent"):
				walk(c)
			}
		}
	}
	walk(d.body())
	return out
}

// Paragraph returns the body paragraph at index.
func (d *Document) Paragraph(index int) (*Paragraph, error) {
	ps := d.Paragraphs()
	if index < 0 || index >= len(ps) {
		return nil, fmt.Errorf("%w: paragraph %d (document has %d paragraphs)", ErrIndexOutOfRange, index, len(ps))
	}
	return ps[index], nil
}

// AddParagraph appends a paragraph with a single run of text.
func (d *Document) AddParagraph(text string) *Paragraph {
	p := &Paragraph{el: newParagraphElement()}
	if text != "" {
		p.AddRun(text)
	}
	d.appendBlock(p.el)
	return p
}

// AddStyledParagraph appends a paragraph using the named style.
func (d *Document) AddStyledParagraph(text, style string) (*Paragraph, error) {
	id, err := d.resolveStyle(style)
	if err != nil {
		return nil, err
	}
	p := d.AddParagraph(text)
	p.setStyleID(id)
	return p, nil
}

// SetParagraphStyle applies a paragraph style by name or id.
func (d *Document) SetParagraphStyle(p *Paragraph, style string) error {
	id, err := d.resolveStyle(style)
	if err != nil {
		return err
	}
	p.setStyleID(id)
	return nil
}

// ParagraphStyleName returns the display name of the paragraph's style.
func (d *Document) ParagraphStyleName(p *Paragraph) string {
	id := p.StyleID()
	if id == "" {
		id = "Normal"
	}
	styles, err := d.Styles()
	if err != nil {
		return id
	}
	if s, ok := styles.ByID(id); ok {
		return s.DisplayName()
	}
	return id
}

// AddHeading appends a heading paragraph. Level 0 uses the Title style.
func (d *Document) AddHeading(text string, level int) (*Paragraph, error) {
	if level < 0 || level > 9 {
		return nil, fmt.Errorf("level must be in range 0-9, got %d", level)
	}
	style := "Title"
	if level > 0 {
		style = fmt.Sprintf("Heading %d", level)
	}
	return d.AddStyledParagraph(text, style)
}

// AddPageBreak appends a paragraph holding only a page break.
func (d *Document) AddPageBreak() *Paragraph {
	p := d.AddParagraph("")
	p.AddBreak("page")
	return p
}

// DeleteParagraph removes the body paragraph at index.
func (d *Document) DeleteParagraph(index int) error {
	p, err := d.Paragraph(index)
	if err != nil {
		return err
	}
	d.body().RemoveChild(p.el)
	return nil
}

func (d *Document) resolveStyle(name string) (string, error) {
	styles, err := d.Styles()
	if err != nil {
		return "", err
	}
	s, ok := styles.Ensure(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return s.ID(), nil
}
