package docx

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// HeaderFooterKind selects between page headers and footers.
type HeaderFooterKind string

const (
	KindHeader HeaderFooterKind = "header"
	KindFooter HeaderFooterKind = "footer"
)

// HeaderFooter is a header or footer part.
type HeaderFooter struct {
	Part string
	root *etree.Element
}

// HeaderFooter returns the default header or footer of a section. When the
// section has no definition of its own one is created, unlinking it from
// the previous section.
func (d *Document) HeaderFooter(s *Section, kind HeaderFooterKind) (*HeaderFooter, error) {
	if rID := s.reference(string(kind)); rID != "" {
		if rel, ok := d.pkg.Relationship(d.mainPart, rID); ok {
			part := ResolveTarget(d.mainPart, rel.Target)
			if doc, err := d.pkg.XML(part); err == nil {
				return &HeaderFooter{Part: part, root: doc.Root()}, nil
			}
		}
	}

	relType, contentType := RelHeader, CTHeader
	if kind == KindFooter {
		relType, contentType = RelFooter, CTFooter
	}
	part := d.pkg.NextPartName("word/"+string(kind), ".xml")
	d.pkg.SetBytes(part, []byte(fmt.Sprintf(blankHeaderFooter, headerFooterTag(kind), headerFooterTag(kind))))
	if err := d.pkg.SetOverride(part, contentType); err != nil {
		return nil, err
	}
	rID, err := d.pkg.AddRelationship(d.mainPart, relType, relativeTarget(d.mainPart, part), false)
	if err != nil {
		return nil, err
	}
	ensureNamespace(d.xml.Root(), "r", NSRelationships)
	s.setReference(string(kind), rID)

	doc, err := d.pkg.XML(part)
	if err != nil {
		return nil, err
	}
	return &HeaderFooter{Part: part, root: doc.Root()}, nil
}

func headerFooterTag(kind HeaderFooterKind) string {
	if kind == KindFooter {
		return "ftr"
	}
	return "hdr"
}

// Paragraphs returns the paragraphs of the part.
func (h *HeaderFooter) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, el := range wChildren(h.root, "p") {
		out = append(out, &Paragraph{el: el})
	}
	return out
}

// FirstParagraph returns the first paragraph, adding one when empty.
func (h *HeaderFooter) FirstParagraph() *Paragraph {
	if ps := h.Paragraphs(); len(ps) > 0 {
		return ps[0]
	}
	return &Paragraph{el: h.root.CreateElement("w:p")}
}

// Text returns the part text with paragraphs joined by newlines.
func (h *HeaderFooter) Text() string {
	var parts []string
	for _, p := range h.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}
