package docx

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// SectionStart is how a section begins (w:type).
type SectionStart string

const (
	SectionNextPage   SectionStart = "nextPage"
	SectionEvenPage   SectionStart = "evenPage"
	SectionOddPage    SectionStart = "oddPage"
	SectionContinuous SectionStart = "continuous"
)

// Section wraps a w:sectPr element.
type Section struct {
	el *etree.Element
}

// MarginNames lists the page margin keys accepted by SetMargin.
var MarginNames = []string{"top", "bottom", "left", "right", "header", "footer", "gutter"}

// Sections returns every section in document order. Each section is
// closed by a sectPr in a paragraph's properties; the last one by the
// body-level sectPr.
func (d *Document) Sections() []*Section {
	var out []*Section
	for _, p := range wChildren(d.body(), "p") {
		if s := wChild(wChild(p, "pPr"), "sectPr"); s != nil {
			out = append(out, &Section{el: s})
		}
	}
	return append(out, &Section{el: d.bodySectPr()})
}

// AddSection ends the current section and starts a new one of the given
// start type. The new section inherits page geometry but not header or
// footer references, which makes it linked to the previous section.
func (d *Document) AddSection(start SectionStart) *Section {
	sentinel := d.bodySectPr()
	p := d.AddParagraph("")
	pPr := p.props(true)
	insertOrdered(pPr, sentinel.Copy(), pPrOrder)

	removeWChildren(sentinel, "headerReference")
	removeWChildren(sentinel, "footerReference")
	s := &Section{el: sentinel}
	s.SetStartType(start)
	return s
}

// Element exposes the underlying w:sectPr.
func (s *Section) Element() *etree.Element { return s.el }

// StartType returns the section start type (nextPage when unset).
func (s *Section) StartType() SectionStart {
	v := wVal(wChild(s.el, "type"))
	if v == "" {
		return SectionNextPage
	}
	return SectionStart(v)
}

// SetStartType sets the section start type.
func (s *Section) SetStartType(start SectionStart) {
	if start == SectionNextPage {
		removeWChildren(s.el, "type")
		return
	}
	setVal(s.el, "type", string(start), sectPrOrder)
}

// PageWidth returns the page width in twips.
func (s *Section) PageWidth() int { return wAttrInt(wChild(s.el, "pgSz"), "w", 0) }

// PageHeight returns the page height in twips.
func (s *Section) PageHeight() int { return wAttrInt(wChild(s.el, "pgSz"), "h", 0) }

// ErrNegativePageSize is returned for a page width or height below zero;
// w:pgSz dimensions are unsigned.
var ErrNegativePageSize = errors.New("page width and height must not be negative")

// SetPageSize sets the page dimensions in inches, updating orientation to match.
func (s *Section) SetPageSize(widthIn, heightIn float64) error {
	if widthIn < 0 || heightIn < 0 {
		return ErrNegativePageSize
	}
	pgSz := ensureWChild(s.el, "pgSz", sectPrOrder)
	pgSz.CreateAttr("w:w", strconv.Itoa(InchesToTwips(widthIn)))
	pgSz.CreateAttr("w:h", strconv.Itoa(InchesToTwips(heightIn)))
	if widthIn > heightIn {
		pgSz.CreateAttr("w:orient", "landscape")
	} else {
		pgSz.RemoveAttr("w:orient")
	}
	return nil
}

// Margin returns a margin in twips.
func (s *Section) Margin(name string) int {
	return wAttrInt(wChild(s.el, "pgMar"), name, 0)
}

// SetMargin sets one of MarginNames in inches.
func (s *Section) SetMargin(name string, inches float64) error {
	if !validMargin(name) {
		return fmt.Errorf("unknown margin %q", name)
	}
	pgMar := ensureWChild(s.el, "pgMar", sectPrOrder)
	pgMar.CreateAttr("w:"+name, strconv.Itoa(InchesToTwips(inches)))
	return nil
}

func validMargin(name string) bool {
	for _, m := range MarginNames {
		if m == name {
			return true
		}
	}
	return false
}

// reference returns the r:id of the default header or footer reference.
func (s *Section) reference(kind string) string {
	for _, ref := range wChildren(s.el, kind+"Reference") {
		if ref.SelectAttrValue("w:type", "default") == "default" {
			return ref.SelectAttrValue("r:id", "")
		}
	}
	return ""
}

func (s *Section) setReference(kind, rID string) {
	for _, ref := range wChildren(s.el, kind+"Reference") {
		if ref.SelectAttrValue("w:type", "default") == "default" {
			s.el.RemoveChild(ref)
		}
	}
	ref := etree.NewElement("w:" + kind + "Reference")
	ref.CreateAttr("w:type", "default")
	ref.CreateAttr("r:id", rID)
	insertOrdered(s.el, ref, sectPrOrder)
}

// SetNoteProperties writes footnotePr or endnotePr numbering settings.
func (s *Section) SetNoteProperties(kind, numFmt string, start int) {
	pr := ensureWChild(s.el, kind+"Pr", sectPrOrder)
	if numFmt != "" {
		c := ensureWChild(pr, "numFmt", []string{"pos", "numFmt", "numStart", "numRestart"})
		c.CreateAttr("w:val", numFmt)
	}
	if start > 0 {
		c := ensureWChild(pr, "numStart", []string{"pos", "numFmt", "numStart", "numRestart"})
		c.CreateAttr("w:val", strconv.Itoa(start))
	}
}
