package docx

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
)

// Alignment is a paragraph justification value (w:jc).
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Paragraph wraps a w:p element.
type Paragraph struct {
	el *etree.Element
}

// Run wraps a w:r element.
type Run struct {
	el *etree.Element
}

func newParagraphElement() *etree.Element {
	return etree.NewElement("w:p")
}

// Element exposes the underlying w:p.
func (p *Paragraph) Element() *etree.Element { return p.el }

func (p *Paragraph) props(create bool) *etree.Element {
	pPr := wChild(p.el, "pPr")
	if pPr == nil && create {
		pPr = etree.NewElement("w:pPr")
		p.el.InsertChildAt(0, pPr)
	}
	return pPr
}

// StyleID returns the paragraph style id, or "" for the default style.
func (p *Paragraph) StyleID() string {
	return wVal(wChild(p.props(false), "pStyle"))
}

func (p *Paragraph) setStyleID(id string) {
	if id == "" {
		if pPr := p.props(false); pPr != nil {
			removeWChildren(pPr, "pStyle")
		}
		return
	}
	setVal(p.props(true), "pStyle", id, pPrOrder)
}

// SetAlignment sets the paragraph justification.
func (p *Paragraph) SetAlignment(a Alignment) {
	setVal(p.props(true), "jc", string(a), pPrOrder)
}

// Alignment returns the explicit justification or "" when inherited.
func (p *Paragraph) Alignment() Alignment {
	return Alignment(wVal(wChild(p.props(false), "jc")))
}

// SetKeepWithNext keeps the paragraph on the same page as the next one.
func (p *Paragraph) SetKeepWithNext(on bool) {
	setToggle(p.props(true), "keepNext", on, pPrOrder)
}

// SetSpacing sets space before/after in points.
func (p *Paragraph) SetSpacing(beforePt, afterPt float64) {
	sp := ensureWChild(p.props(true), "spacing", pPrOrder)
	sp.CreateAttr("w:before", strconv.Itoa(int(beforePt*20)))
	sp.CreateAttr("w:after", strconv.Itoa(int(afterPt*20)))
}

// SetIndent sets the left indentation in inches.
func (p *Paragraph) SetIndent(leftIn float64) {
	ind := ensureWChild(p.props(true), "ind", pPrOrder)
	ind.CreateAttr("w:left", strconv.Itoa(InchesToTwips(leftIn)))
}

// AddRun appends a run holding text. Newlines become line breaks and tabs
// become tab characters.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{el: etree.NewElement("w:r")}
	r.SetText(text)
	p.el.AddChild(r.el)
	return r
}

// AddBreak appends a run containing a break of the given type ("page",
// "column" or "" for a line break).
func (p *Paragraph) AddBreak(kind string) *Run {
	r := &Run{el: p.el.CreateElement("w:r")}
	br := r.el.CreateElement("w:br")
	if kind != "" {
		br.CreateAttr("w:type", kind)
	}
	return r
}

// AddSimpleField appends a w:fldSimple with the given instruction. The
// placeholder text is shown until the consumer updates fields.
func (p *Paragraph) AddSimpleField(instr, placeholder string) *etree.Element {
	fld := p.el.CreateElement("w:fldSimple")
	fld.CreateAttr("w:instr", instr)
	if placeholder != "" {
		r := Run{el: fld.CreateElement("w:r")}
		r.SetText(placeholder)
	}
	return fld
}

// Runs returns every run of the paragraph in document order, including
// runs nested in hyperlinks, fields and smart tags.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			switch {
			case isW(c, "r"):
				runs = append(runs, &Run{el: c})
			case isW(c, "pPr"), isW(c, "del"):
			default:
				walk(c)
			}
		}
	}
	walk(p.el)
	return runs
}

// Text returns the visible text of the paragraph.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// Clear removes all content but keeps paragraph properties.
func (p *Paragraph) Clear() {
	for _, c := range p.el.ChildElements() {
		if !isW(c, "pPr") {
			p.el.RemoveChild(c)
		}
	}
}

// SetText replaces the paragraph content with a single run.
func (p *Paragraph) SetText(text string) *Run {
	p.Clear()
	return p.AddRun(text)
}

// Element exposes the underlying w:r.
func (r *Run) Element() *etree.Element { return r.el }

// Text returns the run text with tabs and breaks rendered as characters.
func (r *Run) Text() string {
	var sb strings.Builder
	for _, c := range r.el.ChildElements() {
		sb.WriteString(runContentText(c))
	}
	return sb.String()
}

func runContentText(c *etree.Element) string {
	switch {
	case isW(c, "t"):
		return c.Text()
	case isW(c, "tab"):
		return "\t"
	case isW(c, "br"), isW(c, "cr"):
		return "\n"
	case isW(c, "noBreakHyphen"):
		return "-"
	}
	return ""
}

// SetText replaces the run content, keeping run properties.
func (r *Run) SetText(text string) {
	for _, c := range r.el.ChildElements() {
		if !isW(c, "rPr") {
			r.el.RemoveChild(c)
		}
	}
	var buf strings.Builder
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		t := r.el.CreateElement("w:t")
		s := buf.String()
		if strings.TrimSpace(s) != s {
			t.CreateAttr("xml:space", "preserve")
		}
		t.SetText(s)
		buf.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\n':
			flush()
			r.el.CreateElement("w:br")
		case '\t':
			flush()
			r.el.CreateElement("w:tab")
		case '\r':
		default:
			buf.WriteRune(ch)
		}
	}
	flush()
}

func (r *Run) props(create bool) *etree.Element {
	rPr := wChild(r.el, "rPr")
	if rPr == nil && create {
		rPr = etree.NewElement("w:rPr")
		r.el.InsertChildAt(0, rPr)
	}
	return rPr
}

// Bold reports whether the run is explicitly bold.
func (r *Run) Bold() bool { return toggleOn(r.props(false), "b") }

// Italic reports whether the run is explicitly italic.
func (r *Run) Italic() bool { return toggleOn(r.props(false), "i") }

// SetBold toggles bold.
func (r *Run) SetBold(on bool) { setToggle(r.props(true), "b", on, rPrOrder) }

// SetItalic toggles italics.
func (r *Run) SetItalic(on bool) { setToggle(r.props(true), "i", on, rPrOrder) }

// SetUnderline toggles a single underline.
func (r *Run) SetUnderline(on bool) {
	if !on {
		removeWChildren(r.props(true), "u")
		return
	}
	setVal(r.props(true), "u", "single", rPrOrder)
}

// SetColor sets the text color as an RRGGBB hex string.
func (r *Run) SetColor(hex string) {
	setVal(r.props(true), "color", normalizeColor(hex), rPrOrder)
}

// SetSize sets the font size in points.
func (r *Run) SetSize(pt float64) {
	setFontSize(r.props(true), pt)
}

// SetFont sets the font family for all scripts.
func (r *Run) SetFont(name string) {
	setFontName(r.props(true), name)
}

// SetStyle applies a character style by id.
func (r *Run) SetStyle(id string) {
	setVal(r.props(true), "rStyle", id, rPrOrder)
}

// StyleID returns the character style id.
func (r *Run) StyleID() string {
	return wVal(wChild(r.props(false), "rStyle"))
}

func setFontSize(rPr *etree.Element, pt float64) {
	hp := strconv.Itoa(PointsToHalfPoints(pt))
	setVal(rPr, "sz", hp, rPrOrder)
	setVal(rPr, "szCs", hp, rPrOrder)
}

func setFontName(rPr *etree.Element, name string) {
	f := ensureWChild(rPr, "rFonts", rPrOrder)
	for _, attr := range []string{"w:ascii", "w:hAnsi", "w:eastAsia", "w:cs"} {
		f.CreateAttr(attr, name)
	}
}

func normalizeColor(hex string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
}

// runeLen is the length unit used for text positions.
func runeLen(s string) int { return utf8.RuneCountInString(s) }
