package docx

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/beevik/etree"
)

// Styles wraps the styles part of a document.
type Styles struct {
	root *etree.Element
}

// Style wraps a w:style element.
type Style struct {
	el *etree.Element
}

// Styles returns the document's style sheet, creating an empty styles part
// when the package has none.
func (d *Document) Styles() (*Styles, error) {
	part, err := d.relatedPart(RelStyles, "word/styles.xml", CTStyles,
		xmlHeader+`<w:styles xmlns:w="`+NSWordML+`"></w:styles>`)
	if err != nil {
		return nil, err
	}
	doc, err := d.pkg.XML(part)
	if err != nil {
		return nil, err
	}
	return &Styles{root: doc.Root()}, nil
}

// relatedPart resolves the part the main document targets with relType,
// creating it from blank content when missing.
func (d *Document) relatedPart(relType, defaultName, contentType, blank string) (string, error) {
	if rel, ok := d.pkg.FindRelationship(d.mainPart, relType); ok {
		name := ResolveTarget(d.mainPart, rel.Target)
		if d.pkg.Has(name) {
			return name, nil
		}
		d.pkg.SetBytes(name, []byte(blank))
		return name, d.pkg.SetOverride(name, contentType)
	}
	name := defaultName
	if d.pkg.Has(name) {
		name = d.pkg.NextPartName(strings.TrimSuffix(defaultName, ".xml"), ".xml")
	}
	d.pkg.SetBytes(name, []byte(blank))
	if err := d.pkg.SetOverride(name, contentType); err != nil {
		return "", err
	}
	if _, err := d.pkg.AddRelationship(d.mainPart, relType, relativeTarget(d.mainPart, name), false); err != nil {
		return "", err
	}
	return name, nil
}

// relativeTarget expresses part name relative to the directory of source.
func relativeTarget(source, name string) string {
	dir := ""
	if i := strings.LastIndex(source, "/"); i >= 0 {
		dir = source[:i+1]
	}
	if dir != "" && strings.HasPrefix(name, dir) {
		return strings.TrimPrefix(name, dir)
	}
	return "/" + name
}

// All returns every style definition.
func (s *Styles) All() []*Style {
	var out []*Style
	for _, el := range wChildren(s.root, "style") {
		out = append(out, &Style{el: el})
	}
	return out
}

// ByID finds a style by its id.
func (s *Styles) ByID(id string) (*Style, bool) {
	for _, st := range s.All() {
		if st.ID() == id {
			return st, true
		}
	}
	return nil, false
}

// Find resolves a style by display name (case-insensitive) or id.
func (s *Styles) Find(name string) (*Style, bool) {
	if strings.TrimSpace(name) == "" {
		return nil, false
	}
	for _, st := range s.All() {
		if strings.EqualFold(st.Name(), name) {
			return st, true
		}
	}
	if st, ok := s.ByID(name); ok {
		return st, true
	}
	if b, ok := lookupBuiltin(name); ok {
		return s.ByID(b.id)
	}
	return nil, false
}

// Ensure resolves a style, installing it from the built-in definitions
// when the document lacks it.
func (s *Styles) Ensure(name string) (*Style, bool) {
	if st, ok := s.Find(name); ok {
		return st, true
	}
	b, ok := lookupBuiltin(name)
	if !ok {
		return nil, false
	}
	if b.basedOn != "" {
		s.Ensure(b.basedOn)
	}
	doc := etree.NewDocument()
	wrapped := `<w:styles xmlns:w="` + NSWordML + `">` + b.xml() + `</w:styles>`
	if err := doc.ReadFromString(wrapped); err != nil {
		return nil, false
	}
	el := wChild(doc.Root(), "style")
	if el == nil {
		return nil, false
	}
	installed := el.Copy()
	s.root.AddChild(installed)
	return &Style{el: installed}, true
}

// Add creates a new style of kind (paragraph or character). It fails when
// a style with the same name already exists.
func (s *Styles) Add(kind, name, basedOn string) (*Style, error) {
	if _, ok := s.Find(name); ok {
		return nil, fmt.Errorf("style '%s' already exists", name)
	}
	id := styleIDFromName(name)
	base := id
	for i := 1; ; i++ {
		if _, taken := s.ByID(id); !taken {
			break
		}
		id = fmt.Sprintf("%s%d", base, i)
	}

	el := s.root.CreateElement("w:style")
	el.CreateAttr("w:type", kind)
	el.CreateAttr("w:customStyle", "1")
	el.CreateAttr("w:styleId", id)
	st := &Style{el: el}
	setVal(el, "name", name, styleOrder)
	if basedOn != "" {
		parent, ok := s.Ensure(basedOn)
		if !ok {
			s.root.RemoveChild(el)
			return nil, fmt.Errorf("%w: base style %q", ErrStyleNotFound, basedOn)
		}
		setVal(el, "basedOn", parent.ID(), styleOrder)
	}
	ensureWChild(el, "qFormat", styleOrder)
	return st, nil
}

func styleIDFromName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "CustomStyle"
	}
	return sb.String()
}

// ID returns w:styleId.
func (st *Style) ID() string { return st.el.SelectAttrValue("w:styleId", "") }

// Name returns the stored style name.
func (st *Style) Name() string { return wVal(wChild(st.el, "name")) }

// Type returns paragraph, character, table or numbering.
func (st *Style) Type() string { return st.el.SelectAttrValue("w:type", "paragraph") }

// BasedOn returns the parent style id.
func (st *Style) BasedOn() string { return wVal(wChild(st.el, "basedOn")) }

// DisplayName returns the name as shown in the UI. Built-in styles are
// stored in lower case ("heading 1") but displayed capitalized.
func (st *Style) DisplayName() string {
	name := st.Name()
	if name == "" {
		return st.ID()
	}
	if _, ok := lookupBuiltin(name); !ok || name != strings.ToLower(name) {
		return name
	}
	words := strings.Fields(name)
	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}

func (st *Style) runProps() *etree.Element {
	return ensureWChild(st.el, "rPr", styleOrder)
}

// ParagraphProps returns the style's w:pPr, creating it when missing.
func (st *Style) ParagraphProps() *etree.Element {
	return ensureWChild(st.el, "pPr", styleOrder)
}

// SetBold toggles bold in the style.
func (st *Style) SetBold(on bool) { setToggle(st.runProps(), "b", on, rPrOrder) }

// SetItalic toggles italics in the style.
func (st *Style) SetItalic(on bool) { setToggle(st.runProps(), "i", on, rPrOrder) }

// SetFontSize sets the style font size in points.
func (st *Style) SetFontSize(pt float64) { setFontSize(st.runProps(), pt) }

// SetFont sets the style font family.
func (st *Style) SetFont(name string) { setFontName(st.runProps(), name) }

// SetColor sets the style text color (RRGGBB).
func (st *Style) SetColor(hex string) { setVal(st.runProps(), "color", normalizeColor(hex), rPrOrder) }

// FontSize returns the style font size in points, 0 when unset.
func (st *Style) FontSize() float64 {
	return float64(wAttrInt(wChild(wChild(st.el, "rPr"), "sz"), "val", 0)) / 2
}

// FontName returns the ascii font family, "" when unset.
func (st *Style) FontName() string {
	return attr(wChild(wChild(st.el, "rPr"), "rFonts"), "w:ascii")
}

// Bold reports whether the style sets bold.
func (st *Style) Bold() bool { return toggleOn(wChild(st.el, "rPr"), "b") }
