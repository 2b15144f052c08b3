package docx

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/beevik/etree"
)

var bookmarkNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,39}$`)

// Bookmarks returns the names of all bookmarks in the body.
func (d *Document) Bookmarks() []string {
	var names []string
	for _, b := range d.body().FindElements(".//bookmarkStart") {
		if b.Space == "w" {
			names = append(names, b.SelectAttrValue("w:name", ""))
		}
	}
	return names
}

func (d *Document) nextBookmarkID() int {
	next := 0
	for _, b := range d.body().FindElements(".//bookmarkStart") {
		if id := wAttrInt(b, "id", -1); id >= next {
			next = id + 1
		}
	}
	return next
}

// AddBookmark wraps the whole content of p in a bookmark called name.
func (d *Document) AddBookmark(p *Paragraph, name string) error {
	if !bookmarkNameRe.MatchString(name) {
		return fmt.Errorf("invalid bookmark name %q: must start with a letter and contain only letters, digits or underscores (max 40)", name)
	}
	for _, existing := range d.Bookmarks() {
		if existing == name {
			return fmt.Errorf("bookmark '%s' already exists", name)
		}
	}
	id := strconv.Itoa(d.nextBookmarkID())

	start := etree.NewElement("w:bookmarkStart")
	start.CreateAttr("w:id", id)
	start.CreateAttr("w:name", name)
	idx := 0
	if pPr := wChild(p.el, "pPr"); pPr != nil {
		idx = pPr.Index() + 1
	}
	p.el.InsertChildAt(idx, start)

	end := p.el.CreateElement("w:bookmarkEnd")
	end.CreateAttr("w:id", id)
	return nil
}

// AddHyperlink appends a hyperlink run to p. Exactly one of url (external
// target) or anchor (bookmark name) is used; url wins when both are set.
func (d *Document) AddHyperlink(p *Paragraph, text, url, anchor string) error {
	link := etree.NewElement("w:hyperlink")
	switch {
	case url != "":
		rID, err := d.pkg.AddRelationship(d.mainPart, RelHyperlink, url, true)
		if err != nil {
			return err
		}
		ensureNamespace(d.xml.Root(), "r", NSRelationships)
		link.CreateAttr("r:id", rID)
	case anchor != "":
		link.CreateAttr("w:anchor", anchor)
	default:
		return fmt.Errorf("hyperlink needs a url or a bookmark")
	}
	link.CreateAttr("w:history", "1")

	r := &Run{el: link.CreateElement("w:r")}
	r.SetText(text)
	if styles, err := d.Styles(); err == nil {
		if st, ok := styles.Ensure("Hyperlink"); ok {
			r.SetStyle(st.ID())
		}
	}
	p.el.AddChild(link)
	return nil
}

// Hyperlink describes a hyperlink found in the body.
type Hyperlink struct {
	Text   string
	URL    string
	Anchor string
}

// Hyperlinks lists the hyperlinks of the body in document order.
func (d *Document) Hyperlinks() []Hyperlink {
	var out []Hyperlink
	for _, h := range d.body().FindElements(".//hyperlink") {
		if h.Space != "w" {
			continue
		}
		link := Hyperlink{Anchor: h.SelectAttrValue("w:anchor", "")}
		if rID := h.SelectAttrValue("r:id", ""); rID != "" {
			if rel, ok := d.pkg.Relationship(d.mainPart, rID); ok {
				link.URL = rel.Target
			}
		}
		p := Paragraph{el: h}
		link.Text = p.Text()
		out = append(out, link)
	}
	return out
}
