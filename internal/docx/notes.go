package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

// NoteKind selects footnotes or endnotes.
type NoteKind string

const (
	Footnote NoteKind = "footnote"
	Endnote  NoteKind = "endnote"
)

func (k NoteKind) relType() string {
	if k == Endnote {
		return RelEndnotes
	}
	return RelFootnotes
}

func (k NoteKind) contentType() string {
	if k == Endnote {
		return CTEndnotes
	}
	return CTFootnotes
}

func (k NoteKind) blank() string {
	if k == Endnote {
		return blankEndnotes
	}
	return blankFootnotes
}

func (k NoteKind) textStyle() string {
	if k == Endnote {
		return "endnote text"
	}
	return "footnote text"
}

func (k NoteKind) referenceStyle() string {
	if k == Endnote {
		return "endnote reference"
	}
	return "footnote reference"
}

// Note is one footnote or endnote.
type Note struct {
	ID   int
	Text string
}

func (d *Document) notesRoot(kind NoteKind) (*etree.Element, error) {
	part, err := d.relatedPart(kind.relType(), "word/"+string(kind)+"s.xml", kind.contentType(), kind.blank())
	if err != nil {
		return nil, err
	}
	doc, err := d.pkg.XML(part)
	if err != nil {
		return nil, err
	}
	return doc.Root(), nil
}

func (d *Document) hasNotes(kind NoteKind) bool {
	_, ok := d.pkg.FindRelationship(d.mainPart, kind.relType())
	return ok
}

// Notes lists the user notes (separators excluded) of kind.
func (d *Document) Notes(kind NoteKind) ([]Note, error) {
	if !d.hasNotes(kind) {
		return nil, nil
	}
	root, err := d.notesRoot(kind)
	if err != nil {
		return nil, err
	}
	var out []Note
	for _, n := range wChildren(root, string(kind)) {
		if isSeparatorNote(n) {
			continue
		}
		out = append(out, Note{ID: wAttrInt(n, "id", 0), Text: noteText(n)})
	}
	return out, nil
}

func isSeparatorNote(n *etree.Element) bool {
	t := n.SelectAttrValue("w:type", "normal")
	return t != "normal"
}

func noteText(n *etree.Element) string {
	text := ""
	for i, p := range wChildren(n, "p") {
		if i > 0 {
			text += "\n"
		}
		para := Paragraph{el: p}
		text += para.Text()
	}
	if len(text) > 0 && text[0] == ' ' {
		text = text[1:]
	}
	return text
}

func nextNoteID(root *etree.Element, kind NoteKind) int {
	next := 1
	for _, n := range wChildren(root, string(kind)) {
		if id := wAttrInt(n, "id", 0); id >= next {
			next = id + 1
		}
	}
	return next
}

// AddNote appends a footnote or endnote reference at the end of p and
// creates the note body. It returns the new note id.
func (d *Document) AddNote(kind NoteKind, p *Paragraph, text string) (int, error) {
	root, err := d.notesRoot(kind)
	if err != nil {
		return 0, err
	}
	styles, err := d.Styles()
	if err != nil {
		return 0, err
	}
	refStyle, _ := styles.Ensure(kind.referenceStyle())
	textStyle, _ := styles.Ensure(kind.textStyle())

	id := nextNoteID(root, kind)
	sid := strconv.Itoa(id)

	ref := &Run{el: p.el.CreateElement("w:r")}
	if refStyle != nil {
		ref.SetStyle(refStyle.ID())
	}
	ref.el.CreateElement("w:" + string(kind) + "Reference").CreateAttr("w:id", sid)

	note := root.CreateElement("w:" + string(kind))
	note.CreateAttr("w:id", sid)
	np := &Paragraph{el: note.CreateElement("w:p")}
	if textStyle != nil {
		np.setStyleID(textStyle.ID())
	}
	mark := &Run{el: np.el.CreateElement("w:r")}
	if refStyle != nil {
		mark.SetStyle(refStyle.ID())
	}
	mark.el.CreateElement("w:" + string(kind) + "Ref")
	np.AddRun(" " + text)
	return id, nil
}

// ConvertFootnotesToEndnotes moves every footnote into the endnotes part,
// rewriting references in the body. It returns the number converted.
func (d *Document) ConvertFootnotesToEndnotes() (int, error) {
	if !d.hasNotes(Footnote) {
		return 0, nil
	}
	fnRoot, err := d.notesRoot(Footnote)
	if err != nil {
		return 0, err
	}
	enRoot, err := d.notesRoot(Endnote)
	if err != nil {
		return 0, err
	}
	styles, err := d.Styles()
	if err != nil {
		return 0, err
	}
	enRef, _ := styles.Ensure(Endnote.referenceStyle())
	enText, _ := styles.Ensure(Endnote.textStyle())
	fnRef, _ := styles.Find(Footnote.referenceStyle())
	fnText, _ := styles.Find(Footnote.textStyle())

	idMap := map[string]string{}
	next := nextNoteID(enRoot, Endnote)
	for _, fn := range wChildren(fnRoot, "footnote") {
		if isSeparatorNote(fn) {
			continue
		}
		oldID := fn.SelectAttrValue("w:id", "")
		newID := strconv.Itoa(next)
		next++
		idMap[oldID] = newID

		en := fn.Copy()
		en.Tag = "endnote"
		en.CreateAttr("w:id", newID)
		for _, e := range en.FindElements(".//footnoteRef") {
			e.Tag = "endnoteRef"
		}
		retagStyles(en, fnRef, enRef, fnText, enText)
		enRoot.AddChild(en)
		fnRoot.RemoveChild(fn)
	}

	for _, ref := range d.body().FindElements(".//footnoteReference") {
		newID, ok := idMap[ref.SelectAttrValue("w:id", "")]
		if !ok {
			continue
		}
		ref.Tag = "endnoteReference"
		ref.CreateAttr("w:id", newID)
		if run := ref.Parent(); run != nil {
			retagStyles(run, fnRef, enRef, fnText, enText)
		}
	}
	return len(idMap), nil
}

func retagStyles(e *etree.Element, fnRef, enRef, fnText, enText *Style) {
	swap := func(from, to *Style, tag string) {
		if from == nil || to == nil {
			return
		}
		for _, s := range e.FindElements(".//" + tag) {
			if s.SelectAttrValue("w:val", "") == from.ID() {
				s.CreateAttr("w:val", to.ID())
			}
		}
	}
	swap(fnRef, enRef, "rStyle")
	swap(fnText, enText, "pStyle")
}

// SetNoteNumbering applies number format and start value to every section.
func (d *Document) SetNoteNumbering(kind NoteKind, numFmt string, start int) {
	for _, s := range d.Sections() {
		s.SetNoteProperties(string(kind), numFmt, start)
	}
}
