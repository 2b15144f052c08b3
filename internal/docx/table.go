package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Table wraps a w:tbl element.
type Table struct {
	el *etree.Element
}

// Cell wraps a w:tc element.
type Cell struct {
	el *etree.Element
}

// Tables returns the body-level tables in order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, el := range wChildren(d.body(), "tbl") {
		out = append(out, &Table{el: el})
	}
	return out
}

// Table returns the body-level table at index.
func (d *Document) Table(index int) (*Table, error) {
	ts := d.Tables()
	if index < 0 || index >= len(ts) {
		return nil, fmt.Errorf("%w: table %d (document has %d tables)", ErrIndexOutOfRange, index, len(ts))
	}
	return ts[index], nil
}

// AddTable appends an empty rows x cols grid using the Table Grid style.
func (d *Document) AddTable(rows, cols int) (*Table, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("table needs at least one row and one column, got %dx%d", rows, cols)
	}
	styleID := ""
	if styles, err := d.Styles(); err == nil {
		if st, ok := styles.Ensure("Table Grid"); ok {
			styleID = st.ID()
		}
	}

	colWidth := d.textWidth() / cols
	tbl := etree.NewElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	if styleID != "" {
		setVal(tblPr, "tblStyle", styleID, tblPrOrder)
	}
	tblW := ensureWChild(tblPr, "tblW", tblPrOrder)
	tblW.CreateAttr("w:w", "0")
	tblW.CreateAttr("w:type", "auto")
	look := ensureWChild(tblPr, "tblLook", tblPrOrder)
	look.CreateAttr("w:val", "04A0")

	grid := tbl.CreateElement("w:tblGrid")
	for c := 0; c < cols; c++ {
		grid.CreateElement("w:gridCol").CreateAttr("w:w", strconv.Itoa(colWidth))
	}
	for r := 0; r < rows; r++ {
		tr := tbl.CreateElement("w:tr")
		for c := 0; c < cols; c++ {
			tc := tr.CreateElement("w:tc")
			tcW := tc.CreateElement("w:tcPr").CreateElement("w:tcW")
			tcW.CreateAttr("w:w", strconv.Itoa(colWidth))
			tcW.CreateAttr("w:type", "dxa")
			tc.CreateElement("w:p")
		}
	}
	d.appendBlock(tbl)
	return &Table{el: tbl}, nil
}

// textWidth is the usable width of the last section in twips.
func (d *Document) textWidth() int {
	s := d.bodySectPr()
	w := wAttrInt(wChild(s, "pgSz"), "w", 12240)
	mar := wChild(s, "pgMar")
	width := w - wAttrInt(mar, "left", 1440) - wAttrInt(mar, "right", 1440)
	if width <= 0 {
		return 9360
	}
	return width
}

// Element exposes the underlying w:tbl.
func (t *Table) Element() *etree.Element { return t.el }

func (t *Table) rows() []*etree.Element { return wChildren(t.el, "tr") }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows()) }

// ColCount returns the widest row's cell count.
func (t *Table) ColCount() int {
	n := len(wChildren(wChild(t.el, "tblGrid"), "gridCol"))
	for _, tr := range t.rows() {
		if c := len(wChildren(tr, "tc")); c > n {
			n = c
		}
	}
	return n
}

// Cell returns the cell at row r, column c.
func (t *Table) Cell(r, c int) (*Cell, error) {
	rows := t.rows()
	if r < 0 || r >= len(rows) {
		return nil, fmt.Errorf("%w: row %d", ErrIndexOutOfRange, r)
	}
	cells := wChildren(rows[r], "tc")
	if c < 0 || c >= len(cells) {
		return nil, fmt.Errorf("%w: column %d", ErrIndexOutOfRange, c)
	}
	return &Cell{el: cells[c]}, nil
}

// RowCells returns the cells of row r.
func (t *Table) RowCells(r int) []*Cell {
	rows := t.rows()
	if r < 0 || r >= len(rows) {
		return nil
	}
	var out []*Cell
	for _, tc := range wChildren(rows[r], "tc") {
		out = append(out, &Cell{el: tc})
	}
	return out
}

func (t *Table) props() *etree.Element {
	tblPr := wChild(t.el, "tblPr")
	if tblPr == nil {
		tblPr = etree.NewElement("w:tblPr")
		t.el.InsertChildAt(0, tblPr)
	}
	return tblPr
}

// StyleID returns the table style id.
func (t *Table) StyleID() string { return wVal(wChild(wChild(t.el, "tblPr"), "tblStyle")) }

// SetBorders sets all outer and inner borders. A style of "none" removes them.
func (t *Table) SetBorders(style string, size int) {
	tblPr := t.props()
	removeWChildren(tblPr, "tblBorders")
	borders := etree.NewElement("w:tblBorders")
	insertOrdered(tblPr, borders, tblPrOrder)
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", style)
		b.CreateAttr("w:sz", strconv.Itoa(size))
		b.CreateAttr("w:space", "0")
		b.CreateAttr("w:color", "auto")
	}
}

// SetHeaderRow marks the first row as a repeating header and bolds it.
func (t *Table) SetHeaderRow(on bool) {
	rows := t.rows()
	if len(rows) == 0 {
		return
	}
	first := rows[0]
	trPr := wChild(first, "trPr")
	if on {
		if trPr == nil {
			trPr = etree.NewElement("w:trPr")
			idx := 0
			if tblPrEx := wChild(first, "tblPrEx"); tblPrEx != nil {
				idx = tblPrEx.Index() + 1
			}
			first.InsertChildAt(idx, trPr)
		}
		if wChild(trPr, "tblHeader") == nil {
			trPr.CreateElement("w:tblHeader")
		}
	} else if trPr != nil {
		removeWChildren(trPr, "tblHeader")
	}
	for _, c := range t.RowCells(0) {
		for _, p := range c.Paragraphs() {
			for _, r := range p.Runs() {
				r.SetBold(on)
			}
		}
	}
}

// ShadeRow fills every cell of row r with the RRGGBB color.
func (t *Table) ShadeRow(r int, fill string) {
	for _, c := range t.RowCells(r) {
		c.SetShading(fill)
	}
}

// Text returns the table text, cells separated by tabs and rows by newlines.
func (t *Table) Text() string {
	var rows []string
	for i := range t.rows() {
		var cells []string
		for _, c := range t.RowCells(i) {
			cells = append(cells, c.Text())
		}
		rows = append(rows, strings.Join(cells, "\t"))
	}
	return strings.Join(rows, "\n")
}

// Paragraphs returns the cell's paragraphs.
func (c *Cell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, el := range wChildren(c.el, "p") {
		out = append(out, &Paragraph{el: el})
	}
	return out
}

// Text returns the cell text with paragraphs joined by newlines.
func (c *Cell) Text() string {
	var parts []string
	for _, p := range c.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the cell content with one paragraph holding text.
func (c *Cell) SetText(text string) *Paragraph {
	for _, el := range c.el.ChildElements() {
		if !isW(el, "tcPr") {
			c.el.RemoveChild(el)
		}
	}
	p := &Paragraph{el: c.el.CreateElement("w:p")}
	if text != "" {
		p.AddRun(text)
	}
	return p
}

// SetShading sets a solid background fill on the cell.
func (c *Cell) SetShading(fill string) {
	tcPr := wChild(c.el, "tcPr")
	if tcPr == nil {
		tcPr = etree.NewElement("w:tcPr")
		c.el.InsertChildAt(0, tcPr)
	}
	shd := ensureWChild(tcPr, "shd", tcPrOrder)
	shd.CreateAttr("w:val", "clear")
	shd.CreateAttr("w:color", "auto")
	shd.CreateAttr("w:fill", normalizeColor(fill))
}

// Shading returns the cell fill color, "" when unset.
func (c *Cell) Shading() string {
	return attr(wChild(wChild(c.el, "tcPr"), "shd"), "w:fill")
}
