package docx

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Text returns the body text: paragraphs and table rows in document order,
// one per line.
func (d *Document) Text() string {
	var lines []string
	for _, c := range d.body().ChildElements() {
		switch {
		case isW(c, "p"):
			p := Paragraph{el: c}
			lines = append(lines, p.Text())
		case isW(c, "tbl"):
			t := Table{el: c}
			lines = append(lines, t.Text())
		}
	}
	return strings.Join(lines, "\n")
}

// ParagraphText joins the non-empty body paragraphs with newlines. Tables
// are left out.
func (d *Document) ParagraphText() string {
	var parts []string
	for _, p := range d.Paragraphs() {
		if t := p.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// RunsInRange isolates the text between rune offsets [start, end) into
// whole runs, splitting the runs at the boundaries, and returns them.
func (p *Paragraph) RunsInRange(start, end int) ([]*Run, error) {
	total := runeLen(p.Text())
	if start < 0 || end > total || start >= end {
		return nil, fmt.Errorf("%w: range %d-%d (paragraph has %d characters)", ErrIndexOutOfRange, start, end, total)
	}
	var out []*Run
	pos := 0
	for _, r := range p.Runs() {
		n := runeLen(r.Text())
		rs, re := pos, pos+n
		pos = re
		if n == 0 || re <= start || rs >= end {
			continue
		}
		cur := r
		if start > rs {
			_, cur = cur.splitAt(start - rs)
			rs = start
		}
		if end < re {
			cur, _ = cur.splitAt(end - rs)
		}
		out = append(out, cur)
	}
	return out, nil
}

// splitAt cuts the run after k characters. The original element keeps the
// right half; a copy holding the left half is inserted before it.
func (r *Run) splitAt(k int) (*Run, *Run) {
	left := r.el.Copy()
	trimRunContent(left, 0, k)
	trimRunContent(r.el, k, -1)
	if parent := r.el.Parent(); parent != nil {
		parent.InsertChildAt(r.el.Index(), left)
	}
	return &Run{el: left}, r
}

// trimRunContent keeps only the run content in [from, to); to < 0 means
// up to the end.
func trimRunContent(run *etree.Element, from, to int) {
	pos := 0
	inRange := func(p int) bool { return p >= from && (to < 0 || p < to) }
	for _, c := range run.ChildElements() {
		if isW(c, "rPr") {
			continue
		}
		var length int
		if isW(c, "t") {
			length = runeLen(c.Text())
		} else {
			length = runeLen(runContentText(c))
		}
		start, end := pos, pos+length
		pos = end
		if length == 0 {
			if !inRange(start) {
				run.RemoveChild(c)
			}
			continue
		}
		lo, hi := max(start, from), end
		if to >= 0 {
			hi = min(end, to)
		}
		if lo >= hi {
			run.RemoveChild(c)
			continue
		}
		if isW(c, "t") {
			rs := []rune(c.Text())
			s := string(rs[lo-start : hi-start])
			c.SetText(s)
			if strings.TrimSpace(s) != s {
				c.CreateAttr("xml:space", "preserve")
			}
		}
	}
}

// Replace substitutes every occurrence of find in the paragraph text and
// returns the number of replacements. Occurrences within one run keep
// their formatting; when a match spans runs the paragraph text is merged
// into its first run.
func (p *Paragraph) Replace(find, repl string) int {
	if find == "" {
		return 0
	}
	text := p.Text()
	count := strings.Count(text, find)
	if count == 0 {
		return 0
	}
	runs := p.Runs()
	inRun := 0
	for _, r := range runs {
		inRun += strings.Count(r.Text(), find)
	}
	if inRun == count {
		for _, r := range runs {
			if t := r.Text(); strings.Contains(t, find) {
				r.SetText(strings.ReplaceAll(t, find, repl))
			}
		}
		return count
	}
	var textRuns []*Run
	for _, r := range runs {
		if r.Text() != "" {
			textRuns = append(textRuns, r)
		}
	}
	textRuns[0].SetText(strings.ReplaceAll(text, find, repl))
	for _, r := range textRuns[1:] {
		if parent := r.el.Parent(); parent != nil {
			parent.RemoveChild(r.el)
		}
	}
	return count
}
