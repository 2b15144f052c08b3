package markdown

import (
	"bytes"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

type BlockKind string

const (
	BlockHeading       BlockKind = "heading"
	BlockParagraph     BlockKind = "paragraph"
	BlockListItem      BlockKind = "list_item"
	BlockQuote         BlockKind = "quote"
	BlockCode          BlockKind = "code"
	BlockTable         BlockKind = "table"
	BlockThematicBreak BlockKind = "thematic_break"
)

// Span is a run of inline text sharing one formatting.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
	URL    string
}

// Block is one block-level element in document order.
//
// Level is the heading level for headings and the nesting depth (starting
// at 0) for list items. Number is the ordinal of an ordered list item.
type Block struct {
	Kind     BlockKind
	Level    int
	Ordered  bool
	Number   int
	Language string
	Code     string
	Spans    []Span
	Rows     [][]string
}

// Text returns the concatenated span text.
func (b Block) Text() string { return plain(b.Spans) }

// Blocks parses body and flattens it into blocks. Raw HTML is dropped.
func Blocks(body []byte, opts Options) []Block {
	root := ParseBody(body, opts)
	c := collector{src: body}
	c.children(root, 0, false)
	return c.out
}

type collector struct {
	src []byte
	out []Block
}

func (c *collector) children(n gmast.Node, depth int, quoted bool) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.block(child, depth, quoted)
	}
}

func (c *collector) block(n gmast.Node, depth int, quoted bool) {
	switch node := n.(type) {
	case *gmast.Heading:
		c.out = append(c.out, Block{Kind: BlockHeading, Level: node.Level, Spans: c.spans(node)})
	case *gmast.Paragraph, *gmast.TextBlock:
		kind := BlockParagraph
		if quoted {
			kind = BlockQuote
		}
		c.out = append(c.out, Block{Kind: kind, Spans: c.spans(node)})
	case *gmast.Blockquote:
		c.children(node, depth, true)
	case *gmast.List:
		c.list(node, depth)
	case *gmast.FencedCodeBlock:
		c.out = append(c.out, Block{Kind: BlockCode, Language: string(node.Language(c.src)), Code: c.lines(node)})
	case *gmast.CodeBlock:
		c.out = append(c.out, Block{Kind: BlockCode, Code: c.lines(node)})
	case *gmast.ThematicBreak:
		c.out = append(c.out, Block{Kind: BlockThematicBreak})
	case *extast.Table:
		c.out = append(c.out, Block{Kind: BlockTable, Rows: c.table(node)})
	case *gmast.HTMLBlock:
	default:
		c.children(node, depth, quoted)
	}
}

func (c *collector) list(l *gmast.List, depth int) {
	number := l.Start
	if number == 0 {
		number = 1
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		first := true
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch child.(type) {
			case *gmast.Paragraph, *gmast.TextBlock:
				b := Block{Kind: BlockListItem, Level: depth, Ordered: l.IsOrdered(), Spans: c.spans(child)}
				if first && b.Ordered {
					b.Number = number
				}
				c.out = append(c.out, b)
				first = false
			case *gmast.List:
				c.list(child.(*gmast.List), depth+1)
			default:
				c.block(child, depth, false)
			}
		}
		number++
	}
}

func (c *collector) lines(n gmast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (c *collector) table(t *extast.Table) [][]string {
	var rows [][]string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(plain(c.spans(cell))))
		}
		rows = append(rows, cells)
	}
	return rows
}

func plain(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// spans flattens the inline children of n, merging neighbours with equal
// formatting.
func (c *collector) spans(n gmast.Node) []Span {
	var out []Span
	c.inline(n, Span{}, &out)
	if len(out) > 0 {
		last := &out[len(out)-1]
		last.Text = strings.TrimRight(last.Text, " \n")
		if last.Text == "" {
			out = out[:len(out)-1]
		}
	}
	return out
}

func (c *collector) inline(n gmast.Node, style Span, out *[]Span) {
	emit := func(text string, st Span) {
		if text == "" {
			return
		}
		if k := len(*out); k > 0 {
			prev := &(*out)[k-1]
			if prev.Bold == st.Bold && prev.Italic == st.Italic && prev.Code == st.Code && prev.URL == st.URL {
				prev.Text += text
				return
			}
		}
		st.Text = text
		*out = append(*out, st)
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *gmast.Text:
			s := string(node.Segment.Value(c.src))
			switch {
			case node.HardLineBreak():
				s += "\n"
			case node.SoftLineBreak():
				s += " "
			}
			emit(s, style)
		case *gmast.String:
			emit(string(node.Value), style)
		case *gmast.CodeSpan:
			st := style
			st.Code = true
			c.inline(node, st, out)
		case *gmast.Emphasis:
			st := style
			if node.Level >= 2 {
				st.Bold = true
			} else {
				st.Italic = true
			}
			c.inline(node, st, out)
		case *gmast.Link:
			st := style
			st.URL = string(node.Destination)
			c.inline(node, st, out)
		case *gmast.AutoLink:
			st := style
			st.URL = string(node.URL(c.src))
			emit(string(node.Label(c.src)), st)
		case *gmast.RawHTML:
		default:
			c.inline(node, style, out)
		}
	}
}
