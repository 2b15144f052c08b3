package tools

import (
	"context"
	"unicode"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/export"
	"git.home.luguber.info/inful/docxbuilder/internal/qa"
)

type paragraphArgs struct {
	Filename       string `json:"filename" arg:"required" desc:"Path to the document"`
	ParagraphIndex int    `json:"paragraph_index" arg:"required" desc:"Zero-based body paragraph index"`
}

type findTextArgs struct {
	Filename  string `json:"filename" arg:"required" desc:"Path to the document"`
	Text      string `json:"text_to_find" arg:"required" desc:"Text to search for"`
	MatchCase bool   `json:"match_case" desc:"Case-sensitive matching"`
	WholeWord bool   `json:"whole_word" desc:"Match whole words only"`
}

type convertPDFArgs struct {
	Filename       string `json:"filename" arg:"required" desc:"Path to the document"`
	OutputFilename string `json:"output_filename" desc:"PDF path; defaults to the document name with .pdf"`
}

func extendedTools(env *Env) []Tool {
	return []Tool{
		Define("get_paragraph_text_from_document", "Get the text and style of one paragraph as JSON.",
			paragraphArgs{}, env.paragraphText),
		Define("find_text_in_document", "Find occurrences of text in a document as JSON.",
			findTextArgs{MatchCase: true}, env.findText),
		Define("convert_to_pdf", "Convert a Word document to PDF.",
			convertPDFArgs{}, env.convertToPDF),
	}
}

type paragraphInfo struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Style     string `json:"style"`
	IsHeading bool   `json:"is_heading"`
}

func (e *Env) paragraphText(_ context.Context, a paragraphArgs) (string, error) {
	return e.read(a.Filename, "Failed to get paragraph text", func(d *docx.Document, _ string) (string, error) {
		p, err := d.Paragraph(a.ParagraphIndex)
		if err != nil {
			return "", invalidParagraph(d)
		}
		style := d.ParagraphStyleName(p)
		return marshalIndent(paragraphInfo{
			Index:     a.ParagraphIndex,
			Text:      p.Text(),
			Style:     style,
			IsHeading: isHeadingStyle(style),
		})
	}), nil
}

func isHeadingStyle(name string) bool {
	return equalFoldPrefix(name, "heading") || name == "Title"
}

func equalFoldPrefix(s, prefix string) bool {
	rs, rp := []rune(s), []rune(prefix)
	if len(rs) < len(rp) {
		return false
	}
	for i, r := range rp {
		if unicode.ToLower(rs[i]) != unicode.ToLower(r) {
			return false
		}
	}
	return true
}

type occurrence struct {
	ParagraphIndex int    `json:"paragraph_index"`
	Position       int    `json:"position"`
	Context        string `json:"context"`
}

type findResult struct {
	Query       string       `json:"query"`
	MatchCount  int          `json:"match_count"`
	Occurrences []occurrence `json:"occurrences"`
}

const findContextChars = 100

func (e *Env) findText(_ context.Context, a findTextArgs) (string, error) {
	if a.Text == "" {
		return "Search text cannot be empty", nil
	}
	return e.read(a.Filename, "Failed to search for text", func(d *docx.Document, _ string) (string, error) {
		res := findResult{Query: a.Text, Occurrences: []occurrence{}}
		needle := foldRunes([]rune(a.Text), a.MatchCase)
		for i, p := range d.Paragraphs() {
			text := p.Text()
			for _, pos := range matchPositions(foldRunes([]rune(text), a.MatchCase), needle, a.WholeWord) {
				res.Occurrences = append(res.Occurrences, occurrence{
					ParagraphIndex: i,
					Position:       pos,
					Context:        qa.Excerpt(text, findContextChars),
				})
			}
		}
		res.MatchCount = len(res.Occurrences)
		return marshalIndent(res)
	}), nil
}

// foldRunes lowercases rs rune by rune unless matchCase is set, keeping
// positions aligned with the original text.
func foldRunes(rs []rune, matchCase bool) []rune {
	if matchCase {
		return rs
	}
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// matchPositions returns the non-overlapping rune offsets of needle in hay.
func matchPositions(hay, needle []rune, wholeWord bool) []int {
	var out []int
	for i := 0; i+len(needle) <= len(hay); {
		if !runesEqual(hay[i:i+len(needle)], needle) {
			i++
			continue
		}
		end := i + len(needle)
		if wholeWord && (i > 0 && isWordRune(hay[i-1]) || end < len(hay) && isWordRune(hay[end])) {
			i++
			continue
		}
		out = append(out, i)
		i = end
	}
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (e *Env) convertToPDF(ctx context.Context, a convertPDFArgs) (string, error) {
	return e.bridge().Convert(ctx, export.Request{
		Source: e.resolve(a.Filename),
		Output: e.resolve(a.OutputFilename),
		Format: export.FormatPDF,
	}), nil
}
