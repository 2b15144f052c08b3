package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
	"git.home.luguber.info/inful/docxbuilder/internal/export"
)

type harness struct {
	t    *testing.T
	env  *Env
	dir  string
	byID map[string]Tool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{t: t, env: NewEnv(dir), dir: dir, byID: map[string]Tool{}}
	h.reindex()
	return h
}

func (h *harness) reindex() {
	for _, tool := range Catalog(h.env) {
		h.byID[tool.Name] = tool
	}
}

func (h *harness) call(name string, args map[string]any) string {
	h.t.Helper()
	tool, ok := h.byID[name]
	require.True(h.t, ok, "unknown tool %s", name)
	out, err := tool.Handler(context.Background(), args)
	require.NoError(h.t, err)
	return out
}

func (h *harness) path(name string) string { return filepath.Join(h.dir, name) }

// newDoc creates book.docx and returns its path.
func (h *harness) newDoc() string {
	h.t.Helper()
	out := h.call("create_document", map[string]any{"filename": "book"})
	require.Equal(h.t, "Document "+h.path("book.docx")+" created successfully", out)
	return h.path("book.docx")
}

func (h *harness) open(path string) *docx.Document {
	h.t.Helper()
	d, err := docx.Open(path)
	require.NoError(h.t, err)
	return d
}

func TestCreateAndInspectDocument(t *testing.T) {
	h := newHarness(t)
	out := h.call("create_document", map[string]any{"filename": "book", "title": "Field Notes", "author": "R. Writer"})
	path := h.path("book.docx")
	require.Equal(t, "Document "+path+" created successfully", out)

	assert.Equal(t, "Heading 'Intro' (level 1) added to "+path,
		h.call("add_heading", map[string]any{"filename": "book", "text": "Intro"}))
	assert.Equal(t, "Paragraph added to "+path,
		h.call("add_paragraph", map[string]any{"filename": "book", "text": "The cake was baked."}))
	assert.Equal(t, "Style 'Fancy' not found, paragraph added with default style to "+path,
		h.call("add_paragraph", map[string]any{"filename": "book", "text": "plain", "style": "Fancy"}))

	assert.Equal(t, "Intro\nThe cake was baked.\nplain", h.call("get_document_text", map[string]any{"filename": "book"}))

	var info struct {
		Title          string `json:"title"`
		Author         string `json:"author"`
		ParagraphCount int    `json:"paragraph_count"`
		WordCount      int    `json:"word_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(h.call("get_document_info", map[string]any{"filename": "book"})), &info))
	assert.Equal(t, "Field Notes", info.Title)
	assert.Equal(t, "R. Writer", info.Author)
	assert.Equal(t, 3, info.ParagraphCount)
	assert.Equal(t, 6, info.WordCount)

	var o outline
	require.NoError(t, json.Unmarshal([]byte(h.call("get_document_outline", map[string]any{"filename": "book"})), &o))
	require.Len(t, o.Paragraphs, 3)
	assert.Equal(t, "Heading 1", o.Paragraphs[0].Style)
	assert.Empty(t, o.Tables)
}

func TestMissingDocument(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "Document "+h.path("nope.docx")+" does not exist",
		h.call("add_paragraph", map[string]any{"filename": "nope", "text": "x"}))
	assert.Equal(t, "Document "+h.path("nope.docx")+" does not exist",
		h.call("extract_text", map[string]any{"filename": "nope.docx"}))
}

func TestListAvailableDocuments(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "No Word documents found in "+h.dir, h.call("list_available_documents", map[string]any{}))

	h.newDoc()
	h.call("copy_document", map[string]any{"source_filename": "book"})
	out := h.call("list_available_documents", map[string]any{})
	assert.True(t, strings.HasPrefix(out, "Found 2 Word documents in "+h.dir+":\n- book.docx ("), out)
	assert.Contains(t, out, "\n- book_copy.docx (")

	assert.Equal(t, "Directory "+h.path("missing")+" does not exist",
		h.call("list_available_documents", map[string]any{"directory": "missing"}))
}

func TestParagraphEditing(t *testing.T) {
	h := newHarness(t)
	path := h.newDoc()
	h.call("add_paragraph", map[string]any{"filename": "book", "text": "Hello world"})

	assert.Equal(t, "Invalid paragraph index. Document has 1 paragraphs (0-0).",
		h.call("delete_paragraph", map[string]any{"filename": "book", "paragraph_index": 3}))

	assert.Equal(t, "Text 'Hello' formatted successfully in paragraph 0.",
		h.call("format_text", map[string]any{"filename": "book", "paragraph_index": 0, "start_pos": 0, "end_pos": 5, "bold": true}))
	assert.Equal(t, "Invalid text positions. Paragraph has 11 characters.",
		h.call("format_text", map[string]any{"filename": "book", "paragraph_index": 0, "start_pos": 4, "end_pos": 50}))

	runs := h.open(path).Paragraphs()[0].Runs()
	require.Len(t, runs, 2)
	assert.True(t, runs[0].Bold())
	assert.Equal(t, "Hello", runs[0].Text())
	assert.False(t, runs[1].Bold())

	assert.Equal(t, "Replaced 1 occurrence(s) of 'world' with 'there'.",
		h.call("search_and_replace", map[string]any{"filename": "book", "find_text": "world", "replace_text": "there"}))
	assert.Equal(t, "No occurrences of 'world' found.",
		h.call("search_and_replace", map[string]any{"filename": "book", "find_text": "world", "replace_text": "there"}))

	var para paragraphInfo
	require.NoError(t, json.Unmarshal([]byte(h.call("get_paragraph_text_from_document",
		map[string]any{"filename": "book", "paragraph_index": 0})), &para))
	assert.Equal(t, "Hello there", para.Text)
	assert.False(t, para.IsHeading)

	assert.Equal(t, "Paragraph at index 0 deleted successfully.",
		h.call("delete_paragraph", map[string]any{"filename": "book", "paragraph_index": 0}))
	assert.Empty(t, h.open(path).Paragraphs())
}

func TestFindText(t *testing.T) {
	h := newHarness(t)
	h.newDoc()
	h.call("add_paragraph", map[string]any{"filename": "book", "text": "Cat, cat and concatenate."})

	find := func(args map[string]any) findResult {
		args["filename"] = "book"
		var res findResult
		require.NoError(t, json.Unmarshal([]byte(h.call("find_text_in_document", args)), &res))
		return res
	}

	res := find(map[string]any{"text_to_find": "cat"})
	assert.Equal(t, 2, res.MatchCount)
	assert.Equal(t, 5, res.Occurrences[0].Position)

	res = find(map[string]any{"text_to_find": "cat", "match_case": false})
	assert.Equal(t, 3, res.MatchCount)

	res = find(map[string]any{"text_to_find": "cat", "match_case": false, "whole_word": true})
	assert.Equal(t, 2, res.MatchCount)
	assert.Equal(t, 0, res.Occurrences[0].Position)
	assert.Equal(t, 0, res.Occurrences[1].ParagraphIndex)
}

func TestTablesAndStyles(t *testing.T) {
	h := newHarness(t)
	path := h.newDoc()

	assert.Equal(t, "Table (2x2) added to "+path, h.call("add_table", map[string]any{
		"filename": "book", "rows": 2, "cols": 2,
		"data": []any{[]any{"Name", "Qty"}, []any{"Tea", "3"}},
	}))
	assert.Equal(t, "Table at index 0 formatted successfully.", h.call("format_table", map[string]any{
		"filename": "book", "table_index": 0, "has_header_row": true, "border_style": "Dashed",
		"shading": []any{[]any{"", "FFEEDD"}},
	}))
	assert.Equal(t, "Invalid border_style: wavy. Must be one of dashed, dotted, double, none, single, thick",
		h.call("format_table", map[string]any{"filename": "book", "table_index": 0, "border_style": "wavy"}))
	assert.Equal(t, "Invalid table index. Document has 1 tables (0-0).",
		h.call("format_table", map[string]any{"filename": "book", "table_index": 2}))

	table := h.open(path).Tables()[0]
	assert.Equal(t, "Name\tQty\nTea\t3", table.Text())
	cell, err := table.Cell(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "FFEEDD", cell.Shading())

	assert.Equal(t, "Style 'Pull Quote' created successfully.", h.call("create_custom_style", map[string]any{
		"filename": "book", "style_name": "Pull Quote", "italic": true, "font_size": 14, "base_style": "Normal",
	}))
	assert.Contains(t, h.call("create_custom_style", map[string]any{"filename": "book", "style_name": "Pull Quote"}),
		"Failed to create style: style 'Pull Quote' already exists")

	styles, err := h.open(path).Styles()
	require.NoError(t, err)
	st, ok := styles.Find("Pull Quote")
	require.True(t, ok)
	assert.Equal(t, 14.0, st.FontSize())
}

func TestCodeBlock(t *testing.T) {
	h := newHarness(t)
	path := h.newDoc()
	assert.Equal(t, "Code block added to "+path,
		h.call("add_code_block", map[string]any{"filename": "book", "code_text": "x := 1\ny := 2", "language": "go"}))

	d := h.open(path)
	cell, err := d.Tables()[0].Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "D9D9D9", cell.Shading())
	assert.Equal(t, "x := 1\ny := 2", cell.Text())

	styles, err := d.Styles()
	require.NoError(t, err)
	st, ok := styles.Find("CodeBlock")
	require.True(t, ok)
	assert.Equal(t, "Courier New", st.FontName())
}

func TestMarkdownImport(t *testing.T) {
	h := newHarness(t)
	path := h.newDoc()
	md := "# Title\n\nSome **bold** text.\n\n- one\n- two\n\n---\n"
	assert.Equal(t, "Markdown (5 blocks) added to "+path,
		h.call("add_markdown", map[string]any{"filename": "book", "markdown": md}))

	d := h.open(path)
	assert.Equal(t, "Title\nSome bold text.\n• one\n• two\n* * *", d.ParagraphText())
	ps := d.Paragraphs()
	assert.Equal(t, "Heading 1", d.ParagraphStyleName(ps[0]))
	assert.Equal(t, "List Paragraph", d.ParagraphStyleName(ps[2]))
	runs := ps[1].Runs()
	require.Len(t, runs, 3)
	assert.True(t, runs[1].Bold())
}

func TestMarkdownFrontmatter(t *testing.T) {
	h := newHarness(t)
	path := h.newDoc()
	md := "---\ntitle: Field Notes\nauthors: [Ann, Bo]\ntags: [birds, maps]\n---\nFirst entry.\n"
	assert.Equal(t, "Markdown (1 blocks) added to "+path,
		h.call("add_markdown", map[string]any{"filename": "book", "markdown": md}))

	props, err := h.open(path).CoreProperties()
	require.NoError(t, err)
	assert.Equal(t, "Field Notes", props.Title)
	assert.Equal(t, "Ann, Bo", props.Author)
	assert.Equal(t, "birds, maps", props.Keywords)
	assert.Equal(t, "First entry.", h.open(path).ParagraphText())

	assert.Contains(t, h.call("add_markdown", map[string]any{"filename": "book", "markdown": "---\ntitle: x\n"}),
		"Failed to add markdown: ")
}

func TestLayout(t *testing.T) {
	h := newHarness(t)
	path := h.newDoc()

	assert.Equal(t, "Page size set to 6x9 inches in "+path, h.call("set_page_size", map[string]any{
		"filename": "book", "width": 6, "height": 9, "margins": map[string]any{"top": 0.5},
	}))
	assert.Contains(t, h.call("set_page_size", map[string]any{
		"filename": "book", "width": 6, "height": 9, "margins": map[string]any{"middle": 1},
	}), "Failed to set page size:")
	assert.Equal(t, "Failed to set page size: page width and height must not be negative",
		h.call("set_page_size", map[string]any{"filename": "book", "width": 8.5, "height": -2}))
	assert.Equal(t, "Failed to set page size: page width and height must not be negative",
		h.call("set_page_size", map[string]any{"filename": "book", "width": -1, "height": 11}))

	assert.Equal(t, "Invalid break_type: weekly. Must be one of ['nextPage', 'evenPage', 'oddPage']",
		h.call("add_section_break", map[string]any{"filename": "book", "break_type": "weekly"}))
	assert.Equal(t, "Section break (oddPage) added to "+path,
		h.call("add_section_break", map[string]any{"filename": "book", "break_type": "oddPage"}))

	sections := h.open(path).Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, 8640, sections[0].PageWidth())
	assert.Equal(t, 720, sections[0].Margin("top"))
	assert.Equal(t, docx.SectionOddPage, sections[1].StartType())
}

func TestApplyTemplate(t *testing.T) {
	h := newHarness(t)
	src := h.newDoc()

	assert.Equal(t, "Template must be .docx or .dotx: "+h.path("t.txt"),
		h.call("apply_template", map[string]any{"template_path": "t.txt"}))
	assert.Equal(t, "Template file not found: "+h.path("t.dotx"),
		h.call("apply_template", map[string]any{"template_path": "t.dotx"}))
	assert.Equal(t, "Document copied to "+h.path("draft.docx"),
		h.call("apply_template", map[string]any{"template_path": filepath.Base(src), "destination_path": "draft"}))
	assert.FileExists(t, h.path("draft.docx"))
}

func TestChaptersAndBookPages(t *testing.T) {
	h := newHarness(t)
	path := h.path("novel.docx")

	assert.Equal(t, "Title page created: "+path, h.call("add_title_page", map[string]any{
		"filename": "novel", "title": "The Long Road", "subtitle": "A Novel", "author": "A. Author",
	}))
	assert.Equal(t, "Copyright page appended to "+path,
		h.call("add_copyright_page", map[string]any{"filename": "novel", "text": "(c) 2026"}))
	assert.Equal(t, "Front matter 'Preface' added to "+path,
		h.call("add_front_matter", map[string]any{"filename": "novel", "section": "Preface", "text": "Why."}))
	assert.Equal(t, "Chapter 1: Departure added to "+path,
		h.call("new_chapter", map[string]any{"filename": "novel", "title": "Departure"}))
	assert.Equal(t, "Chapter 2: Arrival added to "+path,
		h.call("new_chapter", map[string]any{"filename": "novel", "title": "Arrival"}))

	d := h.open(path)
	assert.Len(t, d.Sections(), 3)
	var lines []string
	for _, p := range d.Paragraphs() {
		if text := strings.TrimSpace(p.Text()); text != "" {
			lines = append(lines, text)
		}
	}
	assert.Equal(t, []string{
		"The Long Road", "A Novel", "A. Author", "(c) 2026", "Preface", "Why.",
		"Chapter 1: Departure", "Chapter 2: Arrival",
	}, lines)
	assert.True(t, d.Paragraphs()[0].Runs()[0].Bold())
}

func TestHeaderFooter(t *testing.T) {
	h := newHarness(t)
	path := h.newDoc()
	assert.Equal(t, "Header inserted into "+path, h.call("insert_header", map[string]any{
		"filename": "book", "text": "Page {pagenum}", "fields": []any{"pagenum"}, "alignment": "RIGHT",
	}))
	assert.Equal(t, "Footer inserted into "+path,
		h.call("insert_footer", map[string]any{"filename": "book", "text": "Draft {pagenum}"}))

	d := h.open(path)
	s := d.Sections()[0]
	hdr, err := d.HeaderFooter(s, docx.KindHeader)
	require.NoError(t, err)
	assert.Equal(t, "Page 1", hdr.Text())
	assert.Equal(t, docx.AlignRight, hdr.FirstParagraph().Alignment())

	ftr, err := d.HeaderFooter(s, docx.KindFooter)
	require.NoError(t, err)
	assert.Equal(t, "Draft {pagenum}", ftr.Text())
	assert.Equal(t, docx.AlignCenter, ftr.FirstParagraph().Alignment())
}

func TestProtectionRoundTrip(t *testing.T) {
	h := newHarness(t)
	path := h.newDoc()
	args := func(pw string) map[string]any { return map[string]any{"filename": "book", "password": pw} }

	assert.Equal(t, "Document "+path+" is not protected", h.call("unprotect_document", args("x")))
	assert.Equal(t, "Document "+path+" protected successfully", h.call("protect_document", args("secret")))
	assert.Equal(t, "Failed to unprotect document: incorrect password", h.call("unprotect_document", args("guess")))
	assert.Equal(t, "Document "+path+" unprotected successfully", h.call("unprotect_document", args("secret")))
}

func TestNotes(t *testing.T) {
	h := newHarness(t)
	path := h.newDoc()
	h.call("add_paragraph", map[string]any{"filename": "book", "text": "Claim."})

	assert.Equal(t, "No footnotes found in "+path,
		h.call("convert_footnotes_to_endnotes_in_document", map[string]any{"filename": "book"}))
	assert.Equal(t, "Footnote added to paragraph 0 in "+path,
		h.call("add_footnote_to_document", map[string]any{"filename": "book", "paragraph_index": 0, "footnote_text": "Source."}))
	assert.Equal(t, "Endnote added to paragraph 0 in "+path,
		h.call("add_endnote_to_document", map[string]any{"filename": "book", "paragraph_index": 0, "endnote_text": "Later."}))
	assert.Equal(t, "Invalid paragraph index. Document has 1 paragraphs (0-0).",
		h.call("add_footnote_to_document", map[string]any{"filename": "book", "paragraph_index": 9, "footnote_text": "x"}))
	assert.Equal(t, "Converted 1 footnote(s) to endnotes in "+path,
		h.call("convert_footnotes_to_endnotes_in_document", map[string]any{"filename": "book"}))

	notes, err := h.open(path).Notes(docx.Endnote)
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	assert.Equal(t, "Footnote style and numbering customized in "+path, h.call("customize_footnote_style", map[string]any{
		"filename": "book", "numbering_format": "I, II, III", "start_number": 3, "font_size": 9,
	}))
	assert.Equal(t, "Invalid numbering_format: roman",
		h.call("customize_footnote_style", map[string]any{"filename": "book", "numbering_format": "roman"}))
}

func TestNavigationAndCaptions(t *testing.T) {
	h := newHarness(t)
	path := h.newDoc()

	assert.Equal(t, "Document "+path+" has no paragraphs to bookmark",
		h.call("bookmark", map[string]any{"filename": "book", "name": "start"}))

	h.call("add_paragraph", map[string]any{"filename": "book", "text": "Chapter one begins."})
	assert.Equal(t, "Text 'missing' not found in "+path,
		h.call("bookmark", map[string]any{"filename": "book", "name": "start", "text": "missing"}))
	assert.Equal(t, "Bookmark 'start' added to "+path,
		h.call("bookmark", map[string]any{"filename": "book", "name": "start", "text": "one"}))

	assert.Equal(t, "Provide exactly one of url or bookmark",
		h.call("insert_hyperlink", map[string]any{"filename": "book", "text": "x"}))
	assert.Equal(t, "Bookmark 'end' not found in "+path,
		h.call("insert_hyperlink", map[string]any{"filename": "book", "text": "x", "bookmark": "end"}))
	assert.Equal(t, "Hyperlink 'Back' added to "+path,
		h.call("insert_hyperlink", map[string]any{"filename": "book", "text": "Back", "bookmark": "start"}))

	assert.Equal(t, "TOC placeholder inserted into "+path,
		h.call("insert_toc_placeholder", map[string]any{"filename": "book"}))
	assert.Equal(t, "Caption added: Figure 1: Map",
		h.call("insert_caption", map[string]any{"filename": "book", "object_type": "Figure", "text": "Map"}))
	assert.Equal(t, "Caption added: Figure 2: Chart",
		h.call("insert_caption", map[string]any{"filename": "book", "object_type": "Figure", "text": "Chart"}))
	assert.Equal(t, "List of Figures placeholder inserted into "+path,
		h.call("generate_list_of_figures", map[string]any{"filename": "book"}))
	assert.Equal(t, "List of Tables placeholder inserted into "+path,
		h.call("generate_list_of_tables", map[string]any{"filename": "book"}))

	d := h.open(path)
	assert.Equal(t, []string{"start"}, d.Bookmarks())
	links := d.Hyperlinks()
	require.Len(t, links, 1)
	assert.Equal(t, "start", links[0].Anchor)

	var instrs []string
	for _, p := range d.Paragraphs() {
		for _, fld := range p.Element().SelectElements("w:fldSimple") {
			instrs = append(instrs, fld.SelectAttrValue("w:instr", ""))
		}
	}
	assert.Equal(t, []string{tocInstruction, `TOC \h \z \c "Figure"`, `TOC \h \z \c "Table"`}, instrs)
}

func TestQualityChecks(t *testing.T) {
	h := newHarness(t)
	h.newDoc()
	h.call("add_paragraph", map[string]any{"filename": "book", "text": "The cake was baked. We ate it."})
	h.call("add_paragraph", map[string]any{"filename": "book", "text": ""})
	h.call("add_paragraph", map[string]any{"filename": "book", "text": "Fine."})

	assert.Equal(t, "The cake was baked. We ate it.\nFine.", h.call("extract_text", map[string]any{"filename": "book"}))
	assert.Equal(t, "[\n  \"The cake was baked.\"\n]", h.call("check_passive_voice", map[string]any{"filename": "book"}))
	assert.Equal(t, "[\n  \"The cake was baked.\"\n]",
		h.call("check_sentence_length", map[string]any{"filename": "book", "max_chars": 10}))
	assert.Equal(t, "[]", h.call("check_sentence_length", map[string]any{"filename": "book"}))
}

type recordingRunner struct {
	args []string
}

func (r *recordingRunner) LookPath(file string) (string, error) { return "/usr/bin/" + file, nil }

func (r *recordingRunner) Run(_ context.Context, _ string, args []string) (export.Result, error) {
	r.args = args
	return export.Result{}, nil
}

func TestExportAndProperties(t *testing.T) {
	h := newHarness(t)
	runner := &recordingRunner{}
	h.env.Export = export.New(export.WithRunner(runner))
	h.reindex()
	path := h.newDoc()

	assert.Equal(t, "EPUB created: "+h.path("book.epub"), h.call("to_epub", map[string]any{
		"filename": "book", "metadata": map[string]any{"title": "Book"},
	}))
	assert.Equal(t, []string{path, "-o", h.path("book.epub"), "--toc", "--metadata", "title=Book"}, runner.args)

	assert.Equal(t, "EPUB created: "+h.path("book.epub"), h.call("to_epub", map[string]any{
		"filename": "book", "toc": false,
		"metadata": map[string]any{"year": 2024, "rating": 4.5, "draft": true, "tags": []any{"a", "b"}, "note": nil},
	}))
	assert.Equal(t, []string{path, "-o", h.path("book.epub"),
		"--metadata", "draft=true",
		"--metadata", "note=",
		"--metadata", "rating=4.5",
		"--metadata", `tags=["a","b"]`,
		"--metadata", "year=2024",
	}, runner.args)

	assert.Equal(t, "PDF created: "+h.path("out.pdf"), h.call("to_pdf", map[string]any{
		"filename": "book", "output_filename": "out.pdf", "pdf_engine": "pdflatex",
	}))
	assert.Equal(t, []string{path, "-o", h.path("out.pdf"), "--pdf-engine", "pdflatex"}, runner.args)

	assert.Equal(t, "PDF created: "+h.path("book.pdf"), h.call("convert_to_pdf", map[string]any{"filename": "book"}))
	assert.Equal(t, "xelatex", runner.args[len(runner.args)-1])

	assert.Equal(t, "Metadata updated on "+path, h.call("set_core_properties", map[string]any{
		"filename": "book", "subject": "Travel", "keywords": []any{"road", "trip"},
	}))
	props, err := h.open(path).CoreProperties()
	require.NoError(t, err)
	assert.Equal(t, "Travel", props.Subject)
	assert.Equal(t, "road, trip", props.Keywords)
}

func TestAddPictureMissingImage(t *testing.T) {
	h := newHarness(t)
	h.newDoc()
	assert.Equal(t, "Image file not found: "+h.path("logo.png"),
		h.call("add_picture", map[string]any{"filename": "book", "image_path": "logo.png"}))
	_, err := os.Stat(h.path("logo.png"))
	assert.True(t, os.IsNotExist(err))
}
