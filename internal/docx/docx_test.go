package docx

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveAndReopen(t *testing.T, d *Document) *Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.docx")
	require.NoError(t, d.Save(path))
	reopened, err := Open(path)
	require.NoError(t, err)
	return reopened
}

func TestNewDocumentRoundTrip(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	_, err = d.AddHeading("Introduction", 1)
	require.NoError(t, err)
	d.AddParagraph("Hello world")
	_, err = d.AddHeading("Book", 0)
	require.NoError(t, err)

	r := saveAndReopen(t, d)
	ps := r.Paragraphs()
	require.Len(t, ps, 3)
	assert.Equal(t, "Introduction", ps[0].Text())
	assert.Equal(t, "Heading 1", r.ParagraphStyleName(ps[0]))
	assert.Equal(t, "Normal", r.ParagraphStyleName(ps[1]))
	assert.Equal(t, "Title", r.ParagraphStyleName(ps[2]))
	assert.Equal(t, "Introduction\nHello world\nBook", r.Text())
}

func TestAddHeadingRejectsLevel(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	_, err = d.AddHeading("x", 10)
	assert.Error(t, err)
	assert.Empty(t, d.Paragraphs())
}

func TestRunTextPreservesTabsAndBreaks(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	p := d.AddParagraph("a\tb\nc ")
	assert.Equal(t, "a\tb\nc ", p.Text())

	r := saveAndReopen(t, d)
	assert.Equal(t, "a\tb\nc ", r.Paragraphs()[0].Text())
}

func TestStylesAddAndFind(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	styles, err := d.Styles()
	require.NoError(t, err)

	st, err := styles.Add("paragraph", "Pull Quote", "Normal")
	require.NoError(t, err)
	st.SetItalic(true)
	st.SetFontSize(14)
	assert.Equal(t, "PullQuote", st.ID())
	assert.Equal(t, "Normal", st.BasedOn())

	_, err = styles.Add("paragraph", "pull quote", "")
	assert.ErrorContains(t, err, "already exists")

	found, ok := styles.Find("PULL QUOTE")
	require.True(t, ok)
	assert.Equal(t, float64(14), found.FontSize())

	_, err = d.AddStyledParagraph("quoted", "Pull Quote")
	require.NoError(t, err)
	_, err = d.AddStyledParagraph("nope", "Does Not Exist")
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestStylesEnsureInstallsBuiltins(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	styles, err := d.Styles()
	require.NoError(t, err)
	before := len(styles.All())

	// an empty styles part: every built-in is installed on demand
	styles.root.Child = nil
	_, ok := styles.Find("Heading 3")
	assert.False(t, ok)
	st, ok := styles.Ensure("Heading 3")
	require.True(t, ok)
	assert.Equal(t, "Heading3", st.ID())
	_, ok = styles.ByID("Normal")
	assert.True(t, ok, "base style installed with the heading")
	assert.Less(t, len(styles.All()), before)
}

func TestTables(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	tbl, err := d.AddTable(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, 3, tbl.ColCount())
	assert.Equal(t, "TableGrid", tbl.StyleID())

	c, err := tbl.Cell(0, 1)
	require.NoError(t, err)
	c.SetText("x")
	tbl.SetHeaderRow(true)
	tbl.ShadeRow(1, "#d9d9d9")
	tbl.SetBorders("single", 4)

	_, err = tbl.Cell(2, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	r := saveAndReopen(t, d)
	rt, err := r.Table(0)
	require.NoError(t, err)
	assert.Equal(t, "\tx\t\n\t\t", rt.Text())
	shaded, err := rt.Cell(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "D9D9D9", shaded.Shading())
	head, err := rt.Cell(0, 1)
	require.NoError(t, err)
	assert.True(t, head.Paragraphs()[0].Runs()[0].Bold())

	_, err = r.Table(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSectionsAndPageSize(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	d.AddParagraph("first")
	s := d.AddSection(SectionOddPage)
	d.AddParagraph("second")

	require.NoError(t, s.SetPageSize(6, 9))
	require.NoError(t, s.SetMargin("top", 0.5))
	assert.Error(t, s.SetMargin("middle", 1))

	r := saveAndReopen(t, d)
	secs := r.Sections()
	require.Len(t, secs, 2)
	assert.Equal(t, SectionNextPage, secs[0].StartType())
	assert.Equal(t, SectionOddPage, secs[1].StartType())
	assert.Equal(t, 8640, secs[1].PageWidth())
	assert.Equal(t, 12960, secs[1].PageHeight())
	assert.Equal(t, 720, secs[1].Margin("top"))
	assert.Equal(t, 12240, secs[0].PageWidth())
}

func TestSetPageSizeRejectsNegative(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	s := d.Sections()[0]

	require.ErrorIs(t, s.SetPageSize(8.5, -2), ErrNegativePageSize)
	require.ErrorIs(t, s.SetPageSize(-0.1, 11), ErrNegativePageSize)
	assert.Equal(t, 12240, s.PageWidth())
	assert.Equal(t, 15840, s.PageHeight())
}

func TestUnitConversionsRound(t *testing.T) {
	assert.Equal(t, 8640, InchesToTwips(6))
	assert.Equal(t, -2880, InchesToTwips(-2))
	assert.Equal(t, 1, InchesToTwips(0.0005))
	assert.Equal(t, int64(-914400), InchesToEMU(-1))
	assert.Equal(t, int64(457200), InchesToEMU(0.5))
	assert.Equal(t, 21, PointsToHalfPoints(10.5))
	assert.Equal(t, -3, PointsToHalfPoints(-1.5))
}

func TestHeaderFooterPerSection(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	d.AddSection(SectionNextPage)

	for _, s := range d.Sections() {
		h, err := d.HeaderFooter(s, KindHeader)
		require.NoError(t, err)
		h.FirstParagraph().SetText("Running head")
		f, err := d.HeaderFooter(s, KindFooter)
		require.NoError(t, err)
		f.FirstParagraph().AddSimpleField("PAGE", "1")
	}

	r := saveAndReopen(t, d)
	for _, s := range r.Sections() {
		h, err := r.HeaderFooter(s, KindHeader)
		require.NoError(t, err)
		assert.Equal(t, "Running head", h.Text())
		f, err := r.HeaderFooter(s, KindFooter)
		require.NoError(t, err)
		assert.Equal(t, "1", f.Text())
	}
}

func TestFootnotesConvertToEndnotes(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	p := d.AddParagraph("Claim.")
	id, err := d.AddNote(Footnote, p, "Source one")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	_, err = d.AddNote(Footnote, d.AddParagraph("Other."), "Source two")
	require.NoError(t, err)

	r := saveAndReopen(t, d)
	notes, err := r.Notes(Footnote)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "Source one", notes[0].Text)

	n, err := r.ConvertFootnotesToEndnotes()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	r = saveAndReopen(t, r)
	fns, err := r.Notes(Footnote)
	require.NoError(t, err)
	assert.Empty(t, fns)
	ens, err := r.Notes(Endnote)
	require.NoError(t, err)
	require.Len(t, ens, 2)
	assert.Equal(t, "Source two", ens[1].Text)
	assert.Len(t, r.body().FindElements(".//endnoteReference"), 2)
	assert.Empty(t, r.body().FindElements(".//footnoteReference"))
}

func TestConvertWithoutFootnotes(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	n, err := d.ConvertFootnotesToEndnotes()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProtection(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	require.NoError(t, d.Protect("secret"))

	r := saveAndReopen(t, d)
	prot, ok, err := r.Protection()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "readOnly", prot.Edit)
	assert.True(t, prot.Enforced)
	assert.Equal(t, "SHA-512", prot.Algorithm)

	assert.ErrorIs(t, r.Unprotect("wrong"), ErrWrongPassword)
	require.NoError(t, r.Unprotect("secret"))
	_, ok, err = r.Protection()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookmarksAndHyperlinks(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	target := d.AddParagraph("Chapter one")
	require.NoError(t, d.AddBookmark(target, "chapter_one"))
	assert.ErrorContains(t, d.AddBookmark(target, "chapter_one"), "already exists")
	assert.Error(t, d.AddBookmark(target, "1st"))

	p := d.AddParagraph("See ")
	require.NoError(t, d.AddHyperlink(p, "chapter one", "", "chapter_one"))
	require.NoError(t, d.AddHyperlink(p, " site", "https://example.com", ""))
	assert.Error(t, d.AddHyperlink(p, "nowhere", "", ""))

	r := saveAndReopen(t, d)
	assert.Equal(t, []string{"chapter_one"}, r.Bookmarks())
	assert.Equal(t, "Chapter one", r.Paragraphs()[0].Text())
	links := r.Hyperlinks()
	require.Len(t, links, 2)
	assert.Equal(t, Hyperlink{Text: "chapter one", Anchor: "chapter_one"}, links[0])
	assert.Equal(t, "https://example.com", links[1].URL)
	assert.Equal(t, "See chapter one site", r.Paragraphs()[1].Text())
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	path := filepath.Join(t.TempDir(), "figure.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestAddPicture(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	img := writePNG(t, 192, 96)

	_, err = d.AddPicture(img, 0)
	require.NoError(t, err)
	_, err = d.AddPicture(img, 4)
	require.NoError(t, err)

	r := saveAndReopen(t, d)
	assert.Equal(t, 2, r.Pictures())
	extents := r.body().FindElements(".//extent")
	require.Len(t, extents, 2)
	assert.Equal(t, "1828800", extents[0].SelectAttrValue("cx", ""))
	assert.Equal(t, "914400", extents[0].SelectAttrValue("cy", ""))
	assert.Equal(t, "3657600", extents[1].SelectAttrValue("cx", ""))
	assert.Equal(t, "1828800", extents[1].SelectAttrValue("cy", ""))
	assert.Equal(t, "image/png", r.Package().ContentType("word/media/image1.png"))

	text := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("not an image"), 0o600))
	_, err = d.AddPicture(text, 0)
	assert.Error(t, err)
}

func TestRunsInRangeSplitsRuns(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	p := d.AddParagraph("Hello big world")

	runs, err := p.RunsInRange(6, 9)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "big", runs[0].Text())
	runs[0].SetBold(true)

	all := p.Runs()
	require.Len(t, all, 3)
	assert.Equal(t, "Hello ", all[0].Text())
	assert.False(t, all[0].Bold())
	assert.True(t, all[1].Bold())
	assert.Equal(t, " world", all[2].Text())
	assert.Equal(t, "Hello big world", p.Text())

	_, err = p.RunsInRange(5, 99)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = p.RunsInRange(4, 4)
	assert.Error(t, err)
}

func TestReplace(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	p := d.AddParagraph("foo bar foo")
	assert.Equal(t, 2, p.Replace("foo", "baz"))
	assert.Equal(t, "baz bar baz", p.Text())
	assert.Zero(t, p.Replace("", "x"))

	q := d.AddParagraph("")
	q.AddRun("spl")
	q.AddRun("it word")
	assert.Equal(t, 1, q.Replace("split", "joined"))
	assert.Equal(t, "joined word", q.Text())
	assert.Len(t, q.Runs(), 1)
}

func TestCoreProperties(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	title, keywords := "My Book", "go, docx"
	require.NoError(t, d.UpdateCoreProperties(CorePropertiesUpdate{Title: &title, Keywords: &keywords}))
	require.NoError(t, d.StampCreated("tester"))

	r := saveAndReopen(t, d)
	cp, err := r.CoreProperties()
	require.NoError(t, err)
	assert.Equal(t, "My Book", cp.Title)
	assert.Equal(t, "go, docx", cp.Keywords)
	assert.Equal(t, "1", cp.Revision)
	assert.Equal(t, "tester", cp.LastModifiedBy)
	assert.True(t, strings.HasSuffix(cp.Modified, "Z"))
}

func TestTemplateMarkAsDocument(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	require.NoError(t, d.Package().SetOverride(d.MainPart(), CTTemplate))
	assert.True(t, d.IsTemplate())
	require.NoError(t, d.MarkAsDocument())
	assert.False(t, d.IsTemplate())
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read([]byte("not a zip"))
	assert.Error(t, err)
}

func TestDeleteParagraph(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	d.AddParagraph("a")
	d.AddParagraph("b")
	require.NoError(t, d.DeleteParagraph(0))
	assert.Equal(t, "b", d.Text())
	assert.ErrorIs(t, d.DeleteParagraph(3), ErrIndexOutOfRange)
}
