package lint

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docxbuilder/internal/docx"
)

func writeDoc(t *testing.T, dir, name string, paragraphs ...string) string {
	t.Helper()
	d, err := docx.New()
	require.NoError(t, err)
	for _, p := range paragraphs {
		d.AddParagraph(p)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, d.Save(path))
	return path
}

func TestLintFile(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("very ", 30) + "long."
	path := writeDoc(t, dir, "book.docx", "The cake was baked. Nobody saw it.", long)

	result, err := NewLinter(nil).LintPath(path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesTotal)
	require.Len(t, result.Issues, 2)

	byRule := map[string]Issue{}
	for _, issue := range result.Issues {
		byRule[issue.Rule] = issue
	}
	assert.Equal(t, 3, byRule["sentence-length"].Line)
	assert.Equal(t, SeverityWarning, byRule["sentence-length"].Severity)
	assert.Equal(t, 1, byRule["passive-voice"].Line)
	assert.Equal(t, SeverityWarning, byRule["passive-voice"].Severity)
	assert.Equal(t, "The cake was baked.", byRule["passive-voice"].Explanation)
	assert.True(t, result.HasWarnings())
	assert.False(t, result.HasErrors())
}

func TestLintDirectory(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.docx", "Clean prose here.")
	sub := filepath.Join(dir, "part")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeDoc(t, sub, "b.docx", "It was decided.")
	writeDoc(t, dir, "~$a.docx", "lock file")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.docx"), []byte("nope"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("It was decided."), 0o600))

	result, err := NewLinter(&Config{SkipPassive: true}).LintPath(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, result.FilesTotal)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "readable-document", result.Issues[0].Rule)
	assert.True(t, result.HasErrors())

	quiet, err := NewLinter(&Config{Quiet: true}).LintPath(dir)
	require.NoError(t, err)
	require.Len(t, quiet.Issues, 1)
	assert.Equal(t, SeverityError, quiet.Issues[0].Severity)
}

func TestLintPathMissing(t *testing.T) {
	_, err := NewLinter(nil).LintPath(filepath.Join(t.TempDir(), "missing.docx"))
	assert.Error(t, err)
}

func TestFormatters(t *testing.T) {
	result := &Result{
		FilesTotal: 1,
		Issues: []Issue{{
			FilePath: "book.docx", Severity: SeverityWarning, Rule: "sentence-length",
			Message: "Sentence has 130 characters (limit 120)", Line: 4,
		}},
	}

	var text bytes.Buffer
	require.NoError(t, NewFormatter("text").Format(&text, result, "book.docx", false))
	out := text.String()
	assert.Contains(t, out, "Reviewing: book.docx\n")
	assert.Contains(t, out, "\nbook.docx\n  ⚠ sentence 4 WARNING [sentence-length]: Sentence has 130 characters")
	assert.Contains(t, out, "1 document scanned, 0 errors, 1 warning, 0 info\n")
	assert.Contains(t, out, "Consider revising")

	text.Reset()
	require.NoError(t, NewFormatter("text").Format(&text, &Result{FilesTotal: 2}, ".", true))
	assert.Contains(t, text.String(), "Reviewing documents root: .\n")
	assert.Contains(t, text.String(), "2 documents scanned, 0 errors, 0 warnings, 0 info")
	assert.Contains(t, text.String(), "All documents pass review.")

	var js bytes.Buffer
	require.NoError(t, NewFormatter("json").Format(&js, result, "book.docx", true))
	var decoded Report
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.WarningCount)
	assert.True(t, decoded.Detected)
	require.Len(t, decoded.Issues, 1)
	assert.Equal(t, "WARNING", decoded.Issues[0].Severity)
	assert.Equal(t, 4, decoded.Issues[0].Sentence)

	js.Reset()
	require.NoError(t, NewFormatter("json").Format(&js, &Result{}, ".", false))
	assert.Contains(t, js.String(), `"issues": []`)
}
