package filegate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDocxExtension(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"book", "book.docx"},
		{"book.docx", "book.docx"},
		{"Book.DOCX", "Book.DOCX"},
		{"notes.txt", "notes.txt.docx"},
		{"dir/chapter", "dir/chapter.docx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EnsureDocxExtension(tt.in), tt.in)
	}
}

func TestCheckWriteableExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.docx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	ok, reason := CheckWriteable(path)
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestCheckWriteableMissingFileInExistingDir(t *testing.T) {
	dir := t.TempDir()
	ok, reason := CheckWriteable(filepath.Join(dir, "new.docx"))
	assert.True(t, ok, reason)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file must be removed")
}

func TestCheckWriteableMissingDir(t *testing.T) {
	ok, reason := CheckWriteable(filepath.Join(t.TempDir(), "nope", "new.docx"))
	assert.False(t, ok)
	assert.Contains(t, reason, "does not exist")
}

func TestCheckWriteableDirectory(t *testing.T) {
	ok, reason := CheckWriteable(t.TempDir())
	assert.False(t, ok)
	assert.Contains(t, reason, "is a directory")
}

func TestPrecondition(t *testing.T) {
	dir := t.TempDir()

	path, msg := Precondition(filepath.Join(dir, "missing"))
	assert.Equal(t, filepath.Join(dir, "missing.docx"), path)
	assert.Equal(t, "Document "+path+" does not exist", msg)

	existing := filepath.Join(dir, "there.docx")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o600))
	path, msg = Precondition(filepath.Join(dir, "there"))
	assert.Equal(t, existing, path)
	assert.Empty(t, msg)
}

func TestCopyDocument(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "book.docx")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0o600))

	ok, msg, dst := CopyDocument(src, "")
	require.True(t, ok, msg)
	assert.Equal(t, filepath.Join(dir, "book_copy.docx"), dst)
	assert.Equal(t, "Document copied to "+dst, msg)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	ok, _, dst = CopyDocument(src, filepath.Join(dir, "named"))
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "named.docx"), dst)
}

func TestCopyDocumentMissingSource(t *testing.T) {
	ok, msg, dst := CopyDocument(filepath.Join(t.TempDir(), "ghost.docx"), "")
	assert.False(t, ok)
	assert.Empty(t, dst)
	assert.Contains(t, msg, "does not exist")
}
