package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\nkey: value\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_CRLF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\nkey: value\r\n---\r\nBody\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("Body\r\n"), body)
}

func TestSplit_EmptyAndUnterminated(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\nBody"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("Body"), body)

	fm, body, had, err = Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\n"), fm)
	require.Empty(t, body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.False(t, had)
}

func TestParseYAML(t *testing.T) {
	fields, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, fields)

	fields, err = ParseYAML([]byte("a: 1\nb: [x, y]\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, fields["a"])
	assert.Equal(t, []any{"x", "y"}, fields["b"])

	_, err = ParseYAML([]byte("a: [unclosed"))
	require.Error(t, err)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Metadata
		body string
	}{
		{
			name: "no frontmatter",
			in:   "# Hello\n",
			body: "# Hello\n",
		},
		{
			name: "scalar fields",
			in:   "---\ntitle: The Book\nauthor: Ann\nsubject: Testing\nkeywords: a, b ,c\n---\nText\n",
			want: Metadata{Title: "The Book", Author: "Ann", Subject: "Testing", Keywords: []string{"a", "b", "c"}},
			body: "Text\n",
		},
		{
			name: "list fields and aliases",
			in:   "---\nauthors: [Ann, Bo]\ndescription: About\ntags:\n  - go\n  - docx\n---\n",
			want: Metadata{Author: "Ann, Bo", Subject: "About", Keywords: []string{"go", "docx"}},
			body: "",
		},
		{
			name: "unknown fields ignored",
			in:   "---\nweight: 3\n---\nBody",
			body: "Body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, body, err := Extract([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
			assert.Equal(t, tt.body, string(body))
			assert.Equal(t, tt.want.IsZero(), m.IsZero())
		})
	}

	_, _, err := Extract([]byte("---\ntitle: [\n---\n"))
	require.Error(t, err)
}
