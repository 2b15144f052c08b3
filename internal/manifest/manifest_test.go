package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadPreservesOrderAndArgs(t *testing.T) {
	path := writeManifest(t, `{
  "steps": [
    {"tool": "create_document", "args": {"filename": "book.docx", "title": "Book"}},
    {"tool": "add_heading", "args": {"filename": "book.docx", "text": "One", "level": 2}},
    {"tool": "add_page_break"}
  ]
}`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Steps, 3)
	assert.Equal(t, []string{"create_document", "add_heading", "add_page_break"}, m.Tools())
	assert.Equal(t, "Book", m.Steps[0].Args["title"])
	assert.InDelta(t, 2.0, m.Steps[1].Args["level"], 0)
	assert.NotNil(t, m.Steps[2].Args)
	assert.Empty(t, m.Steps[2].Args)
}

func TestFromJSONEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		steps int
	}{
		{"empty steps", `{"steps": []}`, 0},
		{"missing steps", `{}`, 0},
		{"null steps", `{"steps": null}`, 0},
		{"null args", `{"steps": [{"tool": "x", "args": null}]}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromJSON([]byte(tt.body))
			require.NoError(t, err)
			require.NotNil(t, m.Steps)
			assert.Len(t, m.Steps, tt.steps)
			for _, s := range m.Steps {
				assert.NotNil(t, s.Args)
			}
		})
	}
}

func TestFromJSONWrongShapedSteps(t *testing.T) {
	m, err := FromJSON([]byte(`{"steps":[
		{"tool":"a","args":[1,2]},
		{"tool":5,"args":{"x":1}},
		{"tool":{"name":"b"}},
		{"args":{}},
		{"tool":"c","args":true}
	]}`))
	require.NoError(t, err)
	require.Len(t, m.Steps, 5)

	assert.Equal(t, []string{"a", "5", `{"name":"b"}`, "", "c"}, m.Tools())
	require.EqualError(t, m.Steps[0].ArgsErr, "arguments must be a JSON object, got array")
	assert.Nil(t, m.Steps[0].Args)
	assert.NoError(t, m.Steps[1].ArgsErr)
	assert.InDelta(t, 1.0, m.Steps[1].Args["x"], 0)
	assert.Equal(t, map[string]any{}, m.Steps[2].Args)
	require.EqualError(t, m.Steps[4].ArgsErr, "arguments must be a JSON object, got boolean")

	_, err = FromJSON([]byte(`{"steps":[5]}`))
	require.Error(t, err)
}

func TestHashSeesInvalidArgs(t *testing.T) {
	a, err := FromJSON([]byte(`{"steps":[{"tool":"a","args":[1,2]}]}`))
	require.NoError(t, err)
	b, err := FromJSON([]byte(`{"steps":[{"tool":"a","args":[1,3]}]}`))
	require.NoError(t, err)

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Load(writeManifest(t, `{"steps": [`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "parse manifest")

	_, err = Load(writeManifest(t, `[1, 2]`))
	require.Error(t, err)
}

func TestHashIgnoresFormatting(t *testing.T) {
	a, err := FromJSON([]byte(`{"steps":[{"tool":"a","args":{"x":1,"y":"z"}}]}`))
	require.NoError(t, err)
	b, err := FromJSON([]byte("{\n  \"steps\": [\n    {\"args\": {\"y\": \"z\", \"x\": 1}, \"tool\": \"a\"}\n  ]\n}"))
	require.NoError(t, err)
	c, err := FromJSON([]byte(`{"steps":[{"tool":"b","args":{"x":1,"y":"z"}}]}`))
	require.NoError(t, err)

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	hc, err := c.Hash()
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
	assert.Len(t, ha, 64)
}

func TestToJSONRoundTrip(t *testing.T) {
	m := &Manifest{Steps: []Step{{Tool: "to_pdf", Args: map[string]any{"input_docx": "b.docx"}}}}
	data, err := m.ToJSON()
	require.NoError(t, err)
	restored, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, m, restored)
}
