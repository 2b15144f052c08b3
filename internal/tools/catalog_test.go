package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docxbuilder/internal/errors"
)

func findTool(t *testing.T, tools []Tool, name string) Tool {
	t.Helper()
	for _, tool := range tools {
		if tool.Name == name {
			return tool
		}
	}
	require.FailNowf(t, "tool not in catalog", "%s", name)
	return Tool{}
}

func findParam(t *testing.T, tool Tool, name string) Param {
	t.Helper()
	for _, p := range tool.Params {
		if p.Name == name {
			return p
		}
	}
	require.FailNowf(t, "param not found", "%s.%s", tool.Name, name)
	return Param{}
}

func TestCatalogNamesAreUnique(t *testing.T) {
	catalog := Catalog(NewEnv(t.TempDir()))
	require.Len(t, catalog, 48)

	seen := map[string]bool{}
	for _, tool := range catalog {
		assert.False(t, seen[tool.Name], "duplicate tool %s", tool.Name)
		seen[tool.Name] = true
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.NotNil(t, tool.Handler, tool.Name)
	}
	assert.False(t, seen["build_book"], "build_book is registered by the orchestrator")
}

func TestCatalogParams(t *testing.T) {
	catalog := Catalog(NewEnv(t.TempDir()))

	heading := findTool(t, catalog, "add_heading")
	filename := findParam(t, heading, "filename")
	assert.Equal(t, TypeString, filename.Type)
	assert.True(t, filename.Required)
	assert.Nil(t, filename.Default)

	level := findParam(t, heading, "level")
	assert.Equal(t, TypeInteger, level.Type)
	assert.False(t, level.Required)
	assert.Equal(t, 1, level.Default)

	find := findTool(t, catalog, "find_text_in_document")
	assert.Equal(t, true, findParam(t, find, "match_case").Default)
	assert.Equal(t, TypeBoolean, findParam(t, find, "whole_word").Type)

	table := findTool(t, catalog, "add_table")
	data := findParam(t, table, "data")
	assert.Equal(t, TypeArray, data.Type)
	assert.Equal(t, map[string]any{"type": "array", "items": map[string]any{"type": "string"}}, data.Items)
	assert.Nil(t, filename.Items)

	props := findTool(t, catalog, "set_core_properties")
	assert.Equal(t, map[string]any{"type": "string"}, findParam(t, props, "keywords").Items)

	page := findTool(t, catalog, "set_page_size")
	assert.Equal(t, TypeNumber, findParam(t, page, "width").Type)
	assert.Equal(t, TypeObject, findParam(t, page, "margins").Type)

	pdf := findTool(t, catalog, "to_pdf")
	assert.Equal(t, "xelatex", findParam(t, pdf, "pdf_engine").Default)
}

func TestHandlerArgumentErrors(t *testing.T) {
	heading := findTool(t, Catalog(NewEnv(t.TempDir())), "add_heading")
	ctx := context.Background()

	tests := []struct {
		name    string
		args    map[string]any
		message string
	}{
		{"missing", map[string]any{"filename": "doc.docx"}, "missing required argument 'text'"},
		{"nil counts as missing", map[string]any{"filename": "doc.docx", "text": nil}, "missing required argument 'text'"},
		{"unknown", map[string]any{"filename": "doc.docx", "text": "x", "colour": "red"}, `unknown field "colour"`},
		{"wrong type", map[string]any{"filename": "doc.docx", "text": "x", "level": "two"}, "invalid arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := heading.Handler(ctx, tt.args)
			require.Error(t, err)
			assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
			assert.Contains(t, derrors.Describe(err), tt.message)
		})
	}
}

func TestHandlerKeepsDefaults(t *testing.T) {
	var got findTextArgs
	tool := Define("probe", "probe", findTextArgs{MatchCase: true}, func(_ context.Context, a findTextArgs) (string, error) {
		got = a
		return "ok", nil
	})

	out, err := tool.Handler(context.Background(), map[string]any{"filename": "a", "text_to_find": "b"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.True(t, got.MatchCase)

	_, err = tool.Handler(context.Background(), map[string]any{"filename": "a", "text_to_find": "b", "match_case": false})
	require.NoError(t, err)
	assert.False(t, got.MatchCase)
}
