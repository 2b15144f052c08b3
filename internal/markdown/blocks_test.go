package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocks_HeadingsAndParagraphs(t *testing.T) {
	src := []byte("# Title\n\nSome *soft* and **strong** text\nwrapped.\n\n## Second\n")
	blocks := Blocks(src, DefaultOptions())
	require.Len(t, blocks, 3)

	assert.Equal(t, BlockHeading, blocks[0].Kind)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, "Title", blocks[0].Text())

	p := blocks[1]
	assert.Equal(t, BlockParagraph, p.Kind)
	assert.Equal(t, "Some soft and strong text wrapped.", p.Text())
	require.Len(t, p.Spans, 5)
	assert.True(t, p.Spans[1].Italic)
	assert.Equal(t, "soft", p.Spans[1].Text)
	assert.True(t, p.Spans[3].Bold)
	assert.Equal(t, "strong", p.Spans[3].Text)

	assert.Equal(t, 2, blocks[2].Level)
}

func TestBlocks_Lists(t *testing.T) {
	src := []byte("- one\n- two\n  - nested\n\n3. third\n4. fourth\n")
	blocks := Blocks(src, DefaultOptions())
	require.Len(t, blocks, 5)

	assert.Equal(t, Block{Kind: BlockListItem, Spans: []Span{{Text: "one"}}}, blocks[0])
	assert.Equal(t, 0, blocks[1].Level)
	assert.Equal(t, "nested", blocks[2].Text())
	assert.Equal(t, 1, blocks[2].Level)

	assert.True(t, blocks[3].Ordered)
	assert.Equal(t, 3, blocks[3].Number)
	assert.Equal(t, 4, blocks[4].Number)
}

func TestBlocks_CodeQuoteBreakLinks(t *testing.T) {
	src := []byte("```go\nfmt.Println(1)\n\nreturn\n```\n\n> quoted\n\n---\n\nSee [docs](https://example.com) and `code`.\n")
	blocks := Blocks(src, DefaultOptions())
	require.Len(t, blocks, 4)

	assert.Equal(t, BlockCode, blocks[0].Kind)
	assert.Equal(t, "go", blocks[0].Language)
	assert.Equal(t, "fmt.Println(1)\n\nreturn", blocks[0].Code)

	assert.Equal(t, BlockQuote, blocks[1].Kind)
	assert.Equal(t, "quoted", blocks[1].Text())

	assert.Equal(t, BlockThematicBreak, blocks[2].Kind)

	spans := blocks[3].Spans
	require.Len(t, spans, 5)
	assert.Equal(t, Span{Text: "docs", URL: "https://example.com"}, spans[1])
	assert.Equal(t, Span{Text: "code", Code: true}, spans[3])
	assert.Equal(t, ".", spans[4].Text)
}

func TestBlocks_Table(t *testing.T) {
	src := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")
	blocks := Blocks(src, DefaultOptions())
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockTable, blocks[0].Kind)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, blocks[0].Rows)

	plainBlocks := Blocks(src, Options{})
	require.Len(t, plainBlocks, 1)
	assert.Equal(t, BlockParagraph, plainBlocks[0].Kind)
}

func TestBlocks_HTMLDropped(t *testing.T) {
	blocks := Blocks([]byte("<div>raw</div>\n\ntext <b>x</b>\n"), DefaultOptions())
	require.Len(t, blocks, 1)
	assert.Equal(t, "text x", blocks[0].Text())
}
