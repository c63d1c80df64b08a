package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_SingleBlock(t *testing.T) {
	text := "Here you go:\n```go\npackage main\n\nfunc main() {}\n```\nEnjoy."

	code, lang, ok := Extract(text)
	require.True(t, ok)
	assert.Equal(t, "go", lang)
	assert.Equal(t, "package main\n\nfunc main() {}", code)
}

func TestExtract_NoFence(t *testing.T) {
	_, _, ok := Extract("plain prose, nothing fenced")
	assert.False(t, ok)
}

func TestExtract_UnterminatedFenceIgnored(t *testing.T) {
	_, _, ok := Extract("```python\nprint('no closing fence')")
	assert.False(t, ok)
}

func TestExtractAll_MultipleBlocks(t *testing.T) {
	text := "```go\na\n```\nbetween\n```\nb\n```"

	blocks := ExtractAll(text)
	require.Len(t, blocks, 2)
	assert.Equal(t, Block{Language: "go", Code: "a"}, blocks[0])
	assert.Equal(t, Block{Language: "", Code: "b"}, blocks[1])
}

func TestExtractAll_IndentedFence(t *testing.T) {
	text := "  ```js\n  let x = 1;\n  ```"

	blocks := ExtractAll(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, "js", blocks[0].Language)
	assert.Equal(t, "  let x = 1;", blocks[0].Code)
}
