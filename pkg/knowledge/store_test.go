package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	text := strings.Repeat("a", 400) + "\n\n" + strings.Repeat("b", 400) + "\n\n" + strings.Repeat("c", 400)

	chunks := chunkText(text, 500)
	assert.Len(t, chunks, 3)
	assert.True(t, strings.HasPrefix(chunks[0], "a"))
	assert.True(t, strings.HasPrefix(chunks[1], "b"))
	assert.True(t, strings.HasPrefix(chunks[2], "c"))
}

func TestChunkTextKeepsSmallParagraphsTogether(t *testing.T) {
	chunks := chunkText("first paragraph\n\nsecond paragraph", 500)
	assert.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "first paragraph")
	assert.Contains(t, chunks[0], "second paragraph")
}

func TestChunkTextNormalizesWindowsNewlines(t *testing.T) {
	chunks := chunkText("one\r\n\r\ntwo", 500)
	assert.Len(t, chunks, 1)
	assert.NotContains(t, chunks[0], "\r")
}

func TestChunkTextEmpty(t *testing.T) {
	assert.Empty(t, chunkText("", 500))
	assert.Empty(t, chunkText("\n\n\n\n", 500))
}
