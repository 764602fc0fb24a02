package termwrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallsBackToDefaults(t *testing.T) {
	tw := NewTermWrap(-1, 20, 10)
	assert.Equal(t, 20, tw.width)
}

func TestParagraph(t *testing.T) {
	tw := NewTermWrap(-1, 20, 10)
	text := tw.Paragraph("a single light sweeps from the top LED to the bottom one")

	for _, line := range strings.Split(text, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

func TestIndentedParagraph(t *testing.T) {
	tw := NewTermWrap(-1, 24, 10)
	text := tw.IndentedParagraph("    ", "two lights start at opposite ends and pass through", 10)

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "    "))
		assert.LessOrEqual(t, len(line), 24)
	}
}
