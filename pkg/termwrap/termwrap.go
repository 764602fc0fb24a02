// Package termwrap wraps help text to the width of the terminal.
package termwrap

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

type TermWrap struct {
	width  int
	height int
}

// NewTermWrap measures the terminal on fd, falling back to the defaults when
// fd is not a terminal.
func NewTermWrap(fd int, defaultWidth, defaultHeight int) *TermWrap {
	var err error
	tw := &TermWrap{}

	tw.width, tw.height, err = term.GetSize(fd)
	if err != nil || tw.width <= 0 {
		tw.width = defaultWidth
		tw.height = defaultHeight
	}

	return tw
}

func (tw *TermWrap) Paragraph(content string) string {
	return wordwrap.WrapString(content, uint(tw.width))
}

// IndentedParagraph wraps content so that, once every line is prefixed, it
// still fits the terminal. Narrow terminals below minimumWidth are not
// shrunk further.
func (tw *TermWrap) IndentedParagraph(prefix, content string, minimumWidth int) string {
	width := tw.width - len(prefix)
	if width < minimumWidth {
		width = minimumWidth
	}

	lines := strings.Split(wordwrap.WrapString(content, uint(width)), "\n")

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}
