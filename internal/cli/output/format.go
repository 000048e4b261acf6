package output

import (
	"fmt"
	"strings"
)

// FormatHeader returns a markdown heading.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatCodeBlock fences code for markdown.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}

// FormatInlineCode wraps text in backticks, widening the fence when the text
// contains one.
func FormatInlineCode(text string) string {
	fence := "`"
	for strings.Contains(text, fence) {
		fence += "`"
	}
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		return fence + " " + text + " " + fence
	}
	return fence + text + fence
}

// Caret returns a line marking the columns [start, end) of a single-line
// input, for pointing at diagnostics.
func Caret(start, end int) string {
	if end <= start {
		end = start + 1
	}
	return strings.Repeat(" ", start) + strings.Repeat("^", end-start)
}
