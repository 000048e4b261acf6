package lsp

import (
	"github.com/leapstack-labs/leapspl/pkg/format"
)

// getFormatting returns one edit per line whose layout changes. Lines that
// do not tokenize are left alone.
func getFormatting(doc *Document) []TextEdit {
	edits := []TextEdit{}
	for line := range doc.LineCount() {
		text := doc.GetLine(line)
		formatted, err := format.Query(text)
		if err != nil || formatted == text {
			continue
		}
		edits = append(edits, TextEdit{
			Range:   doc.LineRange(line, 0, len(text)),
			NewText: formatted,
		})
	}
	return edits
}
