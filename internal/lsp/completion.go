package lsp

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// tagKinds maps suggestion tags to LSP completion item kinds.
var tagKinds = map[suggest.Tag]CompletionItemKind{
	suggest.TagField:    CompletionItemKindField,
	suggest.TagValue:    CompletionItemKindValue,
	suggest.TagKeyword:  CompletionItemKindKeyword,
	suggest.TagLogic:    CompletionItemKindKeyword,
	suggest.TagFunction: CompletionItemKindFunction,
	suggest.TagOperator: CompletionItemKindKeyword,
	suggest.TagSymbol:   CompletionItemKindOperator,
	suggest.TagNumber:   CompletionItemKindConstant,
	suggest.TagGeneral:  CompletionItemKindText,
}

// getCompletions completes the query on the cursor line, using only the
// text before the cursor.
func (s *Server) getCompletions(params CompletionParams) []CompletionItem {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	before, cursor := doc.TextBefore(params.Position)
	res := s.engine.Complete(before, s.catalog)
	if res.Err != nil {
		return nil
	}

	items := make([]CompletionItem, 0, len(res.Entries))
	for i, entry := range res.Entries {
		out, err := s.engine.Apply(before, entry)
		if err != nil {
			continue
		}
		edit := editFor(doc, params.Position.Line, before, out, cursor)
		items = append(items, CompletionItem{
			Label:         entry.Label,
			Kind:          kindFor(entry.Tag),
			Detail:        detailFor(entry),
			Documentation: documentationFor(entry),
			SortText:      fmt.Sprintf("%04d", i),
			FilterText:    entry.Label,
			TextEdit:      edit,
			Data:          entry.ID,
		})
	}
	return items
}

// editFor turns a spliced line into the minimal edit ending at the cursor.
func editFor(doc *Document, line uint32, before, after string, cursor int) *TextEdit {
	p := commonPrefix(before, after)
	return &TextEdit{
		Range:   doc.LineRange(int(line), p, cursor),
		NewText: after[p:],
	}
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	// Back up to a rune boundary.
	for i > 0 && i < len(a) && !isRuneStart(a[i]) {
		i--
	}
	return i
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func kindFor(tag suggest.Tag) CompletionItemKind {
	if kind, ok := tagKinds[tag]; ok {
		return kind
	}
	return CompletionItemKindText
}

func detailFor(entry suggest.Entry) string {
	if entry.Tag == suggest.TagField || entry.Tag == suggest.TagValue {
		return entry.Description
	}
	return string(entry.Tag)
}

// documentationFor renders the entry description, syntax and example as
// markdown. Entries without any of them have no documentation.
func documentationFor(entry suggest.Entry) *MarkupContent {
	var sb strings.Builder
	if entry.Description != "" && entry.Tag != suggest.TagField && entry.Tag != suggest.TagValue {
		sb.WriteString(entry.Description)
		sb.WriteString("\n\n")
	}
	if entry.Syntax != "" {
		sb.WriteString("**Syntax:** `")
		sb.WriteString(entry.Syntax)
		sb.WriteString("`\n\n")
	}
	if entry.Example != "" {
		sb.WriteString("```spl\n")
		sb.WriteString(entry.Example)
		sb.WriteString("\n```\n")
	}
	if sb.Len() == 0 {
		return nil
	}
	return &MarkupContent{Kind: MarkupKindMarkdown, Value: strings.TrimSpace(sb.String())}
}
