package lsp

import (
	"strings"

	"github.com/leapstack-labs/leapspl/pkg/lexer"
	"github.com/leapstack-labs/leapspl/pkg/suggest"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

// getHover documents the token under the cursor. Keywords and symbols are
// described from the vocabulary; identifiers naming a catalog field show
// the field.
func (s *Server) getHover(params HoverParams) *Hover {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	line := doc.GetLine(int(params.Position.Line))
	offset := ColumnToOffset(line, params.Position.Character)

	// Partial tokens are fine: hover works up to a lexical error.
	tokens, _ := lexer.Tokenize(line)
	tok, ok := tokenAt(tokens, offset)
	if !ok {
		return nil
	}

	var content string
	switch tok.Category {
	case token.Whitespace:
		return nil
	case token.Identifier:
		content = s.describeField(tok.Literal)
	default:
		if entry, ok := suggest.Describe(tok.Category, tok.Literal); ok {
			content = describeEntry(entry)
		}
	}
	if content == "" {
		return nil
	}

	r := doc.LineRange(int(params.Position.Line), tok.Start(), tok.End())
	return &Hover{
		Contents: MarkupContent{Kind: MarkupKindMarkdown, Value: content},
		Range:    &r,
	}
}

// tokenAt returns the token covering offset. A cursor just past the end of
// a token still hovers it.
func tokenAt(tokens []token.Token, offset int) (token.Token, bool) {
	for _, t := range tokens {
		if t.Span.Contains(offset) {
			return t, true
		}
	}
	if last, ok := token.Last(tokens); ok && offset == last.End() {
		return last, true
	}
	return token.Token{}, false
}

func (s *Server) describeField(name string) string {
	if s.catalog == nil {
		return ""
	}
	field, ok := suggest.FieldByName(s.catalog.Fields(), name)
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("**" + field.Name + "** `" + field.Type + "`")
	if len(field.Values) > 0 {
		sb.WriteString("\n\nValues: ")
		for i, v := range field.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("`" + v + "`")
		}
	}
	return sb.String()
}

func describeEntry(entry suggest.Entry) string {
	var sb strings.Builder
	sb.WriteString("**" + entry.Label + "**")
	if entry.Description != "" {
		sb.WriteString(": " + entry.Description)
	}
	if entry.Syntax != "" {
		sb.WriteString("\n\n**Syntax:** `" + entry.Syntax + "`")
	}
	if entry.Example != "" {
		sb.WriteString("\n\n```spl\n" + entry.Example + "\n```")
	}
	return sb.String()
}
