package format

import (
	"github.com/leapstack-labs/leapspl/pkg/grammar"
	"github.com/leapstack-labs/leapspl/pkg/lexer"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

// Query formats a query. It returns a *lexer.LexError when the query does
// not tokenize.
//
// Whitespace runs collapse to a single space and TO is upper-cased. When the
// grammar accepts the whole query, pipes are also surrounded by single
// spaces, provided the result is still accepted.
func Query(input string) (string, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return "", err
	}
	return Tokens(tokens), nil
}

// Tokens formats an already tokenized query.
func Tokens(tokens []token.Token) string {
	plain := render(tokens, false)
	if !accepted(tokens) {
		return plain
	}

	spaced := render(tokens, true)
	if spaced == plain {
		return plain
	}
	respaced, err := lexer.Tokenize(spaced)
	if err != nil || !accepted(respaced) {
		return plain
	}
	return spaced
}

func render(tokens []token.Token, spacePipes bool) string {
	p := newPrinter(spacePipes)
	p.print(tokens)
	return p.String()
}

func accepted(tokens []token.Token) bool {
	_, consumed := grammar.Default.Walk(tokens)
	return consumed == len(tokens)
}
