// Package lexer splits LeapSPL query text into categorized tokens.
//
// At each step the rules are tried in order against the unconsumed input and
// the first rule that matches wins. Concatenating the literals of the result
// reproduces the input exactly.
package lexer

import (
	"unicode/utf8"

	"github.com/leapstack-labs/leapspl/pkg/token"
)

// Lexer tokenizes input with a fixed rule list.
type Lexer struct {
	rules []Rule
}

// New creates a lexer using rules in order. With no rules the default
// LeapSPL rule list is used.
func New(rules ...Rule) *Lexer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Lexer{rules: rules}
}

var defaultLexer = New()

// Tokenize splits input with the default rules.
func Tokenize(input string) ([]token.Token, error) {
	return defaultLexer.Tokenize(input)
}

// TokenizeLenient is like Tokenize but never returns a partial token list:
// on failure the token list is empty and the error is returned alongside.
func TokenizeLenient(input string) ([]token.Token, error) {
	return defaultLexer.TokenizeLenient(input)
}

// Tokenize splits input into tokens. It returns a *LexError when some
// position matches no rule; tokens produced before that point are returned.
func (l *Lexer) Tokenize(input string) ([]token.Token, error) {
	var tokens []token.Token
	pos := token.Position{Line: 1, Column: 1, Offset: 0}

	for pos.Offset < len(input) {
		rest := input[pos.Offset:]
		cat, n := l.match(rest)
		if n == 0 {
			return tokens, &LexError{Pos: pos, Remainder: rest}
		}
		lit := rest[:n]
		end := advance(pos, lit)
		tokens = append(tokens, token.Token{
			Category: cat,
			Literal:  lit,
			Span:     token.Span{Start: pos, End: end},
		})
		pos = end
	}
	return tokens, nil
}

// TokenizeLenient discards partial output on error.
func (l *Lexer) TokenizeLenient(input string) ([]token.Token, error) {
	tokens, err := l.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// match returns the category and length of the first rule matching a
// non-empty prefix of s.
func (l *Lexer) match(s string) (token.Category, int) {
	for _, r := range l.rules {
		loc := r.Pattern.FindStringIndex(s)
		if loc != nil && loc[0] == 0 && loc[1] > 0 {
			return r.Category, loc[1]
		}
	}
	return token.Invalid, 0
}

// advance moves pos past lit, tracking lines and rune columns.
func advance(pos token.Position, lit string) token.Position {
	for i := 0; i < len(lit); {
		r, size := utf8.DecodeRuneInString(lit[i:])
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
		i += size
	}
	pos.Offset += len(lit)
	return pos
}
