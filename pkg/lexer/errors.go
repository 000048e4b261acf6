package lexer

import (
	"fmt"

	"github.com/leapstack-labs/leapspl/pkg/token"
)

// LexError reports input that no rule matches.
type LexError struct {
	Pos       token.Position
	Remainder string // unconsumed input starting at the offending character
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: unexpected input %q", e.Pos.Line, e.Pos.Column, e.Remainder)
}

// Offending returns the first unmatched character, for short messages.
func (e *LexError) Offending() string {
	for _, r := range e.Remainder {
		return string(r)
	}
	return ""
}
