// Package format normalizes the layout of LeapSPL queries.
package format

import (
	"strings"

	"github.com/leapstack-labs/leapspl/pkg/token"
)

// Printer writes tokens back out with normalized spacing. Whitespace runs
// collapse to one space, leading and trailing whitespace is dropped, and
// quoted or slashed literals are copied verbatim.
type Printer struct {
	output       strings.Builder
	spacePipes   bool
	pendingSpace bool
	literal      token.Category // delimiter of the literal being copied, or Invalid
}

func newPrinter(spacePipes bool) *Printer {
	return &Printer{spacePipes: spacePipes}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) write(s string) {
	if p.pendingSpace && p.output.Len() > 0 {
		p.output.WriteByte(' ')
	}
	p.pendingSpace = false
	p.output.WriteString(s)
}

func (p *Printer) space() {
	p.pendingSpace = true
}

// keyword prints a keyword in its canonical case.
func (p *Printer) keyword(t token.Token) {
	if t.Category == token.To {
		p.write(strings.ToUpper(t.Literal))
		return
	}
	p.write(t.Literal)
}

func (p *Printer) print(tokens []token.Token) {
	for _, t := range tokens {
		if p.literal != token.Invalid {
			p.output.WriteString(t.Literal)
			if t.Category == p.literal {
				p.literal = token.Invalid
			}
			continue
		}

		switch {
		case t.Category == token.Whitespace:
			p.space()
		case t.Category == token.Pipe:
			if p.spacePipes {
				p.space()
			}
			p.write(t.Literal)
			if p.spacePipes {
				p.space()
			}
		case t.Category == token.Quote, t.Category == token.Slash:
			p.write(t.Literal)
			p.literal = t.Category
		case token.IsKeyword(t.Category):
			p.keyword(t)
		default:
			p.write(t.Literal)
		}
	}
}
