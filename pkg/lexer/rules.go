package lexer

import (
	"regexp"

	"github.com/leapstack-labs/leapspl/pkg/token"
)

// Rule pairs a category with the pattern recognising it. Patterns are
// anchored at the start of the unconsumed input.
type Rule struct {
	Category token.Category
	Pattern  *regexp.Regexp
}

// NewRule compiles pattern as a rule for category. The pattern is anchored
// automatically.
func NewRule(category token.Category, pattern string) Rule {
	return Rule{
		Category: category,
		Pattern:  regexp.MustCompile(`^(?:` + pattern + `)`),
	}
}

// DefaultRules returns the LeapSPL rule list in precedence order.
// Keyword rules come before the identifier rule and need a word boundary,
// so "total" stays one identifier instead of TO + "tal". An identifier never
// ends with "-", which is left for the descending sort marker in "sort by n-".
// Whitespace includes no-break and ideographic spaces so IME input tokenizes.
func DefaultRules() []Rule {
	return []Rule{
		NewRule(token.Connector, `(?:AND|OR|NOT)\b`),
		NewRule(token.To, `(?i:to)\b`),
		NewRule(token.Stats, `stats\b`),
		NewRule(token.As, `as\b`),
		NewRule(token.By, `by\b`),
		NewRule(token.Sort, `sort\b`),
		NewRule(token.Limit, `limit\b`),
		NewRule(token.Fields, `fields\b`),
		NewRule(token.Aggregation, `(?:count|sum|avg|min|max)\b`),
		NewRule(token.Numeric, `\d+\b`),
		NewRule(token.Asc, `\+`),
		NewRule(token.Desc, `-`),
		NewRule(token.Identifier, `[.0-9A-Za-z_\x{4e00}-\x{ffff}\x{10000}-\x{10ffff}-]*[.0-9A-Za-z_\x{4e00}-\x{ffff}\x{10000}-\x{10ffff}]`),
		NewRule(token.Any, `\*`),
		NewRule(token.One, `\?`),
		NewRule(token.Whitespace, `[\s\v\p{Zs}\x{2028}\x{2029}\x{feff}]+`),
		NewRule(token.Assign, `=`),
		NewRule(token.Quote, `"`),
		NewRule(token.Slash, `/`),
		NewRule(token.Pipe, `\|`),
		NewRule(token.LeftBracket, `\(`),
		NewRule(token.RightBracket, `\)`),
		NewRule(token.LeftSquareBracket, `\[`),
		NewRule(token.RightSquareBracket, `\]`),
		NewRule(token.LeftBrace, `\{`),
		NewRule(token.RightBrace, `\}`),
		NewRule(token.Comma, `,`),
	}
}
