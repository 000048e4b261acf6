// Package token defines the token categories of the LeapSPL query language.
//
// The category set is closed: the grammar graph and the suggestion tables
// switch over it exhaustively, so a new category must be wired in both places.
package token

import "fmt"

// Category classifies a lexical unit.
type Category uint8

const (
	// Invalid is the zero value and never produced by the lexer.
	Invalid Category = iota

	// Keywords
	Connector   // AND, OR, NOT
	To          // TO (case-insensitive)
	Stats       // stats
	As          // as
	By          // by
	Sort        // sort
	Limit       // limit
	Fields      // fields
	Aggregation // count, sum, avg, min, max

	// Literals
	Numeric    // 123
	Asc        // +
	Desc       // -
	Identifier // host, user.name, 中文
	Any        // *
	One        // ?
	Whitespace

	// Symbols
	Assign             // =
	Quote              // "
	Slash              // /
	Pipe               // |
	LeftBracket        // (
	RightBracket       // )
	LeftSquareBracket  // [
	RightSquareBracket // ]
	LeftBrace          // {
	RightBrace         // }
	Comma              // ,

	// NumCategories is the size of tables indexed by Category.
	NumCategories
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CATEGORY(%d)", c)
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	got, ok := Lookup(string(text))
	if !ok {
		return fmt.Errorf("unknown token category %q", text)
	}
	*c = got
	return nil
}

// categoryNames maps categories to the names used in config files and output.
var categoryNames = map[Category]string{
	Invalid:            "invalid",
	Connector:          "connector",
	To:                 "to",
	Stats:              "stats",
	As:                 "as",
	By:                 "by",
	Sort:               "sort",
	Limit:              "limit",
	Fields:             "fields",
	Aggregation:        "aggregation",
	Numeric:            "numeric",
	Asc:                "asc",
	Desc:               "desc",
	Identifier:         "identifier",
	Any:                "any",
	One:                "one",
	Whitespace:         "whitespace",
	Assign:             "assign",
	Quote:              "quote",
	Slash:              "slash",
	Pipe:               "pipe",
	LeftBracket:        "left_bracket",
	RightBracket:       "right_bracket",
	LeftSquareBracket:  "left_square_bracket",
	RightSquareBracket: "right_square_bracket",
	LeftBrace:          "left_brace",
	RightBrace:         "right_brace",
	Comma:              "comma",
}

// Lookup returns the category with the given name.
func Lookup(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name && c != Invalid {
			return c, true
		}
	}
	return Invalid, false
}

// All returns every valid category in declaration order.
func All() []Category {
	all := make([]Category, 0, NumCategories-1)
	for c := Connector; c < NumCategories; c++ {
		all = append(all, c)
	}
	return all
}

// IsKeyword returns true for word-like categories recognised by a keyword rule.
func IsKeyword(c Category) bool {
	return c >= Connector && c <= Aggregation
}

// IsStage returns true for categories that start a pipeline stage.
func IsStage(c Category) bool {
	switch c {
	case Stats, Sort, Limit, Fields:
		return true
	default:
		return false
	}
}

// IsFragment returns true for categories a user may still be typing:
// the lexer extends them greedily, so the last one is possibly incomplete.
func IsFragment(c Category) bool {
	return c == Identifier || c == Numeric
}

// Token represents a lexical token with its position in the source.
type Token struct {
	Category Category
	Literal  string
	Span     Span
}

// Start returns the byte offset of the first character.
func (t Token) Start() int {
	return t.Span.Start.Offset
}

// End returns the byte offset just past the last character.
func (t Token) End() int {
	return t.Span.End.Offset
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Category, t.Literal)
}

// Join concatenates token literals in order.
func Join(tokens []Token) string {
	n := 0
	for _, t := range tokens {
		n += len(t.Literal)
	}
	b := make([]byte, 0, n)
	for _, t := range tokens {
		b = append(b, t.Literal...)
	}
	return string(b)
}

// Last returns the last token, or false if there are none.
func Last(tokens []Token) (Token, bool) {
	if len(tokens) == 0 {
		return Token{}, false
	}
	return tokens[len(tokens)-1], true
}
