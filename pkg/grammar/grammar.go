package grammar

import "github.com/leapstack-labs/leapspl/pkg/token"

// FirstCategories is offered for empty input.
func FirstCategories() token.Set {
	return token.NewSet(token.Quote, token.Identifier, token.Any, token.LeftBracket)
}

// Grammar is the LeapSPL query grammar. It is immutable and safe for
// concurrent use.
type Grammar struct {
	root Node
}

// New builds the grammar. Only the root node is materialized.
func New() *Grammar {
	return &Grammar{root: root()}
}

// Default is the shared grammar instance.
var Default = New()

// Root returns the start node.
func (g *Grammar) Root() Node {
	return g.root
}

// Continuations returns the categories legal after tokens. Empty input
// yields FirstCategories.
func (g *Grammar) Continuations(tokens []token.Token) token.Set {
	if len(tokens) == 0 {
		return FirstCategories()
	}
	return Resolve(tokens, g.root)
}

// Walk is like Continuations but also reports how many tokens the grammar
// accepted. A count below len(tokens) means the input went off the grammar
// at tokens[consumed].
func (g *Grammar) Walk(tokens []token.Token) (token.Set, int) {
	if len(tokens) == 0 {
		return FirstCategories(), 0
	}
	return Walk(tokens, g.root)
}
