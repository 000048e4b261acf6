package grammar

import "github.com/leapstack-labs/leapspl/pkg/token"

// Resolve returns the categories that may follow tokens, starting at node.
//
// Edges are followed token by token. The result is the visible category set
// of the deepest node reached whose set is non-empty, so a dead end (or a
// token the grammar rejects mid-stream) falls back to the last node that
// still had continuations. Empty input, or a first token with no edge,
// yields the empty set.
func Resolve(tokens []token.Token, start Node) token.Set {
	set, _ := Walk(tokens, start)
	return set
}

// Walk is Resolve that also returns the number of tokens consumed.
func Walk(tokens []token.Token, start Node) (token.Set, int) {
	var result token.Set
	cur := start
	for i, t := range tokens {
		next, ok := cur.Next(t.Category)
		if !ok {
			return result, i
		}
		if cats := next.Categories(); !cats.Empty() {
			result = cats
		}
		cur = next
	}
	return result, len(tokens)
}
