// Package grammar encodes the LeapSPL query grammar as a lazily expanded graph
// and resolves which token categories may follow a token stream.
//
// A Node maps each category to a Factory producing the following node.
// Factories run only when a matching token is consumed, so recursive
// constructs (pipelines, lists, nested groups) expand only as deep as the
// input goes.
package grammar

import "github.com/leapstack-labs/leapspl/pkg/token"

// Factory produces the node reached after consuming a token.
type Factory func() Node

// Node is a position in the grammar graph. The zero value accepts nothing.
type Node struct {
	edges [token.NumCategories]Factory
	quiet token.Set // accepted but never offered as a continuation
}

// Next consumes a token of category c. It returns false when c is not
// legal at this position.
func (n Node) Next(c token.Category) (Node, bool) {
	if c >= token.NumCategories || n.edges[c] == nil {
		return Node{}, false
	}
	return n.edges[c](), true
}

// Accepts reports whether a token of category c may follow.
func (n Node) Accepts(c token.Category) bool {
	return c < token.NumCategories && n.edges[c] != nil
}

// Categories returns the categories offered as continuations.
func (n Node) Categories() token.Set {
	var s token.Set
	for c := token.Connector; c < token.NumCategories; c++ {
		if n.edges[c] != nil && !n.quiet.Has(c) {
			s = s.Add(c)
		}
	}
	return s
}

// Merge returns a node holding the edges of n and others. Edges of later
// nodes replace edges of earlier ones for the same category.
func (n Node) Merge(others ...Node) Node {
	out := n
	for _, o := range others {
		for c := token.Connector; c < token.NumCategories; c++ {
			if o.edges[c] == nil {
				continue
			}
			out.edges[c] = o.edges[c]
			if o.quiet.Has(c) {
				out.quiet = out.quiet.Add(c)
			} else {
				out.quiet = out.quiet.Remove(c)
			}
		}
	}
	return out
}

// node merges parts left to right.
func node(parts ...Node) Node {
	return Node{}.Merge(parts...)
}

// edge returns a node with a single visible edge.
func edge(c token.Category, f Factory) Node {
	var n Node
	n.edges[c] = f
	return n
}

// quietEdge returns a node with a single edge that is never suggested.
func quietEdge(c token.Category, f Factory) Node {
	n := edge(c, f)
	n.quiet = n.quiet.Add(c)
	return n
}

// then wraps an already built node as a factory.
func then(n Node) Factory {
	return func() Node { return n }
}

// nowhere is the factory of completion edges: the category is offered so a
// fragment can keep growing, but the lexer never produces the token there.
func nowhere() Node {
	return Node{}
}

// hints returns dead-end edges for every category in s.
func hints(s token.Set) Node {
	var n Node
	for _, c := range s.Slice() {
		n.edges[c] = nowhere
	}
	return n
}
