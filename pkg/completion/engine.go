// Package completion composes the lexer, grammar, synthesizer and splicer
// into a single completion engine.
package completion

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapspl/pkg/grammar"
	"github.com/leapstack-labs/leapspl/pkg/lexer"
	"github.com/leapstack-labs/leapspl/pkg/suggest"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

// ErrNoSuchEntry is returned by Select when the key matches no suggestion.
var ErrNoSuchEntry = errors.New("no such suggestion")

// Catalog supplies the fields offered for identifiers.
type Catalog interface {
	Fields() []suggest.Field
}

// FieldList is a static Catalog.
type FieldList []suggest.Field

// Fields implements Catalog.
func (l FieldList) Fields() []suggest.Field {
	return l
}

// Engine computes suggestions and applies selections. It is safe for
// concurrent use.
type Engine struct {
	grammar *grammar.Grammar
	synth   *suggest.Synthesizer
	splicer *suggest.Splicer
}

// Option configures an Engine.
type Option func(*Engine)

// WithSynthesizer replaces the default synthesizer.
func WithSynthesizer(s *suggest.Synthesizer) Option {
	return func(e *Engine) { e.synth = s }
}

// WithSplicer replaces the default splicer.
func WithSplicer(s *suggest.Splicer) Option {
	return func(e *Engine) { e.splicer = s }
}

// WithGrammar replaces the default grammar.
func WithGrammar(g *grammar.Grammar) Option {
	return func(e *Engine) { e.grammar = g }
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		grammar: grammar.Default,
		synth:   suggest.NewSynthesizer(nil, 0),
		splicer: suggest.NewSplicer(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one completion request.
type Result struct {
	Input      string
	Tokens     []token.Token
	Categories token.Set
	Consumed   int // tokens accepted by the grammar
	Entries    []suggest.Entry
	Err        error // *lexer.LexError when the input does not tokenize
}

// Dead reports that the input tokenizes but has no legal continuation.
func (r Result) Dead() bool {
	return r.Err == nil && r.Categories.Empty()
}

// Stuck reports that the grammar rejected a token. A rejected trailing word
// is still being typed and does not count.
func (r Result) Stuck() bool {
	if r.Err != nil || r.Consumed >= len(r.Tokens) {
		return false
	}
	last := len(r.Tokens) - 1
	return r.Consumed < last || !token.IsFragment(r.Tokens[last].Category)
}

// LexError returns the lexical error, if any.
func (r Result) LexError() (*lexer.LexError, bool) {
	var lexErr *lexer.LexError
	if errors.As(r.Err, &lexErr) {
		return lexErr, true
	}
	return nil, false
}

// Complete tokenizes input and returns ranked suggestions. Input that does
// not tokenize yields no entries and sets Err.
func (e *Engine) Complete(input string, catalog Catalog) Result {
	tokens, err := lexer.TokenizeLenient(input)
	if err != nil {
		return Result{Input: input, Err: err}
	}

	cats, consumed := e.grammar.Walk(tokens)
	var fields []suggest.Field
	if catalog != nil {
		fields = catalog.Fields()
	}

	return Result{
		Input:      input,
		Tokens:     tokens,
		Categories: cats,
		Consumed:   consumed,
		Entries:    e.synth.Suggest(cats, fields, tokens),
	}
}

// Apply splices entry into input.
func (e *Engine) Apply(input string, entry suggest.Entry) (string, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return "", err
	}
	return e.splicer.Splice(input, tokens, e.grammar.Continuations(tokens), entry)
}

// Select completes input, picks the suggestion whose ID or label is key,
// and applies it.
func (e *Engine) Select(input string, catalog Catalog, key string) (string, suggest.Entry, error) {
	res := e.Complete(input, catalog)
	if res.Err != nil {
		return "", suggest.Entry{}, res.Err
	}
	entry, ok := suggest.Find(res.Entries, key)
	if !ok {
		return "", suggest.Entry{}, fmt.Errorf("%w: %q", ErrNoSuchEntry, key)
	}
	out, err := e.Apply(input, entry)
	if err != nil {
		return "", suggest.Entry{}, err
	}
	return out, entry, nil
}
