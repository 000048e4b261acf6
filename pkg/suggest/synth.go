package suggest

import (
	"strings"

	"github.com/leapstack-labs/leapspl/pkg/lexer"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

// DefaultMaxFields caps identifier entries per suggestion list.
const DefaultMaxFields = 5

// Synthesizer maps continuation categories to ranked entries.
// It holds only configuration and is safe for concurrent use.
type Synthesizer struct {
	weights   Weights
	maxFields int
}

// NewSynthesizer creates a synthesizer. A nil weights map uses
// DefaultWeights; maxFields <= 0 uses DefaultMaxFields.
func NewSynthesizer(weights Weights, maxFields int) *Synthesizer {
	if weights == nil {
		weights = DefaultWeights()
	}
	if maxFields <= 0 {
		maxFields = DefaultMaxFields
	}
	return &Synthesizer{weights: weights, maxFields: maxFields}
}

// Weights returns the ranking table.
func (s *Synthesizer) Weights() Weights {
	return s.weights
}

// Suggest returns entries for categories, ranked by tag weight. tokens is
// the tokenized input the categories were resolved from; its last token
// filters candidates when it is a partially typed word.
func (s *Synthesizer) Suggest(categories token.Set, fields []Field, tokens []token.Token) []Entry {
	if categories.Empty() {
		return nil
	}

	m := newMatcher(tokens)
	vp, inValue := valuePosition(tokens)

	var out []Entry
	valuesDone := false
	for _, c := range categories.Slice() {
		switch c {
		case token.Identifier, token.Numeric:
			if inValue {
				if !valuesDone {
					out = append(out, s.values(fields, vp)...)
					valuesDone = true
				}
				continue
			}
			if c == token.Identifier {
				out = append(out, s.fields(fields, m)...)
			}
		default:
			for _, e := range Vocabulary(c) {
				if token.IsKeyword(c) && !m.match(e.Label) {
					continue
				}
				out = append(out, e)
			}
		}
	}

	s.weights.Sort(out)
	return out
}

func (s *Synthesizer) fields(fields []Field, m matcher) []Entry {
	var out []Entry
	for _, f := range orderFields(fields) {
		if len(out) == s.maxFields {
			break
		}
		if !m.match(f.Name) || !isWord(f.Name, token.Identifier) {
			continue
		}
		out = append(out, fieldEntry(f))
	}
	return out
}

func (s *Synthesizer) values(fields []Field, vp valueContext) []Entry {
	f, ok := FieldByName(fields, vp.field)
	if !ok {
		return nil
	}
	m := matcher{fragment: strings.ToLower(vp.fragment)}

	var out []Entry
	for _, v := range f.Values {
		if len(out) == s.maxFields {
			break
		}
		if !m.match(v) {
			continue
		}
		e, ok := valueEntry(f, v)
		if !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// valueEntry builds an insertable entry for v, quoting it when it is not a
// single word.
func valueEntry(f Field, v string) (Entry, bool) {
	e := Entry{
		ID:          "value:" + f.Name + ":" + v,
		Label:       v,
		Tag:         TagValue,
		Category:    token.Identifier,
		Description: f.Name,
		Code:        v,
	}
	switch {
	case isWord(v, token.Numeric):
		e.Category = token.Numeric
	case isWord(v, token.Identifier):
	default:
		if strings.Contains(v, `"`) {
			return Entry{}, false
		}
		quoted := `"` + v + `"`
		if _, err := lexer.Tokenize(quoted); err != nil {
			return Entry{}, false
		}
		e.Code = quoted
	}
	return e, true
}

// isWord reports whether s lexes as exactly one token of category c.
func isWord(s string, c token.Category) bool {
	tokens, err := lexer.Tokenize(s)
	return err == nil && len(tokens) == 1 && tokens[0].Category == c
}

// matcher filters candidates against a partially typed word.
type matcher struct {
	fragment string // lowercased; empty disables filtering
}

func newMatcher(tokens []token.Token) matcher {
	last, ok := token.Last(tokens)
	if !ok || last.Category != token.Identifier {
		return matcher{}
	}
	return matcher{fragment: strings.ToLower(last.Literal)}
}

// match keeps words containing the fragment, excluding the fragment itself
// so a completed word is not offered again.
func (m matcher) match(word string) bool {
	if m.fragment == "" {
		return true
	}
	w := strings.ToLower(word)
	return strings.Contains(w, m.fragment) && w != m.fragment
}

type valueContext struct {
	field    string
	fragment string
}

// valuePosition detects input ending in "field=" or "field=frag".
func valuePosition(tokens []token.Token) (valueContext, bool) {
	n := len(tokens)
	var frag string
	if n > 0 && token.IsFragment(tokens[n-1].Category) {
		frag = tokens[n-1].Literal
		n--
	}
	if n < 2 || tokens[n-1].Category != token.Assign || tokens[n-2].Category != token.Identifier {
		return valueContext{}, false
	}
	return valueContext{field: tokens[n-2].Literal, fragment: frag}, true
}
