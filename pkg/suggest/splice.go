package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/leapspl/pkg/lexer"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

// Policy decides when a chosen entry replaces the end of the text instead of
// being appended to it.
type Policy uint8

const (
	// ReplaceSameCategory replaces the last token only when it has the
	// entry's category and a different literal.
	ReplaceSameCategory Policy = iota
	// ReplaceFragment also replaces a trailing identifier or numeric
	// fragment, whatever the entry's category.
	ReplaceFragment
	// ReplaceTrailingWord also replaces a trailing bare word that the
	// insertion contains, ignoring case.
	ReplaceTrailingWord
)

var policyNames = map[Policy]string{
	ReplaceSameCategory: "same-category",
	ReplaceFragment:     "fragment",
	ReplaceTrailingWord: "trailing-word",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("POLICY(%d)", p)
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown splice policy %q", s)
}

// DefaultPolicies returns the per-category policies used by NewSplicer.
// Categories not listed use ReplaceSameCategory.
func DefaultPolicies() map[token.Category]Policy {
	return map[token.Category]Policy{
		token.Stats:       ReplaceFragment,
		token.Sort:        ReplaceFragment,
		token.Limit:       ReplaceFragment,
		token.Fields:      ReplaceFragment,
		token.Aggregation: ReplaceFragment,
		token.As:          ReplaceFragment,
		token.By:          ReplaceFragment,
		token.Identifier:  ReplaceFragment,
		token.Numeric:     ReplaceFragment,
		token.Connector:   ReplaceTrailingWord,
		token.To:          ReplaceTrailingWord,
	}
}

var trailingWord = regexp.MustCompile(`[\p{L}\p{N}_.-]+$`)

// Splicer inserts chosen entries into query text.
type Splicer struct {
	policies [token.NumCategories]Policy
}

// NewSplicer creates a splicer from DefaultPolicies with overrides applied.
func NewSplicer(overrides map[token.Category]Policy) *Splicer {
	s := &Splicer{}
	for c, p := range DefaultPolicies() {
		s.policies[c] = p
	}
	for c, p := range overrides {
		if c < token.NumCategories {
			s.policies[c] = p
		}
	}
	return s
}

// Policy returns the policy for category c.
func (s *Splicer) Policy(c token.Category) Policy {
	if c >= token.NumCategories {
		return ReplaceSameCategory
	}
	return s.policies[c]
}

// Splice returns text with entry inserted. tokens and categories must come
// from text; nil tokens are recomputed. Text that does not tokenize returns
// the *lexer.LexError.
func (s *Splicer) Splice(text string, tokens []token.Token, categories token.Set, entry Entry) (string, error) {
	if text == "" {
		return entry.Code, nil
	}
	if len(tokens) == 0 {
		var err error
		if tokens, err = lexer.Tokenize(text); err != nil {
			return "", err
		}
	}
	last, _ := token.Last(tokens)

	if categories.Has(entry.Category) && last.Category == entry.Category && last.Literal != entry.Code {
		return text[:last.Start()] + entry.Code, nil
	}

	switch s.Policy(entry.Category) {
	case ReplaceFragment:
		if token.IsFragment(last.Category) && last.Literal != entry.Code {
			return text[:last.Start()] + entry.Code, nil
		}
	case ReplaceTrailingWord:
		if word := trailingWord.FindString(text); word != "" &&
			strings.Contains(strings.ToLower(entry.Code), strings.ToLower(word)) {
			return text[:len(text)-len(word)] + entry.Code, nil
		}
	case ReplaceSameCategory:
	}

	if categories.Has(entry.Category) {
		return text + entry.Code, nil
	}
	return text + " " + entry.Code, nil
}
