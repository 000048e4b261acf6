package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapspl/pkg/token"
)

func categories(tokens []token.Token) []token.Category {
	out := make([]token.Category, len(tokens))
	for i, t := range tokens {
		out[i] = t.Category
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Category
		literals []string
	}{
		{
			name:     "empty",
			input:    "",
			expected: []token.Category{},
		},
		{
			name:     "field equals value",
			input:    "host=foo",
			expected: []token.Category{token.Identifier, token.Assign, token.Identifier},
			literals: []string{"host", "=", "foo"},
		},
		{
			name:     "keyword prefix stays identifier",
			input:    "total",
			expected: []token.Category{token.Identifier},
		},
		{
			name:     "whole keyword before a field name is typed out",
			input:    "by byt",
			expected: []token.Category{token.By, token.Whitespace, token.Identifier},
		},
		{
			name:     "connector needs boundary",
			input:    "ANDROID AND x",
			expected: []token.Category{token.Identifier, token.Whitespace, token.Connector, token.Whitespace, token.Identifier},
		},
		{
			name:  "stats stage",
			input: "stats count(host)",
			expected: []token.Category{
				token.Stats, token.Whitespace, token.Aggregation,
				token.LeftBracket, token.Identifier, token.RightBracket,
			},
		},
		{
			name:     "wildcards",
			input:    "a*b?",
			expected: []token.Category{token.Identifier, token.Any, token.Identifier, token.One},
		},
		{
			name:  "interval with lowercase to",
			input: "[1 to 5}",
			expected: []token.Category{
				token.LeftSquareBracket, token.Numeric, token.Whitespace, token.To,
				token.Whitespace, token.Numeric, token.RightBrace,
			},
		},
		{
			name:     "digits followed by letters",
			input:    "10abc",
			expected: []token.Category{token.Identifier},
		},
		{
			name:     "sort direction",
			input:    "sort by -time",
			expected: []token.Category{token.Sort, token.Whitespace, token.By, token.Whitespace, token.Desc, token.Identifier},
		},
		{
			name:     "trailing desc marker",
			input:    "by hits-",
			expected: []token.Category{token.By, token.Whitespace, token.Identifier, token.Desc},
			literals: []string{"by", " ", "hits", "-"},
		},
		{
			name:     "hyphenated identifier",
			input:    "user-agent",
			expected: []token.Category{token.Identifier},
		},
		{
			name:     "cjk identifier",
			input:    "主机=a",
			expected: []token.Category{token.Identifier, token.Assign, token.Identifier},
			literals: []string{"主机", "=", "a"},
		},
		{
			name:     "supplementary plane identifier",
			input:    "\U00020000=a",
			expected: []token.Category{token.Identifier, token.Assign, token.Identifier},
			literals: []string{"\U00020000", "=", "a"},
		},
		{
			name:     "ideographic space",
			input:    "主机=a\u3000AND\u3000b",
			expected: []token.Category{token.Identifier, token.Assign, token.Identifier, token.Whitespace, token.Connector, token.Whitespace, token.Identifier},
			literals: []string{"主机", "=", "a", "\u3000", "AND", "\u3000", "b"},
		},
		{
			name:     "no-break space",
			input:    "host=a\u00a0AND b",
			expected: []token.Category{token.Identifier, token.Assign, token.Identifier, token.Whitespace, token.Connector, token.Whitespace, token.Identifier},
		},
		{
			name:     "mixed unicode spaces",
			input:    "a\u2003\v\u2028b",
			expected: []token.Category{token.Identifier, token.Whitespace, token.Identifier},
			literals: []string{"a", "\u2003\v\u2028", "b"},
		},
		{
			name:  "pipeline",
			input: "x | limit 10",
			expected: []token.Category{
				token.Identifier, token.Whitespace, token.Pipe, token.Whitespace,
				token.Limit, token.Whitespace, token.Numeric,
			},
		},
		{
			name:  "field list",
			input: "fields [a,b]",
			expected: []token.Category{
				token.Fields, token.Whitespace, token.LeftSquareBracket,
				token.Identifier, token.Comma, token.Identifier, token.RightSquareBracket,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, categories(tokens))
			if tt.literals != nil {
				lits := make([]string, len(tokens))
				for i, tok := range tokens {
					lits[i] = tok.Literal
				}
				assert.Equal(t, tt.literals, lits)
			}
		})
	}
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"host=foo AND (a=1 OR b=\"x y\") | stats count(host) as n by a, b | sort by +n | limit 5",
		"  *  ",
		"主机=服务器 NOT level=[1 TO 3]",
		"path=/var/log/",
		"line1\nline2",
	}
	for _, in := range inputs {
		tokens, err := Tokenize(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, token.Join(tokens))
	}
}

func TestTokenize_Positions(t *testing.T) {
	tokens, err := Tokenize("a\n主b")
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Span.Start)
	assert.Equal(t, token.Position{Line: 2, Column: 1, Offset: 2}, tokens[2].Span.Start)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 6}, tokens[2].Span.End)
	assert.Equal(t, 2, tokens[2].Start())
	assert.Equal(t, 6, tokens[2].End())
}

func TestTokenize_Error(t *testing.T) {
	tokens, err := Tokenize("host @@ bar")
	require.Error(t, err)

	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 5, lexErr.Pos.Offset)
	assert.Equal(t, 6, lexErr.Pos.Column)
	assert.Equal(t, "@@ bar", lexErr.Remainder)
	assert.Equal(t, "@", lexErr.Offending())
	assert.Contains(t, err.Error(), "line 1, column 6")

	// Partial output up to the failure.
	assert.Equal(t, []token.Category{token.Identifier, token.Whitespace}, categories(tokens))
}

func TestTokenizeLenient(t *testing.T) {
	tokens, err := TokenizeLenient("host @@")
	assert.Error(t, err)
	assert.Empty(t, tokens)

	tokens, err = TokenizeLenient("host")
	assert.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestNew_CustomRules(t *testing.T) {
	l := New(NewRule(token.Identifier, `[a-z]+`), NewRule(token.Whitespace, ` +`))
	tokens, err := l.Tokenize("stats by")
	require.NoError(t, err)
	assert.Equal(t, []token.Category{token.Identifier, token.Whitespace, token.Identifier}, categories(tokens))

	_, err = l.Tokenize("A")
	assert.Error(t, err)
}
