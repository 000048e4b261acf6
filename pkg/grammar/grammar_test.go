package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapspl/pkg/lexer"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

func continuations(t *testing.T, input string) token.Set {
	t.Helper()
	tokens, err := lexer.Tokenize(input)
	require.NoError(t, err)
	return Default.Continuations(tokens)
}

func set(cats ...token.Category) token.Set {
	return token.NewSet(cats...)
}

func TestContinuations_Exact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected token.Set
	}{
		{
			name:     "empty input",
			input:    "",
			expected: set(token.Quote, token.Identifier, token.Any, token.LeftBracket),
		},
		{
			name:     "after stats head",
			input:    "stats count(host) ",
			expected: set(token.As, token.By, token.Pipe),
		},
		{
			name:  "bare field",
			input: "host",
			expected: set(
				token.Stats, token.Sort, token.Limit, token.Fields,
				token.Identifier, token.Any, token.One,
				token.Whitespace, token.Assign, token.Pipe,
			),
		},
		{
			name:  "after complete comparison",
			input: "host=a ",
			expected: set(
				token.Connector, token.Identifier, token.Quote,
				token.Slash, token.Pipe, token.LeftBracket,
			),
		},
		{
			name:     "first stage after search",
			input:    "x | ",
			expected: set(token.Stats, token.Sort, token.Limit, token.Fields),
		},
		{
			name:     "later stage",
			input:    "x | stats count(a) | ",
			expected: set(token.Sort, token.Limit, token.Fields),
		},
		{
			name:     "search all",
			input:    "* | ",
			expected: set(token.Stats, token.Sort, token.Limit, token.Fields),
		},
		{
			name:     "interval upper bound",
			input:    "level=[1 TO 5",
			expected: set(token.RightSquareBracket, token.RightBrace),
		},
		{
			name:     "sort direction",
			input:    "sort by n-",
			expected: set(token.Whitespace, token.Pipe, token.Comma),
		},
		{
			name:     "after limit",
			input:    "limit 10 ",
			expected: set(token.Pipe),
		},
		{
			name:     "fields list",
			input:    "fields [a, b",
			expected: set(token.Identifier, token.Whitespace, token.Comma, token.RightSquareBracket),
		},
		{
			name:     "inside quotes",
			input:    `"hello wor`,
			expected: set(token.Identifier, token.Whitespace, token.Quote),
		},
		{
			name:     "stats argument",
			input:    "stats count(",
			expected: set(token.Identifier, token.Any),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := continuations(t, tt.input)
			assert.Equal(t, tt.expected.String(), got.String())
		})
	}
}

func TestContinuations_StatsNotRepeated(t *testing.T) {
	got := continuations(t, "stats count(host) ")
	assert.False(t, got.Has(token.Stats))
	assert.False(t, got.Has(token.Identifier))
}

func TestContinuations_ValuePosition(t *testing.T) {
	got := continuations(t, "field=")
	assert.True(t, got.Has(token.Identifier))
	assert.True(t, got.Has(token.Numeric))
	assert.True(t, got.Has(token.Quote))
	assert.True(t, got.Has(token.LeftSquareBracket))
	assert.False(t, got.Has(token.Assign))
}

func TestContinuations_PartialKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  token.Category
	}{
		{name: "connector after term", input: "host=a AN", want: token.Connector},
		{name: "stage at root", input: "st", want: token.Stats},
		{name: "stage after pipe", input: "x | so", want: token.Sort},
		{name: "alias after stats", input: "stats count(host) a", want: token.As},
		{name: "group by after alias", input: "stats sum(bytes) as total b", want: token.By},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := continuations(t, tt.input)
			assert.True(t, got.Has(tt.want), "got %s", got)
		})
	}
}

func TestContinuations_Groups(t *testing.T) {
	open := continuations(t, "(a=1 ")
	assert.True(t, open.Has(token.RightBracket))
	assert.True(t, open.Has(token.Connector))
	assert.False(t, open.Has(token.Pipe), "pipe is not legal inside a group")

	nested := continuations(t, "((a) ")
	assert.True(t, nested.Has(token.RightBracket))

	closed := continuations(t, "(a=1) ")
	assert.True(t, closed.Has(token.Pipe))
	assert.True(t, closed.Has(token.Connector))
	assert.False(t, closed.Has(token.RightBracket))
}

func TestContinuations_Literals(t *testing.T) {
	afterQuote := continuations(t, `msg="a=b | c" `)
	assert.True(t, afterQuote.Has(token.Pipe))
	assert.True(t, afterQuote.Has(token.Connector))

	slash := continuations(t, "path=/var")
	assert.True(t, slash.Has(token.Slash))
	assert.False(t, slash.Has(token.Pipe))
}

func TestContinuations_Wildcards(t *testing.T) {
	got := continuations(t, "host=web*01")
	assert.True(t, got.Has(token.Whitespace))
	assert.True(t, got.Has(token.Any))

	bare := continuations(t, "web?")
	assert.True(t, bare.Has(token.Identifier))
	assert.True(t, bare.Has(token.Pipe))
}

func TestContinuations_LeadingWhitespace(t *testing.T) {
	assert.Equal(t, continuations(t, "host").String(), continuations(t, "   host").String())
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		consumed int
		empty    bool
	}{
		{name: "fully accepted", input: "host=a | limit 5", consumed: 9},
		{name: "first token rejected", input: ")", consumed: 0, empty: true},
		{name: "rejected mid-stream", input: "host=a )", consumed: 4},
		{name: "limit needs a number", input: "limit x", consumed: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := lexer.Tokenize(tt.input)
			require.NoError(t, err)

			got, consumed := Default.Walk(tokens)
			assert.Equal(t, tt.consumed, consumed)
			assert.Equal(t, tt.empty, got.Empty())
		})
	}
}

func TestResolve_EmptyTokens(t *testing.T) {
	assert.True(t, Resolve(nil, Default.Root()).Empty())
}

func TestResolve_DeepInputTerminates(t *testing.T) {
	var b strings.Builder
	b.WriteString(strings.Repeat("(", 200))
	b.WriteString("a")
	b.WriteString(strings.Repeat(")", 200))
	for i := 0; i < 100; i++ {
		b.WriteString(" | sort by a")
	}
	got := continuations(t, b.String())
	assert.True(t, got.Has(token.Pipe))
}

func TestNode_Merge(t *testing.T) {
	a := edge(token.Pipe, nowhere)
	b := quietEdge(token.Comma, nowhere)
	n := node(a, b)

	assert.True(t, n.Accepts(token.Comma))
	assert.Equal(t, set(token.Pipe).String(), n.Categories().String())

	n = node(n, edge(token.Comma, nowhere))
	assert.True(t, n.Categories().Has(token.Comma), "visible edge replaces quiet one")

	_, ok := Node{}.Next(token.Pipe)
	assert.False(t, ok)
	_, ok = n.Next(token.NumCategories)
	assert.False(t, ok)
}
