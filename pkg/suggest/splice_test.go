package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapspl/pkg/grammar"
	"github.com/leapstack-labs/leapspl/pkg/lexer"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

func spliceFor(t *testing.T, sp *Splicer, text, key string) string {
	t.Helper()
	tokens, err := lexer.Tokenize(text)
	require.NoError(t, err)
	cats := grammar.Default.Continuations(tokens)

	entries := NewSynthesizer(nil, 0).Suggest(cats, testFields(), tokens)
	entry, ok := Find(entries, key)
	require.True(t, ok, "%q not suggested after %q: %v", key, text, labels(entries))

	out, err := sp.Splice(text, tokens, cats, entry)
	require.NoError(t, err)
	return out
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		key      string
		expected string
	}{
		{name: "empty text", text: "", key: "host", expected: "host"},
		{name: "complete field fragment", text: "ho", key: "host", expected: "host"},
		{name: "complete field after connector", text: "a=1 AND sta", key: "status", expected: "a=1 AND status"},
		{name: "append symbol", text: "host", key: "=", expected: "host="},
		{name: "append after whitespace", text: "host=a ", key: "AND", expected: "host=a AND"},
		{name: "connector trailing word", text: "host=a AN", key: "AND", expected: "host=a AND"},
		{name: "stage fragment", text: "x | so", key: "sort", expected: "x | sort"},
		{name: "stage at root", text: "st", key: "stats", expected: "stats"},
		{name: "alias fragment", text: "stats count(host) a", key: "as", expected: "stats count(host) as"},
		{name: "aggregation fragment", text: "stats a", key: "avg", expected: "stats avg"},
		{name: "interval keyword", text: "level=[1 t", key: "TO", expected: "level=[1 TO"},
		{name: "value fragment", text: "status=50", key: "500", expected: "status=500"},
		{name: "quoted value", text: "host=", key: "db 1", expected: `host="db 1"`},
		{name: "quoted value over fragment", text: "host=d", key: "db 1", expected: `host="db 1"`},
		{name: "whitespace entry", text: "host=a", key: "whitespace", expected: "host=a "},
	}

	sp := NewSplicer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, spliceFor(t, sp, tt.text, tt.key))
		})
	}
}

func TestSplice_UnreachableCategoryAddsSpace(t *testing.T) {
	sp := NewSplicer(nil)
	tokens, err := lexer.Tokenize("host=a")
	require.NoError(t, err)

	out, err := sp.Splice("host=a", tokens, token.NewSet(token.Whitespace), Vocabulary(token.Pipe)[0])
	require.NoError(t, err)
	assert.Equal(t, "host=a |", out)
}

func TestSplice_LexError(t *testing.T) {
	sp := NewSplicer(nil)
	_, err := sp.Splice("host @@", nil, 0, Vocabulary(token.Pipe)[0])
	require.Error(t, err)

	var lexErr *lexer.LexError
	assert.ErrorAs(t, err, &lexErr)
}

func TestSplice_NilTokensRecomputed(t *testing.T) {
	sp := NewSplicer(nil)
	out, err := sp.Splice("ho", nil, token.NewSet(token.Identifier), fieldEntry(Field{Name: "host"}))
	require.NoError(t, err)
	assert.Equal(t, "host", out)
}

func TestSplice_PolicyOverride(t *testing.T) {
	sp := NewSplicer(map[token.Category]Policy{token.Numeric: ReplaceSameCategory})
	assert.Equal(t, ReplaceSameCategory, sp.Policy(token.Numeric))
	assert.Equal(t, ReplaceFragment, sp.Policy(token.Identifier))

	assert.Equal(t, "status=50 500", spliceFor(t, sp, "status=50", "500"))

	strict := NewSplicer(map[token.Category]Policy{token.Connector: ReplaceSameCategory})
	assert.Equal(t, "host=a ANAND", spliceFor(t, strict, "host=a AN", "AND"), "without trailing-word the connector is appended")
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{ReplaceSameCategory, ReplaceFragment, ReplaceTrailingWord} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePolicy("sometimes")
	assert.Error(t, err)
}

// Every suggested entry must splice into text that still tokenizes.
func TestSplice_RoundTrip(t *testing.T) {
	inputs := []string{
		"", "ho", "host", "host=", "host=a ", "host=a AN", "x | ", "x | so",
		"stats count(", "stats count(host) ", "level=[1 ", `"hello `, "status=50",
		"(a=1 ", "fields [a, ", "sort by n", "* ", "web*",
	}
	syn := NewSynthesizer(nil, 10)
	sp := NewSplicer(nil)

	for _, in := range inputs {
		tokens, err := lexer.Tokenize(in)
		require.NoError(t, err)
		cats := grammar.Default.Continuations(tokens)

		for _, e := range syn.Suggest(cats, testFields(), tokens) {
			out, err := sp.Splice(in, tokens, cats, e)
			require.NoError(t, err, "%q + %s", in, e.ID)

			_, err = lexer.Tokenize(out)
			assert.NoError(t, err, "%q + %s -> %q", in, e.ID, out)
		}
	}
}

// After completing a word, the same word is not offered again.
func TestSplice_Idempotent(t *testing.T) {
	syn := NewSynthesizer(nil, 0)
	sp := NewSplicer(nil)

	for _, tc := range []struct{ text, key string }{
		{"ho", "host"},
		{"x | so", "sort"},
		{"host=web-0", "web-01"},
	} {
		out := spliceFor(t, sp, tc.text, tc.key)

		tokens, err := lexer.Tokenize(out)
		require.NoError(t, err)
		last, _ := token.Last(tokens)

		for _, e := range syn.Suggest(grammar.Default.Continuations(tokens), testFields(), tokens) {
			assert.False(t, e.Category == last.Category && e.Code == last.Literal,
				"%q re-suggests %q", out, e.Code)
		}
	}
}
