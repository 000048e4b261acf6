package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapspl/pkg/lexer"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: "   ", expected: ""},
		{name: "trims and collapses", input: "  host=a   AND  b  ", expected: "host=a AND b"},
		{name: "spaces pipes", input: "host=a|stats count(host)", expected: "host=a | stats count(host)"},
		{name: "collapses around pipes", input: "host=a |  sort by  x", expected: "host=a | sort by x"},
		{name: "pipe after stage", input: "stats count(*)|sort by n-", expected: "stats count(*) | sort by n-"},
		{name: "upper-cases TO", input: "status=[200 to 299]", expected: "status=[200 TO 299]"},
		{name: "keeps quoted text", input: `msg="a   b"   |stats count(*)`, expected: `msg="a   b" | stats count(*)`},
		{name: "keeps slashed text", input: `path=/a  b/`, expected: `path=/a  b/`},
		{name: "unterminated quote", input: `msg="a   b`, expected: `msg="a   b`},
		{name: "partial stage is not respaced", input: "host=a|so", expected: "host=a|so"},
		{name: "rejected query only collapses", input: "host=a  )  |b", expected: "host=a ) |b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Query(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestQuery_Idempotent(t *testing.T) {
	inputs := []string{
		"host=a|stats count(host)  as  n by region",
		`  msg="x  y"  OR  status=500 | limit 10`,
		"fields [ a, b ]",
	}
	for _, in := range inputs {
		once, err := Query(in)
		require.NoError(t, err)
		twice, err := Query(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, in)
	}
}

func TestQuery_LexError(t *testing.T) {
	_, err := Query("host @@")

	var lexErr *lexer.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 5, lexErr.Pos.Offset)
}
