// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapspl/internal/catalog"
	"github.com/leapstack-labs/leapspl/internal/cli/config"
	"github.com/leapstack-labs/leapspl/internal/cli/output"
	"github.com/leapstack-labs/leapspl/internal/cli/testutil"
	"github.com/leapstack-labs/leapspl/pkg/completion"
	"github.com/leapstack-labs/leapspl/pkg/lexer"
	"github.com/leapstack-labs/leapspl/pkg/suggest"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

func TestNewTokensCommand(t *testing.T) {
	cmd := NewTokensCommand()

	assert.Equal(t, "tokens <query>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("format"))
}

func TestNewSuggestCommand(t *testing.T) {
	cmd := NewSuggestCommand()

	assert.Equal(t, "suggest [query]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	// Verify flags exist (output is a global flag on root, not local)
	for _, flag := range []string{"format", "limit"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "n", cmd.Flags().Lookup("limit").Shorthand)
}

func TestNewSpliceCommand(t *testing.T) {
	cmd := NewSpliceCommand()

	assert.Equal(t, "splice <query> <label|id>", cmd.Use)
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.Error(t, cmd.Args(cmd, []string{"host"}), "splice takes two arguments")
}

func TestNewFieldsCommand(t *testing.T) {
	cmd := NewFieldsCommand()

	assert.Equal(t, "fields", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("format"))
}

func TestNewREPLCommand(t *testing.T) {
	cmd := NewREPLCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewLSPCommand(t *testing.T) {
	cmd := NewLSPCommand("test")

	assert.Equal(t, "lsp", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should not be empty")
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand("test")

	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Long, "/v1/complete")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		renderer *testutil.TestRenderer
		flag     string
		expected string
	}{
		{name: "text mode", renderer: testutil.NewTestRendererText(), expected: formatTable},
		{name: "markdown mode", renderer: testutil.NewTestRendererMarkdown(), expected: formatMarkdown},
		{name: "json mode", renderer: testutil.NewTestRendererJSON(), expected: formatJSON},
		{name: "flag wins", renderer: testutil.NewTestRendererJSON(), flag: "CSV", expected: formatCSV},
		{name: "md alias", renderer: testutil.NewTestRendererText(), flag: "md", expected: formatMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.flag, tt.renderer.Renderer)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := resolveFormat("yaml", testutil.NewTestRendererText().Renderer)
	assert.ErrorContains(t, err, "unknown format")
}

// execute runs cmd against the test project catalog and returns stdout and
// stderr.
func execute(t *testing.T, cmd *cobra.Command, mutate func(*config.Config), args ...string) (string, string, error) {
	t.Helper()

	dir := testutil.SetupTestProject(t)
	cfg := config.Defaults()
	cfg.BaseDir = dir
	cfg.Catalog.File = filepath.Join(dir, "fields.yaml")
	if mutate != nil {
		mutate(cfg)
	}

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(config.WithConfig(context.Background(), cfg))
	return stdout.String(), stderr.String(), err
}

func jsonOutput(c *config.Config) { c.OutputFormat = "json" }

func TestTokensCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, NewTokensCommand(), jsonOutput, "host=a")
	require.NoError(t, err)

	var out TokensOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Tokens, 3)
	assert.Equal(t, "host", out.Tokens[0].Literal)
	assert.Equal(t, token.Identifier, out.Tokens[0].Category)
	assert.Equal(t, 4, out.Tokens[1].Start)
	assert.Empty(t, out.Error)
}

func TestTokensCommand_LexError(t *testing.T) {
	stdout, stderr, err := execute(t, NewTokensCommand(), nil, "host @@", "--format", "table")

	var lexErr *lexer.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Contains(t, stdout, `"host"`, "tokens before the error are shown")
	assert.Contains(t, stderr, "unexpected character")
	assert.Contains(t, stderr, "^^")
}

func TestTokensCommand_BadFormat(t *testing.T) {
	_, _, err := execute(t, NewTokensCommand(), nil, "host", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestSuggestCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, NewSuggestCommand(), jsonOutput, "--limit", "2")
	require.NoError(t, err)

	var out SuggestOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Entries, 2)
	assert.Equal(t, "host", out.Entries[0].Label, "selected fields rank first")
	assert.False(t, out.Dead)
	assert.Empty(t, out.Problems)
}

func TestSuggestCommand_Markdown(t *testing.T) {
	stdout, _, err := execute(t, NewSuggestCommand(), nil, "host=a | so")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, stdout)
	testutil.AssertValidMarkdown(t, stdout)
	assert.Contains(t, stdout, "## Suggestions for `host=a | so`")
	assert.Contains(t, stdout, "| sort ")
}

func TestSuggestCommand_Dead(t *testing.T) {
	_, stderr, err := execute(t, NewSuggestCommand(), nil, ")", "--format", "csv")
	require.NoError(t, err)

	assert.Contains(t, stderr, "warning:")
	assert.Contains(t, stderr, "no continuation")
}

func TestSpliceCommand(t *testing.T) {
	text := func(c *config.Config) { c.OutputFormat = "text" }

	stdout, _, err := execute(t, NewSpliceCommand(), text, "host=w", "web-02")
	require.NoError(t, err)
	assert.Equal(t, "host=web-02\n", stdout)

	stdout, _, err = execute(t, NewSpliceCommand(), jsonOutput, "host=a | so", "sort")
	require.NoError(t, err)
	var out SpliceOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "host=a | sort", out.Result)
	assert.Equal(t, suggest.TagOperator, out.Entry.Tag)

	_, _, err = execute(t, NewSpliceCommand(), text, "host", "no-such-entry")
	assert.ErrorIs(t, err, completion.ErrNoSuchEntry)
}

func TestFieldsCommand(t *testing.T) {
	stdout, _, err := execute(t, NewFieldsCommand(), jsonOutput)
	require.NoError(t, err)

	var out FieldsOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Sources, 1)
	assert.True(t, strings.HasPrefix(out.Sources[0], "file:"))
	require.Len(t, out.Fields, 3)
	assert.Equal(t, "host", out.Fields[0].Name)
	assert.True(t, out.Fields[0].Selected)
}

func TestFieldsCommand_NoCatalog(t *testing.T) {
	noCatalog := func(c *config.Config) { c.Catalog.File = "" }

	stdout, stderr, err := execute(t, NewFieldsCommand(), noCatalog, "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(0 rows)")
	assert.Contains(t, stderr, "no catalog configured")
}

func TestFmtCommand(t *testing.T) {
	text := func(c *config.Config) { c.OutputFormat = "text" }

	stdout, _, err := execute(t, NewFmtCommand(), text, "host=a|stats  count(*)")
	require.NoError(t, err)
	assert.Equal(t, "host=a | stats count(*)\n", stdout)
}

func TestFmtCommand_Stdin(t *testing.T) {
	cmd := NewFmtCommand()
	cmd.SetIn(strings.NewReader("host=a  AND b\nhost @@\nstatus=[1 to 5]\n"))

	stdout, stderr, err := execute(t, cmd, jsonOutput)
	var lexErr *lexer.LexError
	require.ErrorAs(t, err, &lexErr, "a line that does not tokenize fails the command")
	assert.Contains(t, stderr, "unexpected character")

	var out []FormatOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out, 3)
	assert.Equal(t, FormatOutput{Query: "host=a  AND b", Formatted: "host=a AND b", Changed: true}, out[0])
	assert.Equal(t, FormatOutput{Query: "host @@", Formatted: "host @@"}, out[1])
	assert.Equal(t, "status=[1 TO 5]", out[2].Formatted)
}

func newTestSession(t *testing.T) (*replSession, *testutil.TestRenderer) {
	t.Helper()
	tr := testutil.NewTestRenderer(output.ModeText, false)
	return &replSession{
		engine: completion.New(),
		catalog: catalog.New([]suggest.Field{
			{Name: "host", Values: []string{"web-01", "web-02"}},
		}),
		renderer: tr.Renderer,
		out:      tr.Out,
		errOut:   tr.ErrOut,
	}, tr
}

func TestREPLSession_Do(t *testing.T) {
	s, _ := newTestSession(t)

	line := []rune("host=a | so")
	candidates, _ := s.Do(line, len(line))

	var suffixes []string
	for _, c := range candidates {
		suffixes = append(suffixes, string(c))
	}
	assert.Contains(t, suffixes, "rt")
	for _, suffix := range suffixes {
		assert.NotEmpty(t, suffix)
	}

	candidates, shared := s.Do([]rune("host @@"), 7)
	assert.Empty(t, candidates, "no candidates after a lexical error")
	assert.Zero(t, shared)
}

func TestREPLSession_Handle(t *testing.T) {
	s, tr := newTestSession(t)

	quit, prefill := s.handle("   ")
	assert.False(t, quit)
	assert.Empty(t, prefill)

	quit, _ = s.handle("host=w")
	assert.False(t, quit)
	assert.Contains(t, tr.Output(), "web-02")
	assert.Equal(t, "host=w", s.last)

	_, prefill = s.handle(".pick web-02")
	assert.Equal(t, "host=web-02", prefill)
	assert.Contains(t, tr.Output(), "applied web-02")
	assert.Equal(t, "host=web-02", s.last)

	tr.Reset()
	s.handle(".pick")
	assert.Contains(t, tr.ErrorOutput(), "Usage: .pick")

	tr.Reset()
	s.handle(".pick nothing-like-this")
	assert.Contains(t, tr.ErrorOutput(), "error:")

	tr.Reset()
	s.handle(".fields")
	assert.Contains(t, tr.Output(), "host")

	tr.Reset()
	s.handle(")")
	assert.Contains(t, tr.ErrorOutput(), "no continuation")

	tr.Reset()
	s.handle(".bogus")
	assert.Contains(t, tr.ErrorOutput(), "Unknown command: .bogus")

	quit, _ = s.handle(".EXIT")
	assert.True(t, quit)
}
