package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapspl/pkg/completion"
	"github.com/leapstack-labs/leapspl/pkg/lexer"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

// TokenOutput is the JSON form of one token.
type TokenOutput struct {
	Category token.Category `json:"category"`
	Literal  string         `json:"literal"`
	Start    int            `json:"start"`
	End      int            `json:"end"`
	Line     int            `json:"line"`
	Column   int            `json:"column"`
}

// TokensOutput is the JSON result of the tokens command.
type TokensOutput struct {
	Query  string        `json:"query"`
	Tokens []TokenOutput `json:"tokens"`
	Error  string        `json:"error,omitempty"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tokens <query>",
		Short: "Show how a query is tokenized",
		Long: `Split a query into categorized tokens.

When part of the query cannot be tokenized, the tokens before the
offending character are shown and the command fails.`,
		Example: `  # Token table
  leapspl tokens 'host=web-01 | stats count(*) by region'

  # As JSON
  leapspl tokens 'status=500' --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (table|csv|markdown|json)")
	return cmd
}

func runTokens(cmd *cobra.Command, query, formatFlag string) error {
	cmdCtx, err := NewCommandContextWithoutCatalog(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	format, err := resolveFormat(formatFlag, r)
	if err != nil {
		return err
	}

	tokens, lexErr := lexer.Tokenize(query)
	cmdCtx.Logger.Debug("tokenized", "tokens", len(tokens), "error", lexErr)

	if format == formatJSON {
		out := TokensOutput{Query: query, Tokens: make([]TokenOutput, 0, len(tokens))}
		for _, t := range tokens {
			out.Tokens = append(out.Tokens, TokenOutput{
				Category: t.Category,
				Literal:  t.Literal,
				Start:    t.Start(),
				End:      t.End(),
				Line:     t.Span.Start.Line,
				Column:   t.Span.Start.Column,
			})
		}
		if lexErr != nil {
			out.Error = lexErr.Error()
		}
		if err := r.JSON(out); err != nil {
			return err
		}
		return lexErr
	}

	rows := make([]table.Row, 0, len(tokens))
	for i, t := range tokens {
		rows = append(rows, table.Row{i, t.Category.String(), fmt.Sprintf("%q", t.Literal), t.Start(), t.End()})
	}
	renderRows(r.Writer(), format, table.Row{"#", "Category", "Literal", "Start", "End"}, rows)

	if lexErr != nil {
		res := completion.Result{Input: query, Err: lexErr}
		printProblems(cmd.ErrOrStderr(), r, query, res.Problems())
		return lexErr
	}
	return nil
}
