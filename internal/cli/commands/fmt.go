package commands

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapspl/internal/cli/output"
	"github.com/leapstack-labs/leapspl/pkg/completion"
	"github.com/leapstack-labs/leapspl/pkg/format"
	"github.com/leapstack-labs/leapspl/pkg/lexer"
)

// FormatOutput is the JSON result for one formatted query.
type FormatOutput struct {
	Query     string `json:"query"`
	Formatted string `json:"formatted"`
	Changed   bool   `json:"changed"`
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [query]",
		Short: "Normalize the spacing of queries",
		Long: `Format a query, or every line of stdin when no query is given.

Whitespace runs collapse to a single space, pipes are surrounded by spaces
and TO is upper-cased. Quoted and slashed text is left as written. A query
that does not tokenize is reported and left unchanged.`,
		Example: `  leapspl fmt 'host=web-01|stats count(*)  by region'
  leapspl fmt < queries.spl`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runFmt(cmd, []string{args[0]})
			}
			var lines []string
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runFmt(cmd, lines)
		},
	}
	return cmd
}

func runFmt(cmd *cobra.Command, queries []string) error {
	cmdCtx, err := NewCommandContextWithoutCatalog(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	var (
		results  = make([]FormatOutput, 0, len(queries))
		firstErr error
	)
	for _, q := range queries {
		formatted, err := format.Query(q)
		if err != nil {
			var lexErr *lexer.LexError
			if errors.As(err, &lexErr) {
				res := completion.Result{Input: q, Err: lexErr}
				printProblems(cmd.ErrOrStderr(), r, q, res.Problems())
			}
			if firstErr == nil {
				firstErr = err
			}
			formatted = q
		}
		results = append(results, FormatOutput{Query: q, Formatted: formatted, Changed: formatted != q})
	}
	cmdCtx.Logger.Debug("formatted", "queries", len(queries))

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(results); err != nil {
			return err
		}
		return firstErr
	}
	for _, res := range results {
		r.Println(res.Formatted)
	}
	return firstErr
}
