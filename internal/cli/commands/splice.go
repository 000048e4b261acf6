package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapspl/internal/cli/output"
	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// SpliceOutput is the JSON result of the splice command.
type SpliceOutput struct {
	Query  string        `json:"query"`
	Entry  suggest.Entry `json:"entry"`
	Result string        `json:"result"`
}

// NewSpliceCommand creates the splice command.
func NewSpliceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "splice <query> <label|id>",
		Short: "Apply a suggestion to a query",
		Long: `Complete a query, pick the suggestion whose ID or label matches, and
print the query with the suggestion spliced in.

IDs are matched before labels, so "and" picks the AND connector even when
a field is also labelled "and".`,
		Example: `  # Finish a field name
  leapspl splice 'ho' host

  # Pick a value
  leapspl splice 'host=w' web-02`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplice(cmd, args[0], args[1])
		},
	}
	return cmd
}

func runSplice(cmd *cobra.Command, query, key string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	r := cmdCtx.Renderer

	result, entry, err := cmdCtx.Engine.Select(query, cmdCtx.fields(), key)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("spliced", "query", query, "entry", entry.ID, "result", result)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(SpliceOutput{Query: query, Entry: entry, Result: result})
	case output.ModeMarkdown:
		r.Println(output.FormatCodeBlock("spl", result))
	default:
		r.Println(result)
	}
	return nil
}
