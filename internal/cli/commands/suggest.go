package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapspl/internal/cli/output"
	"github.com/leapstack-labs/leapspl/pkg/completion"
	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// ProblemOutput is the JSON form of a diagnostic.
type ProblemOutput struct {
	Severity string `json:"severity"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// SuggestOutput is the JSON result of the suggest command.
type SuggestOutput struct {
	Query      string          `json:"query"`
	Categories []string        `json:"categories"`
	Entries    []suggest.Entry `json:"entries"`
	Problems   []ProblemOutput `json:"problems,omitempty"`
	Dead       bool            `json:"dead,omitempty"`
}

func newSuggestOutput(res completion.Result, limit int) SuggestOutput {
	entries := res.Entries
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []suggest.Entry{}
	}
	out := SuggestOutput{
		Query:      res.Input,
		Categories: res.Categories.Strings(),
		Entries:    entries,
		Dead:       res.Dead(),
	}
	for _, p := range res.Problems() {
		out.Problems = append(out.Problems, ProblemOutput{
			Severity: p.Severity.String(),
			Start:    p.Start,
			End:      p.End,
			Message:  p.Message,
		})
	}
	return out
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand() *cobra.Command {
	var (
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "suggest [query]",
		Short: "List ranked suggestions for a partial query",
		Long: `Suggest what may follow a partial query.

Suggestions are ranked by tag weight (see suggest.weights) and fields come
from the configured catalog. Problems in the query are reported on stderr.`,
		Example: `  # Suggestions for an empty query
  leapspl suggest

  # After a field and operator
  leapspl suggest 'host='

  # First five as JSON
  leapspl suggest 'host=web-01 | ' --limit 5 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			return runSuggest(cmd, query, format, limit)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (table|csv|markdown|json)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n suggestions (0 for all)")
	return cmd
}

func runSuggest(cmd *cobra.Command, query, formatFlag string, limit int) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	r := cmdCtx.Renderer

	format, err := resolveFormat(formatFlag, r)
	if err != nil {
		return err
	}

	res := cmdCtx.Engine.Complete(query, cmdCtx.fields())
	cmdCtx.Logger.Debug("completed", "query", query, "categories", res.Categories.String(), "entries", len(res.Entries))
	out := newSuggestOutput(res, limit)

	if format == formatJSON {
		return r.JSON(out)
	}

	if format == formatMarkdown {
		r.Header(2, "Suggestions for "+output.FormatInlineCode(query))
		r.Println("")
	}
	renderRows(r.Writer(), format, table.Row{"#", "Label", "Tag", "ID", "Description"}, entryRows(r, format, out.Entries))

	printProblems(cmd.ErrOrStderr(), r, query, res.Problems())
	if out.Dead {
		r.Warning("no continuation: the query cannot be extended")
	}
	return nil
}

// entryRows builds table rows. Tags are colored in the terminal table only.
func entryRows(r *output.Renderer, format string, entries []suggest.Entry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		tag := string(e.Tag)
		if format == formatTable {
			tag = r.Styles().Tag(e.Tag).Render(titleCase.String(tag))
		}
		rows = append(rows, table.Row{i + 1, displayLabel(e), tag, e.ID, e.Description})
	}
	return rows
}

// displayLabel makes whitespace entries visible.
func displayLabel(e suggest.Entry) string {
	if e.Label == " " {
		return "␣"
	}
	return e.Label
}
