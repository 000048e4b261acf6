package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// FieldsOutput is the JSON result of the fields command.
type FieldsOutput struct {
	Sources []string        `json:"sources"`
	Fields  []suggest.Field `json:"fields"`
}

// NewFieldsCommand creates the fields command.
func NewFieldsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the fields in the catalog",
		Long: `List the fields offered for identifier completion.

Fields come from catalog.file and/or a database table (catalog.driver,
catalog.dsn, catalog.table). Selected fields are suggested first.`,
		Example: `  # From the configured catalog
  leapspl fields

  # From a file
  leapspl fields --catalog fields.yaml

  # From a SQLite table
  leapspl fields --driver sqlite --dsn events.db --table events`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFields(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (table|csv|markdown|json)")
	return cmd
}

func runFields(cmd *cobra.Command, formatFlag string) error {
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

	var fields []suggest.Field
	if c := cmdCtx.fields(); c != nil {
		fields = c.Fields()
	}
	sources := make([]string, 0, len(cmdCtx.Catalog.Sources))
	for _, s := range cmdCtx.Catalog.Sources {
		sources = append(sources, s.Name())
	}

	if format == formatJSON {
		if fields == nil {
			fields = []suggest.Field{}
		}
		return r.JSON(FieldsOutput{Sources: sources, Fields: fields})
	}

	if len(sources) == 0 {
		r.Warning("no catalog configured (set catalog.file or catalog.driver)")
	}

	rows := make([]table.Row, 0, len(fields))
	for _, f := range fields {
		selected := ""
		if f.Selected {
			selected = "yes"
		}
		rows = append(rows, table.Row{f.Name, f.Type, selected, strings.Join(f.Values, ", ")})
	}
	renderRows(r.Writer(), format, table.Row{"Name", "Type", "Selected", "Values"}, rows)

	if format == formatTable && len(sources) > 0 {
		r.Muted(fmt.Sprintf("%d fields from %s", len(fields), strings.Join(sources, ", ")))
	}
	return nil
}
