package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapspl/internal/cli/output"
	"github.com/leapstack-labs/leapspl/pkg/completion"
)

// Table formats accepted by --format.
const (
	formatTable    = "table"
	formatCSV      = "csv"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

var tableFormats = []string{formatTable, formatCSV, formatMarkdown, formatJSON}

var titleCase = cases.Title(language.English)

// resolveFormat picks the table format: an explicit --format wins, otherwise
// the output mode decides.
func resolveFormat(flag string, r *output.Renderer) (string, error) {
	switch strings.ToLower(flag) {
	case "":
	case formatTable, formatCSV, formatJSON:
		return strings.ToLower(flag), nil
	case formatMarkdown, "md":
		return formatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want one of %s)", flag, strings.Join(tableFormats, ", "))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return formatJSON, nil
	case output.ModeMarkdown:
		return formatMarkdown, nil
	default:
		return formatTable, nil
	}
}

// renderRows writes header and rows in a non-JSON table format.
func renderRows(w io.Writer, format string, header table.Row, rows []table.Row) {
	if len(rows) == 0 && format == formatTable {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)

	switch format {
	case formatCSV:
		t.RenderCSV()
	case formatMarkdown:
		t.RenderMarkdown()
	default:
		t.Render()
	}
}

// printProblems writes each problem under the query with a caret marking
// the offending text.
func printProblems(w io.Writer, r *output.Renderer, query string, problems []completion.Problem) {
	for _, p := range problems {
		label := r.Styles().Warning.Render(p.Severity.String() + ":")
		if p.Severity == completion.SeverityError {
			label = r.Styles().Error.Render(p.Severity.String() + ":")
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", label, p.Message)
		_, _ = fmt.Fprintf(w, "  %s\n", query)
		_, _ = fmt.Fprintf(w, "  %s\n", output.Caret(cellWidth(query, p.Start), cellWidth(query, p.End)))
	}
}

// cellWidth is the terminal width of query up to byte offset.
func cellWidth(query string, offset int) int {
	if offset > len(query) {
		offset = len(query)
	}
	return lipgloss.Width(query[:offset])
}
