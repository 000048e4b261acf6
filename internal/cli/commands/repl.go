package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapspl/internal/cli/output"
	"github.com/leapstack-labs/leapspl/pkg/completion"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

const (
	replPrompt       = "leapspl> "
	replShownEntries = 10
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive query prompt with Tab completion",
		Long: `Start an interactive prompt. Tab completes the query using the same
engine as the suggest command; entering a query lists its problems and
suggestions.

Suggestions that rewrite earlier text (such as replacing a partially typed
keyword) cannot be shown by Tab; use .pick <label|id> to apply them.
History lasts for the session only.`,
		Example: `  leapspl repl
  leapspl repl --catalog fields.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}

	return cmd
}

func runREPL(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	session := &replSession{
		engine:   cmdCtx.Engine,
		catalog:  cmdCtx.fields(),
		renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeText),
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		AutoComplete:    session,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "LeapSPL REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		quit, prefill := session.handle(line)
		if quit {
			break
		}
		if prefill != "" {
			_, _ = rl.WriteStdin([]byte(prefill))
		}
	}
	return nil
}

// replSession holds the REPL state and implements readline.AutoCompleter.
type replSession struct {
	engine   *completion.Engine
	catalog  completion.Catalog
	renderer *output.Renderer
	out      io.Writer
	errOut   io.Writer

	last string // last query entered
}

// Do offers every suggestion whose splice only appends to the text before
// the cursor. The shared length covers a trailing fragment the suggestion
// completes, so candidates display whole.
func (s *replSession) Do(line []rune, pos int) ([][]rune, int) {
	before := string(line[:pos])
	res := s.engine.Complete(before, s.catalog)
	if res.Err != nil {
		return nil, 0
	}

	fragment := ""
	if last, ok := token.Last(res.Tokens); ok && token.IsFragment(last.Category) {
		fragment = last.Literal
	}

	var (
		candidates [][]rune
		seen       = make(map[string]bool)
		shared     = -1
	)
	for _, entry := range res.Entries {
		out, err := s.engine.Apply(before, entry)
		if err != nil || !strings.HasPrefix(out, before) || out == before {
			continue
		}
		suffix := out[len(before):]
		if seen[suffix] {
			continue
		}
		seen[suffix] = true

		n := 0
		if fragment != "" && fragment+suffix == entry.Code {
			n = len([]rune(fragment))
		}
		// readline takes one shared length for all candidates.
		if shared == -1 {
			shared = n
		} else if shared != n {
			shared = 0
		}
		candidates = append(candidates, []rune(suffix))
	}

	if shared < 0 {
		shared = 0
	}
	return candidates, shared
}

// handle runs one REPL line. It reports whether to quit and any text to
// prefill the next prompt with.
func (s *replSession) handle(line string) (quit bool, prefill string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false, ""
	}

	if strings.HasPrefix(trimmed, ".") {
		return s.dotCommand(trimmed)
	}

	s.last = line
	s.show(line)
	return false, ""
}

func (s *replSession) dotCommand(line string) (bool, string) {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true, ""

	case ".help":
		printREPLHelp(s.out)

	case ".fields":
		var rows []table.Row
		if s.catalog != nil {
			for _, f := range s.catalog.Fields() {
				rows = append(rows, table.Row{f.Name, f.Type, strings.Join(f.Values, ", ")})
			}
		}
		renderRows(s.out, formatTable, table.Row{"Name", "Type", "Values"}, rows)

	case ".suggest":
		s.show(s.last)

	case ".pick":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .pick <label|id>")
			return false, ""
		}
		key := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
		out, entry, err := s.engine.Select(s.last, s.catalog, key)
		if err != nil {
			s.renderer.Error(err.Error())
			return false, ""
		}
		s.renderer.Success("applied " + displayLabel(entry))
		s.last = out
		return false, out

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false, ""
}

// show prints the problems and top suggestions for query.
func (s *replSession) show(query string) {
	res := s.engine.Complete(query, s.catalog)
	printProblems(s.errOut, s.renderer, query, res.Problems())
	if res.Dead() {
		_, _ = fmt.Fprintln(s.errOut, "no continuation: the query cannot be extended")
		return
	}

	entries := res.Entries
	if len(entries) > replShownEntries {
		entries = entries[:replShownEntries]
	}
	renderRows(s.out, formatTable, table.Row{"#", "Label", "Tag", "ID", "Description"}, entryRows(s.renderer, formatTable, entries))
	if more := len(res.Entries) - len(entries); more > 0 {
		s.renderer.Muted(fmt.Sprintf("... %d more", more))
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .fields         List catalog fields
  .suggest        Show suggestions for the last query again
  .pick <key>     Apply a suggestion (label or ID) to the last query
  .quit / .exit   Exit the REPL

Tips:
  - Tab completes the query at the cursor
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}
