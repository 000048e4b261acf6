package completion

import "fmt"

// Severity classifies a Problem.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("SEVERITY(%d)", int(s))
	}
}

// Problem is a diagnostic over a byte range of the input.
type Problem struct {
	Severity Severity
	Start    int // byte offset
	End      int // byte offset, exclusive
	Message  string
}

// Problems reports a lexical error as an error and a token the grammar
// rejected as a warning. Input that is merely incomplete has no problems.
func (r Result) Problems() []Problem {
	if lexErr, ok := r.LexError(); ok {
		return []Problem{{
			Severity: SeverityError,
			Start:    lexErr.Pos.Offset,
			End:      len(r.Input),
			Message:  fmt.Sprintf("unexpected character %q", lexErr.Offending()),
		}}
	}
	if r.Stuck() {
		tok := r.Tokens[r.Consumed]
		return []Problem{{
			Severity: SeverityWarning,
			Start:    tok.Start(),
			End:      tok.End(),
			Message:  fmt.Sprintf("unexpected %s %q", tok.Category, tok.Literal),
		}}
	}
	return nil
}
