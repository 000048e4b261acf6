package lsp

import (
	"strings"

	"github.com/leapstack-labs/leapspl/pkg/completion"
)

const diagnosticSource = "leapspl"

// publishDiagnostics checks every line of the document and publishes the
// problems found.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     doc.Version,
		Diagnostics: s.getDiagnostics(doc),
	})
}

// getDiagnostics returns one diagnostic per problem. Blank lines are skipped.
func (s *Server) getDiagnostics(doc *Document) []Diagnostic {
	diagnostics := []Diagnostic{}
	for line := range doc.LineCount() {
		text := doc.GetLine(line)
		if strings.TrimSpace(text) == "" {
			continue
		}
		res := s.engine.Complete(text, s.catalog)
		for _, p := range res.Problems() {
			diagnostics = append(diagnostics, Diagnostic{
				Range:    doc.LineRange(line, p.Start, p.End),
				Severity: severityFor(p.Severity),
				Source:   diagnosticSource,
				Message:  p.Message,
			})
		}
	}
	return diagnostics
}

func severityFor(sev completion.Severity) DiagnosticSeverity {
	switch sev {
	case completion.SeverityError:
		return DiagnosticSeverityError
	case completion.SeverityWarning:
		return DiagnosticSeverityWarning
	default:
		return DiagnosticSeverityInformation
	}
}
