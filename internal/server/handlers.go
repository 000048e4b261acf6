package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/leapspl/pkg/completion"
	"github.com/leapstack-labs/leapspl/pkg/lexer"
	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// CompleteRequest is the body of POST /v1/complete.
type CompleteRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"` // 0 for all
}

// Problem is a diagnostic over a byte range of the query.
type Problem struct {
	Severity string `json:"severity"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// CompleteResponse lists ranked suggestions for a query.
type CompleteResponse struct {
	Query      string          `json:"query"`
	Categories []string        `json:"categories"`
	Entries    []suggest.Entry `json:"entries"`
	Problems   []Problem       `json:"problems"`
	Dead       bool            `json:"dead"`
}

// SpliceRequest is the body of POST /v1/splice. Key is a suggestion ID or
// label.
type SpliceRequest struct {
	Query string `json:"query"`
	Key   string `json:"key"`
}

// SpliceResponse is the query with the chosen suggestion applied.
type SpliceResponse struct {
	Result string        `json:"result"`
	Entry  suggest.Entry `json:"entry"`
}

// FieldsResponse is the current catalog.
type FieldsResponse struct {
	Version uint64          `json:"version"`
	Fields  []suggest.Field `json:"fields"`
}

// CatalogSignals are pushed to /v1/events subscribers.
type CatalogSignals struct {
	Catalog struct {
		Version uint64 `json:"version"`
		Fields  int    `json:"fields"`
	} `json:"catalog"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.cfg.Version})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if !decode(w, r, &req) {
		return
	}

	res := s.engine.Complete(req.Query, s.catalog)
	entries := res.Entries
	if req.Limit > 0 && len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}
	if entries == nil {
		entries = []suggest.Entry{}
	}

	resp := CompleteResponse{
		Query:      req.Query,
		Categories: res.Categories.Strings(),
		Entries:    entries,
		Problems:   []Problem{},
		Dead:       res.Dead(),
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	for _, p := range res.Problems() {
		resp.Problems = append(resp.Problems, Problem{
			Severity: p.Severity.String(),
			Start:    p.Start,
			End:      p.End,
			Message:  p.Message,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSplice(w http.ResponseWriter, r *http.Request) {
	var req SpliceRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Key == "" {
		writeError(w, http.StatusBadRequest, errors.New("key is required"))
		return
	}

	out, entry, err := s.engine.Select(req.Query, s.catalog, req.Key)
	if err != nil {
		var lexErr *lexer.LexError
		switch {
		case errors.Is(err, completion.ErrNoSuchEntry):
			writeError(w, http.StatusNotFound, err)
		case errors.As(err, &lexErr):
			writeError(w, http.StatusUnprocessableEntity, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, SpliceResponse{Result: out, Entry: entry})
}

func (s *Server) handleFields(w http.ResponseWriter, _ *http.Request) {
	fields := s.catalog.Fields()
	if fields == nil {
		fields = []suggest.Field{}
	}
	writeJSON(w, http.StatusOK, FieldsResponse{Version: s.catalog.Version(), Fields: fields})
}

// handleEvents is a long-lived SSE endpoint. It sends the catalog state on
// connect and again after every reload.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := s.catalog.Subscribe()
	defer s.catalog.Unsubscribe(updates)

	if err := sse.MarshalAndPatchSignals(s.signals()); err != nil {
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := sse.MarshalAndPatchSignals(s.signals()); err != nil {
				s.logger.Debug("event stream closed", "error", err)
				return
			}
		}
	}
}

func (s *Server) signals() CatalogSignals {
	var sig CatalogSignals
	sig.Catalog.Version = s.catalog.Version()
	sig.Catalog.Fields = len(s.catalog.Fields())
	return sig
}

// decode reads a JSON body into v, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
