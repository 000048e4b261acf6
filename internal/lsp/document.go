package lsp

import (
	"strings"
	"sync"
	"unicode/utf16"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string // Document URI (file:///path/to/queries.spl)
	Content string // Full document content
	Version int    // Version number, incremented on each change
	Lines   []int  // Byte offsets of line starts for fast position lookups
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or replaces a document in the store.
func (s *DocumentStore) Open(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = newDocument(uri, content, version)
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI. Documents are replaced, never mutated,
// so the result is safe to read after the lock is released.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// Update replaces an open document's content. Unknown URIs are ignored.
func (s *DocumentStore) Update(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[uri]; ok {
		s.documents[uri] = newDocument(uri, content, version)
	}
}

// List returns all open document URIs.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	return uris
}

func newDocument(uri, content string, version int) *Document {
	return &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(content),
	}
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0} // First line starts at offset 0

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// GetLine returns the content of a line without its line terminator.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}

	start := d.Lines[line]
	end := len(d.Content)
	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1 // Exclude newline
	}
	return strings.TrimSuffix(d.Content[start:end], "\r")
}

// ColumnToOffset converts a UTF-16 column to a byte offset within text.
// Columns past the end clamp to len(text).
func ColumnToOffset(text string, character uint32) int {
	var units uint32
	for i, r := range text {
		if units >= character {
			return i
		}
		units += uint32(utf16.RuneLen(r)) //nolint:gosec // RuneLen is 1 or 2
	}
	return len(text)
}

// OffsetToColumn converts a byte offset within text to a UTF-16 column.
func OffsetToColumn(text string, offset int) uint32 {
	if offset > len(text) {
		offset = len(text)
	}
	var units uint32
	for _, r := range text[:offset] {
		units += uint32(utf16.RuneLen(r)) //nolint:gosec // RuneLen is 1 or 2
	}
	return units
}

// LineRange returns the range covering bytes [start, end) of a line.
func (d *Document) LineRange(line, start, end int) Range {
	text := d.GetLine(line)
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}
	return Range{
		Start: Position{Line: uint32(line), Character: OffsetToColumn(text, start)}, //nolint:gosec // line fits
		End:   Position{Line: uint32(line), Character: OffsetToColumn(text, end)},   //nolint:gosec // line fits
	}
}

// TextBefore returns the line at pos cut at the cursor, and the cursor's
// byte offset within it.
func (d *Document) TextBefore(pos Position) (string, int) {
	line := d.GetLine(int(pos.Line))
	offset := ColumnToOffset(line, pos.Character)
	return line[:offset], offset
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	const prefix = "file://"
	if strings.HasPrefix(uri, prefix) {
		return uri[len(prefix):]
	}
	return uri
}
