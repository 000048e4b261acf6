// Package suggest turns grammar continuations into ranked suggestion entries
// and splices a chosen entry back into the query text.
package suggest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapspl/pkg/token"
)

// Tag groups entries for ranking and styling.
type Tag string

const (
	TagField    Tag = "field"
	TagValue    Tag = "value"
	TagKeyword  Tag = "keyword"
	TagLogic    Tag = "logic"
	TagFunction Tag = "function"
	TagOperator Tag = "operator"
	TagSymbol   Tag = "symbol"
	TagNumber   Tag = "number"
	TagGeneral  Tag = "general"
)

// Tags lists every tag.
func Tags() []Tag {
	return []Tag{TagField, TagValue, TagKeyword, TagLogic, TagFunction, TagOperator, TagSymbol, TagNumber, TagGeneral}
}

// ParseTag validates a tag name.
func ParseTag(s string) (Tag, error) {
	for _, t := range Tags() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tag %q", s)
}

// Entry is a display-ready suggestion.
type Entry struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Tag         Tag            `json:"tag"`
	Category    token.Category `json:"category"`
	Description string         `json:"description,omitempty"`
	Syntax      string         `json:"syntax,omitempty"`
	Example     string         `json:"example,omitempty"`
	Code        string         `json:"code"` // text inserted on selection
}

// Find returns the entry whose ID or label equals key. IDs win over labels.
func Find(entries []Entry, key string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == key {
			return e, true
		}
	}
	for _, e := range entries {
		if e.Label == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Weights ranks tags; higher weights sort first. Missing tags weigh 0.
type Weights map[Tag]int

// DefaultWeights ranks fields and values first, then keywords and
// connectors, then everything else.
func DefaultWeights() Weights {
	return Weights{
		TagField:    2,
		TagValue:    2,
		TagKeyword:  1,
		TagLogic:    1,
		TagFunction: 0,
		TagOperator: 0,
		TagSymbol:   0,
		TagNumber:   0,
		TagGeneral:  0,
	}
}

// With returns a copy of w with overrides applied.
func (w Weights) With(overrides map[Tag]int) Weights {
	out := make(Weights, len(w)+len(overrides))
	for t, v := range w {
		out[t] = v
	}
	for t, v := range overrides {
		out[t] = v
	}
	return out
}

// Sort orders entries by descending weight, keeping the relative order of
// entries with equal weight.
func (w Weights) Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return w[entries[i].Tag] > w[entries[j].Tag]
	})
}

// Field describes a queryable field supplied by the host application.
type Field struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Selected bool     `json:"selected,omitempty" yaml:"selected"`
	Values   []string `json:"values,omitempty" yaml:"values"`
}

// FieldByName returns the field called name.
func FieldByName(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// orderFields returns selected fields first, keeping catalog order otherwise.
func orderFields(fields []Field) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Selected {
			out = append(out, f)
		}
	}
	for _, f := range fields {
		if !f.Selected {
			out = append(out, f)
		}
	}
	return out
}

func fieldEntry(f Field) Entry {
	return Entry{
		ID:          f.Name + "_" + strings.ToLower(f.Type),
		Label:       f.Name,
		Tag:         TagField,
		Category:    token.Identifier,
		Description: f.Type,
		Code:        f.Name,
	}
}
