package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// FileSource reads fields from a YAML or JSON file. The document is either
// a list of fields or a mapping with a "fields" list.
type FileSource struct {
	Path string
}

// Name implements Source.
func (s FileSource) Name() string {
	return "file:" + s.Path
}

type fileDocument struct {
	Fields []suggest.Field `yaml:"fields"`
}

// Load implements Source.
func (s FileSource) Load(_ context.Context) ([]suggest.Field, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseFields(data)
}

// ParseFields decodes a catalog document.
func ParseFields(data []byte) ([]suggest.Field, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	var fields []suggest.Field
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&fields); err != nil {
			return nil, fmt.Errorf("failed to decode fields: %w", err)
		}
	case yaml.MappingNode:
		var d fileDocument
		if err := doc.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode fields: %w", err)
		}
		fields = d.Fields
	default:
		return nil, fmt.Errorf("catalog must be a list or a mapping with a fields key, line %d", doc.Line)
	}

	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field %d has no name", i+1)
		}
	}
	return fields, nil
}
