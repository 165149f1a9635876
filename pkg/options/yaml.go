package options

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a YAML mapping into the set, keeping document order.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("options: expected mapping, got %s", describeKind(node.Kind))
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var value any
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("options: decode %q (line %d): %w", keyNode.Value, keyNode.Line, err)
		}
		s.Set(keyNode.Value, value)
	}
	return nil
}

// MarshalYAML encodes the set as a mapping in insertion order.
func (s *Set) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	s.Each(func(name string, value any) {
		if err != nil {
			return
		}
		valueNode := &yaml.Node{}
		if encodeErr := valueNode.Encode(value); encodeErr != nil {
			err = fmt.Errorf("options: encode %q: %w", name, encodeErr)
			return
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			valueNode,
		)
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// Parse decodes YAML (or JSON, which YAML accepts) into a new set. Empty input
// yields an empty set.
func Parse(data []byte) (*Set, error) {
	out := New()
	if strings.TrimSpace(string(data)) == "" {
		return out, nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFile reads and parses an options file.
func LoadFile(path string) (*Set, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("options: file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("options: read %s: %w", path, err)
	}
	out, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("options: parse %s: %w", path, err)
	}
	return out, nil
}

func describeKind(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "unknown node"
	}
}
