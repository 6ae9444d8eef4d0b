package sources

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrBadValues = errors.New("bad values document")

// Value is one binding read from a values document.
type Value struct {
	Name  string
	Value string
}

// ParseValues reads a YAML mapping of placeholder names to scalars. Order
// of the document is preserved.
func ParseValues(content []byte) ([]Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadValues, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// empty document
		return nil, nil
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expecting mapping", ErrBadValues, root.Line)
	}

	var ret []Value
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := resolveAlias(root.Content[i])
		value := resolveAlias(root.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: expecting scalar key", ErrBadValues, key.Line)
		}
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: %s: expecting scalar value", ErrBadValues, value.Line, key.Value)
		}
		ret = append(ret, Value{
			Name:  key.Value,
			Value: value.Value,
		})
	}
	return ret, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

type LoadValues func(ctx context.Context, location string) ([]Value, error)

func (Module) LoadValues(
	load Load,
) LoadValues {
	return func(ctx context.Context, location string) ([]Value, error) {
		content, err := load(ctx, location)
		if err != nil {
			return nil, err
		}
		values, err := ParseValues(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}
		return values, nil
	}
}
