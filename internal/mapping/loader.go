package mapping

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the mapping file at path.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read mapping file %s: %w", ErrMapping, path, err)
	}

	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("mapping file %s: %w", path, err)
	}

	return spec, nil
}

// Parse parses a mapping document. JSON documents are read as JSON; anything
// else is tried as YAML. Errors wrap ErrMapping when the document is neither,
// and are a *FormatError when an entry has an unsupported shape.
func Parse(data []byte) (*Spec, error) {
	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}

	if root.Kind != yaml.MappingNode {
		return nil, &FormatError{Reason: "the mapping must be an object of destination fields"}
	}

	spec := &Spec{index: map[string]int{}}
	seen := map[string]struct{}{}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, ok := scalarString(root.Content[i])
		if !ok {
			return nil, formatErrorf(root.Content[i].Value, "destination keys must be strings")
		}

		if _, dup := seen[key]; dup {
			return nil, formatErrorf(key, "defined more than once")
		}

		seen[key] = struct{}{}

		value := root.Content[i+1]

		if key == KeyAdditionalFields {
			fields, err := decodeAdditionalFields(value)
			if err != nil {
				return nil, err
			}

			spec.additional = fields

			continue
		}

		rule, err := decodeRule(key, value)
		if err != nil {
			return nil, err
		}

		spec.index[key] = len(spec.rules)
		spec.rules = append(spec.rules, rule)
	}

	return spec, nil
}

func parseRoot(data []byte) (*yaml.Node, error) {
	if json.Valid(data) {
		return jsonNode(gjson.ParseBytes(data)), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: could not decode mapping: %w", ErrMapping, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: mapping document is empty", ErrMapping)
	}

	return doc.Content[0], nil
}
