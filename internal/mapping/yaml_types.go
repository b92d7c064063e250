package mapping

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// decodeRule resolves one top-level entry into its rule kind.
func decodeRule(key string, node *yaml.Node) (Rule, error) {
	if IsSocialKey(key) {
		return decodeSocial(key, node)
	}

	switch node.Kind {
	case yaml.ScalarNode:
		src, ok := scalarString(node)
		if !ok {
			return Rule{}, formatErrorf(key, "expected a report field name, got %s", describe(node))
		}

		return Rule{Kind: RuleDirect, Target: key, Source: src}, nil

	case yaml.MappingNode:
		fields, err := decodeSubFields(key, node, false)
		if err != nil {
			return Rule{}, err
		}

		return Rule{Kind: RuleStructured, Target: key, Fields: fields}, nil

	case yaml.SequenceNode:
		return decodeRepeatedGroup(key, node)

	default:
		return Rule{}, formatErrorf(key, "expected a string, object or list, got %s", describe(node))
	}
}

func decodeSocial(key string, node *yaml.Node) (Rule, error) {
	network := NetworkFromKey(key)
	if network == "" {
		return Rule{}, formatErrorf(key, "social link keys need a network name before %q", socialSuffix)
	}

	src, ok := scalarString(node)
	if !ok {
		return Rule{}, formatErrorf(key, "social link rules take a report field name, got %s", describe(node))
	}

	return Rule{Kind: RuleSocialURL, Target: key, Source: src, Network: network}, nil
}

// decodeRepeatedGroup expects [{"__sourceField": "List", "sub": "key", ...}].
func decodeRepeatedGroup(key string, node *yaml.Node) (Rule, error) {
	if len(node.Content) != 1 || node.Content[0].Kind != yaml.MappingNode {
		return Rule{}, formatErrorf(key, "repeated groups must be a list holding exactly one descriptor object")
	}

	desc := node.Content[0]

	var (
		source    string
		hasSource bool
	)

	for i := 0; i+1 < len(desc.Content); i += 2 {
		k, _ := scalarString(desc.Content[i])
		if k != KeySourceField {
			continue
		}

		source, hasSource = scalarString(desc.Content[i+1])
		if !hasSource || source == "" {
			return Rule{}, formatErrorf(key, "%q must name a report list field", KeySourceField)
		}
	}

	if !hasSource {
		return Rule{}, formatErrorf(key, "repeated group descriptor has no %q key", KeySourceField)
	}

	fields, err := decodeSubFields(key, desc, true)
	if err != nil {
		return Rule{}, err
	}

	if len(fields) == 0 {
		return Rule{}, formatErrorf(key, "repeated group descriptor maps no sub-keys")
	}

	return Rule{Kind: RuleRepeatedGroup, Target: key, Source: source, Fields: fields}, nil
}

// decodeSubFields reads a flat object of sub-key -> source key. With
// skipMeta, "__" keys are left out.
func decodeSubFields(key string, node *yaml.Node, skipMeta bool) ([]SubField, error) {
	fields := make([]SubField, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		sub, ok := scalarString(node.Content[i])
		if !ok {
			return nil, formatErrorf(key, "sub-keys must be strings")
		}

		if skipMeta && strings.HasPrefix(sub, metaPrefix) {
			continue
		}

		src, ok := scalarString(node.Content[i+1])
		if !ok {
			return nil, formatErrorf(key, "sub-key %q: expected a report field name, got %s (nesting deeper than two levels is not supported)",
				sub, describe(node.Content[i+1]))
		}

		fields = append(fields, SubField{Target: sub, Source: src})
	}

	return fields, nil
}

func decodeAdditionalFields(node *yaml.Node) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, formatErrorf(KeyAdditionalFields, "expected a list of report field names, got %s", describe(node))
	}

	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		name, ok := scalarString(item)
		if !ok {
			return nil, formatErrorf(KeyAdditionalFields, "expected a report field name, got %s", describe(item))
		}

		out = append(out, name)
	}

	return out, nil
}

// scalarString returns the value of a string scalar. Numbers, booleans and
// nulls are rejected so that a typo like "email": null fails at load time.
func scalarString(node *yaml.Node) (string, bool) {
	if node == nil || node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
		return "", false
	}

	return node.Value, true
}

func describe(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return "null"
		case "!!bool":
			return "a boolean"
		case "!!int", "!!float":
			return "a number"
		default:
			return "a scalar"
		}
	case yaml.MappingNode:
		return "an object"
	case yaml.SequenceNode:
		return "a list"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "an unknown node"
	}
}
