package mapping

import (
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// jsonNode converts a parsed JSON value into the node tree the rule decoders
// read. Object keys keep their document order, duplicates included.
func jsonNode(r gjson.Result) *yaml.Node {
	switch {
	case r.IsObject():
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		r.ForEach(func(key, value gjson.Result) bool {
			n.Content = append(n.Content, jsonScalar("!!str", key.String()), jsonNode(value))
			return true
		})

		return n
	case r.IsArray():
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		r.ForEach(func(_, value gjson.Result) bool {
			n.Content = append(n.Content, jsonNode(value))
			return true
		})

		return n
	}

	switch r.Type {
	case gjson.String:
		return jsonScalar("!!str", r.String())
	case gjson.Number:
		return jsonScalar("!!float", r.Raw)
	case gjson.True, gjson.False:
		return jsonScalar("!!bool", r.Raw)
	default:
		return jsonScalar("!!null", "null")
	}
}

func jsonScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
