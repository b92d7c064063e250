package record

// Source is one raw report entry. Values are whatever encoding/json produced:
// string, float64 or json.Number, bool, nil, map[string]any or []any.
type Source map[string]any

// Lookup returns the value for key, or nil when the key is missing.
func (s Source) Lookup(key string) any {
	return s[key]
}

// Has reports whether key is present, even with a null value.
func (s Source) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// List returns the value for key when it is a JSON array.
func (s Source) List(key string) ([]any, bool) {
	v, ok := s[key].([]any)
	return v, ok
}

// Object converts v to a Source when it is a JSON object.
func Object(v any) (Source, bool) {
	switch o := v.(type) {
	case Source:
		return o, true
	case map[string]any:
		return Source(o), true
	default:
		return nil, false
	}
}
