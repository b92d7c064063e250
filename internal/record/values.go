package record

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Truthy reports whether v counts as set: null, false, zero, "" and empty
// collections do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case Source:
		return len(t) > 0
	default:
		return true
	}
}

// String renders a report value as text. Whole numbers print without a
// fraction, objects and arrays print as JSON, and null prints as "".
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case map[string]any, []any, Source, *Record:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}

		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// Strings coerces v to a list of strings: lists are converted element-wise
// (null elements are dropped), anything else becomes a one-element list.
func Strings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if e == nil {
				continue
			}

			out = append(out, String(e))
		}

		return out
	default:
		return []string{String(v)}
	}
}
