package mapping

import (
	"fmt"
	"maps"
	"slices"

	"people-sync/internal/diagnostic"
	"people-sync/internal/match"
	"people-sync/internal/record"
)

const maxSuggestions = 3

// Validate checks the mapping against a batch of report entries. It is a
// coverage check only: report schemas are data-dependent, so findings are
// warnings (infos for additional fields, which are optional by nature) and
// never block a run.
func Validate(spec *Spec, entries []record.Source) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if spec == nil {
		res.AddError("mapping_is_nil", "mapping is nil", "", "")
		return res
	}

	if len(entries) == 0 {
		return res
	}

	seen := newKeySet()
	for _, e := range entries {
		seen.addKeys(e)
	}

	for _, r := range spec.rules {
		switch r.Kind {
		case RuleDirect, RuleSocialURL:
			checkField(res, seen, r.Target, r.Source)

		case RuleStructured:
			for _, f := range r.Fields {
				checkField(res, seen, r.Target+"."+f.Target, f.Source)
			}

		case RuleRepeatedGroup:
			if !seen.has(r.Source) {
				checkField(res, seen, r.Target, r.Source)
				continue
			}

			elems := newKeySet()
			for _, e := range entries {
				list, _ := e.List(r.Source)
				for _, item := range list {
					if obj, ok := record.Object(item); ok {
						elems.addKeys(obj)
					}
				}
			}

			if elems.empty() {
				continue
			}

			for _, f := range r.Fields {
				checkField(res, elems, r.Target+"[]."+f.Target, f.Source)
			}
		}
	}

	for _, name := range spec.additional {
		if seen.has(name) {
			continue
		}

		res.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.SeverityInfo,
			Code:        "additional_field_absent",
			Message:     fmt.Sprintf("additional field %q is not present on any report entry", name),
			Field:       KeyAdditionalFields,
			Suggestions: match.Suggest(name, seen.names, match.DefaultThreshold, maxSuggestions),
		})
	}

	return res
}

func checkField(res *diagnostic.Diagnostics, seen *keySet, target, source string) {
	if seen.has(source) {
		return
	}

	res.Add(diagnostic.Diagnostic{
		Severity:    diagnostic.SeverityWarning,
		Code:        "unknown_source_field",
		Message:     fmt.Sprintf("report field %q is not present on any entry; %q will be null", source, target),
		Field:       target,
		Suggestions: match.Suggest(source, seen.names, match.DefaultThreshold, maxSuggestions),
	})
}

// keySet keeps keys in first-seen order (sorted within an entry) so
// suggestions are stable.
type keySet struct {
	set   map[string]struct{}
	names []string
}

func newKeySet() *keySet {
	return &keySet{set: map[string]struct{}{}}
}

func (k *keySet) addKeys(src record.Source) {
	for _, name := range slices.Sorted(maps.Keys(src)) {
		if _, ok := k.set[name]; ok {
			continue
		}

		k.set[name] = struct{}{}
		k.names = append(k.names, name)
	}
}

func (k *keySet) has(name string) bool {
	_, ok := k.set[name]
	return ok
}

func (k *keySet) empty() bool {
	return len(k.set) == 0
}
