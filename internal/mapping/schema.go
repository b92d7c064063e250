package mapping

import (
	"slices"
	"strings"
)

//go:generate go tool stringer -type=RuleKind -output=rule_kind_string.go

// RuleKind tells the transformer how a destination field is derived.
type RuleKind int

const (
	_ RuleKind = iota // zero value marks an unresolved rule

	RuleDirect
	RuleStructured
	RuleRepeatedGroup
	RuleSocialURL
)

// Reserved keys of the mapping file.
const (
	KeyAdditionalFields = "additionalFields"
	KeyTeams            = "teams"
	KeyEmail            = "email"

	// KeySourceField names the report list inside a repeated-group descriptor.
	KeySourceField = "__sourceField"

	metaPrefix   = "__"
	socialSuffix = "Url"
)

// nonSocialURLKeys end in "Url" but are plain destination fields.
var nonSocialURLKeys = []string{"photoUrl", "profileUrl"}

// SubField maps one destination sub-key to a source key.
type SubField struct {
	Target string
	Source string
}

// Rule is one resolved mapping entry.
type Rule struct {
	Kind RuleKind
	// Target is the destination field name.
	Target string
	// Source is the report field for direct and social rules, and the report
	// list field for repeated groups.
	Source string
	// Fields holds the sub-keys of structured and repeated-group rules,
	// in file order. Reserved "__" keys are never included.
	Fields []SubField
	// Network is the lower-cased network id of a social rule.
	Network string
}

// Sub returns the source key for a destination sub-key.
func (r Rule) Sub(target string) (string, bool) {
	for _, f := range r.Fields {
		if f.Target == target {
			return f.Source, true
		}
	}

	return "", false
}

// IsSocialKey reports whether a destination key is treated as a social link.
func IsSocialKey(key string) bool {
	return strings.HasSuffix(key, socialSuffix) && !slices.Contains(nonSocialURLKeys, key)
}

// NetworkFromKey derives the network id from a social key: "linkedinUrl" -> "linkedin".
func NetworkFromKey(key string) string {
	return strings.ToLower(strings.TrimSuffix(key, socialSuffix))
}

// Spec is a parsed mapping file. It is immutable once parsed; accessors hand
// out copies.
type Spec struct {
	rules      []Rule
	index      map[string]int
	additional []string
}

// Rules returns every rule in file order.
func (s *Spec) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		r.Fields = slices.Clone(r.Fields)
		out[i] = r
	}

	return out
}

// Rule returns the rule for a destination key.
func (s *Spec) Rule(target string) (Rule, bool) {
	i, ok := s.index[target]
	if !ok {
		return Rule{}, false
	}

	r := s.rules[i]
	r.Fields = slices.Clone(r.Fields)

	return r, true
}

// AdditionalFields returns the report fields listed under "additionalFields".
func (s *Spec) AdditionalFields() []string {
	return slices.Clone(s.additional)
}

// EmailField returns the report field mapped to the destination "email" key.
func (s *Spec) EmailField() (string, error) {
	r, ok := s.Rule(KeyEmail)
	if !ok {
		return "", formatErrorf(KeyEmail, "a direct %q rule is required", KeyEmail)
	}

	if r.Kind != RuleDirect {
		return "", formatErrorf(KeyEmail, "must be a direct rule, got %s", r.Kind)
	}

	return r.Source, nil
}

// TeamsRule describes how team memberships are read from a report entry.
type TeamsRule struct {
	// SourceField is the report list holding one entry per membership.
	SourceField string
	// IDField and NameField are keys of a membership entry.
	IDField   string
	NameField string
	// Aliases are the remaining sub-keys, copied onto the team record.
	Aliases []SubField
}

// TeamsRule resolves the "teams" descriptor for teams mode.
func (s *Spec) TeamsRule() (TeamsRule, error) {
	r, ok := s.Rule(KeyTeams)
	if !ok {
		return TeamsRule{}, formatErrorf(KeyTeams, "a %q descriptor is required in teams mode", KeyTeams)
	}

	if r.Kind != RuleRepeatedGroup {
		return TeamsRule{}, formatErrorf(KeyTeams, "must be a list with one descriptor object, got %s", r.Kind)
	}

	tr := TeamsRule{SourceField: r.Source}

	var found bool

	if tr.IDField, found = r.Sub("id"); !found {
		return TeamsRule{}, formatErrorf(KeyTeams, "descriptor has no %q key", "id")
	}

	if tr.NameField, found = r.Sub("name"); !found {
		return TeamsRule{}, formatErrorf(KeyTeams, "descriptor has no %q key", "name")
	}

	for _, f := range r.Fields {
		if f.Target == "id" || f.Target == "name" {
			continue
		}

		tr.Aliases = append(tr.Aliases, f)
	}

	return tr, nil
}

// SourceFields returns every top-level report field the rules read, without
// duplicates, in file order. Additional fields are not included.
func (s *Spec) SourceFields() []string {
	var out []string

	seen := map[string]struct{}{}
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, r := range s.rules {
		switch r.Kind {
		case RuleStructured:
			for _, f := range r.Fields {
				add(f.Source)
			}
		default:
			add(r.Source)
		}
	}

	return out
}
