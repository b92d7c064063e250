package transform

import (
	"encoding/json"
	"errors"
	"fmt"

	"people-sync/internal/mapping"
	"people-sync/internal/record"
)

const (
	fieldID      = "id"
	fieldName    = "name"
	fieldMembers = "members"
)

// groupKey identifies a team by the kind of its id as well as its text, so
// the number 1 and the string "1" stay separate groups.
type groupKey struct {
	kind string
	text string
}

func keyOf(id any) groupKey {
	switch id.(type) {
	case string:
		return groupKey{kind: "string", text: record.String(id)}
	case json.Number, float64, int, int64:
		return groupKey{kind: "number", text: record.String(id)}
	default:
		return groupKey{kind: fmt.Sprintf("%T", id), text: record.String(id)}
	}
}

// team accumulates one group while entries are scanned.
type team struct {
	rec     *record.Record
	members []record.Member
}

// TransformTeams folds the memberships of every entry into one record per
// team, in the order teams are first seen. A team's name and aliases come
// from its first-seen membership entry; every membership adds the outer
// entry's email as a member. Mapping errors for the teams descriptor or the
// email rule are returned as *mapping.FormatError.
func TransformTeams(entries []record.Source, spec *mapping.Spec) ([]*record.Record, error) {
	if spec == nil {
		return nil, errors.New("transform teams: mapping is nil")
	}

	rule, err := spec.TeamsRule()
	if err != nil {
		return nil, fmt.Errorf("transform teams: %w", err)
	}

	emailField, err := spec.EmailField()
	if err != nil {
		return nil, fmt.Errorf("transform teams: %w", err)
	}

	var order []groupKey

	teams := map[groupKey]*team{}

	for _, e := range entries {
		memberships, ok := e.List(rule.SourceField)
		if !ok {
			continue
		}

		email := e.Lookup(emailField)

		for _, m := range memberships {
			entry, ok := record.Object(m)
			if !ok {
				continue
			}

			id := entry.Lookup(rule.IDField)
			if !record.Truthy(id) {
				continue
			}

			key := keyOf(id)

			t, seen := teams[key]
			if !seen {
				t = newTeam(id, entry, rule)
				teams[key] = t
				order = append(order, key)
			}

			t.members = append(t.members, record.Member{Email: email})
		}
	}

	out := make([]*record.Record, 0, len(order))
	for _, key := range order {
		t := teams[key]
		t.rec.Set(fieldMembers, t.members)
		out = append(out, t.rec)
	}

	return out, nil
}

func newTeam(id any, entry record.Source, rule mapping.TeamsRule) *team {
	rec := record.New()
	rec.Set(fieldID, id)
	rec.Set(fieldName, entry.Lookup(rule.NameField))
	// members is reserved here so it precedes the aliases.
	rec.Set(fieldMembers, []record.Member{})

	for _, alias := range rule.Aliases {
		rec.Set(alias.Target, entry.Lookup(alias.Source))
	}

	return &team{rec: rec}
}
