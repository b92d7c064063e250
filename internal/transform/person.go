package transform

import (
	"people-sync/internal/diagnostic"
	"people-sync/internal/mapping"
	"people-sync/internal/record"
)

// TransformPerson builds one employee record from a report entry.
//
// Rules are applied in mapping order, then the batch-wide additional fields,
// then the post-processing steps in their fixed order: name backfill, status,
// type. A dropped type is reported to diags, which may be nil.
func TransformPerson(
	src record.Source,
	spec *mapping.Spec,
	additional []string,
	today string,
	diags *diagnostic.Diagnostics,
) *record.Record {
	out := record.New()

	var networks []record.SocialNetwork

	for _, rule := range spec.Rules() {
		switch rule.Kind {
		case mapping.RuleSocialURL:
			if sn, ok := socialNetwork(rule.Network, src.Lookup(rule.Source)); ok {
				networks = append(networks, sn)
			}
		case mapping.RuleStructured:
			out.Set(rule.Target, structured(src, rule.Fields))
		case mapping.RuleRepeatedGroup:
			out.Set(rule.Target, repeatedGroup(src, rule))
		case mapping.RuleDirect:
			out.Set(rule.Target, src.Lookup(rule.Source))
		}
	}

	out.Set(fieldAdditionalFields, additionalFields(src, additional))

	backfillName(out)
	deriveStatus(out, today)
	normalizeType(out, diags)

	if len(networks) > 0 {
		out.Set(fieldSocialNetworks, networks)
	}

	return out
}

// structured builds a nested object with every declared sub-key; missing
// report fields become null.
func structured(src record.Source, fields []mapping.SubField) *record.Record {
	obj := record.New()
	for _, f := range fields {
		obj.Set(f.Target, src.Lookup(f.Source))
	}

	return obj
}

// repeatedGroup builds one nested object per element of the rule's report
// list. A missing or non-list field yields an empty list.
func repeatedGroup(src record.Source, rule mapping.Rule) []*record.Record {
	list, ok := src.List(rule.Source)
	if !ok {
		return []*record.Record{}
	}

	out := make([]*record.Record, 0, len(list))
	for _, item := range list {
		elem, _ := record.Object(item)
		out = append(out, structured(elem, rule.Fields))
	}

	return out
}

// additionalFields exports every truthy batch-wide additional field as a
// {key, value} pair with a list value.
func additionalFields(src record.Source, names []string) []record.AdditionalField {
	out := make([]record.AdditionalField, 0, len(names))
	for _, name := range names {
		v := src.Lookup(name)
		if !record.Truthy(v) {
			continue
		}

		out = append(out, record.AdditionalField{Key: name, Value: record.Strings(v)})
	}

	return out
}
