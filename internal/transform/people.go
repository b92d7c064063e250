package transform

import (
	"errors"

	"people-sync/internal/diagnostic"
	"people-sync/internal/mapping"
	"people-sync/internal/record"
)

// Result is the output of a people-mode transformation.
type Result struct {
	Records []*record.Record
	// AdditionalFields is the batch-wide set the records were built with.
	AdditionalFields []string
	Diagnostics      *diagnostic.Diagnostics
}

// DiscoverAdditionalFields returns the mapping's additional fields that are
// present on at least one entry, in mapping order. Presence is enough: a
// field that is null everywhere is still part of the batch schema.
func DiscoverAdditionalFields(entries []record.Source, spec *mapping.Spec) []string {
	var out []string

	for _, name := range spec.AdditionalFields() {
		for _, e := range entries {
			if e.Has(name) {
				out = append(out, name)
				break
			}
		}
	}

	return out
}

// TransformPeople transforms every entry into an employee record, in input
// order. Discovery completes before the first record is built.
func TransformPeople(entries []record.Source, spec *mapping.Spec, opts Options) (*Result, error) {
	if spec == nil {
		return nil, errors.New("transform people: mapping is nil")
	}

	additional := DiscoverAdditionalFields(entries, spec)
	today := opts.today()
	diags := &diagnostic.Diagnostics{}

	records := make([]*record.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, TransformPerson(e, spec, additional, today, diags))
	}

	return &Result{
		Records:          records,
		AdditionalFields: additional,
		Diagnostics:      diags,
	}, nil
}
