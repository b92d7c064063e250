// Package transform turns report entries into destination records.
//
// People mode is two explicit passes: DiscoverAdditionalFields fixes the
// batch-wide set of custom attributes, then TransformPerson runs per entry
// with that set. Teams mode is a single pass, TransformTeams, that folds
// every membership of every entry into one record per team.
//
// All functions are pure: they never mutate the entries or the mapping, and
// for the same inputs and the same date they produce identical output.
package transform
