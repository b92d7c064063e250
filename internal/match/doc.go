// Package match finds report field names that are close to a name the
// mapping asks for, so typos in the mapping file can be reported with a
// concrete suggestion.
//
// Key functions:
//   - NormalizeField: folds case and separators ("Work_Email" == "workEmail")
//   - Levenshtein: edit distance between two strings
//   - Suggest: ranks candidate names by normalized similarity
package match
