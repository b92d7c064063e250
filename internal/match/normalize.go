package match

import (
	"strings"
	"unicode"
)

// NormalizeField folds a report or mapping field name for fuzzy comparison:
// lower-cased, with separators (_ - . and spaces) removed.
//
//	"Work_Email"   -> "workemail"
//	"workEmail"    -> "workemail"
//	"Cost-Center " -> "costcenter"
func NormalizeField(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
