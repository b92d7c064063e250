package transform

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"people-sync/internal/diagnostic"
	"people-sync/internal/record"
)

// Destination fields the post-processing steps read and write.
const (
	fieldFirstName        = "firstName"
	fieldLastName         = "lastName"
	fieldPreferredName    = "preferredName"
	fieldStartDate        = "startDate"
	fieldEndDate          = "endDate"
	fieldStatus           = "status"
	fieldType             = "type"
	fieldEmail            = "email"
	fieldAdditionalFields = "additionalFields"
	fieldSocialNetworks   = "socialNetworks"
)

// Employee status values.
const (
	StatusCurrent = "CURRENT"
	StatusFuture  = "FUTURE"
	StatusEx      = "EX"
)

// Employee type values.
const (
	TypeFullTime    = "FULL_TIME"
	TypeContractor  = "CONTRACTOR"
	TypeNonEmployee = "NON_EMPLOYEE"
)

// CodeInvalidType marks a record whose type was dropped.
const CodeInvalidType = "invalid_employee_type"

var profileNames = map[string]string{
	"linkedin": "LinkedIn",
	"whatsapp": "WhatsApp",
	"imessage": "iMessage",
}

// ProfileName is the display name of a social network id.
func ProfileName(network string) string {
	if name, ok := profileNames[network]; ok {
		return name
	}

	// Casers keep state between calls, so each call gets its own.
	caser := cases.Title(language.Und)

	// Every run of letters is title-cased on its own: "x_twitter" -> "X_Twitter".
	var b strings.Builder

	start := -1
	for i, r := range network {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}

			continue
		}

		if start >= 0 {
			b.WriteString(caser.String(network[start:i]))
			start = -1
		}

		b.WriteRune(r)
	}

	if start >= 0 {
		b.WriteString(caser.String(network[start:]))
	}

	return b.String()
}

// socialNetwork builds the link entry for a truthy value.
func socialNetwork(network string, value any) (record.SocialNetwork, bool) {
	if !record.Truthy(value) {
		return record.SocialNetwork{}, false
	}

	return record.SocialNetwork{
		Name:        network,
		ProfileName: ProfileName(network),
		ProfileURL:  record.String(value),
	}, true
}

// backfillName splits preferredName into firstName/lastName when both are
// empty. lastName becomes a single space for one-word names so the key is
// still sent.
func backfillName(out *record.Record) {
	if record.Truthy(out.Value(fieldFirstName)) || record.Truthy(out.Value(fieldLastName)) {
		return
	}

	preferred, _ := out.Value(fieldPreferredName).(string)

	parts := strings.Fields(preferred)
	if len(parts) == 0 {
		return
	}

	last := strings.Join(parts[1:], " ")
	if last == "" {
		last = " "
	}

	out.Set(fieldFirstName, parts[0])
	out.Set(fieldLastName, last)
}

// deriveStatus sets status from the start and end dates. ISO dates compare
// correctly as strings.
func deriveStatus(out *record.Record, today string) {
	end := dateValue(out.Value(fieldEndDate))
	start := dateValue(out.Value(fieldStartDate))

	switch {
	case end != "" && end < today:
		out.Set(fieldStatus, StatusEx)
	case start != "" && start > today:
		out.Set(fieldStatus, StatusFuture)
	case start != "":
		out.Set(fieldStatus, StatusCurrent)
	}
}

func dateValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// NormalizeType canonicalizes an employee type: "-" and " " become "_" and
// the result is upper-cased. ok is false when the result is not a known type.
func NormalizeType(v string) (string, bool) {
	t := strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(v))

	switch t {
	case TypeFullTime, TypeContractor, TypeNonEmployee:
		return t, true
	default:
		return t, false
	}
}

// normalizeType stores the canonical type, defaulting to FULL_TIME. An
// unknown type is removed from the record and reported; the record itself
// is kept.
func normalizeType(out *record.Record, diags *diagnostic.Diagnostics) {
	raw := out.Value(fieldType)
	if raw == nil {
		out.Set(fieldType, TypeFullTime)
		return
	}

	t, ok := NormalizeType(record.String(raw))
	if ok {
		out.Set(fieldType, t)
		return
	}

	out.Delete(fieldType)

	if diags != nil {
		email := record.String(out.Value(fieldEmail))
		diags.AddWarning(CodeInvalidType,
			fmt.Sprintf("invalid 'type' value %q for employee %s; type skipped for this employee", t, email),
			email, fieldType)
	}
}
