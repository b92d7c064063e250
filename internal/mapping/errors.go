package mapping

import (
	"errors"
	"fmt"
)

// ErrMapping is wrapped by every error that means the mapping file could not
// be read or parsed at all.
var ErrMapping = errors.New("mapping error")

// FormatError reports a mapping entry whose shape is not one of the
// supported rule kinds, or a rule that a mode requires but is missing.
type FormatError struct {
	// Key is the top-level destination key at fault ("" for the document).
	Key string
	// Reason describes what was expected.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Key == "" {
		return "invalid mapping: " + e.Reason
	}

	return fmt.Sprintf("invalid mapping for %q: %s", e.Key, e.Reason)
}

func formatErrorf(key, format string, args ...any) *FormatError {
	return &FormatError{Key: key, Reason: fmt.Sprintf(format, args...)}
}
