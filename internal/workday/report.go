package workday

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"people-sync/internal/record"
)

// EntriesPath is the report key holding the worker entries.
const EntriesPath = "Report_Entry"

// ErrInvalidReport is wrapped by every report decoding failure.
var ErrInvalidReport = errors.New("invalid report")

// ParseReport extracts the entries of a JSON report. Entries that are not
// objects are rejected.
func ParseReport(data []byte) ([]record.Source, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidReport)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidReport)
	}

	list := root.Get(EntriesPath)
	if !list.Exists() {
		return nil, fmt.Errorf("%w: no %q key", ErrInvalidReport, EntriesPath)
	}

	if !list.IsArray() {
		return nil, fmt.Errorf("%w: %q is not a list", ErrInvalidReport, EntriesPath)
	}

	items := list.Array()
	entries := make([]record.Source, 0, len(items))

	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", ErrInvalidReport, EntriesPath, i)
		}

		entry, err := decodeEntry(item.Raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", ErrInvalidReport, EntriesPath, i, err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// decodeEntry keeps numbers as json.Number so ids beyond float64 precision
// survive unchanged.
func decodeEntry(raw string) (record.Source, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var entry record.Source
	if err := dec.Decode(&entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// LoadReportFile reads a report saved on disk.
func LoadReportFile(path string) ([]record.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	entries, err := ParseReport(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return entries, nil
}
