package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"people-sync/internal/config"
	"people-sync/internal/record"
)

// ErrNoRecords is returned when there is nothing to export.
var ErrNoRecords = errors.New("no records to export")

// FileName is the export file name for a data type.
func FileName(dataType config.DataType) string {
	return string(dataType) + ".csv"
}

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, records []*record.Record, dataType config.DataType) error {
	if len(records) == 0 {
		return fmt.Errorf("write %s csv: %w", dataType, ErrNoRecords)
	}

	columns, rows := Flatten(records, dataType)

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write %s csv header: %w", dataType, err)
	}

	line := make([]string, len(columns))

	for i, row := range rows {
		for j, col := range columns {
			cell, err := formatCell(row[col])
			if err != nil {
				return fmt.Errorf("write %s csv row %d column %q: %w", dataType, i, col, err)
			}

			line[j] = cell
		}

		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write %s csv row %d: %w", dataType, i, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("write %s csv: %w", dataType, err)
	}

	return nil
}

// Render returns the CSV document as bytes.
func Render(records []*record.Record, dataType config.DataType) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records, dataType); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatCell(v any) (string, error) {
	switch v.(type) {
	case nil, string, bool, float64, int, int64, json.Number:
		return record.String(v), nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
