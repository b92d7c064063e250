package workday

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"people-sync/internal/mapping"
	"people-sync/internal/record"
	"people-sync/internal/transform"
)

func TestParseReport(t *testing.T) {
	data := []byte(`{
  "Report_Entry": [
    {"Work_Email": "a@x.io", "Age": 41, "Teams": [{"Team_ID": "T1"}], "Active": true, "Note": null},
    {"Work_Email": "b@x.io"}
  ]
}`)

	entries, err := ParseReport(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	a := entries[0]
	assert.Equal(t, "a@x.io", a.Lookup("Work_Email"))
	assert.Equal(t, json.Number("41"), a.Lookup("Age"))
	assert.Equal(t, true, a.Lookup("Active"))
	assert.True(t, a.Has("Note"))
	assert.Nil(t, a.Lookup("Note"))

	teams, ok := a.List("Teams")
	require.True(t, ok)
	assert.Equal(t, []any{map[string]any{"Team_ID": "T1"}}, teams)

	assert.Equal(t, record.Source{"Work_Email": "b@x.io"}, entries[1])
}

func TestParseReport_KeepsNumbersExact(t *testing.T) {
	entries, err := ParseReport([]byte(
		`{"Report_Entry": [{"Emp": 12345678901234567, "Rate": 0.1, "Teams": [{"Team_ID": 98765432109876543}]}]}`))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, json.Number("12345678901234567"), entries[0].Lookup("Emp"))
	assert.Equal(t, json.Number("0.1"), entries[0].Lookup("Rate"))

	spec, err := mapping.Parse([]byte(`{
  "email": "Mail",
  "id": "Emp",
  "teams": [{"__sourceField": "Teams", "id": "Team_ID", "name": "Team_Name"}]
}`))
	require.NoError(t, err)

	people, err := transform.TransformPeople(entries, spec, transform.Options{})
	require.NoError(t, err)

	out, err := json.Marshal(people.Records[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":12345678901234567`)
	assert.Contains(t, string(out), `"id":98765432109876543`)

	teams, err := transform.TransformTeams(entries, spec)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, json.Number("98765432109876543"), teams[0].Value("id"))
}

func TestParseReport_Empty(t *testing.T) {
	entries, err := ParseReport([]byte(`{"Report_Entry": []}`))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseReport_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"Report_Entry": [`},
		{"list root", `[{"a": 1}]`},
		{"missing entries", `{"Other": []}`},
		{"entries not a list", `{"Report_Entry": {"a": 1}}`},
		{"entry not an object", `{"Report_Entry": [{"a": 1}, "b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReport([]byte(tt.data))
			require.ErrorIs(t, err, ErrInvalidReport)
		})
	}
}

func TestLoadReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Report_Entry": [{"Work_Email": "a@x.io"}]}`), 0o600))

	entries, err := LoadReportFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = LoadReportFile(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
