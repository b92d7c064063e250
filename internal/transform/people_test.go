package transform

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"people-sync/internal/record"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
}

func peopleEntries() []record.Source {
	return []record.Source{
		{"Work_Email": "a@x.io", "Preferred_Name": "Ann Lee", "Hire_Date": "2019-03-01", "Skills": []any{"Go"}},
		{"Work_Email": "b@x.io", "First_Name": "Bo", "Hire_Date": "2099-01-01", "Worker_Type": "Intern"},
		{"Work_Email": "c@x.io", "First_Name": "Cy", "Hire_Date": "2010-01-01", "Termination_Date": "2015-06-30",
			"Cost_Center": nil, "Worker_Type": "contractor"},
	}
}

func TestDiscoverAdditionalFields(t *testing.T) {
	spec := mustSpec(t, `{"additionalFields": ["Skills", "Cost_Center", "Badge"]}`)

	got := DiscoverAdditionalFields(peopleEntries(), spec)
	assert.Equal(t, []string{"Skills", "Cost_Center"}, got, "presence counts even with a null value")

	assert.Empty(t, DiscoverAdditionalFields(nil, spec))
}

func TestTransformPeople(t *testing.T) {
	spec := mustSpec(t, personMapping)

	res, err := TransformPeople(peopleEntries(), spec, Options{Now: fixedNow})
	require.NoError(t, err)
	require.Len(t, res.Records, 3)

	assert.Equal(t, []string{"Cost_Center", "Skills"}, res.AdditionalFields)

	emails := make([]any, len(res.Records))
	for i, r := range res.Records {
		emails[i] = r.Value("email")
	}

	assert.Equal(t, []any{"a@x.io", "b@x.io", "c@x.io"}, emails, "output keeps input order")

	ann := res.Records[0]
	assert.Equal(t, "Ann", ann.Value("firstName"))
	assert.Equal(t, "Lee", ann.Value("lastName"))
	assert.Equal(t, StatusCurrent, ann.Value("status"))
	assert.Equal(t, []record.AdditionalField{{Key: "Skills", Value: []string{"Go"}}}, ann.Value("additionalFields"))

	bo := res.Records[1]
	assert.Equal(t, StatusFuture, bo.Value("status"))
	assert.False(t, bo.Has("type"))

	cy := res.Records[2]
	assert.Equal(t, StatusEx, cy.Value("status"))
	assert.Equal(t, TypeContractor, cy.Value("type"))
	assert.Equal(t, []record.AdditionalField{}, cy.Value("additionalFields"))

	require.Len(t, res.Diagnostics.Warnings, 1, spew.Sdump(res.Diagnostics))
	assert.Equal(t, "b@x.io", res.Diagnostics.Warnings[0].Subject)
}

func TestTransformPeople_IsDeterministic(t *testing.T) {
	spec := mustSpec(t, personMapping)
	entries := peopleEntries()

	first, err := TransformPeople(entries, spec, Options{Now: fixedNow})
	require.NoError(t, err)

	second, err := TransformPeople(entries, spec, Options{Now: fixedNow})
	require.NoError(t, err)

	a, err := json.Marshal(first.Records)
	require.NoError(t, err)

	b, err := json.Marshal(second.Records)
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}

func TestTransformPeople_JSONShape(t *testing.T) {
	spec := mustSpec(t, `{
  "email": "Work_Email",
  "location": {"city": "City"},
  "linkedinUrl": "li",
  "additionalFields": ["Skills"]
}`)

	entries := []record.Source{{"Work_Email": "a@x.io", "City": "Oslo", "li": "http://x", "Skills": "Go"}}

	res, err := TransformPeople(entries, spec, Options{Now: fixedNow})
	require.NoError(t, err)

	b, err := json.Marshal(res.Records[0])
	require.NoError(t, err)

	assert.Equal(t,
		`{"email":"a@x.io","location":{"city":"Oslo"},"additionalFields":[{"key":"Skills","value":["Go"]}],`+
			`"type":"FULL_TIME","socialNetworks":[{"name":"linkedin","profileName":"LinkedIn","profileUrl":"http://x"}]}`,
		string(b))
}

func TestTransformPeople_NilSpec(t *testing.T) {
	_, err := TransformPeople(nil, nil, Options{})
	require.Error(t, err)
}

func TestOptions_TodayDefaultsToNow(t *testing.T) {
	assert.Equal(t, time.Now().Format(DateLayout), Options{}.today())
	assert.Equal(t, "2026-10-18", Options{Now: fixedNow}.today())
}
