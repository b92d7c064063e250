package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSocialKey(t *testing.T) {
	assert.True(t, IsSocialKey("linkedinUrl"))
	assert.True(t, IsSocialKey("twitterUrl"))
	assert.False(t, IsSocialKey("photoUrl"))
	assert.False(t, IsSocialKey("profileUrl"))
	assert.False(t, IsSocialKey("url"))
	assert.False(t, IsSocialKey("email"))
}

func TestNetworkFromKey(t *testing.T) {
	assert.Equal(t, "linkedin", NetworkFromKey("linkedinUrl"))
	assert.Equal(t, "whatsapp", NetworkFromKey("WhatsAppUrl"))
	assert.Equal(t, "imessage", NetworkFromKey("iMessageUrl"))
}

func TestRuleKind_String(t *testing.T) {
	assert.Equal(t, "RuleDirect", RuleDirect.String())
	assert.Equal(t, "RuleSocialURL", RuleSocialURL.String())
	assert.Equal(t, "RuleKind(0)", RuleKind(0).String())
}

func TestSpec_TeamsRule(t *testing.T) {
	spec, err := Parse([]byte(`{
  "email": "Work_Email",
  "teams": [{"__sourceField": "Teams", "id": "Team_ID", "name": "Team_Name", "description": "Team_Desc"}]
}`))
	require.NoError(t, err)

	tr, err := spec.TeamsRule()
	require.NoError(t, err)
	assert.Equal(t, "Teams", tr.SourceField)
	assert.Equal(t, "Team_ID", tr.IDField)
	assert.Equal(t, "Team_Name", tr.NameField)
	assert.Equal(t, []SubField{{Target: "description", Source: "Team_Desc"}}, tr.Aliases)

	email, err := spec.EmailField()
	require.NoError(t, err)
	assert.Equal(t, "Work_Email", email)
}

func TestSpec_TeamsRuleErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{"missing teams", `{"email": "E"}`, "descriptor is required"},
		{"teams is direct", `{"teams": "Teams"}`, "must be a list"},
		{"missing id", `{"teams": [{"__sourceField": "Teams", "name": "N"}]}`, `no "id" key`},
		{"missing name", `{"teams": [{"__sourceField": "Teams", "id": "I"}]}`, `no "name" key`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Parse([]byte(tt.data))
			require.NoError(t, err)

			_, err = spec.TeamsRule()

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, KeyTeams, fe.Key)
			assert.Contains(t, fe.Reason, tt.message)
		})
	}
}

func TestSpec_EmailFieldErrors(t *testing.T) {
	spec, err := Parse([]byte(`{"firstName": "F"}`))
	require.NoError(t, err)

	_, err = spec.EmailField()

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KeyEmail, fe.Key)

	spec, err = Parse([]byte(`{"email": {"work": "Work_Email"}}`))
	require.NoError(t, err)

	_, err = spec.EmailField()
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Reason, "RuleStructured")
}

func TestSpec_IsImmutable(t *testing.T) {
	spec, err := Parse([]byte(peopleMapping))
	require.NoError(t, err)

	loc, _ := spec.Rule("location")
	loc.Fields[0].Source = "changed"

	rules := spec.Rules()
	rules[4].Fields[1].Source = "changed"

	extra := spec.AdditionalFields()
	extra[0] = "changed"

	again, _ := spec.Rule("location")
	assert.Equal(t, "City", again.Fields[0].Source)
	assert.Equal(t, "Country", again.Fields[1].Source)
	assert.Equal(t, "Cost_Center", spec.AdditionalFields()[0])
}

func TestSpec_SourceFields(t *testing.T) {
	spec, err := Parse([]byte(peopleMapping))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Work_Email", "First_Name", "Last_Name", "Preferred_Name", "City", "Country", "Teams", "LinkedIn", "Photo",
	}, spec.SourceFields())
}
