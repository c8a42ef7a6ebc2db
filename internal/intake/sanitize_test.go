package intake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestSanitizePatchNonObjectInput(t *testing.T) {
	for _, raw := range []any{nil, "text", 42.0, []any{"a"}, true} {
		assert.True(t, SanitizePatch(raw).IsZero(), "input %#v", raw)
	}
}

func TestSanitizePatchOrg(t *testing.T) {
	patch := SanitizePatch(decode(t, `{
		"org": {
			"name": "Acme",
			"country": "",
			"industry": 7,
			"size": ["not", "a", "string"],
			"extra": "dropped"
		}
	}`))

	require.NotNil(t, patch.Org)
	require.NotNil(t, patch.Org.Name)
	assert.Equal(t, "Acme", *patch.Org.Name)
	require.NotNil(t, patch.Org.Country, "provided empty string is an explicit clear")
	assert.Equal(t, "", *patch.Org.Country)
	require.NotNil(t, patch.Org.Industry)
	assert.Equal(t, "7", *patch.Org.Industry)
	assert.Nil(t, patch.Org.Size, "non-scalar value omitted")
}

func TestSanitizePatchOrgAbsentKeysStayAbsent(t *testing.T) {
	patch := SanitizePatch(decode(t, `{"org": {"country": "DE"}}`))

	require.NotNil(t, patch.Org)
	assert.Nil(t, patch.Org.Name)
	require.NotNil(t, patch.Org.Country)
	assert.Equal(t, "DE", *patch.Org.Country)
}

func TestOrgExplicitClearThroughModelPath(t *testing.T) {
	state := SessionState{Org: &OrgProfile{Name: "Acme", Country: "DE"}}

	patch := SanitizePatch(decode(t, `{"org": {"name": ""}}`))
	merged := Merge(state, patch)

	require.NotNil(t, merged.Org)
	assert.Equal(t, "", merged.Org.Name, "provided empty string blanks the field")
	assert.Equal(t, "DE", merged.Org.Country, "absent field keeps its prior value")
}

func TestSanitizePatchOrgNotAnObject(t *testing.T) {
	patch := SanitizePatch(decode(t, `{"org": "Acme"}`))
	assert.Nil(t, patch.Org)
}

func TestSanitizePatchRoles(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"strings kept in order", `{"roles": ["provider", "deployer"]}`, []string{"provider", "deployer"}},
		{"non-strings filtered", `{"roles": ["provider", 1, null, {"x":1}]}`, []string{"provider"}},
		{"empty list kept as replacement", `{"roles": []}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizePatch(decode(t, tt.raw)).Roles)
		})
	}

	patch := SanitizePatch(decode(t, `{"roles": "provider"}`))
	assert.Nil(t, patch.Roles, "non-sequence roles are omitted, not replaced")
}

func TestSanitizePatchUseCaseRisk(t *testing.T) {
	patch := SanitizePatch(decode(t, `{"useCases": [
		{"id": "uc-1", "risk": "extreme"},
		{"id": "uc-2", "risk": "high"},
		{"id": "uc-3", "risk": 3}
	]}`))

	require.Len(t, patch.UseCases, 3)
	assert.Nil(t, patch.UseCases[0].Risk)
	require.NotNil(t, patch.UseCases[1].Risk)
	assert.Equal(t, RiskHigh, *patch.UseCases[1].Risk)
	assert.Nil(t, patch.UseCases[2].Risk)
}

func TestSanitizePatchUseCaseFields(t *testing.T) {
	patch := SanitizePatch(decode(t, `{"useCases": [{
		"id": "uc-1",
		"name": "Recommendation Engine",
		"description": "",
		"owner": 12,
		"inScope": true,
		"data": ["purchases", 5, "clicks", null],
		"subjects": "customers",
		"jurisdictions": []
	}]}`))

	require.Len(t, patch.UseCases, 1)
	uc := patch.UseCases[0]
	assert.Equal(t, "uc-1", uc.ID)
	require.NotNil(t, uc.Name)
	assert.Equal(t, "Recommendation Engine", *uc.Name)
	assert.Nil(t, uc.Description, "empty string omitted")
	require.NotNil(t, uc.Owner)
	assert.Equal(t, "12", *uc.Owner)
	require.NotNil(t, uc.InScope)
	assert.True(t, *uc.InScope)
	assert.Equal(t, []string{"purchases", "clicks"}, uc.Data)
	assert.Nil(t, uc.Subjects, "non-sequence omitted")
	assert.Equal(t, []string{}, uc.Jurisdictions)
}

func TestSanitizePatchFallbackIDsUnique(t *testing.T) {
	patch := SanitizePatch(decode(t, `{"useCases": [
		{"name": "A"}, {"name": "B"}, "garbage"
	]}`))

	require.Len(t, patch.UseCases, 3)
	seen := map[string]bool{}
	for _, uc := range patch.UseCases {
		assert.NotEmpty(t, uc.ID)
		assert.False(t, seen[uc.ID], "duplicate fallback id %s", uc.ID)
		seen[uc.ID] = true
	}
}

func TestSanitizeRoadmap(t *testing.T) {
	entries := SanitizeRoadmap(decode(t, `[
		{
			"useCaseId": "uc-1",
			"useCaseName": "Scoring",
			"risk": {"level": "high", "rationale": "credit decisions"},
			"tasks": [
				{"title": "DPIA", "owner": "legal", "dueInDays": 30, "acceptance": "signed off"},
				{"title": "capped", "dueInDays": 365},
				{"title": "no due date"},
				{"title": "negative", "dueInDays": -5},
				"garbage"
			]
		},
		"garbage",
		{"risk": "not-an-object"}
	]`))

	require.Len(t, entries, 2)
	first := entries[0]
	assert.Equal(t, "uc-1", first.UseCaseID)
	assert.Equal(t, "high", first.Risk.Level)
	require.Len(t, first.Tasks, 2)
	assert.Equal(t, 30, first.Tasks[0].DueInDays)
	assert.Equal(t, "legal", first.Tasks[0].Owner)
	assert.Equal(t, 90, first.Tasks[1].DueInDays, "horizon capped at 90 days")

	assert.Empty(t, entries[1].Risk.Level)
}

func TestSanitizeRoadmapNonArray(t *testing.T) {
	assert.Nil(t, SanitizeRoadmap(decode(t, `{"useCaseId": "uc-1"}`)))
	assert.Nil(t, SanitizeRoadmap(nil))
}
