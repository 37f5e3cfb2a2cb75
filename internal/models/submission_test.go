package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleRoundTripStringForm(t *testing.T) {
	var m Module
	require.NoError(t, json.Unmarshal([]byte(`"Foundations of Feedback"`), &m))
	assert.Equal(t, "Foundations of Feedback", m.Title)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"Foundations of Feedback"`, string(out))
}

func TestModuleRoundTripStructuredForm(t *testing.T) {
	raw := `{"title":"Coaching","objective":"Run coaching conversations","activities":["role play","debrief"]}`
	var m Module
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	assert.Equal(t, "Coaching", m.Title)
	assert.Equal(t, "Run coaching conversations", m.Objective)
	assert.Len(t, m.Activities, 2)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestCreatedTimeFallsBackToLegacyCasing(t *testing.T) {
	rec := SubmissionRecord{LegacyCreatedAt: "2024-03-01T10:00:00Z"}
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), rec.CreatedTime())

	assert.True(t, SubmissionRecord{}.CreatedTime().IsZero())
}

func TestIsAllowedMark(t *testing.T) {
	assert.True(t, IsAllowedMark(StatusNew))
	assert.True(t, IsAllowedMark(StatusInProgress))
	assert.True(t, IsAllowedMark(StatusDone))
	assert.False(t, IsAllowedMark(StatusSubmitted))
	assert.False(t, IsAllowedMark(SubmissionStatus("bogus")))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "acme-corp", Slugify("Acme Corp"))
	assert.Equal(t, "acme-co", Slugify("  Acme & Co! "))
	assert.Equal(t, "", Slugify("!!!"))
}
