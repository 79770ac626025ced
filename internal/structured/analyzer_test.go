package structured

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeroast/resumeroast/internal/profile"
)

func TestScoreWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, ScoreWeights().Sum(), 1e-9)
}

func skillRecords(names ...string) []profile.SkillRecord {
	records := make([]profile.SkillRecord, len(names))
	for i, n := range names {
		records[i] = profile.SkillRecord{Name: n}
	}
	return records
}

func fixtureResume() *profile.ResumeProfile {
	end := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &profile.ResumeProfile{
		Skills: skillRecords("Python", "Django", "PostgreSQL", "Docker", "AWS"),
		Experience: []profile.ExperienceEntry{
			{
				Title:       "Backend Engineer",
				Company:     "Acme",
				Start:       time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC),
				End:         &end,
				Description: "Python services on PostgreSQL and Docker",
			},
		},
		Education: []profile.EducationEntry{
			{Degree: "BS in Computer Science", Field: "Computer Science"},
		},
	}
}

func fixtureJob() *profile.JobProfile {
	return &profile.JobProfile{
		Title:       "Backend Engineer",
		Skills:      skillRecords("Python", "FastAPI", "PostgreSQL", "Docker", "Kubernetes", "AWS"),
		Experience:  profile.ExperienceRequirement{Level: "mid"},
		Description: "Backend Engineer building Python services on PostgreSQL and Docker",
	}
}

func withFixedNow(t *testing.T) {
	t.Helper()
	restore := now
	now = func() time.Time {
		return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { now = restore })
}

func TestAnalyzeReferenceSkills(t *testing.T) {
	withFixedNow(t)

	analysis, err := NewAnalyzer().Analyze(fixtureResume(), fixtureJob())
	require.NoError(t, err)

	assert.InDelta(t, 66.67, analysis.Breakdown.Skills, 0.01)
	assert.Equal(t, []string{"FastAPI", "Kubernetes"}, analysis.SkillsMatch.Missing)
}

func TestAnalyzeBaselineReSum(t *testing.T) {
	withFixedNow(t)

	analysis, err := NewAnalyzer().Analyze(fixtureResume(), fixtureJob())
	require.NoError(t, err)

	assert.InDelta(t, analysis.BaselineScore, analysis.Breakdown.Weighted(ScoreWeights()), 1e-9)
}

func TestAnalyzeDeterministic(t *testing.T) {
	withFixedNow(t)

	a := NewAnalyzer()
	first, err := a.Analyze(fixtureResume(), fixtureJob())
	require.NoError(t, err)
	second, err := a.Analyze(fixtureResume(), fixtureJob())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeScoresInRange(t *testing.T) {
	withFixedNow(t)

	analysis, err := NewAnalyzer().Analyze(fixtureResume(), fixtureJob())
	require.NoError(t, err)

	for name, score := range map[string]float64{
		"skills":     analysis.Breakdown.Skills,
		"experience": analysis.Breakdown.Experience,
		"education":  analysis.Breakdown.Education,
		"domain":     analysis.Breakdown.Domain,
		"baseline":   analysis.BaselineScore,
	} {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 100.0, name)
	}
}

func TestAnalyzeNilProfiles(t *testing.T) {
	a := NewAnalyzer()

	_, err := a.Analyze(nil, fixtureJob())
	assert.Error(t, err)

	_, err = a.Analyze(fixtureResume(), nil)
	assert.Error(t, err)
}

func TestAnalyzeEmptyProfiles(t *testing.T) {
	withFixedNow(t)

	analysis, err := NewAnalyzer().Analyze(&profile.ResumeProfile{}, &profile.JobProfile{})
	require.NoError(t, err)

	// No required skills means a full skills score; everything else bottoms
	// out except the neutral experience score.
	assert.Equal(t, 100.0, analysis.Breakdown.Skills)
	assert.Equal(t, neutralExperience, analysis.Breakdown.Experience)
	assert.Equal(t, 0.0, analysis.Breakdown.Education)
	assert.Equal(t, 0.0, analysis.Breakdown.Domain)
}
