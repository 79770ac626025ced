package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeroast/resumeroast/internal/profile"
)

func jobWithText(text string) *profile.JobProfile {
	return &profile.JobProfile{Description: text}
}

func dimension(t *testing.T, analysis *CommentAnalysis, name string) Dimension {
	t.Helper()
	for _, d := range analysis.Dimensions {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("dimension %q not present in %+v", name, analysis.Dimensions)
	return Dimension{}
}

func hasDimension(analysis *CommentAnalysis, name string) bool {
	for _, d := range analysis.Dimensions {
		if d.Name == name {
			return true
		}
	}
	return false
}

func TestAnalyzeCommentsEmpty(t *testing.T) {
	assert.Nil(t, AnalyzeComments("", nil))
	assert.Nil(t, AnalyzeComments("   \n", jobWithText("anything")))
}

func TestAnalyzeCommentsNoSignals(t *testing.T) {
	analysis := AnalyzeComments("Thank you for considering my application.", jobWithText("Backend role."))

	require.NotNil(t, analysis)
	assert.Empty(t, analysis.Dimensions)
	assert.Equal(t, 0.0, analysis.Bonus)
}

func TestAnalyzeCommentsAlignedCandidate(t *testing.T) {
	comments := "I have 8+ years of backend experience, passionate about learning, available immediately, and I prefer remote work."
	job := jobWithText("Remote-first backend team building payment APIs.")

	analysis := AnalyzeComments(comments, job)
	require.NotNil(t, analysis)

	assert.Equal(t, 5.0, dimension(t, analysis, "work_preference").Points)
	assert.Equal(t, 4.0, dimension(t, analysis, "availability").Points)
	assert.Equal(t, 1.5, dimension(t, analysis, "learning_motivation").Points)
	assert.Equal(t, 2.0, dimension(t, analysis, "experience_confidence").Points)
	assert.False(t, hasDimension(analysis, "relocation"), "remote jobs earn no relocation points")

	assert.InDelta(t, 12.5, analysis.Bonus, 0.001)
}

func TestAnalyzeCommentsBonusCapped(t *testing.T) {
	comments := "I prefer onsite work in your office, available immediately, eager and passionate about growth, willing to relocate, and I bring 10 years of experience."
	job := jobWithText("Onsite role at our Berlin office.")

	analysis := AnalyzeComments(comments, job)
	require.NotNil(t, analysis)

	// 5 + 4 + 3 + 3 + 2 before the cap.
	assert.Equal(t, float64(MaxCommentBonus), analysis.Bonus)
	assert.Len(t, analysis.Dimensions, 5)
}

func TestAnalyzeCommentsUrgentJobPenalizesSlowStart(t *testing.T) {
	job := jobWithText("Urgent: we need someone to start immediately.")

	months := AnalyzeComments("I could start in 3 months.", job)
	require.NotNil(t, months)
	assert.False(t, hasDimension(months, "availability"))

	weeks := AnalyzeComments("I can start in two weeks.", job)
	require.NotNil(t, weeks)
	assert.InDelta(t, 2.8, dimension(t, weeks, "availability").Points, 0.001)
}

func TestAnalyzeCommentsRelaxedJobTimelines(t *testing.T) {
	job := jobWithText("Backend role, start date negotiable.")

	weeks := AnalyzeComments("Available on two weeks notice.", job)
	require.NotNil(t, weeks)
	assert.InDelta(t, 3.2, dimension(t, weeks, "availability").Points, 0.001)

	months := AnalyzeComments("I can join in a couple of months.", job)
	require.NotNil(t, months)
	assert.InDelta(t, 1.6, dimension(t, months, "availability").Points, 0.001)
}

func TestAnalyzeCommentsRelocationNeedsOnsiteJob(t *testing.T) {
	comments := "Willing to relocate for the right opportunity."

	onsite := AnalyzeComments(comments, jobWithText("Onsite position in Munich."))
	require.NotNil(t, onsite)
	assert.Equal(t, 3.0, dimension(t, onsite, "relocation").Points)

	remote := AnalyzeComments(comments, jobWithText("Fully remote position."))
	require.NotNil(t, remote)
	assert.False(t, hasDimension(remote, "relocation"))
}

func TestAnalyzeCommentsQualitativeExperienceClaim(t *testing.T) {
	analysis := AnalyzeComments("I have extensive experience running migrations.", jobWithText("Backend role."))

	require.NotNil(t, analysis)
	assert.Equal(t, 1.0, dimension(t, analysis, "experience_confidence").Points)
}

func TestArrangementScore(t *testing.T) {
	cases := []struct {
		pref, job string
		want      float64
	}{
		{"remote", "remote", 1.0},
		{"onsite", "onsite", 1.0},
		{"flexible", "onsite", 0.8},
		{"remote", "flexible", 0.8},
		{"remote", "hybrid", 0.7},
		{"hybrid", "remote", 0.6},
		{"hybrid", "onsite", 0.6},
		{"onsite", "hybrid", 0.5},
		{"remote", "onsite", 0.0},
		{"onsite", "remote", 0.0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, arrangementScore(tc.pref, tc.job), "%s vs %s", tc.pref, tc.job)
	}
}

func TestDetectArrangement(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"i prefer remote work", "remote"},
		{"hybrid is my preference", "hybrid"},
		{"happy to work on-site", "onsite"},
		{"open to remote or onsite", "flexible"},
		{"i am flexible on location", "flexible"},
		{"no preference stated", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, detectArrangement(tc.text), "text=%q", tc.text)
	}
}
