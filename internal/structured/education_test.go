package structured

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resumeroast/resumeroast/internal/profile"
)

func TestAnalyzeEducationLadder(t *testing.T) {
	job := &profile.JobProfile{Title: "Engineer"}

	tests := []struct {
		name   string
		degree string
		expect float64
	}{
		{"phd", "PhD in Physics", 100},
		{"masters", "Master of Science", 80},
		{"bachelors", "Bachelor of Science", 60},
		{"associate", "Associate Degree", 40},
		{"certificate", "Cloud Certificate", 20},
		{"unknown", "Self-taught", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := &profile.ResumeProfile{
				Education: []profile.EducationEntry{{Degree: tt.degree}},
			}
			analysis := analyzeEducation(resume, job)
			assert.Equal(t, tt.expect, analysis.Score)
		})
	}
}

func TestAnalyzeEducationNoEntries(t *testing.T) {
	analysis := analyzeEducation(&profile.ResumeProfile{}, &profile.JobProfile{})

	assert.Equal(t, 0.0, analysis.Score)
	assert.Equal(t, "Not specified", analysis.HighestDegree)
	assert.Equal(t, "Unknown", analysis.Level)
}

func TestAnalyzeEducationHighestWins(t *testing.T) {
	resume := &profile.ResumeProfile{
		Education: []profile.EducationEntry{
			{Degree: "BS in Computer Science"},
			{Degree: "PhD in Machine Learning"},
		},
	}

	analysis := analyzeEducation(resume, &profile.JobProfile{})
	assert.Equal(t, 100.0, analysis.Score)
	assert.Equal(t, "PhD in Machine Learning", analysis.HighestDegree)
	assert.Equal(t, "PhD", analysis.Level)
}

func TestAnalyzeEducationFieldBonus(t *testing.T) {
	resume := &profile.ResumeProfile{
		Education: []profile.EducationEntry{
			{Degree: "MS in Computer Science", Field: "Computer Science"},
		},
	}
	job := &profile.JobProfile{
		Education: profile.EducationRequirement{Field: "Computer Science"},
	}

	analysis := analyzeEducation(resume, job)
	assert.True(t, analysis.FieldMatched)
	assert.Equal(t, 90.0, analysis.Score)
}

func TestAnalyzeEducationFieldBonusCapped(t *testing.T) {
	resume := &profile.ResumeProfile{
		Education: []profile.EducationEntry{
			{Degree: "PhD", Field: "Distributed Systems"},
		},
	}
	job := &profile.JobProfile{
		Education: profile.EducationRequirement{Field: "Distributed Systems"},
	}

	analysis := analyzeEducation(resume, job)
	assert.True(t, analysis.FieldMatched)
	assert.Equal(t, 100.0, analysis.Score)
}

func TestAnalyzeEducationFieldMismatch(t *testing.T) {
	resume := &profile.ResumeProfile{
		Education: []profile.EducationEntry{
			{Degree: "BS in History", Field: "History"},
		},
	}
	job := &profile.JobProfile{
		Education: profile.EducationRequirement{Field: "Computer Science"},
	}

	analysis := analyzeEducation(resume, job)
	assert.False(t, analysis.FieldMatched)
	assert.Equal(t, 60.0, analysis.Score)
}
