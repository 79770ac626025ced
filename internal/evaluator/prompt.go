package evaluator

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/resumeroast/resumeroast/internal/structured"
)

//go:embed prompt.md
var promptTemplate string

// BuildPrompt renders the evaluation prompt. The same text goes to every
// backend so their scores stay comparable.
func BuildPrompt(in Input) string {
	a := in.Analysis

	missing := "none"
	if a.SkillsMatch != nil && len(a.SkillsMatch.Missing) > 0 {
		missing = strings.Join(a.SkillsMatch.Missing, ", ")
	}

	var skillsPct float64
	if a.SkillsMatch != nil {
		skillsPct = a.SkillsMatch.Percentage
	}

	replacer := strings.NewReplacer(
		"{{JOB_TITLE}}", orFallback(in.Job.Title, "Not specified"),
		"{{EXPERIENCE_LEVEL}}", orFallback(a.Experience.RequiredBand, "not specified"),
		"{{SKILLS_MATCH}}", fmt.Sprintf("%.1f", skillsPct),
		"{{MISSING_SKILLS}}", missing,
		"{{RELEVANT_YEARS}}", fmt.Sprintf("%.1f", a.Experience.RelevantYears),
		"{{TOTAL_YEARS}}", fmt.Sprintf("%.1f", a.Experience.TotalYears),
		"{{HIGHEST_DEGREE}}", orFallback(a.Education.HighestDegree, "Not specified"),
		"{{SCORING_WEIGHTS}}", weightLines(structured.ScoreWeights()),
		"{{SCORE_LEGEND}}", legendLines(),
		"{{RESUME_TEXT}}", orFallback(in.Resume.Text(), "Not available"),
		"{{JOB_TEXT}}", orFallback(in.Job.Text(), "Not available"),
	)

	return replacer.Replace(promptTemplate)
}

func weightLines(w structured.Weights) string {
	lines := []string{
		fmt.Sprintf("- Technical Skills (%.0f%%)", w.Skills*100),
		fmt.Sprintf("- Experience Relevance (%.0f%%)", w.Experience*100),
		fmt.Sprintf("- Education & Qualifications (%.0f%%)", w.Education*100),
		fmt.Sprintf("- Domain Expertise (%.0f%%)", w.Domain*100),
	}
	return strings.Join(lines, "\n")
}

func legendLines() string {
	lines := make([]string, 0, len(scoreLegend))
	for _, r := range scoreLegend {
		lines = append(lines, fmt.Sprintf("- Score %.0f-%.0f: %s (%s)", r.Min, r.Max, r.Category, r.Meaning))
	}
	return strings.Join(lines, "\n")
}

func orFallback(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
