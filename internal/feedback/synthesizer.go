package feedback

import (
	"strings"

	"github.com/resumeroast/resumeroast/internal/consensus"
	"github.com/resumeroast/resumeroast/internal/structured"
)

const (
	maxListItems  = 5
	maxSkillItems = 20
)

// Feedback is the qualitative half of a scoring result. The core lists are
// never nil so the JSON shape stays stable across analysis paths.
type Feedback struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Concerns        []string `json:"concerns"`
	MissingSkills   []string `json:"missing_skills"`
	MatchingSkills  []string `json:"matching_skills"`
	Recommendations []string `json:"recommendations"`
	RiskFactors     []string `json:"risk_factors,omitempty"`
}

// Synthesize builds the narrative from the highest-confidence evaluation,
// falling back to the deterministic analysis when no model verdict survived.
// Skill lists put the matcher's findings first, then whatever the model
// added; everything is deduplicated case-insensitively and capped.
func Synthesize(res *consensus.Result, analysis *structured.Analysis) *Feedback {
	var matched, missing []string
	if analysis != nil && analysis.SkillsMatch != nil {
		matched = analysis.SkillsMatch.Matched
		missing = analysis.SkillsMatch.Missing
	}

	if res == nil || res.Primary == nil {
		return structuredFallback(matched, missing)
	}

	primary := res.Primary
	return &Feedback{
		Summary:         strings.TrimSpace(primary.Summary),
		Strengths:       capList(dedupeStrings(primary.Strengths), maxListItems),
		Concerns:        capList(dedupeStrings(primary.Concerns), maxListItems),
		MissingSkills:   mergeSkillLists(missing, primary.MissingSkills),
		MatchingSkills:  mergeSkillLists(matched, primary.MatchingSkills),
		Recommendations: capList(dedupeStrings(primary.Recommendations), maxListItems),
		RiskFactors:     capList(dedupeStrings(primary.RiskFactors), maxListItems),
	}
}

func structuredFallback(matched, missing []string) *Feedback {
	strengths := capList(dedupeStrings(matched), 3)

	return &Feedback{
		Summary:         "Analysis completed using structured data only; no model evaluations were available.",
		Strengths:       strengths,
		Concerns:        []string{"Limited analysis depth", "Model evaluations unavailable"},
		MissingSkills:   mergeSkillLists(missing, nil),
		MatchingSkills:  mergeSkillLists(matched, nil),
		Recommendations: []string{"Retry when model backends are available", "Manual review recommended"},
	}
}

func mergeSkillLists(deterministic, model []string) []string {
	merged := make([]string, 0, len(deterministic)+len(model))
	merged = append(merged, deterministic...)
	merged = append(merged, model...)
	return capList(dedupeStrings(merged), maxSkillItems)
}

// dedupeStrings keeps the first spelling of each entry and the original
// order.
func dedupeStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}

func capList(items []string, max int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > max {
		return items[:max]
	}
	return items
}
