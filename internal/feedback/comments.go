// Package feedback assembles the qualitative half of a scoring result:
// merged narrative lists plus the deterministic comment bonus. Nothing in it
// calls a model.
package feedback

import (
	"math"
	"regexp"
	"strings"

	"github.com/resumeroast/resumeroast/internal/profile"
)

// MaxCommentBonus caps the total boost optional comments can add to a final
// score.
const MaxCommentBonus = 15

// Dimension maxima. The theoretical sum exceeds MaxCommentBonus; the cap
// applies to the total.
const (
	maxWorkPreferencePoints = 5
	maxAvailabilityPoints   = 4
	maxMotivationPoints     = 3
	maxRelocationPoints     = 3
	maxExperiencePoints     = 2
)

// Dimension is one scored aspect of the candidate's comments. Signal holds
// the phrase that earned the points.
type Dimension struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Max    float64 `json:"max"`
	Signal string  `json:"signal,omitempty"`
}

// CommentAnalysis is the deterministic breakdown of the optional free-text
// comments. Bonus is already capped; dimensions that earned nothing are
// dropped.
type CommentAnalysis struct {
	Dimensions []Dimension `json:"dimensions"`
	Bonus      float64     `json:"bonus"`
}

// AnalyzeComments scores the candidate's free-text comments against the job.
// Returns nil when there is nothing to analyze.
func AnalyzeComments(comments string, job *profile.JobProfile) *CommentAnalysis {
	text := strings.ToLower(strings.TrimSpace(comments))
	if text == "" {
		return nil
	}

	var jobText string
	if job != nil {
		jobText = strings.ToLower(job.Text())
	}
	arrangement := jobArrangement(jobText)

	dims := []Dimension{
		analyzeWorkPreference(text, arrangement),
		analyzeAvailability(text, jobText),
		analyzeMotivation(text),
		analyzeRelocation(text, arrangement),
		analyzeExperienceClaim(text),
	}

	analysis := &CommentAnalysis{}
	var total float64
	for _, d := range dims {
		if d.Points > 0 {
			analysis.Dimensions = append(analysis.Dimensions, d)
			total += d.Points
		}
	}

	if total > MaxCommentBonus {
		total = MaxCommentBonus
	}
	analysis.Bonus = math.Round(total*100) / 100

	return analysis
}

var arrangementTerms = []struct {
	name  string
	terms []string
}{
	{"remote", []string{"remote"}},
	{"hybrid", []string{"hybrid"}},
	{"onsite", []string{"onsite", "on-site", "on site", "in office", "in-office"}},
}

// detectArrangement returns the single arrangement a text commits to,
// "flexible" when it names several or says so, and "" when it names none.
func detectArrangement(text string) string {
	var found []string
	for _, a := range arrangementTerms {
		for _, term := range a.terms {
			if strings.Contains(text, term) {
				found = append(found, a.name)
				break
			}
		}
	}

	switch {
	case strings.Contains(text, "flexible"), len(found) > 1:
		return "flexible"
	case len(found) == 1:
		return found[0]
	}
	return ""
}

func jobArrangement(jobText string) string {
	if a := detectArrangement(jobText); a != "" {
		return a
	}
	// Postings that never mention an arrangement are treated as open to any.
	return "flexible"
}

func analyzeWorkPreference(text, arrangement string) Dimension {
	d := Dimension{Name: "work_preference", Max: maxWorkPreferencePoints}

	pref := detectArrangement(text)
	if pref == "" {
		return d
	}

	d.Points = arrangementScore(pref, arrangement) * maxWorkPreferencePoints
	d.Signal = "prefers " + pref
	return d
}

func arrangementScore(pref, job string) float64 {
	switch {
	case pref == job:
		return 1.0
	case pref == "flexible" || job == "flexible":
		return 0.8
	case pref == "remote" && job == "hybrid":
		return 0.7
	case pref == "hybrid":
		return 0.6
	case pref == "onsite" && job == "hybrid":
		return 0.5
	}
	return 0
}

var (
	immediateTerms = []string{"immediately", "right away", "available now", "asap", "start today", "start tomorrow"}
	urgentTerms    = []string{"urgent", "immediate", "asap", "right away"}
)

func analyzeAvailability(text, jobText string) Dimension {
	d := Dimension{Name: "availability", Max: maxAvailabilityPoints}

	jobIsUrgent := containsAny(jobText, urgentTerms)

	var score float64
	switch {
	case containsAny(text, immediateTerms):
		score = 1.0
		d.Signal = "available immediately"
	case strings.Contains(text, "week"):
		score = 0.8
		if jobIsUrgent {
			score = 0.7
		}
		d.Signal = "available within weeks"
	case strings.Contains(text, "month"):
		if !jobIsUrgent {
			score = 0.4
		}
		d.Signal = "available within months"
	}

	d.Points = score * maxAvailabilityPoints
	if d.Points == 0 {
		d.Signal = ""
	}
	return d
}

var motivationTerms = []string{
	"eager", "passionate", "excited", "motivated", "keen to",
	"love learning", "curious", "growth mindset", "enthusiastic",
}

func analyzeMotivation(text string) Dimension {
	d := Dimension{Name: "learning_motivation", Max: maxMotivationPoints}

	var hits int
	for _, term := range motivationTerms {
		if strings.Contains(text, term) {
			hits++
			if d.Signal == "" {
				d.Signal = term
			}
		}
	}

	score := 0.5 * float64(hits)
	if score > 1 {
		score = 1
	}
	d.Points = score * maxMotivationPoints
	return d
}

var relocationTerms = []string{
	"willing to relocate", "open to relocat", "can relocate",
	"happy to relocate", "willing to move", "relocation is not a problem",
}

// analyzeRelocation awards points only when the job could use them; a fully
// remote posting gains nothing from a mobile candidate.
func analyzeRelocation(text, arrangement string) Dimension {
	d := Dimension{Name: "relocation", Max: maxRelocationPoints}

	if arrangement == "remote" {
		return d
	}
	if containsAny(text, relocationTerms) {
		d.Points = maxRelocationPoints
		d.Signal = "willing to relocate"
	}
	return d
}

var (
	quantifiedExperienceRe = regexp.MustCompile(`\d{1,2}\s*\+?\s*(?:years?|yrs?)`)
	confidenceTerms        = []string{
		"extensive experience", "proven track record",
		"deep experience", "hands-on experience",
	}
)

func analyzeExperienceClaim(text string) Dimension {
	d := Dimension{Name: "experience_confidence", Max: maxExperiencePoints}

	if m := quantifiedExperienceRe.FindString(text); m != "" {
		d.Points = maxExperiencePoints
		d.Signal = strings.TrimSpace(m)
		return d
	}
	if containsAny(text, confidenceTerms) {
		d.Points = 1
		d.Signal = "confident experience claim"
	}
	return d
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
