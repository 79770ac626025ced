package structured

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/resumeroast/resumeroast/internal/profile"
)

// Relevance factor bounds: every entry counts at least at the base rate,
// keyword overlap adds up to relevanceOverlap, an aligned role category
// adds relevanceCategory. The sum is clamped to 1.
const (
	relevanceBase     = 0.4
	relevanceOverlap  = 0.6
	relevanceCategory = 0.2
)

const (
	keywordMinLen = 3

	// Scores taper at 5 points per year beyond a band's upper edge, never
	// below 60. An unspecified requirement scores neutral.
	overqualifiedSlope = 5.0
	overqualifiedFloor = 60.0
	neutralExperience  = 70.0
)

// ExperienceAnalysis reports how the candidate's history maps onto the
// posting's requirement band.
type ExperienceAnalysis struct {
	TotalYears    float64 `json:"total_years"`
	RelevantYears float64 `json:"relevant_years"`
	RequiredBand  string  `json:"required_band"`
	Score         float64 `json:"score"`
}

func analyzeExperience(resume *profile.ResumeProfile, job *profile.JobProfile, now time.Time) ExperienceAnalysis {
	jobTokens := keywordSet(job.Title+" "+job.Text(), keywordMinLen)
	jobCategory := roleCategory(job.Title)

	var total, relevant float64
	for _, e := range resume.Experience {
		years := e.Years(now)
		if years <= 0 {
			continue
		}
		total += years
		relevant += years * relevanceFactor(e, jobTokens, jobCategory)
	}

	band, score := experienceScore(relevant, job.Experience)
	return ExperienceAnalysis{
		TotalYears:    round2(total),
		RelevantYears: round2(relevant),
		RequiredBand:  band,
		Score:         score,
	}
}

// relevanceFactor weighs one experience entry by how much of its own
// vocabulary appears in the posting.
func relevanceFactor(e profile.ExperienceEntry, jobTokens map[string]struct{}, jobCategory string) float64 {
	entryTokens := keywordSet(e.Title+" "+e.Description, keywordMinLen)
	if len(entryTokens) == 0 {
		return relevanceBase
	}

	shared := intersectCount(entryTokens, jobTokens)
	factor := relevanceBase + relevanceOverlap*float64(shared)/float64(len(entryTokens))
	if cat := roleCategory(e.Title); cat != "" && cat == jobCategory {
		factor += relevanceCategory
	}
	if factor > 1 {
		factor = 1
	}
	return factor
}

var roleCategories = []string{
	"engineer", "developer", "architect", "scientist", "analyst",
	"manager", "designer", "consultant", "administrator", "devops",
}

func roleCategory(title string) string {
	t := strings.ToLower(title)
	for _, c := range roleCategories {
		if strings.Contains(t, c) {
			return c
		}
	}
	return ""
}

// experienceScore maps relevant years onto the requirement band. Below the
// band minimum the score ramps up along a smoothstep curve; past the band
// maximum it tapers linearly down to the floor.
func experienceScore(relevantYears float64, req profile.ExperienceRequirement) (string, float64) {
	min, max, label, ok := requirementBand(req)
	if !ok {
		return label, neutralExperience
	}

	switch {
	case relevantYears < min:
		return label, 100 * smoothstep(relevantYears/min)
	case !math.IsInf(max, 1) && relevantYears > max:
		score := 100 - (relevantYears-max)*overqualifiedSlope
		if score < overqualifiedFloor {
			score = overqualifiedFloor
		}
		return label, score
	default:
		return label, 100
	}
}

func requirementBand(req profile.ExperienceRequirement) (min, max float64, label string, ok bool) {
	if req.Years > 0 {
		return req.Years, math.Inf(1), fmt.Sprintf("%g+ years", req.Years), true
	}
	switch strings.ToLower(req.Level) {
	case "entry", "junior":
		return 0, 2, "entry (0-2 years)", true
	case "mid", "intermediate":
		return 3, 6, "mid (3-6 years)", true
	case "senior", "lead":
		return 7, math.Inf(1), "senior (7+ years)", true
	}
	return 0, 0, "not specified", false
}

func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
