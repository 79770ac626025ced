// Package structured computes the deterministic half of a scoring request:
// skills, experience, education and domain sub-scores plus the fixed-weight
// baseline. Nothing in it calls a model; the baseline must stay computable
// when every evaluator is down.
package structured

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/resumeroast/resumeroast/internal/profile"
	"github.com/resumeroast/resumeroast/internal/skills"
)

// Weights is the process-wide score weight table. The four components
// always sum to 1.0 and never vary per request.
type Weights struct {
	Skills     float64 `json:"skills_match"`
	Experience float64 `json:"experience_match"`
	Education  float64 `json:"education_match"`
	Domain     float64 `json:"domain_expertise"`
}

func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Domain
}

var scoreWeights = Weights{
	Skills:     0.35,
	Experience: 0.30,
	Education:  0.15,
	Domain:     0.20,
}

// ScoreWeights returns the fixed weight table.
func ScoreWeights() Weights { return scoreWeights }

// ScoreBreakdown carries the four component scores, each in [0,100].
type ScoreBreakdown struct {
	Skills     float64 `json:"skills_score"`
	Experience float64 `json:"experience_score"`
	Education  float64 `json:"education_score"`
	Domain     float64 `json:"domain_score"`
}

// Weighted folds the breakdown through a weight table.
func (b ScoreBreakdown) Weighted(w Weights) float64 {
	return b.Skills*w.Skills + b.Experience*w.Experience +
		b.Education*w.Education + b.Domain*w.Domain
}

// Analysis is the full structured verdict: the component breakdown, the
// baseline score, and the per-component detail used for prompts and
// feedback.
type Analysis struct {
	Breakdown     ScoreBreakdown      `json:"score_breakdown"`
	BaselineScore float64             `json:"baseline_score"`
	SkillsMatch   *skills.MatchResult `json:"skills_analysis"`
	Experience    ExperienceAnalysis  `json:"experience_analysis"`
	Education     EducationAnalysis   `json:"education_analysis"`
	Domain        DomainAnalysis      `json:"domain_analysis"`
}

// Analyzer runs the structured analysis. Safe for concurrent use.
type Analyzer struct {
	matcher *skills.Matcher
	domain  DomainConfig
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		matcher: skills.NewMatcher(),
		domain:  DefaultDomainConfig(),
	}
}

var now = time.Now

// Analyze scores the resume against the job. The result is deterministic
// for identical inputs apart from open-ended experience entries, which
// count up to the current time.
func (a *Analyzer) Analyze(resume *profile.ResumeProfile, job *profile.JobProfile) (*Analysis, error) {
	if resume == nil || job == nil {
		return nil, errors.New("analyze: nil profile")
	}

	match := a.matcher.Match(resume.SkillNames(), job.SkillNames())
	exp := analyzeExperience(resume, job, now())
	edu := analyzeEducation(resume, job)
	dom := analyzeDomain(resume.Text(), job.Text(), a.domain)

	breakdown := ScoreBreakdown{
		Skills:     match.Percentage,
		Experience: exp.Score,
		Education:  edu.Score,
		Domain:     dom.Score,
	}
	baseline := breakdown.Weighted(scoreWeights)
	if math.IsNaN(baseline) || math.IsInf(baseline, 0) {
		return nil, fmt.Errorf("analyze: non-finite baseline from breakdown %+v", breakdown)
	}

	return &Analysis{
		Breakdown:     breakdown,
		BaselineScore: baseline,
		SkillsMatch:   match,
		Experience:    exp,
		Education:     edu,
		Domain:        dom,
	}, nil
}
