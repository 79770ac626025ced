package scoring

import (
	"encoding/json"
	"os"
	"time"

	"github.com/resumeroast/resumeroast/internal/consensus"
	"github.com/resumeroast/resumeroast/internal/evaluator"
	"github.com/resumeroast/resumeroast/internal/feedback"
	"github.com/resumeroast/resumeroast/internal/structured"
)

// Result is the complete verdict for one scoring request. It marshals to the
// JSON shape consumed by callers; every list field is non-nil so the shape
// stays stable across analysis paths.
type Result struct {
	FinalScore      float64                   `json:"final_score"`
	ConfidenceLevel string                    `json:"confidence_level"`
	Breakdown       structured.ScoreBreakdown `json:"score_breakdown"`
	MatchCategory   string                    `json:"match_category"`
	Summary         string                    `json:"summary"`
	Strengths       []string                  `json:"strengths"`
	Concerns        []string                  `json:"concerns"`
	MissingSkills   []string                  `json:"missing_skills"`
	MatchingSkills  []string                  `json:"matching_skills"`
	Recommendations []string                  `json:"recommendations"`
	RiskFactors     []string                  `json:"risk_factors,omitempty"`
	Structured      *structured.Analysis      `json:"structured_analysis"`
	AIComparison    *AIComparison             `json:"ai_comparison,omitempty"`
	CommentImpact   *feedback.CommentAnalysis `json:"comment_impact,omitempty"`
	Transparency    Transparency              `json:"transparency"`
}

// AIComparison reports how the model evaluations relate to each other. It is
// present whenever at least one evaluator ran, so failures stay auditable
// even when the request fell back to the structured baseline.
type AIComparison struct {
	ModelScores map[string]float64   `json:"model_scores,omitempty"`
	Agreement   *consensus.Agreement `json:"agreement_analysis,omitempty"`
	Failures    []EvaluatorFailure   `json:"failures,omitempty"`
}

// EvaluatorFailure records one model evaluation that was dropped from the
// consensus, downgraded to a fact rather than surfaced as an error.
type EvaluatorFailure struct {
	Backend string `json:"backend"`
	Model   string `json:"model,omitempty"`
	Reason  string `json:"reason"`
	Detail  string `json:"detail,omitempty"`
}

// Transparency explains how the final score came to be: which path executed,
// the fixed weight table, the interpretation legend, and per-model cost.
type Transparency struct {
	RequestID       string                 `json:"request_id"`
	Methodology     string                 `json:"methodology"`
	Weights         structured.Weights     `json:"weight_distribution"`
	ScoreLegend     []evaluator.ScoreRange `json:"score_legend"`
	Interpretation  string                 `json:"score_interpretation"`
	ScoreComponents ScoreComponents        `json:"score_components"`
	Processing      ProcessingInfo         `json:"processing"`
}

// ScoreComponents carries every raw score that fed the final number.
type ScoreComponents struct {
	Baseline     float64            `json:"baseline_score"`
	ModelScores  map[string]float64 `json:"model_scores,omitempty"`
	CommentBonus float64            `json:"comment_bonus,omitempty"`
	Final        float64            `json:"final_score"`
}

// ProcessingInfo records wall-clock timing for the request and token usage
// per model evaluation.
type ProcessingInfo struct {
	StartedAt  time.Time         `json:"started_at"`
	DurationMS int64             `json:"duration_ms"`
	Models     []ModelProcessing `json:"models,omitempty"`
}

// ModelProcessing is the cost line of one successful model evaluation.
type ModelProcessing struct {
	Backend string `json:"backend"`
	Model   string `json:"model"`
	evaluator.Usage
}

// Path reports which analysis path produced the result.
func (r *Result) Path() string {
	return r.Transparency.Methodology
}

// DumpToTmpFile writes the result to a temporary JSON file and returns its
// name.
func (r *Result) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "scoring_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
