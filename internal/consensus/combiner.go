// Package consensus merges independent model evaluations into a single
// verdict with an agreement measure. The deterministic baseline always
// participates as the fallback, so a request survives every backend failing.
package consensus

import (
	"math"

	"github.com/resumeroast/resumeroast/internal/evaluator"
	"github.com/resumeroast/resumeroast/internal/structured"
)

// Methodology tags reported in the transparency block.
const (
	MethodologyDual       = "dual-model"
	MethodologySingle     = "single-model"
	MethodologyStructured = "structured-only"
)

// ConfidenceWeights maps a model's reported confidence to its weight in the
// combined score.
var ConfidenceWeights = map[string]float64{
	"High":   0.9,
	"Medium": 0.6,
	"Low":    0.3,
}

const defaultConfidenceWeight = 0.6

func confidenceWeight(level string) float64 {
	if w, ok := ConfidenceWeights[level]; ok {
		return w
	}
	return defaultConfidenceWeight
}

// Agreement quantifies how closely the model scores cluster. StdDev is the
// population standard deviation of the raw scores; CV divides it by the mean.
type Agreement struct {
	Mean     float64 `json:"mean_score"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"score_variance"`
	CV       float64 `json:"coefficient_of_variation"`
	Level    string  `json:"consensus_level"`
}

// Result is the merged verdict of the evaluations that survived validation.
// Primary points at the highest-confidence evaluation and feeds the
// qualitative feedback; it is nil on the structured-only path.
type Result struct {
	Methodology string
	Score       float64
	Confidence  string
	Breakdown   structured.ScoreBreakdown
	Agreement   *Agreement
	Primary     *evaluator.ModelEvaluation
	Evaluations []*evaluator.ModelEvaluation
}

// Combine merges the surviving evaluations with the deterministic baseline.
func Combine(evals []*evaluator.ModelEvaluation, analysis *structured.Analysis) *Result {
	switch len(evals) {
	case 0:
		return &Result{
			Methodology: MethodologyStructured,
			Score:       analysis.BaselineScore,
			Confidence:  "Low",
			Breakdown:   analysis.Breakdown,
		}
	case 1:
		eval := evals[0]
		return &Result{
			Methodology: MethodologySingle,
			Score:       eval.OverallScore,
			Confidence:  eval.Confidence,
			Breakdown:   eval.Breakdown,
			Primary:     eval,
			Evaluations: evals,
		}
	}

	weights := make([]float64, len(evals))
	scores := make([]float64, len(evals))
	var weightSum, weighted float64
	for i, eval := range evals {
		w := confidenceWeight(eval.Confidence)
		weights[i] = w
		scores[i] = eval.OverallScore
		weightSum += w
		weighted += eval.OverallScore * w
	}

	agreement := measureAgreement(scores)

	return &Result{
		Methodology: MethodologyDual,
		Score:       round2(weighted / weightSum),
		Confidence:  agreementConfidence(agreement.Level),
		Breakdown:   mergeBreakdowns(evals, weights, weightSum),
		Agreement:   agreement,
		Primary:     primaryEvaluation(evals),
		Evaluations: evals,
	}
}

func measureAgreement(scores []float64) *Agreement {
	n := float64(len(scores))

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / n

	var sq float64
	for _, s := range scores {
		d := s - mean
		sq += d * d
	}
	variance := sq / n
	stddev := math.Sqrt(variance)

	var cv float64
	if mean > 0 {
		cv = stddev / mean
	}

	return &Agreement{
		Mean:     round2(mean),
		StdDev:   round2(stddev),
		Variance: round2(variance),
		CV:       round4(cv),
		Level:    agreementLevel(cv),
	}
}

func agreementLevel(cv float64) string {
	switch {
	case cv <= 0.10:
		return "Very High"
	case cv <= 0.20:
		return "High"
	case cv <= 0.35:
		return "Medium"
	case cv <= 0.50:
		return "Low"
	default:
		return "Very Low"
	}
}

func agreementConfidence(level string) string {
	switch level {
	case "Very High", "High":
		return "High"
	case "Medium":
		return "Medium"
	default:
		return "Low"
	}
}

func mergeBreakdowns(evals []*evaluator.ModelEvaluation, weights []float64, weightSum float64) structured.ScoreBreakdown {
	var out structured.ScoreBreakdown
	for i, eval := range evals {
		w := weights[i]
		out.Skills += eval.Breakdown.Skills * w
		out.Experience += eval.Breakdown.Experience * w
		out.Education += eval.Breakdown.Education * w
		out.Domain += eval.Breakdown.Domain * w
	}
	out.Skills = round2(out.Skills / weightSum)
	out.Experience = round2(out.Experience / weightSum)
	out.Education = round2(out.Education / weightSum)
	out.Domain = round2(out.Domain / weightSum)
	return out
}

// primaryEvaluation picks the evaluation whose confidence weighs most; ties
// keep the earlier backend.
func primaryEvaluation(evals []*evaluator.ModelEvaluation) *evaluator.ModelEvaluation {
	best := evals[0]
	for _, eval := range evals[1:] {
		if confidenceWeight(eval.Confidence) > confidenceWeight(best.Confidence) {
			best = eval
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
