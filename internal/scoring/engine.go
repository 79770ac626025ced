// Package scoring runs the full pipeline for one request: validate inputs,
// compute the deterministic structured analysis, fan out to the configured
// model evaluators, combine what survived, and assemble the result with its
// transparency report. The structured baseline is the terminal fallback, so
// a request fails only when its inputs are unusable or the deterministic
// pipeline itself breaks.
package scoring

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resumeroast/resumeroast/internal/consensus"
	"github.com/resumeroast/resumeroast/internal/evaluator"
	"github.com/resumeroast/resumeroast/internal/feedback"
	"github.com/resumeroast/resumeroast/internal/logger"
	"github.com/resumeroast/resumeroast/internal/metrics"
	"github.com/resumeroast/resumeroast/internal/profile"
	"github.com/resumeroast/resumeroast/internal/structured"
)

const (
	defaultEvaluatorTimeout = 45 * time.Second
)

var newRequestID = uuid.NewString

// Config carries the per-engine knobs. The weight table is deliberately not
// here: weights are process-wide constants, not configuration.
type Config struct {
	// EvaluatorTimeout bounds each model call separately; the combiner
	// proceeds with whatever completed in time.
	EvaluatorTimeout time.Duration
	// CommentBonusCap tightens the built-in comment bonus ceiling. Values
	// at or above feedback.MaxCommentBonus leave the ceiling unchanged.
	CommentBonusCap float64
}

// Options carries the per-request extras.
type Options struct {
	Comments string
}

// Engine scores resumes against job postings. It carries no per-request
// state and is safe for concurrent use.
type Engine struct {
	analyzer   *structured.Analyzer
	evaluators []*evaluator.Evaluator
	logger     *zap.Logger
	timeout    time.Duration
	bonusCap   float64
}

func NewEngine(evaluators []*evaluator.Evaluator, log *zap.Logger, cfg Config) *Engine {
	timeout := cfg.EvaluatorTimeout
	if timeout <= 0 {
		timeout = defaultEvaluatorTimeout
	}

	bonusCap := cfg.CommentBonusCap
	if bonusCap <= 0 || bonusCap > feedback.MaxCommentBonus {
		bonusCap = feedback.MaxCommentBonus
	}

	return &Engine{
		analyzer:   structured.NewAnalyzer(),
		evaluators: evaluators,
		logger:     log,
		timeout:    timeout,
		bonusCap:   bonusCap,
	}
}

// Evaluators reports how many model evaluators are configured.
func (e *Engine) Evaluators() int { return len(e.evaluators) }

// Score runs one scoring request. Model evaluator failures degrade the
// methodology instead of failing the call; only invalid inputs or a fault in
// the deterministic pipeline return an error.
func (e *Engine) Score(ctx context.Context, resume *profile.ResumeProfile, job *profile.JobProfile, opts Options) (*Result, error) {
	if err := validateInputs(resume, job); err != nil {
		return nil, err
	}

	start := time.Now()
	requestID := newRequestID()
	log := logger.WithRequestID(e.logger, requestID)

	log.Info("scoring started",
		zap.String("job_title", job.Title),
		zap.Int("configured_evaluators", len(e.evaluators)),
	)

	analysis, err := e.analyzer.Analyze(resume, job)
	if err != nil {
		return nil, &ComputationError{Stage: "structured analysis", Err: err}
	}

	log.Debug("structured analysis complete",
		zap.Float64("baseline_score", analysis.BaselineScore),
		zap.Float64("skills_pct", analysis.Breakdown.Skills),
		zap.Float64("relevant_years", analysis.Experience.RelevantYears),
	)

	evals, failures := e.runEvaluators(ctx, evaluator.Input{
		Resume:   resume,
		Job:      job,
		Analysis: analysis,
	}, log)

	combined := consensus.Combine(evals, analysis)
	fb := feedback.Synthesize(combined, analysis)

	finalScore := combined.Score
	var commentImpact *feedback.CommentAnalysis
	if strings.TrimSpace(opts.Comments) != "" {
		commentImpact = feedback.AnalyzeComments(opts.Comments, job)
		if commentImpact != nil {
			bonus := math.Min(commentImpact.Bonus, e.bonusCap)
			commentImpact.Bonus = bonus
			finalScore += bonus
		}
	}
	finalScore = clamp(round2(finalScore))

	category := evaluator.CategoryFor(finalScore)
	if combined.Primary != nil && !strings.EqualFold(combined.Primary.MatchCategory, category) {
		log.Debug("model match category differs from derived category",
			zap.String("model_category", combined.Primary.MatchCategory),
			zap.String("derived_category", category),
		)
	}

	result := e.assemble(requestID, start, analysis, combined, fb, commentImpact, failures, finalScore, category)

	metrics.ScoringsCompleted.WithLabelValues(combined.Methodology).Inc()
	log.Info("scoring complete",
		zap.Float64("final_score", finalScore),
		zap.String("methodology", combined.Methodology),
		zap.String("match_category", category),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

type evalOutcome struct {
	idx  int
	eval *evaluator.ModelEvaluation
	err  error
}

// runEvaluators fans the request out to every configured evaluator, each
// under its own timeout, and collects what survived. The returned
// evaluations keep the configured backend order.
func (e *Engine) runEvaluators(ctx context.Context, in evaluator.Input, log *zap.Logger) ([]*evaluator.ModelEvaluation, []EvaluatorFailure) {
	if len(e.evaluators) == 0 {
		return nil, nil
	}

	outcomes := make(chan evalOutcome, len(e.evaluators))
	for i, ev := range e.evaluators {
		go func(idx int, ev *evaluator.Evaluator) {
			callCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			res, err := ev.Evaluate(callCtx, in)
			outcomes <- evalOutcome{idx: idx, eval: res, err: err}
		}(i, ev)
	}

	ordered := make([]*evaluator.ModelEvaluation, len(e.evaluators))
	var failures []EvaluatorFailure
	for range e.evaluators {
		out := <-outcomes
		if out.err != nil {
			failure := describeFailure(e.evaluators[out.idx].Backend(), out.err)
			failures = append(failures, failure)
			log.Warn("model evaluation dropped",
				zap.String("backend", failure.Backend),
				zap.String("reason", failure.Reason),
				zap.String("detail", failure.Detail),
			)
			continue
		}

		ordered[out.idx] = out.eval
		log.Info("model evaluation complete",
			zap.String("backend", out.eval.Backend),
			zap.String("model", out.eval.Model),
			zap.Float64("score", out.eval.OverallScore),
			zap.String("confidence", out.eval.Confidence),
			zap.Int64("latency_ms", out.eval.Usage.LatencyMS),
		)
	}

	evals := make([]*evaluator.ModelEvaluation, 0, len(ordered))
	for _, eval := range ordered {
		if eval != nil {
			evals = append(evals, eval)
		}
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].Backend < failures[j].Backend })

	return evals, failures
}

func describeFailure(backend string, err error) EvaluatorFailure {
	var evalErr *evaluator.Error
	if errors.As(err, &evalErr) {
		detail := ""
		if evalErr.Err != nil {
			detail = evalErr.Err.Error()
		}
		return EvaluatorFailure{
			Backend: evalErr.Backend,
			Model:   evalErr.Model,
			Reason:  evalErr.Reason,
			Detail:  detail,
		}
	}
	return EvaluatorFailure{Backend: backend, Reason: evaluator.ReasonAPI, Detail: err.Error()}
}

func (e *Engine) assemble(
	requestID string,
	start time.Time,
	analysis *structured.Analysis,
	combined *consensus.Result,
	fb *feedback.Feedback,
	commentImpact *feedback.CommentAnalysis,
	failures []EvaluatorFailure,
	finalScore float64,
	category string,
) *Result {
	components := ScoreComponents{
		Baseline: round2(analysis.BaselineScore),
		Final:    finalScore,
	}
	if commentImpact != nil {
		components.CommentBonus = commentImpact.Bonus
	}

	var comparison *AIComparison
	var modelLines []ModelProcessing
	if len(combined.Evaluations) > 0 || len(failures) > 0 {
		comparison = &AIComparison{
			Agreement: combined.Agreement,
			Failures:  failures,
		}
		if len(combined.Evaluations) > 0 {
			comparison.ModelScores = make(map[string]float64, len(combined.Evaluations))
			components.ModelScores = comparison.ModelScores
			for _, eval := range combined.Evaluations {
				comparison.ModelScores[eval.Backend] = eval.OverallScore
				modelLines = append(modelLines, ModelProcessing{
					Backend: eval.Backend,
					Model:   eval.Model,
					Usage:   eval.Usage,
				})
			}
		}
	}

	return &Result{
		FinalScore:      finalScore,
		ConfidenceLevel: combined.Confidence,
		Breakdown:       combined.Breakdown,
		MatchCategory:   category,
		Summary:         fb.Summary,
		Strengths:       fb.Strengths,
		Concerns:        fb.Concerns,
		MissingSkills:   fb.MissingSkills,
		MatchingSkills:  fb.MatchingSkills,
		Recommendations: fb.Recommendations,
		RiskFactors:     fb.RiskFactors,
		Structured:      analysis,
		AIComparison:    comparison,
		CommentImpact:   commentImpact,
		Transparency: Transparency{
			RequestID:       requestID,
			Methodology:     combined.Methodology,
			Weights:         structured.ScoreWeights(),
			ScoreLegend:     evaluator.ScoreLegend(),
			Interpretation:  evaluator.MeaningFor(finalScore),
			ScoreComponents: components,
			Processing: ProcessingInfo{
				StartedAt:  start.UTC(),
				DurationMS: time.Since(start).Milliseconds(),
				Models:     modelLines,
			},
		},
	}
}

func validateInputs(resume *profile.ResumeProfile, job *profile.JobProfile) error {
	switch {
	case resume == nil:
		return &InputError{Field: "resume", Reason: "profile is required"}
	case len(resume.Skills) == 0 && len(resume.Experience) == 0 && strings.TrimSpace(resume.RawText) == "":
		return &InputError{Field: "resume", Reason: "profile carries no skills, experience or text"}
	}

	switch {
	case job == nil:
		return &InputError{Field: "job", Reason: "profile is required"}
	case strings.TrimSpace(job.Title) == "" && len(job.Skills) == 0 && strings.TrimSpace(job.Description) == "":
		return &InputError{Field: "job", Reason: "profile carries no title, skills or description"}
	}

	return nil
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
