// Package evaluator runs the shared scoring prompt against one model backend
// and turns the reply into a validated evaluation. Backends plug in through
// the Client interface; the prompt text, the response schema and the
// normalization rules are shared so the consensus layer can compare
// evaluations field by field.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/resumeroast/resumeroast/internal/logger"
	"github.com/resumeroast/resumeroast/internal/metrics"
	"github.com/resumeroast/resumeroast/internal/profile"
	"github.com/resumeroast/resumeroast/internal/structured"
)

// Client is the transport seam for one model backend. Implementations send
// the rendered prompt and return the raw text reply plus usage metadata.
type Client interface {
	Evaluate(ctx context.Context, prompt string) (*Reply, error)
}

// Reply is a raw backend response before validation.
type Reply struct {
	Text             string
	Model            string
	PromptTokens     int32
	CompletionTokens int32
}

// Input carries everything the prompt grounds the model on. The structured
// analysis is computed once per request and shared across backends.
type Input struct {
	Resume   *profile.ResumeProfile
	Job      *profile.JobProfile
	Analysis *structured.Analysis
}

// ModelEvaluation is one backend's validated verdict.
type ModelEvaluation struct {
	Backend         string                    `json:"backend"`
	Model           string                    `json:"model"`
	OverallScore    float64                   `json:"overall_score"`
	Confidence      string                    `json:"confidence_level"`
	Breakdown       structured.ScoreBreakdown `json:"score_breakdown"`
	MatchCategory   string                    `json:"match_category"`
	Summary         string                    `json:"summary"`
	Strengths       []string                  `json:"strengths,omitempty"`
	Concerns        []string                  `json:"concerns,omitempty"`
	MissingSkills   []string                  `json:"missing_skills,omitempty"`
	MatchingSkills  []string                  `json:"matching_skills,omitempty"`
	Recommendations []string                  `json:"recommendations,omitempty"`
	RiskFactors     []string                  `json:"risk_factors,omitempty"`
	Usage           Usage                     `json:"usage"`
}

// Usage records cost and timing metadata for the transparency report.
type Usage struct {
	PromptTokens     int32     `json:"prompt_tokens"`
	CompletionTokens int32     `json:"completion_tokens"`
	LatencyMS        int64     `json:"latency_ms"`
	Timestamp        time.Time `json:"timestamp"`
}

const defaultMaxLogLength = 200

// Evaluator drives a single backend.
type Evaluator struct {
	backend   string
	client    Client
	logger    *zap.Logger
	maxLogLen int
}

func New(backend string, client Client, log *zap.Logger, maxLogLength int) *Evaluator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Evaluator{
		backend:   backend,
		client:    client,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Backend reports which backend this evaluator drives.
func (e *Evaluator) Backend() string { return e.backend }

// Evaluate renders the prompt, calls the backend and validates the reply.
// Failures come back as *Error so callers can record the reason and move on
// without the evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) (*ModelEvaluation, error) {
	if in.Resume == nil || in.Job == nil || in.Analysis == nil {
		return nil, fmt.Errorf("evaluate: resume, job and analysis are required")
	}

	prompt := BuildPrompt(in)

	e.logger.Debug("model evaluation request",
		zap.String("backend", e.backend),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	start := time.Now()
	reply, err := e.client.Evaluate(ctx, prompt)
	elapsed := time.Since(start)
	metrics.EvaluatorLatency.WithLabelValues(e.backend).Observe(elapsed.Seconds())

	if err != nil {
		reason := ReasonAPI
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			reason = ReasonTimeout
		}
		metrics.EvaluatorFailures.WithLabelValues(e.backend, reason).Inc()
		return nil, &Error{Backend: e.backend, Reason: reason, Err: err}
	}

	metrics.EvaluatorTokens.WithLabelValues(e.backend, "prompt").Add(float64(reply.PromptTokens))
	metrics.EvaluatorTokens.WithLabelValues(e.backend, "completion").Add(float64(reply.CompletionTokens))

	e.logger.Debug("model evaluation response",
		zap.String("backend", e.backend),
		zap.String("model", reply.Model),
		zap.Int("response_length", utf8.RuneCountInString(reply.Text)),
		zap.String("response_preview", logger.TruncateForLog(reply.Text, e.maxLogLen)),
	)

	eval, err := parseEvaluation(reply.Text)
	if err != nil {
		reason := ReasonParse
		if errors.Is(err, errSchema) {
			reason = ReasonSchema
		}
		metrics.EvaluatorFailures.WithLabelValues(e.backend, reason).Inc()
		return nil, &Error{Backend: e.backend, Model: reply.Model, Reason: reason, Err: err}
	}

	eval.Backend = e.backend
	eval.Model = reply.Model
	eval.Usage = Usage{
		PromptTokens:     reply.PromptTokens,
		CompletionTokens: reply.CompletionTokens,
		LatencyMS:        elapsed.Milliseconds(),
		Timestamp:        time.Now().UTC(),
	}

	return eval, nil
}
