package evaluator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"

	"github.com/resumeroast/resumeroast/internal/structured"
)

var errSchema = errors.New("reply failed schema validation")

// evaluationSchema is deliberately lenient: only the score and the summary
// are required, and scores may arrive as strings. Everything else gets a
// documented default during normalization.
var evaluationSchema = mustSchema(map[string]any{
	"type":     "object",
	"required": []any{"overall_score", "summary"},
	"properties": map[string]any{
		"overall_score":    map[string]any{"type": []any{"number", "string"}},
		"confidence_level": map[string]any{"type": "string"},
		"score_breakdown":  map[string]any{"type": "object"},
		"match_category":   map[string]any{"type": "string"},
		"summary":          map[string]any{"type": "string"},
		"strengths":        map[string]any{"type": "array"},
		"concerns":         map[string]any{"type": "array"},
		"missing_skills":   map[string]any{"type": "array"},
		"matching_skills":  map[string]any{"type": "array"},
		"recommendations":  map[string]any{"type": "array"},
		"risk_factors":     map[string]any{"type": "array"},
	},
})

func mustSchema(def map[string]any) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(err)
	}
	return schema
}

type wireEvaluation struct {
	OverallScore float64 `json:"overall_score"`
	Confidence   string  `json:"confidence_level"`
	Breakdown    struct {
		Skills     float64 `json:"skills_score"`
		Experience float64 `json:"experience_score"`
		Education  float64 `json:"education_score"`
		Domain     float64 `json:"domain_score"`
	} `json:"score_breakdown"`
	MatchCategory   string   `json:"match_category"`
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Concerns        []string `json:"concerns"`
	MissingSkills   []string `json:"missing_skills"`
	MatchingSkills  []string `json:"matching_skills"`
	Recommendations []string `json:"recommendations"`
	RiskFactors     []string `json:"risk_factors"`
}

// parseEvaluation turns a raw model reply into a normalized evaluation.
// Scores clamp to [0,100]. A missing confidence_level becomes "Medium" and a
// missing match_category is derived from the overall score via the legend.
func parseEvaluation(raw string) (*ModelEvaluation, error) {
	jsonText, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	result, err := evaluationSchema.Validate(gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return nil, fmt.Errorf("parse model reply: %w", err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", errSchema, strings.Join(issues, "; "))
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil, fmt.Errorf("parse model reply: %w", err)
	}

	var wire wireEvaluation
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &wire,
	})
	if err != nil {
		return nil, fmt.Errorf("build reply decoder: %w", err)
	}
	if err := dec.Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errSchema, err)
	}

	return wire.normalize()
}

func (w *wireEvaluation) normalize() (*ModelEvaluation, error) {
	summary := strings.TrimSpace(w.Summary)
	if summary == "" {
		return nil, fmt.Errorf("%w: summary is empty", errSchema)
	}

	eval := &ModelEvaluation{
		OverallScore: clampScore(w.OverallScore),
		Confidence:   normalizeConfidence(w.Confidence),
		Breakdown: structured.ScoreBreakdown{
			Skills:     clampScore(w.Breakdown.Skills),
			Experience: clampScore(w.Breakdown.Experience),
			Education:  clampScore(w.Breakdown.Education),
			Domain:     clampScore(w.Breakdown.Domain),
		},
		MatchCategory:   strings.TrimSpace(w.MatchCategory),
		Summary:         summary,
		Strengths:       cleanList(w.Strengths),
		Concerns:        cleanList(w.Concerns),
		MissingSkills:   cleanList(w.MissingSkills),
		MatchingSkills:  cleanList(w.MatchingSkills),
		Recommendations: cleanList(w.Recommendations),
		RiskFactors:     cleanList(w.RiskFactors),
	}

	if eval.MatchCategory == "" {
		eval.MatchCategory = CategoryFor(eval.OverallScore)
	}

	return eval, nil
}

// extractJSON returns the outermost JSON object in raw. Models wrap replies
// in markdown fences or prose despite the prompt asking for bare JSON.
func extractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return "", fmt.Errorf("no json object in model reply")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("unterminated json object in model reply")
}

func clampScore(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func normalizeConfidence(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return "High"
	case "low":
		return "Low"
	default:
		return "Medium"
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
