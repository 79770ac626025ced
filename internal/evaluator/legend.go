package evaluator

// ScoreRange is one band of the score interpretation legend. The same bands
// appear in the prompt, fill in a missing match_category and are echoed in
// the transparency report.
type ScoreRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Category string  `json:"category"`
	Meaning  string  `json:"meaning"`
}

var scoreLegend = []ScoreRange{
	{Min: 90, Max: 100, Category: "Excellent Match", Meaning: "Strong candidate for the role"},
	{Min: 75, Max: 89, Category: "Good Match", Meaning: "Meets most requirements with minor gaps"},
	{Min: 60, Max: 74, Category: "Moderate Match", Meaning: "Some relevant experience, needs development"},
	{Min: 40, Max: 59, Category: "Weak Match", Meaning: "Significant gaps in required qualifications"},
	{Min: 0, Max: 39, Category: "Poor Match", Meaning: "Does not meet basic requirements"},
}

// ScoreLegend returns the interpretation bands ordered best to worst.
func ScoreLegend() []ScoreRange {
	out := make([]ScoreRange, len(scoreLegend))
	copy(out, scoreLegend)
	return out
}

// CategoryFor maps a 0-100 score onto its legend category.
func CategoryFor(score float64) string {
	for _, r := range scoreLegend {
		if score >= r.Min {
			return r.Category
		}
	}
	return scoreLegend[len(scoreLegend)-1].Category
}

// MeaningFor maps a 0-100 score onto the legend's interpretation line.
func MeaningFor(score float64) string {
	for _, r := range scoreLegend {
		if score >= r.Min {
			return r.Meaning
		}
	}
	return scoreLegend[len(scoreLegend)-1].Meaning
}
