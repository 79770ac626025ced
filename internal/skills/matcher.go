// Package skills normalizes and matches skill terms between a resume and a
// job posting. Matching tries exact comparison on canonical forms first, then
// fuzzy string similarity, then an optional semantic pass over a TF-IDF
// vector space built per request. The matcher never fails the caller.
package skills

import (
	"sort"
	"strings"
)

const (
	// DefaultFuzzyThreshold is the minimum Ratio for a fuzzy match.
	DefaultFuzzyThreshold = 0.75
	// DefaultSemanticThreshold is the minimum cosine similarity for a
	// semantic match.
	DefaultSemanticThreshold = 0.30
)

// Match methods reported in per-pair detail.
const (
	MethodExact    = "exact"
	MethodFuzzy    = "fuzzy"
	MethodSemantic = "semantic"
)

// Matcher compares two skill collections. A Matcher carries only thresholds
// and is safe for concurrent use.
type Matcher struct {
	FuzzyThreshold    float64
	SemanticThreshold float64
	DisableSemantic   bool
}

func NewMatcher() *Matcher {
	return &Matcher{
		FuzzyThreshold:    DefaultFuzzyThreshold,
		SemanticThreshold: DefaultSemanticThreshold,
	}
}

// Pair records how a single required skill was satisfied.
type Pair struct {
	JobSkill    string  `json:"job_skill"`
	ResumeSkill string  `json:"resume_skill"`
	Method      string  `json:"method"`
	Similarity  float64 `json:"similarity"`
}

// MatchResult summarizes a comparison of resume skills against job
// requirements. Matched and Missing carry the job's original spelling,
// Extra carries the resume's.
type MatchResult struct {
	Matched    []string `json:"matched"`
	Missing    []string `json:"missing"`
	Extra      []string `json:"extra"`
	Percentage float64  `json:"match_percentage"`
	Pairs      []Pair   `json:"pairs,omitempty"`
}

type skillEntry struct {
	display string
	canon   string
}

// Match compares the resume skills against the job's required skills.
// An empty requirement list yields 100 percent.
func (m *Matcher) Match(resumeSkills, jobSkills []string) *MatchResult {
	resume := dedupe(resumeSkills)
	job := dedupe(jobSkills)

	result := &MatchResult{
		Matched: []string{},
		Missing: []string{},
		Extra:   []string{},
	}

	if len(job) == 0 {
		result.Percentage = 100
		for _, r := range resume {
			result.Extra = append(result.Extra, r.display)
		}
		return result
	}

	used := make(map[string]bool, len(resume))
	var unresolved []int

	for idx, j := range job {
		if r, ok := findExact(resume, j.canon); ok {
			used[r.canon] = true
			result.Matched = append(result.Matched, j.display)
			result.Pairs = append(result.Pairs, Pair{
				JobSkill:    j.display,
				ResumeSkill: r.display,
				Method:      MethodExact,
				Similarity:  1,
			})
			continue
		}

		if r, sim, ok := m.bestFuzzy(resume, j.canon); ok {
			used[r.canon] = true
			result.Matched = append(result.Matched, j.display)
			result.Pairs = append(result.Pairs, Pair{
				JobSkill:    j.display,
				ResumeSkill: r.display,
				Method:      MethodFuzzy,
				Similarity:  sim,
			})
			continue
		}

		unresolved = append(unresolved, idx)
	}

	if len(unresolved) > 0 && !m.DisableSemantic {
		unresolved = m.matchSemantic(resume, job, unresolved, used, result)
	}

	for _, idx := range unresolved {
		result.Missing = append(result.Missing, job[idx].display)
	}

	for _, r := range resume {
		if !used[r.canon] {
			result.Extra = append(result.Extra, r.display)
		}
	}

	result.Percentage = float64(len(result.Matched)) / float64(len(job)) * 100
	return result
}

func (m *Matcher) bestFuzzy(resume []skillEntry, jobCanon string) (skillEntry, float64, bool) {
	var best skillEntry
	bestSim := 0.0

	for _, r := range resume {
		if sim := Ratio(jobCanon, r.canon); sim > bestSim {
			best, bestSim = r, sim
		}
	}

	if bestSim >= m.FuzzyThreshold {
		return best, bestSim, true
	}
	return skillEntry{}, 0, false
}

// matchSemantic resolves remaining job skills through the TF-IDF space and
// returns the indexes that stayed unmatched. Vector construction failures
// skip the step entirely.
func (m *Matcher) matchSemantic(resume, job []skillEntry, unresolved []int, used map[string]bool, result *MatchResult) []int {
	docs := make([]string, 0, len(resume)+len(job))
	for _, r := range resume {
		docs = append(docs, r.canon)
	}
	for _, j := range job {
		docs = append(docs, j.canon)
	}

	space, err := newVectorSpace(docs)
	if err != nil {
		return unresolved
	}

	resumeVecs := make([][]float64, len(resume))
	for i, r := range resume {
		resumeVecs[i] = space.vectorize(r.canon)
	}

	var missing []int
	for _, idx := range unresolved {
		jobVec := space.vectorize(job[idx].canon)

		best := -1
		bestSim := 0.0
		for i := range resume {
			if sim := cosine(jobVec, resumeVecs[i]); sim > bestSim {
				best, bestSim = i, sim
			}
		}

		if best < 0 || bestSim < m.SemanticThreshold {
			missing = append(missing, idx)
			continue
		}

		used[resume[best].canon] = true
		result.Matched = append(result.Matched, job[idx].display)
		result.Pairs = append(result.Pairs, Pair{
			JobSkill:    job[idx].display,
			ResumeSkill: resume[best].display,
			Method:      MethodSemantic,
			Similarity:  bestSim,
		})
	}

	return missing
}

func findExact(entries []skillEntry, canon string) (skillEntry, bool) {
	for _, e := range entries {
		if e.canon == canon {
			return e, true
		}
	}
	return skillEntry{}, false
}

// dedupe canonicalizes the raw skill names, drops empties, and keeps the
// first spelling seen for each canonical term.
func dedupe(raw []string) []skillEntry {
	seen := make(map[string]bool, len(raw))
	entries := make([]skillEntry, 0, len(raw))

	for _, name := range raw {
		canon := CanonicalName(name)
		if canon == "" || seen[canon] {
			continue
		}
		seen[canon] = true
		entries = append(entries, skillEntry{display: strings.TrimSpace(name), canon: canon})
	}

	return entries
}

// SortedCopy returns a sorted copy of the list. Result lists preserve input
// order by default; reports that want stable alphabetical output sort last.
func SortedCopy(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	sort.Strings(out)
	return out
}
