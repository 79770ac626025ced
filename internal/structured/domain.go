package structured

import "sort"

// DomainConfig tunes the keyword-overlap scorer. Only the default instance
// is wired; the knobs exist so the overlap measure stays separately tunable
// from the rest of the engine.
type DomainConfig struct {
	MinTokenLength int
	MaxShared      int
}

func DefaultDomainConfig() DomainConfig {
	return DomainConfig{MinTokenLength: 3, MaxShared: 12}
}

// DomainAnalysis reports how much of the posting's vocabulary the resume
// covers.
type DomainAnalysis struct {
	SharedKeywords []string `json:"shared_keywords,omitempty"`
	JobKeywords    int      `json:"job_keywords"`
	Score          float64  `json:"score"`
}

// analyzeDomain scores resume text against job text as the covered share
// of the posting's keywords.
func analyzeDomain(resumeText, jobText string, cfg DomainConfig) DomainAnalysis {
	jobKW := keywordSet(jobText, cfg.MinTokenLength)
	if len(jobKW) == 0 {
		return DomainAnalysis{Score: 0}
	}
	resumeKW := keywordSet(resumeText, cfg.MinTokenLength)

	var shared []string
	for tok := range jobKW {
		if _, ok := resumeKW[tok]; ok {
			shared = append(shared, tok)
		}
	}
	sort.Strings(shared)

	score := float64(len(shared)) / float64(len(jobKW)) * 100

	reported := shared
	if cfg.MaxShared > 0 && len(reported) > cfg.MaxShared {
		reported = reported[:cfg.MaxShared]
	}
	return DomainAnalysis{
		SharedKeywords: reported,
		JobKeywords:    len(jobKW),
		Score:          score,
	}
}
