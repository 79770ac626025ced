package profile

import (
	"regexp"
	"strconv"
	"strings"
)

// levelPatterns detect the required experience level. Checked in order;
// the first pattern that hits anywhere in the posting wins.
var levelPatterns = []struct {
	level string
	re    *regexp.Regexp
}{
	{"entry", regexp.MustCompile(`(?i)(entry|junior|0-2|1-2|1-3)`)},
	{"mid", regexp.MustCompile(`(?i)(mid|intermediate|3-5|4-6)`)},
	{"senior", regexp.MustCompile(`(?i)(senior|lead|5\+|6\+|7\+)`)},
}

var (
	yearsRequiredRe = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*(?:years?|yrs?)`)
	degreeAskRe     = regexp.MustCompile(`(?i)\b(phd|doctorate|master(?:'?s)?|mba|bachelor(?:'?s)?|associate(?:'?s)?)\b`)
	degreeFieldRe   = regexp.MustCompile(`(?i)\b(?:degree|bs|ba|bsc|msc|ms|phd)\b[^.\n]*?\bin\b\s+([A-Za-z][A-Za-z &/]+)`)
)

// ParseJob builds a JobProfile from plain posting text. The first line is
// taken as the title, required skills come from a lexicon scan, and the
// experience and education requirements from keyword patterns.
func ParseJob(text string) *JobProfile {
	p := &JobProfile{
		Title:       firstLine(text),
		Description: text,
	}

	for _, name := range ScanSkills(text) {
		p.Skills = append(p.Skills, SkillRecord{Name: name})
	}

	for _, lp := range levelPatterns {
		if lp.re.MatchString(text) {
			p.Experience.Level = lp.level
			break
		}
	}
	if m := yearsRequiredRe.FindStringSubmatch(text); m != nil {
		years, _ := strconv.Atoi(m[1])
		p.Experience.Years = float64(years)
	}

	if m := degreeAskRe.FindStringSubmatch(text); m != nil {
		p.Education.Degree = ParseDegreeLevel(m[1]).String()
	}
	if m := degreeFieldRe.FindStringSubmatch(text); m != nil {
		p.Education.Field = trimFieldClause(m[1])
	}

	return p
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(trimmed) > 90 {
			return ""
		}
		return trimmed
	}
	return ""
}

// trimFieldClause cuts a captured field of study at connective words so
// "Computer Science or related field" keeps only the field itself.
func trimFieldClause(field string) string {
	lower := strings.ToLower(field)
	for _, stop := range []string{" or ", " and ", ","} {
		if i := strings.Index(lower, stop); i > 0 {
			field = field[:i]
			lower = lower[:i]
		}
	}
	return strings.TrimSpace(field)
}
