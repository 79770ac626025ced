package structured

import (
	"github.com/resumeroast/resumeroast/internal/profile"
)

// degreeScores is the fixed education ladder.
var degreeScores = map[profile.DegreeLevel]float64{
	profile.DegreeDoctorate:   100,
	profile.DegreeMaster:      80,
	profile.DegreeBachelor:    60,
	profile.DegreeAssociate:   40,
	profile.DegreeCertificate: 20,
	profile.DegreeUnknown:     0,
}

// fieldMatchBonus is added when the study field overlaps the field the
// posting asks for; the score stays capped at 100.
const fieldMatchBonus = 10

type EducationAnalysis struct {
	HighestDegree string  `json:"highest_degree"`
	Level         string  `json:"level"`
	FieldMatched  bool    `json:"field_matched"`
	Score         float64 `json:"score"`
}

func analyzeEducation(resume *profile.ResumeProfile, job *profile.JobProfile) EducationAnalysis {
	best := profile.DegreeUnknown
	var bestEntry profile.EducationEntry
	for _, e := range resume.Education {
		if lvl := e.Level(); lvl > best {
			best = lvl
			bestEntry = e
		}
	}

	score := degreeScores[best]
	matched := false
	if best != profile.DegreeUnknown && job.Education.Field != "" {
		matched = fieldsOverlap(bestEntry.Field, job.Education.Field)
		if matched {
			score += fieldMatchBonus
			if score > 100 {
				score = 100
			}
		}
	}

	highest := bestEntry.Degree
	if highest == "" {
		highest = "Not specified"
	}
	return EducationAnalysis{
		HighestDegree: highest,
		Level:         best.String(),
		FieldMatched:  matched,
		Score:         score,
	}
}

func fieldsOverlap(resumeField, jobField string) bool {
	return intersectCount(keywordSet(resumeField, keywordMinLen), keywordSet(jobField, keywordMinLen)) > 0
}
