// Package profile holds the parsed resume and job posting records consumed
// by the scoring pipeline, plus parsers that build them from free text or
// loose JSON.
package profile

import (
	"strings"
	"time"
)

// SkillRecord is one skill from a resume or posting. Loose input may carry
// it as a bare string or as an object; both decode into this struct.
type SkillRecord struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Years    float64 `json:"years,omitempty"`
}

// ExperienceEntry is one role. A nil End means the role is still open.
type ExperienceEntry struct {
	Title       string     `json:"title"`
	Company     string     `json:"company,omitempty"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Years reports the entry duration in years, counting an open end up to now.
func (e ExperienceEntry) Years(now time.Time) float64 {
	if e.Start.IsZero() {
		return 0
	}
	end := now
	if e.End != nil {
		end = *e.End
	}
	if end.Before(e.Start) {
		return 0
	}
	return end.Sub(e.Start).Hours() / (24 * 365.25)
}

type EducationEntry struct {
	Degree string `json:"degree"`
	Field  string `json:"field,omitempty"`
}

// Level parses the degree text into the fixed hierarchy.
func (e EducationEntry) Level() DegreeLevel {
	return ParseDegreeLevel(e.Degree)
}

// ResumeProfile is the candidate side of a scoring request. Contact is
// opaque metadata and is never read by the scoring pipeline.
type ResumeProfile struct {
	Skills     []SkillRecord     `json:"skills"`
	Experience []ExperienceEntry `json:"experience,omitempty"`
	Education  []EducationEntry  `json:"education,omitempty"`
	Contact    map[string]string `json:"contact,omitempty"`
	RawText    string            `json:"full_text,omitempty"`
}

// SkillNames returns the skill names in input order.
func (p *ResumeProfile) SkillNames() []string {
	return skillNames(p.Skills)
}

// Text returns the resume as one text blob, synthesizing it from the
// structured fields when no raw text was captured.
func (p *ResumeProfile) Text() string {
	if strings.TrimSpace(p.RawText) != "" {
		return p.RawText
	}

	var b strings.Builder
	if len(p.Skills) > 0 {
		b.WriteString("Skills: ")
		b.WriteString(strings.Join(p.SkillNames(), ", "))
		b.WriteString("\n")
	}
	for _, e := range p.Experience {
		b.WriteString(e.Title)
		if e.Company != "" {
			b.WriteString(" at ")
			b.WriteString(e.Company)
		}
		b.WriteString("\n")
		if e.Description != "" {
			b.WriteString(e.Description)
			b.WriteString("\n")
		}
	}
	for _, e := range p.Education {
		b.WriteString(e.Degree)
		if e.Field != "" {
			b.WriteString(" in ")
			b.WriteString(e.Field)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ExperienceRequirement is the posting's experience ask: either a named
// level or an explicit minimum in years. Years takes precedence when both
// are present.
type ExperienceRequirement struct {
	Level string  `json:"level,omitempty"`
	Years float64 `json:"years,omitempty"`
}

type EducationRequirement struct {
	Degree string `json:"degree,omitempty"`
	Field  string `json:"field,omitempty"`
}

// JobProfile is the posting side of a scoring request.
type JobProfile struct {
	Title       string                `json:"title"`
	Company     string                `json:"company,omitempty"`
	Skills      []SkillRecord         `json:"skills"`
	Experience  ExperienceRequirement `json:"experience,omitempty"`
	Education   EducationRequirement  `json:"education,omitempty"`
	Description string                `json:"description,omitempty"`
}

// SkillNames returns the required skill names in input order.
func (p *JobProfile) SkillNames() []string {
	return skillNames(p.Skills)
}

// Text returns the posting as one text blob.
func (p *JobProfile) Text() string {
	if strings.TrimSpace(p.Description) != "" {
		return p.Description
	}

	var b strings.Builder
	b.WriteString(p.Title)
	b.WriteString("\n")
	if len(p.Skills) > 0 {
		b.WriteString("Required: ")
		b.WriteString(strings.Join(p.SkillNames(), ", "))
		b.WriteString("\n")
	}
	return b.String()
}

func skillNames(records []SkillRecord) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		names = append(names, r.Name)
	}
	return names
}
