package profile

import (
	"testing"
	"time"
)

const sampleResume = `Jordan Alvarez
jordan.alvarez@example.com | +1 415 555 0133

Skills
Languages: Python, Go, SQL
Docker, Kubernetes

Experience
Senior Backend Engineer | Nimbus Labs
Jan 2020 - Present
Built event pipelines on Kafka and PostgreSQL.

Backend Engineer | Datakit
2016 - 2019
Owned Django services.

Education
BS in Computer Science, State University
`

func TestParseResume(t *testing.T) {
	p := ParseResume(sampleResume)

	if p.Contact["name"] != "Jordan Alvarez" {
		t.Fatalf("unexpected name: %q", p.Contact["name"])
	}
	if p.Contact["email"] != "jordan.alvarez@example.com" {
		t.Fatalf("unexpected email: %q", p.Contact["email"])
	}
	if p.Contact["phone"] == "" {
		t.Fatal("expected phone to be extracted")
	}

	wantSkills := map[string]bool{}
	for _, r := range p.Skills {
		wantSkills[r.Name] = true
	}
	for _, name := range []string{"Python", "Go", "SQL", "Docker", "Kubernetes"} {
		if !wantSkills[name] {
			t.Fatalf("expected skill %q in %v", name, p.SkillNames())
		}
	}

	if len(p.Experience) != 2 {
		t.Fatalf("expected 2 experience entries, got %d: %+v", len(p.Experience), p.Experience)
	}
	first := p.Experience[0]
	if first.Title != "Senior Backend Engineer" || first.Company != "Nimbus Labs" {
		t.Fatalf("first entry parsed wrong: %+v", first)
	}
	if !first.Start.Equal(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", first.Start)
	}
	if first.End != nil {
		t.Fatalf("expected open end for current role, got %v", first.End)
	}
	second := p.Experience[1]
	if second.End == nil || second.End.Year() != 2019 {
		t.Fatalf("unexpected end for closed role: %+v", second)
	}

	if len(p.Education) != 1 {
		t.Fatalf("expected 1 education entry, got %d", len(p.Education))
	}
	if p.Education[0].Level() != DegreeBachelor {
		t.Fatalf("expected bachelor's, got %s", p.Education[0].Level())
	}
	if p.Education[0].Field != "Computer Science" {
		t.Fatalf("unexpected field: %q", p.Education[0].Field)
	}

	if p.RawText != sampleResume {
		t.Fatal("expected raw text to be preserved")
	}
}

func TestParseResumeSkillCategory(t *testing.T) {
	p := ParseResume("Skills\nLanguages: Python, Go\n")

	if len(p.Skills) < 2 {
		t.Fatalf("expected at least 2 skills, got %v", p.Skills)
	}
	if p.Skills[0].Category != "Languages" {
		t.Fatalf("expected category Languages, got %q", p.Skills[0].Category)
	}
}

func TestParseResumeLexiconSupplement(t *testing.T) {
	p := ParseResume(sampleResume)

	found := map[string]bool{}
	for _, r := range p.Skills {
		found[r.Name] = true
	}
	for _, name := range []string{"django", "postgresql", "kafka"} {
		if !found[name] {
			t.Fatalf("expected lexicon scan to add %q, got %v", name, p.SkillNames())
		}
	}
}

func TestParseResumeDateFirstLayout(t *testing.T) {
	p := ParseResume(`Experience
2018 - 2021
Platform Engineer
Initech
Shipped the billing system.
`)

	if len(p.Experience) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(p.Experience), p.Experience)
	}
	e := p.Experience[0]
	if e.Title != "Platform Engineer" || e.Company != "Initech" {
		t.Fatalf("entry parsed wrong: %+v", e)
	}
	if e.Description != "Shipped the billing system." {
		t.Fatalf("unexpected description: %q", e.Description)
	}
}

func TestParseResumeInlineDateLine(t *testing.T) {
	p := ParseResume(`Experience
Staff Engineer | Beta Corp | Mar 2015 - Dec 2019
Did platform work.
`)

	if len(p.Experience) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(p.Experience))
	}
	e := p.Experience[0]
	if e.Title != "Staff Engineer" || e.Company != "Beta Corp" {
		t.Fatalf("entry parsed wrong: %+v", e)
	}
	if e.End == nil || e.End.Month() != time.December {
		t.Fatalf("unexpected end: %+v", e.End)
	}
}

func TestParseResumeNoSections(t *testing.T) {
	p := ParseResume("Seasoned engineer comfortable with Python and Docker.")

	found := map[string]bool{}
	for _, r := range p.Skills {
		found[r.Name] = true
	}
	if !found["python"] || !found["docker"] {
		t.Fatalf("expected lexicon skills, got %v", p.SkillNames())
	}
	if len(p.Experience) != 0 {
		t.Fatalf("expected no experience entries, got %+v", p.Experience)
	}
}
