package profile

import "testing"

const samplePosting = `Senior Backend Engineer

We are hiring a senior backend engineer to own our payments platform.
Requirements:
- 7+ years of backend experience
- Python, Django, PostgreSQL
- Docker and Kubernetes in production
- Bachelor's degree in Computer Science or related field
`

func TestParseJob(t *testing.T) {
	p := ParseJob(samplePosting)

	if p.Title != "Senior Backend Engineer" {
		t.Fatalf("unexpected title: %q", p.Title)
	}
	if p.Experience.Level != "senior" {
		t.Fatalf("expected senior level, got %q", p.Experience.Level)
	}
	if p.Experience.Years != 7 {
		t.Fatalf("expected 7 years, got %v", p.Experience.Years)
	}
	if p.Education.Degree != "Bachelor's" {
		t.Fatalf("unexpected degree requirement: %q", p.Education.Degree)
	}
	if p.Education.Field != "Computer Science" {
		t.Fatalf("unexpected field: %q", p.Education.Field)
	}

	found := map[string]bool{}
	for _, name := range p.SkillNames() {
		found[name] = true
	}
	for _, name := range []string{"python", "django", "postgresql", "docker", "kubernetes"} {
		if !found[name] {
			t.Fatalf("expected skill %q, got %v", name, p.SkillNames())
		}
	}

	if p.Description != samplePosting {
		t.Fatal("expected description to keep the full posting")
	}
}

func TestParseJobEntryLevel(t *testing.T) {
	p := ParseJob("Junior Developer\nGreat first role, 1-2 years experience welcome.\n")

	if p.Experience.Level != "entry" {
		t.Fatalf("expected entry level, got %q", p.Experience.Level)
	}
	if p.Experience.Years != 2 {
		t.Fatalf("expected 2 years from the range, got %v", p.Experience.Years)
	}
}

func TestParseJobNoRequirements(t *testing.T) {
	p := ParseJob("Engineer\nCome build things with us.\n")

	if p.Experience.Level != "" || p.Experience.Years != 0 {
		t.Fatalf("expected no experience requirement, got %+v", p.Experience)
	}
	if p.Education.Degree != "" {
		t.Fatalf("expected no education requirement, got %q", p.Education.Degree)
	}
}

func TestParseJobLongFirstLineSkipsTitle(t *testing.T) {
	long := "We are a stealth startup revolutionizing enterprise workflow automation with cutting edge AI technology for everyone"
	p := ParseJob(long + "\n")

	if p.Title != "" {
		t.Fatalf("expected empty title for prose opening, got %q", p.Title)
	}
}
