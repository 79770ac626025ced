package profile

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestParseDegreeLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect DegreeLevel
	}{
		{"PhD in Physics", DegreeDoctorate},
		{"Doctorate", DegreeDoctorate},
		{"M.S. in Systems Engineering", DegreeMaster},
		{"Master of Science", DegreeMaster},
		{"MBA", DegreeMaster},
		{"Bachelor of Science in CS", DegreeBachelor},
		{"B.Sc.", DegreeBachelor},
		{"Associate's Degree", DegreeAssociate},
		{"Cloud Bootcamp Certificate", DegreeCertificate},
		{"Self-taught", DegreeUnknown},
		{"BS and later a PhD", DegreeDoctorate},
		{"Systems Management", DegreeUnknown},
	}

	for _, tt := range tests {
		if got := ParseDegreeLevel(tt.input); got != tt.expect {
			t.Fatalf("ParseDegreeLevel(%q): expected %s, got %s", tt.input, tt.expect, got)
		}
	}
}

func TestDegreeLevelString(t *testing.T) {
	if DegreeDoctorate.String() != "PhD" {
		t.Fatalf("expected PhD, got %s", DegreeDoctorate)
	}
	if DegreeUnknown.String() != "Unknown" {
		t.Fatalf("expected Unknown, got %s", DegreeUnknown)
	}
}

func TestExperienceEntryYears(t *testing.T) {
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	closed := ExperienceEntry{
		Start: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   timePtr(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)),
	}
	if got := closed.Years(now); math.Abs(got-3) > 0.01 {
		t.Fatalf("expected about 3 years, got %v", got)
	}

	open := ExperienceEntry{Start: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)}
	if got := open.Years(now); math.Abs(got-2) > 0.01 {
		t.Fatalf("expected about 2 years for open entry, got %v", got)
	}

	var zero ExperienceEntry
	if got := zero.Years(now); got != 0 {
		t.Fatalf("expected 0 for zero start, got %v", got)
	}

	inverted := ExperienceEntry{
		Start: now,
		End:   timePtr(now.AddDate(-1, 0, 0)),
	}
	if got := inverted.Years(now); got != 0 {
		t.Fatalf("expected 0 for inverted range, got %v", got)
	}
}

func TestResumeProfileSkillNames(t *testing.T) {
	p := &ResumeProfile{Skills: []SkillRecord{
		{Name: "Python"},
		{Name: "  "},
		{Name: "Go", Category: "backend"},
	}}

	names := p.SkillNames()
	if len(names) != 2 || names[0] != "Python" || names[1] != "Go" {
		t.Fatalf("unexpected skill names: %v", names)
	}
}

func TestResumeProfileTextSynthesis(t *testing.T) {
	p := &ResumeProfile{
		Skills: []SkillRecord{{Name: "Python"}},
		Experience: []ExperienceEntry{{
			Title:       "Backend Engineer",
			Company:     "Acme",
			Description: "Built APIs",
		}},
		Education: []EducationEntry{{Degree: "BS", Field: "Computer Science"}},
	}

	text := p.Text()
	for _, want := range []string{"Python", "Backend Engineer at Acme", "Built APIs", "BS in Computer Science"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected synthesized text to contain %q, got:\n%s", want, text)
		}
	}

	p.RawText = "verbatim resume"
	if p.Text() != "verbatim resume" {
		t.Fatalf("expected raw text to win, got %q", p.Text())
	}
}

func timePtr(t time.Time) *time.Time { return &t }
