package evaluator

import (
	"strings"
	"testing"

	"github.com/resumeroast/resumeroast/internal/profile"
	"github.com/resumeroast/resumeroast/internal/structured"
)

func TestBuildPromptIncludesContext(t *testing.T) {
	prompt := BuildPrompt(testInput())

	for _, want := range []string{
		"Position: Senior Backend Engineer",
		"Experience Level: senior (7+ years)",
		"Pre-calculated Skills Match: 66.7%",
		"Missing Skills: FastAPI, Kubernetes",
		"Relevant Experience: 8.2 of 9.5 total years",
		"Education: BS in Computer Science",
		"- Technical Skills (35%)",
		"- Experience Relevance (30%)",
		"- Education & Qualifications (15%)",
		"- Domain Expertise (20%)",
		"- Score 90-100: Excellent Match (Strong candidate for the role)",
		"- Score 0-39: Poor Match (Does not meet basic requirements)",
		"Skills: Python, PostgreSQL",
		"Own backend services built on Python and PostgreSQL.",
		"Return only valid JSON without any markdown formatting or code blocks.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}

	if idx := strings.Index(prompt, "{{"); idx != -1 {
		t.Fatalf("prompt contains unexpanded placeholder near %q", prompt[idx:min(idx+30, len(prompt))])
	}
}

func TestBuildPromptFallbacks(t *testing.T) {
	in := Input{
		Resume:   &profile.ResumeProfile{},
		Job:      &profile.JobProfile{},
		Analysis: &structured.Analysis{},
	}

	prompt := BuildPrompt(in)

	for _, want := range []string{
		"Position: Not specified",
		"Experience Level: not specified",
		"Pre-calculated Skills Match: 0.0%",
		"Missing Skills: none",
		"Education: Not specified",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}

	if got := strings.Count(prompt, "Not available"); got != 2 {
		t.Fatalf("expected resume and job placeholders, found %d", got)
	}
}
