package skills

import (
	"math"
	"reflect"
	"testing"
)

func TestMatchBackendRole(t *testing.T) {
	m := NewMatcher()

	resume := []string{"Python", "Django", "PostgreSQL", "Docker", "AWS"}
	job := []string{"Python", "FastAPI", "PostgreSQL", "Docker", "Kubernetes", "AWS"}

	result := m.Match(resume, job)

	wantMatched := []string{"Python", "PostgreSQL", "Docker", "AWS"}
	if !reflect.DeepEqual(result.Matched, wantMatched) {
		t.Fatalf("expected matched %v, got %v", wantMatched, result.Matched)
	}

	wantMissing := []string{"FastAPI", "Kubernetes"}
	if !reflect.DeepEqual(result.Missing, wantMissing) {
		t.Fatalf("expected missing %v, got %v", wantMissing, result.Missing)
	}

	wantExtra := []string{"Django"}
	if !reflect.DeepEqual(result.Extra, wantExtra) {
		t.Fatalf("expected extra %v, got %v", wantExtra, result.Extra)
	}

	if math.Abs(result.Percentage-400.0/6.0) > 0.01 {
		t.Fatalf("expected percentage near 66.67, got %v", result.Percentage)
	}

	for _, p := range result.Pairs {
		if p.Method != MethodExact {
			t.Fatalf("expected exact pairs only, got %q for %q", p.Method, p.JobSkill)
		}
	}
}

func TestMatchAliases(t *testing.T) {
	m := NewMatcher()

	result := m.Match([]string{"JS", "NodeJS"}, []string{"JavaScript", "Node.js"})

	if result.Percentage != 100 {
		t.Fatalf("expected 100 percent, got %v", result.Percentage)
	}
	if len(result.Missing) != 0 {
		t.Fatalf("expected no missing skills, got %v", result.Missing)
	}
	for _, p := range result.Pairs {
		if p.Method != MethodExact || p.Similarity != 1 {
			t.Fatalf("expected exact alias pair, got %+v", p)
		}
	}
}

func TestMatchFuzzyAtThreshold(t *testing.T) {
	m := NewMatcher()

	result := m.Match([]string{"Dockerfile"}, []string{"Docker"})

	if len(result.Pairs) != 1 {
		t.Fatalf("expected one pair, got %d", len(result.Pairs))
	}
	p := result.Pairs[0]
	if p.Method != MethodFuzzy {
		t.Fatalf("expected fuzzy match, got %q", p.Method)
	}
	if math.Abs(p.Similarity-0.75) > 1e-9 {
		t.Fatalf("expected similarity 0.75, got %v", p.Similarity)
	}
}

func TestMatchSemanticPhrase(t *testing.T) {
	m := NewMatcher()

	result := m.Match([]string{"Machine Learning Engineering"}, []string{"Machine Learning"})

	if result.Percentage != 100 {
		t.Fatalf("expected 100 percent, got %v (missing %v)", result.Percentage, result.Missing)
	}
	if len(result.Pairs) != 1 {
		t.Fatalf("expected one pair, got %d", len(result.Pairs))
	}
	p := result.Pairs[0]
	if p.Method != MethodSemantic {
		t.Fatalf("expected semantic match, got %q", p.Method)
	}
	if p.Similarity < DefaultSemanticThreshold {
		t.Fatalf("expected similarity above %v, got %v", DefaultSemanticThreshold, p.Similarity)
	}
}

func TestMatchDisableSemantic(t *testing.T) {
	m := NewMatcher()
	m.DisableSemantic = true

	result := m.Match([]string{"Machine Learning Engineering"}, []string{"Machine Learning"})

	if result.Percentage != 0 {
		t.Fatalf("expected 0 percent, got %v", result.Percentage)
	}
	if !reflect.DeepEqual(result.Missing, []string{"Machine Learning"}) {
		t.Fatalf("expected missing list, got %v", result.Missing)
	}
}

func TestMatchEmptyJobRequirements(t *testing.T) {
	m := NewMatcher()

	result := m.Match([]string{"Go", "Rust"}, nil)

	if result.Percentage != 100 {
		t.Fatalf("expected 100 percent for empty requirements, got %v", result.Percentage)
	}
	if !reflect.DeepEqual(result.Extra, []string{"Go", "Rust"}) {
		t.Fatalf("expected all resume skills as extra, got %v", result.Extra)
	}
}

func TestMatchEmptyResume(t *testing.T) {
	m := NewMatcher()

	result := m.Match(nil, []string{"Quantum"})

	if result.Percentage != 0 {
		t.Fatalf("expected 0 percent, got %v", result.Percentage)
	}
	if !reflect.DeepEqual(result.Missing, []string{"Quantum"}) {
		t.Fatalf("expected missing list, got %v", result.Missing)
	}
}

func TestMatchResumeSkillServesMultipleRequirements(t *testing.T) {
	m := NewMatcher()

	result := m.Match([]string{"postgres"}, []string{"PostgreSQL", "postgresql database"})

	if len(result.Matched) != 2 {
		t.Fatalf("expected both requirements matched, got %v (missing %v)", result.Matched, result.Missing)
	}
	if len(result.Extra) != 0 {
		t.Fatalf("expected no extra skills, got %v", result.Extra)
	}
}

func TestMatchDeduplicatesInput(t *testing.T) {
	m := NewMatcher()

	result := m.Match([]string{"Python", "python", "PY"}, []string{"Python", "Python3"})

	if result.Percentage != 100 {
		t.Fatalf("expected 100 percent, got %v", result.Percentage)
	}
	if len(result.Pairs) != 1 {
		t.Fatalf("expected a single deduplicated pair, got %d", len(result.Pairs))
	}
	if result.Pairs[0].ResumeSkill != "Python" {
		t.Fatalf("expected first spelling to win, got %q", result.Pairs[0].ResumeSkill)
	}
}

func TestSortedCopy(t *testing.T) {
	in := []string{"c", "a", "b"}
	out := SortedCopy(in)

	if !reflect.DeepEqual(out, []string{"a", "b", "c"}) {
		t.Fatalf("expected sorted copy, got %v", out)
	}
	if !reflect.DeepEqual(in, []string{"c", "a", "b"}) {
		t.Fatalf("expected input untouched, got %v", in)
	}
}
