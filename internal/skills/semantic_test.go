package skills

import (
	"errors"
	"math"
	"testing"
)

func TestNewVectorSpaceDegenerate(t *testing.T) {
	tests := []struct {
		name string
		docs []string
	}{
		{name: "no documents", docs: nil},
		{name: "single document", docs: []string{"python"}},
		{name: "only empty documents", docs: []string{"", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newVectorSpace(tt.docs)
			if !errors.Is(err, errDegenerateVocabulary) {
				t.Fatalf("expected degenerate vocabulary error, got %v", err)
			}
		})
	}
}

func TestCosineRelatedPhrases(t *testing.T) {
	space, err := newVectorSpace([]string{"machine learning", "machine learning engineering"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := space.vectorize("machine learning")
	b := space.vectorize("machine learning engineering")

	got := cosine(a, b)
	if math.Abs(got-0.7093) > 0.001 {
		t.Fatalf("expected cosine near 0.7093, got %v", got)
	}
	if got < DefaultSemanticThreshold {
		t.Fatalf("expected related phrases above %v, got %v", DefaultSemanticThreshold, got)
	}
}

func TestCosineIdenticalDocuments(t *testing.T) {
	space, err := newVectorSpace([]string{"data engineering", "cloud platforms"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := space.vectorize("data engineering")
	if got := cosine(v, v); math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected cosine 1 for identical vectors, got %v", got)
	}
}

func TestCosineDisjointDocuments(t *testing.T) {
	space, err := newVectorSpace([]string{"frontend react", "embedded firmware"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := space.vectorize("frontend react")
	b := space.vectorize("embedded firmware")
	if got := cosine(a, b); got != 0 {
		t.Fatalf("expected cosine 0 for disjoint documents, got %v", got)
	}
}

func TestVectorizeUnknownTokens(t *testing.T) {
	space, err := newVectorSpace([]string{"go services", "python tooling"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := space.vectorize("cobol mainframe")
	for i, val := range v {
		if val != 0 {
			t.Fatalf("expected zero vector for unknown tokens, got %v at %d", val, i)
		}
	}
}
