package skills

import (
	"errors"
	"math"
	"strings"
)

// errDegenerateVocabulary signals that no meaningful vector space can be
// built over the two skill collections. Callers skip the semantic step.
var errDegenerateVocabulary = errors.New("degenerate vocabulary")

// vectorSpace is a TF-IDF model built per request over both skill
// collections. It holds no references to the request after construction.
type vectorSpace struct {
	vocab map[string]int
	idf   []float64
}

func newVectorSpace(docs []string) (*vectorSpace, error) {
	vocab := make(map[string]int)
	df := make([]int, 0, len(docs))

	nonEmpty := 0
	for _, doc := range docs {
		tokens := strings.Fields(doc)
		if len(tokens) > 0 {
			nonEmpty++
		}
		seen := make(map[string]bool, len(tokens))
		for _, token := range tokens {
			if _, ok := vocab[token]; !ok {
				vocab[token] = len(df)
				df = append(df, 0)
			}
			if !seen[token] {
				df[vocab[token]]++
				seen[token] = true
			}
		}
	}

	// A single tokenizable document cannot relate two collections.
	if len(vocab) == 0 || nonEmpty < 2 {
		return nil, errDegenerateVocabulary
	}

	n := float64(len(docs))
	idf := make([]float64, len(df))
	for i, count := range df {
		idf[i] = math.Log((1+n)/(1+float64(count))) + 1
	}

	return &vectorSpace{vocab: vocab, idf: idf}, nil
}

// vectorize returns the L2-normalized TF-IDF vector for the document.
// Documents with no in-vocabulary tokens produce a zero vector.
func (s *vectorSpace) vectorize(doc string) []float64 {
	vec := make([]float64, len(s.idf))
	for _, token := range strings.Fields(doc) {
		if idx, ok := s.vocab[token]; ok {
			vec[idx] += s.idf[idx]
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}

	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// cosine of two L2-normalized vectors reduces to their dot product.
func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}
