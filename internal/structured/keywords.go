package structured

import (
	"strings"

	"github.com/resumeroast/resumeroast/internal/skills"
)

// stopwords are dropped before any keyword-overlap measurement: function
// words plus wording that appears in nearly every resume and posting.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "with", "that", "this", "from", "are", "was",
		"were", "will", "would", "have", "has", "had", "but", "not", "all",
		"any", "can", "could", "our", "your", "their", "they", "them", "you",
		"who", "what", "when", "where", "which", "while", "into", "over",
		"under", "more", "than", "also", "such", "other", "some", "been",
		"its", "per", "via", "within", "across", "about", "after", "before",
		"each", "both", "between", "during", "through", "out", "off",
		"experience", "experienced", "skills", "years", "year", "work",
		"working", "team", "teams", "strong", "knowledge", "using", "use",
		"used", "including", "etc", "role", "job", "position", "required",
		"requirements", "must", "plus", "nice", "preferred",
		"responsibilities", "ability", "able", "excellent", "good", "great",
		"looking", "hire", "hiring", "join", "candidate", "candidates",
		"company", "new", "well", "very", "own", "like", "day", "daily",
	} {
		stopwords[w] = struct{}{}
	}
}

// keywordSet tokenizes text through the matcher normalization and returns
// the distinct tokens of at least minLen runes that are not stopwords.
func keywordSet(text string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(skills.Normalize(text)) {
		if len(tok) < minLen {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

func intersectCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}
