package profile

import (
	"strings"

	"github.com/resumeroast/resumeroast/internal/skills"
)

// techLexicon lists the terms the free-text parsers scan for when a resume
// or posting has no explicit skills block. Terms are normalized spellings;
// aliasing back to canonical names happens in the matcher.
var techLexicon = []string{
	"python", "java", "javascript", "typescript", "golang", "rust",
	"ruby", "php", "swift", "kotlin", "scala", "c++", "c#",
	"react", "angular", "vue", "node js", "express", "django", "flask",
	"fastapi", "spring", "rails",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch",
	"kafka", "rabbitmq", "graphql", "grpc", "rest api",
	"machine learning", "deep learning", "nlp", "computer vision",
	"linux", "git", "ci cd", "devops", "agile", "scrum",
}

// ScanSkills returns the lexicon terms present in free text, in lexicon
// order. Matching is word-bounded over the normalized text.
func ScanSkills(text string) []string {
	padded := " " + skills.Normalize(text) + " "

	var found []string
	for _, term := range techLexicon {
		if strings.Contains(padded, " "+term+" ") {
			found = append(found, term)
		}
	}
	return found
}
