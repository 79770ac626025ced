package skills

import (
	"strings"
	"unicode"
)

// Normalize lowercases a skill name, strips every character except letters,
// digits, spaces, '+' and '#', and collapses whitespace runs. The result for
// "Node.js" and "node js" is identical.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' || r == '#':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Canonical resolves a normalized skill term through the alias table.
// Unknown terms are returned unchanged.
func Canonical(normalized string) string {
	if canonical, ok := aliasIndex[normalized]; ok {
		return canonical
	}
	return normalized
}

// CanonicalName normalizes the raw skill name and resolves aliases in one step.
func CanonicalName(raw string) string {
	return Canonical(Normalize(raw))
}
