package profile

import (
	"regexp"
	"strings"

	"github.com/resumeroast/resumeroast/internal/skills"
)

// sectionHeaders maps resume sections to the header spellings that open
// them. Order matters: the first pattern that matches a header line wins.
var sectionHeaders = []struct {
	name string
	re   *regexp.Regexp
}{
	{"education", regexp.MustCompile(`(?i)^(education|academic|qualifications?)\b`)},
	{"experience", regexp.MustCompile(`(?i)^(professional experience|work experience|work history|employment|experience)\b`)},
	{"skills", regexp.MustCompile(`(?i)^(skills|technical skills|core competencies|technologies)\b`)},
	{"projects", regexp.MustCompile(`(?i)^(projects|portfolio)\b`)},
	{"certifications", regexp.MustCompile(`(?i)^(certifications?|certificates|licenses)\b`)},
}

const maxHeaderLen = 40

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
)

// ParseResume builds a ResumeProfile from plain resume text. It splits the
// text into recognized sections, pulls skills from the skills block plus a
// lexicon scan, experience entries from date-ranged lines, and education
// entries from degree lines. The full input is kept as RawText.
func ParseResume(text string) *ResumeProfile {
	sections, preamble := splitSections(text)

	p := &ResumeProfile{
		Skills:     parseSkillLines(sections["skills"]),
		Experience: parseExperience(sections["experience"]),
		Education:  parseEducation(sections["education"]),
		Contact:    parseContact(preamble, text),
		RawText:    text,
	}

	p.Skills = mergeSkills(p.Skills, ScanSkills(text))
	return p
}

// splitSections groups nonempty lines under the section whose header most
// recently appeared. Lines before any header form the preamble.
func splitSections(text string) (map[string][]string, []string) {
	sections := make(map[string][]string)
	var preamble []string
	current := ""

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if name, ok := matchHeader(trimmed); ok {
			current = name
			continue
		}
		if current == "" {
			preamble = append(preamble, trimmed)
			continue
		}
		sections[current] = append(sections[current], trimmed)
	}
	return sections, preamble
}

func matchHeader(line string) (string, bool) {
	candidate := strings.TrimSpace(strings.TrimSuffix(line, ":"))
	if len(candidate) > maxHeaderLen || len(strings.Fields(candidate)) > 3 {
		return "", false
	}
	for _, h := range sectionHeaders {
		if h.re.MatchString(candidate) {
			return h.name, true
		}
	}
	return "", false
}

// parseSkillLines splits skill-block lines on list separators. A short
// "Category: a, b, c" prefix becomes each item's category.
func parseSkillLines(lines []string) []SkillRecord {
	var records []SkillRecord
	for _, line := range lines {
		line = trimBullet(line)

		category := ""
		if i := strings.Index(line, ":"); i > 0 && i <= 24 {
			category = strings.TrimSpace(line[:i])
			line = line[i+1:]
		}

		for _, item := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == '|' || r == '·' || r == '•'
		}) {
			item = strings.TrimSpace(item)
			if item == "" || len(item) > 40 {
				continue
			}
			records = append(records, SkillRecord{Name: item, Category: category})
		}
	}
	return records
}

// parseExperience walks the experience block and starts a new entry at each
// date-range line. A line immediately before the range is the role title;
// later lines accumulate as the description.
func parseExperience(lines []string) []ExperienceEntry {
	var entries []ExperienceEntry
	var cur *ExperienceEntry
	pending := ""

	flush := func() {
		if cur != nil && !cur.Start.IsZero() {
			cur.Description = strings.TrimSpace(cur.Description)
			entries = append(entries, *cur)
		}
		cur = nil
	}

	for _, raw := range lines {
		line := trimBullet(raw)

		if m := dateRangeRe.FindStringSubmatchIndex(line); m != nil {
			flush()

			start, err := parseDateToken(line[m[2]:m[3]])
			if err != nil {
				pending = ""
				continue
			}
			cur = &ExperienceEntry{Start: start}
			if endTok := line[m[4]:m[5]]; !isOpenEnded(endTok) {
				if end, err := parseDateToken(endTok); err == nil {
					cur.End = &end
				}
			}

			remainder := strings.Trim(line[:m[0]]+" "+line[m[1]:], " \t|,()–—-")
			if remainder != "" {
				fillTitle(cur, remainder)
			} else if pending != "" {
				fillTitle(cur, pending)
			}
			pending = ""
			continue
		}

		if cur == nil {
			pending = line
			continue
		}
		if cur.Title == "" {
			fillTitle(cur, line)
			continue
		}
		if cur.Company == "" && cur.Description == "" && pending == "" &&
			len(line) <= 60 && !strings.Contains(line, ".") {
			cur.Company = line
			continue
		}
		if pending != "" {
			cur.Description = joinLines(cur.Description, pending)
		}
		pending = line
	}

	if cur != nil && pending != "" {
		cur.Description = joinLines(cur.Description, pending)
	}
	flush()
	return entries
}

// fillTitle splits "Title | Company" style lines into title and company.
func fillTitle(e *ExperienceEntry, s string) {
	s = strings.Trim(s, " \t|,–—-")
	for _, sep := range []string{"|", " at ", " @ ", ", "} {
		if i := strings.Index(s, sep); i > 0 {
			e.Title = strings.TrimSpace(s[:i])
			e.Company = strings.Trim(s[i+len(sep):], " \t|,–—-")
			return
		}
	}
	e.Title = s
}

func parseEducation(lines []string) []EducationEntry {
	var entries []EducationEntry
	for _, line := range lines {
		line = trimBullet(line)
		if ParseDegreeLevel(line) == DegreeUnknown {
			continue
		}
		entries = append(entries, EducationEntry{
			Degree: line,
			Field:  fieldOfStudy(line),
		})
	}
	return entries
}

var fieldRe = regexp.MustCompile(`(?i)\bin\b\s+([A-Za-z][A-Za-z &/]+)`)

func fieldOfStudy(line string) string {
	m := fieldRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	field := m[1]
	for _, stop := range []string{" from ", " at "} {
		if i := strings.Index(strings.ToLower(field), stop); i > 0 {
			field = field[:i]
		}
	}
	return strings.TrimSpace(field)
}

func parseContact(preamble []string, text string) map[string]string {
	contact := make(map[string]string)

	if len(preamble) > 0 {
		first := preamble[0]
		if len(first) <= 60 && !strings.ContainsAny(first, "@0123456789") {
			contact["name"] = first
		}
	}
	if email := emailRe.FindString(text); email != "" {
		contact["email"] = email
	}
	if phone := phoneRe.FindString(text); phone != "" {
		contact["phone"] = strings.TrimSpace(phone)
	}

	if len(contact) == 0 {
		return nil
	}
	return contact
}

// mergeSkills appends scanned terms not already covered by the explicit
// skills block, comparing canonical names.
func mergeSkills(explicit []SkillRecord, scanned []string) []SkillRecord {
	seen := make(map[string]bool, len(explicit))
	for _, r := range explicit {
		seen[skills.CanonicalName(r.Name)] = true
	}

	merged := explicit
	for _, name := range scanned {
		canon := skills.CanonicalName(name)
		if canon == "" || seen[canon] {
			continue
		}
		seen[canon] = true
		merged = append(merged, SkillRecord{Name: name})
	}
	return merged
}

func trimBullet(line string) string {
	return strings.TrimLeft(line, "-•*> \t")
}

func joinLines(base, line string) string {
	if base == "" {
		return line
	}
	return base + "\n" + line
}
