// Package postings manages the set of job posting files a rank run scores
// one resume against. It loads profiles from disk, prunes the set through
// field-based exclusion, and reports on what is left.
package postings

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/resumeroast/resumeroast/internal/profile"
)

// Field names accepted by Exclude.
const (
	SourceField  = "Source"
	CompanyField = "Company"
)

// Posting is one job posting loaded from a file.
type Posting struct {
	Source string              `json:"source"`
	Job    *profile.JobProfile `json:"job"`
}

// Title returns the posting title, empty when the profile is unusable.
func (p *Posting) Title() string {
	if p.Job == nil {
		return ""
	}
	return p.Job.Title
}

// Company returns the posting company, empty when the profile is unusable.
func (p *Posting) Company() string {
	if p.Job == nil {
		return ""
	}
	return p.Job.Company
}

// GetStringField returns the named field used for exclusion matching.
func (p *Posting) GetStringField(name string) string {
	switch name {
	case SourceField:
		return p.Source
	case CompanyField:
		return p.Company()
	default:
		return ""
	}
}

// Key is the posting's identity for duplicate detection: normalized title
// plus company. Postings without either keep their source path so unknowns
// never collapse into each other.
func (p *Posting) Key() string {
	title := canonField(p.Title())
	company := canonField(p.Company())
	if title == "" && company == "" {
		return p.Source
	}
	return title + "|" + company
}

func canonField(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Postings is the working set of a rank run.
type Postings struct {
	Items []*Posting `json:"items"`
}

func (s *Postings) Len() int {
	return len(s.Items)
}

// FindBySource returns the posting loaded from the given path, or nil.
func (s *Postings) FindBySource(source string) *Posting {
	for _, p := range s.Items {
		if p.Source == source {
			return p
		}
	}
	return nil
}

// Exclude removes every posting whose field matches one of the values,
// comparing case-insensitively, and returns the removed sources.
func (s *Postings) Exclude(field string, values []string) []string {
	if len(values) == 0 {
		return nil
	}

	drop := make(map[string]bool, len(values))
	for _, v := range values {
		v = canonField(v)
		if v != "" {
			drop[v] = true
		}
	}

	var removed []string
	kept := s.Items[:0]
	for _, p := range s.Items {
		if drop[canonField(p.GetStringField(field))] {
			removed = append(removed, p.Source)
			continue
		}
		kept = append(kept, p)
	}
	s.Items = kept
	return removed
}

// ReportByCompany groups the postings by company for a quick overview.
func (s *Postings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, p := range s.Items {
		key := p.Company()
		if key == "" {
			key = "(unknown company)"
		}
		report[key] = append(report[key], map[string]string{
			"title":      p.Title(),
			"source":     p.Source,
			"experience": describeExperience(p.Job),
			"skills":     previewSkills(p.Job),
		})
	}
	return report
}

func describeExperience(job *profile.JobProfile) string {
	if job == nil {
		return ""
	}
	if job.Experience.Years > 0 {
		return fmt.Sprintf("%.0f+ years", job.Experience.Years)
	}
	return job.Experience.Level
}

const maxSkillPreview = 6

func previewSkills(job *profile.JobProfile) string {
	if job == nil {
		return ""
	}
	names := job.SkillNames()
	if len(names) > maxSkillPreview {
		names = names[:maxSkillPreview]
	}
	return strings.Join(names, ", ")
}

// DumpToTmpFile writes the set to a temporary JSON file and returns its name.
func (s *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Load reads each path into a posting. Unreadable or undecodable files are
// logged and skipped; content-level pruning is the filter pipeline's job.
func Load(paths []string, logger *zap.Logger) *Postings {
	set := &Postings{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable posting file", zap.String("path", path), zap.Error(err))
			continue
		}

		job, err := profile.LoadJob(data)
		if err != nil {
			logger.Warn("skipping undecodable posting file", zap.String("path", path), zap.Error(err))
			continue
		}

		set.Items = append(set.Items, &Posting{Source: path, Job: job})
	}
	return set
}

// posting files inside a directory are recognized by extension.
var postingExts = map[string]bool{
	".txt":  true,
	".md":   true,
	".json": true,
}

// Discover expands file paths, directories and glob patterns into a sorted,
// deduplicated list of posting files. A pattern that matches nothing is an
// error so a mistyped path does not silently rank an empty set.
func Discover(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		matches, err := expand(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no posting files match %q", pattern)
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func expand(pattern string) ([]string, error) {
	if info, err := os.Stat(pattern); err == nil {
		if info.IsDir() {
			return collectDir(pattern)
		}
		return []string{pattern}, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad posting pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if info.IsDir() {
			inner, err := collectDir(m)
			if err != nil {
				return nil, err
			}
			files = append(files, inner...)
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

func collectDir(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if postingExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking postings dir %q: %w", dir, err)
	}
	return files, nil
}
