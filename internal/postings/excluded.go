package postings

import (
	"encoding/json"
	"os"
	"time"
)

// ExcludedPostings is the persistent list of postings a user has ruled out.
// Rank runs drop anything whose source appears in it.
type ExcludedPostings struct {
	Items []*ExcludedPosting `json:"items"`
}

type ExcludedPosting struct {
	Source     string    `json:"source"`
	Title      string    `json:"title,omitempty"`
	Company    string    `json:"company,omitempty"`
	ExcludedAt time.Time `json:"excluded_at"`
}

// ToExcluded snapshots the current set as exclusion entries.
func (s *Postings) ToExcluded() *ExcludedPostings {
	excluded := &ExcludedPostings{}
	now := time.Now().UTC()
	for _, p := range s.Items {
		excluded.Items = append(excluded.Items, &ExcludedPosting{
			Source:     p.Source,
			Title:      p.Title(),
			Company:    p.Company(),
			ExcludedAt: now,
		})
	}
	return excluded
}

// LoadExcluded reads an exclusion file. An empty file is a valid empty list.
func LoadExcluded(path string) (*ExcludedPostings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return &ExcludedPostings{}, nil
	}

	var excluded ExcludedPostings
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedPostings) Append(o *ExcludedPostings) {
	e.Items = append(e.Items, o.Items...)
}

// Sources returns the excluded source paths.
func (e *ExcludedPostings) Sources() []string {
	sources := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		sources = append(sources, item.Source)
	}
	return sources
}

func (e *ExcludedPostings) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
