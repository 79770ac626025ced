// Package ranking scores one resume against a whole posting set and orders
// the results. A small worker pool bounds concurrent model calls and an
// optional delay paces them, since every posting may fan out to the
// configured backends.
package ranking

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/resumeroast/resumeroast/internal/postings"
	"github.com/resumeroast/resumeroast/internal/profile"
	"github.com/resumeroast/resumeroast/internal/scoring"
	"github.com/resumeroast/resumeroast/internal/utils"
)

const defaultWorkers = 2

// Scorer produces a verdict for one resume and posting pair.
type Scorer interface {
	Score(ctx context.Context, resume *profile.ResumeProfile, job *profile.JobProfile, opts scoring.Options) (*scoring.Result, error)
}

// Entry pairs a posting with its scoring outcome. Exactly one of Result and
// Err is set.
type Entry struct {
	Posting *postings.Posting `json:"posting"`
	Result  *scoring.Result   `json:"result,omitempty"`
	Err     string            `json:"error,omitempty"`
}

// Ranking is the outcome of scoring a posting set, split into scored entries
// ordered best first and postings whose scoring failed.
type Ranking struct {
	Entries  []*Entry `json:"entries"`
	Failures []*Entry `json:"failures,omitempty"`
}

// Top returns the best n entries, or all of them when n is not positive or
// exceeds the ranking size.
func (r *Ranking) Top(n int) []*Entry {
	if n <= 0 || n > len(r.Entries) {
		return r.Entries
	}
	return r.Entries[:n]
}

// DumpToTmpFile writes the ranking to a temporary JSON file and returns its
// name.
func (r *Ranking) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ranking_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Config tunes the ranking pool.
type Config struct {
	// Workers is the number of postings scored concurrently.
	Workers int
	// Delay is the pause a worker takes between consecutive postings, for
	// pacing calls against backend rate limits.
	Delay time.Duration
}

// Ranker scores posting sets through a shared Scorer.
type Ranker struct {
	scorer  Scorer
	logger  *zap.Logger
	workers int
	delay   time.Duration
}

func New(scorer Scorer, logger *zap.Logger, cfg Config) *Ranker {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Ranker{
		scorer:  scorer,
		logger:  logger,
		workers: workers,
		delay:   cfg.Delay,
	}
}

// Rank scores every posting in the set and returns the ordered outcome.
// Individual failures never abort the run; they are collected so the caller
// can report them. Entries are ordered by final score descending, ties
// broken by source path.
func (r *Ranker) Rank(ctx context.Context, resume *profile.ResumeProfile, set *postings.Postings) *Ranking {
	jobs := make(chan *postings.Posting)
	out := make(chan *Entry)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.work(ctx, resume, jobs, out)
		}()
	}

	go func() {
		for _, p := range set.Items {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	ranking := &Ranking{}
	for entry := range out {
		if entry.Err != "" {
			ranking.Failures = append(ranking.Failures, entry)
			continue
		}
		ranking.Entries = append(ranking.Entries, entry)
	}

	sort.Slice(ranking.Entries, func(i, j int) bool {
		a, b := ranking.Entries[i], ranking.Entries[j]
		if a.Result.FinalScore != b.Result.FinalScore {
			return a.Result.FinalScore > b.Result.FinalScore
		}
		return a.Posting.Source < b.Posting.Source
	})
	sort.Slice(ranking.Failures, func(i, j int) bool {
		return ranking.Failures[i].Posting.Source < ranking.Failures[j].Posting.Source
	})

	return ranking
}

// work scores postings from the jobs channel until it closes. The pacing
// delay is skipped before a worker's first posting. A cancelled context
// fails the remaining postings instead of abandoning them, so every posting
// is accounted for in the outcome.
func (r *Ranker) work(ctx context.Context, resume *profile.ResumeProfile, jobs <-chan *postings.Posting, out chan<- *Entry) {
	first := true
	for p := range jobs {
		if !first {
			if err := utils.WaitFor(ctx, r.delay); err != nil {
				out <- &Entry{Posting: p, Err: err.Error()}
				continue
			}
		}
		first = false

		result, err := r.scorer.Score(ctx, resume, p.Job, scoring.Options{})
		if err != nil {
			r.logger.Warn("scoring posting failed",
				zap.String("source", p.Source),
				zap.Error(err),
			)
			out <- &Entry{Posting: p, Err: err.Error()}
			continue
		}

		r.logger.Debug("posting scored",
			zap.String("source", p.Source),
			zap.Float64("score", result.FinalScore),
			zap.String("category", result.MatchCategory),
		)
		out <- &Entry{Posting: p, Result: result}
	}
}
