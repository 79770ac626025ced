// Package filtering prunes a posting set before scoring spends model calls
// on it. Filters run sequentially with per-step accounting so a rank run can
// always explain why a posting disappeared.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/resumeroast/resumeroast/internal/postings"
)

// Filter is a single pruning step applied to the posting set.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, set *postings.Postings) (*postings.Postings, Step, error)
}

// Deps aggregates dependencies shared across the filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing one filter.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config carries the settings consumed by the filters.
type Config struct {
	Companies   []string
	ExcludeFile string
}

// Status is runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that report detailed status.
type statusProvider interface {
	Status() Status
}

// Filtering runs an ordered list of filters over a posting set.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	return &Filtering{steps: steps, logger: logger}
}

// DisableByName marks the named filter as disabled while keeping it in the
// list, so its status still shows up in Describe output.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled filter against the config, then applies them
// in order. The set shrinks monotonically; no filter may add postings.
func (f *Filtering) Run(ctx context.Context, cfg *Config, set *postings.Postings) (*postings.Postings, error) {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	deps := Deps{Logger: f.logger}
	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, set)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		set = next
	}

	return set, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
