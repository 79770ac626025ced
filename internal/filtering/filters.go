package filtering

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/resumeroast/resumeroast/internal/postings"
)

type parseableFilter struct{}

// NewParseable creates a filter that removes postings whose profile carries
// no usable content. Scoring them would only fail input validation later.
func NewParseable() Filter {
	return &parseableFilter{}
}

func (f *parseableFilter) Name() string { return "parseable" }

func (f *parseableFilter) Disable(string) {}

func (f *parseableFilter) IsEnabled() bool { return true }

func (f *parseableFilter) Validate(*Config) error { return nil }

func (f *parseableFilter) Apply(_ context.Context, deps Deps, set *postings.Postings) (*postings.Postings, Step, error) {
	initial := set.Len()

	var dropped []string
	kept := set.Items[:0]
	for _, p := range set.Items {
		if usable(p) {
			kept = append(kept, p)
			continue
		}
		dropped = append(dropped, p.Source)
	}
	set.Items = kept

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding postings without usable content",
			zap.Strings("excluded_postings", dropped),
			zap.Int("postings_left", set.Len()),
		)
	}

	return set, Step{Initial: initial, Dropped: len(dropped), Left: set.Len()}, nil
}

func usable(p *postings.Posting) bool {
	if p.Job == nil {
		return false
	}
	return strings.TrimSpace(p.Job.Title) != "" ||
		len(p.Job.Skills) > 0 ||
		strings.TrimSpace(p.Job.Description) != ""
}

type duplicatesFilter struct {
	disabled bool
	reason   string
}

// NewDuplicates creates a filter that keeps only the first posting for each
// title/company pair.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *duplicatesFilter) IsEnabled() bool { return !f.disabled }

func (f *duplicatesFilter) Validate(*Config) error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, deps Deps, set *postings.Postings) (*postings.Postings, Step, error) {
	initial := set.Len()

	seen := make(map[string]string, initial)
	var dropped []string
	kept := set.Items[:0]
	for _, p := range set.Items {
		key := p.Key()
		if first, ok := seen[key]; ok {
			dropped = append(dropped, p.Source)
			if deps.Logger != nil {
				deps.Logger.Debug("dropping duplicate posting",
					zap.String("source", p.Source),
					zap.String("kept", first),
				)
			}
			continue
		}
		seen[key] = p.Source
		kept = append(kept, p)
	}
	set.Items = kept

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding duplicate postings",
			zap.Strings("excluded_postings", dropped),
			zap.Int("postings_left", set.Len()),
		)
	}

	return set, Step{Initial: initial, Dropped: len(dropped), Left: set.Len()}, nil
}

func (f *duplicatesFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type companiesFilter struct {
	companies []string
}

// NewCompanies creates a filter that removes postings from the companies
// listed in the config.
func NewCompanies() Filter {
	return &companiesFilter{}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Disable(string) {}

func (f *companiesFilter) IsEnabled() bool { return true }

func (f *companiesFilter) Validate(cfg *Config) error {
	f.companies = nil
	if cfg != nil {
		f.companies = append(f.companies, cfg.Companies...)
	}
	return nil
}

func (f *companiesFilter) Apply(_ context.Context, deps Deps, set *postings.Postings) (*postings.Postings, Step, error) {
	initial := set.Len()
	if len(f.companies) == 0 {
		return set, Step{Initial: initial, Dropped: 0, Left: set.Len()}, nil
	}

	excluded := set.Exclude(postings.CompanyField, f.companies)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding postings by company",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", set.Len()),
		)
	}

	return set, Step{Initial: initial, Dropped: len(excluded), Left: set.Len()}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes postings recorded in the
// exclusion file. A missing file is treated as an empty list so the first
// run before anything was excluded still works.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, set *postings.Postings) (*postings.Postings, Step, error) {
	initial := set.Len()
	if f.path == "" {
		return set, Step{Initial: initial, Dropped: 0, Left: set.Len()}, nil
	}

	excluded, err := postings.LoadExcluded(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if deps.Logger != nil {
				deps.Logger.Debug("exclude file does not exist yet", zap.String("path", f.path))
			}
			return set, Step{Initial: initial, Dropped: 0, Left: set.Len()}, nil
		}
		return set, Step{}, fmt.Errorf("loading excluded postings: %w", err)
	}

	removed := set.Exclude(postings.SourceField, excluded.Sources())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding postings based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_postings", removed),
			zap.Int("postings_left", set.Len()),
		)
	}

	return set, Step{Initial: initial, Dropped: len(removed), Left: set.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

// DefaultSteps is the filter order used by a rank run: content checks first,
// then duplicate collapse, then user exclusions.
func DefaultSteps() []Filter {
	return []Filter{
		NewParseable(),
		NewDuplicates(),
		NewCompanies(),
		NewExcludeFile(),
	}
}

// describeDetails renders a status detail map for logging.
func describeDetails(details map[string]string) []zap.Field {
	fields := make([]zap.Field, 0, len(details))
	for k, v := range details {
		fields = append(fields, zap.String(k, v))
	}
	return fields
}

// LogStatuses writes one line per filter so a rank run records its pruning
// configuration up front.
func LogStatuses(logger *zap.Logger, steps []Filter) {
	if logger == nil {
		return
	}
	for _, status := range Describe(steps) {
		fields := []zap.Field{
			zap.String("name", status.Name),
			zap.String("enabled", strconv.FormatBool(status.Enabled)),
		}
		if status.Reason != "" {
			fields = append(fields, zap.String("reason", status.Reason))
		}
		fields = append(fields, describeDetails(status.Details)...)
		logger.Debug("filter configured", fields...)
	}
}
