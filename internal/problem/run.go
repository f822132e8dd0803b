package problem

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/search"
)

// Report holds what a run found.
type Report struct {
	Problem       *Problem
	// Start is the starting configuration, Configuration the one after
	// every accepted extension.
	Start         *geogen.Configuration
	Configuration *geogen.Configuration
	Initial       []geogen.Theorem
	Steps         []search.Outcome

	// Abandoned is set when the containers could not be made consistent
	// again. The run stops there, and AbandonedAt is the extension being
	// added at the time, nil if the starting configuration failed.
	Abandoned   error
	AbandonedAt *geogen.ConfigurationObject
}

// Theorems returns every theorem of the report in discovery order.
func (r *Report) Theorems() []geogen.Theorem {
	all := append([]geogen.Theorem(nil), r.Initial...)
	for _, step := range r.Steps {
		all = append(all, step.Theorems...)
	}
	return all
}

// Run finds the theorems of the starting configuration and then extends
// it with every extension in turn. Extensions that cannot be constructed
// or duplicate an existing object are reported and skipped. A run whose
// containers run out of reconstructions is not an error: the report is
// returned with Abandoned set.
func Run(ctx context.Context, p *Problem, options ...search.Option) (*Report, error) {
	configuration, extensions, err := p.Build()
	if err != nil {
		return nil, fmt.Errorf("problem %s: %w", p.Name, err)
	}
	report := &Report{Problem: p, Start: configuration, Configuration: configuration}
	s, err := search.New(configuration, options...)
	if err != nil {
		return report.abandon(nil, fmt.Errorf("problem %s: %w", p.Name, err))
	}
	if report.Initial, err = s.Initial(); err != nil {
		return report.abandon(nil, fmt.Errorf("problem %s: %w", p.Name, err))
	}
	for _, object := range extensions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome, err := s.Extend(object)
		if err != nil {
			report.Configuration = s.Configuration()
			return report.abandon(object, fmt.Errorf("problem %s: extending with %s: %w", p.Name, object, err))
		}
		report.Steps = append(report.Steps, outcome)
	}
	report.Configuration = s.Configuration()
	return report, nil
}

// abandon records err in the report if it ended the search, and returns it
// otherwise.
func (r *Report) abandon(at *geogen.ConfigurationObject, err error) (*Report, error) {
	if !errors.Is(err, container.ErrReconstructionExhausted) {
		return nil, err
	}
	r.Abandoned = err
	r.AbandonedAt = at
	return r, nil
}

// RunAll runs problems concurrently, at most parallelism at a time (no
// limit if parallelism is not positive). Every problem gets its own
// search, configured by options. Reports are returned in the order of
// problems. An abandoned problem does not stop the others.
func RunAll(ctx context.Context, problems []*Problem, parallelism int, options func(*Problem) []search.Option) ([]*Report, error) {
	reports := make([]*Report, len(problems))
	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, p := range problems {
		g.Go(func() error {
			var opts []search.Option
			if options != nil {
				opts = options(p)
			}
			report, err := Run(ctx, p, opts...)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
