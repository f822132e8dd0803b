// Package analyzer verifies potential theorems against every container of
// a manager and keeps those that hold in a quorum of them.
package analyzer

import (
	"fmt"
	"iter"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/theorem"
)

type Analyzer struct {
	manager *container.Manager
	quorum  Quorum
	tracer  geogen.Tracer
}

type Option func(a *Analyzer) error

func WithQuorum(q Quorum) Option {
	return func(a *Analyzer) error {
		a.quorum = q
		return nil
	}
}

func WithTracer(t geogen.Tracer) Option {
	return func(a *Analyzer) error {
		a.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(a *Analyzer) error {
		if a.quorum != nil {
			return nil
		}
		s := a.manager.Settings()
		if s.MinimalNumberOfTrueContainers == 0 {
			a.quorum = AllContainers()
		} else {
			a.quorum = AtLeast(s.Quorum())
		}
		return nil
	},
	func(a *Analyzer) error {
		if a.tracer == nil {
			a.tracer = a.manager.Tracer()
		}
		return nil
	},
}

func New(manager *container.Manager, options ...Option) (*Analyzer, error) {
	a := &Analyzer{manager: manager}
	for _, option := range append(append([]Option(nil), options...), defaults...) {
		if err := option(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Analyzer) Quorum() Quorum {
	return a.quorum
}

// Analyze verifies every candidate and returns the accepted theorems in
// the order they were found, each once.
func (a *Analyzer) Analyze(candidates iter.Seq[theorem.PotentialTheorem]) ([]geogen.Theorem, error) {
	containers := a.manager.Containers()
	results := make([]bool, len(containers))
	seen := make(map[string]struct{})
	var accepted []geogen.Theorem

	for candidate := range candidates {
		t := candidate.Theorem()
		key := t.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		holds := 0
		for i, c := range containers {
			results[i] = candidate.Holds(c)
			if results[i] {
				holds++
			}
		}
		ok, err := a.quorum.Accepts(results)
		if err != nil {
			return nil, fmt.Errorf("analyzing %s: %w", t, err)
		}
		if !ok {
			a.tracer.TheoremRejected(t, holds, len(containers))
			continue
		}
		accepted = append(accepted, t)
	}
	return accepted, nil
}
