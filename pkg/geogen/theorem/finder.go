// Package theorem enumerates candidate theorems of a configuration. Each
// Finder handles one theorem type and produces PotentialTheorems lazily;
// verifying them against every container is left to the caller.
package theorem

import (
	"iter"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/contextual"
)

// PotentialTheorem is a candidate theorem together with a numeric check.
type PotentialTheorem struct {
	Type    geogen.TheoremType
	Objects []geogen.TheoremObject
	// Verify reports whether the theorem holds in one container. It is nil
	// for theorems read off the incidence graph, which already agrees with
	// every container.
	Verify func(c *container.ObjectsContainer) bool
}

// Theorem returns the candidate in canonical form.
func (p PotentialTheorem) Theorem() geogen.Theorem {
	return geogen.NewTheorem(p.Type, p.Objects...)
}

// Holds applies Verify to c.
func (p PotentialTheorem) Holds(c *container.ObjectsContainer) bool {
	return p.Verify == nil || p.Verify(c)
}

type Finder interface {
	Type() geogen.TheoremType
	// FindAllTheorems enumerates candidates over every object of the
	// container.
	FindAllTheorems(ctx *contextual.Container) iter.Seq[PotentialTheorem]
	// FindNewTheorems enumerates only the candidates involving at least
	// one new object.
	FindNewTheorems(ctx *contextual.Container) iter.Seq[PotentialTheorem]
}

// finder implements Finder with a single search function. onlyNew
// restricts the search to candidates with a new object.
type finder struct {
	theoremType geogen.TheoremType
	find        func(ctx *contextual.Container, onlyNew bool, yield func(PotentialTheorem) bool)
}

var _ Finder = finder{}

func (f finder) Type() geogen.TheoremType {
	return f.theoremType
}

func (f finder) FindAllTheorems(ctx *contextual.Container) iter.Seq[PotentialTheorem] {
	return f.search(ctx, false)
}

func (f finder) FindNewTheorems(ctx *contextual.Container) iter.Seq[PotentialTheorem] {
	return f.search(ctx, true)
}

func (f finder) search(ctx *contextual.Container, onlyNew bool) iter.Seq[PotentialTheorem] {
	return func(yield func(PotentialTheorem) bool) {
		f.find(ctx, onlyNew, yield)
	}
}

// All returns a finder for every theorem type.
func All() []Finder {
	return []Finder{
		CollinearPointsFinder,
		ConcyclicPointsFinder,
		IncidenceFinder,
		ConcurrentLinesFinder,
		ParallelLinesFinder,
		PerpendicularLinesFinder,
		TangentCirclesFinder,
		LineTangentToCircleFinder,
		EqualLineSegmentsFinder,
		EqualAnglesFinder,
	}
}

// FindAll chains FindAllTheorems of several finders.
func FindAll(ctx *contextual.Container, finders ...Finder) iter.Seq[PotentialTheorem] {
	return chain(finders, func(f Finder) iter.Seq[PotentialTheorem] { return f.FindAllTheorems(ctx) })
}

// FindNew chains FindNewTheorems of several finders.
func FindNew(ctx *contextual.Container, finders ...Finder) iter.Seq[PotentialTheorem] {
	return chain(finders, func(f Finder) iter.Seq[PotentialTheorem] { return f.FindNewTheorems(ctx) })
}

func chain(finders []Finder, seq func(Finder) iter.Seq[PotentialTheorem]) iter.Seq[PotentialTheorem] {
	return func(yield func(PotentialTheorem) bool) {
		for _, f := range finders {
			for p := range seq(f) {
				if !yield(p) {
					return
				}
			}
		}
	}
}
