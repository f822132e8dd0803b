package theorem

import (
	"slices"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/contextual"
)

// CollinearPointsFinder reports every three points of a line. The points
// on a line are already confirmed in every container, so the theorems need
// no verification.
var CollinearPointsFinder Finder = finder{
	theoremType: geogen.CollinearPoints,
	find: func(ctx *contextual.Container, onlyNew bool, yield func(PotentialTheorem) bool) {
		pointSubsets(ctx.GetGeometricalObjects(contextual.Lines(contextual.AllObjects)), 3, geogen.CollinearPoints, onlyNew, yield)
	},
}

// ConcyclicPointsFinder reports every four points of a circle.
var ConcyclicPointsFinder Finder = finder{
	theoremType: geogen.ConcyclicPoints,
	find: func(ctx *contextual.Container, onlyNew bool, yield func(PotentialTheorem) bool) {
		pointSubsets(ctx.GetGeometricalObjects(contextual.Circles(contextual.AllObjects)), 4, geogen.ConcyclicPoints, onlyNew, yield)
	},
}

func pointSubsets(curves []*object, k int, t geogen.TheoremType, onlyNew bool, yield func(PotentialTheorem) bool) {
	for _, curve := range curves {
		points := curve.Points()
		if len(points) < k || onlyNew && !anyNew(points) {
			continue
		}
		ok := subsets(points, k, func(subset []*object) bool {
			if onlyNew && !anyNew(subset) {
				return true
			}
			return yield(PotentialTheorem{Type: t, Objects: references(subset...)})
		})
		if !ok {
			return
		}
	}
}

// IncidenceFinder reports points lying on constructed lines and circles,
// except the points the line or circle was constructed from.
var IncidenceFinder Finder = finder{
	theoremType: geogen.Incidence,
	find: func(ctx *contextual.Container, onlyNew bool, yield func(PotentialTheorem) bool) {
		for _, curve := range ctx.GetGeometricalObjects(contextual.LinesAndCircles(contextual.AllObjects)) {
			if !curve.IsExplicit() {
				continue
			}
			arguments := curve.ConfigurationObject().Arguments()
			for _, point := range curve.Points() {
				if slices.Contains(arguments, point.ConfigurationObject()) {
					continue
				}
				if onlyNew && !curve.IsNew() && !curve.IsNewlyExplicit() && !point.IsNew() {
					continue
				}
				if !yield(PotentialTheorem{Type: geogen.Incidence, Objects: references(point, curve)}) {
					return
				}
			}
		}
	},
}
