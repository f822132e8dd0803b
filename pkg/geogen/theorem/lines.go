package theorem

import (
	"slices"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/contextual"
)

// ParallelLinesFinder reports pairs of parallel lines.
var ParallelLinesFinder Finder = linePairs(geogen.ParallelLines, analytic.Line.IsParallelTo)

// PerpendicularLinesFinder reports pairs of perpendicular lines.
var PerpendicularLinesFinder Finder = linePairs(geogen.PerpendicularLines, analytic.Line.IsPerpendicularTo)

func linePairs(t geogen.TheoremType, relation func(l, o analytic.Line, prec analytic.Precision) bool) Finder {
	return finder{
		theoremType: t,
		find: func(ctx *contextual.Container, onlyNew bool, yield func(PotentialTheorem) bool) {
			first := firstContainer(ctx)
			holds := func(x, y *object, c *container.ObjectsContainer) bool {
				l1, ok1 := valueIn[analytic.Line](ctx, x, c)
				l2, ok2 := valueIn[analytic.Line](ctx, y, c)
				return ok1 && ok2 && relation(l1, l2, c.Precision())
			}
			pairs(ctx.GetGeometricalObjects(contextual.Lines(contextual.AllObjects)), onlyNew, func(x, y *object) bool {
				if !holds(x, y, first) {
					return true
				}
				return yield(verified(t, references(x, y), first, func(c *container.ObjectsContainer) bool {
					return holds(x, y, c)
				}))
			})
		},
	}
}

// ConcurrentLinesFinder reports three lines through a common point that is
// not a point of the configuration.
var ConcurrentLinesFinder Finder = finder{
	theoremType: geogen.ConcurrentLines,
	find: func(ctx *contextual.Container, onlyNew bool, yield func(PotentialTheorem) bool) {
		first := firstContainer(ctx)
		lines := ctx.GetGeometricalObjects(contextual.Lines(contextual.AllObjects))

		// group lines by their pairwise intersections in the first container
		var order []analytic.Key
		groups := make(map[analytic.Key][]*object)
		pairs(lines, false, func(x, y *object) bool {
			p, ok := intersection(ctx, x, y, first)
			if !ok || ctx.IsExplicitPoint(first, p) {
				return true
			}
			key := analytic.KeyOf(p, first.Precision())
			if _, seen := groups[key]; !seen {
				order = append(order, key)
			}
			for _, l := range []*object{x, y} {
				if !slices.Contains(groups[key], l) {
					groups[key] = append(groups[key], l)
				}
			}
			return true
		})

		for _, key := range order {
			group := groups[key]
			if len(group) < 3 || onlyNew && !anyNew(group) {
				continue
			}
			slices.SortFunc(group, func(a, b *object) int { return a.ID() - b.ID() })
			ok := subsets(group, 3, func(subset []*object) bool {
				if onlyNew && !anyNew(subset) {
					return true
				}
				l1, l2, l3 := subset[0], subset[1], subset[2]
				return yield(verified(geogen.ConcurrentLines, references(l1, l2, l3), first, func(c *container.ObjectsContainer) bool {
					p, ok := intersection(ctx, l1, l2, c)
					if !ok || ctx.IsExplicitPoint(c, p) {
						return false
					}
					l, ok := valueIn[analytic.Line](ctx, l3, c)
					return ok && l.Contains(p, c.Precision())
				}))
			})
			if !ok {
				return
			}
		}
	},
}

func intersection(ctx *contextual.Container, x, y *object, c *container.ObjectsContainer) (analytic.Point, bool) {
	l1, ok1 := valueIn[analytic.Line](ctx, x, c)
	l2, ok2 := valueIn[analytic.Line](ctx, y, c)
	if !ok1 || !ok2 {
		return analytic.Point{}, false
	}
	return l1.Intersect(l2, c.Precision())
}
