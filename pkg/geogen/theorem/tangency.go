package theorem

import (
	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/contextual"
)

// TangentCirclesFinder reports pairs of tangent circles.
var TangentCirclesFinder Finder = finder{
	theoremType: geogen.TangentCircles,
	find: func(ctx *contextual.Container, onlyNew bool, yield func(PotentialTheorem) bool) {
		first := firstContainer(ctx)
		holds := func(x, y *object, c *container.ObjectsContainer) bool {
			c1, ok1 := valueIn[analytic.Circle](ctx, x, c)
			c2, ok2 := valueIn[analytic.Circle](ctx, y, c)
			return ok1 && ok2 && c1.IsTangentTo(c2, c.Precision())
		}
		pairs(ctx.GetGeometricalObjects(contextual.Circles(contextual.AllObjects)), onlyNew, func(x, y *object) bool {
			if !holds(x, y, first) {
				return true
			}
			return yield(verified(geogen.TangentCircles, references(x, y), first, func(c *container.ObjectsContainer) bool {
				return holds(x, y, c)
			}))
		})
	},
}

// LineTangentToCircleFinder reports lines touching circles.
var LineTangentToCircleFinder Finder = finder{
	theoremType: geogen.LineTangentToCircle,
	find: func(ctx *contextual.Container, onlyNew bool, yield func(PotentialTheorem) bool) {
		first := firstContainer(ctx)
		holds := func(x, y *object, c *container.ObjectsContainer) bool {
			l, ok1 := valueIn[analytic.Line](ctx, x, c)
			circle, ok2 := valueIn[analytic.Circle](ctx, y, c)
			return ok1 && ok2 && l.IsTangentTo(circle, c.Precision())
		}
		lines := ctx.GetGeometricalObjects(contextual.Lines(contextual.AllObjects))
		circles := ctx.GetGeometricalObjects(contextual.Circles(contextual.AllObjects))
		product(lines, circles, onlyNew, func(x, y *object) bool {
			if !holds(x, y, first) {
				return true
			}
			return yield(verified(geogen.LineTangentToCircle, references(x, y), first, func(c *container.ObjectsContainer) bool {
				return holds(x, y, c)
			}))
		})
	},
}
