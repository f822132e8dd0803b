package theorem

import (
	"maps"
	"math"
	"slices"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/contextual"
)

// measured is a pair of objects whose measure is compared: the endpoints
// of a segment or the sides of an angle.
type measured struct {
	x, y *object
}

func (m measured) isNew() bool {
	return m.x.IsNew() || m.y.IsNew()
}

// bucketPairs groups the pairs of objects by their rounded measure in the
// first container and yields every two pairs sharing a bucket. Candidates
// are compared only in the first container here, so an equality that the
// rounding splits across two buckets there is not found.
func bucketPairs(objects []*object, measure func(x, y *object) (float64, bool), onlyNew bool, yield func(a, b measured) bool) {
	buckets := make(map[float64][]measured)
	pairs(objects, false, func(x, y *object) bool {
		if value, ok := measure(x, y); ok {
			buckets[value] = append(buckets[value], measured{x: x, y: y})
		}
		return true
	})
	for _, value := range slices.Sorted(maps.Keys(buckets)) {
		bucket := buckets[value]
		for i, a := range bucket {
			for _, b := range bucket[i+1:] {
				if onlyNew && !a.isNew() && !b.isNew() {
					continue
				}
				if !yield(a, b) {
					return
				}
			}
		}
	}
}

// EqualLineSegmentsFinder reports pairs of segments between points of the
// configuration that have equal lengths.
var EqualLineSegmentsFinder Finder = finder{
	theoremType: geogen.EqualLineSegments,
	find: func(ctx *contextual.Container, onlyNew bool, yield func(PotentialTheorem) bool) {
		first := firstContainer(ctx)
		length := func(x, y *object, c *container.ObjectsContainer) (float64, bool) {
			p, ok1 := valueIn[analytic.Point](ctx, x, c)
			q, ok2 := valueIn[analytic.Point](ctx, y, c)
			return c.Precision().Round(p.Distance(q)), ok1 && ok2
		}
		points := ctx.GetGeometricalObjects(contextual.Points(contextual.AllObjects))
		bucketPairs(points, func(x, y *object) (float64, bool) {
			return length(x, y, first)
		}, onlyNew, func(a, b measured) bool {
			objects := []geogen.TheoremObject{
				geogen.SegmentTheoremObject(a.x.ConfigurationObject(), a.y.ConfigurationObject()),
				geogen.SegmentTheoremObject(b.x.ConfigurationObject(), b.y.ConfigurationObject()),
			}
			return yield(verified(geogen.EqualLineSegments, objects, first, func(c *container.ObjectsContainer) bool {
				l1, ok1 := length(a.x, a.y, c)
				l2, ok2 := length(b.x, b.y, c)
				return ok1 && ok2 && l1 == l2
			}))
		})
	},
}

// EqualAnglesFinder reports pairs of equal angles between lines. Zero and
// right angles are left to the parallel and perpendicular finders.
var EqualAnglesFinder Finder = finder{
	theoremType: geogen.EqualAngles,
	find: func(ctx *contextual.Container, onlyNew bool, yield func(PotentialTheorem) bool) {
		first := firstContainer(ctx)
		angle := func(x, y *object, c *container.ObjectsContainer) (float64, bool) {
			l1, ok1 := valueIn[analytic.Line](ctx, x, c)
			l2, ok2 := valueIn[analytic.Line](ctx, y, c)
			if !ok1 || !ok2 {
				return 0, false
			}
			prec := c.Precision()
			value := prec.Round(l1.AngleBetween(l2))
			return value, !prec.IsZero(value) && !prec.Equal(value, math.Pi/2)
		}
		lines := ctx.GetGeometricalObjects(contextual.Lines(contextual.AllObjects))
		bucketPairs(lines, func(x, y *object) (float64, bool) {
			return angle(x, y, first)
		}, onlyNew, func(a, b measured) bool {
			objects := []geogen.TheoremObject{
				geogen.AngleTheoremObject(reference(a.x), reference(a.y)),
				geogen.AngleTheoremObject(reference(b.x), reference(b.y)),
			}
			return yield(verified(geogen.EqualAngles, objects, first, func(c *container.ObjectsContainer) bool {
				v1, ok1 := angle(a.x, a.y, c)
				v2, ok2 := angle(b.x, b.y, c)
				return ok1 && ok2 && v1 == v2
			}))
		})
	},
}
