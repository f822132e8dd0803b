package theorem

import (
	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/contextual"
)

type object = contextual.GeometricalObject

func split(objects []*object) (fresh, old []*object) {
	for _, o := range objects {
		if o.IsNew() {
			fresh = append(fresh, o)
		} else {
			old = append(old, o)
		}
	}
	return fresh, old
}

func ordered(x, y *object) (*object, *object) {
	if y.ID() < x.ID() {
		return y, x
	}
	return x, y
}

// pairs calls yield with every unordered pair of objects, smaller id
// first. With onlyNew set, only pairs with a new object are produced, by
// combining new objects with each other and with old ones.
func pairs(objects []*object, onlyNew bool, yield func(x, y *object) bool) bool {
	if !onlyNew {
		for i, x := range objects {
			for _, y := range objects[i+1:] {
				if !yield(ordered(x, y)) {
					return false
				}
			}
		}
		return true
	}
	fresh, old := split(objects)
	for i, x := range fresh {
		for _, y := range fresh[i+1:] {
			if !yield(ordered(x, y)) {
				return false
			}
		}
		for _, y := range old {
			if !yield(ordered(x, y)) {
				return false
			}
		}
	}
	return true
}

// product calls yield with every (x, y) from xs × ys, restricted to pairs
// with a new object when onlyNew is set.
func product(xs, ys []*object, onlyNew bool, yield func(x, y *object) bool) bool {
	for _, x := range xs {
		for _, y := range ys {
			if onlyNew && !x.IsNew() && !y.IsNew() {
				continue
			}
			if !yield(x, y) {
				return false
			}
		}
	}
	return true
}

// subsets calls yield with every k-element subset of objects, preserving
// order. The slice passed to yield is reused between calls.
func subsets(objects []*object, k int, yield func([]*object) bool) bool {
	chosen := make([]*object, 0, k)
	var walk func(start int) bool
	walk = func(start int) bool {
		if len(chosen) == k {
			return yield(chosen)
		}
		for i := start; i <= len(objects)-(k-len(chosen)); i++ {
			chosen = append(chosen, objects[i])
			if !walk(i + 1) {
				return false
			}
			chosen = chosen[:len(chosen)-1]
		}
		return true
	}
	return walk(0)
}

func anyNew(objects []*object) bool {
	for _, o := range objects {
		if o.IsNew() {
			return true
		}
	}
	return false
}

// reference describes a geometrical object in a theorem. A line or circle
// keeps the identity of the points it was first determined by, so a
// theorem about it reads the same before and after it is constructed.
func reference(g *object) geogen.TheoremObject {
	switch g.Kind() {
	case contextual.LineKind:
		return geogen.LineTheoremObject(g.ConfigurationObject(), g.DefiningPoints()...)
	case contextual.CircleKind:
		return geogen.CircleTheoremObject(g.ConfigurationObject(), g.DefiningPoints()...)
	}
	return geogen.PointTheoremObject(g.ConfigurationObject())
}

func references(objects ...*object) []geogen.TheoremObject {
	result := make([]geogen.TheoremObject, len(objects))
	for i, o := range objects {
		result[i] = reference(o)
	}
	return result
}

func valueIn[T analytic.Object](ctx *contextual.Container, g *object, c *container.ObjectsContainer) (T, bool) {
	value, err := contextual.Analytic[T](ctx, g, c)
	return value, err == nil
}

// reference container used to filter candidates before verification
func firstContainer(ctx *contextual.Container) *container.ObjectsContainer {
	return ctx.Manager().Containers()[0]
}

// verified returns a candidate whose check is skipped for the container
// it was found in.
func verified(t geogen.TheoremType, objects []geogen.TheoremObject, first *container.ObjectsContainer, check func(c *container.ObjectsContainer) bool) PotentialTheorem {
	return PotentialTheorem{
		Type:    t,
		Objects: objects,
		Verify: func(c *container.ObjectsContainer) bool {
			if c == first {
				return true
			}
			return check(c)
		},
	}
}
