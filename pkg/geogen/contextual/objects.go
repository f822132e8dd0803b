package contextual

import (
	"fmt"
	"sort"

	"github.com/operator-framework/geogen/pkg/geogen"
)

// Kind tags the three variants of GeometricalObject.
type Kind int

const (
	PointKind Kind = iota + 1
	LineKind
	CircleKind
)

func (k Kind) String() string {
	switch k {
	case PointKind:
		return "point"
	case LineKind:
		return "line"
	case CircleKind:
		return "circle"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func kindOf(t geogen.ObjectType) Kind {
	switch t {
	case geogen.LineType:
		return LineKind
	case geogen.CircleType:
		return CircleKind
	}
	return PointKind
}

// GeometricalObject is a point, line or circle of the incidence graph. A
// point always comes from a configuration object. A line or circle may be
// implicit: it exists because at least two (three) points lie on it, and it
// gets a configuration object only if one is constructed later.
type GeometricalObject struct {
	id     int
	kind   Kind
	object *geogen.ConfigurationObject
	isNew  bool
	// promoted is set when the most recent addition constructed object
	// onto an implicit line or circle.
	promoted bool

	// points an implicit line or circle was created from
	defining []*GeometricalObject

	// points lying on a line or circle, in the order they were linked
	points []*GeometricalObject
	// lines and circles passing through a point
	lines   []*GeometricalObject
	circles []*GeometricalObject
}

func (g *GeometricalObject) ID() int {
	return g.id
}

func (g *GeometricalObject) Kind() Kind {
	return g.kind
}

// ConfigurationObject returns the object g represents, or nil for an
// implicit line or circle.
func (g *GeometricalObject) ConfigurationObject() *geogen.ConfigurationObject {
	return g.object
}

func (g *GeometricalObject) IsExplicit() bool {
	return g.object != nil
}

// IsNew reports whether g was created by the most recent incremental
// addition.
func (g *GeometricalObject) IsNew() bool {
	return g.isNew
}

// IsNewlyExplicit reports whether the most recent incremental addition gave
// an existing implicit line or circle its configuration object. Such an
// object is not new: every relation it takes part in was already there.
func (g *GeometricalObject) IsNewlyExplicit() bool {
	return g.promoted
}

// DefiningPoints returns the configuration objects of the points a line or
// circle was first determined by, or nil if it was constructed directly.
// They do not change when the object becomes explicit or gains points.
func (g *GeometricalObject) DefiningPoints() []*geogen.ConfigurationObject {
	if len(g.defining) == 0 {
		return nil
	}
	objects := make([]*geogen.ConfigurationObject, len(g.defining))
	for i, p := range sortedPoints(g.defining) {
		objects[i] = p.object
	}
	return objects
}

// Points returns the points on a line or circle ordered by configuration
// object id.
func (g *GeometricalObject) Points() []*GeometricalObject {
	return sortedPoints(g.points)
}

func (g *GeometricalObject) Lines() []*GeometricalObject {
	return append([]*GeometricalObject(nil), g.lines...)
}

func (g *GeometricalObject) Circles() []*GeometricalObject {
	return append([]*GeometricalObject(nil), g.circles...)
}

// ConfigurationPoints returns the configuration objects of Points.
func (g *GeometricalObject) ConfigurationPoints() []*geogen.ConfigurationObject {
	points := g.Points()
	objects := make([]*geogen.ConfigurationObject, len(points))
	for i, p := range points {
		objects[i] = p.object
	}
	return objects
}

func (g *GeometricalObject) LiesOn(curve *GeometricalObject) bool {
	for _, p := range curve.points {
		if p == g {
			return true
		}
	}
	return false
}

func (g *GeometricalObject) String() string {
	if g.object != nil {
		return g.object.String()
	}
	names := make([]string, 0, len(g.points))
	for _, p := range g.Points() {
		names = append(names, p.String())
	}
	return fmt.Sprintf("%s%v", g.kind, names)
}

func link(point, curve *GeometricalObject) {
	if point.LiesOn(curve) {
		return
	}
	curve.points = append(curve.points, point)
	switch curve.kind {
	case LineKind:
		point.lines = append(point.lines, curve)
	case CircleKind:
		point.circles = append(point.circles, curve)
	}
}

func sortedPoints(points []*GeometricalObject) []*GeometricalObject {
	sorted := append([]*GeometricalObject(nil), points...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].object.ID() < sorted[j].object.ID()
	})
	return sorted
}
