// Package construction provides the predefined constructions and the
// samplers that place loose objects for every supported layout.
package construction

import (
	"math"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
)

// Constructions decide degenerate cases with this precision. Containers
// compare objects with their own, configurable, precision.
const precision = analytic.DefaultPrecision

var (
	p = geogen.PointType
	l = geogen.LineType
	c = geogen.CircleType
)

type predefined struct {
	name      string
	output    geogen.ObjectType
	signature []geogen.ObjectType
	construct func(args []analytic.Object) (analytic.Object, bool)
}

var _ geogen.Construction = &predefined{}

func (d *predefined) Name() string {
	return d.name
}

func (d *predefined) OutputType() geogen.ObjectType {
	return d.output
}

func (d *predefined) Signature() []geogen.ObjectType {
	return d.signature
}

func (d *predefined) Construct(args []analytic.Object) (analytic.Object, bool) {
	if len(args) != len(d.signature) {
		return nil, false
	}
	for i, a := range args {
		if geogen.TypeOf(a) != d.signature[i] {
			return nil, false
		}
	}
	return d.construct(args)
}

func (d *predefined) String() string {
	return d.name
}

var (
	// Midpoint(A, B) is the midpoint of segment AB.
	Midpoint geogen.Construction = &predefined{
		name: "Midpoint", output: p, signature: []geogen.ObjectType{p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			a, b := points2(args)
			return a.Midpoint(b), true
		},
	}

	LineFromPoints geogen.Construction = &predefined{
		name: "LineFromPoints", output: l, signature: []geogen.ObjectType{p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			a, b := points2(args)
			return ok(analytic.NewLine(a, b, precision))
		},
	}

	IntersectionOfLines geogen.Construction = &predefined{
		name: "IntersectionOfLines", output: p, signature: []geogen.ObjectType{l, l},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			return ok(args[0].(analytic.Line).Intersect(args[1].(analytic.Line), precision))
		},
	}

	// IntersectionOfLinesFromPoints(A, B, C, D) is the common point of
	// lines AB and CD.
	IntersectionOfLinesFromPoints geogen.Construction = &predefined{
		name: "IntersectionOfLinesFromPoints", output: p, signature: []geogen.ObjectType{p, p, p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			ab, okAB := analytic.NewLine(args[0].(analytic.Point), args[1].(analytic.Point), precision)
			cd, okCD := analytic.NewLine(args[2].(analytic.Point), args[3].(analytic.Point), precision)
			if !okAB || !okCD {
				return nil, false
			}
			return ok(ab.Intersect(cd, precision))
		},
	}

	Circumcircle geogen.Construction = &predefined{
		name: "Circumcircle", output: c, signature: []geogen.ObjectType{p, p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			a, b, cc := points3(args)
			return ok(analytic.NewCircle(a, b, cc, precision))
		},
	}

	Circumcenter geogen.Construction = &predefined{
		name: "Circumcenter", output: p, signature: []geogen.ObjectType{p, p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			a, b, cc := points3(args)
			circle, found := analytic.NewCircle(a, b, cc, precision)
			if !found {
				return nil, false
			}
			return circle.Center, true
		},
	}

	CenterOfCircle geogen.Construction = &predefined{
		name: "CenterOfCircle", output: p, signature: []geogen.ObjectType{c},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			return args[0].(analytic.Circle).Center, true
		},
	}

	// PerpendicularProjection(P, l) is the foot of the perpendicular from
	// P to l.
	PerpendicularProjection geogen.Construction = &predefined{
		name: "PerpendicularProjection", output: p, signature: []geogen.ObjectType{p, l},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			return args[1].(analytic.Line).Projection(args[0].(analytic.Point)), true
		},
	}

	// PerpendicularProjectionOnLineFromPoints(P, A, B) is the foot of the
	// perpendicular from P to line AB.
	PerpendicularProjectionOnLineFromPoints geogen.Construction = &predefined{
		name: "PerpendicularProjectionOnLineFromPoints", output: p, signature: []geogen.ObjectType{p, p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			pp, a, b := points3(args)
			line, found := analytic.NewLine(a, b, precision)
			if !found {
				return nil, false
			}
			return line.Projection(pp), true
		},
	}

	// PerpendicularLine(P, l) passes through P and is perpendicular to l.
	PerpendicularLine geogen.Construction = &predefined{
		name: "PerpendicularLine", output: l, signature: []geogen.ObjectType{p, l},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			return analytic.NewLineWithNormal(args[0].(analytic.Point), args[1].(analytic.Line).Direction()), true
		},
	}

	// ParallelLine(P, l) passes through P and is parallel to l.
	ParallelLine geogen.Construction = &predefined{
		name: "ParallelLine", output: l, signature: []geogen.ObjectType{p, l},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			return analytic.NewLineWithNormal(args[0].(analytic.Point), args[1].(analytic.Line).Normal()), true
		},
	}

	PerpendicularBisector geogen.Construction = &predefined{
		name: "PerpendicularBisector", output: l, signature: []geogen.ObjectType{p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			a, b := points2(args)
			if a.Equal(b, precision) {
				return nil, false
			}
			return analytic.NewLineWithNormal(a.Midpoint(b), b.Sub(a)), true
		},
	}

	// InternalAngleBisector(A, B, C) bisects the angle BAC.
	InternalAngleBisector geogen.Construction = &predefined{
		name: "InternalAngleBisector", output: l, signature: []geogen.ObjectType{p, p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			a, b, cc := points3(args)
			if analytic.AreCollinear(a, b, cc, precision) {
				return nil, false
			}
			u := unit(b.Sub(a))
			v := unit(cc.Sub(a))
			d := u.Add(v)
			return analytic.NewLineWithNormal(a, analytic.Point{X: -d.Y, Y: d.X}), true
		},
	}

	Incenter geogen.Construction = &predefined{
		name: "Incenter", output: p, signature: []geogen.ObjectType{p, p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			a, b, cc := points3(args)
			if analytic.AreCollinear(a, b, cc, precision) {
				return nil, false
			}
			la, lb, lc := b.Distance(cc), a.Distance(cc), a.Distance(b)
			sum := la + lb + lc
			return a.Scale(la / sum).Add(b.Scale(lb / sum)).Add(cc.Scale(lc / sum)), true
		},
	}

	Orthocenter geogen.Construction = &predefined{
		name: "Orthocenter", output: p, signature: []geogen.ObjectType{p, p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			a, b, cc := points3(args)
			if analytic.AreCollinear(a, b, cc, precision) {
				return nil, false
			}
			altitudeA := analytic.NewLineWithNormal(a, cc.Sub(b))
			altitudeB := analytic.NewLineWithNormal(b, cc.Sub(a))
			return ok(altitudeA.Intersect(altitudeB, precision))
		},
	}

	// PointReflection(A, B) is the reflection of A through B.
	PointReflection geogen.Construction = &predefined{
		name: "PointReflection", output: p, signature: []geogen.ObjectType{p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			a, b := points2(args)
			return a.Reflect(b), true
		},
	}

	// SecondIntersectionOfCircleAndLineFromPoints(A, B, C, D) is the
	// intersection of line AB with the circle ACD that differs from A.
	SecondIntersectionOfCircleAndLineFromPoints geogen.Construction = &predefined{
		name: "SecondIntersectionOfCircleAndLineFromPoints", output: p, signature: []geogen.ObjectType{p, p, p, p},
		construct: func(args []analytic.Object) (analytic.Object, bool) {
			a, b := points2(args[:2])
			cc, d := points2(args[2:])
			line, okLine := analytic.NewLine(a, b, precision)
			circle, okCircle := analytic.NewCircle(a, cc, d, precision)
			if !okLine || !okCircle {
				return nil, false
			}
			for _, x := range circle.IntersectLine(line, precision) {
				if !x.Equal(a, precision) {
					return x, true
				}
			}
			return nil, false
		},
	}
)

// All returns every predefined construction.
func All() []geogen.Construction {
	return []geogen.Construction{
		Midpoint, LineFromPoints, IntersectionOfLines, IntersectionOfLinesFromPoints,
		Circumcircle, Circumcenter, CenterOfCircle, PerpendicularProjection,
		PerpendicularProjectionOnLineFromPoints, PerpendicularLine, ParallelLine,
		PerpendicularBisector, InternalAngleBisector, Incenter, Orthocenter,
		PointReflection, SecondIntersectionOfCircleAndLineFromPoints,
	}
}

func points2(args []analytic.Object) (analytic.Point, analytic.Point) {
	return args[0].(analytic.Point), args[1].(analytic.Point)
}

func points3(args []analytic.Object) (analytic.Point, analytic.Point, analytic.Point) {
	return args[0].(analytic.Point), args[1].(analytic.Point), args[2].(analytic.Point)
}

func unit(v analytic.Point) analytic.Point {
	return v.Scale(1 / math.Hypot(v.X, v.Y))
}

func ok(v analytic.Object, found bool) (analytic.Object, bool) {
	if !found {
		return nil, false
	}
	return v, true
}
