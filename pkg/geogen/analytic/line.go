package analytic

import (
	"fmt"
	"math"
)

// Line is the set of points satisfying A*x + B*y + C = 0. The normal
// vector (A, B) always has unit length.
type Line struct {
	A, B, C float64
}

var _ Object = Line{}

func (Line) isAnalyticObject() {}

func (l Line) String() string {
	return fmt.Sprintf("%gx + %gy + %g = 0", l.A, l.B, l.C)
}

// NewLine returns the line passing through p and q. It returns false when
// the points coincide.
func NewLine(p, q Point, prec Precision) (Line, bool) {
	if p.Equal(q, prec) {
		return Line{}, false
	}
	d := q.Sub(p)
	return lineThrough(p, Point{X: -d.Y, Y: d.X}), true
}

// NewLineWithNormal returns the line through p perpendicular to normal.
func NewLineWithNormal(p, normal Point) Line {
	return lineThrough(p, normal)
}

func lineThrough(p, normal Point) Line {
	n := math.Hypot(normal.X, normal.Y)
	a, b := normal.X/n, normal.Y/n
	if a < 0 || (a == 0 && b < 0) {
		a, b = -a, -b
	}
	return Line{A: a, B: b, C: -(a*p.X + b*p.Y)}
}

// Normal returns the unit normal vector of l.
func (l Line) Normal() Point {
	return Point{X: l.A, Y: l.B}
}

// Direction returns a unit direction vector of l.
func (l Line) Direction() Point {
	return Point{X: -l.B, Y: l.A}
}

// SignedDistance is positive on the side the normal points to.
func (l Line) SignedDistance(p Point) float64 {
	return l.A*p.X + l.B*p.Y + l.C
}

func (l Line) Distance(p Point) float64 {
	return math.Abs(l.SignedDistance(p))
}

func (l Line) Contains(p Point, prec Precision) bool {
	return prec.IsZero(l.SignedDistance(p))
}

// Projection returns the foot of the perpendicular from p to l.
func (l Line) Projection(p Point) Point {
	return p.Sub(l.Normal().Scale(l.SignedDistance(p)))
}

func (l Line) IsParallelTo(o Line, prec Precision) bool {
	return prec.IsZero(l.A*o.B - l.B*o.A)
}

func (l Line) IsPerpendicularTo(o Line, prec Precision) bool {
	return prec.IsZero(l.A*o.A + l.B*o.B)
}

// IsTangentTo reports whether l touches c in exactly one point.
func (l Line) IsTangentTo(c Circle, prec Precision) bool {
	return prec.Equal(l.Distance(c.Center), c.Radius)
}

// Intersect returns the common point of two lines, or false when they are
// parallel.
func (l Line) Intersect(o Line, prec Precision) (Point, bool) {
	det := l.A*o.B - o.A*l.B
	if prec.IsZero(det) {
		return Point{}, false
	}
	return Point{
		X: (l.B*o.C - o.B*l.C) / det,
		Y: (l.C*o.A - o.C*l.A) / det,
	}, true
}

// AngleBetween returns the non-obtuse angle between two lines, in radians.
func (l Line) AngleBetween(o Line) float64 {
	cos := math.Abs(l.A*o.A + l.B*o.B)
	return math.Acos(math.Min(1, cos))
}
