package analytic

import (
	"fmt"
	"math"
)

// Circle is given by its center and radius.
type Circle struct {
	Center Point
	Radius float64
}

var _ Object = Circle{}

func (Circle) isAnalyticObject() {}

func (c Circle) String() string {
	return fmt.Sprintf("circle[%s, %g]", c.Center, c.Radius)
}

// NewCircle returns the circle passing through three points. It returns
// false when the points are collinear or two of them coincide.
func NewCircle(a, b, c Point, prec Precision) (Circle, bool) {
	if AreCollinear(a, b, c, prec) {
		return Circle{}, false
	}
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d == 0 {
		return Circle{}, false
	}
	sa := a.X*a.X + a.Y*a.Y
	sb := b.X*b.X + b.Y*b.Y
	sc := c.X*c.X + c.Y*c.Y
	center := Point{
		X: (sa*(b.Y-c.Y) + sb*(c.Y-a.Y) + sc*(a.Y-b.Y)) / d,
		Y: (sa*(c.X-b.X) + sb*(a.X-c.X) + sc*(b.X-a.X)) / d,
	}
	return Circle{Center: center, Radius: center.Distance(a)}, true
}

func (c Circle) Contains(p Point, prec Precision) bool {
	return prec.Equal(c.Center.Distance(p), c.Radius)
}

// IsTangentTo reports whether two distinct, non-concentric circles touch
// in exactly one point.
func (c Circle) IsTangentTo(o Circle, prec Precision) bool {
	d := c.Center.Distance(o.Center)
	if prec.IsZero(d) {
		return false
	}
	return prec.Equal(d, c.Radius+o.Radius) || prec.Equal(d, math.Abs(c.Radius-o.Radius))
}

// IntersectLine returns the zero, one or two common points of c and l.
func (c Circle) IntersectLine(l Line, prec Precision) []Point {
	s := l.SignedDistance(c.Center)
	foot := c.Center.Sub(l.Normal().Scale(s))
	if prec.Equal(math.Abs(s), c.Radius) {
		return []Point{foot}
	}
	if math.Abs(s) > c.Radius {
		return nil
	}
	h := math.Sqrt(c.Radius*c.Radius - s*s)
	dir := l.Direction()
	return []Point{foot.Add(dir.Scale(h)), foot.Sub(dir.Scale(h))}
}

// IntersectCircle returns the zero, one or two common points of two
// circles. Concentric circles have no common points.
func (c Circle) IntersectCircle(o Circle, prec Precision) []Point {
	d := c.Center.Distance(o.Center)
	if prec.IsZero(d) {
		return nil
	}
	tangent := prec.Equal(d, c.Radius+o.Radius) || prec.Equal(d, math.Abs(c.Radius-o.Radius))
	if !tangent && (d > c.Radius+o.Radius || d < math.Abs(c.Radius-o.Radius)) {
		return nil
	}
	a := (c.Radius*c.Radius - o.Radius*o.Radius + d*d) / (2 * d)
	unit := o.Center.Sub(c.Center).Scale(1 / d)
	base := c.Center.Add(unit.Scale(a))
	if tangent {
		return []Point{base}
	}
	h := math.Sqrt(math.Max(0, c.Radius*c.Radius-a*a))
	normal := Point{X: -unit.Y, Y: unit.X}
	return []Point{base.Add(normal.Scale(h)), base.Sub(normal.Scale(h))}
}
