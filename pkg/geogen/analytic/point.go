package analytic

import (
	"fmt"
	"math"
)

// Point is a point in the Euclidean plane.
type Point struct {
	X, Y float64
}

var _ Object = Point{}

func (Point) isAnalyticObject() {}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Reflect returns the reflection of p through the point center.
func (p Point) Reflect(center Point) Point {
	return center.Scale(2).Sub(p)
}

// Rotate rotates p around center by angle radians, counterclockwise.
func (p Point) Rotate(center Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	d := p.Sub(center)
	return Point{X: center.X + d.X*cos - d.Y*sin, Y: center.Y + d.X*sin + d.Y*cos}
}

func (p Point) Equal(q Point, prec Precision) bool {
	return prec.Equal(p.X, q.X) && prec.Equal(p.Y, q.Y)
}

// AreCollinear reports whether the three points lie on one line. Points
// that coincide are considered collinear.
func AreCollinear(a, b, c Point, prec Precision) bool {
	line, ok := NewLine(a, b, prec)
	if !ok {
		return true
	}
	return line.Contains(c, prec)
}
