// Package analytic holds the floating point representation of the objects
// that appear in a geometric configuration: points, lines and circles.
//
// All comparisons are done on values rounded to a fixed number of decimal
// digits (a Precision). Two values whose rounded forms coincide are treated
// as the same geometric object.
package analytic

import (
	"fmt"
	"math"
)

// Object is one of Point, Line or Circle.
type Object interface {
	fmt.Stringer
	isAnalyticObject()
}

// Precision is the number of decimal digits kept when comparing values.
type Precision int

// DefaultPrecision is used when no other precision is configured.
const DefaultPrecision Precision = 8

// Round rounds v to p decimal digits. Negative zero is normalized to zero so
// rounded values can be used as map keys.
func (p Precision) Round(v float64) float64 {
	scale := math.Pow(10, float64(p))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// Equal reports whether a and b coincide after rounding.
func (p Precision) Equal(a, b float64) bool {
	return p.Round(a) == p.Round(b)
}

// IsZero reports whether v rounds to zero.
func (p Precision) IsZero(v float64) bool {
	return p.Round(v) == 0
}

type kind uint8

const (
	pointKind kind = iota + 1
	lineKind
	circleKind
)

// Key identifies an analytic object up to rounding. Objects that are equal
// within a Precision have equal keys, so keys can index hash maps.
type Key struct {
	kind    kind
	a, b, c float64
}

// KeyOf returns the rounded identity of o.
func KeyOf(o Object, p Precision) Key {
	switch v := o.(type) {
	case Point:
		return Key{kind: pointKind, a: p.Round(v.X), b: p.Round(v.Y)}
	case Line:
		a, b, c := v.A, v.B, v.C
		if (p.IsZero(a) && b < 0) || (!p.IsZero(a) && a < 0) {
			a, b, c = -a, -b, -c
		}
		return Key{kind: lineKind, a: p.Round(a), b: p.Round(b), c: p.Round(c)}
	case Circle:
		return Key{kind: circleKind, a: p.Round(v.Center.X), b: p.Round(v.Center.Y), c: p.Round(v.Radius)}
	}
	panic(fmt.Sprintf("unknown analytic object %T", o))
}

// Equal reports whether two analytic objects are the same object within p.
func Equal(x, y Object, p Precision) bool {
	return KeyOf(x, p) == KeyOf(y, p)
}
