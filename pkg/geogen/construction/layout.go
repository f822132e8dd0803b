package construction

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
)

// ErrDegenerateSample is returned when no acceptable placement was found
// within the sampling budget.
var ErrDegenerateSample = errors.New("could not sample a non-degenerate layout")

const (
	canvas          = 10.0
	minimalDistance = 1.0
	samplingBudget  = 100
)

var _ geogen.LooseObjectsConstructor = &RandomLayoutConstructor{}

// RandomLayoutConstructor places loose objects at random coordinates,
// rejecting placements that are close to degenerate (nearly coincident
// points, nearly collinear triangles).
type RandomLayoutConstructor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomLayoutConstructor(seed int64) *RandomLayoutConstructor {
	return &RandomLayoutConstructor{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomLayoutConstructor) Construct(layout geogen.Layout, looseObjects []*geogen.ConfigurationObject) ([]analytic.Object, error) {
	if err := checkLayout(layout, looseObjects); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for attempt := 0; attempt < samplingBudget; attempt++ {
		objects, ok := r.sample(layout)
		if ok {
			return objects, nil
		}
	}
	return nil, fmt.Errorf("layout %s: %w", layout, ErrDegenerateSample)
}

func (r *RandomLayoutConstructor) sample(layout geogen.Layout) ([]analytic.Object, bool) {
	switch layout {
	case geogen.TwoPoints:
		a, b := r.point(), r.point()
		return objects(a, b), separated(a, b)
	case geogen.Triangle:
		a, b, c := r.point(), r.point(), r.point()
		return objects(a, b, c), wellShaped(a, b, c)
	case geogen.Quadrilateral:
		pts := []analytic.Point{r.point(), r.point(), r.point(), r.point()}
		return objects(pts...), generalPosition(pts)
	case geogen.CyclicQuadrilateral:
		center := analytic.Point{X: canvas / 2, Y: canvas / 2}
		radius := 2 + 3*r.rng.Float64()
		pts := make([]analytic.Point, 4)
		for i := range pts {
			angle := 2 * math.Pi * r.rng.Float64()
			pts[i] = analytic.Point{X: center.X + radius*math.Cos(angle), Y: center.Y + radius*math.Sin(angle)}
		}
		return objects(pts...), generalPosition(pts)
	case geogen.LineAndPoint:
		line, ok := r.line()
		pt := r.point()
		return []analytic.Object{line, pt}, ok && line.Distance(pt) >= minimalDistance
	case geogen.LineAndTwoPoints:
		line, ok := r.line()
		a, b := r.point(), r.point()
		return []analytic.Object{line, a, b}, ok && separated(a, b) &&
			line.Distance(a) >= minimalDistance && line.Distance(b) >= minimalDistance
	case geogen.CircleAndPoint:
		circle := analytic.Circle{Center: r.point(), Radius: 2 + 2*r.rng.Float64()}
		pt := r.point()
		d := circle.Center.Distance(pt)
		return []analytic.Object{circle, pt}, d >= minimalDistance && math.Abs(d-circle.Radius) >= minimalDistance
	}
	return nil, false
}

func (r *RandomLayoutConstructor) point() analytic.Point {
	return analytic.Point{X: canvas * r.rng.Float64(), Y: canvas * r.rng.Float64()}
}

func (r *RandomLayoutConstructor) line() (analytic.Line, bool) {
	a, b := r.point(), r.point()
	if !separated(a, b) {
		return analytic.Line{}, false
	}
	return analytic.NewLine(a, b, precision)
}

var _ geogen.LooseObjectsConstructor = &SequenceConstructor{}

// SequenceConstructor replays predetermined samples, one per call, and
// starts over after the last one. It makes runs reproducible and lets a
// caller place loose objects exactly.
type SequenceConstructor struct {
	mu      sync.Mutex
	samples [][]analytic.Object
	next    int
}

func NewSequenceConstructor(samples ...[]analytic.Object) *SequenceConstructor {
	return &SequenceConstructor{samples: samples}
}

func (s *SequenceConstructor) Construct(layout geogen.Layout, looseObjects []*geogen.ConfigurationObject) ([]analytic.Object, error) {
	if err := checkLayout(layout, looseObjects); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.samples) == 0 {
		return nil, fmt.Errorf("no samples to replay")
	}
	sample := s.samples[s.next%len(s.samples)]
	s.next++
	if len(sample) != len(looseObjects) {
		return nil, fmt.Errorf("sample has %d objects, layout %s needs %d", len(sample), layout, len(looseObjects))
	}
	for i, o := range sample {
		if geogen.TypeOf(o) != looseObjects[i].Type() {
			return nil, fmt.Errorf("sample object %d is a %s, expected %s", i, geogen.TypeOf(o), looseObjects[i].Type())
		}
	}
	return append([]analytic.Object(nil), sample...), nil
}

// Calls returns how many samples have been handed out.
func (s *SequenceConstructor) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

func checkLayout(layout geogen.Layout, looseObjects []*geogen.ConfigurationObject) error {
	signature := layout.Signature()
	if signature == nil {
		return fmt.Errorf("unknown layout %q", layout)
	}
	if len(signature) != len(looseObjects) {
		return fmt.Errorf("layout %s expects %d loose objects, got %d", layout, len(signature), len(looseObjects))
	}
	return nil
}

func objects(pts ...analytic.Point) []analytic.Object {
	out := make([]analytic.Object, len(pts))
	for i, pt := range pts {
		out[i] = pt
	}
	return out
}

func separated(a, b analytic.Point) bool {
	return a.Distance(b) >= minimalDistance
}

// wellShaped rejects triangles with a short side or a flat angle.
func wellShaped(a, b, c analytic.Point) bool {
	if !separated(a, b) || !separated(b, c) || !separated(a, c) {
		return false
	}
	cross := math.Abs((b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X))
	longest := math.Max(a.Distance(b), math.Max(b.Distance(c), a.Distance(c)))
	return cross/(longest*longest) >= 0.1
}

func generalPosition(pts []analytic.Point) bool {
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				if !wellShaped(pts[i], pts[j], pts[k]) {
					return false
				}
			}
		}
	}
	return true
}
