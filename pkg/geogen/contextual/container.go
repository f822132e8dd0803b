// Package contextual maintains the incidence graph of a configuration:
// which points lie on which lines and circles, including lines and circles
// that were never constructed but are determined by the points on them.
//
// Every incidence is confirmed numerically in all containers of the
// underlying manager. A fact that holds in some containers but not in
// others is reported as an inconsistency, so the manager resamples.
package contextual

import (
	"fmt"
	"iter"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
	"github.com/operator-framework/geogen/pkg/geogen/container"
)

// picture holds the analytic values of the geometrical objects in one
// container.
type picture struct {
	values map[*GeometricalObject]analytic.Object
	byKey  map[analytic.Key]*GeometricalObject
}

type Container struct {
	manager *container.Manager

	// objects are replayed in order whenever the graph is rebuilt. The
	// first initial of them form the starting configuration.
	objects []*geogen.ConfigurationObject
	initial int

	nextID   int
	points   partition
	lines    partition
	circles  partition
	promoted []*GeometricalObject
	byObject map[geogen.ObjectID]*GeometricalObject
	pictures []picture

	dirty      bool
	generation int
}

// New builds the incidence graph of configuration. Every object of the
// configuration must already be present in the manager's containers.
func New(configuration *geogen.Configuration, manager *container.Manager) (*Container, error) {
	c := &Container{
		manager: manager,
		objects: configuration.AllObjects(),
		dirty:   true,
	}
	c.initial = len(c.objects)
	if err := manager.Execute(c.sync); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) Manager() *container.Manager {
	return c.manager
}

// Objects returns the configuration objects in the order they were added.
func (c *Container) Objects() []*geogen.ConfigurationObject {
	return append([]*geogen.ConfigurationObject(nil), c.objects...)
}

// Stale reports whether the graph no longer matches the manager's
// containers and will be rebuilt by the next operation.
func (c *Container) Stale() bool {
	return c.dirty || c.generation != c.manager.Generation()
}

// Add extends the graph with object, which must have been accepted by the
// manager. Only the geometrical objects created or resolved by this call
// are new afterwards.
func (c *Container) Add(object *geogen.ConfigurationObject) error {
	for _, o := range c.objects {
		if o == object {
			return fmt.Errorf("object %s has already been added", object)
		}
	}
	err := c.manager.Execute(func() error {
		if err := c.sync(); err != nil {
			return err
		}
		c.dirty = true
		c.resetNew()
		if err := c.add(object); err != nil {
			return err
		}
		c.dirty = false
		return nil
	})
	if err != nil {
		return err
	}
	c.objects = append(c.objects, object)
	return nil
}

// RemoveLast undoes the most recent Add.
func (c *Container) RemoveLast() (*geogen.ConfigurationObject, error) {
	if len(c.objects) == c.initial {
		return nil, ErrNothingToRemove
	}
	last := c.objects[len(c.objects)-1]
	c.objects = c.objects[:len(c.objects)-1]
	c.dirty = true
	if err := c.manager.Execute(c.sync); err != nil {
		return nil, err
	}
	return last, nil
}

// GetGeometricalObjects returns the objects selected by q, points first,
// then lines, then circles, each in creation order.
func (c *Container) GetGeometricalObjects(q Query) []*GeometricalObject {
	var result []*GeometricalObject
	if q.IncludePoints {
		result = append(result, c.points.selectType(q.Type)...)
	}
	if q.IncludeLines {
		result = append(result, c.lines.selectType(q.Type)...)
	}
	if q.IncludeCircles {
		result = append(result, c.circles.selectType(q.Type)...)
	}
	return result
}

// Select is GetGeometricalObjects as a sequence.
func (c *Container) Select(q Query) iter.Seq[*GeometricalObject] {
	return func(yield func(*GeometricalObject) bool) {
		for _, g := range c.GetGeometricalObjects(q) {
			if !yield(g) {
				return
			}
		}
	}
}

// Lookup returns the geometrical object representing a configuration object.
func (c *Container) Lookup(object *geogen.ConfigurationObject) (*GeometricalObject, bool) {
	g, ok := c.byObject[object.ID()]
	return g, ok
}

// GetAnalyticObject returns the value of g in one of the manager's
// containers.
func (c *Container) GetAnalyticObject(g *GeometricalObject, in *container.ObjectsContainer) (analytic.Object, error) {
	index := c.manager.Index(in)
	if index < 0 {
		return nil, ErrUnknownContainer
	}
	value, ok := c.pictures[index].values[g]
	if !ok {
		return nil, fmt.Errorf("%s has no value in container %d", g, index)
	}
	return value, nil
}

// Analytic returns the value of g in a container as a T.
func Analytic[T analytic.Object](c *Container, g *GeometricalObject, in *container.ObjectsContainer) (T, error) {
	var zero T
	value, err := c.GetAnalyticObject(g, in)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%s is a %s, not a %T", g, g.kind, zero)
	}
	return typed, nil
}

// IsExplicitPoint reports whether p coincides with a point of the
// configuration in the given container.
func (c *Container) IsExplicitPoint(in *container.ObjectsContainer, p analytic.Point) bool {
	index := c.manager.Index(in)
	if index < 0 {
		return false
	}
	_, ok := c.pictures[index].byKey[analytic.KeyOf(p, in.Precision())]
	return ok
}

func (c *Container) precision() analytic.Precision {
	return c.manager.Settings().AnalyticPrecision()
}

// sync rebuilds the graph if the manager resampled its containers or a
// previous operation failed halfway.
func (c *Container) sync() error {
	if !c.Stale() {
		return nil
	}
	c.reset()
	for i, object := range c.objects {
		if i >= c.initial {
			c.resetNew()
		}
		if err := c.add(object); err != nil {
			return err
		}
	}
	c.dirty = false
	c.generation = c.manager.Generation()
	return nil
}

func (c *Container) reset() {
	c.dirty = true
	c.nextID = 0
	c.points, c.lines, c.circles = partition{}, partition{}, partition{}
	c.promoted = nil
	c.byObject = make(map[geogen.ObjectID]*GeometricalObject)
	c.pictures = make([]picture, c.manager.Len())
	for i := range c.pictures {
		c.pictures[i] = picture{
			values: make(map[*GeometricalObject]analytic.Object),
			byKey:  make(map[analytic.Key]*GeometricalObject),
		}
	}
}

func (c *Container) resetNew() {
	c.points.resetNew()
	c.lines.resetNew()
	c.circles.resetNew()
	for _, g := range c.promoted {
		g.promoted = false
	}
	c.promoted = nil
}

func (c *Container) add(object *geogen.ConfigurationObject) error {
	values := make([]analytic.Object, c.manager.Len())
	for i, ctr := range c.manager.Containers() {
		value, err := ctr.Get(object)
		if err != nil {
			return err
		}
		values[i] = value
	}

	existing, err := c.find(values)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.object != nil {
			return fmt.Errorf("%w: %s resolves to %s", ErrDuplicateSymbol, object, existing.object)
		}
		existing.object = object
		existing.promoted = true
		c.promoted = append(c.promoted, existing)
		c.byObject[object.ID()] = existing
		return nil
	}

	g := c.create(kindOf(object.Type()), object, values)
	if g.kind == PointKind {
		return c.discoverIncidences(g)
	}
	return c.collectPoints(g)
}

// find returns the geometrical object whose value equals values in every
// picture, or nil when no picture has one.
func (c *Container) find(values []analytic.Object) (*GeometricalObject, error) {
	prec := c.precision()
	var found *GeometricalObject
	for i, value := range values {
		g := c.pictures[i].byKey[analytic.KeyOf(value, prec)]
		if i > 0 && g != found {
			return nil, geogen.Inconsistency("containers disagree on the object with value %s", value)
		}
		found = g
	}
	return found, nil
}

func (c *Container) create(kind Kind, object *geogen.ConfigurationObject, values []analytic.Object) *GeometricalObject {
	c.nextID++
	g := &GeometricalObject{id: c.nextID, kind: kind, object: object, isNew: true}
	prec := c.precision()
	for i, value := range values {
		c.pictures[i].values[g] = value
		c.pictures[i].byKey[analytic.KeyOf(value, prec)] = g
	}
	if object != nil {
		c.byObject[object.ID()] = g
	}
	switch kind {
	case PointKind:
		c.points.add(g)
	case LineKind:
		c.lines.add(g)
	case CircleKind:
		c.circles.add(g)
	}
	return g
}

// discoverIncidences links a new point to the existing lines and circles
// through it and creates the lines and circles it determines together
// with older points.
func (c *Container) discoverIncidences(p *GeometricalObject) error {
	for _, curve := range append(append([]*GeometricalObject(nil), c.lines.objects...), c.circles.objects...) {
		on, err := c.liesOn(p, curve)
		if err != nil {
			return err
		}
		if on {
			link(p, curve)
		}
	}

	older := c.points.objects[:len(c.points.objects)-1]
	for _, q := range older {
		if sharesLine(p, q) {
			continue
		}
		values := make([]analytic.Object, len(c.pictures))
		for i, pic := range c.pictures {
			line, ok := analytic.NewLine(pic.values[p].(analytic.Point), pic.values[q].(analytic.Point), c.precision())
			if !ok {
				return geogen.Inconsistency("points %s and %s coincide in container %d", p, q, i)
			}
			values[i] = line
		}
		if err := c.materialize(LineKind, values, q, p); err != nil {
			return err
		}
	}

	for i, q := range older {
		for _, r := range older[i+1:] {
			if sharesCircle(p, q, r) {
				continue
			}
			values, err := c.circleThrough(p, q, r)
			if err != nil {
				return err
			}
			if values == nil {
				continue
			}
			if err := c.materialize(CircleKind, values, q, r, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// materialize links points to the curve with the given values, creating an
// implicit curve when no picture knows one.
func (c *Container) materialize(kind Kind, values []analytic.Object, points ...*GeometricalObject) error {
	curve, err := c.find(values)
	if err != nil {
		return err
	}
	if curve == nil {
		curve = c.create(kind, nil, values)
		curve.defining = append([]*GeometricalObject(nil), points...)
	}
	for _, point := range points {
		link(point, curve)
	}
	return nil
}

// circleThrough returns the circle through three points in every picture,
// or nil when they are collinear everywhere.
func (c *Container) circleThrough(p, q, r *GeometricalObject) ([]analytic.Object, error) {
	values := make([]analytic.Object, len(c.pictures))
	exists := 0
	for i, pic := range c.pictures {
		circle, ok := analytic.NewCircle(
			pic.values[p].(analytic.Point),
			pic.values[q].(analytic.Point),
			pic.values[r].(analytic.Point),
			c.precision(),
		)
		if ok {
			values[i] = circle
			exists++
		}
	}
	switch exists {
	case 0:
		return nil, nil
	case len(c.pictures):
		return values, nil
	}
	return nil, geogen.Inconsistency("points %s, %s and %s are collinear in %d of %d containers", p, q, r, len(c.pictures)-exists, len(c.pictures))
}

// collectPoints links a new explicit line or circle to the existing points
// on it.
func (c *Container) collectPoints(curve *GeometricalObject) error {
	for _, p := range c.points.objects {
		on, err := c.liesOn(p, curve)
		if err != nil {
			return err
		}
		if on {
			link(p, curve)
		}
	}
	return nil
}

// liesOn requires every picture to agree on the incidence.
func (c *Container) liesOn(p, curve *GeometricalObject) (bool, error) {
	prec := c.precision()
	var on bool
	for i, pic := range c.pictures {
		point := pic.values[p].(analytic.Point)
		var contains bool
		switch value := pic.values[curve].(type) {
		case analytic.Line:
			contains = value.Contains(point, prec)
		case analytic.Circle:
			contains = value.Contains(point, prec)
		}
		if i > 0 && contains != on {
			return false, geogen.Inconsistency("containers disagree whether %s lies on %s", p, curve)
		}
		on = contains
	}
	return on, nil
}

func sharesLine(p, q *GeometricalObject) bool {
	for _, line := range p.lines {
		if q.LiesOn(line) {
			return true
		}
	}
	return false
}

func sharesCircle(p, q, r *GeometricalObject) bool {
	for _, circle := range p.circles {
		if q.LiesOn(circle) && r.LiesOn(circle) {
			return true
		}
	}
	return false
}
