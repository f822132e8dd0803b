package container

import (
	"fmt"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
)

type entry struct {
	object *geogen.ConfigurationObject
	value  analytic.Object
	key    analytic.Key
}

// ObjectsContainer holds one numeric realization of a configuration: a
// bidirectional mapping between configuration objects and their analytic
// values. No two objects are ever mapped to values that are equal within
// the container's precision.
type ObjectsContainer struct {
	precision analytic.Precision
	byID      map[geogen.ObjectID]entry
	byKey     map[analytic.Key]*geogen.ConfigurationObject
}

func NewObjectsContainer(precision analytic.Precision) *ObjectsContainer {
	return &ObjectsContainer{
		precision: precision,
		byID:      make(map[geogen.ObjectID]entry),
		byKey:     make(map[analytic.Key]*geogen.ConfigurationObject),
	}
}

func (c *ObjectsContainer) Precision() analytic.Precision {
	return c.precision
}

// Add registers value as the analytic representation of object. If an
// equal value is already registered, the object it belongs to is returned
// and nothing is stored; otherwise object itself is returned.
func (c *ObjectsContainer) Add(value analytic.Object, object *geogen.ConfigurationObject) (*geogen.ConfigurationObject, error) {
	if actual := geogen.TypeOf(value); actual != object.Type() {
		return nil, TypeMismatch{Object: object, Expected: object.Type(), Actual: actual}
	}
	key := analytic.KeyOf(value, c.precision)
	if existing, ok := c.byKey[key]; ok {
		return existing, nil
	}
	if _, ok := c.byID[object.ID()]; ok {
		return nil, fmt.Errorf("object %s already has a different value in the container", object)
	}
	c.byID[object.ID()] = entry{object: object, value: value, key: key}
	c.byKey[key] = object
	return object, nil
}

// Get returns the analytic value of object.
func (c *ObjectsContainer) Get(object *geogen.ConfigurationObject) (analytic.Object, error) {
	e, ok := c.byID[object.ID()]
	if !ok {
		return nil, ObjectNotFound(object.ID())
	}
	return e.value, nil
}

// Get returns the analytic value of object as a T.
func Get[T analytic.Object](c *ObjectsContainer, object *geogen.ConfigurationObject) (T, error) {
	var zero T
	value, err := c.Get(object)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, TypeMismatch{Object: object, Expected: geogen.TypeOf(zero), Actual: geogen.TypeOf(value)}
	}
	return typed, nil
}

// Find returns the object whose value equals value within the precision.
func (c *ObjectsContainer) Find(value analytic.Object) (*geogen.ConfigurationObject, bool) {
	object, ok := c.byKey[analytic.KeyOf(value, c.precision)]
	return object, ok
}

func (c *ObjectsContainer) Contains(object *geogen.ConfigurationObject) bool {
	_, ok := c.byID[object.ID()]
	return ok
}

func (c *ObjectsContainer) Remove(object *geogen.ConfigurationObject) error {
	e, ok := c.byID[object.ID()]
	if !ok {
		return ObjectNotFound(object.ID())
	}
	delete(c.byID, object.ID())
	delete(c.byKey, e.key)
	return nil
}

func (c *ObjectsContainer) Len() int {
	return len(c.byID)
}

// Reset forgets every registered object.
func (c *ObjectsContainer) Reset() {
	c.byID = make(map[geogen.ObjectID]entry)
	c.byKey = make(map[analytic.Key]*geogen.ConfigurationObject)
}

// construct computes the value of a constructed object from the values of
// its arguments. It returns false when the construction does not exist.
func (c *ObjectsContainer) construct(object *geogen.ConfigurationObject) (analytic.Object, bool, error) {
	args := make([]analytic.Object, len(object.Arguments()))
	for i, arg := range object.Arguments() {
		value, err := c.Get(arg)
		if err != nil {
			return nil, false, fmt.Errorf("constructing %s: %w", object, err)
		}
		args[i] = value
	}
	value, ok := object.Construction().Construct(args)
	return value, ok, nil
}
