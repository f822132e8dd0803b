package container

import (
	"fmt"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
)

// Examination is the outcome of constructing one object in every
// container.
type Examination struct {
	Object *geogen.ConfigurationObject
	// CanBeConstructed is false when the construction does not exist for
	// the sampled values, consistently in every container.
	CanBeConstructed bool
	// Duplicate is the previously added object that coincides with Object
	// in every container, or nil.
	Duplicate *geogen.ConfigurationObject
}

// Examine constructs object in every container. A constructible object
// that duplicates nothing is added to all containers and becomes part of
// the manager's replay recipe. Containers disagreeing about
// constructibility or duplication are resampled.
func (m *Manager) Examine(object *geogen.ConfigurationObject) (Examination, error) {
	if object.IsLoose() {
		return Examination{}, fmt.Errorf("loose object %s cannot be examined", object)
	}
	return ExecuteAndResolvePossibleInconsistencies(m, func() (Examination, error) {
		return m.examine(object)
	})
}

func (m *Manager) examine(object *geogen.ConfigurationObject) (Examination, error) {
	values := make([]analytic.Object, len(m.containers))
	constructible := 0
	for i, c := range m.containers {
		value, ok, err := c.construct(object)
		if err != nil {
			return Examination{}, err
		}
		if ok {
			values[i] = value
			constructible++
		}
	}
	if constructible != 0 && constructible != len(m.containers) {
		return Examination{}, geogen.Inconsistency("object %s is constructible in %d of %d containers", object, constructible, len(m.containers))
	}
	if constructible == 0 {
		return Examination{Object: object}, nil
	}

	var duplicate *geogen.ConfigurationObject
	for i, c := range m.containers {
		existing, _ := c.Find(values[i])
		if i > 0 && existing != duplicate {
			return Examination{}, geogen.Inconsistency("containers disagree whether %s duplicates an earlier object", object)
		}
		duplicate = existing
	}
	if duplicate == object {
		return Examination{}, fmt.Errorf("object %s has already been added", object)
	}
	if duplicate != nil {
		return Examination{Object: object, CanBeConstructed: true, Duplicate: duplicate}, nil
	}

	for i, c := range m.containers {
		if _, err := c.Add(values[i], object); err != nil {
			return Examination{}, err
		}
	}
	m.accept(object)
	return Examination{Object: object, CanBeConstructed: true}, nil
}

// Duplicate pairs an object with the earlier object it coincides with.
type Duplicate struct {
	Older, Newer *geogen.ConfigurationObject
}

// ConstructionData describes why a configuration cannot be used, if it
// cannot.
type ConstructionData struct {
	Inconstructible *geogen.ConfigurationObject
	Duplicate       *Duplicate
}

// Valid reports whether every object was constructed and none duplicates
// another.
func (d ConstructionData) Valid() bool {
	return d.Inconstructible == nil && d.Duplicate == nil
}

// Constructor builds managers for whole configurations.
type Constructor struct {
	looseConstructor geogen.LooseObjectsConstructor
	options          []Option
}

func NewConstructor(looseConstructor geogen.LooseObjectsConstructor, options ...Option) *Constructor {
	return &Constructor{looseConstructor: looseConstructor, options: options}
}

// Construct creates a manager for configuration and examines its
// constructed objects in order. It stops at the first object that cannot
// be constructed or duplicates an earlier one and reports it in the
// returned ConstructionData; the manager then holds the objects before it.
func (c *Constructor) Construct(configuration *geogen.Configuration) (*Manager, ConstructionData, error) {
	m, err := NewManager(configuration.Layout(), configuration.LooseObjects(), c.looseConstructor, c.options...)
	if err != nil {
		return nil, ConstructionData{}, err
	}
	for _, object := range configuration.ConstructedObjects() {
		examination, err := m.Examine(object)
		if err != nil {
			return nil, ConstructionData{}, err
		}
		if !examination.CanBeConstructed {
			return m, ConstructionData{Inconstructible: object}, nil
		}
		if examination.Duplicate != nil {
			return m, ConstructionData{Duplicate: &Duplicate{Older: examination.Duplicate, Newer: object}}, nil
		}
	}
	return m, ConstructionData{}, nil
}
