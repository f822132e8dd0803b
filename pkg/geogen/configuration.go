package geogen

import (
	"fmt"
	"strings"
)

// Configuration is a layout of loose objects together with an ordered list
// of objects constructed from them.
type Configuration struct {
	layout             Layout
	looseObjects       []*ConfigurationObject
	constructedObjects []*ConfigurationObject
}

// NewConfiguration validates that ids are unique, that the loose objects
// match the layout, and that every constructed object only refers to
// objects that precede it.
func NewConfiguration(layout Layout, looseObjects []*ConfigurationObject, constructedObjects ...*ConfigurationObject) (*Configuration, error) {
	signature := layout.Signature()
	if signature == nil {
		return nil, fmt.Errorf("unknown layout %q", layout)
	}
	if len(signature) != len(looseObjects) {
		return nil, fmt.Errorf("layout %s expects %d loose objects, got %d", layout, len(signature), len(looseObjects))
	}

	seen := make(map[ObjectID]struct{}, len(looseObjects)+len(constructedObjects))
	for i, o := range looseObjects {
		if !o.IsLoose() {
			return nil, fmt.Errorf("object %s is not loose", o)
		}
		if o.Type() != signature[i] {
			return nil, fmt.Errorf("layout %s expects a %s at position %d, got %s", layout, signature[i], i, o.Type())
		}
		if _, ok := seen[o.ID()]; ok {
			return nil, fmt.Errorf("duplicate object id %s", o.ID())
		}
		seen[o.ID()] = struct{}{}
	}
	for _, o := range constructedObjects {
		if o.IsLoose() {
			return nil, fmt.Errorf("loose object %s listed as constructed", o)
		}
		if _, ok := seen[o.ID()]; ok {
			return nil, fmt.Errorf("duplicate object id %s", o.ID())
		}
		for _, arg := range o.Arguments() {
			if _, ok := seen[arg.ID()]; !ok {
				return nil, fmt.Errorf("object %s refers to %s which is not defined before it", o, arg)
			}
		}
		seen[o.ID()] = struct{}{}
	}

	return &Configuration{
		layout:             layout,
		looseObjects:       append([]*ConfigurationObject(nil), looseObjects...),
		constructedObjects: append([]*ConfigurationObject(nil), constructedObjects...),
	}, nil
}

func (c *Configuration) Layout() Layout {
	return c.layout
}

func (c *Configuration) LooseObjects() []*ConfigurationObject {
	return c.looseObjects
}

func (c *Configuration) ConstructedObjects() []*ConfigurationObject {
	return c.constructedObjects
}

// AllObjects returns the loose objects followed by the constructed ones.
func (c *Configuration) AllObjects() []*ConfigurationObject {
	all := make([]*ConfigurationObject, 0, len(c.looseObjects)+len(c.constructedObjects))
	all = append(all, c.looseObjects...)
	return append(all, c.constructedObjects...)
}

// With returns a new configuration extended by one constructed object.
func (c *Configuration) With(o *ConfigurationObject) (*Configuration, error) {
	return NewConfiguration(c.layout, c.looseObjects, append(append([]*ConfigurationObject(nil), c.constructedObjects...), o)...)
}

// WithoutLast returns the configuration without its last constructed object.
func (c *Configuration) WithoutLast() (*Configuration, error) {
	if len(c.constructedObjects) == 0 {
		return nil, fmt.Errorf("configuration has no constructed objects")
	}
	return &Configuration{
		layout:             c.layout,
		looseObjects:       c.looseObjects,
		constructedObjects: c.constructedObjects[:len(c.constructedObjects)-1 : len(c.constructedObjects)-1],
	}, nil
}

func (c *Configuration) String() string {
	lines := make([]string, 0, len(c.constructedObjects)+1)
	loose := make([]string, len(c.looseObjects))
	for i, o := range c.looseObjects {
		loose[i] = o.String()
	}
	lines = append(lines, fmt.Sprintf("%s(%s)", c.layout, strings.Join(loose, ", ")))
	for _, o := range c.constructedObjects {
		lines = append(lines, o.Describe())
	}
	return strings.Join(lines, "\n")
}
