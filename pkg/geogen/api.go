package geogen

import (
	"fmt"
	"strings"

	"github.com/operator-framework/geogen/pkg/geogen/analytic"
)

// ObjectType is the geometric type of a configuration object.
type ObjectType int

const (
	PointType ObjectType = iota + 1
	LineType
	CircleType
)

func (t ObjectType) String() string {
	switch t {
	case PointType:
		return "Point"
	case LineType:
		return "Line"
	case CircleType:
		return "Circle"
	}
	return fmt.Sprintf("ObjectType(%d)", int(t))
}

// TypeOf returns the ObjectType matching an analytic value.
func TypeOf(o analytic.Object) ObjectType {
	switch o.(type) {
	case analytic.Point:
		return PointType
	case analytic.Line:
		return LineType
	case analytic.Circle:
		return CircleType
	}
	return 0
}

// ObjectID values uniquely identify configuration objects created by one
// IDAllocator.
type ObjectID int64

func (id ObjectID) String() string {
	return fmt.Sprintf("#%d", int64(id))
}

// Construction produces an analytic object from the analytic values of its
// arguments. Construct returns false when the object does not exist for
// the given values (for example the intersection of parallel lines); this
// is a geometric fact, not an error.
type Construction interface {
	Name() string
	OutputType() ObjectType
	Signature() []ObjectType
	Construct(args []analytic.Object) (analytic.Object, bool)
}

// ObjectKind discriminates loose and constructed configuration objects.
type ObjectKind int

const (
	Loose ObjectKind = iota
	Constructed
)

// ConfigurationObject is a symbolic object of a configuration. A loose
// object is a free input; a constructed object is the result of applying a
// Construction to objects created before it.
type ConfigurationObject struct {
	id           ObjectID
	kind         ObjectKind
	objectType   ObjectType
	name         string
	construction Construction
	arguments    []*ConfigurationObject
}

// NewLooseObject allocates a loose object of the given type.
func NewLooseObject(ids *IDAllocator, t ObjectType) *ConfigurationObject {
	return &ConfigurationObject{id: ids.Next(), kind: Loose, objectType: t}
}

// NewConstructedObject applies c to args. The number and types of args
// must match the construction signature.
func NewConstructedObject(ids *IDAllocator, c Construction, args ...*ConfigurationObject) (*ConfigurationObject, error) {
	signature := c.Signature()
	if len(signature) != len(args) {
		return nil, fmt.Errorf("construction %s expects %d arguments, got %d", c.Name(), len(signature), len(args))
	}
	for i, arg := range args {
		if arg == nil {
			return nil, fmt.Errorf("construction %s: argument %d is nil", c.Name(), i)
		}
		if arg.objectType != signature[i] {
			return nil, fmt.Errorf("construction %s: argument %d is a %s, expected %s", c.Name(), i, arg.objectType, signature[i])
		}
	}
	return &ConfigurationObject{
		id:           ids.Next(),
		kind:         Constructed,
		objectType:   c.OutputType(),
		construction: c,
		arguments:    append([]*ConfigurationObject(nil), args...),
	}, nil
}

func (o *ConfigurationObject) ID() ObjectID {
	return o.id
}

func (o *ConfigurationObject) Kind() ObjectKind {
	return o.kind
}

func (o *ConfigurationObject) Type() ObjectType {
	return o.objectType
}

func (o *ConfigurationObject) IsLoose() bool {
	return o.kind == Loose
}

// Construction returns nil for loose objects.
func (o *ConfigurationObject) Construction() Construction {
	return o.construction
}

func (o *ConfigurationObject) Arguments() []*ConfigurationObject {
	return o.arguments
}

// SetName attaches a human readable name used by String.
func (o *ConfigurationObject) SetName(name string) *ConfigurationObject {
	o.name = name
	return o
}

func (o *ConfigurationObject) String() string {
	if o.name != "" {
		return o.name
	}
	return o.id.String()
}

// Describe renders the object together with the construction that
// produced it.
func (o *ConfigurationObject) Describe() string {
	if o.kind == Loose {
		return fmt.Sprintf("%s = Loose%s", o, o.objectType)
	}
	args := make([]string, len(o.arguments))
	for i, a := range o.arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s = %s(%s)", o, o.construction.Name(), strings.Join(args, ", "))
}

// Layout describes how the loose objects of a configuration are placed.
type Layout string

const (
	TwoPoints           Layout = "TwoPoints"
	Triangle            Layout = "Triangle"
	Quadrilateral       Layout = "Quadrilateral"
	CyclicQuadrilateral Layout = "CyclicQuadrilateral"
	LineAndPoint        Layout = "LineAndPoint"
	LineAndTwoPoints    Layout = "LineAndTwoPoints"
	CircleAndPoint      Layout = "CircleAndPoint"
)

// Signature returns the types of the loose objects a layout expects, or
// nil for an unknown layout.
func (l Layout) Signature() []ObjectType {
	switch l {
	case TwoPoints:
		return []ObjectType{PointType, PointType}
	case Triangle:
		return []ObjectType{PointType, PointType, PointType}
	case Quadrilateral, CyclicQuadrilateral:
		return []ObjectType{PointType, PointType, PointType, PointType}
	case LineAndPoint:
		return []ObjectType{LineType, PointType}
	case LineAndTwoPoints:
		return []ObjectType{LineType, PointType, PointType}
	case CircleAndPoint:
		return []ObjectType{CircleType, PointType}
	}
	return nil
}

// LooseObjectsConstructor samples analytic values for the loose objects of
// a layout. Every call is expected to return an independent sample.
type LooseObjectsConstructor interface {
	Construct(layout Layout, looseObjects []*ConfigurationObject) ([]analytic.Object, error)
}
