package geogen

import (
	"fmt"
	"sort"
	"strings"
)

// TheoremType enumerates the kinds of statements the finders look for.
type TheoremType int

const (
	CollinearPoints TheoremType = iota + 1
	ConcyclicPoints
	ConcurrentLines
	ParallelLines
	PerpendicularLines
	TangentCircles
	LineTangentToCircle
	EqualLineSegments
	EqualAngles
	Incidence
)

var theoremTypeNames = map[TheoremType]string{
	CollinearPoints:     "CollinearPoints",
	ConcyclicPoints:     "ConcyclicPoints",
	ConcurrentLines:     "ConcurrentLines",
	ParallelLines:       "ParallelLines",
	PerpendicularLines:  "PerpendicularLines",
	TangentCircles:      "TangentCircles",
	LineTangentToCircle: "LineTangentToCircle",
	EqualLineSegments:   "EqualLineSegments",
	EqualAngles:         "EqualAngles",
	Incidence:           "Incidence",
}

func (t TheoremType) String() string {
	if name, ok := theoremTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TheoremType(%d)", int(t))
}

// TheoremObjectKind discriminates the variants of TheoremObject.
type TheoremObjectKind int

const (
	PointObject TheoremObjectKind = iota + 1
	LineObject
	CircleObject
	SegmentObject
	AngleObject
)

// TheoremObject is an object a theorem talks about. Points always carry
// their configuration object. A line or circle that was first determined by
// points is identified by those points, also after a configuration object
// is constructed onto it; the object then only names it. Lines and circles
// constructed directly are identified by their object. Segments are two
// points; angles are two lines.
type TheoremObject struct {
	Kind   TheoremObjectKind
	Object *ConfigurationObject
	Points []*ConfigurationObject
	Lines  []TheoremObject
}

func PointTheoremObject(p *ConfigurationObject) TheoremObject {
	return TheoremObject{Kind: PointObject, Object: p}
}

// LineTheoremObject refers to a line by its two defining points, or by
// object if no points are given.
func LineTheoremObject(object *ConfigurationObject, points ...*ConfigurationObject) TheoremObject {
	return TheoremObject{Kind: LineObject, Object: object, Points: sortedByID(points)}
}

// CircleTheoremObject refers to a circle by its three defining points, or
// by object if no points are given.
func CircleTheoremObject(object *ConfigurationObject, points ...*ConfigurationObject) TheoremObject {
	return TheoremObject{Kind: CircleObject, Object: object, Points: sortedByID(points)}
}

func SegmentTheoremObject(a, b *ConfigurationObject) TheoremObject {
	return TheoremObject{Kind: SegmentObject, Points: sortedByID([]*ConfigurationObject{a, b})}
}

func AngleTheoremObject(l1, l2 TheoremObject) TheoremObject {
	lines := []TheoremObject{l1, l2}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Key() < lines[j].Key() })
	return TheoremObject{Kind: AngleObject, Lines: lines}
}

// Key is a canonical identity: two theorem objects describing the same
// object in the same way have equal keys.
func (o TheoremObject) Key() string {
	switch o.Kind {
	case PointObject:
		return "P" + o.Object.ID().String()
	case LineObject, CircleObject:
		prefix := "L"
		if o.Kind == CircleObject {
			prefix = "C"
		}
		if len(o.Points) == 0 {
			return prefix + o.Object.ID().String()
		}
		return prefix + "(" + joinIDs(o.Points) + ")"
	case SegmentObject:
		return "S(" + joinIDs(o.Points) + ")"
	case AngleObject:
		return "A[" + o.Lines[0].Key() + "," + o.Lines[1].Key() + "]"
	}
	return "?"
}

func (o TheoremObject) String() string {
	switch o.Kind {
	case PointObject:
		return o.Object.String()
	case LineObject, CircleObject:
		if o.Object != nil {
			return o.Object.String()
		}
		if o.Kind == LineObject {
			return "line(" + joinNames(o.Points) + ")"
		}
		return "circle(" + joinNames(o.Points) + ")"
	case SegmentObject:
		return joinNames(o.Points)
	case AngleObject:
		return "angle(" + o.Lines[0].String() + ", " + o.Lines[1].String() + ")"
	}
	return "?"
}

// Theorem is a statement about objects of a configuration that has been
// verified numerically.
type Theorem struct {
	Type    TheoremType
	Objects []TheoremObject
}

// NewTheorem orders objects canonically; every supported theorem type is
// symmetric in its objects.
func NewTheorem(t TheoremType, objects ...TheoremObject) Theorem {
	sorted := append([]TheoremObject(nil), objects...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key() < sorted[j].Key() })
	return Theorem{Type: t, Objects: sorted}
}

func (t Theorem) Key() string {
	keys := make([]string, len(t.Objects))
	for i, o := range t.Objects {
		keys[i] = o.Key()
	}
	return t.Type.String() + ":" + strings.Join(keys, ";")
}

func (t Theorem) String() string {
	objects := make([]string, len(t.Objects))
	for i, o := range t.Objects {
		objects[i] = o.String()
	}
	return fmt.Sprintf("%s: %s", t.Type, strings.Join(objects, ", "))
}

func sortedByID(objects []*ConfigurationObject) []*ConfigurationObject {
	if len(objects) == 0 {
		return nil
	}
	sorted := append([]*ConfigurationObject(nil), objects...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })
	return sorted
}

func joinIDs(objects []*ConfigurationObject) string {
	s := make([]string, len(objects))
	for i, o := range objects {
		s[i] = o.ID().String()
	}
	return strings.Join(s, ",")
}

func joinNames(objects []*ConfigurationObject) string {
	s := make([]string, len(objects))
	for i, o := range objects {
		s[i] = o.String()
	}
	return strings.Join(s, ", ")
}
