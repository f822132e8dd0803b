package contextual

// QueryType selects objects by recency.
type QueryType int

const (
	AllObjects QueryType = iota
	NewObjects
	OldObjects
)

// Query selects geometrical objects by recency and kind.
type Query struct {
	Type           QueryType
	IncludePoints  bool
	IncludeLines   bool
	IncludeCircles bool
}

// partition keeps the objects of one kind in creation order. Objects are
// only ever created new, so the new ones are the suffix from firstNew on.
type partition struct {
	objects  []*GeometricalObject
	firstNew int
}

func (p *partition) add(g *GeometricalObject) {
	p.objects = append(p.objects, g)
}

func (p *partition) selectType(t QueryType) []*GeometricalObject {
	switch t {
	case NewObjects:
		return p.objects[p.firstNew:]
	case OldObjects:
		return p.objects[:p.firstNew]
	}
	return p.objects
}

func (p *partition) resetNew() {
	for _, g := range p.objects[p.firstNew:] {
		g.isNew = false
	}
	p.firstNew = len(p.objects)
}

func Points(t QueryType) Query {
	return Query{Type: t, IncludePoints: true}
}

func Lines(t QueryType) Query {
	return Query{Type: t, IncludeLines: true}
}

func Circles(t QueryType) Query {
	return Query{Type: t, IncludeCircles: true}
}

// LinesAndCircles selects both kinds of curves.
func LinesAndCircles(t QueryType) Query {
	return Query{Type: t, IncludeLines: true, IncludeCircles: true}
}
