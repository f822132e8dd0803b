package analyzer

import (
	"fmt"
	"sync"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Quorum decides whether a theorem holds in enough containers. results
// has one entry per container.
type Quorum interface {
	Accepts(results []bool) (bool, error)
	fmt.Stringer
}

type allContainers struct{}

// AllContainers accepts a theorem only if it holds in every container.
func AllContainers() Quorum {
	return allContainers{}
}

func (allContainers) Accepts(results []bool) (bool, error) {
	for _, holds := range results {
		if !holds {
			return false, nil
		}
	}
	return true, nil
}

func (allContainers) String() string {
	return "all containers"
}

// AtLeast accepts a theorem that holds in at least n containers. The count
// is checked by a cardinality network over one literal per container,
// built once per number of containers.
func AtLeast(n int) Quorum {
	return &atLeast{minimal: n, networks: make(map[int]*network)}
}

type atLeast struct {
	minimal int

	mu       sync.Mutex
	networks map[int]*network
}

func (q *atLeast) String() string {
	return fmt.Sprintf("at least %d containers", q.minimal)
}

func (q *atLeast) Accepts(results []bool) (bool, error) {
	if q.minimal <= 0 {
		return true, nil
	}
	if q.minimal > len(results) {
		return false, nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	n, ok := q.networks[len(results)]
	if !ok {
		n = newNetwork(len(results), q.minimal)
		q.networks[len(results)] = n
	}
	return n.accepts(results)
}

type network struct {
	g      *gini.Gini
	inputs []z.Lit
	// enough is true iff at least the minimal number of inputs are true
	enough z.Lit
}

func newNetwork(size, minimal int) *network {
	c := logic.NewC()
	inputs := make([]z.Lit, size)
	for i := range inputs {
		inputs[i] = c.Lit()
	}
	cs := c.CardSort(inputs)
	n := &network{g: gini.New(), inputs: inputs, enough: cs.Leq(minimal - 1).Not()}
	c.ToCnf(n.g)
	return n
}

func (n *network) accepts(results []bool) (bool, error) {
	for i, holds := range results {
		if holds {
			n.g.Assume(n.inputs[i])
		} else {
			n.g.Assume(n.inputs[i].Not())
		}
	}
	n.g.Assume(n.enough)
	switch n.g.Solve() {
	case satisfiable:
		return true, nil
	case unsatisfiable:
		return false, nil
	}
	return false, fmt.Errorf("quorum of %d containers could not be decided", len(results))
}
