package stub

import (
	"sync"

	"github.com/carlosolivasio/seqtheory/pkg/theory"
)

// EqualityGraph is a plain union-find over term identity: it gives every
// distinct term its own node on first sight and merges classes on
// AssertEqual, with no congruence closure over operator applications.
// The real collaborator (spec.md section 6) owns that; this stub only
// needs to answer NodeOf/AreEqual for the cascade rules that consult it.
type EqualityGraph struct {
	mu       sync.Mutex
	nodeOf   map[int64]theory.NodeID
	parent   map[theory.NodeID]theory.NodeID
	nextNode int64
}

// NewEqualityGraph creates an empty equality graph.
func NewEqualityGraph() *EqualityGraph {
	return &EqualityGraph{
		nodeOf: make(map[int64]theory.NodeID),
		parent: make(map[theory.NodeID]theory.NodeID),
	}
}

// NodeOf returns t's enode id, allocating one on first use.
func (g *EqualityGraph) NodeOf(t *theory.Term) theory.NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodeOf[t.ID]; ok {
		return n
	}
	g.nextNode++
	n := theory.NodeID(g.nextNode)
	g.nodeOf[t.ID] = n
	g.parent[n] = n
	return n
}

func (g *EqualityGraph) find(n theory.NodeID) theory.NodeID {
	for g.parent[n] != n {
		g.parent[n] = g.parent[g.parent[n]]
		n = g.parent[n]
	}
	return n
}

// AreEqual reports whether a and b are in the same class.
func (g *EqualityGraph) AreEqual(a, b theory.NodeID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.find(a) == g.find(b)
}

// AssertEqual merges a's and b's classes.
func (g *EqualityGraph) AssertEqual(a, b theory.NodeID, dep *theory.Dependency) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	ra, rb := g.find(a), g.find(b)
	if ra != rb {
		g.parent[ra] = rb
	}
	return nil
}
