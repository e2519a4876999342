package tree

import (
	"github.com/matzehuels/lineagemap/pkg/dag"
	"github.com/matzehuels/lineagemap/pkg/family"
)

// UnionPrefix prefixes union node IDs so they never collide with person IDs.
const UnionPrefix = "u:"

// Union is a parental unit: the parents sharing at least one child.
type Union struct {
	ID       string   // Node ID in the graph (UnionPrefix + Key)
	Key      string   // Sorted parent IDs joined by "+"; "%" and "+" in IDs are escaped
	Parents  []string // Parent IDs in document order
	Children []string // Child IDs in first-seen order
}

// Graph is an indexed family: the person/union DAG plus lookup tables.
// A Graph is read-only once returned by [Index].
type Graph struct {
	dag      *dag.DAG
	people   map[string]family.Person
	unions   []*Union
	byID     map[string]*Union
	parentOf map[string][]string // person -> unions they parent
	childOf  map[string]string   // person -> union they are a child of
	warnings []string
}

// DAG returns the underlying graph of person and union nodes.
func (g *Graph) DAG() *dag.DAG { return g.dag }

// Warnings returns the non-fatal problems found while indexing.
func (g *Graph) Warnings() []string { return g.warnings }

// Unions returns all unions in creation order.
func (g *Graph) Unions() []*Union { return g.unions }

// Union returns the union with the given node ID.
func (g *Graph) Union(id string) (*Union, bool) {
	u, ok := g.byID[id]
	return u, ok
}

// Person returns the document record for a person. Stub persons return a
// record holding only the id.
func (g *Graph) Person(id string) (family.Person, bool) {
	p, ok := g.people[id]
	return p, ok
}

// PersonIDs returns person node IDs in document order, stubs last.
func (g *Graph) PersonIDs() []string {
	ids := make([]string, 0, len(g.people))
	for _, n := range g.dag.Nodes() {
		if n.IsPerson() {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// UnionsOf returns the IDs of the unions a person is a parent in.
func (g *Graph) UnionsOf(person string) []string { return g.parentOf[person] }

// ParentUnion returns the union a person descends from, or "" for people
// with no parents in the data.
func (g *Graph) ParentUnion(person string) string { return g.childOf[person] }

// IsMarriedIn reports whether a person appears only as a parent: they have
// no parent union of their own.
func (g *Graph) IsMarriedIn(person string) bool {
	return g.childOf[person] == "" && len(g.parentOf[person]) > 0
}

// IsIsolated reports whether a person has no relationships at all.
func (g *Graph) IsIsolated(person string) bool {
	return g.childOf[person] == "" && len(g.parentOf[person]) == 0
}

// RootUnions returns unions none of whose parents have a parent union,
// in creation order.
func (g *Graph) RootUnions() []*Union {
	var roots []*Union
	for _, u := range g.unions {
		root := true
		for _, p := range u.Parents {
			if g.childOf[p] != "" {
				root = false
				break
			}
		}
		if root {
			roots = append(roots, u)
		}
	}
	return roots
}
