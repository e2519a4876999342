package transform

import (
	"errors"
	"maps"
	"slices"

	"github.com/matzehuels/lineagemap/pkg/dag"
)

// ErrCycle is returned by [AssignRanks] when some nodes never reach zero
// in-degree, which only happens when the graph contains a cycle.
var ErrCycle = errors.New("graph contains a cycle")

// AssignRanks assigns each node an integer rank (generation depth) and returns
// the assignment as a new map. The graph is not modified.
//
// AssignRanks uses a longest-path algorithm via topological sort (Kahn's
// algorithm). Each node is placed at one plus the maximum rank of any of its
// parents, ensuring that:
//   - Source nodes (no incoming edges) are at rank 0
//   - For every edge a→b, rank(b) > rank(a)
//   - Every union lies strictly between its parents and its children
//
// # Algorithm
//
//  1. Collect all source nodes (in-degree 0) into the ready set
//  2. Pop the smallest ID from the ready set; push each child to
//     max(rank(child), rank(curr)+1)
//  3. Decrement in-degree counters; newly zero-degree nodes become ready
//  4. Repeat until the ready set is empty
//
// The ready set is ordered by node ID, so the traversal order never depends
// on map iteration.
//
// # Cycles
//
// Nodes on a cycle never reach zero in-degree. AssignRanks returns ErrCycle
// (together with the partial assignment) when any node is left unprocessed.
//
// # Performance
//
// O((V + E) log V) time, O(V) space.
func AssignRanks(g *dag.DAG) (map[string]int, error) {
	ids := g.NodeIDs()
	inDegree := make(map[string]int, len(ids))
	ranks := make(map[string]int, len(ids))
	var ready []string

	for _, id := range ids {
		degree := g.InDegree(id)
		inDegree[id] = degree
		if degree == 0 {
			ready = append(ready, id)
		}
	}
	slices.Sort(ready)

	processed := 0
	for len(ready) > 0 {
		curr := ready[0]
		ready = ready[1:]
		processed++

		for _, child := range g.Children(curr) {
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				i, _ := slices.BinarySearch(ready, child)
				ready = slices.Insert(ready, i, child)
			}
		}
	}

	if processed != len(ids) {
		return ranks, ErrCycle
	}
	return ranks, nil
}

// AlignSpouses lowers people who enter the tree by marriage onto the row of
// their partner. A person with no parents of their own is a source and would
// otherwise sit at rank 0 however deep their spouse is; AlignSpouses moves
// each such person to one rank above the shallowest union they parent.
//
// Only source persons move, and only downward, so rank monotonicity is kept:
// the moved node has no incoming edges and still sits strictly above all of
// its unions. A new map is returned; ranks is not modified.
func AlignSpouses(g *dag.DAG, ranks map[string]int) map[string]int {
	aligned := maps.Clone(ranks)
	for _, n := range g.Sources() {
		if !n.IsPerson() || g.OutDegree(n.ID) == 0 {
			continue
		}
		target := -1
		for _, u := range g.Children(n.ID) {
			if r := ranks[u] - 1; target < 0 || r < target {
				target = r
			}
		}
		if target > aligned[n.ID] {
			aligned[n.ID] = target
		}
	}
	return aligned
}
