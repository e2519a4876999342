package dag

import (
	"cmp"
	"slices"
)

// CountCrossings returns the total number of edge crossings for the given rank
// orderings. The orders map holds node IDs in left-to-right order per rank;
// a node's index in its rank stands in for its x. Nodes missing from orders
// and their edges are ignored.
//
//	orders := map[int][]string{
//	    0: {"alice", "bob"},       // rank 0: parents
//	    1: {"alice+bob"},          // rank 1: their union
//	    2: {"carol", "dave"},      // rank 2: children
//	}
//	crossings := dag.CountCrossings(g, orders)
//
// Edges that skip ranks are counted as in [CountSpanCrossings].
func CountCrossings(g *DAG, orders map[int][]string) int {
	ranks := make(map[string]int)
	xs := make(map[string]float64)
	for r, ids := range orders {
		for i, id := range ids {
			ranks[id] = r
			xs[id] = float64(i)
		}
	}
	return CountSpanCrossings(g, ranks, xs)
}

// CountSpanCrossings counts edge crossings between positioned nodes. Each
// edge is followed through every band between consecutive ranks it spans,
// with its x interpolated linearly, so an edge that skips ranks is checked
// against the edges of every band it passes. Edges that share an endpoint
// never cross. The layout reports this number in its statistics.
func CountSpanCrossings(g *DAG, ranks map[string]int, xs map[string]float64) int {
	type segment struct{ top, bottom float64 }
	bands := make(map[int][]segment)
	for _, e := range g.edges {
		r0, ok0 := ranks[e.From]
		r1, ok1 := ranks[e.To]
		x0, okx0 := xs[e.From]
		x1, okx1 := xs[e.To]
		if !ok0 || !ok1 || !okx0 || !okx1 || r1 <= r0 {
			continue
		}
		at := func(r int) float64 {
			return x0 + (x1-x0)*float64(r-r0)/float64(r1-r0)
		}
		for r := r0; r < r1; r++ {
			bands[r] = append(bands[r], segment{at(r), at(r + 1)})
		}
	}

	crossings := 0
	for _, segs := range bands {
		slices.SortFunc(segs, func(a, b segment) int {
			if c := cmp.Compare(a.top, b.top); c != 0 {
				return c
			}
			return cmp.Compare(a.bottom, b.bottom)
		})
		bottoms := make([]float64, len(segs))
		for i, s := range segs {
			bottoms[i] = s.bottom
		}
		crossings += inversions(bottoms)
	}
	return crossings
}

// CountLayerCrossings counts edge crossings between two adjacent ranks.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// This is equivalent to counting inversions in the sequence of target positions
// when edges are sorted by source position.
//
// Returns 0 if either rank is empty or nil.
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)
	var targets []float64
	for _, nodeID := range upper {
		var row []float64
		for _, child := range g.Children(nodeID) {
			if pos, ok := lowerPos[child]; ok {
				row = append(row, float64(pos))
			}
		}
		slices.Sort(row)
		targets = append(targets, row...)
	}
	return inversions(targets)
}

// inversions counts pairs i < j with seq[j] < seq[i] using a Fenwick tree
// (binary indexed tree) over the compressed values, in O(n log n).
func inversions(seq []float64) int {
	if len(seq) < 2 {
		return 0
	}
	values := slices.Compact(slices.Sorted(slices.Values(seq)))

	fenwick := make([]int, len(values)+1)
	count, total := 0, 0
	for _, v := range seq {
		i, _ := slices.BinarySearch(values, v)
		// Query: values seen so far that are <= v
		lessOrEqual := 0
		for q := i + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		count += total - lessOrEqual

		total++
		for idx := i + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return count
}
