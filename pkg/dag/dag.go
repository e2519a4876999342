package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [DAG.AddEdge] when From == To.
	ErrSelfLoop = errors.New("edge connects a node to itself")

	// ErrRankOrder is returned by [DAG.ValidateRanks] when an edge does not
	// point strictly downward (rank(To) <= rank(From)).
	ErrRankOrder = errors.New("edge does not point to a lower rank")
)

// NodeKind distinguishes people from the synthetic union nodes that join
// parents to their children.
type NodeKind int

const (
	// NodeKindPerson is an individual from the family document.
	NodeKindPerson NodeKind = iota
	// NodeKindUnion is a synthetic parental unit: the set of parents sharing
	// at least one child.
	NodeKindUnion
)

// String returns "person" or "union".
func (k NodeKind) String() string {
	if k == NodeKindUnion {
		return "union"
	}
	return "person"
}

// Node is a vertex in the family graph.
//
// The zero value is not usable - ID must be set before adding to a DAG.
type Node struct {
	ID    string   // Unique identifier
	Label string   // Display label (person name; empty for unions)
	Kind  NodeKind // Person or union
	Stub  bool     // Person synthesized for an unresolved id
	Order int      // Position in the source document (insertion order)
}

// IsUnion reports whether the node is a synthetic union.
func (n Node) IsUnion() bool { return n.Kind == NodeKindUnion }

// IsPerson reports whether the node is a person.
func (n Node) IsPerson() bool { return n.Kind == NodeKindPerson }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed connection: person→union (parent) or union→person
// (child).
type Edge struct {
	From string // Source node ID
	To   string // Target node ID
}

// DAG is a directed graph over person and union nodes. Adjacency lists keep
// insertion order so traversals are deterministic.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string            // node IDs in insertion order
	edges    []Edge
	outgoing map[string][]string // nodeID -> children IDs
	incoming map[string][]string // nodeID -> parent IDs
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. The node's Order is set to its
// insertion index. Returns ErrInvalidNodeID if the node ID is empty, or
// ErrDuplicateNodeID if a node with the same ID already exists.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	n.Order = len(d.order)
	d.nodes[n.ID] = &n
	d.order = append(d.order, n.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode for missing
// endpoints and ErrSelfLoop when From == To. Duplicate edges are ignored.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.From == e.To {
		return ErrSelfLoop
	}
	if slices.Contains(d.outgoing[e.From], e.To) {
		return nil
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// Nodes returns all nodes in insertion order. The returned slice contains
// copies; modifying them does not affect the graph.
func (d *DAG) Nodes() []Node {
	nodes := make([]Node, 0, len(d.order))
	for _, id := range d.order {
		nodes = append(nodes, *d.nodes[id])
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (d *DAG) NodeIDs() []string { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes this node has edges to.
// The returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node.
// The returned slice should not be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Node returns the node with the given ID and true, or the zero Node and
// false if not found.
func (d *DAG) Node(id string) (Node, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []Node {
	var sources []Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, *d.nodes[id])
		}
	}
	return sources
}

// FindCycle returns the IDs along one directed cycle, starting and ending at
// the same node, or nil when the graph is acyclic.
//
// Runs in O(N+E) using depth-first search with white/gray/black coloring.
// Roots are tried in insertion order, so the reported cycle is stable.
func (d *DAG) FindCycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(stack, child)
				cycle = append(slices.Clone(stack[start:]), child)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range d.order {
		if color[id] == white && dfs(id) {
			return cycle
		}
	}
	return nil
}

// ValidateRanks checks that every edge points from a lower to a strictly
// higher rank. Nodes missing from ranks are treated as rank 0.
func (d *DAG) ValidateRanks(ranks map[string]int) error {
	for _, e := range d.edges {
		if ranks[e.To] <= ranks[e.From] {
			return ErrRankOrder
		}
	}
	return nil
}

// GroupByRank returns node IDs per rank, each group in insertion order.
func (d *DAG) GroupByRank(ranks map[string]int) map[int][]string {
	groups := make(map[int][]string)
	for _, id := range d.order {
		r := ranks[id]
		groups[r] = append(groups[r], id)
	}
	return groups
}

// RankIDs returns the distinct ranks present in ranks, ascending.
func RankIDs(ranks map[string]int) []int {
	seen := make(map[int]struct{}, len(ranks))
	for _, r := range ranks {
		seen[r] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
