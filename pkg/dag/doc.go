// Package dag provides the directed acyclic graph behind family-tree layouts.
//
// # Overview
//
// A family is modeled as a bipartite graph: person nodes point to the union
// nodes they parent, and union nodes point to their children. Unions are
// synthetic; they exist so that co-parents share one junction and siblings
// hang off the same point.
//
//	alice ─┐
//	       ├─> alice+bob ─> carol
//	bob ───┘
//
// Nodes carry no coordinates. Ranks and positions are computed by later
// stages and returned as new values ([transform.AssignRanks] returns a map of
// ranks) so the graph itself stays immutable once built.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode] and edges with
// [DAG.AddEdge]:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "alice", Label: "Alice"})
//	g.AddNode(dag.Node{ID: "alice+bob", Kind: dag.NodeKindUnion})
//	g.AddEdge(dag.Edge{From: "alice", To: "alice+bob"})
//
// Adjacency lists, [DAG.Nodes] and [DAG.Sources] preserve insertion order,
// which is how the indexer keeps every later stage deterministic.
//
// # Cycles
//
// [DAG.FindCycle] reports one cycle as a path of node IDs. A person who is
// their own ancestor is a structural error for the caller to surface.
//
// # Edge Crossings
//
// [CountSpanCrossings], [CountCrossings] and [CountLayerCrossings] count
// inversions with a Fenwick tree. Edges that skip ranks are followed through
// every band they pass. The layout uses them to report how tangled a
// placement is.
//
// # Concurrency
//
// DAG instances are not safe for concurrent mutation. A fully built graph may
// be read from several goroutines.
//
// [transform.AssignRanks]: github.com/matzehuels/lineagemap/pkg/dag/transform
package dag
