package graph

import (
	"github.com/matzehuels/lineagemap/pkg/dag"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeTree     = "tree"
	VizTypeNodelink = "nodelink"
)

// Visual styles for rendering.
const (
	StyleSimple = "simple"
	StyleSepia  = "sepia"
)

// Node kinds.
const (
	KindPerson = "person"
	KindUnion  = "union"
)

// =============================================================================
// Graph - Indexed Family Serialization
// =============================================================================

// Graph is the node-link serialization of an indexed family: persons, the
// synthetic unions between them, and the edges person→union→person.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is the unified node type for all serialization contexts.
type Node struct {
	ID    string  `json:"id" bson:"id"`
	Label string  `json:"label,omitempty" bson:"label,omitempty"`
	Kind  string  `json:"kind" bson:"kind"` // "person" or "union"
	Stub  bool    `json:"stub,omitempty" bson:"stub,omitempty"`
	Rank  int     `json:"rank" bson:"rank"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	BaseX float64 `json:"base_x,omitempty" bson:"base_x,omitempty"`

	// Person details for the rendering surface
	Born     string `json:"born,omitempty" bson:"born,omitempty"`
	Died     string `json:"died,omitempty" bson:"died,omitempty"`
	Lifespan string `json:"lifespan,omitempty" bson:"lifespan,omitempty"`
	Photo    string `json:"photo,omitempty" bson:"photo,omitempty"`
	Place    string `json:"place,omitempty" bson:"place,omitempty"`
}

// IsUnion returns true if this is a union node.
func (n *Node) IsUnion() bool { return n.Kind == KindUnion }

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// FromDAG converts an indexed family graph to its serialized form.
// Positions are left at zero; see [Layout] for placed nodes.
func FromDAG(g *dag.DAG) Graph {
	out := Graph{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, Node{
			ID:    n.ID,
			Label: n.Label,
			Kind:  n.Kind.String(),
			Stub:  n.Stub,
		})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{From: e.From, To: e.To})
	}
	return out
}

// =============================================================================
// Layout - Render-Ready Structure
// =============================================================================

// Layout is the render-ready structure handed to drawing surfaces: placed
// nodes, the links between them, routed paths and the bounding box.
//
//	Tree ("tree"):         Nodes, Links, Paths, Bounds, Card
//	Nodelink ("nodelink"): DOT
type Layout struct {
	VizType string `json:"viz_type" bson:"viz_type"`
	Style   string `json:"style,omitempty" bson:"style,omitempty"`

	Nodes  []Node `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Links  []Link `json:"links,omitempty" bson:"links,omitempty"`
	Paths  []Path `json:"paths,omitempty" bson:"paths,omitempty"`
	Bounds Bounds `json:"bounds" bson:"bounds"`
	Card   Bounds `json:"card" bson:"card"` // person card size

	Family   string   `json:"family,omitempty" bson:"family,omitempty"`
	Warnings []string `json:"warnings,omitempty" bson:"warnings,omitempty"`
	Stats    *Stats   `json:"stats,omitempty" bson:"stats,omitempty"`

	// Nodelink-specific
	DOT string `json:"dot,omitempty" bson:"dot,omitempty"`
}

// IsTree returns true if this is a family-tree layout.
func (l *Layout) IsTree() bool { return l.VizType == VizTypeTree }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// Link is a graph edge by endpoint IDs.
type Link struct {
	SourceID string `json:"sourceId" bson:"source_id"`
	TargetID string `json:"targetId" bson:"target_id"`
}

// Path is a routed connector.
type Path struct {
	Kind  string `json:"kind" bson:"kind"` // "couple", "parent" or "child"
	Union string `json:"union" bson:"union"`
	Node  string `json:"node,omitempty" bson:"node,omitempty"`
	D     string `json:"d" bson:"d"`
}

// Bounds is the size of the drawing.
type Bounds struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Stats summarizes a layout pass.
type Stats struct {
	Persons    int `json:"persons" bson:"persons"`
	Unions     int `json:"unions" bson:"unions"`
	Ranks      int `json:"ranks" bson:"ranks"`
	Collisions int `json:"collisions" bson:"collisions"`
	Crossings  int `json:"crossings" bson:"crossings"`
}
