package layout

import (
	"github.com/matzehuels/lineagemap/pkg/dag"
)

// Node is a positioned person or union. X and Y are centers. Union nodes are
// points; person nodes are cards of Config.CardWidth × Config.CardHeight.
type Node struct {
	ID    string
	Kind  dag.NodeKind
	Label string
	Stub  bool
	Rank  int
	X, Y  float64
	BaseX float64 // pre-allocation position (persons only), in the final frame
}

// IsUnion reports whether the node is a union point.
func (n Node) IsUnion() bool { return n.Kind == dag.NodeKindUnion }

// Point is a 2-D coordinate in layout units.
type Point struct {
	X, Y float64
}

// Stats summarizes a layout pass.
type Stats struct {
	Persons    int
	Unions     int
	Ranks      int // ranks holding at least one person
	Collisions int // cards moved by the overlap pass
	Crossings  int // edge crossings, edges that skip ranks included
}

// Layout is the output of [Build]. It is never modified after Build returns.
type Layout struct {
	Config Config
	Nodes  []Node             // persons in document order, then unions
	Widths map[string]float64 // subtree width per node
	Spans  map[string]float64 // horizontal room each placed child was given
	Width  float64
	Height float64
	Stats  Stats

	index map[string]int
}

// Node returns the positioned node with the given ID.
func (l *Layout) Node(id string) (Node, bool) {
	i, ok := l.index[id]
	if !ok {
		return Node{}, false
	}
	return l.Nodes[i], true
}

// Ranks returns the rank of every node.
func (l *Layout) Ranks() map[string]int {
	ranks := make(map[string]int, len(l.Nodes))
	for _, n := range l.Nodes {
		ranks[n.ID] = n.Rank
	}
	return ranks
}

// TopAnchor returns the midpoint of a card's top edge. For unions it returns
// the union point itself.
func (l *Layout) TopAnchor(id string) (Point, bool) {
	n, ok := l.Node(id)
	if !ok {
		return Point{}, false
	}
	if n.IsUnion() {
		return Point{n.X, n.Y}, true
	}
	return Point{n.X, n.Y - l.Config.CardHeight/2}, true
}

// BottomAnchor returns the midpoint of a card's bottom edge. For unions it
// returns the union point itself.
func (l *Layout) BottomAnchor(id string) (Point, bool) {
	n, ok := l.Node(id)
	if !ok {
		return Point{}, false
	}
	if n.IsUnion() {
		return Point{n.X, n.Y}, true
	}
	return Point{n.X, n.Y + l.Config.CardHeight/2}, true
}

// xs returns the x of every node.
func (l *Layout) xs() map[string]float64 {
	xs := make(map[string]float64, len(l.Nodes))
	for _, n := range l.Nodes {
		xs[n.ID] = n.X
	}
	return xs
}
