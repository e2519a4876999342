package layout

import (
	"github.com/matzehuels/lineagemap/pkg/tree"
)

// arena holds the memo tables of one layout pass. It is created per call to
// Build and discarded afterwards.
type arena struct {
	g        *tree.Graph
	cfg      Config
	widths   map[string]float64
	visiting map[string]bool
}

func newArena(g *tree.Graph, cfg Config) *arena {
	return &arena{
		g:        g,
		cfg:      cfg,
		widths:   make(map[string]float64),
		visiting: make(map[string]bool),
	}
}

// width returns the horizontal room the subtree rooted at id needs.
// A node revisited while its own width is being computed counts as one card.
func (a *arena) width(id string) float64 {
	if w, ok := a.widths[id]; ok {
		return w
	}
	if a.visiting[id] {
		return a.cfg.CardWidth
	}
	a.visiting[id] = true
	defer delete(a.visiting, id)

	var w float64
	if u, ok := a.g.Union(id); ok {
		w = a.unionWidth(u)
	} else {
		w = a.personWidth(id)
	}
	a.widths[id] = w
	return w
}

// personWidth is CardWidth for people who parent nothing, otherwise the
// width of their unions side by side.
func (a *arena) personWidth(id string) float64 {
	unions := a.g.UnionsOf(id)
	if len(unions) == 0 {
		return a.cfg.CardWidth
	}
	var sum float64
	for _, u := range unions {
		sum += a.width(u)
	}
	sum += float64(len(unions)-1) * a.cfg.ClusterGap
	return max(sum, a.cfg.CardWidth)
}

// unionWidth is the wider of the parent block and the children block.
func (a *arena) unionWidth(u *tree.Union) float64 {
	var spouses float64
	if p := len(u.Parents); p > 0 {
		spouses = float64(p)*a.cfg.CardWidth + float64(p-1)*a.cfg.SpouseGap
	}
	var children float64
	if c := len(u.Children); c > 0 {
		for _, child := range u.Children {
			children += a.width(child)
		}
		children += float64(c-1) * a.cfg.SiblingGap
	}
	return max(spouses, children, a.cfg.CardWidth)
}

// computeAll fills the memo for every node in graph order.
func (a *arena) computeAll() map[string]float64 {
	for _, id := range a.g.DAG().NodeIDs() {
		a.width(id)
	}
	return a.widths
}
