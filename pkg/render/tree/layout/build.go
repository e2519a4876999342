package layout

import (
	"github.com/matzehuels/lineagemap/pkg/dag"
	"github.com/matzehuels/lineagemap/pkg/dag/transform"
	"github.com/matzehuels/lineagemap/pkg/errors"
	"github.com/matzehuels/lineagemap/pkg/tree"
)

// Build computes positions for every person and union in g.
//
// The pass runs in stages, each returning a new value:
//  1. ranks: longest-path layering, married-in partners aligned with their
//     spouse unless cfg.StrictRoots is set
//  2. base positions: connected people packed per rank in document order
//  3. widths: bottom-up subtree widths
//  4. placement: top-down from the root unions, centered on the canvas
//  5. collisions: blocks on one rank pushed apart to CardWidth+MinGap, each
//     card moving together with its partners and descendants
//  6. isolated people: base slots to the right of everything on their rank
//  7. unions re-centered between their outermost parents
//  8. normalization: the leftmost card edge lands on cfg.Padding
//
// People without relationships are placed at their base slot and never
// moved afterwards.
func Build(g *tree.Graph, cfg Config) (*Layout, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no family graph")
	}
	cfg = cfg.WithDefaults()

	ranks, err := transform.AssignRanks(g.DAG())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCycle, err, "rank family graph")
	}
	if !cfg.StrictRoots {
		ranks = transform.AlignSpouses(g.DAG(), ranks)
	}

	persons := g.PersonIDs()
	base := baseXs(g, ranks, cfg)
	a := newArena(g, cfg)
	widths := a.computeAll()

	p := newPlacer(a, base)
	xs := p.place()

	connected, isolated := splitIsolated(g, persons)
	for _, id := range connected {
		if _, ok := xs[id]; !ok {
			xs[id] = base[id]
		}
	}
	xs, moved := resolveCollisions(g, xs, connected, ranks, base, cfg)
	for id, x := range isolatedXs(xs, connected, isolated, ranks, cfg) {
		xs[id] = x
		base[id] = x
	}
	xs = centerUnions(g, xs)

	l := assemble(g, cfg, ranks, xs, base)
	l.Widths = widths
	l.Spans = p.spans
	l.Stats.Collisions = moved
	l.Stats.Crossings = dag.CountSpanCrossings(g.DAG(), l.Ranks(), l.xs())
	return l, nil
}

// assemble normalizes positions and produces the immutable Layout.
func assemble(g *tree.Graph, cfg Config, ranks map[string]int, xs, base map[string]float64) *Layout {
	nodes := g.DAG().Nodes()
	l := &Layout{
		Config: cfg,
		Nodes:  make([]Node, 0, len(nodes)),
		index:  make(map[string]int, len(nodes)),
	}
	if len(nodes) == 0 {
		l.Width, l.Height = 2*cfg.Padding, 2*cfg.Padding
		return l
	}

	half := func(n dag.Node) float64 {
		if n.IsUnion() {
			return 0
		}
		return cfg.CardWidth / 2
	}

	minLeft, maxRight, maxRank := 0.0, 0.0, 0
	for i, n := range nodes {
		left, right := xs[n.ID]-half(n), xs[n.ID]+half(n)
		if i == 0 || left < minLeft {
			minLeft = left
		}
		if i == 0 || right > maxRight {
			maxRight = right
		}
		maxRank = max(maxRank, ranks[n.ID])
	}
	shift := cfg.Padding - minLeft

	seen := make(map[int]bool)
	for _, n := range nodes {
		ln := Node{
			ID:    n.ID,
			Kind:  n.Kind,
			Label: n.Label,
			Stub:  n.Stub,
			Rank:  ranks[n.ID],
			X:     xs[n.ID] + shift,
			Y:     cfg.RankY(ranks[n.ID]),
		}
		if n.IsUnion() {
			l.Stats.Unions++
		} else {
			ln.BaseX = base[n.ID] + shift
			l.Stats.Persons++
			seen[ln.Rank] = true
		}
		l.index[n.ID] = len(l.Nodes)
		l.Nodes = append(l.Nodes, ln)
	}

	l.Stats.Ranks = len(seen)
	l.Width = maxRight + shift + cfg.Padding
	l.Height = cfg.RankY(maxRank) + cfg.CardHeight/2 + cfg.Padding
	return l
}
