package sink

import (
	"github.com/matzehuels/lineagemap/pkg/graph"
	"github.com/matzehuels/lineagemap/pkg/render/tree/layout"
	"github.com/matzehuels/lineagemap/pkg/render/tree/route"
	"github.com/matzehuels/lineagemap/pkg/tree"
)

// JSONOption configures [Export] and [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	graph  *tree.Graph
	style  string
	family string
}

// WithJSONGraph attaches the indexed family for person details (dates,
// photo, place), links and warnings. Without it nodes carry only positions.
func WithJSONGraph(g *tree.Graph) JSONOption { return func(r *jsonRenderer) { r.graph = g } }

// WithJSONStyle records the style name for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONFamily records the family name the layout was computed for.
func WithJSONFamily(name string) JSONOption { return func(r *jsonRenderer) { r.family = name } }

// Export converts a finished layout and its paths to the render-ready
// structure. Nodes keep layout order; links and paths keep graph order.
func Export(l *layout.Layout, paths []route.Path, opts ...JSONOption) graph.Layout {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := graph.Layout{
		VizType: graph.VizTypeTree,
		Style:   r.style,
		Family:  r.family,
		Nodes:   make([]graph.Node, 0, len(l.Nodes)),
		Links:   []graph.Link{},
		Paths:   make([]graph.Path, 0, len(paths)),
		Bounds:  graph.Bounds{Width: l.Width, Height: l.Height},
		Card:    graph.Bounds{Width: l.Config.CardWidth, Height: l.Config.CardHeight},
		Stats: &graph.Stats{
			Persons:    l.Stats.Persons,
			Unions:     l.Stats.Unions,
			Ranks:      l.Stats.Ranks,
			Collisions: l.Stats.Collisions,
			Crossings:  l.Stats.Crossings,
		},
	}

	for _, n := range l.Nodes {
		out.Nodes = append(out.Nodes, exportNode(n, r.graph))
	}
	for _, p := range paths {
		out.Paths = append(out.Paths, graph.Path{Kind: string(p.Kind), Union: p.Union, Node: p.Node, D: p.D})
	}
	if r.graph != nil {
		for _, e := range r.graph.DAG().Edges() {
			out.Links = append(out.Links, graph.Link{SourceID: e.From, TargetID: e.To})
		}
		out.Warnings = r.graph.Warnings()
	}
	return out
}

// RenderJSON exports the layout as pretty-printed JSON. See [Export].
func RenderJSON(l *layout.Layout, paths []route.Path, opts ...JSONOption) ([]byte, error) {
	return graph.MarshalLayout(Export(l, paths, opts...))
}

func exportNode(n layout.Node, g *tree.Graph) graph.Node {
	out := graph.Node{
		ID:    n.ID,
		Label: n.Label,
		Kind:  n.Kind.String(),
		Stub:  n.Stub,
		Rank:  n.Rank,
		X:     n.X,
		Y:     n.Y,
	}
	if n.IsUnion() {
		return out
	}
	out.BaseX = n.BaseX
	if g == nil {
		return out
	}
	if p, ok := g.Person(n.ID); ok {
		out.Label = p.DisplayName()
		out.Born = p.Born
		out.Died = p.Died
		out.Lifespan = p.Lifespan()
		out.Photo = p.Photo
		out.Place = p.Location.Label()
	}
	return out
}
