package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/lineagemap/pkg/family"
	"github.com/matzehuels/lineagemap/pkg/graph"
	"github.com/matzehuels/lineagemap/pkg/observability"
	"github.com/matzehuels/lineagemap/pkg/render/nodelink"
	"github.com/matzehuels/lineagemap/pkg/render/tree/layout"
	"github.com/matzehuels/lineagemap/pkg/render/tree/route"
	"github.com/matzehuels/lineagemap/pkg/render/tree/sink"
	"github.com/matzehuels/lineagemap/pkg/tree"
)

// =============================================================================
// Indexing
// =============================================================================

// Index builds the family graph for doc. Indexer warnings are logged; the
// structural errors (self-parent, cycle) are returned unchanged.
func Index(ctx context.Context, doc *family.Document, opts Options) (*tree.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnIndexStart(ctx, opts.Family)
	start := time.Now()

	g, err := tree.Index(doc)
	if err != nil {
		hooks.OnIndexComplete(ctx, opts.Family, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnIndexComplete(ctx, opts.Family, len(g.PersonIDs()), len(g.Unions()), time.Since(start), nil)

	for _, w := range g.Warnings() {
		opts.Logger.Warn("indexing", "family", opts.Family, "warning", w)
	}
	return g, nil
}

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the serializable layout of an indexed family for
// the requested visualization type.
//
// Both layout kinds carry the DOT source of the family, so the dot format
// can be rendered from either.
func GenerateLayout(ctx context.Context, g *tree.Graph, opts Options) (graph.Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.VizType, g.DAG().NodeCount())
	start := time.Now()

	l, err := generateLayout(g, opts)
	hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), err)
	return l, err
}

func generateLayout(g *tree.Graph, opts Options) (graph.Layout, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
	if opts.IsNodelink() {
		return graph.Layout{
			VizType:  graph.VizTypeNodelink,
			Style:    opts.Style,
			Family:   opts.Family,
			Warnings: g.Warnings(),
			DOT:      dot,
		}, nil
	}

	l, err := layout.Build(g, opts.Layout)
	if err != nil {
		return graph.Layout{}, err
	}
	out := sink.Export(l, route.Route(g, l),
		sink.WithJSONGraph(g),
		sink.WithJSONStyle(opts.Style),
		sink.WithJSONFamily(opts.Family),
	)
	out.DOT = dot
	return out, nil
}
