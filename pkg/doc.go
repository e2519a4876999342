// Package pkg provides the core libraries for LineageMap family-tree layout.
//
// # Overview
//
// LineageMap turns a family document (people plus parent-child
// relationships) into a generational tree: every generation on its own row,
// co-parents side by side, children centered under their parents, and
// connectors routed between card edges. The pkg directory is organized as:
//
//  1. [family] - Family documents and their lenient decoder
//  2. [tree] - Relationship indexing into a person/union graph
//  3. [dag] - Graph structure, rank assignment and crossing counts
//  4. [render] - Layout, edge routing and output sinks
//  5. [pipeline] - Orchestration (index → layout → render) with caching
//  6. [store], [cache], [server], [config] - Infrastructure
//  7. [graph] - Serialization types for graphs and layouts
//
// # Architecture
//
//	family.json
//	     ↓
//	[family] decode (alias keys, skipped records become warnings)
//	     ↓
//	[tree] index (unions, stub persons, cycle detection)
//	     ↓
//	[dag/transform] ranks (longest path, spouse alignment)
//	     ↓
//	[render/tree/layout] widths and positions
//	     ↓
//	[render/tree/route] connector paths
//	     ↓
//	[render/tree/sink] SVG / JSON, [render/nodelink] DOT
//
// # Quick Start
//
//	doc, _, err := family.Decode(data)
//	g, err := tree.Index(doc)
//	l, err := layout.Build(g, layout.DefaultConfig())
//	svg := sink.RenderSVG(l, route.Route(g, l), sink.WithGraph(g))
//
// Or with caching, through the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg"}})
//
// [family]: github.com/matzehuels/lineagemap/pkg/family
// [tree]: github.com/matzehuels/lineagemap/pkg/tree
// [dag]: github.com/matzehuels/lineagemap/pkg/dag
// [render]: github.com/matzehuels/lineagemap/pkg/render
// [pipeline]: github.com/matzehuels/lineagemap/pkg/pipeline
// [store]: github.com/matzehuels/lineagemap/pkg/store
// [cache]: github.com/matzehuels/lineagemap/pkg/cache
// [server]: github.com/matzehuels/lineagemap/pkg/server
// [config]: github.com/matzehuels/lineagemap/pkg/config
// [graph]: github.com/matzehuels/lineagemap/pkg/graph
package pkg
