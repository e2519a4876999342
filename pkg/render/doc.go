// Package render provides visualization rendering for family trees.
//
// # Overview
//
// This package contains the rendering pipeline that turns an indexed family
// graph into visual output:
//
//   - Family-tree visualization (in the [tree] subpackages)
//   - Node-link debug diagrams (in the [nodelink] subpackage)
//   - The presentational pan/zoom [Viewport]
//
// # Family Tree
//
// The tree subpackages split the work into stages, each returning a new
// value:
//   - [tree/layout]: ranks, subtree widths and card positions
//   - [tree/route]: connector geometry anchored on card edges
//   - [tree/sink]: output formats (SVG, JSON)
//   - [tree/styles]: visual styles (simple, sepia)
//
//	l, err := layout.Build(g, layout.DefaultConfig())
//	paths := route.Route(g, l)
//	svg := sink.RenderSVG(l, paths, sink.WithGraph(g), sink.WithPanZoom())
//
// # Pan and Zoom
//
// [Viewport] is applied on top of a finished layout and never feeds back into
// it. The SVG sink embeds a script that performs the same transform in the
// browser.
//
// [tree/layout]: github.com/matzehuels/lineagemap/pkg/render/tree/layout
// [tree/route]: github.com/matzehuels/lineagemap/pkg/render/tree/route
// [tree/sink]: github.com/matzehuels/lineagemap/pkg/render/tree/sink
// [tree/styles]: github.com/matzehuels/lineagemap/pkg/render/tree/styles
// [tree]: github.com/matzehuels/lineagemap/pkg/render/tree/layout
// [nodelink]: github.com/matzehuels/lineagemap/pkg/render/nodelink
package render
