// Package sink provides output format renderers for family trees.
//
// # Overview
//
// A "sink" transforms a finished [layout.Layout] and its routed paths into
// a final output format:
//
//   - SVG: cards, connectors and union dots, optionally with pan and zoom
//   - JSON: the render-ready [graph.Layout] structure
//
// # SVG Output
//
//	svg := sink.RenderSVG(l, paths,
//	    sink.WithGraph(g),
//	    sink.WithStyle(styles.Sepia{}),
//	    sink.WithPanZoom(),
//	)
//
// Everything is drawn inside one root group with id "viewport". With
// [WithPanZoom] an embedded script rewrites that group's transform on wheel
// and drag, clamped to the zoom limits of [render.Viewport].
//
// # JSON Output
//
// [Export] builds the [graph.Layout] value used by the API and the cache;
// [RenderJSON] marshals it.
//
// [graph.Layout]: github.com/matzehuels/lineagemap/pkg/graph.Layout
// [render.Viewport]: github.com/matzehuels/lineagemap/pkg/render.Viewport
package sink
