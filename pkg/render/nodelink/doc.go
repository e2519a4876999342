// Package nodelink renders family graphs as plain node-link diagrams.
//
// # Overview
//
// This is the debug view of the indexed family: every person and every
// synthetic union is drawn by Graphviz with no family-tree placement rules.
// It is useful for checking what the indexer made of a document before
// looking at the tree layout.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Persons are rounded boxes, unions are points, and stub persons (ids that
// appear only in relationships) are dashed and grey.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
