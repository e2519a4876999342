// Package graph provides serialization types for family graphs and layouts.
//
// This package defines the wire format for LineageMap's computed data, used
// for JSON files, API responses and caching.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Layout]: Serialization types (this package)
//   - pkg/dag.DAG: Internal person/union graph
//   - pkg/render/tree/layout.Layout: Internal layout (positions, widths)
//
// Use [FromDAG] for graphs; the tree sink exports layouts.
//
// # Layout Serialization
//
// A tree layout is the render-ready structure:
//
//	{
//	  "viz_type": "tree",
//	  "nodes": [{"id": "alice", "kind": "person", "rank": 0, "x": 120, "y": 72}, ...],
//	  "links": [{"sourceId": "alice", "targetId": "u:alice+bob"}, ...],
//	  "paths": [{"kind": "couple", "union": "u:alice+bob", "d": "M120,104 L120,128 ..."}],
//	  "bounds": {"width": 424, "height": 352}
//	}
//
// Common operations:
//
//	data, _ := graph.MarshalLayout(l)
//	l, err := graph.UnmarshalLayout(data)
//	graph.WriteLayoutFile(l, "family.layout.json")
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
