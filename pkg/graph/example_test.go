package graph_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/lineagemap/pkg/dag"
	"github.com/matzehuels/lineagemap/pkg/graph"
)

func ExampleWriteGraph() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "ada", Label: "Ada"})
	_ = g.AddNode(dag.Node{ID: "u:ada", Kind: dag.NodeKindUnion})
	_ = g.AddEdge(dag.Edge{From: "ada", To: "u:ada"})

	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "ada",
	//       "label": "Ada",
	//       "kind": "person",
	//       "rank": 0,
	//       "x": 0,
	//       "y": 0
	//     },
	//     {
	//       "id": "u:ada",
	//       "kind": "union",
	//       "rank": 0,
	//       "x": 0,
	//       "y": 0
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "ada",
	//       "to": "u:ada"
	//     }
	//   ]
	// }
}

func ExampleUnmarshalLayout() {
	data := []byte(`{"nodes": [{"id": "ada", "kind": "person", "x": 120, "y": 72}], "bounds": {"width": 240, "height": 144}}`)

	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(l.VizType, len(l.Nodes), l.Bounds.Width)
	// Output:
	// tree 1 240
}
