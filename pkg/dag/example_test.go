package dag_test

import (
	"fmt"

	"github.com/matzehuels/lineagemap/pkg/dag"
)

func ExampleDAG_basic() {
	// Two parents joined by a union with one child.
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "alice"})
	_ = g.AddNode(dag.Node{ID: "bob"})
	_ = g.AddNode(dag.Node{ID: "alice+bob", Kind: dag.NodeKindUnion})
	_ = g.AddNode(dag.Node{ID: "carol"})
	_ = g.AddEdge(dag.Edge{From: "alice", To: "alice+bob"})
	_ = g.AddEdge(dag.Edge{From: "bob", To: "alice+bob"})
	_ = g.AddEdge(dag.Edge{From: "alice+bob", To: "carol"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Parents of union:", g.Parents("alice+bob"))
	// Output:
	// Nodes: 4
	// Edges: 3
	// Parents of union: [alice bob]
}

func ExampleDAG_Sources() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "bob"})
	_ = g.AddNode(dag.Node{ID: "alice"})
	_ = g.AddNode(dag.Node{ID: "alice+bob", Kind: dag.NodeKindUnion})
	_ = g.AddEdge(dag.Edge{From: "alice", To: "alice+bob"})
	_ = g.AddEdge(dag.Edge{From: "bob", To: "alice+bob"})

	for _, n := range g.Sources() {
		fmt.Println(n.ID)
	}
	// Output:
	// bob
	// alice
}

func ExampleDAG_FindCycle() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "x"})
	_ = g.AddNode(dag.Node{ID: "u", Kind: dag.NodeKindUnion})
	_ = g.AddEdge(dag.Edge{From: "x", To: "u"})
	_ = g.AddEdge(dag.Edge{From: "u", To: "x"})

	fmt.Println(g.FindCycle())
	// Output:
	// [x u x]
}
