package graph

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/lineagemap/pkg/dag"
)

func TestFromDAG(t *testing.T) {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "a", Label: "Alice"})
	_ = g.AddNode(dag.Node{ID: "ghost", Label: "ghost", Stub: true})
	_ = g.AddNode(dag.Node{ID: "u:a+ghost", Kind: dag.NodeKindUnion})
	_ = g.AddEdge(dag.Edge{From: "a", To: "u:a+ghost"})
	_ = g.AddEdge(dag.Edge{From: "ghost", To: "u:a+ghost"})

	out := FromDAG(g)
	if len(out.Nodes) != 3 || len(out.Edges) != 2 {
		t.Fatalf("nodes=%d edges=%d", len(out.Nodes), len(out.Edges))
	}
	if !out.Nodes[2].IsUnion() || out.Nodes[0].IsUnion() {
		t.Errorf("kinds = %s, %s", out.Nodes[0].Kind, out.Nodes[2].Kind)
	}
	if !out.Nodes[1].Stub {
		t.Error("stub flag lost")
	}
	if out.Edges[1].From != "ghost" {
		t.Errorf("edge order = %+v", out.Edges)
	}
}

func TestMarshalGraph_Empty(t *testing.T) {
	data, err := MarshalGraph(dag.New())
	if err != nil {
		t.Fatal(err)
	}
	g, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatal(err)
	}
	if g.Nodes == nil || g.Edges == nil || len(g.Nodes) != 0 {
		t.Errorf("empty graph = %+v, want empty non-nil slices", g)
	}
}

func TestUnmarshalLayout(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		wantViz string
	}{
		{"default viz type", `{"bounds": {"width": 80, "height": 80}}`, false, VizTypeTree},
		{"tree with nodes", `{"viz_type": "tree", "nodes": [{"id": "a"}], "bounds": {"width": 240, "height": 144}}`, false, VizTypeTree},
		{"tree without bounds", `{"viz_type": "tree", "nodes": [{"id": "a"}]}`, true, ""},
		{"nodelink", `{"viz_type": "nodelink", "dot": "digraph G {}"}`, false, VizTypeNodelink},
		{"nodelink without dot", `{"viz_type": "nodelink"}`, true, ""},
		{"malformed", `{`, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := UnmarshalLayout([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && l.VizType != tt.wantViz {
				t.Errorf("VizType = %q, want %q", l.VizType, tt.wantViz)
			}
		})
	}
}

func TestLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	in := Layout{
		VizType: VizTypeTree,
		Style:   StyleSepia,
		Nodes:   []Node{{ID: "a", Kind: KindPerson, X: 120, Y: 72, Lifespan: "1900 – 1980"}},
		Links:   []Link{},
		Bounds:  Bounds{Width: 240, Height: 144},
		Stats:   &Stats{Persons: 1, Ranks: 1},
	}
	if err := WriteLayoutFile(in, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	out, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if out.Style != StyleSepia || out.Nodes[0].Lifespan != "1900 – 1980" || out.Stats.Persons != 1 {
		t.Errorf("round trip lost data: %+v", out)
	}
	if _, err := ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadLayoutFile(missing) = nil error")
	}
}
