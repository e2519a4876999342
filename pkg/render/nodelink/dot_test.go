package nodelink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/lineagemap/pkg/family"
	"github.com/matzehuels/lineagemap/pkg/tree"
)

func testGraph(t *testing.T) *tree.Graph {
	t.Helper()
	g, err := tree.Index(&family.Document{
		People: []family.Person{
			{ID: "a", Name: "Ada", Born: "1815", Died: "1852"},
			{ID: "b", Name: "William"},
			{ID: "c", Name: "Byron"},
		},
		Relationships: []family.Relationship{
			{ParentID: "a", ChildID: "c"},
			{ParentID: "b", ChildID: "c"},
			{ParentID: "x", ChildID: "c"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	for _, want := range []string{
		"digraph G {",
		`"a" [label="Ada"];`,
		`"u:a+b+x" [shape=point`,
		`"a" -> "u:a+b+x";`,
		`"u:a+b+x" -> "c";`,
		"dashed",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Detailed: true})
	if !strings.Contains(dot, `label="Ada\nid: a\n1815 – 1852"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	if !bytes.Contains(out, []byte(`viewBox="0 0 100.00 50.00" width="100" height="50"`)) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("input without viewBox changed: %s", got)
	}
}
