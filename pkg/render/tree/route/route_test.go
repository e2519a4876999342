package route

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/lineagemap/pkg/family"
	"github.com/matzehuels/lineagemap/pkg/render/tree/layout"
	"github.com/matzehuels/lineagemap/pkg/tree"
)

func routeFamily(t *testing.T, cfg layout.Config, people []string, rels ...[2]string) (*layout.Layout, []Path) {
	t.Helper()
	doc := &family.Document{}
	for _, id := range people {
		doc.People = append(doc.People, family.Person{ID: id})
	}
	for _, r := range rels {
		doc.Relationships = append(doc.Relationships, family.Relationship{ParentID: r[0], ChildID: r[1]})
	}
	g, err := tree.Index(doc)
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.Build(g, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return l, Route(g, l)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestJoinDrop(t *testing.T) {
	cfg := layout.Config{TrunkLength: 20, MaxDrop: 24}.WithDefaults()

	tests := []struct {
		name  string
		avail float64
		want  float64
	}{
		{"far below: stubs capped", 100, 24},
		{"target fits", 30, 10},
		{"exactly trunk", 20, 0},
		{"too close", 5, 0},
		{"union above", -10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinDrop(tt.avail, cfg); !near(got, tt.want) {
				t.Errorf("JoinDrop(%v) = %v, want %v", tt.avail, got, tt.want)
			}
		})
	}
}

func TestRoute_Couple(t *testing.T) {
	l, paths := routeFamily(t, layout.Config{}, []string{"A", "B", "C"}, [2]string{"A", "C"}, [2]string{"B", "C"})

	if len(paths) != 2 {
		t.Fatalf("got %d paths, want couple + child", len(paths))
	}
	couple, child := paths[0], paths[1]
	if couple.Kind != KindCouple || child.Kind != KindChild {
		t.Fatalf("kinds = %s, %s", couple.Kind, child.Kind)
	}
	if len(couple.Segments) != 4 {
		t.Fatalf("couple segments = %d, want 2 stubs + join + trunk", len(couple.Segments))
	}

	a, _ := l.Node("A")
	b, _ := l.Node("B")
	u, _ := l.Node(tree.UnionPrefix + "A+B")
	bottom := a.Y + l.Config.CardHeight/2

	for i, parent := range []layout.Node{a, b} {
		stub := couple.Segments[i]
		if !near(stub[0].X, parent.X) || !near(stub[0].Y, bottom) {
			t.Errorf("stub %d starts at %+v, want card bottom edge", i, stub[0])
		}
		if drop := stub[1].Y - stub[0].Y; drop > l.Config.MaxDrop+1e-9 {
			t.Errorf("stub %d drops %v > MaxDrop", i, drop)
		}
	}
	join := couple.Segments[2]
	if !near(join[0].X, a.X) || !near(join[1].X, b.X) {
		t.Errorf("join spans %v..%v, want %v..%v", join[0].X, join[1].X, a.X, b.X)
	}
	trunk := couple.Segments[3]
	if !near(trunk[0].X, u.X) || !near(trunk[1].Y, u.Y) {
		t.Errorf("trunk = %+v, want to union at %v,%v", trunk, u.X, u.Y)
	}

	c, _ := l.Node("C")
	seg := child.Segments[0]
	end := seg[len(seg)-1]
	if !near(end.X, c.X) || !near(end.Y, c.Y-l.Config.CardHeight/2) {
		t.Errorf("child path ends at %+v, want top edge of C", end)
	}
	if !strings.HasPrefix(couple.D, "M") || strings.Count(couple.D, "M") != 4 {
		t.Errorf("couple D = %q", couple.D)
	}
}

func TestRoute_SingleParent(t *testing.T) {
	l, paths := routeFamily(t, layout.Config{}, []string{"P", "K1", "K2"}, [2]string{"P", "K1"}, [2]string{"P", "K2"})

	var parents, children int
	for _, p := range paths {
		switch p.Kind {
		case KindParent:
			parents++
			start := p.Segments[0][0]
			n, _ := l.Node("P")
			if !near(start.Y, n.Y+l.Config.CardHeight/2) {
				t.Errorf("single parent path starts at y=%v, want bottom edge", start.Y)
			}
		case KindChild:
			children++
		case KindCouple:
			t.Errorf("unexpected couple connector for a single parent")
		}
	}
	if parents != 1 || children != 2 {
		t.Errorf("parents=%d children=%d", parents, children)
	}
}

func TestRoute_Curved(t *testing.T) {
	_, paths := routeFamily(t, layout.Config{Curved: true}, []string{"A", "B", "C", "D"},
		[2]string{"A", "C"}, [2]string{"B", "C"}, [2]string{"A", "D"}, [2]string{"B", "D"})
	for _, p := range paths {
		if p.Kind == KindChild && !strings.Contains(p.D, "C") {
			t.Errorf("curved child path D = %q", p.D)
		}
	}
}

func TestRoute_NoRelationships(t *testing.T) {
	if _, paths := routeFamily(t, layout.Config{}, []string{"solo"}); len(paths) != 0 {
		t.Errorf("got %d paths for an isolated person", len(paths))
	}
}

func TestConnector_Degenerate(t *testing.T) {
	cfg := layout.DefaultConfig()
	if got := Connector(nil, layout.Point{}, cfg); got != nil {
		t.Errorf("Connector(nil) = %v", got)
	}
	if got := Connector([]layout.Point{{X: 1, Y: 1}}, layout.Point{X: 1, Y: 50}, cfg); got != nil {
		t.Errorf("Connector(one parent) = %v", got)
	}
}

func TestElbow(t *testing.T) {
	straight := elbow(layout.Point{X: 10, Y: 0}, layout.Point{X: 10, Y: 40})
	if len(straight) != 2 {
		t.Errorf("aligned elbow has %d points, want 2", len(straight))
	}
	bent := elbow(layout.Point{X: 0, Y: 0}, layout.Point{X: 30, Y: 40})
	if len(bent) != 4 || bent[1].Y != 20 || bent[2].X != 30 {
		t.Errorf("elbow = %+v", bent)
	}
}
