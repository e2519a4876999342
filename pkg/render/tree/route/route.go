// Package route derives connector geometry from a finished layout.
//
// Three kinds of path are produced per union:
//
//	 ┌────┐   ┌────┐
//	 │ p1 │   │ p2 │
//	 └─┬──┘   └──┬─┘     stubs drop from each parent's bottom edge
//	   └────┬────┘       join line between the outermost parents
//	        │            trunk down to the union point
//	        •
//	   ┌────┴────┐       one elbow (or curve) per child
//	 ┌─┴──┐   ┌──┴─┐
//
// A union with a single parent gets one elbow from that parent instead of
// stubs, join and trunk. Every path starts or ends on a card edge, never at
// a card center.
package route

import (
	"fmt"
	"strings"

	"github.com/matzehuels/lineagemap/pkg/render/tree/layout"
	"github.com/matzehuels/lineagemap/pkg/tree"
)

// Kind identifies what a path connects.
type Kind string

const (
	KindCouple Kind = "couple" // parents → union, with stubs, join and trunk
	KindParent Kind = "parent" // single parent → union
	KindChild  Kind = "child"  // union → child
)

// Path is a routed connector. Segments are polylines in layout units; D is
// the equivalent SVG path data.
type Path struct {
	Kind     Kind
	Union    string // union node ID
	Node     string // child or single parent ID; empty for couples
	Segments [][]layout.Point
	D        string
}

// Route computes every connector of l. Unions are visited in graph order and
// children in their union's order, so the output is deterministic.
func Route(g *tree.Graph, l *layout.Layout) []Path {
	var paths []Path
	for _, u := range g.Unions() {
		un, ok := l.Node(u.ID)
		if !ok {
			continue
		}
		at := layout.Point{X: un.X, Y: un.Y}

		var bottoms []layout.Point
		for _, p := range u.Parents {
			if pt, ok := l.BottomAnchor(p); ok {
				bottoms = append(bottoms, pt)
			}
		}
		switch len(bottoms) {
		case 0:
		case 1:
			paths = append(paths, newPath(KindParent, u.ID, u.Parents[0], elbow(bottoms[0], at)))
		default:
			paths = append(paths, newPath(KindCouple, u.ID, "", Connector(bottoms, at, l.Config)...))
		}

		for _, c := range u.Children {
			top, ok := l.TopAnchor(c)
			if !ok {
				continue
			}
			seg := elbow(at, top)
			if l.Config.Curved {
				paths = append(paths, Path{Kind: KindChild, Union: u.ID, Node: c, Segments: [][]layout.Point{seg}, D: curve(at, top)})
				continue
			}
			paths = append(paths, newPath(KindChild, u.ID, c, seg))
		}
	}
	return paths
}

// JoinDrop returns how far below the lowest parent's bottom edge the join
// line sits. The trunk aims for cfg.TrunkLength; the stubs never exceed
// cfg.MaxDrop and never go negative.
func JoinDrop(avail float64, cfg layout.Config) float64 {
	return min(max(avail-cfg.TrunkLength, 0), cfg.MaxDrop)
}

// Connector returns the stubs, join and trunk joining parents (given as
// bottom-edge anchors) to the union point. It returns nil with fewer than
// two parents.
func Connector(bottoms []layout.Point, union layout.Point, cfg layout.Config) [][]layout.Point {
	if len(bottoms) < 2 {
		return nil
	}
	lowest, left, right := bottoms[0].Y, bottoms[0].X, bottoms[0].X
	for _, b := range bottoms[1:] {
		lowest = max(lowest, b.Y)
		left = min(left, b.X)
		right = max(right, b.X)
	}
	joinY := lowest + JoinDrop(union.Y-lowest, cfg)

	segs := make([][]layout.Point, 0, len(bottoms)+2)
	for _, b := range bottoms {
		segs = append(segs, []layout.Point{b, {X: b.X, Y: joinY}})
	}
	mid := (left + right) / 2
	segs = append(segs,
		[]layout.Point{{X: left, Y: joinY}, {X: right, Y: joinY}},
		[]layout.Point{{X: mid, Y: joinY}, {X: mid, Y: union.Y}},
	)
	return segs
}

// elbow runs vertically from a, horizontally at the halfway height, then
// vertically into b.
func elbow(a, b layout.Point) []layout.Point {
	if a.X == b.X {
		return []layout.Point{a, b}
	}
	midY := (a.Y + b.Y) / 2
	return []layout.Point{a, {X: a.X, Y: midY}, {X: b.X, Y: midY}, b}
}

func curve(a, b layout.Point) string {
	midY := (a.Y + b.Y) / 2
	return fmt.Sprintf("M%s C%s %s %s", pt(a), pt(layout.Point{X: a.X, Y: midY}), pt(layout.Point{X: b.X, Y: midY}), pt(b))
}

func newPath(kind Kind, union, node string, segs ...[]layout.Point) Path {
	return Path{Kind: kind, Union: union, Node: node, Segments: segs, D: pathData(segs)}
}

func pathData(segs [][]layout.Point) string {
	var sb strings.Builder
	for _, seg := range segs {
		for i, p := range seg {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			if i == 0 {
				sb.WriteByte('M')
			} else {
				sb.WriteByte('L')
			}
			sb.WriteString(pt(p))
		}
	}
	return sb.String()
}

func pt(p layout.Point) string {
	return fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
}
