package tree

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/lineagemap/pkg/dag"
	"github.com/matzehuels/lineagemap/pkg/errors"
	"github.com/matzehuels/lineagemap/pkg/family"
)

// Index builds the union graph for doc.
//
// Relationships are scanned in input order. Unresolved ids are synthesized
// as stub persons and reported as warnings. A relationship whose parent and
// child are the same person fails with [errors.ErrCodeSelfParent]; an
// ancestry cycle fails with [errors.ErrCodeCycle] and lists the person ids
// along it.
func Index(doc *family.Document) (*Graph, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidFamily, "no family document")
	}

	g := &Graph{
		dag:      dag.New(),
		people:   make(map[string]family.Person, len(doc.People)),
		byID:     make(map[string]*Union),
		parentOf: make(map[string][]string),
		childOf:  make(map[string]string),
	}

	for _, p := range doc.People {
		if err := g.addPerson(p, false); err != nil {
			g.warnings = append(g.warnings, fmt.Sprintf("person %q: %v", p.ID, err))
		}
	}

	var children []string
	parentsByChild := make(map[string][]string)
	for i, rel := range doc.Relationships {
		parent, child := strings.TrimSpace(rel.ParentID), strings.TrimSpace(rel.ChildID)
		if parent == "" || child == "" {
			g.warnings = append(g.warnings, fmt.Sprintf("relationships[%d]: missing parent or child id", i))
			continue
		}
		if parent == child {
			return nil, errors.New(errors.ErrCodeSelfParent, "person %q is listed as their own parent", parent)
		}
		g.ensurePerson(parent, i)
		g.ensurePerson(child, i)

		if _, seen := parentsByChild[child]; !seen {
			children = append(children, child)
		}
		if !slices.Contains(parentsByChild[child], parent) {
			parentsByChild[child] = append(parentsByChild[child], parent)
		}
	}

	for _, child := range children {
		g.attach(child, parentsByChild[child])
	}

	for _, u := range g.unions {
		if err := g.dag.AddNode(dag.Node{ID: u.ID, Kind: dag.NodeKindUnion}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add union %s", u.Key)
		}
		for _, p := range u.Parents {
			if err := g.dag.AddEdge(dag.Edge{From: p, To: u.ID}); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "edge %s -> %s", p, u.Key)
			}
		}
		for _, c := range u.Children {
			if err := g.dag.AddEdge(dag.Edge{From: u.ID, To: c}); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "edge %s -> %s", u.Key, c)
			}
		}
	}

	if cycle := g.dag.FindCycle(); cycle != nil {
		return nil, errors.New(errors.ErrCodeCycle, "ancestry cycle: %s", strings.Join(personsOnly(cycle), " → "))
	}
	return g, nil
}

func (g *Graph) addPerson(p family.Person, stub bool) error {
	if err := g.dag.AddNode(dag.Node{ID: p.ID, Label: p.DisplayName(), Stub: stub}); err != nil {
		return err
	}
	g.people[p.ID] = p
	return nil
}

func (g *Graph) ensurePerson(id string, rel int) {
	if _, ok := g.people[id]; ok {
		return
	}
	_ = g.addPerson(family.Person{ID: id}, true)
	g.warnings = append(g.warnings, fmt.Sprintf("relationships[%d]: unknown person %q, added as placeholder", rel, id))
}

// attach joins child to the union of its parent set, creating the union on
// first use.
func (g *Graph) attach(child string, parents []string) {
	key := unionKey(parents)
	u, ok := g.byID[UnionPrefix+key]
	if !ok {
		ordered := slices.Clone(parents)
		slices.SortStableFunc(ordered, func(a, b string) int {
			na, _ := g.dag.Node(a)
			nb, _ := g.dag.Node(b)
			return na.Order - nb.Order
		})
		u = &Union{ID: UnionPrefix + key, Key: key, Parents: ordered}
		g.unions = append(g.unions, u)
		g.byID[u.ID] = u
		for _, p := range ordered {
			g.parentOf[p] = append(g.parentOf[p], u.ID)
		}
	}
	u.Children = append(u.Children, child)
	g.childOf[child] = u.ID
}

// keyEscaper keeps union keys injective: ids containing the separator are
// escaped, so the parent "a+b" and the pair {a, b} get different keys.
var keyEscaper = strings.NewReplacer("%", "%25", "+", "%2B")

func unionKey(parents []string) string {
	sorted := slices.Clone(parents)
	slices.Sort(sorted)
	for i, id := range sorted {
		sorted[i] = keyEscaper.Replace(id)
	}
	return strings.Join(sorted, "+")
}

func personsOnly(path []string) []string {
	out := make([]string, 0, len(path))
	for _, id := range path {
		if !strings.HasPrefix(id, UnionPrefix) {
			out = append(out, id)
		}
	}
	return out
}
