package layout

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/lineagemap/pkg/tree"
)

const eps = 1e-9

// baseXs assigns every connected person its pre-allocation position: people
// on a rank are packed left to right in document order. Isolated people get
// their slots from [isolatedXs] once everything else is placed.
func baseXs(g *tree.Graph, ranks map[string]int, cfg Config) map[string]float64 {
	base := make(map[string]float64)
	slot := make(map[int]int)
	for _, id := range g.PersonIDs() {
		if g.IsIsolated(id) {
			continue
		}
		r := ranks[id]
		base[id] = cfg.Padding + cfg.CardWidth/2 + float64(slot[r])*(cfg.CardWidth+cfg.SiblingGap)
		slot[r]++
	}
	return base
}

func splitIsolated(g *tree.Graph, persons []string) (connected, isolated []string) {
	for _, id := range persons {
		if g.IsIsolated(id) {
			isolated = append(isolated, id)
		} else {
			connected = append(connected, id)
		}
	}
	return connected, isolated
}

// isolatedXs packs isolated people in document order, starting one
// ClusterGap right of the rightmost connected card on their rank.
func isolatedXs(xs map[string]float64, connected, isolated []string, ranks map[string]int, cfg Config) map[string]float64 {
	next := make(map[int]float64)
	for _, id := range connected {
		r := ranks[id]
		start := xs[id] + cfg.CardWidth + cfg.ClusterGap
		if cur, ok := next[r]; !ok || start > cur {
			next[r] = start
		}
	}

	out := make(map[string]float64, len(isolated))
	for _, id := range isolated {
		r := ranks[id]
		x, ok := next[r]
		if !ok {
			x = cfg.Padding + cfg.CardWidth/2
		}
		out[id] = x
		next[r] = x + cfg.CardWidth + cfg.SiblingGap
	}
	return out
}

// placer runs the top-down pass. Each person is placed once, the first time
// it is reached; each union is laid out once.
type placer struct {
	*arena
	base   map[string]float64
	x      map[string]float64
	placed map[string]bool
	laid   map[string]bool
	spans  map[string]float64
	mid    float64 // horizontal canvas midpoint
}

type rootEntry struct {
	id    string
	union bool
}

func newPlacer(a *arena, base map[string]float64) *placer {
	return &placer{
		arena:  a,
		base:   base,
		x:      make(map[string]float64),
		placed: make(map[string]bool),
		laid:   make(map[string]bool),
		spans:  make(map[string]float64),
	}
}

// rootEntries lists what the top row is built from: each root union, except
// that a root parent with several unions stands in for all of them.
func (p *placer) rootEntries() []rootEntry {
	var entries []rootEntry
	covered := make(map[string]bool)
	for _, u := range p.g.RootUnions() {
		if covered[u.ID] {
			continue
		}
		shared := ""
		for _, parent := range u.Parents {
			if len(p.g.UnionsOf(parent)) > 1 {
				shared = parent
				break
			}
		}
		if shared == "" {
			entries = append(entries, rootEntry{id: u.ID, union: true})
			covered[u.ID] = true
			continue
		}
		entries = append(entries, rootEntry{id: shared})
		for _, id := range p.g.UnionsOf(shared) {
			covered[id] = true
		}
	}
	return entries
}

// place lays out every root entry side by side, centered on the canvas, and
// returns the resulting x of every reached node.
func (p *placer) place() map[string]float64 {
	entries := p.rootEntries()
	var total float64
	for i, e := range entries {
		if i > 0 {
			total += p.cfg.ClusterGap
		}
		total += p.width(e.id)
	}
	p.mid = p.cfg.Padding + total/2

	left := p.cfg.Padding
	for _, e := range entries {
		w := p.width(e.id)
		if e.union {
			if !p.laid[e.id] {
				p.layoutUnion(e.id, left+w/2)
			}
		} else {
			p.placePerson(e.id, left+w/2)
		}
		left += w + p.cfg.ClusterGap
	}
	return maps.Clone(p.x)
}

func (p *placer) set(id string, x float64) {
	p.x[id] = x
	p.placed[id] = true
}

// placePerson centers a person's subtree on cx.
func (p *placer) placePerson(id string, cx float64) {
	if p.placed[id] {
		return
	}
	unions := p.g.UnionsOf(id)
	switch {
	case len(unions) == 0:
		p.set(id, cx)
	case len(unions) == 1 && !p.laid[unions[0]]:
		p.layoutUnion(unions[0], cx)
	default:
		p.set(id, cx)
		var sum float64
		for _, u := range unions {
			sum += p.width(u)
		}
		sum += float64(len(unions)-1) * p.cfg.ClusterGap
		left := cx - sum/2
		for _, u := range unions {
			w := p.width(u)
			if !p.laid[u] {
				p.layoutUnion(u, left+w/2)
			}
			left += w + p.cfg.ClusterGap
		}
	}
	if !p.placed[id] {
		p.set(id, cx)
	}
}

// layoutUnion puts the union at cx, its parents around it and its children
// below it, each child given exactly the width of its own subtree.
func (p *placer) layoutUnion(id string, cx float64) {
	u, ok := p.g.Union(id)
	if !ok {
		return
	}
	p.laid[id] = true
	p.x[id] = cx
	p.placeParents(p.parentOrder(u, cx), cx)

	kids := slices.Clone(u.Children)
	sortByX(kids, func(id string) float64 { return p.base[id] }, nil)

	if len(kids) == 1 {
		p.spans[kids[0]] = p.width(kids[0])
		p.placePerson(kids[0], cx)
		return
	}
	var total float64
	for _, k := range kids {
		total += p.width(k)
	}
	total += float64(max(len(kids)-1, 0)) * p.cfg.SiblingGap
	left := cx - total/2
	for _, k := range kids {
		w := p.width(k)
		p.spans[k] = w
		p.placePerson(k, left+w/2)
		left += w + p.cfg.SiblingGap
	}
}

// parentOrder returns the parents left to right: base order, except that a
// single married-in partner goes to the side away from the canvas center.
func (p *placer) parentOrder(u *tree.Union, cx float64) []string {
	order := slices.Clone(u.Parents)
	sortByX(order, func(id string) float64 { return p.base[id] }, nil)
	if len(order) < 2 {
		return order
	}

	outsider := -1
	for i, id := range order {
		if p.g.IsMarriedIn(id) {
			if outsider >= 0 {
				return order
			}
			outsider = i
		}
	}
	if outsider < 0 {
		return order
	}
	id := order[outsider]
	order = slices.Delete(order, outsider, outsider+1)
	if cx < p.mid {
		return append([]string{id}, order...)
	}
	return append(order, id)
}

// placeParents spaces unplaced parents symmetrically around cx. When some
// parent is already placed, the others line up beside it on the side facing
// cx.
func (p *placer) placeParents(order []string, cx float64) {
	step := p.cfg.spouseStep()
	anchor := slices.IndexFunc(order, func(id string) bool { return p.placed[id] })
	if anchor < 0 {
		offset := float64(len(order)-1) / 2
		for i, id := range order {
			p.set(id, cx+(float64(i)-offset)*step)
		}
		return
	}

	ax := p.x[order[anchor]]
	var free []string
	for _, id := range order {
		if !p.placed[id] {
			free = append(free, id)
		}
	}
	for j, id := range free {
		if cx >= ax {
			p.set(id, ax+float64(j+1)*step)
		} else {
			p.set(id, ax-float64(len(free)-j)*step)
		}
	}
}

// resolveCollisions pushes cards right, rank by rank from the top, until
// neighbors are at least CardWidth+MinGap apart. A pushed card takes its
// block along: the partners it shares a union with and every descendant,
// all shifted by the same delta, so couples stay together and children stay
// centered under their union. Left-to-right order is kept: nodes are swept by
// x with ties broken by base position. It returns the new positions and the
// number of blocks moved.
func resolveCollisions(g *tree.Graph, xs map[string]float64, persons []string, ranks map[string]int, base map[string]float64, cfg Config) (map[string]float64, int) {
	out := maps.Clone(xs)
	byRank := make(map[int][]string)
	for _, id := range persons {
		byRank[ranks[id]] = append(byRank[ranks[id]], id)
	}

	sep := cfg.minSeparation()
	moved := 0
	for _, r := range slices.Sorted(maps.Keys(byRank)) {
		ids := byRank[r]
		sortByX(ids, func(id string) float64 { return out[id] }, func(id string) float64 { return base[id] })
		for i := 1; i < len(ids); i++ {
			limit := out[ids[i-1]] + sep
			if out[ids[i]] >= limit-eps {
				continue
			}
			delta := limit - out[ids[i]]
			for _, id := range block(g, ids[i], r, ranks, out) {
				out[id] += delta
			}
			moved++
		}
	}
	return out, moved
}

// block returns root and everything that moves with it: the unions it
// parents, their children and descendants, and their co-parents. Nodes above
// rank r and nodes on rank r left of root stay put, so ranks already swept
// are not disturbed.
func block(g *tree.Graph, root string, r int, ranks map[string]int, xs map[string]float64) []string {
	rootX := xs[root]
	keep := func(id string) bool {
		if ranks[id] < r {
			return false
		}
		return ranks[id] > r || xs[id] >= rootX
	}

	seen := map[string]bool{root: true}
	ids := []string{root}
	queue := []string{root}
	for len(queue) > 0 {
		person := queue[0]
		queue = queue[1:]
		for _, uid := range g.UnionsOf(person) {
			if seen[uid] {
				continue
			}
			seen[uid] = true
			ids = append(ids, uid)
			u, _ := g.Union(uid)
			for _, id := range slices.Concat(u.Parents, u.Children) {
				if seen[id] || !keep(id) {
					continue
				}
				seen[id] = true
				ids = append(ids, id)
				queue = append(queue, id)
			}
		}
	}
	return ids
}

// centerUnions recomputes every union point from its final parents: the
// midpoint of the outermost two, or the single parent's x.
func centerUnions(g *tree.Graph, xs map[string]float64) map[string]float64 {
	out := maps.Clone(xs)
	for _, u := range g.Unions() {
		if len(u.Parents) == 0 {
			continue
		}
		lo, hi := out[u.Parents[0]], out[u.Parents[0]]
		for _, parent := range u.Parents[1:] {
			lo = min(lo, out[parent])
			hi = max(hi, out[parent])
		}
		out[u.ID] = (lo + hi) / 2
	}
	return out
}

func sortByX(ids []string, x, tie func(string) float64) {
	slices.SortStableFunc(ids, func(a, b string) int {
		if c := cmp.Compare(x(a), x(b)); c != 0 {
			return c
		}
		if tie != nil {
			return cmp.Compare(tie(a), tie(b))
		}
		return 0
	})
}
