// Package tree turns a flat family document into the union graph the layout
// engine works on.
//
// Every distinct set of co-parents becomes one union node, keyed by the
// sorted parent IDs joined with "+". Parents point to the union and the union
// points to each child, so two siblings with the same parents share a single
// union:
//
//	g, err := tree.Index(doc)
//	if errors.IsStructural(err) {
//	    // self-parent or ancestry cycle: nothing can be drawn
//	}
//	for _, u := range g.Unions() {
//	    fmt.Println(u.Key, u.Parents, u.Children)
//	}
//
// Index is lenient about data and strict about structure. An id that does
// not resolve to a person becomes a stub person labeled with the raw id and a
// warning; a person listed as their own parent, or any ancestry cycle, fails
// the whole pass with an error naming the ids involved.
package tree
