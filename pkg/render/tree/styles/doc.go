// Package styles provides the visual styles for family-tree SVG output.
//
// A [Style] draws three things: person cards, connector paths and union
// points. [Simple] is the default; [Sepia] gives an old-document look.
// Use [Lookup] to resolve a style from its name.
package styles
