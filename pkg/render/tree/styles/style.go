package styles

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Style defines the visual appearance of a family tree.
// Implementations control how cards, connectors and union points are drawn.
type Style interface {
	// Name is the identifier used in options and the API.
	Name() string
	// RenderDefs writes SVG <defs> content (clip paths, filters, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderCard writes the SVG for one person card, text included.
	RenderCard(buf *bytes.Buffer, c Card)
	// RenderPath writes the SVG for one routed connector.
	RenderPath(buf *bytes.Buffer, p Path)
	// RenderUnion writes the SVG for a union point.
	RenderUnion(buf *bytes.Buffer, u Union)
}

// Card contains all data needed to render a single person.
type Card struct {
	ID         string  // Person identifier
	Name       string  // Display name
	Meta       string  // Secondary line, e.g. lifespan
	Place      string  // Location label, used as tooltip
	Photo      string  // Optional photo URL
	X, Y, W, H float64 // Top-left corner and size
	CX, CY     float64 // Center
	Stub       bool    // Placeholder for an unknown id
}

// Path is a routed connector ready for drawing.
type Path struct {
	Kind  string // "couple", "parent" or "child"
	Union string
	Node  string
	D     string // SVG path data
}

// Union is a union point.
type Union struct {
	ID   string
	X, Y float64
}

var registry = map[string]Style{
	Simple{}.Name(): Simple{},
	Sepia{}.Name():  Sepia{},
}

// Lookup returns the style registered under name (case-insensitive).
func Lookup(name string) (Style, error) {
	if s, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown style %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the registered style names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
