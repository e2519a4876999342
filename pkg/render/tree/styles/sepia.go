package styles

import (
	"bytes"
	"fmt"
)

// Sepia draws parchment-toned cards with brown connectors.
type Sepia struct{}

func (Sepia) Name() string { return "sepia" }

func (Sepia) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <linearGradient id="parchment" x1="0" y1="0" x2="0" y2="1"><stop offset="0" stop-color="#fbf3e4"/><stop offset="1" stop-color="#f1e2c6"/></linearGradient>` + "\n")
	buf.WriteString(`    <filter id="card-shadow-sepia" x="-10%" y="-10%" width="120%" height="140%"><feDropShadow dx="0" dy="2" stdDeviation="2" flood-color="#5b4327" flood-opacity="0.25"/></filter>` + "\n")
	buf.WriteString("  </defs>\n")
}

func (Sepia) RenderCard(buf *bytes.Buffer, c Card) {
	renderCard(buf, c, cardColors{
		fill: "url(#parchment)", stroke: "#a0825a", stubStroke: "#b5651d",
		name: "#3b2a17", meta: "#7a6448", filter: "card-shadow-sepia",
	})
}

func (Sepia) RenderPath(buf *bytes.Buffer, p Path) {
	fmt.Fprintf(buf, `    <path class="link link-%s" d="%s" fill="none" stroke="#8b6b43" stroke-width="1.8" stroke-linecap="round"/>`+"\n", p.Kind, p.D)
}

func (Sepia) RenderUnion(buf *bytes.Buffer, u Union) {
	fmt.Fprintf(buf, `    <circle class="union" id="%s" cx="%.1f" cy="%.1f" r="3.5" fill="#8b6b43"/>`+"\n", EscapeXML(u.ID), u.X, u.Y)
}
