package styles

import (
	"bytes"
	"fmt"
)

// Simple draws flat white cards with thin grey connectors.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <filter id="card-shadow" x="-10%" y="-10%" width="120%" height="140%"><feDropShadow dx="0" dy="1" stdDeviation="1.5" flood-opacity="0.18"/></filter>` + "\n")
	buf.WriteString("  </defs>\n")
}

func (Simple) RenderCard(buf *bytes.Buffer, c Card) {
	renderCard(buf, c, cardColors{
		fill: "#ffffff", stroke: "#c7ccd6", stubStroke: "#e0a040",
		name: "#1f2430", meta: "#6b7280", filter: "card-shadow",
	})
}

func (Simple) RenderPath(buf *bytes.Buffer, p Path) {
	fmt.Fprintf(buf, `    <path class="link link-%s" d="%s" fill="none" stroke="#9aa3b2" stroke-width="1.5"/>`+"\n", p.Kind, p.D)
}

func (Simple) RenderUnion(buf *bytes.Buffer, u Union) {
	fmt.Fprintf(buf, `    <circle class="union" id="%s" cx="%.1f" cy="%.1f" r="3" fill="#9aa3b2"/>`+"\n", EscapeXML(u.ID), u.X, u.Y)
}

type cardColors struct {
	fill, stroke, stubStroke string
	name, meta               string
	filter                   string
}

// renderCard is shared by the built-in styles; only colors differ.
func renderCard(buf *bytes.Buffer, c Card, col cardColors) {
	stroke, dash := col.stroke, ""
	if c.Stub {
		stroke, dash = col.stubStroke, ` stroke-dasharray="4 3"`
	}
	id := EscapeXML(c.ID)

	fmt.Fprintf(buf, `    <g class="card" id="card-%s" data-person="%s">`+"\n", id, id)
	if c.Place != "" {
		fmt.Fprintf(buf, "      <title>%s</title>\n", EscapeXML(c.Place))
	}
	fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill="%s" stroke="%s"%s filter="url(#%s)"/>`+"\n",
		c.X, c.Y, c.W, c.H, col.fill, stroke, dash, col.filter)

	if c.Photo != "" {
		size := photoSize(c)
		px, py := c.X+photoInset, c.Y+photoInset
		fmt.Fprintf(buf, `      <clipPath id="clip-%s"><circle cx="%.1f" cy="%.1f" r="%.1f"/></clipPath>`+"\n", id, px+size/2, py+size/2, size/2)
		fmt.Fprintf(buf, `      <image href="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" clip-path="url(#clip-%s)" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			EscapeXML(c.Photo), px, py, size, size, id)
	}

	x, w := textLeft(c), textWidth(c)
	nameY := c.CY + 5
	if c.Meta != "" {
		nameY = c.CY - 2
	}
	fmt.Fprintf(buf, `      <text class="card-name" x="%.1f" y="%.1f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" font-weight="600" fill="%s">%s</text>`+"\n",
		x, nameY, nameFontSize, col.name, EscapeXML(TruncateLabel(c.Name, w, nameFontSize)))
	if c.Meta != "" {
		fmt.Fprintf(buf, `      <text class="card-meta" x="%.1f" y="%.1f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
			x, c.CY+14, metaFontSize, col.meta, EscapeXML(TruncateLabel(c.Meta, w, metaFontSize)))
	}
	buf.WriteString("    </g>\n")
}
