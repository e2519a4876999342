package styles

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

const (
	fontCharWidth = 0.55
	nameFontSize  = 14.0
	metaFontSize  = 11.0
	photoInset    = 8.0
)

// TruncateLabel shortens label so it fits width at the given font size,
// ending it with ".." when cut.
func TruncateLabel(label string, width, fontSize float64) string {
	maxChars := max(int(width/(fontSize*fontCharWidth)), 3)
	if utf8.RuneCountInString(label) <= maxChars {
		return label
	}
	runes := []rune(label)
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// photoSize is the side of the square photo slot on a card.
func photoSize(c Card) float64 { return c.H - 2*photoInset }

// textLeft is where card text starts, leaving room for a photo if present.
func textLeft(c Card) float64 {
	if c.Photo == "" {
		return c.X + photoInset*1.5
	}
	return c.X + photoInset*2 + photoSize(c)
}

func textWidth(c Card) float64 { return c.X + c.W - photoInset - textLeft(c) }
