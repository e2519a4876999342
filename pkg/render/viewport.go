package render

import "fmt"

const (
	DefaultMinScale = 0.2
	DefaultMaxScale = 4.0
)

// Viewport maps layout coordinates to screen coordinates:
// screen = layout × Scale + (TX, TY). Methods return new values.
type Viewport struct {
	Scale    float64
	TX, TY   float64
	MinScale float64
	MaxScale float64
}

// NewViewport returns the identity transform with default zoom limits.
func NewViewport() Viewport {
	return Viewport{Scale: 1, MinScale: DefaultMinScale, MaxScale: DefaultMaxScale}
}

// Fit returns a viewport that shows a width×height layout centered in a
// viewW×viewH screen with margin on every side. It never zooms in past 1.
func Fit(width, height, viewW, viewH, margin float64) Viewport {
	v := NewViewport()
	if width <= 0 || height <= 0 {
		return v
	}
	availW, availH := max(viewW-2*margin, 1), max(viewH-2*margin, 1)
	v.Scale = v.clamp(min(availW/width, availH/height, 1))
	v.TX = (viewW - width*v.Scale) / 2
	v.TY = (viewH - height*v.Scale) / 2
	return v
}

// Zoom scales by factor around the screen point (x, y), which stays fixed.
func (v Viewport) Zoom(factor, x, y float64) Viewport {
	if factor <= 0 || v.Scale <= 0 {
		return v
	}
	next := v.clamp(v.Scale * factor)
	ratio := next / v.Scale
	v.TX = x - (x-v.TX)*ratio
	v.TY = y - (y-v.TY)*ratio
	v.Scale = next
	return v
}

// Pan moves the view by (dx, dy) screen units.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.TX += dx
	v.TY += dy
	return v
}

// ToScreen maps a layout point to the screen.
func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	return x*v.Scale + v.TX, y*v.Scale + v.TY
}

// ToLayout maps a screen point back to layout coordinates.
func (v Viewport) ToLayout(x, y float64) (float64, float64) {
	if v.Scale == 0 {
		return 0, 0
	}
	return (x - v.TX) / v.Scale, (y - v.TY) / v.Scale
}

// Transform returns the SVG transform attribute value.
func (v Viewport) Transform() string {
	return fmt.Sprintf("translate(%.2f %.2f) scale(%.4f)", v.TX, v.TY, v.Scale)
}

func (v Viewport) clamp(s float64) float64 {
	lo, hi := v.MinScale, v.MaxScale
	if lo <= 0 {
		lo = DefaultMinScale
	}
	if hi <= 0 {
		hi = DefaultMaxScale
	}
	return min(max(s, lo), hi)
}
