package render

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestViewport_ZoomKeepsPointFixed(t *testing.T) {
	v := NewViewport().Pan(30, -10)
	lx, ly := v.ToLayout(200, 150)

	z := v.Zoom(1.5, 200, 150)
	sx, sy := z.ToScreen(lx, ly)
	if !near(sx, 200) || !near(sy, 150) {
		t.Errorf("zoom moved anchor to (%v, %v)", sx, sy)
	}
	if !near(z.Scale, 1.5) {
		t.Errorf("Scale = %v", z.Scale)
	}
	if v.Scale != 1 {
		t.Error("Zoom modified the receiver")
	}
}

func TestViewport_ZoomClamped(t *testing.T) {
	v := NewViewport()
	if got := v.Zoom(100, 0, 0).Scale; got != DefaultMaxScale {
		t.Errorf("max clamp = %v", got)
	}
	if got := v.Zoom(0.001, 0, 0).Scale; got != DefaultMinScale {
		t.Errorf("min clamp = %v", got)
	}
	if got := v.Zoom(-1, 0, 0); got != v {
		t.Errorf("negative factor changed viewport: %+v", got)
	}
}

func TestViewport_RoundTrip(t *testing.T) {
	v := NewViewport().Zoom(2, 10, 10).Pan(5, 7)
	x, y := v.ToScreen(123, 456)
	lx, ly := v.ToLayout(x, y)
	if !near(lx, 123) || !near(ly, 456) {
		t.Errorf("round trip = (%v, %v)", lx, ly)
	}
}

func TestFit(t *testing.T) {
	v := Fit(2000, 500, 1000, 800, 0)
	if !near(v.Scale, 0.5) {
		t.Errorf("Scale = %v, want 0.5", v.Scale)
	}
	if !near(v.TX, 0) || !near(v.TY, (800-250)/2.0) {
		t.Errorf("offset = (%v, %v)", v.TX, v.TY)
	}
	if small := Fit(100, 100, 1000, 1000, 10); small.Scale != 1 {
		t.Errorf("small content zoomed in: %v", small.Scale)
	}
	if empty := Fit(0, 0, 100, 100, 0); empty != NewViewport() {
		t.Errorf("empty = %+v", empty)
	}
}

func TestViewport_Transform(t *testing.T) {
	if got := NewViewport().Pan(1.5, 2).Transform(); got != "translate(1.50 2.00) scale(1.0000)" {
		t.Errorf("Transform() = %q", got)
	}
}
