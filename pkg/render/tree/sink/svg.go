package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/lineagemap/pkg/errors"
	"github.com/matzehuels/lineagemap/pkg/graph"
	"github.com/matzehuels/lineagemap/pkg/render"
	"github.com/matzehuels/lineagemap/pkg/render/tree/layout"
	"github.com/matzehuels/lineagemap/pkg/render/tree/route"
	"github.com/matzehuels/lineagemap/pkg/render/tree/styles"
	"github.com/matzehuels/lineagemap/pkg/tree"
)

const panZoomCSS = `
    svg { cursor: grab; }
    svg.dragging { cursor: grabbing; }
    .card { transition: opacity 0.2s ease; }
    .card:hover rect { stroke-width: 2; }`

// The script keeps the same "translate(tx ty) scale(s)" form as
// render.Viewport.Transform and clamps the scale to the same limits.
const panZoomJS = `
    (function() {
      const vp = document.getElementById('viewport');
      const svg = vp.ownerSVGElement;
      const minScale = %g, maxScale = %g;
      let s = 1, tx = 0, ty = 0, drag = null;
      const m = /translate\(([-\d.]+) ([-\d.]+)\) scale\(([-\d.]+)\)/.exec(vp.getAttribute('transform') || '');
      if (m) { tx = +m[1]; ty = +m[2]; s = +m[3]; }
      function apply() { vp.setAttribute('transform', 'translate(' + tx.toFixed(2) + ' ' + ty.toFixed(2) + ') scale(' + s.toFixed(4) + ')'); }
      function point(e) {
        const p = svg.createSVGPoint(); p.x = e.clientX; p.y = e.clientY;
        return p.matrixTransform(svg.getScreenCTM().inverse());
      }
      svg.addEventListener('wheel', e => {
        e.preventDefault();
        const p = point(e);
        const next = Math.min(maxScale, Math.max(minScale, s * (e.deltaY < 0 ? 1.1 : 1 / 1.1)));
        tx = p.x - (p.x - tx) * next / s; ty = p.y - (p.y - ty) * next / s; s = next;
        apply();
      }, { passive: false });
      svg.addEventListener('pointerdown', e => { drag = point(e); svg.classList.add('dragging'); });
      svg.addEventListener('pointermove', e => {
        if (!drag) return;
        const p = point(e); tx += p.x - drag.x; ty += p.y - drag.y; drag = p; apply();
      });
      ['pointerup', 'pointerleave'].forEach(t => svg.addEventListener(t, () => { drag = null; svg.classList.remove('dragging'); }));
    })();`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	graph    *tree.Graph
	style    styles.Style
	unions   bool
	panZoom  bool
	viewport render.Viewport
}

// WithGraph attaches the indexed family so cards show lifespans, photos and
// places. Without it cards carry only the layout label.
func WithGraph(g *tree.Graph) SVGOption { return func(r *svgRenderer) { r.graph = g } }

// WithStyle selects the visual style. Defaults to [styles.Simple].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithUnions draws a dot at every union point.
func WithUnions() SVGOption { return func(r *svgRenderer) { r.unions = true } }

// WithPanZoom embeds wheel zoom and drag pan on the root group.
func WithPanZoom() SVGOption { return func(r *svgRenderer) { r.panZoom = true } }

// WithViewport sets the initial transform of the root group.
func WithViewport(v render.Viewport) SVGOption { return func(r *svgRenderer) { r.viewport = v } }

// RenderSVG draws a finished layout and its routed paths. Paths go below
// union dots, which go below cards. Output is deterministic for equal input.
func RenderSVG(l *layout.Layout, paths []route.Path, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	return r.render(Export(l, paths, WithJSONGraph(r.graph)))
}

// RenderLayout draws a serialized tree layout, such as one read back from
// the cache. Person details come from the layout nodes themselves.
func RenderLayout(l graph.Layout, opts ...SVGOption) ([]byte, error) {
	if !l.IsTree() {
		return nil, fmt.Errorf("cannot draw %q layout as a tree", l.VizType)
	}
	if len(l.Nodes) > 0 && (l.Card.Width <= 0 || l.Card.Height <= 0) {
		return nil, fmt.Errorf("tree layout is missing card dimensions")
	}
	r := newSVGRenderer(opts...)
	return r.render(l), nil
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, viewport: render.NewViewport()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r svgRenderer) render(l graph.Layout) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" class="family-tree style-%s">`+"\n",
		l.Bounds.Width, l.Bounds.Height, l.Bounds.Width, l.Bounds.Height, r.style.Name())
	r.style.RenderDefs(&buf)

	fmt.Fprintf(&buf, "  <g id=\"viewport\" transform=\"%s\">\n", r.viewport.Transform())
	for _, p := range l.Paths {
		r.style.RenderPath(&buf, styles.Path{Kind: p.Kind, Union: p.Union, Node: p.Node, D: p.D})
	}
	if r.unions {
		for _, n := range l.Nodes {
			if n.IsUnion() {
				r.style.RenderUnion(&buf, styles.Union{ID: n.ID, X: n.X, Y: n.Y})
			}
		}
	}
	for _, c := range buildCards(l) {
		r.style.RenderCard(&buf, c)
	}
	buf.WriteString("  </g>\n")

	if r.panZoom {
		renderPanZoom(&buf, r.viewport)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderPanZoom(buf *bytes.Buffer, v render.Viewport) {
	lo, hi := v.MinScale, v.MaxScale
	if lo <= 0 {
		lo = render.DefaultMinScale
	}
	if hi <= 0 {
		hi = render.DefaultMaxScale
	}
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", panZoomCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", fmt.Sprintf(panZoomJS, lo, hi))
}

// buildCards converts positioned persons to style cards, in layout order.
func buildCards(l graph.Layout) []styles.Card {
	w, h := l.Card.Width, l.Card.Height
	cards := make([]styles.Card, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.IsUnion() {
			continue
		}
		c := styles.Card{
			ID:    n.ID,
			Name:  n.DisplayLabel(),
			Meta:  n.Lifespan,
			Place: n.Place,
			X:     n.X - w/2, Y: n.Y - h/2,
			W: w, H: h,
			CX: n.X, CY: n.Y,
			Stub: n.Stub,
		}
		if errors.ValidatePhotoURL(n.Photo) == nil {
			c.Photo = n.Photo
		}
		cards = append(cards, c)
	}
	return cards
}
