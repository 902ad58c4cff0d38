package sink

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"math"
	"time"

	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/observability"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// DefaultPalette colours layers in registration order.
var DefaultPalette = []string{"#1f4e79", "#c55a11", "#548235", "#7030a0", "#bf9000", "#2e75b6"}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	margin     float64
	colors     map[string]string
	stroke     float64
	background string
}

// WithMargin pads the drawing by m design units on every side.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithLayerColor overrides the fill colour of one layer.
func WithLayerColor(layer, color string) SVGOption {
	return func(r *svgRenderer) { r.colors[layer] = color }
}

// WithOutline strokes every primitive with the given width instead of only filling it.
func WithOutline(width float64) SVGOption { return func(r *svgRenderer) { r.stroke = width } }

func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG draws the canvas as SVG. Design coordinates have y pointing up, so
// the image is flipped about the horizontal axis. Bulged edges become exact
// SVG elliptical arc commands.
func RenderSVG(c *Canvas, opts ...SVGOption) []byte {
	start := time.Now()
	r := newSVGRenderer(opts...)

	b := c.Bounds()
	if b.Empty() {
		b = shape.Rect{}
	}
	w, h := b.Width()+2*r.margin, b.Height()+2*r.margin
	origin := geom.Pt(b.Min.X-r.margin, b.Max.Y+r.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.3f %.3f" width="%.0f" height="%.0f">`+"\n",
		w, h, math.Ceil(w), math.Ceil(h))
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	items := c.Items()
	for i, layer := range c.Layers() {
		fill := r.color(layer, i)
		stroke := `stroke="none"`
		if r.stroke > 0 {
			stroke = fmt.Sprintf(`stroke="%s" stroke-width="%.3f"`, fill, r.stroke)
		}
		fmt.Fprintf(&buf, `  <g id="layer-%s" fill="%s" fill-rule="evenodd" %s>`+"\n",
			html.EscapeString(layer), fill, stroke)
		for _, it := range items {
			if it.Layer != layer {
				continue
			}
			fmt.Fprintf(&buf, `    <path id="%s" d="%s"/>`+"\n", it.Handle, pathData(it.Primitive, origin))
		}
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")

	observability.Render().OnRenderComplete(context.Background(), "svg", buf.Len(), time.Since(start), nil)
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{margin: 10, colors: make(map[string]string)}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) color(layer string, i int) string {
	if c, ok := r.colors[layer]; ok {
		return c
	}
	return DefaultPalette[i%len(DefaultPalette)]
}

// pathData writes one closed loop. origin is the design point that maps to
// the top-left corner of the image.
func pathData(p shape.Primitive, origin geom.Point) string {
	var buf bytes.Buffer
	edges := p.Edges()
	x, y := flip(edges[0].From, origin)
	fmt.Fprintf(&buf, "M%.3f %.3f", x, y)
	for _, e := range edges {
		x, y = flip(e.To, origin)
		if !e.IsArc() {
			fmt.Fprintf(&buf, " L%.3f %.3f", x, y)
			continue
		}
		large := 0
		if math.Abs(e.Sweep) > math.Pi {
			large = 1
		}
		// Counterclockwise in design space is counterclockwise on screen
		// too, which is SVG's negative sweep direction.
		sweep := 0
		if e.Sweep < 0 {
			sweep = 1
		}
		fmt.Fprintf(&buf, " A%.3f %.3f 0 %d %d %.3f %.3f", e.Radius, e.Radius, large, sweep, x, y)
	}
	buf.WriteString(" Z")
	return buf.String()
}

func flip(p, origin geom.Point) (float64, float64) {
	return p.X - origin.X, origin.Y - p.Y
}
