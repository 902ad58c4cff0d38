package sink

import (
	"bytes"
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gogpu/gg"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/observability"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// MaxPNGSide caps either image dimension in pixels.
const MaxPNGSide = 8192

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale  float64
	margin float64
	step   float64
	colors map[string]string
}

// WithScale sets pixels per design unit (default 0.25).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGMargin pads the image by m design units.
func WithPNGMargin(m float64) PNGOption { return func(r *pngRenderer) { r.margin = m } }

// WithArcStep sets the angular step (radians) used to flatten arcs.
func WithArcStep(step float64) PNGOption { return func(r *pngRenderer) { r.step = step } }

// WithPNGLayerColor overrides the fill colour of one layer. color is a
// "#rrggbb" string.
func WithPNGLayerColor(layer, color string) PNGOption {
	return func(r *pngRenderer) { r.colors[layer] = color }
}

// RenderPNG rasterises the canvas on a white background. Arcs are flattened
// with [shape.Primitive.Flatten].
func RenderPNG(c *Canvas, opts ...PNGOption) (data []byte, err error) {
	start := time.Now()
	r := pngRenderer{scale: 0.25, margin: 10, step: shape.DefaultStep, colors: make(map[string]string)}
	for _, opt := range opts {
		opt(&r)
	}
	defer func() {
		observability.Render().OnRenderComplete(context.Background(), "png", len(data), time.Since(start), err)
	}()
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeParameter, "png scale must be positive, got %g", r.scale)
	}

	b := c.Bounds()
	if b.Empty() {
		b = shape.Rect{}
	}
	w := int(math.Ceil((b.Width() + 2*r.margin) * r.scale))
	h := int(math.Ceil((b.Height() + 2*r.margin) * r.scale))
	w, h = max(w, 1), max(h, 1)
	if w > MaxPNGSide || h > MaxPNGSide {
		return nil, errors.New(errors.ErrCodeParameter, "png of %dx%d px exceeds %d px, lower the scale", w, h, MaxPNGSide)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.White)
	dc.SetFillRule(gg.FillRuleEvenOdd)

	// Map design space (y up) onto the pixel grid (y down).
	ox, oy := b.Min.X-r.margin, b.Max.Y+r.margin
	px := func(x, y float64) (float64, float64) {
		return (x - ox) * r.scale, (oy - y) * r.scale
	}

	items := c.Items()
	for i, layer := range c.Layers() {
		hex := DefaultPalette[i%len(DefaultPalette)]
		if col, ok := r.colors[layer]; ok {
			hex = col
		}
		red, green, blue, err := parseHex(hex)
		if err != nil {
			return nil, err
		}
		dc.SetRGB(red, green, blue)
		for _, it := range items {
			if it.Layer != layer {
				continue
			}
			pts := it.Primitive.Flatten(r.step)
			dc.MoveTo(px(pts[0].X, pts[0].Y))
			for _, p := range pts[1:] {
				dc.LineTo(px(p.X, p.Y))
			}
			dc.ClosePath()
			if err := dc.Fill(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "fill %s", it.Handle)
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func parseHex(s string) (r, g, b float64, err error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, errors.New(errors.ErrCodeParameter, "colour %q is not #rrggbb", s)
	}
	v, perr := strconv.ParseUint(s[1:], 16, 32)
	if perr != nil {
		return 0, 0, 0, errors.Wrap(errors.ErrCodeParameter, perr, "colour %q", s)
	}
	return float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255, nil
}
