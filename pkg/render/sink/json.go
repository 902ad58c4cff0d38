package sink

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/cpwdesign/pkg/component"
	"github.com/matzehuels/cpwdesign/pkg/design"
	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/observability"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	design *design.Design
}

// WithJSONDesign adds a per-component summary of d: kind, built length and
// the section chain with its docking points.
func WithJSONDesign(d *design.Design) JSONOption { return func(r *jsonRenderer) { r.design = d } }

type jsonOutput struct {
	Design     string          `json:"design,omitempty"`
	Bounds     *jsonBounds     `json:"bounds,omitempty"`
	Layers     []string        `json:"layers"`
	Items      []Item          `json:"items"`
	Components []jsonComponent `json:"components,omitempty"`
}

type jsonBounds struct {
	Min geom.Point `json:"min"`
	Max geom.Point `json:"max"`
}

type jsonComponent struct {
	Name      string        `json:"name"`
	Kind      string        `json:"kind"`
	Layer     string        `json:"layer"`
	Generated bool          `json:"generated"`
	Length    float64       `json:"length"`
	Sections  []jsonSection `json:"sections,omitempty"`
}

type jsonSection struct {
	Name      string       `json:"name"`
	Kind      string       `json:"kind"`
	Anchor    geom.Point   `json:"anchor"`
	Heading   float64      `json:"heading"`
	Length    float64      `json:"length"`
	Endpoints []geom.Point `json:"endpoints,omitempty"`
	Connected []geom.Point `json:"connected,omitempty"`
}

// RenderJSON exports the canvas contents as pretty-printed JSON: every
// primitive with its handle and layer, and optionally the design summary.
func RenderJSON(c *Canvas, opts ...JSONOption) (data []byte, err error) {
	start := time.Now()
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	defer func() {
		observability.Render().OnRenderComplete(context.Background(), "json", len(data), time.Since(start), err)
	}()

	out := jsonOutput{Layers: c.Layers(), Items: c.Items()}
	if out.Layers == nil {
		out.Layers = []string{}
	}
	if b := c.Bounds(); !b.Empty() {
		out.Bounds = &jsonBounds{Min: b.Min, Max: b.Max}
	}
	if r.design != nil {
		out.Design = r.design.Name()
		for _, comp := range r.design.Components() {
			out.Components = append(out.Components, buildComponent(comp))
		}
	}

	data, err = json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal canvas")
	}
	return data, nil
}

func buildComponent(c component.Generator) jsonComponent {
	jc := jsonComponent{
		Name:      c.Name(),
		Kind:      c.Kind(),
		Layer:     c.Layer(),
		Generated: c.Generated(),
		Length:    c.ActualLength(),
	}
	for _, s := range c.Sections() {
		js := jsonSection{Name: s.Name, Kind: string(s.Kind), Anchor: s.Anchor, Heading: s.Heading, Length: s.Length}
		if s.Endpoints != nil {
			js.Endpoints = []geom.Point{s.Endpoints.LeftLower, s.Endpoints.RightUpper}
			js.Connected = s.Endpoints.Connected()
		}
		jc.Sections = append(jc.Sections, js)
	}
	return jc
}
