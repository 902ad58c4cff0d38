// Package design groups components into a mask layout.
//
// A [Design] keeps its components in insertion order, generates them one
// after another and draws the generated ones through a renderer. Layer names
// are registered with a [LayerRegistry] once, before the first draw.
package design

import (
	"context"
	stderrors "errors"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cpwdesign/pkg/component"
	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// LayerRegistry is consulted for layer bookkeeping only.
type LayerRegistry interface {
	AddLayer(name string) error
}

// Design is an ordered set of uniquely named components.
type Design struct {
	name       string
	components []component.Generator
	index      map[string]int
	layers     []string
	logger     *log.Logger
}

// New returns an empty design. A nil logger discards output.
func New(name string, logger *log.Logger) *Design {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Design{name: name, index: make(map[string]int), logger: logger}
}

// Name returns the design name.
func (d *Design) Name() string { return d.name }

// Add appends c. Component names must be unique within the design.
func (d *Design) Add(c component.Generator) error {
	if _, dup := d.index[c.Name()]; dup {
		return errors.New(errors.ErrCodeParameter, "duplicate component name %q", c.Name())
	}
	d.index[c.Name()] = len(d.components)
	d.components = append(d.components, c)
	if !slices.Contains(d.layers, c.Layer()) {
		d.layers = append(d.layers, c.Layer())
	}
	return nil
}

// Components returns the components in insertion order.
func (d *Design) Components() []component.Generator {
	return append([]component.Generator(nil), d.components...)
}

// Component looks up a component by name.
func (d *Design) Component(name string) (component.Generator, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.components[i], true
}

// Layers returns the distinct layer names in first-use order.
func (d *Design) Layers() []string { return append([]string(nil), d.layers...) }

// Generate generates every component in order. A failing component is logged
// and skipped; the failures are returned joined. ctx is checked between
// components.
func (d *Design) Generate(ctx context.Context) error {
	var errs []error
	for _, c := range d.components {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Generate(ctx); err != nil {
			d.logger.Error("component failed", "component", c.Name(), "kind", c.Kind(), "err", err)
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			errs = append(errs, errors.Wrap(code, err, "component %q", c.Name()))
			continue
		}
		d.logger.Debug("component generated", "component", c.Name(), "sections", len(c.Sections()))
	}
	return stderrors.Join(errs...)
}

// RegisterLayers announces every layer to reg.
func (d *Design) RegisterLayers(reg LayerRegistry) error {
	for _, l := range d.layers {
		if err := reg.AddLayer(l); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "add layer %q", l)
		}
	}
	return nil
}

// Draw registers the layers with reg when r implements [LayerRegistry], then
// draws every generated component. Ungenerated components are skipped with a
// warning.
func (d *Design) Draw(ctx context.Context, r component.Renderer) error {
	if reg, ok := r.(LayerRegistry); ok {
		if err := d.RegisterLayers(reg); err != nil {
			return err
		}
	}
	for _, c := range d.components {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !c.Generated() {
			d.logger.Warn("skipping ungenerated component", "component", c.Name())
			continue
		}
		if err := c.Draw(ctx, r); err != nil {
			return err
		}
		d.logger.Debug("drew component", "component", c.Name(), "layer", c.Layer())
	}
	return nil
}

// Bounds returns the bounding box of all generated geometry as drawn,
// mirrors included.
func (d *Design) Bounds() shape.Rect {
	r := shape.EmptyRect()
	for _, c := range d.components {
		if !c.Generated() {
			continue
		}
		for _, p := range c.Views() {
			r = r.Union(p.Bounds())
		}
	}
	return r
}
