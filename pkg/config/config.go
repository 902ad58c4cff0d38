// Package config loads TOML design files.
//
// A design file names the design and lists its components as arrays of
// tables, one array per component kind:
//
//	name = "chip-a"
//
//	[[outline]]
//	name = "border"
//	layer = "base"
//	width = 5000
//	height = 5000
//	thickness = 200
//
//	[[resonator]]
//	name = "res1"
//	layer = "base"
//	max_width = 2000
//	max_height = 800
//	anchor = [1000, 0]
//	length = 3240
//	gap = 7
//	width = 4
//	arc_radius = 92.5
//	coupling_length = 100
//	coupling_spacer = 200
//	end = "straight"
//	mirror = [90]
//
// Components are added to the design kind by kind (outlines, transmission
// lines, resonators, resonator arrays), each kind in file order. A
// [[resonator_array]] expands into one resonator per entry of lengths, named
// "<name> <n>" and spaced along x.
//
// Every validation failure carries [errors.ErrCodeInvalidConfig]; a missing
// file carries [errors.ErrCodeFileNotFound].
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cpwdesign/pkg/component"
	"github.com/matzehuels/cpwdesign/pkg/design"
	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/section"
)

// DefaultName is used when the file has no name key.
const DefaultName = "design"

// File is a parsed design file.
type File struct {
	Name              string                 `toml:"name"`
	Outlines          []OutlineSpec          `toml:"outline"`
	TransmissionLines []TransmissionLineSpec `toml:"transmission_line"`
	Resonators        []ResonatorSpec        `toml:"resonator"`
	ResonatorArrays   []ResonatorArraySpec   `toml:"resonator_array"`

	path string
}

// Placement holds the keys shared by every component table.
type Placement struct {
	Name   string    `toml:"name"`
	Layer  string    `toml:"layer"`
	Anchor []float64 `toml:"anchor"`
	Mirror []float64 `toml:"mirror"`
}

type OutlineSpec struct {
	Placement
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Thickness float64 `toml:"thickness"`
}

type TransmissionLineSpec struct {
	Placement
	section.CPW
	MaxWidth     float64          `toml:"max_width"`
	MaxHeight    float64          `toml:"max_height"`
	Start        []float64        `toml:"start"`
	End          []float64        `toml:"end"`
	PadSize      []float64        `toml:"pad_size"`
	PadThickness float64          `toml:"pad_thickness"`
	ArcRadius    float64          `toml:"arc_radius"`
	CenterOffset float64          `toml:"center_offset"`
	Path         []component.Step `toml:"path"`
}

// ResonatorGeometry holds the keys a resonator and a resonator array share.
type ResonatorGeometry struct {
	section.CPW
	MaxWidth       float64 `toml:"max_width"`
	MaxHeight      float64 `toml:"max_height"`
	ArcRadius      float64 `toml:"arc_radius"`
	CouplingLength float64 `toml:"coupling_length"`
	CouplingSpacer float64 `toml:"coupling_spacer"`
	End            string  `toml:"end"`
}

type ResonatorSpec struct {
	Placement
	ResonatorGeometry
	Length float64 `toml:"length"`
}

type ResonatorArraySpec struct {
	Placement
	ResonatorGeometry
	Lengths []float64 `toml:"lengths"`
	Spacing float64   `toml:"spacing"`
}

// Load reads and parses the design file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "design file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	f.path = path
	return f, nil
}

// Parse decodes and validates a design file. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode design file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if f.Name == "" {
		f.Name = DefaultName
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Path returns the file the design was loaded from, if any.
func (f *File) Path() string { return f.path }

// Count returns the number of components the file expands to.
func (f *File) Count() int {
	n := len(f.Outlines) + len(f.TransmissionLines) + len(f.Resonators)
	for _, a := range f.ResonatorArrays {
		n += len(a.Lengths)
	}
	return n
}

// Validate checks the file structure. Geometry is validated when the
// components are built.
func (f *File) Validate() error {
	if f.Count() == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "design %q has no components", f.Name)
	}
	for _, a := range f.ResonatorArrays {
		if len(a.Lengths) == 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "resonator array %q has no lengths", a.Name)
		}
		if err := errors.ValidateFinite("spacing", a.Spacing); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "resonator array %q", a.Name)
		}
	}
	return nil
}

// Design builds the components described by f into a new design. A nil
// logger discards output. Components come back ungenerated.
func (f *File) Design(logger *log.Logger) (*design.Design, error) {
	d := design.New(f.Name, logger)
	add := func(c component.Generator, mirror []float64) error {
		if logger != nil {
			c.SetLogger(logger.With("component", c.Name()))
		}
		for _, m := range mirror {
			c.Mirror(m)
		}
		if err := d.Add(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "add %q", c.Name())
		}
		return nil
	}

	for _, o := range f.Outlines {
		c, err := o.build()
		if err != nil {
			return nil, invalid("outline", o.Name, err)
		}
		if err := add(c, o.Mirror); err != nil {
			return nil, err
		}
	}
	for _, t := range f.TransmissionLines {
		c, err := t.build()
		if err != nil {
			return nil, invalid("transmission line", t.Name, err)
		}
		if err := add(c, t.Mirror); err != nil {
			return nil, err
		}
	}
	for _, r := range f.Resonators {
		anchor, err := point("anchor", r.Anchor, true)
		if err != nil {
			return nil, invalid("resonator", r.Name, err)
		}
		c, err := r.ResonatorGeometry.build(r.Name, r.Layer, anchor, r.Length)
		if err != nil {
			return nil, invalid("resonator", r.Name, err)
		}
		if err := add(c, r.Mirror); err != nil {
			return nil, err
		}
	}
	for _, a := range f.ResonatorArrays {
		anchor, err := point("anchor", a.Anchor, true)
		if err != nil {
			return nil, invalid("resonator array", a.Name, err)
		}
		for i, l := range a.Lengths {
			name := fmt.Sprintf("%s %d", a.Name, i+1)
			at := anchor.Add(geom.Pt(float64(i)*a.Spacing, 0))
			c, err := a.ResonatorGeometry.build(name, a.Layer, at, l)
			if err != nil {
				return nil, invalid("resonator", name, err)
			}
			if err := add(c, a.Mirror); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

func (o OutlineSpec) build() (*component.SampleOutline, error) {
	anchor, err := point("anchor", o.Anchor, true)
	if err != nil {
		return nil, err
	}
	return component.NewSampleOutline(component.SampleOutlineConfig{
		Base:      component.Base{Name: o.Name, Layer: o.Layer, MaxWidth: o.Width, MaxHeight: o.Height, Anchor: anchor},
		Thickness: o.Thickness,
	})
}

func (t TransmissionLineSpec) build() (*component.TransmissionLine, error) {
	anchor, err := point("anchor", t.Anchor, true)
	if err != nil {
		return nil, err
	}
	start, err := point("start", t.Start, false)
	if err != nil {
		return nil, err
	}
	end, err := point("end", t.End, false)
	if err != nil {
		return nil, err
	}
	if len(t.PadSize) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "pad_size needs [width, height], got %v", t.PadSize)
	}
	return component.NewTransmissionLine(component.TransmissionLineConfig{
		Base:         component.Base{Name: t.Name, Layer: t.Layer, MaxWidth: t.MaxWidth, MaxHeight: t.MaxHeight, Anchor: anchor},
		Start:        start,
		End:          end,
		PadSize:      [2]float64{t.PadSize[0], t.PadSize[1]},
		PadThickness: t.PadThickness,
		CPW:          t.CPW,
		ArcRadius:    t.ArcRadius,
		CenterOffset: t.CenterOffset,
		Path:         t.Path,
	})
}

func (g ResonatorGeometry) build(name, layer string, anchor geom.Point, length float64) (*component.Resonator, error) {
	return component.NewResonator(component.ResonatorConfig{
		Base:           component.Base{Name: name, Layer: layer, MaxWidth: g.MaxWidth, MaxHeight: g.MaxHeight, Anchor: anchor},
		Length:         length,
		CPW:            g.CPW,
		ArcRadius:      g.ArcRadius,
		CouplingLength: g.CouplingLength,
		CouplingSpacer: g.CouplingSpacer,
		End:            component.EndStyle(g.End),
	})
}

// point converts a [x, y] pair. An absent optional point is the origin.
func point(key string, v []float64, optional bool) (geom.Point, error) {
	if len(v) == 0 && optional {
		return geom.Point{}, nil
	}
	if len(v) != 2 {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidConfig, "%s needs [x, y], got %v", key, v)
	}
	return geom.Pt(v[0], v[1]), nil
}

func invalid(kind, name string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s %q", kind, name)
}
