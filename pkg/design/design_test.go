package design

import (
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/cpwdesign/pkg/component"
	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/section"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

type layerRecorder struct {
	layers []string
	drawn  map[string]int
	seq    int
}

func newLayerRecorder() *layerRecorder { return &layerRecorder{drawn: make(map[string]int)} }

func (r *layerRecorder) AddLayer(name string) error {
	r.layers = append(r.layers, name)
	return nil
}

func (r *layerRecorder) Draw(_ shape.Primitive, layer string) (component.Handle, error) {
	r.seq++
	r.drawn[layer]++
	return component.Handle(fmt.Sprint(r.seq)), nil
}

func (r *layerRecorder) Clear(component.Handle) error { return nil }

func outline(t *testing.T, name, layer string) *component.SampleOutline {
	t.Helper()
	o, err := component.NewSampleOutline(component.SampleOutlineConfig{
		Base:      component.Base{Name: name, Layer: layer, MaxWidth: 1000, MaxHeight: 1000},
		Thickness: 50,
	})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func resonator(t *testing.T, name string, length float64) *component.Resonator {
	t.Helper()
	r, err := component.NewResonator(component.ResonatorConfig{
		Base:           component.Base{Name: name, Layer: "res", MaxWidth: 2000, MaxHeight: 500, Anchor: geom.Pt(1000, 0)},
		Length:         length,
		CPW:            section.CPW{Gap: 7, Width: 4},
		ArcRadius:      92.5,
		CouplingLength: 100,
		CouplingSpacer: 200,
		End:            component.EndStraight,
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestAddRejectsDuplicateNames(t *testing.T) {
	d := New("chip", nil)
	if err := d.Add(outline(t, "border", "base")); err != nil {
		t.Fatal(err)
	}
	if err := d.Add(outline(t, "border", "other")); !errors.Is(err, errors.ErrCodeParameter) {
		t.Errorf("duplicate Add error = %v, want PARAMETER", err)
	}
	if got := d.Layers(); len(got) != 1 || got[0] != "base" {
		t.Errorf("Layers() = %v", got)
	}
}

func TestGenerateAndDraw(t *testing.T) {
	d := New("chip", nil)
	for _, c := range []component.Generator{
		outline(t, "border", "base"),
		resonator(t, "res 1", 5000),
		outline(t, "marker", "base"),
	} {
		if err := d.Add(c); err != nil {
			t.Fatal(err)
		}
	}
	ctx := context.Background()
	if err := d.Generate(ctx); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	r := newLayerRecorder()
	if err := d.Draw(ctx, r); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(r.layers) != 2 || r.layers[0] != "base" || r.layers[1] != "res" {
		t.Errorf("registered layers = %v, want [base res]", r.layers)
	}
	if r.drawn["base"] != 4 {
		t.Errorf("base primitives = %d, want 4", r.drawn["base"])
	}
	if r.drawn["res"] == 0 {
		t.Error("resonator drew nothing")
	}
	// The resonator coupler hangs below its anchor, outside the outline.
	if b := d.Bounds(); b.Min.X != 0 || b.Min.Y >= 0 {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestGenerateJoinsFailures(t *testing.T) {
	d := New("chip", nil)
	bad := resonator(t, "too short", 400)
	if err := d.Add(bad); err != nil {
		t.Fatal(err)
	}
	if err := d.Add(outline(t, "border", "base")); err != nil {
		t.Fatal(err)
	}

	err := d.Generate(context.Background())
	if !errors.Has(err, errors.ErrCodeConvergence) {
		t.Fatalf("Generate error = %v, want CONVERGENCE in chain", err)
	}
	good, _ := d.Component("border")
	if !good.Generated() {
		t.Error("failure stopped later components")
	}

	r := newLayerRecorder()
	if err := d.Draw(context.Background(), r); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if r.drawn["res"] != 0 {
		t.Error("ungenerated component was drawn")
	}
}

func TestGenerateHonoursCancel(t *testing.T) {
	d := New("chip", nil)
	if err := d.Add(outline(t, "border", "base")); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Generate(ctx); err != context.Canceled {
		t.Errorf("Generate error = %v, want context.Canceled", err)
	}
}
