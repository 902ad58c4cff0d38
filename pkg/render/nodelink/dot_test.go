package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/cpwdesign/pkg/component"
	"github.com/matzehuels/cpwdesign/pkg/design"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/section"
)

func feedline(t *testing.T) *design.Design {
	t.Helper()
	tl, err := component.NewTransmissionLine(component.TransmissionLineConfig{
		Base:         component.Base{Name: "feed", Layer: "base", MaxWidth: 5000, MaxHeight: 5000},
		Start:        geom.Pt(0, 0),
		End:          geom.Pt(5000, 5000),
		PadSize:      [2]float64{440, 520},
		PadThickness: 120,
		CPW:          section.CPW{Gap: 4, Width: 7},
		ArcRadius:    100,
		CenterOffset: 400,
	})
	if err != nil {
		t.Fatal(err)
	}
	d := design.New("chip", nil)
	if err := d.Add(tl); err != nil {
		t.Fatal(err)
	}
	if err := d.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(feedline(t), Options{})

	if !strings.Contains(dot, "subgraph cluster_0") || !strings.Contains(dot, `label="feed (transmission_line)"`) {
		t.Errorf("cluster missing:\n%s", dot)
	}
	// pad, seven path elements, pad: eight joints
	if n := strings.Count(dot, " -> "); n != 8 {
		t.Errorf("edges = %d, want 8", n)
	}
	if !strings.Contains(dot, `"feed/left lower pad" -> "feed/cpw element 1"`) {
		t.Error("first pad not linked to the path")
	}
	if strings.Contains(dot, "dashed") {
		t.Error("fully docked line has open sections")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(feedline(t), Options{Detailed: true})
	if !strings.Contains(dot, `cpw element 2\nstraight\nlength: 1900.000`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTSkipsUngenerated(t *testing.T) {
	o, err := component.NewSampleOutline(component.SampleOutlineConfig{
		Base:      component.Base{Name: "border", Layer: "base", MaxWidth: 100, MaxHeight: 100},
		Thickness: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	d := design.New("chip", nil)
	d.Add(o)
	if dot := ToDOT(d, Options{}); strings.Contains(dot, "cluster") {
		t.Errorf("ungenerated component rendered:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(feedline(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Error("viewBox not normalised")
	}
}
