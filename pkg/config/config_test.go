package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/cpwdesign/pkg/component"
	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
)

func TestLoadExample(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", "examples", "chip.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Name != "chip-a" || f.Count() != 4 {
		t.Fatalf("name=%q count=%d, want chip-a 4", f.Name, f.Count())
	}

	d, err := f.Design(nil)
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if err := d.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var names []string
	for _, c := range d.Components() {
		names = append(names, c.Name())
	}
	want := []string{"border", "feedline", "RES 1", "RES 2"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("components = %v, want %v", names, want)
		}
	}

	c, _ := d.Component("RES 2")
	res := c.(*component.Resonator)
	if got := res.Anchor(); got != geom.Pt(2250, 1250) {
		t.Errorf("RES 2 anchor = %v, want (2250,1250)", got)
	}
	if res.Config().End != component.EndStraight {
		t.Errorf("end = %q", res.Config().End)
	}
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`
[[resonator]]
name = "r"
layer = "base"
max_width = 2000
max_height = 500
length = 5000
gap = 7
width = 4
arc_radius = 92.5
coupling_length = 100
coupling_spacer = 200
mirror = [90, 0]

[[transmission_line]]
name = "tl"
layer = "base"
max_width = 5000
max_height = 5000
start = [0, 0]
end = [1000, 1000]
pad_size = [440, 520]
pad_thickness = 120
gap = 4
width = 7

  [[transmission_line.path]]
  kind = "straight"
  length = 500

  [[transmission_line.path]]
  kind = "left"
  radius = 200
  angle = 90
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Name != DefaultName {
		t.Errorf("Name = %q, want %q", f.Name, DefaultName)
	}
	r := f.Resonators[0]
	if r.Gap != 7 || r.Width != 4 || r.ArcRadius != 92.5 {
		t.Errorf("resonator geometry = %+v", r.ResonatorGeometry)
	}
	if steps := f.TransmissionLines[0].Path; len(steps) != 2 || steps[1] != component.LeftStep(200, 90) {
		t.Errorf("path = %v", steps)
	}

	d, err := f.Design(nil)
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	c, _ := d.Component("r")
	if got := len(c.(*component.Resonator).Mirrors()); got != 2 {
		t.Errorf("mirrors = %d, want 2", got)
	}
	if c.(*component.Resonator).Config().End != component.EndArc {
		t.Error("missing end should default to arc")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", `name = `},
		{"no components", `name = "empty"`},
		{"unknown key", "[[outline]]\nname = \"o\"\nlayer = \"l\"\nwidth = 10\nheight = 10\nthickness = 1\ncolour = \"red\""},
		{"empty array", "[[resonator_array]]\nname = \"a\"\nlayer = \"l\"\nlengths = []"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.toml)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestDesignErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"bad anchor", "[[outline]]\nname = \"o\"\nlayer = \"l\"\nwidth = 10\nheight = 10\nthickness = 1\nanchor = [1]"},
		{"bad geometry", "[[outline]]\nname = \"o\"\nlayer = \"l\"\nwidth = 10\nheight = 10\nthickness = 0"},
		{"pad size", "[[transmission_line]]\nname = \"t\"\nlayer = \"l\"\nmax_width = 10\nmax_height = 10\nstart = [0, 0]\nend = [5, 5]\npad_size = [1]"},
		{"duplicate", "[[outline]]\nname = \"o\"\nlayer = \"l\"\nwidth = 10\nheight = 10\nthickness = 1\n[[outline]]\nname = \"o\"\nlayer = \"l\"\nwidth = 10\nheight = 10\nthickness = 1"},
		{"bad end", "[[resonator]]\nname = \"r\"\nlayer = \"l\"\nmax_width = 2000\nmax_height = 500\nlength = 5000\ngap = 7\nwidth = 4\narc_radius = 92.5\nend = \"loop\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.toml))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if _, err := f.Design(nil); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Design error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadRecordsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.toml")
	data := "[[outline]]\nname = \"o\"\nlayer = \"l\"\nwidth = 10\nheight = 10\nthickness = 1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Path() != path {
		t.Errorf("Path() = %q", f.Path())
	}
}
