package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cpwdesign/pkg/component"
	"github.com/matzehuels/cpwdesign/pkg/design"
	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/section"
)

// Options configures section graph rendering.
type Options struct {
	// Detailed adds kind, length and heading to section labels.
	// When false, only the section name is shown.
	Detailed bool
}

// ToDOT converts the generated components of d to Graphviz DOT. Each
// component becomes a cluster; each section a node; each docking point
// shared by two sections an edge from the earlier to the later section.
//
// Sections with an open docking point are drawn dashed.
func ToDOT(d *design.Design, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for i, c := range d.Components() {
		if !c.Generated() {
			continue
		}
		writeCluster(&buf, i, c, opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeCluster(buf *bytes.Buffer, i int, c component.Generator, opts Options) {
	fmt.Fprintf(buf, "\n  subgraph cluster_%d {\n", i)
	fmt.Fprintf(buf, "    label=%q;\n", fmt.Sprintf("%s (%s)", c.Name(), c.Kind()))

	secs := c.Sections()
	for _, s := range secs {
		fmt.Fprintf(buf, "    %q [%s];\n", nodeID(c, s), strings.Join(fmtAttrs(s, opts.Detailed), ", "))
	}
	for a := range secs {
		for b := a + 1; b < len(secs); b++ {
			if p, ok := shared(secs[a], secs[b]); ok {
				fmt.Fprintf(buf, "    %q -> %q [label=%q];\n", nodeID(c, secs[a]), nodeID(c, secs[b]),
					fmt.Sprintf("%.1f, %.1f", p.X, p.Y))
			}
		}
	}
	buf.WriteString("  }\n")
}

func nodeID(c component.Generator, s *section.Section) string { return c.Name() + "/" + s.Name }

func fmtLabel(s *section.Section, detailed bool) string {
	if !detailed {
		return s.Name
	}
	return fmt.Sprintf("%s\n%s\nlength: %.3f\nheading: %g", s.Name, s.Kind, s.Length, s.Heading)
}

func fmtAttrs(s *section.Section, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(s, detailed))}
	if dangling(s) {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// dangling reports whether s has an open docking point that is not also a
// connected one. Pads and caps put both points on their anchor.
func dangling(s *section.Section) bool {
	if s.Endpoints == nil {
		return false
	}
	for _, p := range s.Endpoints.Unconnected() {
		free := true
		for _, q := range s.Endpoints.Connected() {
			if geom.Distance(p, q) <= section.DefaultTolerance {
				free = false
			}
		}
		if free {
			return true
		}
	}
	return false
}

// shared returns a docking point connected on both sections.
func shared(a, b *section.Section) (geom.Point, bool) {
	if a.Endpoints == nil || b.Endpoints == nil {
		return geom.Point{}, false
	}
	for _, p := range a.Endpoints.Connected() {
		for _, q := range b.Endpoints.Connected() {
			if geom.Distance(p, q) <= section.DefaultTolerance {
				return p, true
			}
		}
	}
	return geom.Point{}, false
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
