// Package nodelink renders the section chains of a design as node-link
// diagrams.
//
// # Overview
//
// Every generated component becomes a Graphviz cluster. Sections are boxes;
// an arrow joins two sections that share a connected docking point and is
// labelled with its coordinates. Sections left with an open docking point are
// drawn dashed, which makes broken chains easy to spot.
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
// No external Graphviz installation is needed.
package nodelink
