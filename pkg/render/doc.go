// Package render groups the output stages for generated designs.
//
// # Overview
//
//   - [sink]: an in-memory canvas that implements the component renderer
//     interface, plus SVG, PNG and JSON encoders for it
//   - [nodelink]: the section connectivity of a design as a Graphviz graph
//
// A design is drawn once onto a canvas and the canvas is then encoded in
// as many formats as needed:
//
//	canvas := sink.NewCanvas()
//	_ = d.Draw(ctx, canvas)
//	svg := sink.RenderSVG(canvas)
//	png, err := sink.RenderPNG(canvas, sink.WithScale(0.5))
//
// [sink]: github.com/matzehuels/cpwdesign/pkg/render/sink
// [nodelink]: github.com/matzehuels/cpwdesign/pkg/render/nodelink
package render
