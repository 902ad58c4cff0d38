// Package sink provides rendering collaborators and output formats for
// generated designs.
//
// # Canvas
//
// A [Canvas] is the renderer components draw into. It hands out a fresh
// UUID handle for every primitive, keeps layers in registration order and
// forgets primitives on Clear, so after a mirrored draw only the final view
// remains:
//
//	c := sink.NewCanvas()
//	if err := d.Draw(ctx, c); err != nil { ... }
//
// # Output Formats
//
//   - [RenderSVG]: vector output with exact arcs, one group per layer
//   - [RenderPNG]: raster preview via gogpu/gg, arcs flattened
//   - [RenderJSON]: primitives with handles and layers, plus an optional
//     design summary ([WithJSONDesign])
//
// All formats flip the y axis: designs use y up, images use y down. Loops are
// filled with the even-odd rule.
package sink
