// Package pkg provides the core libraries for cpwdesign, a geometry layout
// engine for superconducting coplanar waveguide (CPW) circuits.
//
// # Overview
//
// A design is a set of named components (meandered resonators, feed lines
// with bonding pads, sample outlines). Each component is a chain of sections
// whose endpoints connect in order; each section is a handful of closed
// primitives drawn on a mask layer. The pkg directory is organized bottom-up:
//
//  1. [geom] - Points, rotations, mirroring and tolerant comparison
//  2. [shape] - Closed primitives with bulged (arc) edges
//  3. [section] - Section kinds, their parameters and endpoint bookkeeping
//  4. [component] - Generators that chain sections into components
//  5. [design] - An ordered collection of components and their layers
//
// # Architecture
//
// The typical data flow:
//
//	TOML design file
//	       ↓
//	  [config] package (parse and validate)
//	       ↓
//	  [design] package (generate components)
//	       ↓
//	  [render/sink] package (canvas + SVG/PNG/JSON)
//
// # Quick Start
//
//	f, _ := config.Load("chip.toml")
//	d, _ := f.Design(nil)
//	if err := d.Generate(ctx); err != nil {
//	    // components that failed are left ungenerated
//	}
//
//	canvas := sink.NewCanvas()
//	_ = d.Draw(ctx, canvas)
//	svg := sink.RenderSVG(canvas)
//
// # Supporting Packages
//
// [errors] - Coded errors (PARAMETER, CONNECTION, CONVERGENCE, ...) and
// parameter validation helpers.
//
// [observability] - Optional hooks for generation and rendering events.
//
// [render/nodelink] - Section connectivity as a Graphviz graph.
//
// [buildinfo] - Version information injected at build time.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/geom
// [shape]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/shape
// [section]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/section
// [component]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/component
// [design]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/design
// [config]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/config
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cpwdesign/pkg/buildinfo
package pkg
