// Package pkg provides the libraries behind pielabel, a callout label layout
// engine for pie and donut charts.
//
// # Overview
//
// Every slice of a pie gets a label outside the disc: a short polyline from
// the slice edge to one or two rows of text aligned at the canvas edge. The
// engine keeps labels inside the canvas and off each other, either by
// stacking them down each side or by hiding the ones that would overlap.
//
// # Architecture
//
// The typical data flow:
//
//	chart document (JSON/TOML)
//	         ↓
//	    [chart] package (angles, colors, data records)
//	         ↓
//	    [pielabel] package (geometry → stack or skip → routes)
//	         ↓
//	    [render] package (SVG/PNG/JSON/PDF)
//
// [pipeline] runs these stages with caching for the CLI and the HTTP server.
//
// # Quick Start
//
//	spec, _ := chart.Load("examples/traffic.json")
//	in := spec.Input()
//	cfg := pielabel.NewConfig(chart.Style{}.Options()...)
//	layout := pielabel.Compute(in, measure.NewFace(), cfg)
//	svg := render.RenderSVG(layout, render.WithPie(render.PieFromInput(in, spec.InnerRadius)))
//
// # Main Packages
//
// [pielabel] - The layout core. Builds label geometry from slice angles,
// places labels with the anti-collision stacker or the overlap-skip placer,
// routes connector lines, and resolves pointer events to labels or slices
// through a [pielabel.Controller].
//
// [geom] - Points and axis-aligned rectangles.
//
// [measure] - Text measurement: glyph advances from the embedded Go font, or
// a character-width estimate.
//
// [fonts] - The embedded Go Regular font and face construction.
//
// [chart] - Chart documents: slices with values, colors and notes, converted
// into layout input, plus a point-to-slice locator for donuts and pies.
//
// [render] - Sinks that turn a layout into SVG, PNG (native raster), JSON or
// PDF (via rsvg-convert).
//
// ## Infrastructure
//
// [pipeline] - chart → layout → artifacts with two cache stages, shared by
// the CLI and the HTTP API.
//
// [cache] - Cache interface with file, Redis and no-op backends, and key
// derivation for layouts and artifacts.
//
// [errors] - Structured error codes mapped to exit messages and HTTP status.
//
// [httputil] - JSON request and response helpers and retry with backoff.
//
// [observability] - Hooks for layout, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/pielabel/...           # Specific package
//	go test -run Example ./pkg/...       # Examples only
//	PIELABEL_REDIS_ADDR=localhost:6379 go test ./pkg/cache/...  # Include Redis
//
// [pielabel]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/pielabel
// [geom]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/geom
// [measure]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/measure
// [fonts]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/fonts
// [chart]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/chart
// [render]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pielabel/pkg/buildinfo
package pkg
