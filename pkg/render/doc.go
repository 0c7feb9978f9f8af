// Package render turns a computed label layout into artifacts.
//
// # Sinks
//
//   - [RenderSVG]: vector output with the pie, connectors, anchor markers
//     and text rows; the measuring font can be embedded with
//     [WithEmbeddedFont] so browsers use the same metrics as the layout.
//   - [RenderJSON]: the layout itself, for clients that draw on their own.
//   - [RenderPNG]: native raster output via fogleman/gg.
//   - [RenderPDF]: the SVG converted with rsvg-convert.
//
// The layout only describes labels. Pass the pie with [WithPie] to draw the
// wedges underneath:
//
//	layout := pielabel.Compute(in, measure.NewFace(), cfg)
//	svg := render.RenderSVG(layout, render.WithPie(render.PieFromInput(in, 0)))
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). [RenderPNG] does not need it.
package render
