// Package pielabel computes callout label layouts for pie and donut charts.
//
// # Overview
//
// Every slice gets a label made of up to two text rows placed at the left or
// right edge of the canvas, plus a connector polyline that runs from an anchor
// point just outside the slice, through an inflection point further out, to
// the text. A layout pass is a pure computation over an explicit [Input]:
//
//  1. [Build] turns slices into [Label] descriptors and splits them into the
//     left and right half-planes.
//  2. Either [PlaceSkipOverlap] draws labels in angular order and drops any
//     label whose box hits the previous one, or, per half-plane, [Truncate]
//     and [Stack] spread the rows vertically so none overlap.
//  3. [Route] computes the connector polyline for every drawn label.
//
// [Compute] runs the whole pass and returns a [Layout]; nothing is shared
// between passes.
//
// # Text Measurement
//
// The package never rasterises text. Callers inject a [Measurer] that
// returns the bounding box of a positioned [TextRow]; see the measure
// package for font-backed and heuristic implementations.
//
// # Interaction
//
// A [Controller] owns the most recent layout, publishes it atomically after
// each pass and resolves pointer events against it: labels first (in draw
// order), then the slice under the pointer via a [SliceLocator].
//
//	ctrl := pielabel.NewController(pielabel.NewConfig(
//	    pielabel.WithLabel1(func(d any, color string) pielabel.TextStyle {
//	        return pielabel.TextStyle{Text: d.(string)}
//	    }),
//	    pielabel.WithOnClick(func(ev pielabel.ClickEvent) { fmt.Println(ev.Data) }),
//	), measure.NewApprox())
//	ctrl.Render(input)
//	h := ctrl.Bind(emitter, locator)
//	defer ctrl.Unbind(h)
package pielabel
