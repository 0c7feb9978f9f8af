// Package chart describes the pie chart that labels are laid out around.
//
// A [Spec] is the document a user writes: canvas size, optional center and
// radius, an optional inner radius for donuts, and the slices with their
// values. [Spec.Input] converts it into the per-pass input of the layout
// core, assigning angles clockwise from twelve o'clock in proportion to the
// values. [Locator] answers the reverse question for hit testing: which
// slice lies under a canvas point.
//
// Specs are read from JSON or TOML:
//
//	{
//	  "width": 480, "height": 320,
//	  "slices": [
//	    {"name": "Search", "value": 42},
//	    {"name": "Direct", "value": 27, "color": "#2fc25b"}
//	  ]
//	}
//
// Every slice becomes a [Datum], which is what label text, click events and
// the JSON sink see.
package chart
