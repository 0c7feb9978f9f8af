package pielabel

import (
	"math"

	"github.com/matzehuels/pielabel/pkg/geom"
)

const fullTurn = 2 * math.Pi

// unwrap returns end moved forward by a full turn when it lies before start.
func unwrap(start, end float64) float64 {
	if end < start {
		end += fullTurn
	}
	return end
}

// MiddleAngle returns the bisector of the sector from start to end.
func MiddleAngle(start, end float64) float64 {
	return (start + unwrap(start, end)) / 2
}

// Share returns the fraction of the full circle covered by the sector.
func Share(start, end float64) float64 {
	return (unwrap(start, end) - start) / fullTurn
}

// Halves holds the labels of each half-plane in input order.
type Halves struct {
	Left  []*Label
	Right []*Label
}

// All returns the left labels followed by the right labels.
func (h Halves) All() []*Label {
	all := make([]*Label, 0, len(h.Left)+len(h.Right))
	all = append(all, h.Left...)
	return append(all, h.Right...)
}

// Build creates one label per slice and assigns it to a half-plane by
// comparing its anchor with the pie center.
func Build(in Input, cfg Config) Halves {
	var h Halves
	for i, s := range in.Slices {
		mid := MiddleAngle(s.StartAngle, s.EndAngle)
		anchor := geom.PointAt(in.Center, mid, in.Radius+cfg.AnchorOffset)
		inflection := geom.PointAt(in.Center, mid, in.Radius+cfg.InflectionOffset)

		l := &Label{
			Anchor:     anchor,
			Inflection: inflection,
			Percent:    Share(s.StartAngle, s.EndAngle),
			Y:          inflection.Y,
			Datum:      s.Datum,
			Color:      s.Color,
			Rows:       cfg.textRows(s.Datum, s.Color),
			index:      i,
		}
		if anchor.X < in.Center.X {
			l.Side = Left
			h.Left = append(h.Left, l)
		} else {
			l.Side = Right
			h.Right = append(h.Right, l)
		}
	}
	return h
}
