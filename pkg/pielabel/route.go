package pielabel

import (
	"math"

	"github.com/matzehuels/pielabel/pkg/geom"
)

// displacementEpsilon absorbs float noise from the stacker's round trip
// through box offsets.
const displacementEpsilon = 1e-9

// RouteParams carries the canvas and half-plane values the router needs.
type RouteParams struct {
	CanvasWidth  float64
	Padding      float64
	AdjustOffset float64
	// MaxTextWidth is the widest text box in the label's half-plane.
	MaxTextWidth float64
	// Stacked is false for overlap-skip layouts, which never move labels.
	Stacked bool
}

// edgeX is the x where text rows start on the given side.
func edgeX(side Side, width, padding float64) float64 {
	if side == Left {
		return padding
	}
	return width - padding
}

// Route returns the connector polyline from the label's anchor to its text.
//
// Undisplaced labels get anchor → inflection → text. Labels pulled up bend
// at the inflection x. Labels pushed down take a dogleg that runs along the
// inflection height and drops beside the widest text, unless that dogleg
// would double back past the inflection point, in which case the path goes
// straight to the text column.
func Route(l *Label, p RouteParams) []geom.Point {
	last := geom.Point{X: edgeX(l.Side, p.CanvasWidth, p.Padding), Y: l.Y}
	infl := l.Inflection

	if !p.Stacked || math.Abs(infl.Y-l.Y) <= displacementEpsilon {
		return []geom.Point{l.Anchor, infl, last}
	}

	if infl.Y > l.Y {
		return []geom.Point{l.Anchor, {X: infl.X, Y: l.Y}, last}
	}

	dir := 1.0
	if l.Side == Right {
		dir = -1
	}
	p2 := geom.Point{X: last.X + dir*(p.MaxTextWidth+p.AdjustOffset), Y: infl.Y}
	p3 := geom.Point{X: last.X + dir*p.MaxTextWidth, Y: last.Y}

	if (l.Side == Right && p2.X < infl.X) || (l.Side == Left && p2.X > infl.X) {
		return []geom.Point{l.Anchor, p3, last}
	}
	return []geom.Point{l.Anchor, infl, p2, p3, last}
}
