package pielabel

import (
	"github.com/matzehuels/pielabel/pkg/geom"
)

// Compute runs one full layout pass over in.
func Compute(in Input, m Measurer, cfg Config) Layout {
	halves := Build(in, cfg)
	out := Layout{Width: in.Width, Height: in.Height}

	place := func(l *Label) Placement { return placeRows(l, in.Width, cfg, m) }
	params := RouteParams{CanvasWidth: in.Width, Padding: cfg.Padding, AdjustOffset: cfg.AdjustOffset}

	if cfg.SkipOverlapLabels {
		out.Mode = ModeSkipOverlap
		drawn, skipped := PlaceSkipOverlap(halves.All(), place)
		out.Skipped = skipped
		for _, p := range drawn {
			out.Labels = append(out.Labels, finish(p, Route(p.Label, params), cfg))
		}
		return out
	}

	out.Mode = ModeStack
	maxRows := MaxRows(in.Height, cfg.LineHeight)
	startY := StackStartY(in, cfg)
	params.Stacked = true

	for _, half := range [][]*Label{halves.Left, halves.Right} {
		kept, dropped := Truncate(half, maxRows)
		out.Truncated += dropped
		SortByY(kept)
		Stack(kept, cfg.LineHeight, in.Height, startY)

		placed := make([]Placement, len(kept))
		params.MaxTextWidth = 0
		for i, l := range kept {
			placed[i] = place(l)
			if w := placed[i].Box.Width(); w >= params.MaxTextWidth {
				params.MaxTextWidth = w
			}
		}
		for _, p := range placed {
			out.Labels = append(out.Labels, finish(p, Route(p.Label, params), cfg))
		}
	}
	return out
}

// placeRows positions the label's rows at its Y against the canvas edge of
// its side and measures them.
func placeRows(l *Label, width float64, cfg Config, m Measurer) Placement {
	x := edgeX(l.Side, width, cfg.Padding)
	align := AlignLeft
	if l.Side == Right {
		align = AlignRight
	}

	box := geom.Rect{MinX: x, MinY: l.Y, MaxX: x, MaxY: l.Y}
	rows := make([]TextRow, len(l.Rows))
	for i, r := range l.Rows {
		r.X, r.Y, r.Align = x, l.Y, align
		rows[i] = r
		box = box.Union(m.Measure(r))
	}
	return Placement{Label: l, Rows: rows, Box: box}
}

func finish(p Placement, points []geom.Point, cfg Config) DrawnLabel {
	l := p.Label
	return DrawnLabel{
		Datum:      l.Datum,
		Color:      l.Color,
		Side:       l.Side,
		Anchor:     l.Anchor,
		Inflection: l.Inflection,
		Y:          l.Y,
		Rows:       p.Rows,
		Box:        p.Box,
		Connector:  Connector{Points: points, Style: cfg.lineStyle(l.Datum, l.Color)},
		Marker:     Marker{Center: l.Anchor, Style: cfg.markerStyle(l.Datum, l.Color)},
	}
}
