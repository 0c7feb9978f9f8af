package pielabel

import (
	"cmp"
	"math"
	"slices"
)

// stackBox is a run of label rows that must sit next to each other.
// Offsets are relative to the stack's startY.
type stackBox struct {
	size    float64
	targets []float64
	pos     float64
}

// MaxRows is the number of label rows of the given height that fit on a
// canvas of the given height.
func MaxRows(canvasHeight, lineHeight float64) int {
	if lineHeight <= 0 || math.IsNaN(canvasHeight) || canvasHeight <= 0 {
		return 0
	}
	return int(math.Floor(canvasHeight / lineHeight))
}

// Truncate keeps the n labels with the largest Percent and returns them in
// their original order along with the number dropped. Ties keep the earlier
// label.
func Truncate(half []*Label, n int) ([]*Label, int) {
	if n < 0 {
		n = 0
	}
	if len(half) <= n {
		return half, 0
	}

	ranked := slices.Clone(half)
	slices.SortStableFunc(ranked, func(a, b *Label) int {
		return cmp.Compare(b.Percent, a.Percent)
	})
	keep := make(map[*Label]bool, n)
	for _, l := range ranked[:n] {
		keep[l] = true
	}

	kept := make([]*Label, 0, n)
	for _, l := range half {
		if keep[l] {
			kept = append(kept, l)
		}
	}
	return kept, len(half) - n
}

// SortByY orders labels by their current Y, top first. Equal heights keep
// their relative order.
func SortByY(half []*Label) {
	slices.SortStableFunc(half, func(a, b *Label) int { return cmp.Compare(a.Y, b.Y) })
}

// StackStartY is the reference top of the stacking span.
func StackStartY(in Input, cfg Config) float64 {
	return in.Center.Y - in.Radius - cfg.InflectionOffset - cfg.LineHeight
}

// Stack rewrites the Y of every label in half so that rows of lineHeight do
// not overlap. half must already be sorted by Y; its order is never changed.
//
// The usable span starts at startY and is canvasHeight tall, or longer when
// the lowest label already sits past it. Stack returns that span.
func Stack(half []*Label, lineHeight, canvasHeight, startY float64) float64 {
	totalH := canvasHeight
	maxY := 0.0
	targets := make([]float64, len(half))
	for i, l := range half {
		if l.Y > maxY {
			maxY = l.Y
		}
		targets[i] = l.Y - startY
	}
	if maxY-startY > totalH {
		totalH = maxY - startY
	}

	i := 0
	for _, b := range resolveBoxes(targets, lineHeight, totalH) {
		offset := 0.0
		for range b.targets {
			half[i].Y = b.pos + startY + offset + lineHeight/2
			offset += lineHeight
			i++
		}
	}
	return totalH
}

// resolveBoxes merges adjacent boxes until none overlap. Every merge removes
// a box, so the loop ends after at most len(targets) passes.
func resolveBoxes(targets []float64, size, totalH float64) []*stackBox {
	boxes := make([]*stackBox, len(targets))
	for i, t := range targets {
		boxes[i] = &stackBox{size: size, targets: []float64{t}}
	}

	for overlapping := true; overlapping; {
		for _, b := range boxes {
			center := (slices.Min(b.targets) + slices.Max(b.targets)) / 2
			b.pos = math.Min(math.Max(0, center-b.size/2), totalH-b.size)
		}

		overlapping = false
		for i := len(boxes) - 1; i > 0; i-- {
			prev, box := boxes[i-1], boxes[i]
			if prev.pos+prev.size > box.pos {
				prev.size += box.size
				prev.targets = append(prev.targets, box.targets...)
				if prev.pos+prev.size > totalH {
					prev.pos = totalH - prev.size
				}
				boxes = slices.Delete(boxes, i, i+1)
				overlapping = true
			}
		}
	}
	return boxes
}
