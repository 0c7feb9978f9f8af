package pielabel

import "github.com/matzehuels/pielabel/pkg/geom"

// Placement is a label together with its placed text rows and their box.
type Placement struct {
	Label *Label
	Rows  []TextRow
	Box   geom.Rect
}

// PlaceSkipOverlap places labels in order and keeps those whose box does not
// intersect the box of the label placed just before it.
//
// A skipped label still becomes the reference for the next comparison, so
// of two adjacent collisions only the first label of the run survives.
func PlaceSkipOverlap(labels []*Label, place func(*Label) Placement) (drawn []Placement, skipped int) {
	var last *geom.Rect
	for _, l := range labels {
		p := place(l)
		if last != nil && p.Box.Intersects(*last) {
			box := p.Box
			last = &box
			skipped++
			continue
		}
		drawn = append(drawn, p)
		box := p.Box
		last = &box
	}
	return drawn, skipped
}
