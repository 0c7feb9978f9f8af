package pielabel

import "github.com/matzehuels/pielabel/pkg/geom"

// SliceLocator finds the slice datum under a canvas point.
type SliceLocator interface {
	SliceAt(p geom.Point) (datum any, ok bool)
}

// HitSource tells what a click resolved to.
type HitSource string

const (
	HitNone  HitSource = ""
	HitLabel HitSource = "label"
	HitSlice HitSource = "slice"
)

// ClickEvent is delivered to Config.OnClick for every handled pointer event.
// Data is nil when neither a label nor a slice is under the pointer.
type ClickEvent struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Data   any       `json:"data"`
	Source HitSource `json:"source"`
}

// HitTest returns the first label, in draw order, whose box contains p.
func HitTest(labels []DrawnLabel, p geom.Point) (DrawnLabel, bool) {
	for _, l := range labels {
		if l.Box.Contains(p) {
			return l, true
		}
	}
	return DrawnLabel{}, false
}

// Dispatch resolves p to a click event. Labels win over slices; locator may
// be nil.
func Dispatch(labels []DrawnLabel, p geom.Point, locator SliceLocator) ClickEvent {
	ev := ClickEvent{X: p.X, Y: p.Y}
	if l, ok := HitTest(labels, p); ok {
		ev.Data, ev.Source = l.Datum, HitLabel
		return ev
	}
	if locator != nil {
		if d, ok := locator.SliceAt(p); ok {
			ev.Data, ev.Source = d, HitSlice
		}
	}
	return ev
}
