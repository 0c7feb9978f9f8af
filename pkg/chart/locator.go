package chart

import (
	"math"
	"sort"

	"github.com/matzehuels/pielabel/pkg/geom"
	"github.com/matzehuels/pielabel/pkg/pielabel"
)

// Locator finds the slice under a canvas point. It implements
// [pielabel.SliceLocator].
type Locator struct {
	center       geom.Point
	inner, outer float64
	// ends holds each slice's end angle, relative to StartAngle.
	ends  []float64
	datum []Datum
}

// Locator returns a locator over the chart's slices.
func (s *Spec) Locator() *Locator {
	loc := &Locator{center: s.center(), inner: s.InnerRadius, outer: s.Radius}
	total := s.Total()
	if total <= 0 {
		return loc
	}
	var cum float64
	for i, sl := range s.Slices {
		cum += sl.Value
		loc.ends = append(loc.ends, 2*math.Pi*cum/total)
		loc.datum = append(loc.datum, s.datum(i, total))
	}
	return loc
}

// SliceAt returns the datum of the slice containing p. Points in the donut
// hole or outside the pie match nothing. Points on a shared edge belong to
// the slice that starts there.
func (l *Locator) SliceAt(p geom.Point) (any, bool) {
	dx, dy := p.X-l.center.X, p.Y-l.center.Y
	d := math.Hypot(dx, dy)
	if d > l.outer || d < l.inner || len(l.ends) == 0 {
		return nil, false
	}
	a := math.Mod(math.Atan2(dy, dx)-StartAngle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	i := sort.Search(len(l.ends), func(i int) bool { return l.ends[i] > a })
	if i == len(l.ends) {
		i = len(l.ends) - 1
	}
	return l.datum[i], true
}

var _ pielabel.SliceLocator = (*Locator)(nil)
