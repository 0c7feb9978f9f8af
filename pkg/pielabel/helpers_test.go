package pielabel

import (
	"math"

	"github.com/matzehuels/pielabel/pkg/geom"
)

const eps = 1e-9

// fixedWidth measures every character as 6 units wide and a row as tall as
// its font size.
var fixedWidth = MeasureFunc(func(r TextRow) geom.Rect {
	return BoxFor(r, float64(len(r.Text))*6, r.FontSize)
})

func deg(d float64) float64 { return d * math.Pi / 180 }

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

func nameLabel(d any, _ string) TextStyle { return TextStyle{Text: d.(string)} }

// pie builds an input with equal slices starting at 12 o'clock.
func pie(n int, names ...string) Input {
	in := Input{Center: geom.Point{X: 200, Y: 200}, Radius: 80, Width: 400, Height: 400}
	step := 2 * math.Pi / float64(n)
	start := -math.Pi / 2
	for i := 0; i < n; i++ {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		in.Slices = append(in.Slices, Slice{
			StartAngle: start + float64(i)*step,
			EndAngle:   start + float64(i+1)*step,
			Datum:      name,
			Color:      "#1890ff",
		})
	}
	return in
}
