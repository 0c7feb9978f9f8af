package pielabel

import (
	"testing"

	"github.com/matzehuels/pielabel/pkg/geom"
)

func TestRoute(t *testing.T) {
	params := RouteParams{CanvasWidth: 400, Padding: 10, AdjustOffset: 15, MaxTextWidth: 100, Stacked: true}

	tests := []struct {
		name   string
		label  Label
		params RouteParams
		want   []geom.Point
	}{
		{
			name:   "not displaced",
			label:  Label{Side: Right, Anchor: geom.Point{X: 280, Y: 100}, Inflection: geom.Point{X: 290, Y: 100}, Y: 100},
			params: params,
			want:   []geom.Point{{X: 280, Y: 100}, {X: 290, Y: 100}, {X: 390, Y: 100}},
		},
		{
			name:  "skip mode ignores displacement",
			label: Label{Side: Left, Anchor: geom.Point{X: 120, Y: 100}, Inflection: geom.Point{X: 110, Y: 100}, Y: 140},
			params: RouteParams{
				CanvasWidth: 400, Padding: 10, AdjustOffset: 15, MaxTextWidth: 100,
			},
			want: []geom.Point{{X: 120, Y: 100}, {X: 110, Y: 100}, {X: 10, Y: 140}},
		},
		{
			name:   "pulled up bends at inflection x",
			label:  Label{Side: Right, Anchor: geom.Point{X: 280, Y: 100}, Inflection: geom.Point{X: 290, Y: 100}, Y: 60},
			params: params,
			want:   []geom.Point{{X: 280, Y: 100}, {X: 290, Y: 60}, {X: 390, Y: 60}},
		},
		{
			name:   "pushed down collapses when dogleg doubles back (right)",
			label:  Label{Side: Right, Anchor: geom.Point{X: 290, Y: 100}, Inflection: geom.Point{X: 300, Y: 100}, Y: 140},
			params: params,
			// point2.x = 390-100-15 = 275 < 300
			want: []geom.Point{{X: 290, Y: 100}, {X: 290, Y: 140}, {X: 390, Y: 140}},
		},
		{
			name:   "pushed down dogleg (right)",
			label:  Label{Side: Right, Anchor: geom.Point{X: 240, Y: 100}, Inflection: geom.Point{X: 250, Y: 100}, Y: 140},
			params: params,
			want: []geom.Point{
				{X: 240, Y: 100}, {X: 250, Y: 100}, {X: 275, Y: 100}, {X: 290, Y: 140}, {X: 390, Y: 140},
			},
		},
		{
			name:   "pushed down dogleg (left)",
			label:  Label{Side: Left, Anchor: geom.Point{X: 160, Y: 100}, Inflection: geom.Point{X: 150, Y: 100}, Y: 140},
			params: params,
			// point2.x = 10+100+15 = 125 <= 150
			want: []geom.Point{
				{X: 160, Y: 100}, {X: 150, Y: 100}, {X: 125, Y: 100}, {X: 110, Y: 140}, {X: 10, Y: 140},
			},
		},
		{
			name:   "float noise from stacking is not displacement",
			label:  Label{Side: Right, Anchor: geom.Point{X: 240, Y: 100}, Inflection: geom.Point{X: 250, Y: 100}, Y: 100 + 1e-10},
			params: params,
			want:   []geom.Point{{X: 240, Y: 100}, {X: 250, Y: 100}, {X: 390, Y: 100}},
		},
		{
			name:   "pushed down collapses (left)",
			label:  Label{Side: Left, Anchor: geom.Point{X: 110, Y: 100}, Inflection: geom.Point{X: 100, Y: 100}, Y: 140},
			params: params,
			want:   []geom.Point{{X: 110, Y: 100}, {X: 110, Y: 140}, {X: 10, Y: 140}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(&tt.label, tt.params)
			if len(got) != len(tt.want) {
				t.Fatalf("Route() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !near(got[i].X, tt.want[i].X) || !near(got[i].Y, tt.want[i].Y) {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
