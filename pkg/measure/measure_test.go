package measure

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font"

	"github.com/matzehuels/pielabel/pkg/geom"
	"github.com/matzehuels/pielabel/pkg/pielabel"
)

func TestApprox(t *testing.T) {
	tests := []struct {
		name string
		row  pielabel.TextRow
		want geom.Rect
	}{
		{
			name: "left aligned above baseline",
			row:  pielabel.TextRow{Text: "abcd", X: 10, Y: 50, FontSize: 10, Align: pielabel.AlignLeft, Baseline: pielabel.BaselineBottom},
			want: geom.Rect{MinX: 10, MinY: 40, MaxX: 32, MaxY: 50},
		},
		{
			name: "right aligned below baseline",
			row:  pielabel.TextRow{Text: "abcd", X: 390, Y: 50, FontSize: 10, Align: pielabel.AlignRight, Baseline: pielabel.BaselineTop},
			want: geom.Rect{MinX: 368, MinY: 50, MaxX: 390, MaxY: 60},
		},
		{
			name: "runes not bytes",
			row:  pielabel.TextRow{Text: "héé", FontSize: 20},
			want: geom.Rect{MinX: 0, MinY: 0, MaxX: 33, MaxY: 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Approx{}.Measure(tt.row)
			if math.Abs(got.MaxX-tt.want.MaxX) > 1e-9 || math.Abs(got.MinX-tt.want.MinX) > 1e-9 ||
				got.MinY != tt.want.MinY || got.MaxY != tt.want.MaxY {
				t.Errorf("Measure() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFace(t *testing.T) {
	f := NewFace()
	defer f.Close()

	row := pielabel.TextRow{Text: "Revenue", X: 10, Y: 100, FontSize: 12, Baseline: pielabel.BaselineBottom}
	short := f.Measure(row)
	if short.Width() <= 0 || short.Height() <= 0 {
		t.Fatalf("empty box %+v", short)
	}
	if short.MinX != 10 || short.MaxY != 100 {
		t.Errorf("box not anchored at row origin: %+v", short)
	}

	row.Text = "Revenue 2024"
	if long := f.Measure(row); long.Width() <= short.Width() {
		t.Errorf("longer text measured %v, shorter %v", long.Width(), short.Width())
	}

	row.Text, row.FontSize = "Revenue", 24
	if big := f.Measure(row); big.Width() <= short.Width() {
		t.Errorf("larger font measured %v, smaller %v", big.Width(), short.Width())
	}

	row.Text = ""
	if empty := f.Measure(row); empty.Width() != 0 {
		t.Errorf("empty text width = %v", empty.Width())
	}
	if len(f.faces) != 2 {
		t.Errorf("cached faces = %d, want 2", len(f.faces))
	}
}

func TestFaceFallsBackToApprox(t *testing.T) {
	f := &Face{
		faces:   make(map[float64]font.Face),
		newFace: func(float64) (font.Face, error) { return nil, errors.New("no font") },
	}
	row := pielabel.TextRow{Text: "abcd", FontSize: 10}
	if got, want := f.Measure(row), (Approx{}).Measure(row); got != want {
		t.Errorf("Measure() = %+v, want %+v", got, want)
	}
}
