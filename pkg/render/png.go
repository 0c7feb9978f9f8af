package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"

	"github.com/matzehuels/pielabel/pkg/errors"
	"github.com/matzehuels/pielabel/pkg/fonts"
	"github.com/matzehuels/pielabel/pkg/pielabel"
)

// RenderPNG rasterizes the layout with gg. Coordinates are multiplied by
// the scale (default 2.0); text uses the embedded font at the scaled size.
func RenderPNG(l pielabel.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s := r.scale
	w, h := int(l.Width*s+0.5), int(l.Height*s+0.5)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas %vx%v is empty", l.Width, l.Height)
	}

	dc := gg.NewContext(w, h)
	if r.background != "" {
		setColor(dc, r.background)
		dc.Clear()
	}
	if r.pie != nil {
		drawPie(dc, r.pie, s)
	}

	faces := faceSet{}
	defer faces.Close()
	fontSize := 0.0
	for _, d := range l.Labels {
		st := d.Connector.Style
		setColor(dc, st.Stroke)
		dc.SetLineWidth(st.Width * s)
		dash := make([]float64, len(st.Dash))
		for i, v := range st.Dash {
			dash[i] = v * s
		}
		dc.SetDash(dash...)
		for i, p := range d.Connector.Points {
			if i == 0 {
				dc.MoveTo(p.X*s, p.Y*s)
			} else {
				dc.LineTo(p.X*s, p.Y*s)
			}
		}
		dc.Stroke()
		dc.SetDash()

		m := d.Marker
		setColor(dc, m.Style.Fill)
		dc.DrawCircle(m.Center.X*s, m.Center.Y*s, m.Style.Radius*s)
		dc.Fill()

		for _, row := range d.Rows {
			if row.FontSize != fontSize {
				face, err := faces.get(row.FontSize * s)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font face")
				}
				dc.SetFontFace(face)
				fontSize = row.FontSize
			}
			ax, ay := 0.0, 1.0
			if row.Align == pielabel.AlignRight {
				ax = 1
			}
			if row.Baseline == pielabel.BaselineBottom {
				ay = 0
			}
			setColor(dc, row.Fill)
			dc.DrawStringAnchored(row.Text, row.X*s, row.Y*s, ax, ay)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// faceSet holds the faces opened during one RenderPNG call, one per size.
type faceSet map[float64]font.Face

func (fs faceSet) get(size float64) (font.Face, error) {
	if f, ok := fs[size]; ok {
		return f, nil
	}
	f, err := fonts.NewFace(size)
	if err != nil {
		return nil, err
	}
	fs[size] = f
	return f, nil
}

// Close closes every face in the set.
func (fs faceSet) Close() error {
	for size, f := range fs {
		f.Close()
		delete(fs, size)
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

func drawPie(dc *gg.Context, p *Pie, s float64) {
	cx, cy, r, ir := p.Center.X*s, p.Center.Y*s, p.Radius*s, p.InnerRadius*s
	for _, w := range p.wedges() {
		dc.NewSubPath()
		if ir > 0 {
			dc.DrawArc(cx, cy, r, w.start, w.end)
			dc.DrawArc(cx, cy, ir, w.end, w.start)
		} else {
			dc.MoveTo(cx, cy)
			dc.DrawArc(cx, cy, r, w.start, w.end)
		}
		dc.ClosePath()
		setColor(dc, w.color)
		dc.Fill()
	}
}

// setColor accepts hex colors and CSS keywords. Anything else is drawn in
// the default text gray.
func setColor(dc *gg.Context, s string) {
	switch c, ok := colornames.Map[strings.ToLower(s)]; {
	case hexColor.MatchString(s):
		dc.SetHexColor(s)
	case ok:
		dc.SetColor(c)
	default:
		dc.SetHexColor(pielabel.DefaultTextFill)
	}
}
