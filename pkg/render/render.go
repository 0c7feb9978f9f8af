package render

import (
	"math"

	"github.com/matzehuels/pielabel/pkg/errors"
	"github.com/matzehuels/pielabel/pkg/geom"
	"github.com/matzehuels/pielabel/pkg/pielabel"
)

// Pie is the chart drawn beneath the labels.
type Pie struct {
	Center      geom.Point
	Radius      float64
	InnerRadius float64
	Slices      []pielabel.Slice
}

// PieFromInput returns the pie of a layout input. innerRadius turns it
// into a donut.
func PieFromInput(in pielabel.Input, innerRadius float64) *Pie {
	return &Pie{Center: in.Center, Radius: in.Radius, InnerRadius: innerRadius, Slices: in.Slices}
}

// Option configures every sink.
type Option func(*renderer)

type renderer struct {
	pie          *Pie
	title        string
	background   string
	scale        float64
	embeddedFont bool
}

func WithPie(p *Pie) Option          { return func(r *renderer) { r.pie = p } }
func WithTitle(t string) Option      { return func(r *renderer) { r.title = t } }
func WithBackground(c string) Option { return func(r *renderer) { r.background = c } }
func WithEmbeddedFont() Option       { return func(r *renderer) { r.embeddedFont = true } }

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{scale: 2.0, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render produces the artifact for f.
func Render(f Format, l pielabel.Layout, opts ...Option) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(l, opts...), nil
	case FormatJSON:
		return RenderJSON(l, opts...)
	case FormatPNG:
		return RenderPNG(l, opts...)
	case FormatPDF:
		return RenderPDF(l, opts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}

// fullTurnEps treats a slice within this of a full turn as a whole disc.
const fullTurnEps = 1e-9

// wedge is a slice with degenerate spans removed.
type wedge struct {
	start, end float64
	color      string
	whole      bool
}

func (p *Pie) wedges() []wedge {
	var out []wedge
	for _, s := range p.Slices {
		span := s.EndAngle - s.StartAngle
		if span <= 0 || math.IsNaN(span) {
			continue
		}
		out = append(out, wedge{
			start: s.StartAngle,
			end:   s.EndAngle,
			color: s.Color,
			whole: span >= 2*math.Pi-fullTurnEps,
		})
	}
	return out
}
