package render

import (
	"encoding/json"

	"github.com/matzehuels/pielabel/pkg/geom"
	"github.com/matzehuels/pielabel/pkg/pielabel"
)

type jsonOutput struct {
	Title     string                `json:"title,omitempty"`
	Width     float64               `json:"width"`
	Height    float64               `json:"height"`
	Mode      pielabel.Mode         `json:"mode"`
	Truncated int                   `json:"truncated"`
	Skipped   int                   `json:"skipped"`
	Pie       *jsonPie              `json:"pie,omitempty"`
	Labels    []pielabel.DrawnLabel `json:"labels"`
}

type jsonPie struct {
	Center      geom.Point  `json:"center"`
	Radius      float64     `json:"radius"`
	InnerRadius float64     `json:"inner_radius,omitempty"`
	Slices      []jsonSlice `json:"slices"`
}

type jsonSlice struct {
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Color      string  `json:"color"`
	Data       any     `json:"data"`
}

// RenderJSON encodes the layout, and the pie when given, as indented JSON.
func RenderJSON(l pielabel.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	out := jsonOutput{
		Title:     r.title,
		Width:     l.Width,
		Height:    l.Height,
		Mode:      l.Mode,
		Truncated: l.Truncated,
		Skipped:   l.Skipped,
		Labels:    l.Labels,
	}
	if out.Labels == nil {
		out.Labels = []pielabel.DrawnLabel{}
	}
	if p := r.pie; p != nil {
		out.Pie = &jsonPie{Center: p.Center, Radius: p.Radius, InnerRadius: p.InnerRadius, Slices: []jsonSlice{}}
		for _, s := range p.Slices {
			out.Pie.Slices = append(out.Pie.Slices, jsonSlice{
				StartAngle: s.StartAngle, EndAngle: s.EndAngle, Color: s.Color, Data: s.Datum,
			})
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
