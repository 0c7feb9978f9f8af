package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/pielabel/pkg/errors"
	"github.com/matzehuels/pielabel/pkg/pielabel"
)

// Style is the presentation section of the configuration file. Zero fields
// keep the layout defaults.
type Style struct {
	LineWidth    float64   `toml:"line_width" json:"line_width,omitempty"`
	LineDash     []float64 `toml:"line_dash" json:"line_dash,omitempty"`
	MarkerRadius float64   `toml:"marker_radius" json:"marker_radius,omitempty"`
	FontSize     float64   `toml:"font_size" json:"font_size,omitempty"`
	TextFill     string    `toml:"text_fill" json:"text_fill,omitempty"`
	FontFamily   string    `toml:"font_family" json:"font_family,omitempty"`
	// HidePercent drops the second label row for slices without a note.
	HidePercent bool `toml:"hide_percent" json:"hide_percent,omitempty"`
}

// Validate checks the numeric fields and the text color.
func (st Style) Validate() error {
	code := errors.ErrCodeInvalidConfig
	if err := errors.ValidateNonNegative(code, "line_width", st.LineWidth); err != nil {
		return err
	}
	for i, d := range st.LineDash {
		if err := errors.ValidateNonNegative(code, fmt.Sprintf("line_dash[%d]", i), d); err != nil {
			return err
		}
	}
	if err := errors.ValidateNonNegative(code, "marker_radius", st.MarkerRadius); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative(code, "font_size", st.FontSize); err != nil {
		return err
	}
	return errors.ValidateColor(code, "text_fill", st.TextFill)
}

// Options returns the layout options that draw chart labels in this style:
// the slice name above the line and its note or percentage below.
func (st Style) Options() []pielabel.Option {
	text := func(s string) pielabel.TextStyle {
		return pielabel.TextStyle{Text: s, FontSize: st.FontSize, Fill: st.TextFill, FontFamily: st.FontFamily}
	}
	return []pielabel.Option{
		pielabel.WithLabel1(func(d any, _ string) pielabel.TextStyle {
			if datum, ok := d.(Datum); ok {
				return text(datum.Name)
			}
			return text(fmt.Sprint(d))
		}),
		pielabel.WithLabel2(func(d any, _ string) pielabel.TextStyle {
			datum, ok := d.(Datum)
			switch {
			case !ok:
				return pielabel.TextStyle{}
			case datum.Note != "":
				return text(datum.Note)
			case st.HidePercent:
				return pielabel.TextStyle{}
			}
			return text(FormatPercent(datum.Percent))
		}),
		pielabel.WithLineStyle(func(any, string) pielabel.LineStyle {
			return pielabel.LineStyle{Width: st.LineWidth, Dash: st.LineDash}
		}),
		pielabel.WithAnchorStyle(func(any, string) pielabel.MarkerStyle {
			return pielabel.MarkerStyle{Radius: st.MarkerRadius}
		}),
	}
}

// FormatPercent renders a share in [0, 1] as a percentage with at most one
// decimal.
func FormatPercent(share float64) string {
	return strconv.FormatFloat(math.Round(share*1000)/10, 'f', -1, 64) + "%"
}
