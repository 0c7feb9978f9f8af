package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pielabel/pkg/errors"
	"github.com/matzehuels/pielabel/pkg/geom"
	"github.com/matzehuels/pielabel/pkg/pielabel"
)

// StartAngle is the angle of the first slice edge (twelve o'clock).
const StartAngle = -math.Pi / 2

// DefaultRadiusRatio sizes the pie relative to the shorter canvas side when
// no radius is given, leaving room for labels on both sides.
const DefaultRadiusRatio = 0.3

// Palette is cycled through for slices without a color.
var Palette = []string{
	"#1890ff", "#2fc25b", "#facc14", "#223273",
	"#8543e0", "#13c2c2", "#3436c7", "#f04864",
}

// Format is a chart document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension. Unknown extensions
// are read as JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// SliceSpec is one slice of the chart document.
type SliceSpec struct {
	Name  string  `json:"name" toml:"name"`
	Value float64 `json:"value" toml:"value"`
	Color string  `json:"color,omitempty" toml:"color"`
	// Note replaces the percentage on the second label row.
	Note string `json:"note,omitempty" toml:"note"`
}

// Spec is a pie chart document.
type Spec struct {
	Title  string  `json:"title,omitempty" toml:"title"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
	// Center defaults to the middle of the canvas.
	Center *geom.Point `json:"center,omitempty" toml:"center"`
	// Radius defaults to DefaultRadiusRatio of the shorter canvas side.
	Radius      float64     `json:"radius,omitempty" toml:"radius"`
	InnerRadius float64     `json:"inner_radius,omitempty" toml:"inner_radius"`
	Slices      []SliceSpec `json:"slices" toml:"slices"`
}

// Datum is the data record attached to every slice.
type Datum struct {
	Index   int     `json:"index"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
	Note    string  `json:"note,omitempty"`
}

// Decode parses a chart document and fills in defaults. The result is not
// validated.
func Decode(r io.Reader, format Format) (*Spec, error) {
	var s Spec
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidChart, err, "decode json chart")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidChart, err, "decode toml chart")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown chart format %q", format)
	}
	s.Normalize()
	return &s, nil
}

// Parse decodes data and validates the result.
func Parse(data []byte, format Format) (*Spec, error) {
	s, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads and validates the chart document at path.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart %s", path)
		}
		return nil, fmt.Errorf("read chart %s: %w", path, err)
	}
	s, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Normalize fills in the center, radius and slice colors when absent.
func (s *Spec) Normalize() {
	if s.Center == nil {
		s.Center = &geom.Point{X: s.Width / 2, Y: s.Height / 2}
	}
	if s.Radius == 0 {
		s.Radius = min(s.Width, s.Height) * DefaultRadiusRatio
	}
	for i := range s.Slices {
		if s.Slices[i].Color == "" {
			s.Slices[i].Color = Palette[i%len(Palette)]
		}
	}
}

// Validate checks the canvas, the radii and every slice.
func (s *Spec) Validate() error {
	code := errors.ErrCodeInvalidChart
	checks := []error{
		errors.ValidatePositive(code, "width", s.Width),
		errors.ValidatePositive(code, "height", s.Height),
		errors.ValidatePositive(code, "radius", s.Radius),
		errors.ValidateNonNegative(code, "inner_radius", s.InnerRadius),
	}
	if s.Center != nil {
		checks = append(checks,
			errors.ValidateFinite(code, "center.x", s.Center.X),
			errors.ValidateFinite(code, "center.y", s.Center.Y))
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if s.InnerRadius >= s.Radius {
		return errors.New(code, "inner_radius %v must be smaller than radius %v", s.InnerRadius, s.Radius)
	}
	for i, sl := range s.Slices {
		name := fmt.Sprintf("slices[%d]", i)
		if err := errors.ValidateNonNegative(code, name+".value", sl.Value); err != nil {
			return err
		}
		if err := errors.ValidateColor(code, name+".color", sl.Color); err != nil {
			return err
		}
	}
	return nil
}

// Total returns the sum of all slice values.
func (s *Spec) Total() float64 {
	var t float64
	for _, sl := range s.Slices {
		t += sl.Value
	}
	return t
}

// Datum returns the data record of slice i.
func (s *Spec) Datum(i int) Datum { return s.datum(i, s.Total()) }

func (s *Spec) datum(i int, total float64) Datum {
	sl := s.Slices[i]
	d := Datum{Index: i, Name: sl.Name, Value: sl.Value, Note: sl.Note}
	if total > 0 {
		d.Percent = sl.Value / total
	}
	return d
}

// Input converts the chart into layout input. Slices are laid out clockwise
// from StartAngle; when all values are zero every slice is empty.
func (s *Spec) Input() pielabel.Input {
	in := pielabel.Input{
		Center: s.center(),
		Radius: s.Radius,
		Width:  s.Width,
		Height: s.Height,
	}
	total := s.Total()
	angle := StartAngle
	for i, sl := range s.Slices {
		span := 0.0
		if total > 0 {
			span = 2 * math.Pi * sl.Value / total
		}
		in.Slices = append(in.Slices, pielabel.Slice{
			StartAngle: angle,
			EndAngle:   angle + span,
			Datum:      s.datum(i, total),
			Color:      sl.Color,
		})
		angle += span
	}
	return in
}

func (s *Spec) center() geom.Point {
	if s.Center == nil {
		return geom.Point{X: s.Width / 2, Y: s.Height / 2}
	}
	return *s.Center
}
