package pielabel

import (
	"fmt"

	"github.com/matzehuels/pielabel/pkg/geom"
)

// Slice is one pie sector as supplied by the chart's coordinate system.
// Angles are in radians; EndAngle may be smaller than StartAngle when the
// sector wraps past zero.
type Slice struct {
	StartAngle float64
	EndAngle   float64
	Datum      any
	Color      string
}

// Input is everything a layout pass needs from the chart.
type Input struct {
	Center geom.Point
	Radius float64
	Width  float64
	Height float64
	Slices []Slice
}

// Side is the half-plane a label is placed in.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// MarshalText encodes the side as "left" or "right".
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes "left" or "right".
func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "left":
		*s = Left
	case "right":
		*s = Right
	default:
		return fmt.Errorf("invalid side %q", b)
	}
	return nil
}

// Align is the horizontal anchor of a text row.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Baseline is the vertical anchor of a text row relative to its Y.
type Baseline string

const (
	// BaselineBottom puts the text above Y.
	BaselineBottom Baseline = "bottom"
	// BaselineTop puts the text below Y.
	BaselineTop Baseline = "top"
)

// TextRow is a single line of label text. X and Y are only meaningful once
// the row has been placed.
type TextRow struct {
	Text       string   `json:"text"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Align      Align    `json:"align"`
	Baseline   Baseline `json:"baseline"`
	FontSize   float64  `json:"font_size"`
	Fill       string   `json:"fill"`
	FontFamily string   `json:"font_family,omitempty"`
}

// Measurer reports the bounding box of a positioned text row.
type Measurer interface {
	Measure(row TextRow) geom.Rect
}

// MeasureFunc adapts a function to [Measurer].
type MeasureFunc func(row TextRow) geom.Rect

// Measure calls f(row).
func (f MeasureFunc) Measure(row TextRow) geom.Rect { return f(row) }

// BoxFor returns the box a row of the given text extent occupies once its
// alignment and baseline are applied at (row.X, row.Y).
func BoxFor(row TextRow, width, height float64) geom.Rect {
	r := geom.Rect{MinX: row.X, MaxX: row.X + width, MinY: row.Y, MaxY: row.Y + height}
	if row.Align == AlignRight {
		r.MinX, r.MaxX = row.X-width, row.X
	}
	if row.Baseline == BaselineBottom {
		r.MinY, r.MaxY = row.Y-height, row.Y
	}
	return r
}

// Label is the working descriptor for one slice during a layout pass.
// Y starts at Inflection.Y and is rewritten by the stacker.
type Label struct {
	Anchor     geom.Point
	Inflection geom.Point
	Side       Side
	Percent    float64
	Y          float64
	Datum      any
	Color      string
	// Rows holds the styled but unplaced text rows.
	Rows []TextRow

	index int
}

// Index returns the position of the label's slice in the input.
func (l *Label) Index() int { return l.index }

// LineStyle styles a connector polyline.
type LineStyle struct {
	Stroke string    `json:"stroke"`
	Width  float64   `json:"width"`
	Dash   []float64 `json:"dash,omitempty"`
}

// MarkerStyle styles the anchor circle.
type MarkerStyle struct {
	Fill   string  `json:"fill"`
	Radius float64 `json:"radius"`
}

// TextStyle styles one text row. An empty Text suppresses the row.
type TextStyle struct {
	Text       string
	FontSize   float64
	Fill       string
	FontFamily string
}

// Style callbacks receive the slice datum and color.
type (
	LineStyleFunc   func(datum any, color string) LineStyle
	MarkerStyleFunc func(datum any, color string) MarkerStyle
	TextStyleFunc   func(datum any, color string) TextStyle
)

// Mode records which placement strategy produced a layout.
type Mode string

const (
	ModeStack       Mode = "stack"
	ModeSkipOverlap Mode = "skip-overlap"
)

// Connector is the routed polyline from anchor to text.
type Connector struct {
	Points []geom.Point `json:"points"`
	Style  LineStyle    `json:"style"`
}

// Marker is the small circle drawn at the anchor point.
type Marker struct {
	Center geom.Point  `json:"center"`
	Style  MarkerStyle `json:"style"`
}

// DrawnLabel is a label that survived placement, with everything a sink
// needs to draw it.
type DrawnLabel struct {
	Datum      any        `json:"data"`
	Color      string     `json:"color"`
	Side       Side       `json:"side"`
	Anchor     geom.Point `json:"anchor"`
	Inflection geom.Point `json:"inflection"`
	Y          float64    `json:"y"`
	Rows       []TextRow  `json:"rows"`
	Box        geom.Rect  `json:"box"`
	Connector  Connector  `json:"connector"`
	Marker     Marker     `json:"marker"`
}

// Layout is the result of one pass. Labels are in draw order.
type Layout struct {
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Mode      Mode         `json:"mode"`
	Labels    []DrawnLabel `json:"labels"`
	Truncated int          `json:"truncated,omitempty"`
	Skipped   int          `json:"skipped,omitempty"`
}
