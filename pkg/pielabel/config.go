package pielabel

import (
	"github.com/matzehuels/pielabel/pkg/errors"
)

// Default layout constants.
const (
	DefaultAnchorOffset     = 5.0
	DefaultInflectionOffset = 15.0
	DefaultPadding          = 10.0
	DefaultLineHeight       = 32.0
	DefaultAdjustOffset     = 15.0
	DefaultTrigger          = "touchstart"
)

// Default styles applied underneath any style callback.
const (
	DefaultFontSize     = 12.0
	DefaultTextFill     = "#808080"
	DefaultLineWidth    = 1.0
	DefaultMarkerRadius = 2.0
)

// Config controls a layout pass and event handling.
//
// Style callbacks and OnClick cannot be expressed in TOML or JSON; they are
// wired in code.
type Config struct {
	// AnchorOffset is the distance from the pie edge to the anchor point.
	AnchorOffset float64 `toml:"anchor_offset" json:"anchor_offset"`
	// InflectionOffset is the distance from the pie edge to the bend.
	InflectionOffset float64 `toml:"inflection_offset" json:"inflection_offset"`
	// Padding is the gap between text and the canvas edge.
	Padding float64 `toml:"padding" json:"padding"`
	// LineHeight is the height of one label row slot when stacking.
	LineHeight float64 `toml:"line_height" json:"line_height"`
	// AdjustOffset is the horizontal run of the dogleg for labels pushed down.
	AdjustOffset float64 `toml:"adjust_offset" json:"adjust_offset"`
	// SkipOverlapLabels selects the overlap-skip strategy instead of stacking.
	SkipOverlapLabels bool `toml:"skip_overlap" json:"skip_overlap"`
	// TriggerOn is the pointer event name listened for by Bind.
	TriggerOn string `toml:"trigger_on" json:"trigger_on"`

	LineStyle   LineStyleFunc    `toml:"-" json:"-"`
	AnchorStyle MarkerStyleFunc  `toml:"-" json:"-"`
	Label1      TextStyleFunc    `toml:"-" json:"-"`
	Label2      TextStyleFunc    `toml:"-" json:"-"`
	OnClick     func(ClickEvent) `toml:"-" json:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		AnchorOffset:     DefaultAnchorOffset,
		InflectionOffset: DefaultInflectionOffset,
		Padding:          DefaultPadding,
		LineHeight:       DefaultLineHeight,
		AdjustOffset:     DefaultAdjustOffset,
		TriggerOn:        DefaultTrigger,
	}
}

// Option mutates a Config.
type Option func(*Config)

// NewConfig returns DefaultConfig with opts applied in order.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func WithSkipOverlap(skip bool) Option  { return func(c *Config) { c.SkipOverlapLabels = skip } }
func WithLineHeight(h float64) Option   { return func(c *Config) { c.LineHeight = h } }
func WithPadding(p float64) Option      { return func(c *Config) { c.Padding = p } }
func WithAdjustOffset(a float64) Option { return func(c *Config) { c.AdjustOffset = a } }
func WithTrigger(name string) Option    { return func(c *Config) { c.TriggerOn = name } }

// WithOffsets sets the anchor and inflection offsets.
func WithOffsets(anchor, inflection float64) Option {
	return func(c *Config) { c.AnchorOffset, c.InflectionOffset = anchor, inflection }
}

func WithLabel1(f TextStyleFunc) Option        { return func(c *Config) { c.Label1 = f } }
func WithLabel2(f TextStyleFunc) Option        { return func(c *Config) { c.Label2 = f } }
func WithLineStyle(f LineStyleFunc) Option     { return func(c *Config) { c.LineStyle = f } }
func WithAnchorStyle(f MarkerStyleFunc) Option { return func(c *Config) { c.AnchorStyle = f } }
func WithOnClick(f func(ClickEvent)) Option    { return func(c *Config) { c.OnClick = f } }

// Validate checks the numeric fields. Zero offsets and padding are allowed;
// the line height must be positive.
func (c Config) Validate() error {
	code := errors.ErrCodeInvalidConfig
	checks := []error{
		errors.ValidateNonNegative(code, "anchor_offset", c.AnchorOffset),
		errors.ValidateNonNegative(code, "inflection_offset", c.InflectionOffset),
		errors.ValidateNonNegative(code, "padding", c.Padding),
		errors.ValidatePositive(code, "line_height", c.LineHeight),
		errors.ValidateNonNegative(code, "adjust_offset", c.AdjustOffset),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func (c Config) trigger() string {
	if c.TriggerOn == "" {
		return DefaultTrigger
	}
	return c.TriggerOn
}

func (c Config) lineStyle(datum any, color string) LineStyle {
	s := LineStyle{Stroke: color, Width: DefaultLineWidth}
	if c.LineStyle == nil {
		return s
	}
	o := c.LineStyle(datum, color)
	if o.Stroke != "" {
		s.Stroke = o.Stroke
	}
	if o.Width > 0 {
		s.Width = o.Width
	}
	if len(o.Dash) > 0 {
		s.Dash = o.Dash
	}
	return s
}

func (c Config) markerStyle(datum any, color string) MarkerStyle {
	s := MarkerStyle{Fill: color, Radius: DefaultMarkerRadius}
	if c.AnchorStyle == nil {
		return s
	}
	o := c.AnchorStyle(datum, color)
	if o.Fill != "" {
		s.Fill = o.Fill
	}
	if o.Radius > 0 {
		s.Radius = o.Radius
	}
	return s
}

// textRows builds the unplaced rows for a slice. Row one sits above the
// label's Y, row two below it.
func (c Config) textRows(datum any, color string) []TextRow {
	var rows []TextRow
	add := func(f TextStyleFunc, baseline Baseline) {
		if f == nil {
			return
		}
		s := f(datum, color)
		if s.Text == "" {
			return
		}
		row := TextRow{
			Text:       s.Text,
			Baseline:   baseline,
			FontSize:   DefaultFontSize,
			Fill:       DefaultTextFill,
			FontFamily: s.FontFamily,
		}
		if s.FontSize > 0 {
			row.FontSize = s.FontSize
		}
		if s.Fill != "" {
			row.Fill = s.Fill
		}
		rows = append(rows, row)
	}
	add(c.Label1, BaselineBottom)
	add(c.Label2, BaselineTop)
	return rows
}
