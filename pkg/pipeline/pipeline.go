// Package pipeline runs chart → layout → artifacts for the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline consists of two cached stages:
//
//  1. Layout: convert the chart into layout input and place the labels
//  2. Render: turn the layout into SVG, PNG, JSON or PDF
//
// Layouts are cached under a key derived from the chart document and every
// layout and style setting; artifacts under the layout key plus the format.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Chart:   spec,
//	    Formats: []render.Format{render.FormatSVG},
//	})
//	svg := result.Artifacts[render.FormatSVG]
//
// [Runner.Hit] resolves a pointer position against a freshly laid out chart
// the same way an interactive host would.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pielabel/pkg/cache"
	"github.com/matzehuels/pielabel/pkg/chart"
	"github.com/matzehuels/pielabel/pkg/errors"
	"github.com/matzehuels/pielabel/pkg/pielabel"
	"github.com/matzehuels/pielabel/pkg/render"
)

// DefaultScale is the raster scale used when none is given.
const DefaultScale = 2.0

// DefaultFormats is rendered when no format is requested.
var DefaultFormats = []render.Format{render.FormatSVG}

// Options contains all configuration for one pipeline run.
type Options struct {
	Chart *chart.Spec `json:"chart"`
	// Layout defaults to pielabel.DefaultConfig.
	Layout  *pielabel.Config `json:"layout,omitempty"`
	Style   chart.Style      `json:"style"`
	Formats []render.Format  `json:"formats,omitempty"`
	Scale   float64          `json:"scale,omitempty"`
	// Title overrides the chart title in artifacts.
	Title string `json:"title,omitempty"`
	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Input     pielabel.Input
	Layout    pielabel.Layout
	LayoutKey string
	Artifacts map[render.Format][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Slices     int
	Drawn      int
	Truncated  int
	Skipped    int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateAndSetDefaults checks the chart, layout config and style, and
// applies defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Chart == nil {
		return errors.New(errors.ErrCodeInvalidInput, "chart is required")
	}
	o.Chart.Normalize()
	if err := o.Chart.Validate(); err != nil {
		return err
	}
	if o.Layout == nil {
		cfg := pielabel.DefaultConfig()
		o.Layout = &cfg
	}
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	if err := o.Style.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	for _, f := range o.Formats {
		if _, err := render.ParseFormat(string(f)); err != nil {
			return err
		}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Title == "" {
		o.Title = o.Chart.Title
	}
	o.validated = true
	return nil
}

// Config returns the layout config with the style's label callbacks.
func (o *Options) Config() pielabel.Config {
	cfg := pielabel.DefaultConfig()
	if o.Layout != nil {
		cfg = *o.Layout
	}
	for _, opt := range o.Style.Options() {
		opt(&cfg)
	}
	return cfg
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(measurer string) (cache.LayoutKeyOpts, error) {
	styleHash, err := cache.HashJSON(o.Style)
	if err != nil {
		return cache.LayoutKeyOpts{}, err
	}
	cfg := o.Config()
	return cache.LayoutKeyOpts{
		AnchorOffset:     cfg.AnchorOffset,
		InflectionOffset: cfg.InflectionOffset,
		Padding:          cfg.Padding,
		LineHeight:       cfg.LineHeight,
		AdjustOffset:     cfg.AdjustOffset,
		SkipOverlap:      cfg.SkipOverlapLabels,
		StyleHash:        styleHash,
		Measurer:         measurer,
	}, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format render.Format) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: string(format), Title: o.Title}
	if format == render.FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// RenderOptions returns the sink options for the run.
func (o *Options) RenderOptions(in pielabel.Input) []render.Option {
	return []render.Option{
		render.WithPie(render.PieFromInput(in, o.Chart.InnerRadius)),
		render.WithTitle(o.Title),
		render.WithScale(o.Scale),
	}
}
