package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pielabel/pkg/cache"
	"github.com/matzehuels/pielabel/pkg/measure"
	"github.com/matzehuels/pielabel/pkg/observability"
	"github.com/matzehuels/pielabel/pkg/pielabel"
	"github.com/matzehuels/pielabel/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, the measurer and the
// logger. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Measurer sizes label text; MeasurerName is part of every layout key.
	Measurer     pielabel.Measurer
	MeasurerName string

	// TTL overrides the cache lifetime of layouts and artifacts when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Text is measured with the embedded Go font.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:        c,
		Keyer:        keyer,
		Logger:       logger,
		Measurer:     measure.NewFace(),
		MeasurerName: "go-regular",
	}
}

// Execute runs the layout and render stages with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	result := &Result{}
	layoutStart := time.Now()
	in, layout, key, hit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Input, result.Layout, result.LayoutKey = in, layout, key
	result.CacheInfo.LayoutHit = hit
	result.Stats = Stats{
		Slices:     len(in.Slices),
		Drawn:      len(layout.Labels),
		Truncated:  layout.Truncated,
		Skipped:    layout.Skipped,
		LayoutTime: time.Since(layoutStart),
	}

	logger.Info("computed layout",
		"mode", layout.Mode,
		"labels", len(layout.Labels),
		"truncated", layout.Truncated,
		"skipped", layout.Skipped,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, in, layout, key, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout for the chart, or loads it from
// cache, and returns the layout input, the layout, its cache key and
// whether it was a hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (pielabel.Input, pielabel.Layout, string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pielabel.Input{}, pielabel.Layout{}, "", false, err
	}
	in := opts.Chart.Input()

	chartHash, err := cache.HashJSON(opts.Chart)
	if err != nil {
		return in, pielabel.Layout{}, "", false, fmt.Errorf("hash chart: %w", err)
	}
	keyOpts, err := opts.LayoutKeyOpts(r.MeasurerName)
	if err != nil {
		return in, pielabel.Layout{}, "", false, fmt.Errorf("hash style: %w", err)
	}
	key := r.Keyer.LayoutKey(chartHash, keyOpts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached pielabel.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return in, cached, key, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	layout := r.compute(ctx, in, opts.Config())

	if data, err := json.Marshal(layout); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLLayout)); err != nil {
			r.logger(opts).Warn("cache layout", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return in, layout, key, false, nil
}

func (r *Runner) compute(ctx context.Context, in pielabel.Input, cfg pielabel.Config) pielabel.Layout {
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(in.Slices))
	start := time.Now()

	layout := pielabel.Compute(in, r.Measurer, cfg)

	hooks.OnLayoutComplete(ctx, layoutStats(in, layout), time.Since(start))
	return layout
}

// RenderWithCacheInfo renders every requested format, reusing cached
// artifacts when all of them are present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, in pielabel.Input, layout pielabel.Layout, layoutKey string, opts Options) (map[render.Format][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[render.Format][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, f := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(f)))
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[f] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	renderOpts := opts.RenderOptions(in)
	hooks := observability.Layout()
	for _, f := range opts.Formats {
		hooks.OnRenderStart(ctx, string(f))
		start := time.Now()
		data, err := render.Render(f, layout, renderOpts...)
		hooks.OnRenderComplete(ctx, string(f), len(data), time.Since(start), err)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", f, err)
		}
		artifacts[f] = data

		if err := r.Cache.Set(ctx, r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(f)), data, r.ttl(cache.TTLArtifact)); err != nil {
			r.logger(opts).Warn("cache artifact", "format", f, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

// Hit lays out the chart, binds a controller to an in-process event source
// and delivers one pointer event at (x, y) with the configured trigger. The
// result is what OnClick would receive in an interactive host.
func (r *Runner) Hit(ctx context.Context, opts Options, x, y float64) (pielabel.ClickEvent, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pielabel.ClickEvent{}, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	var got pielabel.ClickEvent
	cfg := opts.Config()
	cfg.OnClick = func(ev pielabel.ClickEvent) { got = ev }
	trigger := cfg.TriggerOn
	if trigger == "" {
		trigger = pielabel.DefaultTrigger
	}

	ctrl := pielabel.NewController(cfg, r.Measurer, pielabel.WithLogger(logger))
	in := opts.Chart.Input()
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(in.Slices))
	start := time.Now()
	layout := ctrl.Render(in)
	hooks.OnLayoutComplete(ctx, layoutStats(in, layout), time.Since(start))

	src := pielabel.NewEmitter()
	h := ctrl.Bind(src, opts.Chart.Locator())
	defer ctrl.Unbind(h)

	if n := src.Emit(trigger, x, y); n != 1 {
		return got, fmt.Errorf("pointer event reached %d listeners", n)
	}
	logger.Debug("resolved pointer event", "x", x, "y", y, "source", got.Source)
	return got, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if c, ok := r.Measurer.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func layoutStats(in pielabel.Input, l pielabel.Layout) observability.LayoutStats {
	return observability.LayoutStats{
		Mode:      string(l.Mode),
		Slices:    len(in.Slices),
		Drawn:     len(l.Labels),
		Truncated: l.Truncated,
		Skipped:   l.Skipped,
	}
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
