package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pielabel/pkg/pipeline"
	"github.com/matzehuels/pielabel/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	layout  layoutFlags
	output  string  // output file (single format) or base path
	formats string  // comma-separated output formats
	scale   float64 // raster scale for png
	title   string  // overrides the chart title
	noCache bool    // disable caching
	refresh bool    // recompute even when cached
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [chart]",
		Short: "Lay out pie chart labels and write SVG, PNG, PDF or JSON",
		Long: `Lay out the callout labels of a pie chart document and render the result.

The chart is read from JSON or TOML, chosen by file extension. By default
labels that do not fit are stacked down each side of the canvas; with
--skip-overlap, labels that would overlap an earlier one are hidden instead.`,
		Example: `  pielabel render sales.json
  pielabel render sales.toml -f svg,png -o out/sales
  pielabel render sales.json --skip-overlap --line-height 24`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeChartFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.layout.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json, pdf (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "raster scale for png output")
	cmd.Flags().StringVar(&opts.title, "title", "", "override the chart title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	formats := pipeline.DefaultFormats
	if opts.formats != "" {
		f, err := render.ParseFormats(opts.formats)
		if err != nil {
			return err
		}
		formats = f
	}

	cfg, err := opts.layout.load(cmd)
	if err != nil {
		return err
	}
	spec, err := opts.layout.loadChart(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(formatNames(formats), ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Chart:   spec,
		Layout:  &cfg.Layout,
		Style:   cfg.Style,
		Formats: formats,
		Scale:   opts.scale,
		Title:   opts.title,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, formats, outputBase(opts.output, input, len(formats)))
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	if result.Stats.Truncated > 0 && !cfg.Layout.SkipOverlapLabels {
		printWarning("%d labels did not fit the canvas height", result.Stats.Truncated)
		printNextStep("Try hiding overlaps instead", fmt.Sprintf("%s render %s --skip-overlap", appName, input))
	}
	return nil
}

func formatNames(formats []render.Format) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// outputBase returns the path artifacts are written to, without extension
// unless output names a single file explicitly.
func outputBase(output, input string, n int) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if n > 1 {
		ext := filepath.Ext(output)
		if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// artifactPath joins the base path and a format extension. A base that
// already carries the format's extension is used as is.
func artifactPath(base string, f render.Format) string {
	if strings.EqualFold(filepath.Ext(base), f.Ext()) {
		return base
	}
	return base + f.Ext()
}

// writeArtifacts writes each artifact in format order and returns the paths.
func writeArtifacts(artifacts map[render.Format][]byte, formats []render.Format, base string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := artifactPath(base, f)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

