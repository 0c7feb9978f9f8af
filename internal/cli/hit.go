package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pielabel/pkg/chart"
	"github.com/matzehuels/pielabel/pkg/pielabel"
	"github.com/matzehuels/pielabel/pkg/pipeline"
)

// hitCommand creates the hit command, which answers "what would a tap at
// (x, y) select" for a chart.
func (c *CLI) hitCommand() *cobra.Command {
	var (
		flags  layoutFlags
		x, y   float64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "hit [chart] --x X --y Y",
		Short: "Resolve a pointer event against a laid out chart",
		Long: `Lay out the chart, listen for pointer events the way an interactive host
does, deliver one event at (x, y) and print what was selected.

Labels take priority over slices. A miss prints no datum.`,
		Example: `  pielabel hit sales.json --x 310 --y 120
  pielabel hit sales.json --x 200 --y 150 --json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeChartFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			spec, err := flags.loadChart(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, cfg, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			ev, err := runner.Hit(ctx, pipeline.Options{
				Chart:  spec,
				Layout: &cfg.Layout,
				Style:  cfg.Style,
				Logger: logger,
			}, x, y)
			if err != nil {
				return err
			}
			prog.done("Resolved pointer event", "x", x, "y", y, "source", ev.Source)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ev)
			}
			printHit(ev)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().Float64Var(&x, "x", 0, "pointer x in canvas coordinates")
	cmd.Flags().Float64Var(&y, "y", 0, "pointer y in canvas coordinates")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the click event as JSON")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func printHit(ev pielabel.ClickEvent) {
	if ev.Data == nil {
		printInfo("Nothing at (%g, %g)", ev.X, ev.Y)
		return
	}
	printSuccess("Hit %s at (%g, %g)", ev.Source, ev.X, ev.Y)
	d, ok := ev.Data.(chart.Datum)
	if !ok {
		printKeyValue("datum", fmt.Sprint(ev.Data))
		return
	}
	printKeyValue("slice", fmt.Sprintf("#%d %s", d.Index, d.Name))
	printKeyValue("value", fmt.Sprintf("%g", d.Value))
	printKeyValue("share", chart.FormatPercent(d.Percent))
	if d.Note != "" {
		printKeyValue("note", d.Note)
	}
}
