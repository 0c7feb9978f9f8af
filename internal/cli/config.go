package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/pielabel/pkg/cache"
	"github.com/matzehuels/pielabel/pkg/chart"
	"github.com/matzehuels/pielabel/pkg/errors"
	"github.com/matzehuels/pielabel/pkg/pielabel"
)

// fileConfig is the layout of pielabel.toml.
type fileConfig struct {
	Layout pielabel.Config `toml:"layout"`
	Style  chart.Style     `toml:"style"`
	Cache  cacheConfig     `toml:"cache"`
}

type cacheConfig struct {
	Dir       string   `toml:"dir,omitempty"`
	RedisAddr string   `toml:"redis_addr,omitempty"`
	TTL       duration `toml:"ttl,omitempty"`
	Prefix    string   `toml:"prefix,omitempty"`
}

// keyer namespaces cache keys when a prefix is set, so deployments can
// share one redis.
func (c cacheConfig) keyer() cache.Keyer {
	if c.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Prefix)
}

// duration reads "168h"-style strings.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func defaultFileConfig() fileConfig {
	return fileConfig{Layout: pielabel.DefaultConfig()}
}

// loadConfig reads path, or ./pielabel.toml when path is empty and the file
// exists. Keys missing from the file keep their defaults. It returns the
// file actually read, empty when none was.
func loadConfig(path string) (fileConfig, string, error) {
	cfg := defaultFileConfig()
	if path == "" {
		if _, err := os.Stat(configFile); err != nil {
			return cfg, "", nil
		}
		path = configFile
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return cfg, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, "", errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, "", err
	}
	return cfg, path, nil
}

func (c fileConfig) validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	return c.Style.Validate()
}

func (c fileConfig) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Layout Flags
// =============================================================================

// layoutFlags are the layout settings that can be given on the command line.
// Set flags override the config file.
type layoutFlags struct {
	configPath       string
	skipOverlap      bool
	lineHeight       float64
	padding          float64
	adjustOffset     float64
	anchorOffset     float64
	inflectionOffset float64
	trigger          string
	width            float64
	height           float64
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	def := pielabel.DefaultConfig()
	fs.StringVar(&f.configPath, "config", "", "config file (default ./"+configFile+" if present)")
	fs.BoolVar(&f.skipOverlap, "skip-overlap", false, "hide overlapping labels instead of stacking them")
	fs.Float64Var(&f.lineHeight, "line-height", def.LineHeight, "label slot height when stacking")
	fs.Float64Var(&f.padding, "padding", def.Padding, "gap between label text and the canvas edge")
	fs.Float64Var(&f.adjustOffset, "adjust-offset", def.AdjustOffset, "horizontal run of the connector for pushed labels")
	fs.Float64Var(&f.anchorOffset, "anchor-offset", def.AnchorOffset, "distance from the pie edge to the anchor point")
	fs.Float64Var(&f.inflectionOffset, "inflection-offset", def.InflectionOffset, "distance from the pie edge to the connector bend")
	fs.StringVar(&f.trigger, "trigger", def.TriggerOn, "pointer event name labels respond to")
	fs.Float64Var(&f.width, "width", 0, "override the chart canvas width")
	fs.Float64Var(&f.height, "height", 0, "override the chart canvas height")
}

// load reads the config file and applies the flags that were set.
func (f *layoutFlags) load(cmd *cobra.Command) (fileConfig, error) {
	cfg, path, err := loadConfig(f.configPath)
	if err != nil {
		return cfg, err
	}
	if path != "" {
		loggerFromContext(cmd.Context()).Debug("loaded config", "path", path)
	}

	fs := cmd.Flags()
	if fs.Changed("skip-overlap") {
		cfg.Layout.SkipOverlapLabels = f.skipOverlap
	}
	if fs.Changed("line-height") {
		cfg.Layout.LineHeight = f.lineHeight
	}
	if fs.Changed("padding") {
		cfg.Layout.Padding = f.padding
	}
	if fs.Changed("adjust-offset") {
		cfg.Layout.AdjustOffset = f.adjustOffset
	}
	if fs.Changed("anchor-offset") {
		cfg.Layout.AnchorOffset = f.anchorOffset
	}
	if fs.Changed("inflection-offset") {
		cfg.Layout.InflectionOffset = f.inflectionOffset
	}
	if fs.Changed("trigger") {
		cfg.Layout.TriggerOn = f.trigger
	}
	return cfg, cfg.validate()
}

// loadChart reads a chart document and applies canvas overrides.
func (f *layoutFlags) loadChart(path string) (*chart.Spec, error) {
	spec, err := chart.Load(path)
	if err != nil {
		return nil, err
	}
	if f.width > 0 {
		spec.Width = f.width
	}
	if f.height > 0 {
		spec.Height = f.height
	}
	return spec, nil
}

// =============================================================================
// Config Command
// =============================================================================

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	var flags layoutFlags
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default " + configFile,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			data, err := defaultFileConfig().encode()
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
