package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pielabel/internal/server"
	"github.com/matzehuels/pielabel/pkg/cache"
	"github.com/matzehuels/pielabel/pkg/httputil"
	"github.com/matzehuels/pielabel/pkg/pipeline"
)

// Redis connection attempts made at startup before giving up.
const (
	redisAttempts = 5
	redisDelay    = 500 * time.Millisecond
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		redisAddr  string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

  POST /v1/render?format=svg|png|json|pdf   render a chart document
  POST /v1/hit                              resolve a pointer event
  GET  /healthz                             liveness probe

Layouts and artifacts are cached in Redis when --redis is given, otherwise
in the local cache directory.`,
		Example: `  pielabel serve --addr :8080
  pielabel serve --redis localhost:6379`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, path, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if path != "" {
				logger.Info("loaded config", "path", path)
			}
			if redisAddr != "" {
				cfg.Cache.RedisAddr = redisAddr
			}

			store, err := connectCache(ctx, cfg.Cache, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, cfg.Cache.keyer(), c.Logger)
			runner.TTL = cfg.Cache.TTL.Duration
			defer runner.Close()

			srv := server.New(runner, c.Logger,
				server.WithLayout(cfg.Layout),
				server.WithStyle(cfg.Style))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ./"+configFile+" if present)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the shared cache (host:port or redis:// URL)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// connectCache opens the configured cache, retrying redis while it comes up.
func connectCache(ctx context.Context, cfg cacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.RedisAddr == "" {
		return newCache(ctx, cfg, noCache)
	}

	logger := loggerFromContext(ctx)
	var store cache.Cache
	err := httputil.Retry(ctx, redisAttempts, redisDelay, func() error {
		c, err := openRedis(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis not reachable", "addr", cfg.RedisAddr, "error", err)
			return &httputil.RetryableError{Err: err}
		}
		store = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("using redis cache", "addr", cfg.RedisAddr)
	return store, nil
}
