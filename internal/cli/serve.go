package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineagemap/pkg/cache"
	"github.com/matzehuels/lineagemap/pkg/config"
	"github.com/matzehuels/lineagemap/pkg/pipeline"
	"github.com/matzehuels/lineagemap/pkg/server"
	"github.com/matzehuels/lineagemap/pkg/store"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Storage and cache backends come from the config file and the environment
(LINEAGEMAP_ADDR, DATA_DIR, MONGO_URI, MONGO_DB, REDIS_ADDR). A .env file in
the working directory is loaded first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	st, err := c.openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cc, err := c.newCache(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	srv := server.New(server.Options{
		Store:        store.NewCached(st, cc, storeKeyer(cfg)),
		Samples:      newSamples(cfg),
		Runner:       runner,
		Logger:       c.Logger,
		Layout:       cfg.Layout,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	printInfo("Serving on %s (store: %s, cache: %s)", StyleHighlight.Render(cfg.Server.Addr), st.Name(), cfg.Cache.Backend)
	return srv.ListenAndServe(ctx, cfg.Server)
}

// storeKeyer scopes document cache keys to the storage location, so servers
// backed by different data directories or databases can share one cache.
func storeKeyer(cfg config.Config) cache.Keyer {
	location := cfg.Storage.MongoURI + "/" + cfg.Storage.MongoDB
	if cfg.Storage.Backend != config.StorageMongo {
		location = cfg.Storage.DataDir
		if abs, err := filepath.Abs(location); err == nil {
			location = abs
		}
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), cache.Hash([]byte(location))[:12]+":")
}
