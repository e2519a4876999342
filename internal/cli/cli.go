// Package cli implements the lineagemap command-line interface.
//
// # Commands
//
//   - layout: Compute the render-ready layout of a family document
//   - render: Render a family document to SVG, JSON or DOT
//   - visualize: Render a previously computed layout
//   - serve: Run the HTTP API
//   - samples: List or export the built-in sample families
//   - browse: Pick a stored family interactively and render it
//   - cache: Manage the local layout cache
//
// All commands support --verbose (-v) for debug logging and --config to
// point at a lineagemap.toml.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lineagemap/pkg/buildinfo"
	"github.com/matzehuels/lineagemap/pkg/cache"
	"github.com/matzehuels/lineagemap/pkg/config"
	"github.com/matzehuels/lineagemap/pkg/pipeline"
	"github.com/matzehuels/lineagemap/pkg/store"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "lineagemap",
		Short:        "LineageMap lays out and renders family trees",
		Long:         `LineageMap turns a family document (people plus parent-child relationships) into a generational family-tree layout and renders it as SVG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.samplesCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg = &cfg
	c.Logger.Debug("loaded config", "storage", cfg.Storage.Backend, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	cc, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the configured cache. An unusable file cache directory
// disables caching instead of failing the command.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.Prefix)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// openStore opens the configured family store.
func (c *CLI) openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Storage.Backend == config.StorageMongo {
		ms, err := store.NewMongoStore(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDB)
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	fs, err := store.NewFileStore(cfg.Storage.DataDir, c.Logger)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// newSamples returns the sample set, preferring a configured directory over
// the embedded copies.
func newSamples(cfg config.Config) *store.Samples {
	if cfg.Storage.SamplesDir != "" {
		return store.NewSamples(cfg.Storage.SamplesDir)
	}
	return store.NewSamples()
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutOptions returns pipeline options with the built-in defaults, used
// as flag defaults before the config file is known.
func layoutOptions() pipeline.Options {
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	return opts
}

// applyConfigGeometry fills the geometry fields whose flags were not set
// from the loaded config.
func (c *CLI) applyConfigGeometry(cmd *cobra.Command, opts *pipeline.Options) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	changed := cmd.Flags().Changed
	base := cfg.Layout
	fields := []struct {
		flag string
		set  func()
	}{
		{"card-width", func() { opts.Layout.CardWidth = base.CardWidth }},
		{"card-height", func() { opts.Layout.CardHeight = base.CardHeight }},
		{"rank-gap", func() { opts.Layout.RankGap = base.RankGap }},
		{"sibling-gap", func() { opts.Layout.SiblingGap = base.SiblingGap }},
		{"curved", func() { opts.Layout.Curved = base.Curved }},
		{"strict-roots", func() { opts.Layout.StrictRoots = base.StrictRoots }},
	}
	for _, f := range fields {
		if !changed(f.flag) {
			f.set()
		}
	}
	// Geometry without a flag always comes from the config.
	opts.Layout.SpouseGap = base.SpouseGap
	opts.Layout.ClusterGap = base.ClusterGap
	opts.Layout.MinGap = base.MinGap
	opts.Layout.Padding = base.Padding
	opts.Layout.TrunkLength = base.TrunkLength
	opts.Layout.MaxDrop = base.MaxDrop
	return nil
}

// =============================================================================
// Output
// =============================================================================

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
