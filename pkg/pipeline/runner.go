package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lineagemap/pkg/cache"
	"github.com/matzehuels/lineagemap/pkg/family"
	"github.com/matzehuels/lineagemap/pkg/graph"
	"github.com/matzehuels/lineagemap/pkg/observability"
	"github.com/matzehuels/lineagemap/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the caching rules live in one place.
//
// The Runner holds no pipeline results. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete index → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *family.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	layoutStart := time.Now()
	lr, err := r.layout(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = lr.graph
	result.DocHash = lr.docHash
	result.Layout = lr.layout
	result.CacheInfo.LayoutHit = lr.hit
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Warnings = len(lr.layout.Warnings)
	if s := lr.layout.Stats; s != nil {
		result.Stats.Persons = s.Persons
		result.Stats.Unions = s.Unions
		result.Stats.Ranks = s.Ranks
		result.Stats.Collisions = s.Collisions
		result.Stats.Crossings = s.Crossings
	}

	r.Logger.Info("computed layout",
		"family", opts.Family,
		"persons", result.Stats.Persons,
		"unions", result.Stats.Unions,
		"cached", lr.hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, lr.layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

type layoutResult struct {
	layout  graph.Layout
	graph   *tree.Graph // nil on cache hit
	docHash string
	hit     bool
}

// LayoutWithCacheInfo computes the layout of doc with caching and returns
// cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc *family.Document, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	lr, err := r.layout(ctx, doc, opts)
	return lr.layout, lr.hit, err
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, doc *family.Document, opts Options) (graph.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	return l, err
}

func (r *Runner) layout(ctx context.Context, doc *family.Document, opts Options) (layoutResult, error) {
	docData, err := doc.Marshal()
	if err != nil {
		return layoutResult{}, fmt.Errorf("serialize document for cache key: %w", err)
	}
	res := layoutResult{docHash: cache.Hash(docData)}
	cacheKey := r.Keyer.LayoutKey(res.docHash, opts.LayoutKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				hooks.OnCacheHit(ctx, "layout")
				cached.Style = opts.Style
				cached.Family = opts.Family
				res.layout, res.hit = cached, true
				return res, nil
			}
			// Undecodable entries are recomputed and overwritten.
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	g, err := Index(ctx, doc, opts)
	if err != nil {
		return layoutResult{}, err
	}
	l, err := GenerateLayout(ctx, g, opts)
	if err != nil {
		return layoutResult{}, err
	}
	res.layout, res.graph = l, g

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Debug("cache write failed", "key", cacheKey, "error", err)
		} else {
			hooks.OnCacheSet(ctx, "layout", len(data))
		}
	}
	return res, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is set only when every requested format came from the
// cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	hooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	rendered, err := RenderFromLayout(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
