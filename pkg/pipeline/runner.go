package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nnetplot/pkg/cache"
	"github.com/matzehuels/nnetplot/pkg/diagram"
	"github.com/matzehuels/nnetplot/pkg/observability"
	"github.com/matzehuels/nnetplot/pkg/render/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and service use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		DocHash: cache.Hash(opts.Document),
	}

	// Stage 1: Build
	buildStart := time.Now()
	d, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	sc := scene.New()
	result.Diagram = d
	result.Stats.DrawStats = d.Draw(sc)
	result.Stats.BuildTime = time.Since(buildStart)

	opts.Logger.Info("built diagram",
		"layers", result.Stats.Layers,
		"nodes", result.Stats.Nodes,
		"connectors", result.Stats.Connectors,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, d, sc, result.DocHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build decodes, validates and positions the document. Warnings are logged,
// not returned.
func (r *Runner) Build(ctx context.Context, opts Options) (d *diagram.Diagram, err error) {
	r.applyLogger(&opts)
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Source)
	defer func() {
		layers := 0
		if d != nil {
			layers = len(d.Layers)
		}
		hooks.OnBuildComplete(ctx, opts.Source, layers, time.Since(start), err)
	}()

	doc, err := diagram.Decode(opts.Document, opts.DocFormat)
	if err != nil {
		return nil, err
	}
	d, err = diagram.Build(doc)
	if err != nil {
		return nil, err
	}
	for _, w := range d.Warnings {
		opts.Logger.Warn(w)
	}
	return d, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// Cache failures are logged and treated as misses; they never fail a render.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *diagram.Diagram, sc *scene.Scene, docHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetRenderDefaults()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, ok := r.cacheGet(ctx, r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format)), opts.Logger)
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.VizType, opts.Formats)
	rendered, err := Render(ctx, d, sc, opts)
	hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

func (r *Runner) cacheGet(ctx context.Context, key string, logger *log.Logger) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("cache read failed", "error", err)
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	case !hit:
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
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
