package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/asciiforge/pkg/cache"
	"github.com/matzehuels/asciiforge/pkg/composite"
	"github.com/matzehuels/asciiforge/pkg/decor"
	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
	pio "github.com/matzehuels/asciiforge/pkg/io"
	"github.com/matzehuels/asciiforge/pkg/observability"
	"github.com/matzehuels/asciiforge/pkg/recipe"
	"github.com/matzehuels/asciiforge/pkg/shape"
)

// Runner encapsulates render execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, registries and logger - it
// doesn't store run results. Multiple goroutines can safely use the same
// Runner with different inputs.
type Runner struct {
	Cache      cache.Cache
	Keyer      cache.Keyer
	Logger     *log.Logger
	Shapes     *shape.Registry
	Decorators *decor.Registry

	// TTL overrides the per-kind cache lifetimes when non-zero.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Shapes and decorators start as the built-in registries.
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
		Cache:      c,
		Keyer:      keyer,
		Logger:     logger,
		Shapes:     shape.Builtins(),
		Decorators: decor.Builtins(),
	}
}

// Executor returns a recipe executor wired to the runner's registries.
func (r *Runner) Executor(logger *log.Logger) *recipe.Executor {
	return recipe.NewExecutor(
		recipe.WithShapes(r.Shapes),
		recipe.WithDecorators(r.Decorators),
		recipe.WithLogger(logger),
	)
}

// ExecuteRecipe validates and runs rec, then exports the output grid.
func (r *Runner) ExecuteRecipe(ctx context.Context, rec *recipe.Recipe, opts Options) (*Result, error) {
	if err := recipe.Validate(rec); err != nil {
		return nil, err
	}
	data, err := recipe.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize recipe for cache key")
	}
	key := r.Keyer.RecipeKey(cache.Hash(data))

	return r.run(ctx, KindRecipe, key, cache.TTLRecipe, opts, func(logger *log.Logger) (*grid.Grid, int, error) {
		res, err := r.Executor(logger).Execute(ctx, rec)
		if err != nil {
			return nil, 0, err
		}
		return res.Output, res.Operations, nil
	})
}

// RenderShape renders a single shape request.
func (r *Runner) RenderShape(ctx context.Context, req ShapeRequest, opts Options) (*Result, error) {
	key := r.Keyer.ShapeKey(req.Kind, req.ShapeKeyOpts())
	return r.run(ctx, KindShape, key, cache.TTLShape, opts, func(*log.Logger) (*grid.Grid, int, error) {
		g, err := RenderShape(r.Shapes, r.Decorators, req)
		return g, 1, err
	})
}

// Compose lays out a shape recipe.
func (r *Runner) Compose(ctx context.Context, sr composite.Recipe, opts Options) (*Result, error) {
	data, err := json.Marshal(sr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize shape recipe for cache key")
	}
	key := r.Keyer.ComposeKey(cache.Hash(data))

	return r.run(ctx, KindCompose, key, cache.TTLCompose, opts, func(logger *log.Logger) (*grid.Grid, int, error) {
		c, err := composite.FromRecipe(sr, r.Shapes)
		if err != nil {
			return nil, 0, err
		}
		logger.Debug("composed canvas", "layers", len(c.Layers()))
		return c.Grid, len(sr.Shapes), nil
	})
}

type renderFunc func(logger *log.Logger) (g *grid.Grid, operations int, err error)

// run is the shared cache → render → export flow.
func (r *Runner) run(ctx context.Context, kind, key string, ttl time.Duration, opts Options, render renderFunc) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	logger := r.Logger.With("run", id[:8], "kind", kind)
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, kind)

	result := &Result{ID: id, Kind: kind, Format: opts.Format}

	if r.TTL > 0 {
		ttl = r.TTL
	}

	renderStart := time.Now()
	g, hit := r.cachedGrid(ctx, kind, key, opts.Refresh)
	if hit {
		logger.Debug("grid from cache")
	} else {
		var err error
		var ops int
		g, ops, err = render(logger)
		if err != nil {
			hooks.OnRunComplete(ctx, kind, 0, time.Since(renderStart), err)
			return nil, err
		}
		result.Stats.Operations = ops
		r.storeGrid(ctx, kind, key, ttl, g)
	}
	result.Grid = g
	result.CacheInfo.GridHit = hit
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.Width, result.Stats.Height = g.Width(), g.Height()
	hooks.OnRunComplete(ctx, kind, g.Width()*g.Height(), result.Stats.RenderTime, nil)

	logger.Info("rendered grid",
		"width", g.Width(),
		"height", g.Height(),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	exportStart := time.Now()
	artifact, artifactHit, err := r.ExportWithCacheInfo(ctx, g, opts)
	result.Stats.ExportTime = time.Since(exportStart)
	hooks.OnExport(ctx, opts.Format, len(artifact), result.Stats.ExportTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.CacheInfo.ArtifactHit = artifactHit
	return result, nil
}

// ExportWithCacheInfo encodes g in opts.Format, consulting the artifact
// cache first.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, g *grid.Grid, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(g.String())), opts.ArtifactKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, cache.KeyTypeArtifact)
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, cache.KeyTypeArtifact)
	}

	data, err := pio.Encode(g, opts.Format)
	if err != nil {
		return nil, false, err
	}
	ttl := cache.TTLArtifact
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err == nil {
		hooks.OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
	}
	return data, false, nil
}

// cachedGrid loads a grid stored by storeGrid. Undecodable entries count
// as misses.
func (r *Runner) cachedGrid(ctx context.Context, kind, key string, refresh bool) (*grid.Grid, bool) {
	if refresh {
		return nil, false
	}
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		if err != nil {
			r.Logger.Warn("cache read failed", "kind", kind, "err", err)
		}
		hooks.OnCacheMiss(ctx, kind)
		return nil, false
	}
	g, err := pio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		hooks.OnCacheMiss(ctx, kind)
		return nil, false
	}
	hooks.OnCacheHit(ctx, kind)
	return g, true
}

func (r *Runner) storeGrid(ctx context.Context, kind, key string, ttl time.Duration, g *grid.Grid) {
	data, err := pio.Encode(g, pio.FormatJSON)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
