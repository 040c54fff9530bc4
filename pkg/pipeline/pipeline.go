// Package pipeline runs asciiforge renders with caching and hooks.
//
// The CLI and the HTTP API both go through a [Runner] so that they share
// defaults, cache keys and instrumentation. A run takes one of three
// inputs and produces a grid plus an exported artifact:
//
//  1. Recipe: an operation list executed by [recipe.Executor]
//  2. Shape: one shape with optional transforms and decoration
//  3. Compose: a declarative shape recipe laid out by [composite.FromRecipe]
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.ExecuteRecipe(ctx, r, pipeline.Options{Format: "svg"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
//
// Grids are cached by a hash of their input; artifacts by a hash of the
// grid text and the format, so two inputs that render the same grid share
// one artifact entry.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/asciiforge/pkg/cache"
	"github.com/matzehuels/asciiforge/pkg/grid"
	pio "github.com/matzehuels/asciiforge/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultChar is the drawing character when none is configured.
	DefaultChar = grid.DefaultChar

	// DefaultStreamDelay is the pause between rows in animated playback.
	DefaultStreamDelay = 50 * time.Millisecond

	// DefaultFormat is the export format when none is requested.
	DefaultFormat = pio.FormatText
)

// Run kinds, as reported to hooks and on results.
const (
	KindRecipe  = "recipe"
	KindShape   = "shape"
	KindCompose = "compose"
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures the output side of a run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Format  string `json:"format,omitempty"`
	Refresh bool   `json:"refresh,omitempty"` // Skip cache reads, still write

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := pio.ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the exported artifact.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: o.Format}
}

// =============================================================================
// Shape Requests
// =============================================================================

// ShapeRequest describes a single rendered shape. Transforms apply in the
// order rotate, mirror, scale; decoration runs last.
type ShapeRequest struct {
	Kind            string         `json:"kind" yaml:"kind"`
	Params          map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	Rotate          int            `json:"rotate,omitempty" yaml:"rotate,omitempty"`
	Mirror          string         `json:"mirror,omitempty" yaml:"mirror,omitempty"`
	Scale           float64        `json:"scale,omitempty" yaml:"scale,omitempty"`
	Decorator       string         `json:"decorator,omitempty" yaml:"decorator,omitempty"`
	DecoratorParams map[string]any `json:"decoratorParams,omitempty" yaml:"decoratorParams,omitempty"`
}

// ShapeKeyOpts returns cache key options for the request.
func (s *ShapeRequest) ShapeKeyOpts() cache.ShapeKeyOpts {
	var transforms []string
	if s.Rotate != 0 {
		transforms = append(transforms, "rotate", itoa(s.Rotate))
	}
	if s.Mirror != "" {
		transforms = append(transforms, "mirror", s.Mirror)
	}
	if s.Scale != 0 {
		transforms = append(transforms, "scale", ftoa(s.Scale))
	}
	return cache.ShapeKeyOpts{
		Params:     s.Params,
		Decorator:  s.Decorator,
		DecorArgs:  s.DecoratorParams,
		Transforms: transforms,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a run.
type Result struct {
	// ID identifies this run in logs and API responses.
	ID string

	// Kind is KindRecipe, KindShape or KindCompose.
	Kind string

	// Grid is the rendered grid.
	Grid *grid.Grid

	// Format and Artifact hold the exported grid.
	Format   string
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	Width      int
	Height     int
	Operations int // recipe operations or composed shapes
	RenderTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	GridHit     bool // Whether the grid came from cache
	ArtifactHit bool // Whether the exported artifact came from cache
}
